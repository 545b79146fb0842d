// Package usage meters the monthly LLM-call quota per user, adapted from
// fweilun-Ark's ai_usage token-bucket (per-uid, per-calendar-month reset).
package usage

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrQuotaExhausted is returned when uid has no LLM calls left for the
// current month.
var ErrQuotaExhausted = errors.New("llm call quota exhausted for this month")

// DefaultMonthlyQuota is the number of LLM calls granted per user per month.
const DefaultMonthlyQuota = 200

// Store persists the llm_usage table.
type Store struct {
	db *pgxpool.Pool
}

// NewStore returns a Store backed by the given connection pool.
func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// UseCall atomically resets-if-stale and deducts one call from uid's
// monthly allowance. Returns ErrQuotaExhausted when 0 rows are updated
// (quota exhausted or user row absent).
func (s *Store) UseCall(ctx context.Context, uid string) error {
	month := time.Now().Format("2006-01")

	tag, err := s.db.Exec(ctx, `
		UPDATE llm_usage SET
			calls_remaining = CASE WHEN last_reset_month != $1 THEN $2 - 1 ELSE calls_remaining - 1 END,
			last_reset_month = $1
		WHERE uid = $3 AND (last_reset_month < $1 OR calls_remaining > 0)
	`, month, DefaultMonthlyQuota, uid)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrQuotaExhausted
	}
	return nil
}

// EnsureUser inserts a fresh llm_usage row for uid, reporting whether a row
// was actually created (vs. already present) via ON CONFLICT DO NOTHING's
// RETURNING clause — fweilun-Ark's EnsureUser swallowed this distinction,
// which made its caller unable to tell "quota exhausted" apart from
// "row already existed"; this version exposes it explicitly.
func (s *Store) EnsureUser(ctx context.Context, uid string) (created bool, err error) {
	var inserted string
	err = s.db.QueryRow(ctx, `
		INSERT INTO llm_usage (uid, calls_remaining, last_reset_month)
		VALUES ($1, $2, $3)
		ON CONFLICT (uid) DO NOTHING
		RETURNING uid
	`, uid, DefaultMonthlyQuota, time.Now().Format("2006-01")).Scan(&inserted)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Remaining reports uid's current calls_remaining for the active month.
func (s *Store) Remaining(ctx context.Context, uid string) (int, error) {
	month := time.Now().Format("2006-01")
	var remaining int
	var lastReset string
	err := s.db.QueryRow(ctx, `
		SELECT calls_remaining, last_reset_month FROM llm_usage WHERE uid = $1
	`, uid).Scan(&remaining, &lastReset)
	if errors.Is(err, pgx.ErrNoRows) {
		return DefaultMonthlyQuota, nil
	}
	if err != nil {
		return 0, err
	}
	if lastReset != month {
		return DefaultMonthlyQuota, nil
	}
	return remaining, nil
}
