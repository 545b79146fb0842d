package usage

import "context"

// Meter orchestrates the quota check every turn makes before the
// orchestrator is allowed to spend an LLM call on intent extraction,
// expert dispatch, or verification.
type Meter struct {
	store *Store
}

// NewMeter builds a Meter backed by store.
func NewMeter(store *Store) *Meter {
	return &Meter{store: store}
}

// Charge deducts one call from uid's monthly allowance, lazily creating the
// user's row on first use. Returns ErrQuotaExhausted once the month's
// allowance is spent.
func (m *Meter) Charge(ctx context.Context, uid string) error {
	err := m.store.UseCall(ctx, uid)
	if err != ErrQuotaExhausted {
		return err
	}

	// 0 rows affected: the row is either missing or genuinely exhausted.
	// Only retry the deduction if EnsureUser just created it.
	created, ensureErr := m.store.EnsureUser(ctx, uid)
	if ensureErr != nil {
		return ensureErr
	}
	if !created {
		return ErrQuotaExhausted
	}
	return m.store.UseCall(ctx, uid)
}
