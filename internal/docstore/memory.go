package docstore

import (
	"context"
	"encoding/json"
	"sort"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// MemoryStore is an in-process Store used by expert unit tests so they
// don't need a live Mongo instance to exercise candidate lookup logic.
type MemoryStore struct {
	collections map[string]*MemoryCollection
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{collections: map[string]*MemoryCollection{}}
}

func (s *MemoryStore) Collection(name string) Collection {
	c, ok := s.collections[name]
	if !ok {
		c = &MemoryCollection{}
		s.collections[name] = c
	}
	return c
}

// Seed loads docs (each a struct or map) into collection name, round-tripping
// through JSON so the stored shape matches what a real Mongo driver returns.
func (s *MemoryStore) Seed(name string, docs ...any) {
	coll := s.Collection(name).(*MemoryCollection)
	for _, d := range docs {
		raw, err := json.Marshal(d)
		if err != nil {
			continue
		}
		var m bson.M
		if err := json.Unmarshal(raw, &m); err != nil {
			continue
		}
		coll.docs = append(coll.docs, m)
	}
}

// MemoryCollection is a Collection backed by a plain slice, supporting the
// small subset of filter operators experts actually issue: equality,
// $regex, $gte/$lte, $or/$and.
type MemoryCollection struct {
	docs []bson.M
}

func (c *MemoryCollection) Find(ctx context.Context, filter bson.M, opts ...FindOption) (Cursor, error) {
	cfg := &findConfig{}
	for _, o := range opts {
		o(cfg)
	}

	matched := make([]bson.M, 0, len(c.docs))
	for _, d := range c.docs {
		if matchFilter(d, filter) {
			matched = append(matched, d)
		}
	}

	if len(cfg.sort) > 0 {
		sortDocs(matched, cfg.sort)
	}
	if cfg.skip > 0 && int64(len(matched)) > cfg.skip {
		matched = matched[cfg.skip:]
	} else if cfg.skip > 0 {
		matched = nil
	}
	if cfg.limit > 0 && int64(len(matched)) > cfg.limit {
		matched = matched[:cfg.limit]
	}

	return &memoryCursor{docs: matched, idx: -1}, nil
}

func (c *MemoryCollection) FindOne(ctx context.Context, filter bson.M) (bson.M, error) {
	for _, d := range c.docs {
		if matchFilter(d, filter) {
			return d, nil
		}
	}
	return nil, nil
}

type memoryCursor struct {
	docs []bson.M
	idx  int
}

func (c *memoryCursor) Next(ctx context.Context) bool {
	c.idx++
	return c.idx < len(c.docs)
}

func (c *memoryCursor) Decode(v any) error {
	raw, err := json.Marshal(c.docs[c.idx])
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, v)
}

func (c *memoryCursor) Err() error             { return nil }
func (c *memoryCursor) Close(ctx context.Context) error { return nil }

func sortDocs(docs []bson.M, sort_ bson.D) {
	if len(sort_) == 0 {
		return
	}
	key := sort_[0].Key
	desc := false
	if n, ok := sort_[0].Value.(int); ok && n < 0 {
		desc = true
	}
	sort.SliceStable(docs, func(i, j int) bool {
		vi, vj := toFloat(docs[i][key]), toFloat(docs[j][key])
		if desc {
			return vi > vj
		}
		return vi < vj
	})
}

func toFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case int64:
		return float64(n)
	default:
		return 0
	}
}
