package state

import "errors"

// ErrSeenCorrupted reports a seen-set payload that exists but cannot be
// parsed. Proceeding with an empty set would re-announce every offer the
// operator has already been told about, so callers must abort the cycle.
var ErrSeenCorrupted = errors.New("seen-set state is corrupted")

// Meta holds the cache validators returned by the source page. Empty fields
// mean the server never sent the corresponding header.
type Meta struct {
	ETag         string `json:"etag,omitempty"`
	LastModified string `json:"lastModified,omitempty"`
}

// IsZero reports whether no validator is known
func (m Meta) IsZero() bool {
	return m.ETag == "" && m.LastModified == ""
}

// Store persists the retrieval validators and the cumulative set of offer ids
// already announced. Reads return either a fully prior write or the default,
// never a partial write.
type Store interface {
	// LoadMeta returns the stored validators, or zero Meta when no prior
	// state exists or the stored payload is malformed.
	LoadMeta() (Meta, error)

	// SaveMeta overwrites the stored validators.
	SaveMeta(meta Meta) error

	// LoadSeen returns the stored seen-set. A missing payload yields an
	// empty set; a payload that cannot be parsed yields ErrSeenCorrupted.
	LoadSeen() (*SeenSet, error)

	// SaveSeen persists the seen-set. Ids are only ever added by the
	// watcher, so a save never shrinks the stored set.
	SaveSeen(seen *SeenSet) error
}

// SeenSet is an insertion-ordered, add-only set of offer ids.
type SeenSet struct {
	ids   map[string]struct{}
	order []string
}

// NewSeenSet creates a seen-set containing the given ids, first occurrence wins
func NewSeenSet(ids ...string) *SeenSet {
	s := &SeenSet{ids: make(map[string]struct{})}
	for _, id := range ids {
		s.Add(id)
	}
	return s
}

// Add inserts an id, reporting whether it was not yet present
func (s *SeenSet) Add(id string) bool {
	if _, ok := s.ids[id]; ok {
		return false
	}
	s.ids[id] = struct{}{}
	s.order = append(s.order, id)
	return true
}

// Contains reports whether the id has been seen
func (s *SeenSet) Contains(id string) bool {
	_, ok := s.ids[id]
	return ok
}

// IDs returns the ids in insertion order
func (s *SeenSet) IDs() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Len returns the number of ids in the set
func (s *SeenSet) Len() int {
	return len(s.ids)
}
