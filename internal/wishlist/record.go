package wishlist

const (
	StorageKey    = "memoelle-wishlist"
	SchemaVersion = 1
)

// Record is the persisted form of State.
type Record struct {
	Version int    `json:"version"`
	Items   []Item `json:"items"`
}

func (s State) Record() Record {
	items := make([]Item, len(s.Items))
	copy(items, s.Items)
	return Record{Version: SchemaVersion, Items: items}
}

// State restores a wishlist, dropping entries without an id and keeping the
// first occurrence of a repeated id.
func (r Record) State() State {
	s := Empty()
	seen := make(map[string]struct{}, len(r.Items))
	for _, it := range r.Items {
		if it.ID == "" {
			continue
		}
		if _, dup := seen[it.ID]; dup {
			continue
		}
		seen[it.ID] = struct{}{}
		s.Items = append(s.Items, it)
	}
	return s
}
