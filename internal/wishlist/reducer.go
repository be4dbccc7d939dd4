package wishlist

import "time"

type Action interface {
	Name() string
}

type Toggle struct{ Item Item }

type Add struct{ Item Item }

type Remove struct{ ID string }

type Clear struct{}

func (Toggle) Name() string { return "wishlist/toggle" }
func (Add) Name() string    { return "wishlist/add" }
func (Remove) Name() string { return "wishlist/remove" }
func (Clear) Name() string  { return "wishlist/clear" }

// Reducer applies wishlist actions. It never modifies its input state.
type Reducer struct {
	Now func() time.Time
}

func NewReducer(now func() time.Time) *Reducer {
	return &Reducer{Now: now}
}

func (r *Reducer) now() time.Time {
	if r.Now == nil {
		return time.Now().UTC()
	}
	return r.Now().UTC()
}

func (r *Reducer) Reduce(s State, a Action) State {
	switch a := a.(type) {
	case Toggle:
		return r.Toggle(s, a.Item)
	case Add:
		return r.Add(s, a.Item)
	case Remove:
		return r.Remove(s, a.ID)
	case Clear:
		return r.Clear(s)
	}
	return s
}

// Toggle removes the item if it is saved and saves it otherwise.
func (r *Reducer) Toggle(s State, it Item) State {
	if s.Contains(it.ID) {
		return r.Remove(s, it.ID)
	}
	return r.insert(s, it)
}

func (r *Reducer) Add(s State, it Item) State {
	if s.Contains(it.ID) {
		return s
	}
	return r.insert(s, it)
}

func (r *Reducer) Remove(s State, id string) State {
	i := s.index(id)
	if i < 0 {
		return s
	}
	items := make([]Item, 0, len(s.Items)-1)
	items = append(items, s.Items[:i]...)
	items = append(items, s.Items[i+1:]...)
	return State{Items: items}
}

func (r *Reducer) Clear(s State) State {
	if len(s.Items) == 0 {
		return s
	}
	return Empty()
}

func (r *Reducer) insert(s State, it Item) State {
	it.AddedAt = r.now()
	items := make([]Item, 0, len(s.Items)+1)
	items = append(items, s.Items...)
	return State{Items: append(items, it)}
}
