package store

// Entity is anything stored in a Collection
type Entity interface {
	GetID() string
}

// Patch is a shallow partial update of a T
type Patch[T any] interface {
	Apply(*T)
}

// Saver persists a full snapshot under a key. persist.Adapter implements it.
type Saver interface {
	Save(key string, value any) error
}

// Collection is an ordered, flat list of entities persisted in full on every mutation.
// Ids are supplied by callers and never checked for uniqueness.
type Collection[T Entity] struct {
	key   string
	items []T
	saver Saver
}

// NewCollection wraps already loaded items
func NewCollection[T Entity](key string, items []T, saver Saver) *Collection[T] {
	return &Collection[T]{
		key:   key,
		items: append([]T(nil), items...),
		saver: saver,
	}
}

// All returns the items in insertion order
func (c *Collection[T]) All() []T {
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of items
func (c *Collection[T]) Len() int {
	return len(c.items)
}

// Get returns the first item with id
func (c *Collection[T]) Get(id string) (T, bool) {
	for _, item := range c.items {
		if item.GetID() == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// Add appends item and persists
func (c *Collection[T]) Add(item T) error {
	next := make([]T, len(c.items), len(c.items)+1)
	copy(next, c.items)
	c.items = append(next, item)
	return c.persist()
}

// Update merges patch into every item with id. Unknown ids are a silent no-op.
func (c *Collection[T]) Update(id string, patch Patch[T]) (bool, error) {
	return c.Modify(id, patch.Apply)
}

// Modify runs fn against a copy of every item with id and stores the result.
// Unknown ids are a silent no-op.
func (c *Collection[T]) Modify(id string, fn func(*T)) (bool, error) {
	next := make([]T, len(c.items))
	found := false
	for i, item := range c.items {
		if item.GetID() == id {
			fn(&item)
			found = true
		}
		next[i] = item
	}
	if !found {
		return false, nil
	}

	c.items = next
	return true, c.persist()
}

// Remove drops every item with id. Unknown ids are a silent no-op.
func (c *Collection[T]) Remove(id string) (bool, error) {
	next := make([]T, 0, len(c.items))
	for _, item := range c.items {
		if item.GetID() != id {
			next = append(next, item)
		}
	}
	if len(next) == len(c.items) {
		return false, nil
	}

	c.items = next
	return true, c.persist()
}

func (c *Collection[T]) persist() error {
	return c.saver.Save(c.key, c.items)
}
