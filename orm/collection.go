// Package orm links model pointers loaded by separate queries.
package orm

import "encoding/json/v2"

type Identifiable[ID comparable] interface {
	GetID() ID
}

// Collection indexes models by ID and keeps the load order
type Collection[MP Identifiable[ID], ID comparable] struct {
	itemsMap   map[ID]MP
	orderedIDs []ID
}

func NewEmptyCollection[
	MP Identifiable[ID],
	ID comparable,
]() *Collection[MP, ID] {
	return &Collection[MP, ID]{
		itemsMap:   make(map[ID]MP),
		orderedIDs: make([]ID, 0),
	}
}

func NewCollection[
	MP Identifiable[ID],
	ID comparable,
](items []MP) *Collection[MP, ID] {
	coll := &Collection[MP, ID]{
		itemsMap:   make(map[ID]MP, len(items)),
		orderedIDs: make([]ID, 0, len(items)),
	}
	for _, item := range items {
		coll.Add(item)
	}
	return coll
}

func (c *Collection[MP, ID]) Len() int {
	return len(c.itemsMap)
}

func (c *Collection[MP, ID]) Has(id ID) bool {
	_, ok := c.itemsMap[id]
	return ok
}

func (c *Collection[MP, ID]) Find(id ID) (MP, bool) {
	p, ok := c.itemsMap[id]
	return p, ok
}

// Add replaces a model with the same ID in place
func (c *Collection[MP, ID]) Add(item MP) {
	id := item.GetID()
	if _, already := c.itemsMap[id]; !already {
		c.orderedIDs = append(c.orderedIDs, id)
	}
	c.itemsMap[id] = item
}

func (c *Collection[MP, ID]) IDs() []ID {
	return append([]ID(nil), c.orderedIDs...)
}

// IDsAsAny is IDs ready to pass as query args
func (c *Collection[MP, ID]) IDsAsAny() []any {
	ids := make([]any, len(c.orderedIDs))
	for i, id := range c.orderedIDs {
		ids[i] = id
	}
	return ids
}

func (c *Collection[MP, ID]) Items() []MP {
	items := make([]MP, 0, len(c.orderedIDs))
	for _, id := range c.orderedIDs {
		items = append(items, c.itemsMap[id])
	}
	return items
}

func (c *Collection[MP, ID]) MarshalJSON() ([]byte, error) {
	if c == nil {
		return []byte("null"), nil
	}
	return json.Marshal(c.Items())
}

func (c *Collection[MP, ID]) ForEach(fn func(MP)) {
	for _, id := range c.orderedIDs {
		fn(c.itemsMap[id])
	}
}

func (c *Collection[MP, ID]) Filter(fn func(MP) bool) *Collection[MP, ID] {
	filtered := NewEmptyCollection[MP, ID]()
	c.ForEach(func(mp MP) {
		if fn(mp) {
			filtered.Add(mp)
		}
	})
	return filtered
}

// CollectUniqueToSlice yields one value per model, skipping nil and repeats.
// First-occurrence order is kept.
func CollectUniqueToSlice[
	MP Identifiable[ID],
	ID comparable,
	V comparable,
](
	c *Collection[MP, ID],
	yield func(MP) *V,
) []V {
	sl := make([]V, 0, c.Len())
	seen := make(map[V]struct{}, c.Len())
	c.ForEach(func(mp MP) {
		vp := yield(mp)
		if vp == nil {
			return
		}
		if _, dup := seen[*vp]; dup {
			return
		}
		seen[*vp] = struct{}{}
		sl = append(sl, *vp)
	})
	return sl
}
