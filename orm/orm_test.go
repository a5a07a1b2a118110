package orm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type engineer struct {
	id   int64
	name string
}

func (e *engineer) GetID() int64 { return e.id }

type visit struct {
	id         int64
	engineerID *int64
	engineer   *engineer
	notes      []*note
}

func (v *visit) GetID() int64 { return v.id }

type note struct {
	id      int64
	visitID int64
}

func (n *note) GetID() int64 { return n.id }

func ptr(i int64) *int64 { return &i }

func TestCollectionKeepsOrder(t *testing.T) {
	c := NewCollection[*visit, int64]([]*visit{{id: 3}, {id: 1}, {id: 2}})
	c.Add(&visit{id: 1})
	assert.Equal(t, []int64{3, 1, 2}, c.IDs())
	assert.Equal(t, []any{int64(3), int64(1), int64(2)}, c.IDsAsAny())
	assert.Equal(t, 3, c.Len())

	odd := c.Filter(func(v *visit) bool { return v.id%2 == 1 })
	assert.Equal(t, []int64{3, 1}, odd.IDs())
}

func TestLinkOptionalBelongsTo(t *testing.T) {
	visits := NewCollection[*visit, int64]([]*visit{
		{id: 1, engineerID: ptr(10)},
		{id: 2},
		{id: 3, engineerID: ptr(10)},
		{id: 4, engineerID: ptr(99)},
	})
	fks := CollectUniqueToSlice(visits, func(v *visit) *int64 { return v.engineerID })
	assert.Equal(t, []int64{10, 99}, fks)

	engineers := NewCollection[*engineer, int64]([]*engineer{{id: 10, name: "Budi"}})
	LinkOptionalBelongsTo(visits, engineers,
		func(v *visit) *int64 { return v.engineerID },
		func(v *visit) **engineer { return &v.engineer },
	)
	v1, _ := visits.Find(1)
	v2, _ := visits.Find(2)
	v4, _ := visits.Find(4)
	assert.Equal(t, "Budi", v1.engineer.name)
	assert.Nil(t, v2.engineer)
	assert.Nil(t, v4.engineer)
}

func TestLinkHasMany(t *testing.T) {
	visits := NewCollection[*visit, int64]([]*visit{{id: 1}, {id: 2}})
	notes := NewCollection[*note, int64]([]*note{{id: 7, visitID: 1}, {id: 5, visitID: 1}})
	LinkHasMany(visits, notes,
		func(n *note) int64 { return n.visitID },
		func(v *visit) *[]*note { return &v.notes },
	)
	v1, _ := visits.Find(1)
	v2, _ := visits.Find(2)
	assert.Len(t, v1.notes, 2)
	assert.Equal(t, int64(7), v1.notes[0].id)
	assert.NotNil(t, v2.notes)
	assert.Empty(t, v2.notes)
}
