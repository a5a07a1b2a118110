package sqldb

import (
	"fmt"
	"regexp"
	"strings"
)

var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)*$`)

// Column is an identifier that passed NewColumn, e.g. "stock_units.brand"
type Column struct {
	name string
}

func (c Column) Name() string { return c.name }

func NewColumn(name string) (Column, error) {
	if !identifier.MatchString(name) {
		return Column{}, fmt.Errorf("invalid SQL identifier: %q", name)
	}
	return Column{name: name}, nil
}

// Sortable builds the allow-list ParseOrderBy consults, keyed by column name
func Sortable(names ...string) (map[string]Column, error) {
	cols := make(map[string]Column, len(names))
	for _, n := range names {
		c, err := NewColumn(n)
		if err != nil {
			return nil, err
		}
		cols[n] = c
	}
	return cols, nil
}

// OrderBy defines a validated ORDER BY clause.
type OrderBy struct {
	Column Column
	Desc   bool
}

// String returns the safe ORDER BY clause fragment (without the "ORDER BY" prefix).
func (o OrderBy) String() string {
	if o.Desc {
		return o.Column.Name() + " DESC"
	}
	return o.Column.Name() + " ASC"
}

// OrderByClause joins multiple OrderBy items into a valid ORDER BY SQL fragment.
func OrderByClause(orders []OrderBy) string {
	if len(orders) == 0 {
		return ""
	}
	var b strings.Builder
	b.Grow(16 * len(orders)) // rough prealloc: " column DESC, "
	b.WriteString(" ORDER BY ")
	for i, o := range orders {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(o.String())
	}
	return b.String()
}

// ParseOrderBy maps "field" or "-field" onto an allow-listed column.
// Unknown fields fall back to def.
func ParseOrderBy(s string, allowed map[string]Column, def OrderBy) OrderBy {
	desc := strings.HasPrefix(s, "-")
	col, ok := allowed[strings.TrimPrefix(s, "-")]
	if !ok {
		return def
	}
	return OrderBy{Column: col, Desc: desc}
}
