package sqldb

import (
	"embed"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//go:embed testdata/sql
var testFS embed.FS

func TestReplaceStaticPlaceholders(t *testing.T) {
	got := ReplaceStaticPlaceholders("SELECT * FROM t WHERE a = ? AND b IN (??) AND c = ?", '$')
	assert.Equal(t, "SELECT * FROM t WHERE a = $1 AND b IN (??) AND c = $2", got)
	assert.Equal(t, "a = ?", ReplaceStaticPlaceholders("a = ?", '?'))
}

func TestExpandDynamicPlaceholders(t *testing.T) {
	got, err := ExpandDynamicPlaceholders("status IN (??) AND category IN (??)", '$', []int{2, 1}, 1)
	require.NoError(t, err)
	assert.Equal(t, "status IN ($1, $2) AND category IN ($3)", got)

	got, err = ExpandDynamicPlaceholders("status IN (??)", 0, []int{3}, 1)
	require.NoError(t, err)
	assert.Equal(t, "status IN (?, ?, ?)", got)

	_, err = ExpandDynamicPlaceholders("status IN (??)", '?', nil, 1)
	assert.Error(t, err)
	_, err = ExpandDynamicPlaceholders("status = 1", '?', []int{1}, 1)
	assert.Error(t, err)
}

func TestSplitStatements(t *testing.T) {
	script := `
-- users
CREATE TABLE a (
  id INTEGER
);

CREATE TABLE b (id INTEGER);
CREATE INDEX ix ON b (id)`
	stmts := SplitStatements(script)
	require.Len(t, stmts, 3)
	assert.Contains(t, stmts[0], "CREATE TABLE a")
	assert.NotContains(t, stmts[0], ";")
	assert.Equal(t, "CREATE INDEX ix ON b (id)", stmts[2])
}

func TestOrderBy(t *testing.T) {
	allowed, err := Sortable("id", "name", "brand")
	require.NoError(t, err)
	def := OrderBy{Column: allowed["id"], Desc: true}

	assert.Equal(t, " ORDER BY brand DESC", OrderByClause([]OrderBy{ParseOrderBy("-brand", allowed, def)}))
	assert.Equal(t, " ORDER BY id DESC", OrderByClause([]OrderBy{ParseOrderBy("drop table", allowed, def)}))
	assert.Equal(t, "", OrderByClause(nil))

	assert.Equal(t, " ORDER BY name ASC, id DESC", OrderByClause([]OrderBy{ParseOrderBy("name", allowed, def), def}))

	_, err = NewColumn("name; DROP")
	assert.Error(t, err)
	_, err = Sortable("name", "brand)--")
	assert.Error(t, err)

	col, err := NewColumn("stock_units.brand")
	require.NoError(t, err)
	assert.Equal(t, "stock_units.brand", col.Name())
}

func TestLoadRawStmtsDialectOverride(t *testing.T) {
	saved := RawStoreRegistry
	t.Cleanup(func() { RawStoreRegistry = saved })
	RawStoreRegistry = nil

	sub, err := fs.Sub(testFS, "testdata")
	require.NoError(t, err)
	RegisterGroup(sub, "widget")

	pg, err := LoadRawStmts("pgsql")
	require.NoError(t, err)
	stmt, err := pg.Stmt("widget", "get")
	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM widgets WHERE id = $1\n", stmt)
	upsert, err := pg.Stmt("widget", "upsert")
	require.NoError(t, err)
	assert.Contains(t, upsert, "ON CONFLICT")

	my, err := LoadRawStmts("mysql")
	require.NoError(t, err)
	upsert, err = my.Stmt("widget", "upsert")
	require.NoError(t, err)
	assert.Contains(t, upsert, "ON DUPLICATE KEY")

	_, err = my.Stmt("widget", "missing")
	assert.Error(t, err)
}

func TestNewUnsupportedType(t *testing.T) {
	_, err := New("oracle", &Conf{Type: "oracle"})
	assert.ErrorIs(t, err, ErrUnsupportedType)

	called := false
	RegisterFactory("fake", func(conf *Conf) (Client, error) {
		called = true
		return nil, nil
	})
	_, err = New("fake", &Conf{Type: "fake"})
	require.NoError(t, err)
	assert.True(t, called)
}
