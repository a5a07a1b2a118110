package sqldb

import (
	"fmt"
	"io/fs"
	"path"
	"strings"

	"go.uber.org/zap"
)

type RawSQLStore struct {
	dbtype string
	stmts  map[string]string
}

func NewRawStore(dbtype string) *RawSQLStore {
	return &RawSQLStore{dbtype: dbtype, stmts: make(map[string]string)}
}

// DBType is the dialect the statements were loaded for
func (s *RawSQLStore) DBType() string {
	return s.dbtype
}

// PlaceholderPrefix of the dialect
func (s *RawSQLStore) PlaceholderPrefix() byte {
	return PlaceholderPrefixForDBType[s.dbtype]
}

func (s *RawSQLStore) Set(key string, rawStmt string) {
	s.stmts[key] = rawStmt
}

func (s *RawSQLStore) Get(key string) (string, bool) {
	stmt, exists := s.stmts[key]
	return stmt, exists
}

// Stmt returns group.name or an error naming the missing key
func (s *RawSQLStore) Stmt(group, name string) (string, error) {
	key := StoreGroupedStmtKey{Group: group, StmtName: name}.String()
	stmt, ok := s.stmts[key]
	if !ok {
		return "", fmt.Errorf("raw sql stmt %q not loaded for %s", key, s.dbtype)
	}
	return stmt, nil
}

func (s *RawSQLStore) GetAll() map[string]string {
	return s.stmts
}

type StoreGroupedStmtKey struct {
	Group    string
	StmtName string
}

func (k StoreGroupedStmtKey) String() string {
	return k.Group + "." + k.StmtName
}

type GroupFS struct {
	Group string
	FS    fs.FS // holds a `sql` dir
}

var RawStoreRegistry []GroupFS

func RegisterGroup(fsys fs.FS, group string) {
	RawStoreRegistry = append(RawStoreRegistry, GroupFS{
		FS:    fsys,
		Group: group,
	})
}

// LoadRawStmts builds a store for dbtype from every registered group
func LoadRawStmts(dbtype string) (*RawSQLStore, error) {
	store := NewRawStore(dbtype)
	if err := LoadRawStmtsToStore(store, dbtype, PlaceholderPrefixForDBType[dbtype]); err != nil {
		return nil, err
	}
	return store, nil
}

func LoadRawStmtsToStore(store *RawSQLStore, dbtype string, placeholderPrefix byte) error {
	groupCnt := 0
	stmtCnt := 0
	for _, groupFS := range RawStoreRegistry {
		files, err := fs.ReadDir(groupFS.FS, "sql")
		if err != nil {
			return fmt.Errorf("failed to read embedded `sql` dir. %w", err)
		}
		for _, f := range files {
			if f.IsDir() {
				continue
			}
			filename := f.Name()
			ext := path.Ext(filename)
			name := strings.TrimSuffix(filename, ext)
			ext = strings.TrimPrefix(ext, ".")
			data, err := fs.ReadFile(groupFS.FS, path.Join("sql", filename))
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", filename, err)
			}
			groupedStmtKey := StoreGroupedStmtKey{Group: groupFS.Group, StmtName: name}.String()

			switch ext {
			case dbtype:
				// exact matching file extension -> use it as-is for dialects
				store.Set(groupedStmtKey, string(data))
				stmtCnt++
			case "sql":
				// Standard SQL
				// with Placeholders: `?` (static) and `??` (dynamic)
				if _, exists := store.Get(groupedStmtKey); !exists {
					store.Set(groupedStmtKey, ReplaceStaticPlaceholders(string(data), placeholderPrefix))
					stmtCnt++
				}
			}
		}
		groupCnt++
	}
	zap.L().Info("raw sql stmts loaded",
		zap.String("dbtype", dbtype), zap.Int("stmts", stmtCnt), zap.Int("groups", groupCnt))
	return nil
}
