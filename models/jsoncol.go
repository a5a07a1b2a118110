// Package models holds the record types read from and written to the SQL stores.
// Each model exposes TargetFields for sqldb.QueryItem(s).
package models

import (
	"database/sql/driver"
	"encoding/json/v2"
	"fmt"
)

// scanJSON decodes a TEXT/JSON column into dst. NULL leaves dst untouched.
func scanJSON(value any, dst any) error {
	var data []byte
	switch v := value.(type) {
	case nil:
		return nil
	case string:
		data = []byte(v)
	case []byte:
		data = v
	default:
		return fmt.Errorf("json column: cannot scan %T", value)
	}
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, dst)
}

func valueJSON(v any) (driver.Value, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}
