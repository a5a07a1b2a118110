package nullable

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json/v2"
	"fmt"
	"time"
)

// layouts tried when a driver hands back text instead of time.Time
var textLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

func parseText(s string) (time.Time, error) {
	for _, layout := range textLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time %q", s)
}

// Time in `nullable` package
// implements: sql.Scanner and driver.Valuer
// implements: json/v2.Marshaler and json/v2.Unmarshaler
type Time struct {
	sql.NullTime
}

func TimeOf(t time.Time) Time {
	return Time{sql.NullTime{Time: t, Valid: !t.IsZero()}}
}

// Scan accepts time.Time and the text forms some drivers return
func (n *Time) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		n.Time, n.Valid = time.Time{}, false
		return nil
	case string:
		return n.scanText(v)
	case []byte:
		return n.scanText(string(v))
	}
	return n.NullTime.Scan(value)
}

func (n *Time) scanText(s string) error {
	t, err := parseText(s)
	if err != nil {
		return err
	}
	n.Time, n.Valid = t, true
	return nil
}

func (n Time) Value() (driver.Value, error) {
	return n.NullTime.Value()
}

func (n Time) MarshalJSON() ([]byte, error) {
	if n.Valid {
		return json.Marshal(n.Time.Format(time.RFC3339))
	}
	return []byte("null"), nil
}

func (n *Time) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		n.Valid = false
		n.Time = time.Time{}
		return nil
	}
	var str string // to string, then, to time.Time
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	if str == "" {
		n.Valid = false
		n.Time = time.Time{}
		return nil
	}
	t, err := parseText(str)
	if err != nil {
		return err
	}
	n.Time = t
	n.Valid = true
	return nil
}

func (n Time) ForceValue() time.Time {
	if !n.Valid {
		return time.Time{}
	}
	return n.Time
}

func (n Time) IsNil() bool {
	return !n.Valid
}
