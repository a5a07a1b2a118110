package models

import (
	"bytes"
	"database/sql/driver"
	"encoding/json/jsontext"
	"fmt"
)

// DataField is one key of a report's free-form content
type DataField struct {
	Key   string
	Value string
}

// DataFields is the ordered content of `data_json`.
// It keeps the key order of the incoming JSON object.
// Non-string values are kept as their compact JSON text.
type DataFields []DataField

func (d DataFields) Get(key string) (string, bool) {
	for _, f := range d {
		if f.Key == key {
			return f.Value, true
		}
	}
	return "", false
}

// Set replaces an existing key in place or appends a new one
func (d DataFields) Set(key, value string) DataFields {
	for i := range d {
		if d[i].Key == key {
			d[i].Value = value
			return d
		}
	}
	return append(d, DataField{Key: key, Value: value})
}

func (d DataFields) Keys() []string {
	keys := make([]string, len(d))
	for i, f := range d {
		keys[i] = f.Key
	}
	return keys
}

func (d DataFields) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := jsontext.NewEncoder(&buf)
	if err := enc.WriteToken(jsontext.BeginObject); err != nil {
		return nil, err
	}
	for _, f := range d {
		if err := enc.WriteToken(jsontext.String(f.Key)); err != nil {
			return nil, err
		}
		if err := enc.WriteToken(jsontext.String(f.Value)); err != nil {
			return nil, err
		}
	}
	if err := enc.WriteToken(jsontext.EndObject); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// UnmarshalJSON accepts an object or null
func (d *DataFields) UnmarshalJSON(data []byte) error {
	dec := jsontext.NewDecoder(bytes.NewReader(data))
	tok, err := dec.ReadToken()
	if err != nil {
		return err
	}
	switch tok.Kind() {
	case 'n':
		*d = nil
		return nil
	case '{':
	default:
		return fmt.Errorf("data_json: want an object, got %v", tok.Kind())
	}
	fields := DataFields{}
	for dec.PeekKind() != '}' {
		name, err := dec.ReadToken()
		if err != nil {
			return err
		}
		val, err := dec.ReadValue()
		if err != nil {
			return err
		}
		text, err := valueText(val)
		if err != nil {
			return err
		}
		fields = fields.Set(name.String(), text)
	}
	if _, err := dec.ReadToken(); err != nil {
		return err
	}
	*d = fields
	return nil
}

func valueText(val jsontext.Value) (string, error) {
	switch val.Kind() {
	case '"':
		s, err := jsontext.AppendUnquote(nil, val)
		return string(s), err
	case 'n':
		return "", nil
	}
	val = val.Clone()
	if err := val.Compact(); err != nil {
		return "", err
	}
	return string(val), nil
}

func (d *DataFields) Scan(value any) error {
	*d = nil
	return scanJSON(value, d)
}

func (d DataFields) Value() (driver.Value, error) {
	return valueJSON(d)
}
