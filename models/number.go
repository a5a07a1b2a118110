package models

import (
	"encoding/json/v2"
	"strings"

	"github.com/shopspring/decimal"
)

// Number is a lenient decimal for item fields typed by hand in forms.
// It accepts JSON numbers, numeric strings, "" and null.
// Anything unparsable decodes as absent and counts as zero.
type Number struct {
	Value decimal.Decimal
	Valid bool
}

func NumberOf(d decimal.Decimal) Number {
	return Number{Value: d, Valid: true}
}

// Decimal is the value or zero when absent
func (n Number) Decimal() decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}
	return n.Value
}

func (n Number) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return []byte(n.Value.String()), nil
}

func (n *Number) UnmarshalJSON(data []byte) error {
	*n = Number{}
	s := string(data)
	switch {
	case s == "null":
		return nil
	case strings.HasPrefix(s, `"`):
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
	}
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return nil
	}
	*n = NumberOf(d)
	return nil
}

// FlexString accepts a JSON string, number or bool and keeps its text.
// null decodes as "".
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	s := string(data)
	switch {
	case s == "null":
		*f = ""
	case strings.HasPrefix(s, `"`):
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*f = FlexString(str)
	default:
		*f = FlexString(s)
	}
	return nil
}

func (f FlexString) String() string {
	return string(f)
}
