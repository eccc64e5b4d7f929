package domain

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// FlexFloat is a float64 that also accepts numeric strings ("1,250.00", "$300") and null
// when decoding. Unparsable values decode to 0.
type FlexFloat float64

func (f *FlexFloat) UnmarshalJSON(b []byte) error {
	var n float64
	if err := json.Unmarshal(b, &n); err == nil {
		*f = FlexFloat(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = FlexFloat(ParseAmount(s))
		return nil
	}
	*f = 0
	return nil
}

// FlexString is a string that also accepts numbers, booleans and null when decoding.
// Arrays and objects keep their compact JSON text.
type FlexString string

func (f *FlexString) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = FlexString(s)
		return nil
	}
	raw := string(bytes.TrimSpace(b))
	if raw == "null" {
		raw = ""
	} else {
		var buf bytes.Buffer
		if err := json.Compact(&buf, b); err == nil {
			raw = buf.String()
		}
	}
	*f = FlexString(raw)
	return nil
}

// Ptr returns a pointer to the string value, or nil when it is empty.
func (f *FlexString) Ptr() *string {
	if f == nil {
		return nil
	}
	return StringPtr(string(*f))
}

// ParseAmount strips currency symbols and thousands separators and parses what remains.
func ParseAmount(s string) float64 {
	cleaned := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			return r
		}
		return -1
	}, s)
	n, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return n
}

// StringList is a []string stored as a JSON array column.
type StringList []string

// Value implements driver.Valuer.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(l))
}

// Scan implements sql.Scanner.
func (l *StringList) Scan(src interface{}) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*l = nil
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("StringList: unsupported scan type %T", src)
	}
	if len(raw) == 0 {
		*l = nil
		return nil
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return errors.Join(errors.New("StringList: invalid JSON"), err)
	}
	*l = out
	return nil
}
