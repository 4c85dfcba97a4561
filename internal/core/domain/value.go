package domain

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Kind tags the dynamic type held by a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindNumber
	KindString
)

// Value is a single spreadsheet cell: a string, a number or null. Sheet
// schemas are only known at parse time, so rows are maps of column to Value.
type Value struct {
	kind Kind
	num  float64
	str  string
}

// Row is one record keyed by the column names of its sheet's header row.
type Row map[string]Value

// Get returns the value of col, or null when the column is absent.
func (r Row) Get(col string) Value {
	if v, ok := r[col]; ok {
		return v
	}
	return Null()
}

func Null() Value { return Value{} }

func Number(f float64) Value { return Value{kind: KindNumber, num: f} }

func String(s string) Value { return Value{kind: KindString, str: s} }

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsNull() bool { return v.kind == KindNull }

func (v Value) IsNumber() bool { return v.kind == KindNumber }

func (v Value) IsString() bool { return v.kind == KindString }

// ValueOf converts a decoded JSON or BSON scalar into a Value. Booleans and
// anything else non-scalar are kept as their text form.
func ValueOf(x any) Value {
	switch t := x.(type) {
	case nil:
		return Null()
	case Value:
		return t
	case float64:
		return Number(t)
	case float32:
		return Number(float64(t))
	case int:
		return Number(float64(t))
	case int32:
		return Number(float64(t))
	case int64:
		return Number(float64(t))
	case json.Number:
		if f, err := t.Float64(); err == nil {
			return Number(f)
		}
		return String(t.String())
	case string:
		return String(t)
	case bool:
		return String(strconv.FormatBool(t))
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return Null()
		}
		return String(string(b))
	}
}

// Float coerces v to a finite number. Strings are parsed after trimming
// surrounding space and must be numeric in full, so "12kg" reports false
// like null does.
func (v Value) Float() (float64, bool) {
	switch v.kind {
	case KindNumber:
		if math.IsNaN(v.num) || math.IsInf(v.num, 0) {
			return 0, false
		}
		return v.num, true
	case KindString:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.str), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// Text renders v for use as a label. Null renders as the empty string.
func (v Value) Text() string {
	switch v.kind {
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindString:
		return v.str
	default:
		return ""
	}
}

// Interface returns nil, float64 or string, the representation handed to
// the document store.
func (v Value) Interface() any {
	switch v.kind {
	case KindNumber:
		return v.num
	case KindString:
		return v.str
	default:
		return nil
	}
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNumber:
		if math.IsNaN(v.num) || math.IsInf(v.num, 0) {
			return []byte("null"), nil
		}
		return []byte(strconv.FormatFloat(v.num, 'f', -1, 64)), nil
	case KindString:
		return json.Marshal(v.str)
	default:
		return []byte("null"), nil
	}
}

func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch raw.(type) {
	case map[string]any, []any:
		*v = String(string(data))
	default:
		*v = ValueOf(raw)
	}
	return nil
}
