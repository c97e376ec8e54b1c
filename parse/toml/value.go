package toml

import (
	"strconv"
	"strings"
)

// =========================
// Value
// =========================

type ValueKind uint8

const (
	ValueString ValueKind = iota
	ValueInteger
	ValueFloat
	ValueBoolean
	ValueDatetime
	ValueArray
	ValueInlineTable
)

func (k ValueKind) String() string {
	switch k {
	case ValueString:
		return "String"
	case ValueInteger:
		return "Integer"
	case ValueFloat:
		return "Float"
	case ValueBoolean:
		return "Boolean"
	case ValueDatetime:
		return "Datetime"
	case ValueArray:
		return "Array"
	case ValueInlineTable:
		return "InlineTable"
	default:
		return "ValueKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Value is a tagged leaf. The tag is fixed by the constructor; the typed
// accessors never convert between tags.
type Value struct {
	kind   ValueKind
	str    string // String and Datetime payload
	num    int64
	flt    float64
	bln    bool
	arr    []*Value
	inline *InlineTable

	// raw is the source text of a parsed scalar, reused when rendering.
	raw string
}

func NewString(s string) *Value { return &Value{kind: ValueString, str: s} }

func NewInteger(i int64) *Value { return &Value{kind: ValueInteger, num: i} }

func NewFloat(f float64) *Value { return &Value{kind: ValueFloat, flt: f} }

func NewBoolean(b bool) *Value { return &Value{kind: ValueBoolean, bln: b} }

// NewDatetime validates s as an offset or local datetime, local date or
// local time.
func NewDatetime(s string) (*Value, error) {
	if !isDatetime(s) {
		return nil, &ParseError{Msg: "invalid datetime " + strconv.Quote(s)}
	}
	return &Value{kind: ValueDatetime, str: s}, nil
}

func NewArray(elems ...*Value) *Value {
	return &Value{kind: ValueArray, arr: append([]*Value(nil), elems...)}
}

func NewInlineTableValue(t *InlineTable) *Value {
	if t == nil {
		t = NewInlineTable()
	}
	return &Value{kind: ValueInlineTable, inline: t}
}

func (v *Value) Kind() ValueKind { return v.kind }

func (v *Value) AsString() (string, bool) {
	switch v.kind {
	case ValueString:
		return v.str, true
	case ValueInteger, ValueFloat, ValueBoolean, ValueDatetime, ValueArray, ValueInlineTable:
		return "", false
	}
	return "", false
}

func (v *Value) AsInteger() (int64, bool) {
	switch v.kind {
	case ValueInteger:
		return v.num, true
	case ValueString, ValueFloat, ValueBoolean, ValueDatetime, ValueArray, ValueInlineTable:
		return 0, false
	}
	return 0, false
}

func (v *Value) AsFloat() (float64, bool) {
	switch v.kind {
	case ValueFloat:
		return v.flt, true
	case ValueString, ValueInteger, ValueBoolean, ValueDatetime, ValueArray, ValueInlineTable:
		return 0, false
	}
	return 0, false
}

func (v *Value) AsBoolean() (bool, bool) {
	switch v.kind {
	case ValueBoolean:
		return v.bln, true
	case ValueString, ValueInteger, ValueFloat, ValueDatetime, ValueArray, ValueInlineTable:
		return false, false
	}
	return false, false
}

// AsDatetime returns the datetime in its TOML text form.
func (v *Value) AsDatetime() (string, bool) {
	switch v.kind {
	case ValueDatetime:
		return v.str, true
	case ValueString, ValueInteger, ValueFloat, ValueBoolean, ValueArray, ValueInlineTable:
		return "", false
	}
	return "", false
}

// AsArray returns the elements in place; callers that hand them out should
// Clone them first.
func (v *Value) AsArray() ([]*Value, bool) {
	switch v.kind {
	case ValueArray:
		return v.arr, true
	case ValueString, ValueInteger, ValueFloat, ValueBoolean, ValueDatetime, ValueInlineTable:
		return nil, false
	}
	return nil, false
}

func (v *Value) AsInlineTable() (*InlineTable, bool) {
	switch v.kind {
	case ValueInlineTable:
		return v.inline, true
	case ValueString, ValueInteger, ValueFloat, ValueBoolean, ValueDatetime, ValueArray:
		return nil, false
	}
	return nil, false
}

// Clone returns a deep copy that shares nothing with v.
func (v *Value) Clone() *Value {
	if v == nil {
		return nil
	}
	c := *v
	if v.arr != nil {
		c.arr = make([]*Value, len(v.arr))
		for i, e := range v.arr {
			c.arr[i] = e.Clone()
		}
	}
	if v.inline != nil {
		c.inline = v.inline.Clone()
	}
	return &c
}

// String renders v as a TOML value.
func (v *Value) String() string {
	var b strings.Builder
	writeValue(&b, v)
	return b.String()
}
