package edit

import (
	"fmt"

	"github.com/dzjyyds666/aqtoml/parse/toml"
)

// ValueType names the value's type, e.g. "String" or "InlineTable".
func (s *Store) ValueType(value Handle) (string, error) {
	v, err := s.value("value type", value)
	if err != nil {
		return "", err
	}
	return v.Kind().String(), nil
}

// RenderValue returns the value as it would appear right of '='.
func (s *Store) RenderValue(value Handle) (string, error) {
	v, err := s.value("render value", value)
	if err != nil {
		return "", err
	}
	return v.String(), nil
}

// ValueToItem wraps a clone of the value in a Value item.
func (s *Store) ValueToItem(value Handle) (Handle, error) {
	v, err := s.value("value to item", value)
	if err != nil {
		return Null, err
	}
	return s.items.Insert(toml.ValueItem(v.Clone())), nil
}

func (s *Store) ValueString(value Handle) (string, error) {
	return extract(s, value, toml.ValueString, (*toml.Value).AsString)
}

func (s *Store) ValueInteger(value Handle) (int64, error) {
	return extract(s, value, toml.ValueInteger, (*toml.Value).AsInteger)
}

func (s *Store) ValueFloat(value Handle) (float64, error) {
	return extract(s, value, toml.ValueFloat, (*toml.Value).AsFloat)
}

func (s *Store) ValueBoolean(value Handle) (bool, error) {
	return extract(s, value, toml.ValueBoolean, (*toml.Value).AsBoolean)
}

// ValueDatetime returns the datetime in its canonical text form.
func (s *Store) ValueDatetime(value Handle) (string, error) {
	return extract(s, value, toml.ValueDatetime, (*toml.Value).AsDatetime)
}

// ValueInlineTable returns a clone of the inline table held by value.
func (s *Store) ValueInlineTable(value Handle) (Handle, error) {
	t, err := extract(s, value, toml.ValueInlineTable, (*toml.Value).AsInlineTable)
	if err != nil {
		return Null, err
	}
	return s.inlines.Insert(t.Clone()), nil
}

func (s *Store) CloseValue(value Handle) error {
	return closeHandle(s, s.values, "value", value)
}

func extract[T any](s *Store, h Handle, want toml.ValueKind, as func(*toml.Value) (T, bool)) (T, error) {
	var zero T
	op := "value as " + want.String()
	v, err := s.value(op, h)
	if err != nil {
		return zero, err
	}
	x, ok := as(v)
	if !ok {
		return zero, s.fail(op, fmt.Errorf("%w: value is %s, not %s", ErrWrongType, v.Kind(), want))
	}
	return x, nil
}
