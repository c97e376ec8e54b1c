package edit

import (
	"fmt"

	"github.com/dzjyyds666/aqtoml/parse/toml"
)

func (s *Store) NewInlineTable() Handle {
	return s.inlines.Insert(toml.NewInlineTable())
}

// InlineTableToItem wraps a clone of the inline table as a Value item.
func (s *Store) InlineTableToItem(inline Handle) (Handle, error) {
	t, err := s.inline("inline table to item", inline)
	if err != nil {
		return Null, err
	}
	return s.items.Insert(toml.ValueItem(toml.NewInlineTableValue(t.Clone()))), nil
}

// InlineTableValue returns a clone of the value under key.
func (s *Store) InlineTableValue(inline Handle, key string) (Handle, error) {
	const op = "inline table get item"
	t, err := s.inline(op, inline)
	if err != nil {
		return Null, err
	}
	v, ok := t.Get(key)
	if !ok {
		return Null, s.fail(op, fmt.Errorf("%w: %q", ErrNotFound, key))
	}
	return s.values.Insert(v.Clone()), nil
}

// InlineTableSetItem writes a copy of the value wrapped by item under key.
// Items that are not Value-tagged fail with ErrWrongType and leave the
// inline table untouched.
func (s *Store) InlineTableSetItem(inline Handle, key string, item Handle) error {
	const op = "inline table set item"
	t, err := s.inline(op, inline)
	if err != nil {
		return err
	}
	if err := s.checkText(op, "key", key); err != nil {
		return err
	}
	it, err := s.item(op, item)
	if err != nil {
		return err
	}
	v, ok := it.Value()
	if !ok {
		return s.fail(op, wrongType(key, it.Kind(), "Value"))
	}
	t.Set(key, v.Clone())
	return nil
}

func (s *Store) InlineTableRemove(inline Handle, key string) (bool, error) {
	t, err := s.inline("inline table remove item", inline)
	if err != nil {
		return false, err
	}
	return t.Remove(key), nil
}

func (s *Store) InlineTableContains(inline Handle, key string) (bool, error) {
	t, err := s.inline("inline table contains item", inline)
	if err != nil {
		return false, err
	}
	return t.Contains(key), nil
}

func (s *Store) InlineTableKeys(inline Handle) ([]string, error) {
	t, err := s.inline("inline table list items", inline)
	if err != nil {
		return nil, err
	}
	return t.Keys(), nil
}

func (s *Store) CloseInlineTable(inline Handle) error {
	return closeHandle(s, s.inlines, "inline table", inline)
}
