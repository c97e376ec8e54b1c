package edit

import (
	"fmt"

	"github.com/dzjyyds666/aqtoml/parse/toml"
)

func (s *Store) NewTable() Handle {
	return s.tables.Insert(toml.NewTable())
}

// TableString renders the table as a document fragment.
func (s *Store) TableString(table Handle) (string, error) {
	t, err := s.table("table to string", table)
	if err != nil {
		return "", err
	}
	return t.String(), nil
}

// TableToItem wraps a clone of the table in a Table item.
func (s *Store) TableToItem(table Handle) (Handle, error) {
	t, err := s.table("table to item", table)
	if err != nil {
		return Null, err
	}
	return s.items.Insert(toml.TableItem(t.Clone())), nil
}

// TableItem returns a clone of the item under key.
func (s *Store) TableItem(table Handle, key string) (Handle, error) {
	const op = "table get item"
	t, err := s.table(op, table)
	if err != nil {
		return Null, err
	}
	it, ok := t.Get(key)
	if !ok {
		return Null, s.fail(op, fmt.Errorf("%w: %q", ErrNotFound, key))
	}
	return s.items.Insert(it.Clone()), nil
}

// TableSetItem writes a copy of item under key: replaced in place when key
// exists, appended otherwise. The caller still owns item.
func (s *Store) TableSetItem(table Handle, key string, item Handle) error {
	const op = "table set item"
	t, err := s.table(op, table)
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
	t.Set(key, it.Clone())
	return nil
}

// TableRemove reports whether key was present and removed.
func (s *Store) TableRemove(table Handle, key string) (bool, error) {
	t, err := s.table("table remove item", table)
	if err != nil {
		return false, err
	}
	return t.Remove(key), nil
}

func (s *Store) TableContains(table Handle, key string) (bool, error) {
	t, err := s.table("table contains item", table)
	if err != nil {
		return false, err
	}
	return t.Contains(key), nil
}

// TableKeys lists every key in order, whatever its item holds.
func (s *Store) TableKeys(table Handle) ([]string, error) {
	t, err := s.table("table list items", table)
	if err != nil {
		return nil, err
	}
	return t.Keys(), nil
}

func (s *Store) CloseTable(table Handle) error {
	return closeHandle(s, s.tables, "table", table)
}
