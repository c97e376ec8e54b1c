package edit

import (
	"fmt"

	"github.com/dzjyyds666/aqtoml/parse/toml"
	"gopkg.in/yaml.v3"
)

// ItemType names what item holds: "None", "Value", "Table" or
// "ArrayOfTables". Invalid handles report "None".
func (s *Store) ItemType(item Handle) string {
	it, err := s.items.Get(item)
	if err != nil {
		s.log.Debug("item type of invalid handle", "handle", item, "err", err)
		return toml.ItemNone.String()
	}
	return it.Kind().String()
}

// ItemValue returns a clone of the value held by a Value item.
func (s *Store) ItemValue(item Handle) (Handle, error) {
	const op = "item as value"
	it, err := s.item(op, item)
	if err != nil {
		return Null, err
	}
	v, ok := it.Value()
	if !ok {
		return Null, s.fail(op, fmt.Errorf("%w: item is %s, not Value", ErrWrongType, it.Kind()))
	}
	return s.values.Insert(v.Clone()), nil
}

// ItemTable returns a clone of the table held by a Table item.
func (s *Store) ItemTable(item Handle) (Handle, error) {
	const op = "item as table"
	it, err := s.item(op, item)
	if err != nil {
		return Null, err
	}
	t, ok := it.Table()
	if !ok {
		return Null, s.fail(op, fmt.Errorf("%w: item is %s, not Table", ErrWrongType, it.Kind()))
	}
	return s.tables.Insert(t.Clone()), nil
}

func (s *Store) ItemArrayOfTablesLen(item Handle) (int, error) {
	const op = "array of tables length"
	it, err := s.item(op, item)
	if err != nil {
		return 0, err
	}
	ts, ok := it.ArrayOfTables()
	if !ok {
		return 0, s.fail(op, fmt.Errorf("%w: item is %s, not ArrayOfTables", ErrWrongType, it.Kind()))
	}
	return len(ts), nil
}

// ItemArrayOfTablesAt returns a clone of the i-th table of an array of
// tables.
func (s *Store) ItemArrayOfTablesAt(item Handle, i int) (Handle, error) {
	const op = "array of tables index"
	it, err := s.item(op, item)
	if err != nil {
		return Null, err
	}
	ts, ok := it.ArrayOfTables()
	if !ok {
		return Null, s.fail(op, fmt.Errorf("%w: item is %s, not ArrayOfTables", ErrWrongType, it.Kind()))
	}
	if i < 0 || i >= len(ts) {
		return Null, s.fail(op, fmt.Errorf("%w: index %d of %d", ErrNotFound, i, len(ts)))
	}
	return s.tables.Insert(ts[i].Clone()), nil
}

// ItemArrayOfTablesSet replaces the i-th table of the array of tables held
// by item with a copy of table. The caller still owns table.
func (s *Store) ItemArrayOfTablesSet(item Handle, i int, table Handle) error {
	const op = "array of tables set"
	it, err := s.item(op, item)
	if err != nil {
		return err
	}
	ts, ok := it.ArrayOfTables()
	if !ok {
		return s.fail(op, fmt.Errorf("%w: item is %s, not ArrayOfTables", ErrWrongType, it.Kind()))
	}
	if i < 0 || i >= len(ts) {
		return s.fail(op, fmt.Errorf("%w: index %d of %d", ErrNotFound, i, len(ts)))
	}
	t, err := s.table(op, table)
	if err != nil {
		return err
	}
	ts[i] = t.Clone()
	return nil
}

func (s *Store) CloseItem(item Handle) error {
	return closeHandle(s, s.items, "item", item)
}

// Scalar constructors. Each returns a Value item ready for SetItem.

// NewStringItem fails with ErrParse unless v is valid UTF-8.
func (s *Store) NewStringItem(v string) (Handle, error) {
	if err := s.checkText("new string", "string", v); err != nil {
		return Null, err
	}
	return s.items.Insert(toml.ValueItem(toml.NewString(v))), nil
}

func (s *Store) NewIntegerItem(v int64) Handle {
	return s.items.Insert(toml.ValueItem(toml.NewInteger(v)))
}

func (s *Store) NewFloatItem(v float64) Handle {
	return s.items.Insert(toml.ValueItem(toml.NewFloat(v)))
}

func (s *Store) NewBooleanItem(v bool) Handle {
	return s.items.Insert(toml.ValueItem(toml.NewBoolean(v)))
}

// NewDatetimeItem fails with ErrParse unless text is an offset or local
// datetime, a local date or a local time.
func (s *Store) NewDatetimeItem(text string) (Handle, error) {
	v, err := toml.NewDatetime(text)
	if err != nil {
		return Null, s.fail("new datetime", fmt.Errorf("%w: %w", ErrParse, err))
	}
	return s.items.Insert(toml.ValueItem(v)), nil
}

// NewInlineTableItem returns a Value item holding an empty inline table.
func (s *Store) NewInlineTableItem() Handle {
	return s.items.Insert(toml.ValueItem(toml.NewInlineTableValue(nil)))
}

// ItemYAML converts the item to a YAML node tree, nil for None items.
func (s *Store) ItemYAML(item Handle) (*yaml.Node, error) {
	it, err := s.item("item to yaml", item)
	if err != nil {
		return nil, err
	}
	return toml.ItemToYAML(it), nil
}
