package toml

import (
	"iter"
	"strconv"
	"strings"
)

// =========================
// Ordered containers
// =========================

// ordered is an insertion-ordered map with unique keys.
type ordered[V any] struct {
	keys []string
	vals []V
	idx  map[string]int
}

func (o *ordered[V]) get(key string) (V, bool) {
	i, ok := o.idx[key]
	if !ok {
		var zero V
		return zero, false
	}
	return o.vals[i], true
}

// set replaces in place when key exists and appends otherwise.
func (o *ordered[V]) set(key string, v V) {
	if i, ok := o.idx[key]; ok {
		o.vals[i] = v
		return
	}
	if o.idx == nil {
		o.idx = make(map[string]int)
	}
	o.idx[key] = len(o.keys)
	o.keys = append(o.keys, key)
	o.vals = append(o.vals, v)
}

func (o *ordered[V]) remove(key string) bool {
	i, ok := o.idx[key]
	if !ok {
		return false
	}
	o.keys = append(o.keys[:i], o.keys[i+1:]...)
	o.vals = append(o.vals[:i], o.vals[i+1:]...)
	delete(o.idx, key)
	for j := i; j < len(o.keys); j++ {
		o.idx[o.keys[j]] = j
	}
	return true
}

func (o *ordered[V]) all() iter.Seq2[string, V] {
	return func(yield func(string, V) bool) {
		for i, k := range o.keys {
			if !yield(k, o.vals[i]) {
				return
			}
		}
	}
}

func (o *ordered[V]) clone(cp func(V) V) ordered[V] {
	c := ordered[V]{
		keys: append([]string(nil), o.keys...),
		vals: make([]V, len(o.vals)),
		idx:  make(map[string]int, len(o.keys)),
	}
	for i, v := range o.vals {
		c.vals[i] = cp(v)
		c.idx[o.keys[i]] = i
	}
	return c
}

// =========================
// InlineTable
// =========================

// InlineTable maps keys to values only; it is itself embeddable as a Value.
type InlineTable struct {
	entries ordered[*Value]
}

func NewInlineTable() *InlineTable { return &InlineTable{} }

func (t *InlineTable) Len() int { return len(t.entries.keys) }

func (t *InlineTable) Keys() []string { return append([]string(nil), t.entries.keys...) }

func (t *InlineTable) Get(key string) (*Value, bool) { return t.entries.get(key) }

func (t *InlineTable) Set(key string, v *Value) { t.entries.set(key, v) }

func (t *InlineTable) Remove(key string) bool { return t.entries.remove(key) }

func (t *InlineTable) Contains(key string) bool {
	_, ok := t.entries.idx[key]
	return ok
}

func (t *InlineTable) All() iter.Seq2[string, *Value] { return t.entries.all() }

func (t *InlineTable) Clone() *InlineTable {
	if t == nil {
		return nil
	}
	return &InlineTable{entries: t.entries.clone((*Value).Clone)}
}

// =========================
// Table
// =========================

type Table struct {
	entries ordered[*Item]

	// implicit tables exist only as parents of a deeper header and print no
	// header of their own unless they gain values.
	implicit bool
	// dotted tables were created by a dotted key and render as a.b = v.
	dotted bool
	// defined marks a table opened by its own header; parse-time only.
	defined bool
}

func NewTable() *Table { return &Table{} }

func (t *Table) Len() int { return len(t.entries.keys) }

func (t *Table) Keys() []string { return append([]string(nil), t.entries.keys...) }

func (t *Table) Get(key string) (*Item, bool) { return t.entries.get(key) }

// Set inserts or replaces key. A nil item is stored as None.
func (t *Table) Set(key string, item *Item) {
	if item == nil {
		item = NoneItem()
	}
	t.entries.set(key, item)
}

func (t *Table) Remove(key string) bool { return t.entries.remove(key) }

func (t *Table) Contains(key string) bool {
	_, ok := t.entries.idx[key]
	return ok
}

func (t *Table) All() iter.Seq2[string, *Item] { return t.entries.all() }

// Implicit reports whether the table only exists as the parent of a header.
func (t *Table) Implicit() bool { return t.implicit }

func (t *Table) SetImplicit(implicit bool) { t.implicit = implicit }

// Dotted reports whether the table renders as dotted keys in its parent.
func (t *Table) Dotted() bool { return t.dotted }

func (t *Table) SetDotted(dotted bool) { t.dotted = dotted }

func (t *Table) Clone() *Table {
	if t == nil {
		return nil
	}
	return &Table{
		entries:  t.entries.clone((*Item).Clone),
		implicit: t.implicit,
		dotted:   t.dotted,
	}
}

// String renders the table as a standalone document fragment.
func (t *Table) String() string {
	var e encoder
	e.table(nil, t, false)
	return e.String()
}

// =========================
// Item
// =========================

type ItemKind uint8

const (
	ItemNone ItemKind = iota
	ItemValue
	ItemTable
	ItemArrayOfTables
)

func (k ItemKind) String() string {
	switch k {
	case ItemNone:
		return "None"
	case ItemValue:
		return "Value"
	case ItemTable:
		return "Table"
	case ItemArrayOfTables:
		return "ArrayOfTables"
	default:
		return "ItemKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Item is the unit stored under a Table key.
type Item struct {
	kind   ItemKind
	value  *Value
	table  *Table
	tables []*Table
}

func NoneItem() *Item { return &Item{kind: ItemNone} }

func ValueItem(v *Value) *Item {
	if v == nil {
		return NoneItem()
	}
	return &Item{kind: ItemValue, value: v}
}

func TableItem(t *Table) *Item {
	if t == nil {
		return NoneItem()
	}
	return &Item{kind: ItemTable, table: t}
}

func ArrayOfTablesItem(ts ...*Table) *Item {
	return &Item{kind: ItemArrayOfTables, tables: append([]*Table(nil), ts...)}
}

func (it *Item) Kind() ItemKind { return it.kind }

func (it *Item) Value() (*Value, bool) {
	switch it.kind {
	case ItemValue:
		return it.value, true
	case ItemNone, ItemTable, ItemArrayOfTables:
		return nil, false
	}
	return nil, false
}

func (it *Item) Table() (*Table, bool) {
	switch it.kind {
	case ItemTable:
		return it.table, true
	case ItemNone, ItemValue, ItemArrayOfTables:
		return nil, false
	}
	return nil, false
}

func (it *Item) ArrayOfTables() ([]*Table, bool) {
	switch it.kind {
	case ItemArrayOfTables:
		return it.tables, true
	case ItemNone, ItemValue, ItemTable:
		return nil, false
	}
	return nil, false
}

func (it *Item) Clone() *Item {
	if it == nil {
		return nil
	}
	c := &Item{kind: it.kind, value: it.value.Clone(), table: it.table.Clone()}
	if it.tables != nil {
		c.tables = make([]*Table, len(it.tables))
		for i, t := range it.tables {
			c.tables[i] = t.Clone()
		}
	}
	return c
}

// =========================
// Document
// =========================

// Document is a root table plus the formatting state needed to write it back.
type Document struct {
	root *Table
	eol  string
}

func NewDocument() *Document { return &Document{root: NewTable(), eol: "\n"} }

// Root returns the root table in place.
func (d *Document) Root() *Table { return d.root }

// TableKeys lists the root keys whose item is a Table, in order.
func (d *Document) TableKeys() []string {
	var keys []string
	for k, it := range d.root.All() {
		if it.Kind() == ItemTable {
			keys = append(keys, k)
		}
	}
	return keys
}

func (d *Document) Clone() *Document {
	return &Document{root: d.root.Clone(), eol: d.eol}
}

func (d *Document) String() string {
	s := d.root.String()
	if d.eol != "\n" {
		s = strings.ReplaceAll(s, "\n", d.eol)
	}
	return s
}

// =========================
// Safe Access Helpers
// =========================

// Get walks path from t through nested tables and returns the item at the
// end. The item is returned in place.
func Get(t *Table, path ...string) (*Item, bool) {
	it := TableItem(t)
	for _, p := range path {
		cur, ok := it.Table()
		if !ok {
			return nil, false
		}
		if it, ok = cur.Get(p); !ok {
			return nil, false
		}
	}
	return it, true
}
