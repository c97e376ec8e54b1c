package toml

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// =========================
// Rendering
// =========================

// encoder writes a table tree. A table's key/value lines and dotted keys
// come in insertion order, and so do its sub-table sections. The [header]
// of a table is written after any sub-table sections that precede its first
// key/value line, so a parent defined after its children keeps its key
// order.
type encoder struct {
	strings.Builder
}

// table writes t below path. With header set, t gets a [path] header.
func (e *encoder) table(path []string, t *Table, header bool) {
	split := 0
	if header {
		split = leadingSections(t)
	}
	e.sections(path, t, 0, split)
	if header {
		e.header(path, false)
	}
	e.body(nil, t)
	e.sections(path, t, split, t.Len())
}

func (e *encoder) body(prefix []string, t *Table) {
	for k, it := range t.All() {
		if !inBody(it) {
			continue
		}
		switch it.kind {
		case ItemValue:
			writeKeyPath(&e.Builder, prefix, k)
			e.WriteString(" = ")
			writeValue(&e.Builder, it.value)
			e.WriteByte('\n')
		case ItemTable:
			// an emptied dotted table keeps its key as an empty inline table
			if it.table.Len() == 0 {
				writeKeyPath(&e.Builder, prefix, k)
				e.WriteString(" = {}\n")
				continue
			}
			e.body(appendPath(prefix, k), it.table)
		case ItemNone, ItemArrayOfTables:
		}
	}
}

// sections writes the sub-table sections among entries [from, to) of t.
func (e *encoder) sections(path []string, t *Table, from, to int) {
	for i := from; i < to; i++ {
		it := t.entries.vals[i]
		sub := appendPath(path, t.entries.keys[i])
		switch it.kind {
		case ItemTable:
			if it.table.dotted {
				e.sections(sub, it.table, 0, it.table.Len())
				continue
			}
			e.table(sub, it.table, !it.table.implicit || it.table.Len() == 0 || hasBody(it.table))
		case ItemArrayOfTables:
			for _, at := range it.tables {
				e.header(sub, true)
				e.table(sub, at, false)
			}
		case ItemNone, ItemValue:
		}
	}
}

func (e *encoder) header(path []string, array bool) {
	if e.Len() > 0 {
		e.WriteByte('\n')
	}
	open, closing := "[", "]\n"
	if array {
		open, closing = "[[", "]]\n"
	}
	e.WriteString(open)
	writeKeyPath(&e.Builder, path[:len(path)-1], path[len(path)-1])
	e.WriteString(closing)
}

// inBody reports whether it renders as key/value lines of its parent.
func inBody(it *Item) bool {
	switch it.kind {
	case ItemValue:
		return true
	case ItemTable:
		return it.table.dotted && (it.table.Len() == 0 || hasBody(it.table))
	case ItemNone, ItemArrayOfTables:
	}
	return false
}

func hasBody(t *Table) bool {
	for _, it := range t.entries.vals {
		if inBody(it) {
			return true
		}
	}
	return false
}

// leadingSections counts the entries ahead of the first key/value line of
// t, or returns 0 when t has none.
func leadingSections(t *Table) int {
	for i, it := range t.entries.vals {
		if inBody(it) {
			return i
		}
	}
	return 0
}

func appendPath(path []string, k string) []string {
	return append(append(make([]string, 0, len(path)+1), path...), k)
}

func writeKeyPath(b *strings.Builder, prefix []string, last string) {
	for _, k := range prefix {
		writeKey(b, k)
		b.WriteByte('.')
	}
	writeKey(b, last)
}

func writeKey(b *strings.Builder, k string) {
	bare := k != ""
	for i := 0; i < len(k) && bare; i++ {
		bare = isBareKeyChar(k[i])
	}
	if bare {
		b.WriteString(k)
		return
	}
	writeBasicString(b, k)
}

func writeValue(b *strings.Builder, v *Value) {
	if v.raw != "" {
		b.WriteString(v.raw)
		return
	}
	switch v.kind {
	case ValueString:
		writeBasicString(b, v.str)
	case ValueInteger:
		b.WriteString(strconv.FormatInt(v.num, 10))
	case ValueFloat:
		b.WriteString(formatFloat(v.flt))
	case ValueBoolean:
		b.WriteString(strconv.FormatBool(v.bln))
	case ValueDatetime:
		b.WriteString(v.str)
	case ValueArray:
		b.WriteByte('[')
		for i, e := range v.arr {
			if i > 0 {
				b.WriteString(", ")
			}
			writeValue(b, e)
		}
		b.WriteByte(']')
	case ValueInlineTable:
		if v.inline.Len() == 0 {
			b.WriteString("{}")
			return
		}
		b.WriteString("{ ")
		first := true
		for k, e := range v.inline.All() {
			if !first {
				b.WriteString(", ")
			}
			first = false
			writeKey(b, k)
			b.WriteString(" = ")
			writeValue(b, e)
		}
		b.WriteString(" }")
	}
}

func formatFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case math.IsNaN(f):
		return "nan"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

func writeBasicString(b *strings.Builder, s string) {
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\b':
			b.WriteString(`\b`)
		case '\t':
			b.WriteString(`\t`)
		case '\n':
			b.WriteString(`\n`)
		case '\f':
			b.WriteString(`\f`)
		case '\r':
			b.WriteString(`\r`)
		default:
			if r < 0x20 || r == 0x7f {
				fmt.Fprintf(b, `\u%04X`, r)
				continue
			}
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
}
