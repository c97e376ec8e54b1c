// Package toml is the text engine behind the handle layer: an ordered,
// tagged document tree, a line-oriented parser and a renderer that writes
// keys back in the order they were read.
//
// Scope:
// - TOML v1.0.0 core features
// - Explicit tree (Document / Table / InlineTable / Item / Value)
// - Insertion order kept for round trips
// - Source text of scalars kept for round trips
// - Deterministic, line-numbered errors
//
// Comments and blank-line layout are not preserved.
package toml

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

const maxLineSize = 4 << 20

// ParseError describes malformed document text.
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	if e.Line == 0 {
		return "toml: " + e.Msg
	}
	return fmt.Sprintf("toml:%d: %s", e.Line, e.Msg)
}

// =========================
// Public API
// =========================

// Parse reads a whole document from r.
func Parse(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return ParseString(string(data))
}

func ParseString(src string) (*Document, error) {
	src = strings.TrimPrefix(src, "\ufeff")
	if !utf8.ValidString(src) {
		return nil, &ParseError{Msg: "document is not valid UTF-8"}
	}
	p := &parser{
		scanner: bufio.NewScanner(strings.NewReader(src)),
		root:    NewTable(),
	}
	p.scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	p.cur = p.root

	for p.scanner.Scan() {
		line := strings.TrimSpace(p.scanner.Text())
		p.lineNo++

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if strings.HasPrefix(line, "[") {
			if err := p.parseTableHeader(line); err != nil {
				return nil, err
			}
			continue
		}
		idx := findUnquotedEqual(line)
		if idx < 0 {
			return nil, p.errf("invalid syntax")
		}
		if err := p.parseKeyValue(line, idx); err != nil {
			return nil, err
		}
	}

	if err := p.scanner.Err(); err != nil {
		return nil, err
	}

	doc := &Document{root: p.root, eol: "\n"}
	if strings.Contains(src, "\r\n") {
		doc.eol = "\r\n"
	}
	return doc, nil
}

// =========================
// Parser Implementation
// =========================

type parser struct {
	scanner *bufio.Scanner
	root    *Table
	cur     *Table
	lineNo  int
}

func (p *parser) parseTableHeader(line string) error {
	s := strings.TrimSpace(stripComment(line))
	isArray := strings.HasPrefix(s, "[[")
	var name string
	if isArray {
		if len(s) < 4 || !strings.HasSuffix(s, "]]") {
			return p.errf("invalid array-of-tables header")
		}
		name = s[2 : len(s)-2]
	} else {
		if len(s) < 2 || !strings.HasSuffix(s, "]") {
			return p.errf("invalid table header")
		}
		name = s[1 : len(s)-1]
	}
	parts, err := parseKeyParts(name)
	if err != nil {
		return p.errf(err.Error())
	}

	parent, err := p.descend(p.root, parts[:len(parts)-1], false)
	if err != nil {
		return err
	}
	last := parts[len(parts)-1]
	existing, ok := parent.Get(last)

	if isArray {
		if !ok {
			existing = ArrayOfTablesItem()
			parent.Set(last, existing)
		} else if existing.Kind() != ItemArrayOfTables {
			return p.errf(fmt.Sprintf("key %q already defined and is not an array of tables", last))
		}
		t := &Table{defined: true}
		existing.tables = append(existing.tables, t)
		p.cur = t
		return nil
	}

	if !ok {
		t := &Table{defined: true}
		parent.Set(last, TableItem(t))
		p.cur = t
		return nil
	}
	t, isTable := existing.Table()
	if !isTable || t.defined || t.dotted {
		return p.errf(fmt.Sprintf("table %q already defined", strings.Join(parts, ".")))
	}
	t.defined = true
	t.implicit = false
	p.cur = t
	return nil
}

// descend walks parts below t, creating missing tables. Tables created for a
// dotted key are marked dotted, those created for a header implicit.
func (p *parser) descend(t *Table, parts []string, dotted bool) (*Table, error) {
	for _, part := range parts {
		n, ok := t.Get(part)
		if !ok {
			next := &Table{dotted: dotted, implicit: !dotted}
			t.Set(part, TableItem(next))
			t = next
			continue
		}
		switch n.Kind() {
		case ItemTable:
			if dotted && !n.table.dotted {
				return nil, p.errf(fmt.Sprintf("key %q already defined as a table", part))
			}
			t = n.table
		case ItemArrayOfTables:
			if dotted || len(n.tables) == 0 {
				return nil, p.errf(fmt.Sprintf("key %q already defined as an array of tables", part))
			}
			t = n.tables[len(n.tables)-1]
		case ItemNone, ItemValue:
			return nil, p.errf(fmt.Sprintf("key %q already defined and is not a table", part))
		}
	}
	return t, nil
}

func (p *parser) parseKeyValue(line string, idx int) error {
	parts, err := parseKeyParts(line[:idx])
	if err != nil {
		return p.errf(err.Error())
	}

	t, err := p.descend(p.cur, parts[:len(parts)-1], true)
	if err != nil {
		return err
	}

	last := parts[len(parts)-1]
	if t.Contains(last) {
		return p.errf(fmt.Sprintf("duplicate key %q", last))
	}

	text, err := p.readValue(line[idx+1:])
	if err != nil {
		return err
	}
	v, err := parseValue(strings.TrimSpace(text))
	if err != nil {
		return p.errf(err.Error())
	}

	t.Set(last, ValueItem(v))
	return nil
}

// readValue collects the value text starting at first, pulling further lines
// while a multi-line string or a bracketed value is still open. Comments
// outside strings are dropped.
func (p *parser) readValue(first string) (string, error) {
	var (
		q     quoteScanner
		b     strings.Builder
		depth int
	)
	line := first
	for {
		cut := len(line)
		q.walk(line, func(i int) bool {
			switch line[i] {
			case '#':
				cut = i
				return false
			case '[', '{':
				depth++
			case ']', '}':
				depth--
			}
			return true
		})
		b.WriteString(line[:cut])

		if q.quote != 0 && !q.multi {
			return "", p.errf("unterminated string")
		}
		if q.quote == 0 && depth <= 0 {
			return b.String(), nil
		}
		if !p.scanner.Scan() {
			if q.quote != 0 {
				return "", p.errf("unterminated multi-line string")
			}
			return "", p.errf("unterminated compound value")
		}
		p.lineNo++
		line = p.scanner.Text()
		b.WriteByte('\n')
	}
}

func (p *parser) errf(msg string) error {
	return &ParseError{Line: p.lineNo, Msg: msg}
}

// =========================
// Value Parsing
// =========================

func parseValue(s string) (*Value, error) {
	if s == "" {
		return nil, errors.New("empty value")
	}
	switch s[0] {
	case '"', '\'':
		str, err := parseStringToken(s)
		if err != nil {
			return nil, err
		}
		return &Value{kind: ValueString, str: str, raw: s}, nil
	case '[':
		return parseArrayToken(s)
	case '{':
		return parseInlineTableToken(s)
	}
	switch s {
	case "true", "false":
		return &Value{kind: ValueBoolean, bln: s == "true", raw: s}, nil
	case "inf", "+inf":
		return &Value{kind: ValueFloat, flt: math.Inf(+1), raw: s}, nil
	case "-inf":
		return &Value{kind: ValueFloat, flt: math.Inf(-1), raw: s}, nil
	case "nan", "+nan", "-nan":
		return &Value{kind: ValueFloat, flt: math.NaN(), raw: s}, nil
	}
	if isDatetime(s) {
		return &Value{kind: ValueDatetime, str: s, raw: s}, nil
	}
	if i, err := parseIntToken(s); err == nil {
		return &Value{kind: ValueInteger, num: i, raw: s}, nil
	}
	if f, err := parseFloatToken(s); err == nil {
		return &Value{kind: ValueFloat, flt: f, raw: s}, nil
	}
	return nil, fmt.Errorf("unsupported value %q", s)
}

func parseStringToken(s string) (string, error) {
	end := stringEnd(s)
	if end < 0 {
		return "", errors.New("unterminated string")
	}
	if end != len(s) {
		return "", fmt.Errorf("unexpected %q after string", s[end:])
	}
	switch {
	case strings.HasPrefix(s, `"""`):
		return decodeBasicString(trimLeadingNewline(s[3:end-3]), true)
	case strings.HasPrefix(s, `'''`):
		return trimLeadingNewline(s[3 : end-3]), nil
	}
	content := s[1 : end-1]
	if strings.ContainsAny(content, "\r\n") {
		return "", errors.New("newline in single-line string")
	}
	if s[0] == '\'' {
		return content, nil
	}
	return decodeBasicString(content, false)
}

func parseArrayToken(s string) (*Value, error) {
	if groupEnd(s) != len(s) {
		return nil, errors.New("invalid array")
	}
	parts := splitTopLevel(s[1:len(s)-1], ',')
	arr := &Value{kind: ValueArray, arr: make([]*Value, 0, len(parts))}
	for i, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			if i == len(parts)-1 {
				continue
			}
			return nil, errors.New("empty array element")
		}
		v, err := parseValue(part)
		if err != nil {
			return nil, err
		}
		arr.arr = append(arr.arr, v)
	}
	return arr, nil
}

func parseInlineTableToken(s string) (*Value, error) {
	if groupEnd(s) != len(s) {
		return nil, errors.New("invalid inline table")
	}
	t := NewInlineTable()
	for _, pair := range splitTopLevel(s[1:len(s)-1], ',') {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		idx := findUnquotedEqual(pair)
		if idx < 0 {
			return nil, fmt.Errorf("invalid inline table entry %q", pair)
		}
		parts, err := parseKeyParts(pair[:idx])
		if err != nil {
			return nil, err
		}
		cur := t
		for _, part := range parts[:len(parts)-1] {
			v, ok := cur.Get(part)
			if !ok {
				next := NewInlineTable()
				cur.Set(part, NewInlineTableValue(next))
				cur = next
				continue
			}
			next, isTable := v.AsInlineTable()
			if !isTable {
				return nil, fmt.Errorf("key %q already defined and is not a table", part)
			}
			cur = next
		}
		last := parts[len(parts)-1]
		if cur.Contains(last) {
			return nil, fmt.Errorf("duplicate inline table key %q", last)
		}
		v, err := parseValue(strings.TrimSpace(pair[idx+1:]))
		if err != nil {
			return nil, err
		}
		cur.Set(last, v)
	}
	return NewInlineTableValue(t), nil
}

var (
	decIntRe = regexp.MustCompile(`^[+-]?(0|[1-9](_?[0-9])*)$`)
	hexIntRe = regexp.MustCompile(`^0x[0-9A-Fa-f](_?[0-9A-Fa-f])*$`)
	octIntRe = regexp.MustCompile(`^0o[0-7](_?[0-7])*$`)
	binIntRe = regexp.MustCompile(`^0b[01](_?[01])*$`)
	floatRe  = regexp.MustCompile(`^[+-]?(0|[1-9](_?[0-9])*)(\.[0-9](_?[0-9])*)?([eE][+-]?[0-9](_?[0-9])*)?$`)
)

func parseIntToken(s string) (int64, error) {
	var base int
	switch {
	case decIntRe.MatchString(s):
		return strconv.ParseInt(strings.ReplaceAll(s, "_", ""), 10, 64)
	case hexIntRe.MatchString(s):
		base = 16
	case octIntRe.MatchString(s):
		base = 8
	case binIntRe.MatchString(s):
		base = 2
	default:
		return 0, fmt.Errorf("invalid integer %q", s)
	}
	u, err := strconv.ParseUint(strings.ReplaceAll(s[2:], "_", ""), base, 64)
	if err != nil {
		return 0, err
	}
	if u > math.MaxInt64 {
		return 0, fmt.Errorf("integer %q overflows int64", s)
	}
	return int64(u), nil
}

func parseFloatToken(s string) (float64, error) {
	if !floatRe.MatchString(s) || !strings.ContainsAny(s, ".eE") {
		return 0, fmt.Errorf("invalid float %q", s)
	}
	return strconv.ParseFloat(strings.ReplaceAll(s, "_", ""), 64)
}

var datetimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
	"15:04:05",
}

func isDatetime(s string) bool {
	if len(s) < 8 {
		return false
	}
	n := s
	if len(n) > 10 && (n[10] == ' ' || n[10] == 't') {
		n = n[:10] + "T" + n[11:]
	}
	n = strings.ToUpper(n)
	for _, layout := range datetimeLayouts {
		if _, err := time.Parse(layout, n); err == nil {
			return true
		}
	}
	return false
}

// =========================
// Utilities
// =========================

// quoteScanner tracks whether the scan position sits inside a TOML string.
// Its state survives across calls, so a multi-line string may be fed one
// line at a time.
type quoteScanner struct {
	quote byte
	multi bool
}

// walk calls fn for every byte of s outside a string body, including the
// opening quote of each string. It stops when fn returns false.
func (q *quoteScanner) walk(s string, fn func(i int) bool) {
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if q.quote != 0 {
			if q.quote == '"' && ch == '\\' {
				i++
				continue
			}
			if ch != q.quote {
				continue
			}
			if !q.multi {
				q.quote = 0
				continue
			}
			n := runLength(s[i:], ch)
			if n >= 3 {
				q.quote, q.multi = 0, false
				i += min(n, 5) - 1
			}
			continue
		}
		if !fn(i) {
			return
		}
		if ch == '"' || ch == '\'' {
			q.quote = ch
			if runLength(s[i:], ch) >= 3 {
				q.multi = true
				i += 2
			}
		}
	}
}

func runLength(s string, ch byte) int {
	n := 0
	for n < len(s) && s[n] == ch {
		n++
	}
	return n
}

// stringEnd returns the offset just past the string that opens s, or -1
// when it never closes.
func stringEnd(s string) int {
	var q quoteScanner
	end := len(s)
	q.walk(s, func(i int) bool {
		if i == 0 {
			return true
		}
		end = i
		return false
	})
	if end == len(s) && q.quote != 0 {
		return -1
	}
	return end
}

// groupEnd returns the offset just past the bracket group that opens s, or
// -1 when it never closes.
func groupEnd(s string) int {
	var q quoteScanner
	depth, end := 0, -1
	q.walk(s, func(i int) bool {
		switch s[i] {
		case '[', '{':
			depth++
		case ']', '}':
			depth--
			if depth == 0 {
				end = i + 1
				return false
			}
		}
		return true
	})
	return end
}

func stripComment(s string) string {
	var q quoteScanner
	cut := len(s)
	q.walk(s, func(i int) bool {
		if s[i] == '#' {
			cut = i
			return false
		}
		return true
	})
	return s[:cut]
}

func findUnquotedEqual(s string) int {
	var q quoteScanner
	idx := -1
	q.walk(s, func(i int) bool {
		if s[i] == '=' {
			idx = i
			return false
		}
		return true
	})
	return idx
}

func splitTopLevel(s string, sep byte) []string {
	var (
		q     quoteScanner
		parts []string
		depth int
		start int
	)
	q.walk(s, func(i int) bool {
		switch s[i] {
		case '[', '{':
			depth++
		case ']', '}':
			depth--
		case sep:
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
		return true
	})
	return append(parts, s[start:])
}

func parseKeyParts(s string) ([]string, error) {
	var parts []string
	s = strings.TrimSpace(s)
	for {
		if s == "" {
			return nil, errors.New("empty key")
		}
		var part string
		switch s[0] {
		case '"', '\'':
			if runLength(s, s[0]) >= 3 {
				return nil, errors.New("multi-line string used as key")
			}
			end := stringEnd(s)
			if end < 0 {
				return nil, errors.New("unterminated quoted key")
			}
			part = s[1 : end-1]
			if s[0] == '"' {
				decoded, err := decodeBasicString(part, false)
				if err != nil {
					return nil, err
				}
				part = decoded
			}
			s = s[end:]
		default:
			i := 0
			for i < len(s) && isBareKeyChar(s[i]) {
				i++
			}
			if i == 0 {
				return nil, fmt.Errorf("invalid character %q in key", s[0])
			}
			part, s = s[:i], s[i:]
		}
		parts = append(parts, part)
		s = strings.TrimLeft(s, " \t")
		if s == "" {
			return parts, nil
		}
		if s[0] != '.' {
			return nil, fmt.Errorf("unexpected %q in key", s)
		}
		s = strings.TrimLeft(s[1:], " \t")
	}
}

func isBareKeyChar(ch byte) bool {
	return ch >= 'A' && ch <= 'Z' || ch >= 'a' && ch <= 'z' || ch >= '0' && ch <= '9' || ch == '_' || ch == '-'
}

func trimLeadingNewline(s string) string {
	if strings.HasPrefix(s, "\r\n") {
		return s[2:]
	}
	return strings.TrimPrefix(s, "\n")
}

func decodeBasicString(s string, multiline bool) (string, error) {
	var out strings.Builder
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if ch != '\\' {
			out.WriteByte(ch)
			continue
		}
		i++
		if i >= len(s) {
			return "", errors.New("invalid escape")
		}
		switch c := s[i]; c {
		case 'b':
			out.WriteByte('\b')
		case 't':
			out.WriteByte('\t')
		case 'n':
			out.WriteByte('\n')
		case 'f':
			out.WriteByte('\f')
		case 'r':
			out.WriteByte('\r')
		case '"':
			out.WriteByte('"')
		case '\\':
			out.WriteByte('\\')
		case 'u', 'U':
			n := 4
			if c == 'U' {
				n = 8
			}
			if i+1+n > len(s) {
				return "", errors.New("invalid unicode escape")
			}
			r, err := parseHexRune(s[i+1 : i+1+n])
			if err != nil {
				return "", err
			}
			out.WriteRune(r)
			i += n
		default:
			rest := strings.TrimLeft(s[i:], " \t\r")
			if !multiline || !strings.HasPrefix(rest, "\n") {
				return "", fmt.Errorf("unsupported escape \\%c", c)
			}
			j := i
			for j < len(s) && strings.IndexByte(" \t\r\n", s[j]) >= 0 {
				j++
			}
			i = j - 1
		}
	}
	return out.String(), nil
}

func parseHexRune(h string) (rune, error) {
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid unicode escape %q", h)
	}
	r := rune(v)
	if !utf8.ValidRune(r) {
		return 0, fmt.Errorf("invalid unicode scalar %q", h)
	}
	return r, nil
}
