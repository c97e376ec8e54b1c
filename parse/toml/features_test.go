package toml

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/smartystreets/goconvey/convey"
)

func mustParse(t *testing.T, src string) *Document {
	t.Helper()
	doc, err := ParseString(src)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return doc
}

func valueAt(t *testing.T, doc *Document, path ...string) *Value {
	t.Helper()
	it, ok := Get(doc.Root(), path...)
	if !ok {
		t.Fatalf("missing %v", path)
	}
	v, ok := it.Value()
	if !ok {
		t.Fatalf("%v is %s, not a value", path, it.Kind())
	}
	return v
}

func TestArrayOfTables(t *testing.T) {
	convey.Convey("array of tables", t, func() {
		src := `
[[products]]
name = "Hammer"
sku = 738594937

[[products]]
name = "Nails"
sku = 284758393
count = 100
`
		doc := mustParse(t, src)
		it, ok := Get(doc.Root(), "products")
		convey.So(ok, convey.ShouldBeTrue)
		convey.So(it.Kind(), convey.ShouldEqual, ItemArrayOfTables)
		tables, _ := it.ArrayOfTables()
		convey.So(len(tables), convey.ShouldEqual, 2)
		name, _ := Get(tables[0], "name")
		v, _ := name.Value()
		s, _ := v.AsString()
		convey.So(s, convey.ShouldEqual, "Hammer")
		convey.So(tables[1].Keys(), convey.ShouldResemble, []string{"name", "sku", "count"})
	})

	convey.Convey("sub-tables attach to the last element", t, func() {
		doc := mustParse(t, "[[fruit]]\nname = \"apple\"\n[fruit.physical]\ncolor = \"red\"\n[[fruit]]\nname = \"banana\"\n")
		it, _ := Get(doc.Root(), "fruit")
		tables, _ := it.ArrayOfTables()
		convey.So(len(tables), convey.ShouldEqual, 2)
		convey.So(tables[0].Contains("physical"), convey.ShouldBeTrue)
		convey.So(tables[1].Contains("physical"), convey.ShouldBeFalse)
	})
}

func TestInlineTable(t *testing.T) {
	convey.Convey("inline table", t, func() {
		doc := mustParse(t, `owner = { name = "Tom", dob = 1979-05-27T07:32:00Z, loc.city = "Oslo" }`)
		v := valueAt(t, doc, "owner")
		convey.So(v.Kind(), convey.ShouldEqual, ValueInlineTable)
		it, _ := v.AsInlineTable()
		convey.So(it.Keys(), convey.ShouldResemble, []string{"name", "dob", "loc"})
		dob, _ := it.Get("dob")
		convey.So(dob.Kind(), convey.ShouldEqual, ValueDatetime)
		loc, _ := it.Get("loc")
		nested, ok := loc.AsInlineTable()
		convey.So(ok, convey.ShouldBeTrue)
		convey.So(nested.Contains("city"), convey.ShouldBeTrue)
	})

	convey.Convey("duplicate keys in an inline table are rejected", t, func() {
		_, err := ParseString(`a = { x = 1, x = 2 }`)
		convey.So(err, convey.ShouldNotBeNil)
	})
}

func TestMultilineBasicString(t *testing.T) {
	convey.Convey("multiline basic string", t, func() {
		src := `desc = """first
second
third"""`
		doc := mustParse(t, src)
		s, ok := valueAt(t, doc, "desc").AsString()
		convey.So(ok, convey.ShouldBeTrue)
		convey.So(s, convey.ShouldEqual, "first\nsecond\nthird")
	})

	convey.Convey("line ending backslash and escapes", t, func() {
		src := "s = \"\"\"\nThe quick \\\n    brown fox\"\"\"\nu = \"caf\\u00E9\\t!\"\nlit = '''\nC:\\path # not a comment'''\n"
		doc := mustParse(t, src)
		s, _ := valueAt(t, doc, "s").AsString()
		convey.So(s, convey.ShouldEqual, "The quick brown fox")
		u, _ := valueAt(t, doc, "u").AsString()
		convey.So(u, convey.ShouldEqual, "café\t!")
		lit, _ := valueAt(t, doc, "lit").AsString()
		convey.So(lit, convey.ShouldEqual, `C:\path # not a comment`)
	})
}

func TestQuotedKeys(t *testing.T) {
	convey.Convey("quoted keys", t, func() {
		src := `"a.b" = 1
a.c = 2`
		doc := mustParse(t, src)
		n, _ := valueAt(t, doc, "a.b").AsInteger()
		convey.So(n, convey.ShouldEqual, 1)
		n2, _ := valueAt(t, doc, "a", "c").AsInteger()
		convey.So(n2, convey.ShouldEqual, 2)
	})
}

func TestSpecialFloatsAndInts(t *testing.T) {
	convey.Convey("floats and ints with underscores and bases", t, func() {
		src := `
f1 = +inf
f2 = -inf
f3 = nan
f4 = 6.626e-34
i1 = 1_000
hex = 0xDEADBEEF
oct = 0o755
bin = 0b1010
neg = -17
`
		doc := mustParse(t, src)
		f1, _ := valueAt(t, doc, "f1").AsFloat()
		convey.So(f1, convey.ShouldEqual, math.Inf(+1))
		f2, _ := valueAt(t, doc, "f2").AsFloat()
		convey.So(f2, convey.ShouldEqual, math.Inf(-1))
		f3, _ := valueAt(t, doc, "f3").AsFloat()
		convey.So(math.IsNaN(f3), convey.ShouldBeTrue)
		f4, _ := valueAt(t, doc, "f4").AsFloat()
		convey.So(f4, convey.ShouldEqual, 6.626e-34)
		i1, _ := valueAt(t, doc, "i1").AsInteger()
		convey.So(i1, convey.ShouldEqual, 1000)
		hex, _ := valueAt(t, doc, "hex").AsInteger()
		convey.So(hex, convey.ShouldEqual, 0xDEADBEEF)
		oct, _ := valueAt(t, doc, "oct").AsInteger()
		convey.So(oct, convey.ShouldEqual, 0755)
		bin, _ := valueAt(t, doc, "bin").AsInteger()
		convey.So(bin, convey.ShouldEqual, 10)
		neg, _ := valueAt(t, doc, "neg").AsInteger()
		convey.So(neg, convey.ShouldEqual, -17)
	})

	convey.Convey("malformed numbers are rejected", t, func() {
		for _, src := range []string{"a = 01", "a = 1__0", "a = +0x10", "a = .5", "a = 1.", "a = 0xFFFFFFFFFFFFFFFF"} {
			_, err := ParseString(src)
			convey.So(err, convey.ShouldNotBeNil)
		}
	})
}

func TestDatetimes(t *testing.T) {
	convey.Convey("offset and local datetimes keep their text", t, func() {
		src := "odt = 1979-05-27 07:32:00Z\nldt = 1979-05-27T07:32:00.999\nld = 1979-05-27\nlt = 07:32:00\n"
		doc := mustParse(t, src)
		for _, k := range []string{"odt", "ldt", "ld", "lt"} {
			v := valueAt(t, doc, k)
			convey.So(v.Kind(), convey.ShouldEqual, ValueDatetime)
		}
		s, _ := valueAt(t, doc, "odt").AsDatetime()
		convey.So(s, convey.ShouldEqual, "1979-05-27 07:32:00Z")
		convey.So(doc.String(), convey.ShouldEqual, src)
	})
}

func TestMultilineArrayAndTrailingComma(t *testing.T) {
	convey.Convey("multiline array with trailing comma", t, func() {
		src := `
ports = [
  8001, # first
  8002,
]
mixed = [1, "two", [3.0], { four = 4 }]
`
		doc := mustParse(t, src)
		elems, ok := valueAt(t, doc, "ports").AsArray()
		convey.So(ok, convey.ShouldBeTrue)
		convey.So(len(elems), convey.ShouldEqual, 2)
		p0, _ := elems[0].AsInteger()
		p1, _ := elems[1].AsInteger()
		convey.So(p0, convey.ShouldEqual, 8001)
		convey.So(p1, convey.ShouldEqual, 8002)
		mixed, _ := valueAt(t, doc, "mixed").AsArray()
		convey.So(len(mixed), convey.ShouldEqual, 4)
		convey.So(mixed[3].Kind(), convey.ShouldEqual, ValueInlineTable)
		convey.So(doc.String(), convey.ShouldEqual, "ports = [8001, 8002]\nmixed = [1, \"two\", [3.0], { four = 4 }]\n")
	})
}

func TestParseErrors(t *testing.T) {
	convey.Convey("malformed documents report the offending line", t, func() {
		cases := []struct {
			src  string
			line int
		}{
			{"a = 1\na = 2\n", 2},
			{"[a]\nx = 1\n[a]\n", 3},
			{"s = \"abc\n", 1},
			{"x = 1\ny = [1, 2\n", 2},
			{"= 1\n", 1},
			{"a = 1 2\n", 1},
			{"a = 1\n[a.b]\n", 2},
			{"just words\n", 1},
			{"s = \"bad \\q escape\"\n", 1},
			{"t = \"\"\"never closed\n", 1},
		}
		for _, c := range cases {
			_, err := ParseString(c.src)
			var pe *ParseError
			convey.So(errors.As(err, &pe), convey.ShouldBeTrue)
			convey.So(pe.Line, convey.ShouldEqual, c.line)
			convey.So(pe.Error(), convey.ShouldStartWith, "toml:")
		}
	})
}

func TestRoundTrip(t *testing.T) {
	convey.Convey("rendering keeps key order and source scalars", t, func() {
		docs := []string{
			"[a]\nb = 1\n",
			"title = \"TOML Example\"\n\n[owner]\nname = \"Tom\"\ndob = 1979-05-27T07:32:00-08:00\n\n[database]\nports = [8000, 8001, 8002]\nenabled = true\n",
			"[fruit]\napple.color = \"red\"\napple.taste.sweet = true\n\n[fruit.apple.texture]\nsmooth = true\n",
			"[a.b]\nc = 1\n",
			"[[products]]\nname = \"Hammer\"\n\n[[products]]\nname = \"Nails\"\n",
			"\"a.b\" = 1\na.c = 2\n",
			"z = 1\ny = 'lit'\nx = 1_000\nw = 3.0e2\n",
			"[a.b]\nx = 1\n\n[a]\ny = 2\n",
			"[a.b]\nx = 1\n\n[a]\ny = 2\n\n[a.c]\nz = 3\n",
		}
		for _, src := range docs {
			doc := mustParse(t, src)
			convey.So(doc.String(), convey.ShouldEqual, src)
		}
	})

	convey.Convey("a parent defined after its sub-table keeps its key order", t, func() {
		doc := mustParse(t, "[a.b]\nx = 1\n\n[a]\ny = 2\n")
		again := mustParse(t, doc.String())
		a, ok := Get(again.Root(), "a")
		convey.So(ok, convey.ShouldBeTrue)
		at, _ := a.Table()
		if diff := cmp.Diff([]string{"b", "y"}, at.Keys()); diff != "" {
			t.Errorf("keys mismatch (-want +got):\n%s", diff)
		}
	})

	convey.Convey("an emptied dotted table keeps its key", t, func() {
		doc := mustParse(t, "a.b = 1\nc = 2\n")
		a, _ := Get(doc.Root(), "a")
		at, _ := a.Table()
		at.Remove("b")
		convey.So(doc.String(), convey.ShouldEqual, "a = {}\nc = 2\n")
		again := mustParse(t, doc.String())
		if diff := cmp.Diff([]string{"a", "c"}, again.Root().Keys()); diff != "" {
			t.Errorf("keys mismatch (-want +got):\n%s", diff)
		}
	})

	convey.Convey("CRLF documents are written back with CRLF", t, func() {
		src := "a = 1\r\nb = \"x\"\r\n"
		convey.So(mustParse(t, src).String(), convey.ShouldEqual, src)
	})

	convey.Convey("comments and blank lines are normalised away", t, func() {
		src := "# header\n\n\na = 1 # trailing\n\n\n[t]   # table\nk = \"#not a comment\"\n"
		convey.So(mustParse(t, src).String(), convey.ShouldEqual, "a = 1\n\n[t]\nk = \"#not a comment\"\n")
	})
}

func TestMutationAndClone(t *testing.T) {
	convey.Convey("values inserted into a parsed document render before its sections", t, func() {
		doc := mustParse(t, "[a]\nb = 1\n")
		doc.Root().Set("new", ValueItem(NewString("x\ty")))
		convey.So(doc.String(), convey.ShouldEqual, "new = \"x\\ty\"\n\n[a]\nb = 1\n")
	})

	convey.Convey("replace keeps position, remove keeps the rest in order", t, func() {
		tbl := NewTable()
		for _, k := range []string{"a", "b", "c"} {
			tbl.Set(k, ValueItem(NewInteger(1)))
		}
		tbl.Set("a", ValueItem(NewBoolean(false)))
		convey.So(tbl.Remove("b"), convey.ShouldBeTrue)
		convey.So(tbl.Remove("b"), convey.ShouldBeFalse)
		if diff := cmp.Diff([]string{"a", "c"}, tbl.Keys()); diff != "" {
			t.Errorf("keys mismatch (-want +got):\n%s", diff)
		}
		convey.So(tbl.String(), convey.ShouldEqual, "a = false\nc = 1\n")
	})

	convey.Convey("clones share nothing with their source", t, func() {
		doc := mustParse(t, "[a]\nb = 1\nc = { d = [1, 2] }\n")
		clone := doc.Clone()
		a, _ := Get(clone.Root(), "a")
		at, _ := a.Table()
		at.Set("b", ValueItem(NewInteger(2)))
		c, _ := at.Get("c")
		cv, _ := c.Value()
		inline, _ := cv.AsInlineTable()
		inline.Remove("d")

		b, _ := valueAt(t, doc, "a", "b").AsInteger()
		convey.So(b, convey.ShouldEqual, 1)
		orig, _ := valueAt(t, doc, "a", "c").AsInlineTable()
		convey.So(orig.Contains("d"), convey.ShouldBeTrue)
	})

	convey.Convey("constructed values render canonically", t, func() {
		tbl := NewTable()
		inline := NewInlineTable()
		inline.Set("k", NewFloat(3))
		dt, err := NewDatetime("2024-01-02")
		convey.So(err, convey.ShouldBeNil)
		tbl.Set("arr", ValueItem(NewArray(NewInteger(1), NewString("two"))))
		tbl.Set("inline", ValueItem(NewInlineTableValue(inline)))
		tbl.Set("empty", ValueItem(NewInlineTableValue(nil)))
		tbl.Set("when", ValueItem(dt))
		tbl.Set("odd key", ValueItem(NewFloat(math.Inf(-1))))
		sub := NewTable()
		sub.Set("x", ValueItem(NewBoolean(true)))
		tbl.Set("sub", TableItem(sub))
		convey.So(tbl.String(), convey.ShouldEqual, strings.Join([]string{
			`arr = [1, "two"]`,
			`inline = { k = 3.0 }`,
			`empty = {}`,
			`when = 2024-01-02`,
			`"odd key" = -inf`,
			``,
			`[sub]`,
			`x = true`,
			``,
		}, "\n"))

		_, err = NewDatetime("yesterday")
		convey.So(err, convey.ShouldNotBeNil)
	})
}

func TestTypeTags(t *testing.T) {
	convey.Convey("tags never convert", t, func() {
		v := NewInteger(5)
		convey.So(v.Kind().String(), convey.ShouldEqual, "Integer")
		_, ok := v.AsString()
		convey.So(ok, convey.ShouldBeFalse)
		_, ok = v.AsFloat()
		convey.So(ok, convey.ShouldBeFalse)
		n, ok := v.AsInteger()
		convey.So(ok, convey.ShouldBeTrue)
		convey.So(n, convey.ShouldEqual, 5)

		convey.So(NoneItem().Kind().String(), convey.ShouldEqual, "None")
		convey.So(TableItem(NewTable()).Kind().String(), convey.ShouldEqual, "Table")
		convey.So(ArrayOfTablesItem().Kind().String(), convey.ShouldEqual, "ArrayOfTables")
		convey.So(ValueItem(nil).Kind(), convey.ShouldEqual, ItemNone)
	})

	convey.Convey("document table keys skip values", t, func() {
		doc := mustParse(t, "x = 1\n[a]\n[[b]]\n[c]\n")
		if diff := cmp.Diff([]string{"a", "c"}, doc.TableKeys()); diff != "" {
			t.Errorf("table keys mismatch (-want +got):\n%s", diff)
		}
	})
}
