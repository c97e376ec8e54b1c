package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/smartystreets/goconvey/convey"
)

const sample = `title = "demo"

[server]
host = "localhost"
port = 8080

[[fruit]]
name = "apple"
color = { r = 255, g = 0 }

[[fruit]]
name = "banana"
`

func writeSample(t *testing.T, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "conf.toml")
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// run 重置全局参数后执行一次命令
func run(args ...string) (string, error) {
	*params = TomlParams{Type: "string", Format: "toml"}
	*rootParams = RootParams{LogLevel: "error", LogFormat: "text", Color: "never"}
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestTomlGet(t *testing.T) {
	input := writeSample(t, sample)

	convey.Convey("values print as their toml text", t, func() {
		out, err := run("toml", "get", "-i", input, "-f", "server.port")
		convey.So(err, convey.ShouldBeNil)
		convey.So(out, convey.ShouldEqual, "8080\n")

		out, err = run("toml", "get", "-i", input, "-f", "fruit.1.name")
		convey.So(err, convey.ShouldBeNil)
		convey.So(out, convey.ShouldEqual, "\"banana\"\n")

		out, err = run("toml", "get", "-i", input, "-f", "fruit.0.color.r")
		convey.So(err, convey.ShouldBeNil)
		convey.So(out, convey.ShouldEqual, "255\n")
	})

	convey.Convey("tables print as fragments", t, func() {
		out, err := run("toml", "get", "-i", input, "-f", "server")
		convey.So(err, convey.ShouldBeNil)
		convey.So(out, convey.ShouldEqual, "host = \"localhost\"\nport = 8080\n")
	})

	convey.Convey("yaml output", t, func() {
		out, err := run("toml", "get", "-i", input, "-f", "server", "--format", "yaml")
		convey.So(err, convey.ShouldBeNil)
		convey.So(out, convey.ShouldEqual, "host: localhost\nport: 8080\n")
	})

	convey.Convey("bad paths and inputs fail", t, func() {
		_, err := run("toml", "get", "-i", input, "-f", "server.missing")
		convey.So(err, convey.ShouldNotBeNil)
		_, err = run("toml", "get", "-i", input, "-f", "fruit.x")
		convey.So(err, convey.ShouldNotBeNil)
		_, err = run("toml", "get", "-i", input)
		convey.So(err, convey.ShouldEqual, errNoPath)
		_, err = run("toml", "get", "-i", filepath.Join(t.TempDir(), "none.toml"), "-f", "a")
		convey.So(err, convey.ShouldNotBeNil)
		_, err = run("toml", "get", "-i", writeSample(t, "a = \n"), "-f", "a")
		convey.So(err, convey.ShouldNotBeNil)
	})
}

func TestTomlKeys(t *testing.T) {
	input := writeSample(t, sample)

	convey.Convey("root keys with their types", t, func() {
		out, err := run("toml", "keys", "-i", input)
		convey.So(err, convey.ShouldBeNil)
		convey.So(out, convey.ShouldEqual, "title\t[String]\nserver\t[Table]\nfruit\t[ArrayOfTables]\n")
	})

	convey.Convey("inline table keys", t, func() {
		out, err := run("toml", "keys", "-i", input, "-f", "fruit.0.color")
		convey.So(err, convey.ShouldBeNil)
		convey.So(out, convey.ShouldEqual, "r\t[Integer]\ng\t[Integer]\n")
	})

	convey.Convey("scalars have no keys", t, func() {
		_, err := run("toml", "keys", "-i", input, "-f", "title")
		convey.So(err, convey.ShouldNotBeNil)
	})
}

func TestTomlSet(t *testing.T) {
	input := writeSample(t, sample)

	convey.Convey("replacing a value keeps the rest of the document", t, func() {
		out, err := run("toml", "set", "-i", input, "-f", "server.port", "-t", "integer", "-v", "9090")
		convey.So(err, convey.ShouldBeNil)
		convey.So(out, convey.ShouldEqual, strings.Replace(sample, "port = 8080", "port = 9090", 1))
	})

	convey.Convey("missing tables are created", t, func() {
		out, err := run("toml", "set", "-i", input, "-f", "extra.enabled", "-t", "boolean", "-v", "true")
		convey.So(err, convey.ShouldBeNil)
		convey.So(out, convey.ShouldEndWith, "\n[extra]\nenabled = true\n")
	})

	convey.Convey("array of tables elements are reached by index", t, func() {
		out, err := run("toml", "set", "-i", input, "-f", "fruit.0.name", "-v", "cherry")
		convey.So(err, convey.ShouldBeNil)
		convey.So(out, convey.ShouldEqual, strings.Replace(sample, `"apple"`, `"cherry"`, 1))

		out, err = run("toml", "set", "-i", input, "-f", "fruit.1.ripe", "-t", "boolean", "-v", "true")
		convey.So(err, convey.ShouldBeNil)
		convey.So(out, convey.ShouldEndWith, "name = \"banana\"\nripe = true\n")

		_, err = run("toml", "set", "-i", input, "-f", "fruit.2.name", "-v", "kiwi")
		convey.So(err, convey.ShouldNotBeNil)
		_, err = run("toml", "set", "-i", input, "-f", "fruit.first.name", "-v", "kiwi")
		convey.So(err, convey.ShouldNotBeNil)
		_, err = run("toml", "set", "-i", input, "-f", "fruit.0", "-v", "kiwi")
		convey.So(err, convey.ShouldNotBeNil)
	})

	convey.Convey("output goes to a file when asked", t, func() {
		dest := filepath.Join(t.TempDir(), "out.toml")
		out, err := run("toml", "set", "-i", input, "-f", "title", "-v", "renamed", "-o", dest)
		convey.So(err, convey.ShouldBeNil)
		convey.So(out, convey.ShouldBeEmpty)
		data, _ := os.ReadFile(dest)
		convey.So(string(data), convey.ShouldStartWith, "title = \"renamed\"\n")
	})

	convey.Convey("bad values and paths through non-tables fail", t, func() {
		_, err := run("toml", "set", "-i", input, "-f", "server.port", "-t", "integer", "-v", "many")
		convey.So(err, convey.ShouldNotBeNil)
		_, err = run("toml", "set", "-i", input, "-f", "title.sub", "-v", "x")
		convey.So(err, convey.ShouldNotBeNil)
		_, err = run("toml", "set", "-i", input, "-f", "when", "-t", "datetime", "-v", "soon")
		convey.So(err, convey.ShouldNotBeNil)
		_, err = run("toml", "set", "-i", input, "-f", "x", "-t", "complex", "-v", "1")
		convey.So(err, convey.ShouldNotBeNil)
	})
}

func TestTomlFmt(t *testing.T) {
	convey.Convey("canonical documents produce no diff", t, func() {
		out, err := run("toml", "fmt", "-i", writeSample(t, sample), "--diff")
		convey.So(err, convey.ShouldBeNil)
		convey.So(out, convey.ShouldBeEmpty)
	})

	convey.Convey("comments and spacing show up in the diff", t, func() {
		out, err := run("toml", "fmt", "-i", writeSample(t, "# top\na=1\n"), "--diff")
		convey.So(err, convey.ShouldBeNil)
		convey.So(out, convey.ShouldEqual, "-# top\n-a=1\n+a = 1\n")
	})

	convey.Convey("without diff the document is rewritten", t, func() {
		out, err := run("toml", "fmt", "-i", writeSample(t, "a=1\n"))
		convey.So(err, convey.ShouldBeNil)
		convey.So(out, convey.ShouldEqual, "a = 1\n")
	})
}

func TestSplitPath(t *testing.T) {
	convey.Convey("quoted segments keep their dots", t, func() {
		parts, err := splitPath(`a."b.c".d`)
		convey.So(err, convey.ShouldBeNil)
		convey.So(parts, convey.ShouldResemble, []string{"a", "b.c", "d"})

		parts, err = splitPath(`""`)
		convey.So(err, convey.ShouldBeNil)
		convey.So(parts, convey.ShouldResemble, []string{""})

		for _, bad := range []string{"a..b", ".a", "a.", `a."b`} {
			_, err := splitPath(bad)
			convey.So(err, convey.ShouldNotBeNil)
		}
	})
}

func TestVersion(t *testing.T) {
	convey.Convey("version prints the release", t, func() {
		out, err := run("version")
		convey.So(err, convey.ShouldBeNil)
		convey.So(out, convey.ShouldEqual, "Aq "+version+" -- HEAD\n")
	})
}
