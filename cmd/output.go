package cmd

import (
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

type palette struct {
	kind *color.Color
	add  *color.Color
	del  *color.Color
}

func newPalette(w io.Writer, mode string) palette {
	p := palette{
		kind: color.New(color.FgCyan),
		add:  color.New(color.FgGreen),
		del:  color.New(color.FgRed),
	}
	on := colorEnabled(w, mode)
	for _, c := range []*color.Color{p.kind, p.add, p.del} {
		if on {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// colorEnabled 在 auto 模式下只对终端着色, 并遵守 NO_COLOR
func colorEnabled(w io.Writer, mode string) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

func (p palette) tag(kind string) string {
	return p.kind.Sprint("[" + kind + "]")
}

// lineDiff 按行比较, 输出 +/- 前缀的统一格式正文
func lineDiff(p palette, from, to string) string {
	dmp := diffpatch.New()
	a, b, lines := dmp.DiffLinesToChars(from, to)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var sb strings.Builder
	for _, d := range diffs {
		if d.Text == "" {
			continue
		}
		for _, line := range strings.Split(strings.TrimSuffix(d.Text, "\n"), "\n") {
			switch d.Type {
			case diffpatch.DiffInsert:
				sb.WriteString(p.add.Sprint("+" + line))
			case diffpatch.DiffDelete:
				sb.WriteString(p.del.Sprint("-" + line))
			case diffpatch.DiffEqual:
				sb.WriteString(" " + line)
			}
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
