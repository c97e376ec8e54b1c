package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dzjyyds666/aqtoml/parse/toml"
	"github.com/dzjyyds666/aqtoml/pkg"
	"github.com/dzjyyds666/aqtoml/pkg/edit"
	"github.com/spf13/cobra"
)

type TomlParams struct {
	Find   string `json:"find"`   // 查找的key, 用 . 分隔, 数组表用下标
	Input  string `json:"input"`  // 输入文件路径
	Output string `json:"output"` // 输出文件地址, 为空时写到标准输出
	Value  string `json:"value"`  // set 写入的值
	Type   string `json:"type"`   // set 写入值的类型
	Format string `json:"format"` // get 输出格式 toml|yaml
	Diff   bool   `json:"diff"`   // fmt 只输出差异
}

var params = &TomlParams{}

var tomlCmd = &cobra.Command{
	Use:   "toml",
	Short: "toml parse tools",
}

var tomlGetCmd = &cobra.Command{
	Use:   "get",
	Short: "print the item found at a key path",
	RunE:  tomlGetRun,
}

var tomlKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "list the keys of the table found at a key path",
	RunE:  tomlKeysRun,
}

var tomlSetCmd = &cobra.Command{
	Use:   "set",
	Short: "set the value at a key path and write the document",
	RunE:  tomlSetRun,
}

var tomlFmtCmd = &cobra.Command{
	Use:   "fmt",
	Short: "rewrite a document in canonical layout",
	RunE:  tomlFmtRun,
}

func init() {
	tomlCmd.PersistentFlags().StringVarP(&params.Input, "input", "i", "", "input file path")
	tomlCmd.PersistentFlags().StringVarP(&params.Output, "output", "o", "", "output path")

	tomlGetCmd.Flags().StringVarP(&params.Find, "find", "f", "", "key path, e.g. server.port or fruit.0.name")
	tomlGetCmd.Flags().StringVar(&params.Format, "format", "toml", "output format: toml|yaml")

	tomlKeysCmd.Flags().StringVarP(&params.Find, "find", "f", "", "key path of the table to list, root when empty")

	tomlSetCmd.Flags().StringVarP(&params.Find, "find", "f", "", "key path to set")
	tomlSetCmd.Flags().StringVarP(&params.Value, "value", "v", "", "value text")
	tomlSetCmd.Flags().StringVarP(&params.Type, "type", "t", "string", "value type: string|integer|float|boolean|datetime")

	tomlFmtCmd.Flags().BoolVar(&params.Diff, "diff", false, "print a diff instead of the document")

	tomlCmd.AddCommand(tomlGetCmd, tomlKeysCmd, tomlSetCmd, tomlFmtCmd)
}

// openDocument 读取并解析输入文件, 返回的 handle 需要调用方关闭
func openDocument() (edit.Handle, string, error) {
	src, err := pkg.ReadTextFile(params.Input)
	if err != nil {
		return edit.Null, "", err
	}
	doc, err := store.ParseDocument(src)
	if err != nil {
		return edit.Null, "", fmt.Errorf("%s: %w", params.Input, err)
	}
	return doc, src, nil
}

func tomlGetRun(cmd *cobra.Command, args []string) error {
	path, err := splitPath(params.Find)
	if err != nil {
		return err
	}
	if len(path) == 0 {
		return errNoPath
	}
	doc, _, err := openDocument()
	if err != nil {
		return err
	}
	defer store.CloseDocument(doc)

	item, err := lookup(store, doc, path)
	if err != nil {
		return err
	}
	defer store.CloseItem(item)

	var out string
	switch params.Format {
	case "toml":
		out, err = renderItem(store, item)
	case "yaml":
		out, err = itemYAML(store, item)
	default:
		err = fmt.Errorf("unknown format %q", params.Format)
	}
	if err != nil {
		return err
	}
	return pkg.WriteOutput(params.Output, out, cmd.OutOrStdout())
}

func tomlKeysRun(cmd *cobra.Command, args []string) error {
	path, err := splitPath(params.Find)
	if err != nil {
		return err
	}
	doc, _, err := openDocument()
	if err != nil {
		return err
	}
	defer store.CloseDocument(doc)

	entries, err := listKeys(store, doc, path)
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()
	tag := newPalette(w, rootParams.Color).tag
	var b strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&b, "%s\t%s\n", e.key, tag(e.kind))
	}
	return pkg.WriteOutput(params.Output, b.String(), w)
}

func tomlSetRun(cmd *cobra.Command, args []string) error {
	path, err := splitPath(params.Find)
	if err != nil {
		return err
	}
	if len(path) == 0 {
		return errNoPath
	}
	doc, _, err := openDocument()
	if err != nil {
		return err
	}
	defer store.CloseDocument(doc)

	item, err := newItem(store, params.Type, params.Value)
	if err != nil {
		return err
	}
	defer store.CloseItem(item)

	if err := assign(store, doc, path, item); err != nil {
		return err
	}
	out, err := store.RenderDocument(doc)
	if err != nil {
		return err
	}
	return pkg.WriteOutput(params.Output, out, cmd.OutOrStdout())
}

func tomlFmtRun(cmd *cobra.Command, args []string) error {
	doc, src, err := openDocument()
	if err != nil {
		return err
	}
	defer store.CloseDocument(doc)

	out, err := store.RenderDocument(doc)
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()
	if params.Diff {
		if src == out {
			return nil
		}
		return pkg.WriteOutput(params.Output, lineDiff(newPalette(w, rootParams.Color), src, out), w)
	}
	return pkg.WriteOutput(params.Output, out, w)
}

// newItem 按类型把命令行文本转换为 Value item
func newItem(s *edit.Store, typ, text string) (edit.Handle, error) {
	switch typ {
	case "string":
		return s.NewStringItem(text)
	case "integer":
		n, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return edit.Null, fmt.Errorf("invalid integer %q: %w", text, err)
		}
		return s.NewIntegerItem(n), nil
	case "float":
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return edit.Null, fmt.Errorf("invalid float %q: %w", text, err)
		}
		return s.NewFloatItem(f), nil
	case "boolean":
		b, err := strconv.ParseBool(text)
		if err != nil {
			return edit.Null, fmt.Errorf("invalid boolean %q: %w", text, err)
		}
		return s.NewBooleanItem(b), nil
	case "datetime":
		return s.NewDatetimeItem(text)
	}
	return edit.Null, fmt.Errorf("unknown value type %q", typ)
}

// renderItem 表输出为 TOML 片段, 值输出为等号右侧的文本
func renderItem(s *edit.Store, item edit.Handle) (string, error) {
	switch s.ItemType(item) {
	case "Value":
		v, err := s.ItemValue(item)
		if err != nil {
			return "", err
		}
		defer s.CloseValue(v)
		text, err := s.RenderValue(v)
		if err != nil {
			return "", err
		}
		return text + "\n", nil
	case "Table":
		t, err := s.ItemTable(item)
		if err != nil {
			return "", err
		}
		defer s.CloseTable(t)
		return s.TableString(t)
	case "ArrayOfTables":
		n, err := s.ItemArrayOfTablesLen(item)
		if err != nil {
			return "", err
		}
		parts := make([]string, 0, n)
		for i := 0; i < n; i++ {
			t, err := s.ItemArrayOfTablesAt(item, i)
			if err != nil {
				return "", err
			}
			text, err := s.TableString(t)
			s.CloseTable(t)
			if err != nil {
				return "", err
			}
			parts = append(parts, text)
		}
		return strings.Join(parts, "\n"), nil
	}
	return "", nil
}

func itemYAML(s *edit.Store, item edit.Handle) (string, error) {
	n, err := s.ItemYAML(item)
	if err != nil || n == nil {
		return "", err
	}
	var b strings.Builder
	if err := toml.EncodeYAML(&b, n); err != nil {
		return "", err
	}
	return b.String(), nil
}
