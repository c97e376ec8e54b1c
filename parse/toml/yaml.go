package toml

import (
	"io"
	"math"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// ToYAML converts t into a YAML mapping node that keeps t's key order.
// None items are skipped.
func ToYAML(t *Table) *yaml.Node {
	n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for k, it := range t.All() {
		v := ItemToYAML(it)
		if v == nil {
			continue
		}
		n.Content = append(n.Content, yamlString(k), v)
	}
	return n
}

func ItemToYAML(it *Item) *yaml.Node {
	switch it.kind {
	case ItemValue:
		return ValueToYAML(it.value)
	case ItemTable:
		return ToYAML(it.table)
	case ItemArrayOfTables:
		seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, t := range it.tables {
			seq.Content = append(seq.Content, ToYAML(t))
		}
		return seq
	case ItemNone:
		return nil
	}
	return nil
}

func ValueToYAML(v *Value) *yaml.Node {
	switch v.kind {
	case ValueString:
		return yamlString(v.str)
	case ValueInteger:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatInt(v.num, 10)}
	case ValueFloat:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: yamlFloat(v.flt)}
	case ValueBoolean:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(v.bln)}
	case ValueDatetime:
		if _, err := time.Parse(time.RFC3339Nano, v.str); err == nil {
			return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!timestamp", Value: v.str}
		}
		return yamlString(v.str)
	case ValueArray:
		seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Style: yaml.FlowStyle}
		for _, e := range v.arr {
			seq.Content = append(seq.Content, ValueToYAML(e))
		}
		return seq
	case ValueInlineTable:
		m := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map", Style: yaml.FlowStyle}
		for k, e := range v.inline.All() {
			m.Content = append(m.Content, yamlString(k), ValueToYAML(e))
		}
		return m
	}
	return nil
}

// EncodeYAML writes n as a YAML document with two-space indentation.
func EncodeYAML(w io.Writer, n *yaml.Node) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(n); err != nil {
		return err
	}
	return enc.Close()
}

func yamlString(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

func yamlFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return ".inf"
	case math.IsInf(f, -1):
		return "-.inf"
	case math.IsNaN(f):
		return ".nan"
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
