package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dzjyyds666/aqtoml/pkg/edit"
)

// splitPath 拆分 a."b.c".d 形式的 key 路径
func splitPath(s string) ([]string, error) {
	if s == "" {
		return nil, nil
	}
	var (
		parts  []string
		cur    strings.Builder
		quoted bool
		inStr  bool
	)
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '"':
			inStr = !inStr
			quoted = true
		case c == '.' && !inStr:
			if cur.Len() == 0 && !quoted {
				return nil, fmt.Errorf("empty segment in key path %q", s)
			}
			parts = append(parts, cur.String())
			cur.Reset()
			quoted = false
		default:
			cur.WriteByte(c)
		}
	}
	if inStr {
		return nil, fmt.Errorf("unterminated quote in key path %q", s)
	}
	if cur.Len() == 0 && !quoted {
		return nil, fmt.Errorf("empty segment in key path %q", s)
	}
	return append(parts, cur.String()), nil
}

// lookup 从根表沿路径查找, 返回的 item handle 需要调用方关闭
func lookup(s *edit.Store, doc edit.Handle, path []string) (edit.Handle, error) {
	root, err := s.DocumentRoot(doc)
	if err != nil {
		return edit.Null, err
	}
	item, err := s.TableToItem(root)
	s.CloseTable(root)
	if err != nil {
		return edit.Null, err
	}
	for _, seg := range path {
		next, err := step(s, item, seg)
		s.CloseItem(item)
		if err != nil {
			return edit.Null, err
		}
		item = next
	}
	return item, nil
}

// step 向下走一层: 表按 key, 数组表按下标, 内联表按 key
func step(s *edit.Store, item edit.Handle, seg string) (edit.Handle, error) {
	switch typ := s.ItemType(item); typ {
	case "Table":
		t, err := s.ItemTable(item)
		if err != nil {
			return edit.Null, err
		}
		defer s.CloseTable(t)
		return s.TableItem(t, seg)
	case "ArrayOfTables":
		idx, err := strconv.Atoi(seg)
		if err != nil {
			return edit.Null, fmt.Errorf("%w: array of tables needs an index, got %q", edit.ErrWrongType, seg)
		}
		t, err := s.ItemArrayOfTablesAt(item, idx)
		if err != nil {
			return edit.Null, err
		}
		defer s.CloseTable(t)
		return s.TableToItem(t)
	case "Value":
		v, err := s.ItemValue(item)
		if err != nil {
			return edit.Null, err
		}
		defer s.CloseValue(v)
		inline, err := s.ValueInlineTable(v)
		if err != nil {
			return edit.Null, err
		}
		defer s.CloseInlineTable(inline)
		found, err := s.InlineTableValue(inline, seg)
		if err != nil {
			return edit.Null, err
		}
		defer s.CloseValue(found)
		return s.ValueToItem(found)
	default:
		return edit.Null, fmt.Errorf("%w: %q in %s item", edit.ErrNotFound, seg, typ)
	}
}

type keyEntry struct {
	key  string
	kind string
}

// listKeys 列出路径所指的表或内联表的 key 及类型
func listKeys(s *edit.Store, doc edit.Handle, path []string) ([]keyEntry, error) {
	item, err := lookup(s, doc, path)
	if err != nil {
		return nil, err
	}
	defer s.CloseItem(item)

	switch typ := s.ItemType(item); typ {
	case "Table":
		t, err := s.ItemTable(item)
		if err != nil {
			return nil, err
		}
		defer s.CloseTable(t)
		keys, err := s.TableKeys(t)
		if err != nil {
			return nil, err
		}
		entries := make([]keyEntry, 0, len(keys))
		for _, k := range keys {
			it, err := s.TableItem(t, k)
			if err != nil {
				return nil, err
			}
			kind, err := describe(s, it)
			s.CloseItem(it)
			if err != nil {
				return nil, err
			}
			entries = append(entries, keyEntry{key: k, kind: kind})
		}
		return entries, nil
	case "Value":
		v, err := s.ItemValue(item)
		if err != nil {
			return nil, err
		}
		defer s.CloseValue(v)
		inline, err := s.ValueInlineTable(v)
		if err != nil {
			return nil, err
		}
		defer s.CloseInlineTable(inline)
		keys, err := s.InlineTableKeys(inline)
		if err != nil {
			return nil, err
		}
		entries := make([]keyEntry, 0, len(keys))
		for _, k := range keys {
			val, err := s.InlineTableValue(inline, k)
			if err != nil {
				return nil, err
			}
			kind, err := s.ValueType(val)
			s.CloseValue(val)
			if err != nil {
				return nil, err
			}
			entries = append(entries, keyEntry{key: k, kind: kind})
		}
		return entries, nil
	default:
		return nil, fmt.Errorf("%w: cannot list keys of %s item", edit.ErrWrongType, typ)
	}
}

// describe 值给出值类型, 其余给出 item 类型
func describe(s *edit.Store, item edit.Handle) (string, error) {
	typ := s.ItemType(item)
	if typ != "Value" {
		return typ, nil
	}
	v, err := s.ItemValue(item)
	if err != nil {
		return "", err
	}
	defer s.CloseValue(v)
	return s.ValueType(v)
}

// assign 把 item 写到路径处. 每层子表(或数组表元素)先复制出来修改,
// 再写回父表, 最后写回文档
func assign(s *edit.Store, doc edit.Handle, path []string, item edit.Handle) error {
	root, err := s.DocumentRoot(doc)
	if err != nil {
		return err
	}
	defer s.CloseTable(root)

	if err := assignIn(s, root, path, item); err != nil {
		return err
	}
	top, err := s.TableItem(root, path[0])
	if err != nil {
		return err
	}
	defer s.CloseItem(top)
	_, err = s.DocumentSetItem(doc, path[0], top)
	return err
}

func assignIn(s *edit.Store, table edit.Handle, path []string, item edit.Handle) error {
	if len(path) == 1 {
		return s.TableSetItem(table, path[0], item)
	}
	key := path[0]
	ok, err := s.TableContains(table, key)
	if err != nil {
		return err
	}
	if !ok {
		child := s.NewTable()
		defer s.CloseTable(child)
		return assignTable(s, table, key, child, path[1:], item)
	}
	cur, err := s.TableItem(table, key)
	if err != nil {
		return err
	}
	defer s.CloseItem(cur)

	switch typ := s.ItemType(cur); typ {
	case "Table":
		child, err := s.ItemTable(cur)
		if err != nil {
			return err
		}
		defer s.CloseTable(child)
		return assignTable(s, table, key, child, path[1:], item)
	case "ArrayOfTables":
		return assignArray(s, table, key, cur, path[1:], item)
	default:
		return fmt.Errorf("%w: %q is %s, not Table", edit.ErrWrongType, key, typ)
	}
}

// assignTable 修改子表副本后写回父表
func assignTable(s *edit.Store, parent edit.Handle, key string, child edit.Handle, path []string, item edit.Handle) error {
	if err := assignIn(s, child, path, item); err != nil {
		return err
	}
	childItem, err := s.TableToItem(child)
	if err != nil {
		return err
	}
	defer s.CloseItem(childItem)
	return s.TableSetItem(parent, key, childItem)
}

// assignArray 按下标取出数组表元素, 修改后放回数组, 再写回父表
func assignArray(s *edit.Store, parent edit.Handle, key string, array edit.Handle, path []string, item edit.Handle) error {
	idx, err := strconv.Atoi(path[0])
	if err != nil {
		return fmt.Errorf("%w: array of tables needs an index, got %q", edit.ErrWrongType, path[0])
	}
	if len(path) == 1 {
		return fmt.Errorf("%w: cannot replace table %d of %q with a value", edit.ErrWrongType, idx, key)
	}
	elem, err := s.ItemArrayOfTablesAt(array, idx)
	if err != nil {
		return err
	}
	defer s.CloseTable(elem)

	if err := assignIn(s, elem, path[1:], item); err != nil {
		return err
	}
	if err := s.ItemArrayOfTablesSet(array, idx, elem); err != nil {
		return err
	}
	return s.TableSetItem(parent, key, array)
}

var errNoPath = errors.New("no key path given")
