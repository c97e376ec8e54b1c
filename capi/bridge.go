package main

/*
#include <stdlib.h>
#include "aqtoml.h"
*/
import "C"

import "unsafe"

// The functions below drive the exported surface with Go types, passing
// text and output buffers the way a C host would.

type textMode int

const (
	textValid  textMode = iota
	textNil             // NULL aq_str pointer
	textNoData          // len > 0 with data == NULL
)

type text struct {
	s    string
	mode textMode
}

func hostText(s string) text { return text{s: s} }

func withText[R any](t text, f func(*C.aq_str) R) R {
	switch t.mode {
	case textNil:
		return f(nil)
	case textNoData:
		var s C.aq_str
		s.len = C.size_t(len(t.s) + 1)
		return f(&s)
	}
	var s C.aq_str
	if len(t.s) > 0 {
		s.data = C.CString(t.s)
		defer C.free(unsafe.Pointer(s.data))
	}
	s.len = C.size_t(len(t.s))
	s.cap = s.len
	return f(&s)
}

// withOut hands f an empty output buffer and returns what f wrote to it.
func withOut(f func(*C.aq_str) C.int8_t) (string, int8) {
	var out C.aq_str
	rc := int8(f(&out))
	if out.data == nil {
		return "", rc
	}
	defer C.free(unsafe.Pointer(out.data))
	return C.GoStringN(out.data, C.int(out.len)), rc
}

func docFromString(t text) uint64 {
	return withText(t, func(s *C.aq_str) uint64 {
		return uint64(toml_edit_doc_from_string(s))
	})
}

// docGetError reports whether the library returned NULL, and the message
// otherwise.
func docGetError(t text) (string, bool) {
	p := withText(t, toml_edit_doc_get_error)
	if p == nil {
		return "", true
	}
	defer toml_edit_string_free(p)
	return C.GoString(p), false
}

func docToString(doc uint64) (string, int8) {
	return withOut(func(out *C.aq_str) C.int8_t {
		return toml_edit_doc_to_string(C.aq_handle(doc), out)
	})
}

func docListTables(doc uint64) (string, int8) {
	return withOut(func(out *C.aq_str) C.int8_t {
		return toml_edit_doc_list_tables(C.aq_handle(doc), out)
	})
}

func docRootTable(doc uint64) uint64 {
	return uint64(toml_edit_doc_get_root_table(C.aq_handle(doc)))
}

func docSetItem(doc uint64, key text, item uint64) uint64 {
	return withText(key, func(s *C.aq_str) uint64 {
		return uint64(toml_edit_doc_set_item(C.aq_handle(doc), s, C.aq_handle(item)))
	})
}

func docGetTable(doc uint64, key text) uint64 {
	return withText(key, func(s *C.aq_str) uint64 {
		return uint64(toml_edit_doc_get_table(C.aq_handle(doc), s))
	})
}

func docClose(doc uint64) int8 {
	return int8(toml_edit_doc_close(C.aq_handle(doc)))
}

func tableGetItem(table uint64, key text) uint64 {
	return withText(key, func(s *C.aq_str) uint64 {
		return uint64(toml_edit_table_get_item(C.aq_handle(table), s))
	})
}

func tableSetItem(table uint64, key text, item uint64) int8 {
	return withText(key, func(s *C.aq_str) int8 {
		return int8(toml_edit_table_set_item(C.aq_handle(table), s, C.aq_handle(item)))
	})
}

func tableContains(table uint64, key text) int8 {
	return withText(key, func(s *C.aq_str) int8 {
		return int8(toml_edit_table_contains_item(C.aq_handle(table), s))
	})
}

func tableRemove(table uint64, key text) int8 {
	return withText(key, func(s *C.aq_str) int8 {
		return int8(toml_edit_table_remove_item(C.aq_handle(table), s))
	})
}

func tableListItems(table uint64) (string, int8) {
	return withOut(func(out *C.aq_str) C.int8_t {
		return toml_edit_table_list_items(C.aq_handle(table), out)
	})
}

func tableClose(table uint64) int8 {
	return int8(toml_edit_table_close(C.aq_handle(table)))
}

func inlineNew() uint64 {
	return uint64(toml_edit_inline_table_new())
}

func inlineSetItem(inline uint64, key text, item uint64) int8 {
	return withText(key, func(s *C.aq_str) int8 {
		return int8(toml_edit_inline_table_set_item(C.aq_handle(inline), s, C.aq_handle(item)))
	})
}

func inlineContains(inline uint64, key text) int8 {
	return withText(key, func(s *C.aq_str) int8 {
		return int8(toml_edit_inline_table_contains_item(C.aq_handle(inline), s))
	})
}

func inlineRemove(inline uint64, key text) int8 {
	return withText(key, func(s *C.aq_str) int8 {
		return int8(toml_edit_inline_table_remove_item(C.aq_handle(inline), s))
	})
}

func inlineClose(inline uint64) int8 {
	return int8(toml_edit_inline_table_close(C.aq_handle(inline)))
}

func itemNewString(t text) uint64 {
	return withText(t, func(s *C.aq_str) uint64 {
		return uint64(toml_edit_item_new_value_from_string(s))
	})
}

func itemNewI64(v int64) uint64 {
	return uint64(toml_edit_item_new_value_from_i64(C.int64_t(v)))
}

func itemNewBool(v bool) uint64 {
	var b C.int8_t
	if v {
		b = 1
	}
	return uint64(toml_edit_item_new_value_from_bool(b))
}

func itemGetType(item uint64) (string, int8) {
	return withOut(func(out *C.aq_str) C.int8_t {
		return toml_edit_item_get_type(C.aq_handle(item), out)
	})
}

func itemIntoValue(item uint64) uint64 {
	return uint64(toml_edit_item_into_value(C.aq_handle(item)))
}

func itemClose(item uint64) int8 {
	return int8(toml_edit_item_close(C.aq_handle(item)))
}

func valueGetString(value uint64) (string, int8) {
	return withOut(func(out *C.aq_str) C.int8_t {
		return toml_edit_value_get_string(C.aq_handle(value), out)
	})
}

// valueGetStringNoOut passes a NULL output buffer.
func valueGetStringNoOut(value uint64) int8 {
	return int8(toml_edit_value_get_string(C.aq_handle(value), nil))
}

func valueGetI64(value uint64) (int64, int8) {
	var out C.int64_t
	rc := toml_edit_value_get_i64(C.aq_handle(value), &out)
	return int64(out), int8(rc)
}

// valueGetI64NoOut passes a NULL output pointer.
func valueGetI64NoOut(value uint64) int8 {
	return int8(toml_edit_value_get_i64(C.aq_handle(value), nil))
}

func valueGetBool(value uint64) int8 {
	return int8(toml_edit_value_get_bool(C.aq_handle(value)))
}

func valueClose(value uint64) int8 {
	return int8(toml_edit_value_close(C.aq_handle(value)))
}
