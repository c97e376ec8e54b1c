package main

/*
#include <stdint.h>
#include "aqtoml.h"
*/
import "C"

import "github.com/dzjyyds666/aqtoml/pkg/edit"

// toml_edit_item_get_type writes "None" for an invalid handle.
//
//export toml_edit_item_get_type
func toml_edit_item_get_type(item C.aq_handle, out *C.aq_str) C.int8_t {
	return putString(out, store.ItemType(edit.Handle(item)))
}

//export toml_edit_item_into_value
func toml_edit_item_into_value(item C.aq_handle) C.aq_handle {
	return handleOut(store.ItemValue(edit.Handle(item)))
}

//export toml_edit_item_into_table
func toml_edit_item_into_table(item C.aq_handle) C.aq_handle {
	return handleOut(store.ItemTable(edit.Handle(item)))
}

// toml_edit_item_array_of_tables_len returns -1 unless item is an array of
// tables.
//
//export toml_edit_item_array_of_tables_len
func toml_edit_item_array_of_tables_len(item C.aq_handle) C.int64_t {
	n, err := store.ItemArrayOfTablesLen(edit.Handle(item))
	if err != nil {
		return -1
	}
	return C.int64_t(n)
}

//export toml_edit_item_array_of_tables_get
func toml_edit_item_array_of_tables_get(item C.aq_handle, index C.size_t) C.aq_handle {
	if uint64(index) > uint64(maxInt) {
		return 0
	}
	return handleOut(store.ItemArrayOfTablesAt(edit.Handle(item), int(index)))
}

//export toml_edit_item_close
func toml_edit_item_close(item C.aq_handle) C.int8_t {
	return status(store.CloseItem(edit.Handle(item)))
}

//export toml_edit_item_new_value_from_string
func toml_edit_item_new_value_from_string(s *C.aq_str) C.aq_handle {
	v, ok := goString(s)
	if !ok {
		return 0
	}
	return handleOut(store.NewStringItem(v))
}

//export toml_edit_item_new_value_from_i64
func toml_edit_item_new_value_from_i64(v C.int64_t) C.aq_handle {
	return C.aq_handle(store.NewIntegerItem(int64(v)))
}

//export toml_edit_item_new_value_from_f64
func toml_edit_item_new_value_from_f64(v C.double) C.aq_handle {
	return C.aq_handle(store.NewFloatItem(float64(v)))
}

// toml_edit_item_new_value_from_bool treats any non-zero v as true.
//
//export toml_edit_item_new_value_from_bool
func toml_edit_item_new_value_from_bool(v C.int8_t) C.aq_handle {
	return C.aq_handle(store.NewBooleanItem(v != 0))
}

//export toml_edit_item_new_value_from_datetime
func toml_edit_item_new_value_from_datetime(s *C.aq_str) C.aq_handle {
	v, ok := goString(s)
	if !ok {
		return 0
	}
	return handleOut(store.NewDatetimeItem(v))
}

//export toml_edit_item_new_value_inline_table
func toml_edit_item_new_value_inline_table() C.aq_handle {
	return C.aq_handle(store.NewInlineTableItem())
}

const maxInt = int(^uint(0) >> 1)
