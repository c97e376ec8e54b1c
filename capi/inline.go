package main

/*
#include "aqtoml.h"
*/
import "C"

import "github.com/dzjyyds666/aqtoml/pkg/edit"

//export toml_edit_inline_table_new
func toml_edit_inline_table_new() C.aq_handle {
	return C.aq_handle(store.NewInlineTable())
}

//export toml_edit_inline_table_to_item
func toml_edit_inline_table_to_item(inline C.aq_handle) C.aq_handle {
	return handleOut(store.InlineTableToItem(edit.Handle(inline)))
}

// toml_edit_inline_table_get_item returns a Value handle.
//
//export toml_edit_inline_table_get_item
func toml_edit_inline_table_get_item(inline C.aq_handle, key *C.aq_str) C.aq_handle {
	k, ok := goString(key)
	if !ok {
		return 0
	}
	return handleOut(store.InlineTableValue(edit.Handle(inline), k))
}

// toml_edit_inline_table_set_item fails unless item holds a Value.
//
//export toml_edit_inline_table_set_item
func toml_edit_inline_table_set_item(inline C.aq_handle, key *C.aq_str, item C.aq_handle) C.int8_t {
	k, ok := goString(key)
	if !ok {
		return C.int8_t(statusFailed)
	}
	return status(store.InlineTableSetItem(edit.Handle(inline), k, edit.Handle(item)))
}

//export toml_edit_inline_table_remove_item
func toml_edit_inline_table_remove_item(inline C.aq_handle, key *C.aq_str) C.int8_t {
	k, ok := goString(key)
	if !ok {
		return C.int8_t(statusFailed)
	}
	return boolStatus(store.InlineTableRemove(edit.Handle(inline), k))
}

//export toml_edit_inline_table_contains_item
func toml_edit_inline_table_contains_item(inline C.aq_handle, key *C.aq_str) C.int8_t {
	k, ok := goString(key)
	if !ok {
		return C.int8_t(statusFailed)
	}
	return boolStatus(store.InlineTableContains(edit.Handle(inline), k))
}

//export toml_edit_inline_table_list_items
func toml_edit_inline_table_list_items(inline C.aq_handle, out *C.aq_str) C.int8_t {
	keys, err := store.InlineTableKeys(edit.Handle(inline))
	return putResult(out, keyLines(keys), err)
}

//export toml_edit_inline_table_close
func toml_edit_inline_table_close(inline C.aq_handle) C.int8_t {
	return status(store.CloseInlineTable(edit.Handle(inline)))
}
