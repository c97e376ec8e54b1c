package main

/*
#include "aqtoml.h"
*/
import "C"

import "github.com/dzjyyds666/aqtoml/pkg/edit"

//export toml_edit_table_new
func toml_edit_table_new() C.aq_handle {
	return C.aq_handle(store.NewTable())
}

//export toml_edit_table_to_string
func toml_edit_table_to_string(table C.aq_handle, out *C.aq_str) C.int8_t {
	s, err := store.TableString(edit.Handle(table))
	return putResult(out, s, err)
}

//export toml_edit_table_to_item
func toml_edit_table_to_item(table C.aq_handle) C.aq_handle {
	return handleOut(store.TableToItem(edit.Handle(table)))
}

//export toml_edit_table_get_item
func toml_edit_table_get_item(table C.aq_handle, key *C.aq_str) C.aq_handle {
	k, ok := goString(key)
	if !ok {
		return 0
	}
	return handleOut(store.TableItem(edit.Handle(table), k))
}

//export toml_edit_table_set_item
func toml_edit_table_set_item(table C.aq_handle, key *C.aq_str, item C.aq_handle) C.int8_t {
	k, ok := goString(key)
	if !ok {
		return C.int8_t(statusFailed)
	}
	return status(store.TableSetItem(edit.Handle(table), k, edit.Handle(item)))
}

//export toml_edit_table_remove_item
func toml_edit_table_remove_item(table C.aq_handle, key *C.aq_str) C.int8_t {
	k, ok := goString(key)
	if !ok {
		return C.int8_t(statusFailed)
	}
	return boolStatus(store.TableRemove(edit.Handle(table), k))
}

//export toml_edit_table_contains_item
func toml_edit_table_contains_item(table C.aq_handle, key *C.aq_str) C.int8_t {
	k, ok := goString(key)
	if !ok {
		return C.int8_t(statusFailed)
	}
	return boolStatus(store.TableContains(edit.Handle(table), k))
}

//export toml_edit_table_list_items
func toml_edit_table_list_items(table C.aq_handle, out *C.aq_str) C.int8_t {
	keys, err := store.TableKeys(edit.Handle(table))
	return putResult(out, keyLines(keys), err)
}

//export toml_edit_table_close
func toml_edit_table_close(table C.aq_handle) C.int8_t {
	return status(store.CloseTable(edit.Handle(table)))
}
