package main

/*
#include <stdlib.h>
#include "aqtoml.h"
*/
import "C"

import "github.com/dzjyyds666/aqtoml/pkg/edit"

// toml_edit_doc_get_error returns NULL when text parses, otherwise a message
// the caller releases with toml_edit_string_free.
//
//export toml_edit_doc_get_error
func toml_edit_doc_get_error(text *C.aq_str) *C.char {
	src, ok := goString(text)
	if !ok {
		return C.CString("invalid text argument")
	}
	if msg := store.ParseError(src); msg != "" {
		return C.CString(msg)
	}
	return nil
}

//export toml_edit_doc_from_string
func toml_edit_doc_from_string(text *C.aq_str) C.aq_handle {
	src, ok := goString(text)
	if !ok {
		return 0
	}
	return handleOut(store.ParseDocument(src))
}

//export toml_edit_doc_to_string
func toml_edit_doc_to_string(doc C.aq_handle, out *C.aq_str) C.int8_t {
	s, err := store.RenderDocument(edit.Handle(doc))
	return putResult(out, s, err)
}

//export toml_edit_doc_get_root_table
func toml_edit_doc_get_root_table(doc C.aq_handle) C.aq_handle {
	return handleOut(store.DocumentRoot(edit.Handle(doc)))
}

// toml_edit_doc_set_item returns doc on success.
//
//export toml_edit_doc_set_item
func toml_edit_doc_set_item(doc C.aq_handle, key *C.aq_str, item C.aq_handle) C.aq_handle {
	k, ok := goString(key)
	if !ok {
		return 0
	}
	return handleOut(store.DocumentSetItem(edit.Handle(doc), k, edit.Handle(item)))
}

//export toml_edit_doc_list_tables
func toml_edit_doc_list_tables(doc C.aq_handle, out *C.aq_str) C.int8_t {
	keys, err := store.DocumentTableKeys(edit.Handle(doc))
	return putResult(out, keyLines(keys), err)
}

//export toml_edit_doc_get_table
func toml_edit_doc_get_table(doc C.aq_handle, key *C.aq_str) C.aq_handle {
	k, ok := goString(key)
	if !ok {
		return 0
	}
	return handleOut(store.DocumentTable(edit.Handle(doc), k))
}

//export toml_edit_doc_close
func toml_edit_doc_close(doc C.aq_handle) C.int8_t {
	return status(store.CloseDocument(edit.Handle(doc)))
}
