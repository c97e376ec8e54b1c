package main

/*
#include <stdint.h>
#include "aqtoml.h"
*/
import "C"

import "github.com/dzjyyds666/aqtoml/pkg/edit"

//export toml_edit_get_value_type
func toml_edit_get_value_type(value C.aq_handle, out *C.aq_str) C.int8_t {
	s, err := store.ValueType(edit.Handle(value))
	return putResult(out, s, err)
}

// toml_edit_value_to_string writes the value as it appears right of '='.
//
//export toml_edit_value_to_string
func toml_edit_value_to_string(value C.aq_handle, out *C.aq_str) C.int8_t {
	s, err := store.RenderValue(edit.Handle(value))
	return putResult(out, s, err)
}

//export toml_edit_value_to_item
func toml_edit_value_to_item(value C.aq_handle) C.aq_handle {
	return handleOut(store.ValueToItem(edit.Handle(value)))
}

//export toml_edit_value_get_string
func toml_edit_value_get_string(value C.aq_handle, out *C.aq_str) C.int8_t {
	s, err := store.ValueString(edit.Handle(value))
	return putResult(out, s, err)
}

//export toml_edit_value_get_i64
func toml_edit_value_get_i64(value C.aq_handle, out *C.int64_t) C.int8_t {
	if out == nil {
		return C.int8_t(statusFailed)
	}
	n, err := store.ValueInteger(edit.Handle(value))
	if err != nil {
		return C.int8_t(statusFailed)
	}
	*out = C.int64_t(n)
	return C.int8_t(statusOK)
}

//export toml_edit_value_get_f64
func toml_edit_value_get_f64(value C.aq_handle, out *C.double) C.int8_t {
	if out == nil {
		return C.int8_t(statusFailed)
	}
	f, err := store.ValueFloat(edit.Handle(value))
	if err != nil {
		return C.int8_t(statusFailed)
	}
	*out = C.double(f)
	return C.int8_t(statusOK)
}

// toml_edit_value_get_bool returns 1 for true, 0 for false and -1 when value
// is not a boolean.
//
//export toml_edit_value_get_bool
func toml_edit_value_get_bool(value C.aq_handle) C.int8_t {
	return boolStatus(store.ValueBoolean(edit.Handle(value)))
}

//export toml_edit_value_get_datetime
func toml_edit_value_get_datetime(value C.aq_handle, out *C.aq_str) C.int8_t {
	s, err := store.ValueDatetime(edit.Handle(value))
	return putResult(out, s, err)
}

//export toml_edit_value_get_inline_table
func toml_edit_value_get_inline_table(value C.aq_handle) C.aq_handle {
	return handleOut(store.ValueInlineTable(edit.Handle(value)))
}

//export toml_edit_value_close
func toml_edit_value_close(value C.aq_handle) C.int8_t {
	return status(store.CloseValue(edit.Handle(value)))
}
