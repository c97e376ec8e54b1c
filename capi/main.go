// Command capi builds the C shared library:
//
//	go build -buildmode=c-shared -o libaqtoml.so ./capi
//
// Every toml_edit_* function that creates or clones a node returns a handle
// the caller must release with the matching *_close function exactly once.
// Failures return 0 (handles) or -1 (status codes) and are logged to stderr
// at the level named by AQ_TOML_LOG.
package main

/*
#include <stdlib.h>
#include "aqtoml.h"
*/
import "C"

import (
	"strings"
	"unsafe"

	"github.com/dzjyyds666/aqtoml/pkg/edit"
	"github.com/dzjyyds666/aqtoml/pkg/logging"
)

var store = edit.New(edit.WithLogger(logging.FromEnv()))

const (
	statusFailed int8 = -1
	statusFalse  int8 = 0
	statusOK     int8 = 1
)

func status(err error) C.int8_t {
	if err != nil {
		return C.int8_t(statusFailed)
	}
	return C.int8_t(statusOK)
}

func boolStatus(b bool, err error) C.int8_t {
	return C.int8_t(tristate(b, err))
}

func tristate(b bool, err error) int8 {
	switch {
	case err != nil:
		return statusFailed
	case b:
		return statusOK
	default:
		return statusFalse
	}
}

func handleOut(h edit.Handle, err error) C.aq_handle {
	if err != nil {
		return 0
	}
	return C.aq_handle(h)
}

// goString copies s into Go memory.
func goString(s *C.aq_str) (string, bool) {
	if s == nil {
		return "", false
	}
	if s.len == 0 {
		return "", true
	}
	if s.data == nil {
		return "", false
	}
	return strings.Clone(unsafe.String((*byte)(unsafe.Pointer(s.data)), int(s.len))), true
}

func putString(out *C.aq_str, s string) C.int8_t {
	if out == nil {
		return C.int8_t(statusFailed)
	}
	var p *C.char
	if len(s) > 0 {
		p = (*C.char)(unsafe.Pointer(unsafe.StringData(s)))
	}
	if C.aq_str_set(out, p, C.size_t(len(s))) == 0 {
		return C.int8_t(statusFailed)
	}
	return C.int8_t(statusOK)
}

func putResult(out *C.aq_str, s string, err error) C.int8_t {
	if err != nil {
		return C.int8_t(statusFailed)
	}
	return putString(out, s)
}

// keyLines renders keys one per line, each followed by '\n'.
func keyLines(keys []string) string {
	var b strings.Builder
	for _, k := range keys {
		b.WriteString(k)
		b.WriteByte('\n')
	}
	return b.String()
}

//export toml_edit_string_free
func toml_edit_string_free(s *C.char) {
	C.free(unsafe.Pointer(s))
}

func main() {}
