// Package edit exposes a TOML document tree through opaque handles.
//
// Every accessor that yields a handle yields an independent clone: mutating
// it never changes the container it came from until the clone is written
// back with one of the SetItem calls. Every handle must be closed exactly
// once with the Close call of its kind; closing twice or using a closed
// handle fails with ErrNullHandle.
//
// Failures are returned as errors and also logged on the store's logger.
package edit

import (
	"errors"
	"fmt"
	"log/slog"
	"unicode/utf8"

	"github.com/dzjyyds666/aqtoml/parse/toml"
	"github.com/dzjyyds666/aqtoml/pkg/handle"
	"github.com/dzjyyds666/aqtoml/pkg/logging"
)

type Handle = handle.Handle

const Null = handle.Null

var (
	ErrParse      = errors.New("parse error")
	ErrNotFound   = errors.New("key not found")
	ErrWrongType  = errors.New("wrong type")
	ErrNullHandle = errors.New("null or invalid handle")
)

const (
	kindDocument handle.Kind = iota + 1
	kindTable
	kindInlineTable
	kindItem
	kindValue
)

// Store owns every node handed out as a handle.
type Store struct {
	docs    *handle.Registry[*toml.Document]
	tables  *handle.Registry[*toml.Table]
	inlines *handle.Registry[*toml.InlineTable]
	items   *handle.Registry[*toml.Item]
	values  *handle.Registry[*toml.Value]

	log *slog.Logger
}

type Option func(*Store)

func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

func New(opts ...Option) *Store {
	s := &Store{
		docs:    handle.NewRegistry[*toml.Document](kindDocument),
		tables:  handle.NewRegistry[*toml.Table](kindTable),
		inlines: handle.NewRegistry[*toml.InlineTable](kindInlineTable),
		items:   handle.NewRegistry[*toml.Item](kindItem),
		values:  handle.NewRegistry[*toml.Value](kindValue),
		log:     logging.Discard(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Live reports how many handles of each kind are open.
func (s *Store) Live() map[string]int {
	return map[string]int{
		"Document":    s.docs.Len(),
		"Table":       s.tables.Len(),
		"InlineTable": s.inlines.Len(),
		"Item":        s.items.Len(),
		"Value":       s.values.Len(),
	}
}

func (s *Store) fail(op string, err error) error {
	s.log.Warn(op+" failed", "err", err)
	return err
}

func (s *Store) document(op string, h Handle) (*toml.Document, error) {
	d, err := s.docs.Get(h)
	if err != nil {
		return nil, s.fail(op, fmt.Errorf("%w: document: %w", ErrNullHandle, err))
	}
	return d, nil
}

func (s *Store) table(op string, h Handle) (*toml.Table, error) {
	t, err := s.tables.Get(h)
	if err != nil {
		return nil, s.fail(op, fmt.Errorf("%w: table: %w", ErrNullHandle, err))
	}
	return t, nil
}

func (s *Store) inline(op string, h Handle) (*toml.InlineTable, error) {
	t, err := s.inlines.Get(h)
	if err != nil {
		return nil, s.fail(op, fmt.Errorf("%w: inline table: %w", ErrNullHandle, err))
	}
	return t, nil
}

func (s *Store) item(op string, h Handle) (*toml.Item, error) {
	it, err := s.items.Get(h)
	if err != nil {
		return nil, s.fail(op, fmt.Errorf("%w: item: %w", ErrNullHandle, err))
	}
	return it, nil
}

func (s *Store) value(op string, h Handle) (*toml.Value, error) {
	v, err := s.values.Get(h)
	if err != nil {
		return nil, s.fail(op, fmt.Errorf("%w: value: %w", ErrNullHandle, err))
	}
	return v, nil
}

func closeHandle[T any](s *Store, r *handle.Registry[T], what string, h Handle) error {
	if _, err := r.Remove(h); err != nil {
		return s.fail("close "+what, fmt.Errorf("%w: %s: %w", ErrNullHandle, what, err))
	}
	s.log.Debug(what+" closed", "handle", h)
	return nil
}

// checkText rejects text that would not survive a render and parse.
func (s *Store) checkText(op, what, text string) error {
	if !utf8.ValidString(text) {
		return s.fail(op, fmt.Errorf("%w: %s %q is not valid UTF-8", ErrParse, what, text))
	}
	return nil
}

func wrongType(key string, got fmt.Stringer, want string) error {
	return fmt.Errorf("%w: %q is %s, not %s", ErrWrongType, key, got, want)
}
