package edit

import (
	"fmt"

	"github.com/dzjyyds666/aqtoml/parse/toml"
)

// ParseDocument parses text into a new document handle. Nothing is
// allocated when text is malformed.
func (s *Store) ParseDocument(text string) (Handle, error) {
	doc, err := toml.ParseString(text)
	if err != nil {
		return Null, s.fail("parse document", fmt.Errorf("%w: %w", ErrParse, err))
	}
	h := s.docs.Insert(doc)
	s.log.Debug("document opened", "handle", h)
	return h, nil
}

// ParseError describes why text does not parse, or returns "" when it does.
func (s *Store) ParseError(text string) string {
	if _, err := toml.ParseString(text); err != nil {
		return err.Error()
	}
	return ""
}

func (s *Store) RenderDocument(doc Handle) (string, error) {
	d, err := s.document("render document", doc)
	if err != nil {
		return "", err
	}
	return d.String(), nil
}

// DocumentRoot returns a clone of the root table.
func (s *Store) DocumentRoot(doc Handle) (Handle, error) {
	d, err := s.document("document root", doc)
	if err != nil {
		return Null, err
	}
	return s.tables.Insert(d.Root().Clone()), nil
}

// DocumentSetItem writes a copy of item under key in the root table. Unlike
// the table setters it mutates the document behind doc directly, and returns
// doc for chaining.
func (s *Store) DocumentSetItem(doc Handle, key string, item Handle) (Handle, error) {
	const op = "document set item"
	d, err := s.document(op, doc)
	if err != nil {
		return Null, err
	}
	if err := s.checkText(op, "key", key); err != nil {
		return Null, err
	}
	it, err := s.item(op, item)
	if err != nil {
		return Null, err
	}
	d.Root().Set(key, it.Clone())
	return doc, nil
}

// DocumentTableKeys lists the root keys that hold tables.
func (s *Store) DocumentTableKeys(doc Handle) ([]string, error) {
	d, err := s.document("list document tables", doc)
	if err != nil {
		return nil, err
	}
	return d.TableKeys(), nil
}

// DocumentTable returns a clone of the root table stored under key.
func (s *Store) DocumentTable(doc Handle, key string) (Handle, error) {
	const op = "document get table"
	d, err := s.document(op, doc)
	if err != nil {
		return Null, err
	}
	it, ok := d.Root().Get(key)
	if !ok {
		return Null, s.fail(op, fmt.Errorf("%w: %q", ErrNotFound, key))
	}
	t, ok := it.Table()
	if !ok {
		return Null, s.fail(op, wrongType(key, it.Kind(), "Table"))
	}
	return s.tables.Insert(t.Clone()), nil
}

func (s *Store) CloseDocument(doc Handle) error {
	return closeHandle(s, s.docs, "document", doc)
}
