package drafty

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"

	"github.com/fxamacker/cbor/v2"
)

// FormatError reports a document that could not be decoded from its wire form.
type FormatError struct {
	// Path names the offending field when the decoder knows it.
	Path string
	Err  error
}

func (e *FormatError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("drafty: invalid document at %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("drafty: invalid document: %v", e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// wireDocument mirrors Document without its custom unmarshaler.
type wireDocument Document

// UnmarshalJSON accepts either a document object or a bare string of plain text.
func (d *Document) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var txt string
		if err := json.Unmarshal(trimmed, &txt); err != nil {
			return newFormatError(err)
		}
		*d = Document{Txt: normalize(txt)}
		return nil
	}

	var wire wireDocument
	if err := json.Unmarshal(trimmed, &wire); err != nil {
		return newFormatError(err)
	}
	*d = Document(wire)
	return nil
}

// Decode reads a document from its JSON wire form.
// A JSON null decodes to an empty document.
func Decode(data []byte) (*Document, error) {
	doc := &Document{}
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, newFormatError(err)
	}
	return doc, nil
}

// Encode writes the JSON wire form of the document.
func Encode(doc *Document) ([]byte, error) {
	if doc == nil {
		doc = &Document{}
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return data, nil
}

// cborEncMode uses core deterministic encoding so equal documents produce equal bytes.
//
//nolint:gochecknoglobals // Codec modes are built once and never modified
var (
	cborEncMode cbor.EncMode
	cborDecMode cbor.DecMode
)

func init() {
	var err error

	cborEncMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("drafty: CBOR encoder initialization failed: " + err.Error())
	}

	// Entity data nested inside any values must decode to string keyed maps.
	cborDecMode, err = cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		panic("drafty: CBOR decoder initialization failed: " + err.Error())
	}
}

// DecodeCBOR reads a document from its CBOR form.
func DecodeCBOR(data []byte) (*Document, error) {
	var wire wireDocument
	if err := cborDecMode.Unmarshal(data, &wire); err != nil {
		return nil, newFormatError(err)
	}
	doc := Document(wire)
	return &doc, nil
}

// EncodeCBOR writes a deterministic CBOR form of the document using the JSON field names.
func EncodeCBOR(doc *Document) ([]byte, error) {
	if doc == nil {
		doc = &Document{}
	}
	data, err := cborEncMode.Marshal(wireDocument(*doc))
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return data, nil
}

func newFormatError(err error) error {
	var fe *FormatError
	if errors.As(err, &fe) {
		return fe
	}
	path := ""
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		path = typeErr.Field
	}
	var cborTypeErr *cbor.UnmarshalTypeError
	if errors.As(err, &cborTypeErr) {
		path = cborTypeErr.StructFieldName
	}
	return &FormatError{Path: path, Err: err}
}
