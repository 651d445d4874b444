// Package drafty implements Drafty, the compact markup format used in chat messages.
//
// A Document is plain text plus out-of-line style ranges and a table of entities.
// Parse turns source text such as "*bold* and _italic_" into a Document, Tree regroups
// the flat ranges into nested scopes, and Format walks that tree with a caller supplied
// formatter. All offsets are UTF-16 code units so documents interoperate with other
// clients of the format.
package drafty

import (
	"fmt"
	"maps"
	"strings"
)

// Document is the canonical Drafty representation.
type Document struct {
	Txt string   `json:"txt,omitempty" cbor:"txt,omitempty"`
	Fmt []Style  `json:"fmt,omitempty" cbor:"fmt,omitempty"`
	Ent []Entity `json:"ent,omitempty" cbor:"ent,omitempty"`
}

// Style is a range of text with either an inline style or a reference to an entity.
// An empty Tp means the range refers to Ent[Key]. At == -1 marks an attachment that
// has no place in the text.
type Style struct {
	At  int `json:"at,omitempty" cbor:"at,omitempty"`
	Len int `json:"len,omitempty" cbor:"len,omitempty"`
	Tp  Tag `json:"tp,omitempty" cbor:"tp,omitempty"`
	Key int `json:"key,omitempty" cbor:"key,omitempty"`
}

// Entity is a typed bag of values referenced from styles.
type Entity struct {
	Tp   Tag  `json:"tp,omitempty" cbor:"tp,omitempty"`
	Data Data `json:"data,omitempty" cbor:"data,omitempty"`
}

// Data holds entity values keyed by field name.
type Data map[string]any

// FromPlainText returns a document holding content without any markup.
func FromPlainText(content string) *Document {
	return &Document{Txt: normalize(content)}
}

// IsPlain reports whether the document carries no styles and no entities.
func (d *Document) IsPlain() bool {
	return d == nil || (len(d.Fmt) == 0 && len(d.Ent) == 0)
}

// HasEntities reports whether any entity has one of the given types.
// Without types it reports whether the document has entities at all.
func (d *Document) HasEntities(types ...Tag) bool {
	if d == nil {
		return false
	}
	if len(types) == 0 {
		return len(d.Ent) > 0
	}
	for _, ent := range d.Ent {
		for _, tp := range types {
			if ent.Tp == tp {
				return true
			}
		}
	}
	return false
}

// EntReferences returns the out-of-band references (ref and preref) of all entities.
func (d *Document) EntReferences() []string {
	if d == nil {
		return nil
	}
	var refs []string
	for _, ent := range d.Ent {
		for _, field := range []string{"ref", "preref"} {
			if ref := ent.Data.String(field); ref != "" {
				refs = append(refs, ref)
			}
		}
	}
	return refs
}

// String returns the plain text of the document.
func (d *Document) String() string {
	if d == nil {
		return ""
	}
	return d.Txt
}

// DebugString renders all parts of the document for logs and test failures.
func (d *Document) DebugString() string {
	if d == nil {
		return "null"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "{txt: '%s', fmt: [", d.Txt)
	for i, s := range d.Fmt {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(s.String())
	}
	b.WriteString("], ent: [")
	for i, e := range d.Ent {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "{tp: %s, data: %v}", e.Tp, map[string]any(e.Data))
	}
	b.WriteString("]}")
	return b.String()
}

// Equal reports whether both documents have the same text, styles and entities.
// Style and entity order is significant.
func (d *Document) Equal(other *Document) bool {
	if d == nil || other == nil {
		return d.IsPlain() && other.IsPlain() && d.String() == other.String()
	}
	if d.Txt != other.Txt || len(d.Fmt) != len(other.Fmt) || len(d.Ent) != len(other.Ent) {
		return false
	}
	for i := range d.Fmt {
		if d.Fmt[i] != other.Fmt[i] {
			return false
		}
	}
	for i := range d.Ent {
		if !d.Ent[i].Equal(other.Ent[i]) {
			return false
		}
	}
	return true
}

// Clone returns a deep enough copy for the builders to mutate freely.
func (d *Document) Clone() *Document {
	if d == nil {
		return &Document{}
	}
	out := &Document{Txt: d.Txt}
	if len(d.Fmt) > 0 {
		out.Fmt = append([]Style(nil), d.Fmt...)
	}
	for _, e := range d.Ent {
		out.Ent = append(out.Ent, Entity{Tp: e.Tp, Data: maps.Clone(e.Data)})
	}
	return out
}

// String renders the style as TP@at+len or ->key@at+len.
func (s Style) String() string {
	if s.Tp == "" {
		return fmt.Sprintf("->%d@%d+%d", s.Key, s.At, s.Len)
	}
	return fmt.Sprintf("%s@%d+%d", s.Tp, s.At, s.Len)
}

// IsUnstyled reports whether the style is a reference to an entity.
func (s Style) IsUnstyled() bool {
	return s.Tp == ""
}

// Equal compares entity type and data values.
func (e Entity) Equal(other Entity) bool {
	if e.Tp != other.Tp || len(e.Data) != len(other.Data) {
		return false
	}
	for k, v := range e.Data {
		ov, ok := other.Data[k]
		if !ok || fmt.Sprint(v) != fmt.Sprint(ov) {
			return false
		}
	}
	return true
}

// String returns the value stored under key when it is a string.
func (d Data) String(key string) string {
	s, _ := d[key].(string)
	return s
}

// Int returns the numeric value stored under key, accepting the types JSON and CBOR
// decoders produce.
func (d Data) Int(key string) int {
	switch v := d[key].(type) {
	case int:
		return v
	case int8:
		return int(v)
	case int16:
		return int(v)
	case int32:
		return int(v)
	case int64:
		return int(v)
	case uint:
		return int(v)
	case uint8:
		return int(v)
	case uint16:
		return int(v)
	case uint32:
		return int(v)
	case uint64:
		return int(v)
	case float32:
		return int(v)
	case float64:
		return int(v)
	case interface{ Int64() (int64, error) }:
		n, _ := v.Int64()
		return int(n)
	}
	return 0
}

// Bool returns the boolean stored under key.
func (d Data) Bool(key string) bool {
	b, _ := d[key].(bool)
	return b
}

// put stores value unless it is nil or an empty string.
func (d Data) put(key string, value any) Data {
	if value == nil {
		return d
	}
	if s, ok := value.(string); ok && s == "" {
		return d
	}
	if d == nil {
		d = Data{}
	}
	d[key] = value
	return d
}
