package drafty

import (
	"errors"
	"fmt"
)

// Builder errors.
var (
	ErrInvalidPosition = errors.New("invalid insertion position")
	ErrMissingContent  = errors.New("either content bits or a reference must be given")
	ErrInvalidAction   = errors.New("invalid button action")
)

// Button actions.
const (
	ActionURL = "url"
	ActionPub = "pub"
)

// Image describes an inline image.
type Image struct {
	Mime   string
	Bits   []byte
	Width  int
	Height int
	Name   string
	Ref    string
	Size   int64
}

// Audio describes an inline audio recording.
type Audio struct {
	Mime string
	Bits []byte
	// Preview holds amplitude bars.
	Preview  []byte
	Duration int
	Name     string
	Ref      string
	Size     int64
}

// Video describes an inline video with an optional poster image.
type Video struct {
	Mime     string
	Bits     []byte
	Width    int
	Height   int
	Preview  []byte
	PreRef   string
	PreMime  string
	Duration int
	Name     string
	Ref      string
	Size     int64
}

// File describes an out-of-band attachment.
type File struct {
	Mime string
	Bits []byte
	Name string
	Ref  string
	Size int64
}

// Button describes an interactive button.
type Button struct {
	Title  string
	ID     string
	Action string
	Value  string
	Ref    string
}

// Insert places text at the UTF-16 offset at. With a tag the inserted range gets
// that style, or becomes an entity when data is given. Existing ranges after the
// insertion point move right and ranges around it grow.
func (d *Document) Insert(at int, text string, tp Tag, data Data) error {
	if at < 0 || at > utf16Len(d.Txt) {
		return fmt.Errorf("insert at %d: %w", at, ErrInvalidPosition)
	}

	added := utf16Len(text)
	if added > 0 {
		for i := range d.Fmt {
			s := &d.Fmt[i]
			switch {
			case s.At < 0:
			case s.At >= at:
				s.At += added
			case s.Len > at-s.At:
				s.Len += added
			}
		}
		head, tail := splitUnits(d.Txt, at)
		d.Txt = head + text + tail
	}

	if tp == "" {
		return nil
	}
	if data != nil {
		d.Ent = append(d.Ent, Entity{Tp: tp, Data: data})
		d.Fmt = append(d.Fmt, Style{At: at, Len: added, Key: len(d.Ent) - 1})
	} else {
		d.Fmt = append(d.Fmt, Style{Tp: tp, At: at, Len: added})
	}
	return nil
}

// InsertImage inserts an inline image at the given offset.
func (d *Document) InsertImage(at int, img Image) error {
	if img.Bits == nil && img.Ref == "" {
		return fmt.Errorf("insert image: %w", ErrMissingContent)
	}
	data := Data{"width": img.Width, "height": img.Height}
	data.put("mime", img.Mime)
	data.put("name", img.Name)
	data.put("ref", img.Ref)
	if img.Bits != nil {
		data["val"] = img.Bits
	}
	if img.Size > 0 {
		data["size"] = img.Size
	}
	return d.Insert(at, " ", TagImage, data)
}

// InsertAudio inserts an audio recording at the given offset.
func (d *Document) InsertAudio(at int, a Audio) error {
	if a.Bits == nil && a.Ref == "" {
		return fmt.Errorf("insert audio: %w", ErrMissingContent)
	}
	data := Data{"mime": a.Mime, "duration": a.Duration}
	data.put("name", a.Name)
	data.put("ref", a.Ref)
	if a.Bits != nil {
		data["val"] = a.Bits
	}
	if a.Preview != nil {
		data["preview"] = a.Preview
	}
	if a.Size > 0 {
		data["size"] = a.Size
	}
	return d.Insert(at, " ", TagAudio, data)
}

// InsertVideo inserts a video at the given offset.
func (d *Document) InsertVideo(at int, v Video) error {
	if v.Bits == nil && v.Ref == "" {
		return fmt.Errorf("insert video: %w", ErrMissingContent)
	}
	data := Data{"mime": v.Mime, "duration": v.Duration, "width": v.Width, "height": v.Height}
	data.put("premime", v.PreMime)
	data.put("preref", v.PreRef)
	data.put("name", v.Name)
	data.put("ref", v.Ref)
	if v.Bits != nil {
		data["val"] = v.Bits
	}
	if v.Preview != nil {
		data["preview"] = v.Preview
	}
	if v.Size > 0 {
		data["size"] = v.Size
	}
	return d.Insert(at, " ", TagVideo, data)
}

// AttachFile adds an out-of-band file attachment.
func (d *Document) AttachFile(f File) error {
	if f.Bits == nil && f.Ref == "" {
		return fmt.Errorf("attach file: %w", ErrMissingContent)
	}
	data := Data{}
	data.put("mime", f.Mime)
	data.put("name", f.Name)
	data.put("ref", f.Ref)
	if f.Bits != nil {
		data["val"] = f.Bits
	}
	size := f.Size
	if size <= 0 {
		size = int64(len(f.Bits))
	}
	if size > 0 {
		data["size"] = size
	}
	d.attach(Entity{Tp: TagAttachment, Data: data})
	return nil
}

// AttachJSON adds a form response payload as an attachment.
func (d *Document) AttachJSON(value map[string]any) *Document {
	d.attach(Entity{Tp: TagAttachment, Data: Data{"mime": MimeFormResponse, "val": value}})
	return d
}

func (d *Document) attach(ent Entity) {
	d.Ent = append(d.Ent, ent)
	d.Fmt = append(d.Fmt, Style{At: -1, Len: 1, Key: len(d.Ent) - 1})
}

// InsertButton inserts a button labeled with b.Title. URL buttons need a reference.
func (d *Document) InsertButton(at int, b Button) error {
	if b.Action != ActionURL && b.Action != ActionPub {
		return fmt.Errorf("button action %q: %w", b.Action, ErrInvalidAction)
	}
	if b.Action == ActionURL && b.Ref == "" {
		return fmt.Errorf("url button without reference: %w", ErrInvalidAction)
	}
	data := Data{"act": b.Action}
	data.put("name", b.ID)
	data.put("val", b.Value)
	data.put("ref", b.Ref)
	return d.Insert(at, b.Title, TagButton, data)
}

// Append adds other to the end of the document. Entity references are renumbered.
func (d *Document) Append(other *Document) *Document {
	if other == nil {
		return d
	}
	length := utf16Len(d.Txt)
	d.Txt += other.Txt

	keys := make(map[int]int)
	for _, s := range other.Fmt {
		at := -1
		if s.At >= 0 {
			at = s.At + length
		}
		if !s.IsUnstyled() {
			d.Fmt = append(d.Fmt, Style{Tp: s.Tp, At: at, Len: s.Len})
			continue
		}
		if s.Key < 0 || s.Key >= len(other.Ent) {
			continue
		}
		key, ok := keys[s.Key]
		if !ok {
			src := other.Ent[s.Key]
			d.Ent = append(d.Ent, Entity{Tp: src.Tp, Data: src.Data})
			key = len(d.Ent) - 1
			keys[s.Key] = key
		}
		d.Fmt = append(d.Fmt, Style{At: at, Len: s.Len, Key: key})
	}
	return d
}

// AppendLineBreak adds a line break at the end of the document.
func (d *Document) AppendLineBreak() *Document {
	d.Fmt = append(d.Fmt, Style{Tp: TagLineBreak, At: utf16Len(d.Txt), Len: 1})
	d.Txt += " "
	return d
}

// WrapInto styles the whole document with tp.
func (d *Document) WrapInto(tp Tag) *Document {
	d.Fmt = append(d.Fmt, Style{Tp: tp, At: 0, Len: utf16Len(d.Txt)})
	return d
}

// Mention returns a document with a single mention of user uid shown as name.
func Mention(name, uid string) *Document {
	d := FromPlainText(name)
	d.Fmt = []Style{{At: 0, Len: utf16Len(d.Txt), Key: 0}}
	d.Ent = []Entity{{Tp: TagMention, Data: Data{}.put("val", uid)}}
	return d
}

// VideoCall returns a document describing a video call.
func VideoCall() *Document {
	return &Document{
		Txt: " ",
		Fmt: []Style{{At: 0, Len: 1, Key: 0}},
		Ent: []Entity{{Tp: TagVideoCall}},
	}
}

// UpdateVideoCall records call state from params ("webrtc", "webrtc-duration") in the
// video call entity of d. A bare VC style is upgraded to an entity first.
func UpdateVideoCall(d *Document, params map[string]any, incoming bool) *Document {
	if d == nil || len(d.Fmt) == 0 || params == nil {
		return d
	}
	first := &d.Fmt[0]
	if first.Tp != "" && first.Tp != TagVideoCall {
		return d
	}

	if first.Tp != "" {
		first.Tp = ""
		first.Key = 0
		d.Ent = []Entity{{Tp: TagVideoCall}}
	} else if len(d.Ent) == 0 || d.Ent[0].Tp != TagVideoCall {
		return d
	}

	ent := &d.Ent[0]
	ent.Data = ent.Data.put("state", params["webrtc"])
	ent.Data = ent.Data.put("duration", params["webrtc-duration"])
	ent.Data = ent.Data.put("incoming", incoming)
	return d
}

// Quote returns body quoted under a header mentioning uid.
func Quote(header, uid string, body *Document) *Document {
	return Mention(header, uid).
		AppendLineBreak().
		Append(body).
		WrapInto(TagQuote)
}
