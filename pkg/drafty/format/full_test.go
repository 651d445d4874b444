package format_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/drafty/pkg/drafty"
	"github.com/yaklabco/drafty/pkg/drafty/format"
)

func TestFull_Render(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		doc  *drafty.Document
		want string
	}{
		{
			name: "plain",
			doc:  drafty.Parse("just text"),
			want: "just text",
		},
		{
			name: "inline styles",
			doc:  drafty.Parse("*bold* _it_ ~del~ `code`"),
			want: "<bold>bold</bold> <italic>it</italic> <strike>del</strike> <mono>code</mono>",
		},
		{
			name: "nested styles",
			doc:  drafty.Parse("*bold _both_*"),
			want: "<bold>bold <italic>both</italic></bold>",
		},
		{
			name: "line break",
			doc:  drafty.Parse("one\ntwo"),
			want: "one\ntwo",
		},
		{
			name: "link",
			doc:  drafty.Parse("see https://api.tinode.co"),
			want: "see <link>https://api.tinode.co</link>",
		},
		{
			name: "hashtag stays plain",
			doc:  drafty.Parse("#go rocks"),
			want: "#go rocks",
		},
		{
			name: "hidden text",
			doc: &drafty.Document{
				Txt: "secret shown",
				Fmt: []drafty.Style{{At: 0, Len: 7, Tp: drafty.TagHidden}},
			},
			want: "shown",
		},
		{
			name: "button",
			doc: &drafty.Document{
				Txt: "Press OK",
				Fmt: []drafty.Style{{At: 6, Len: 2}},
				Ent: []drafty.Entity{{Tp: drafty.TagButton, Data: drafty.Data{"act": "pub", "name": "ok"}}},
			},
			want: "Press <button>OK</button>\u2009",
		},
	}

	full := format.NewFull(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, full.Format(tt.doc).Render(tagDecorator{}))
		})
	}
}

func TestFull_LinkAttributes(t *testing.T) {
	t.Parallel()

	n := format.NewFull(nil).Format(drafty.Parse("see https://api.tinode.co"))
	require.Len(t, n.Children, 2)

	link := n.Children[1]
	assert.Equal(t, format.StyleLink, link.Style)
	assert.Equal(t, "https://api.tinode.co", link.Attr[format.AttrURL])
}

func TestFull_Mention(t *testing.T) {
	t.Parallel()

	palette := []string{"red", "green", "blue"}
	n := format.NewFull(palette).Format(drafty.Mention("Alice", "a"))
	require.NotNil(t, n)

	assert.Equal(t, format.StyleColor, n.Style)
	assert.Equal(t, "Alice", n.Text)
	// "a" hashes to 97.
	assert.Equal(t, "green", n.Attr[format.AttrColor])
}

func TestFull_Attachment(t *testing.T) {
	t.Parallel()

	full := format.NewFull(nil)

	t.Run("size and name", func(t *testing.T) {
		t.Parallel()

		doc := &drafty.Document{}
		require.NoError(t, doc.AttachFile(drafty.File{Mime: "text/plain", Name: "notes.txt", Ref: "/f/1", Size: 2048}))

		assert.Equal(t, " notes.txt\u2009(2.0 KiB)", full.Format(doc).String())
	})

	t.Run("long name is shortened", func(t *testing.T) {
		t.Parallel()

		doc := &drafty.Document{}
		require.NoError(t, doc.AttachFile(drafty.File{Mime: "text/plain", Name: "abcdefghijklmnopqrstuvwxyz.txt", Ref: "/f/2"}))

		assert.Equal(t, " abcdefgh…vwxyz.txt", full.Format(doc).String())
	})

	t.Run("language label without mime", func(t *testing.T) {
		t.Parallel()

		doc := &drafty.Document{}
		require.NoError(t, doc.AttachFile(drafty.File{Name: "main.go", Bits: []byte("package main")}))

		assert.Equal(t, " main.go Go\u2009(12 B)", full.Format(doc).String())
	})

	t.Run("form response is hidden", func(t *testing.T) {
		t.Parallel()

		doc := (&drafty.Document{}).AttachJSON(map[string]any{"resp": "yes"})

		assert.Nil(t, full.Format(doc))
	})
}

func TestFull_VideoCall(t *testing.T) {
	t.Parallel()

	full := format.NewFull(nil)

	missed := drafty.UpdateVideoCall(drafty.VideoCall(), map[string]any{"webrtc": "missed"}, true)
	assert.Equal(t, " Incoming call\n  Missed call", full.Format(missed).String())

	finished := drafty.UpdateVideoCall(drafty.VideoCall(),
		map[string]any{"webrtc": "finished", "webrtc-duration": 65000}, false)
	assert.Equal(t, " Outgoing call\n  1:05", full.Format(finished).String())
}

func TestFull_Unknown(t *testing.T) {
	t.Parallel()

	full := format.NewFull(nil)

	sized := &drafty.Document{
		Txt: " ",
		Fmt: []drafty.Style{{At: 0, Len: 1}},
		Ent: []drafty.Entity{{Tp: "XX", Data: drafty.Data{"width": 10, "height": 5}}},
	}
	n := full.Format(sized)
	require.NotNil(t, n)
	assert.Equal(t, format.StyleImage, n.Style)
	assert.Equal(t, format.IconUnknown, n.Attr[format.AttrKind])

	file := &drafty.Document{
		Txt: " ",
		Fmt: []drafty.Style{{At: 0, Len: 1}},
		Ent: []drafty.Entity{{Tp: "XX", Data: drafty.Data{"name": "a.bin", "mime": "application/octet-stream", "size": 10}}},
	}
	assert.Equal(t, " a.bin\u2009(10 B)", full.Format(file).String())
}

func TestFull_Quote(t *testing.T) {
	t.Parallel()

	doc := drafty.Quote("Alice", "a", drafty.FromPlainText("hello"))

	t.Run("without quote formatter", func(t *testing.T) {
		t.Parallel()

		n := format.NewFull(nil).Format(doc)
		assert.Equal(t, "Alice\nhello\n", n.String())
		assert.Equal(t, "<quote><color>Alice</color>\nhello</quote>\n", n.Render(tagDecorator{}))
	})

	t.Run("with quote formatter", func(t *testing.T) {
		t.Parallel()

		quote, err := format.NewQuote(30, nil)
		require.NoError(t, err)

		n := format.NewFull(nil).WithQuote(quote).Format(doc)
		assert.Equal(t, "<quote><color>Alice</color>\n<muted>hello</muted></quote>\n", n.Render(tagDecorator{}))
	})

	t.Run("quoted content is clipped", func(t *testing.T) {
		t.Parallel()

		quote, err := format.NewQuote(5, nil)
		require.NoError(t, err)

		long := drafty.Quote("Al", "a", drafty.FromPlainText("hello world"))
		n := format.NewFull(nil).WithQuote(quote).Format(long)
		assert.Equal(t, "Al\nh…\n", n.String())
	})

	t.Run("nested quote is dropped", func(t *testing.T) {
		t.Parallel()

		quote, err := format.NewQuote(0, nil)
		require.NoError(t, err)

		nested := drafty.Quote("Bob", "b", drafty.Quote("Alice", "a", drafty.FromPlainText("hi")))
		n := format.NewFull(nil).WithQuote(quote).Format(nested)
		assert.Equal(t, "Bob\n\n", n.String())
	})
}
