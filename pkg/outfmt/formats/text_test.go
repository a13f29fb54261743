package formats

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/outfmt/pkg/outfmt"
)

func TestText_Escape_Identity(t *testing.T) {
	f := NewText()

	in := strptr("anything, even \"specials\"\n")
	assert.Same(t, in, f.Escape(in))
	assert.Nil(t, f.Escape(nil))
}

func TestText_Render_Document(t *testing.T) {
	var buf bytes.Buffer
	e := outfmt.New(&buf, outfmt.WithFormat(NewText()))

	require.NoError(t, e.OpenDocument())
	require.NoError(t, e.OpenScope("COFF/File header"))
	require.NoError(t, e.KeyValue("Machine", "0x14c"))
	require.NoError(t, e.KeyValue("Number of sections", "3"))
	require.NoError(t, e.CloseScope())
	require.NoError(t, e.CloseDocument())

	want := "\nCOFF/File header\n" +
		"    Machine:" + strings.Repeat(" ", 20) + "0x14c\n" +
		"    Number of sections:" + strings.Repeat(" ", 9) + "3\n"
	assert.Equal(t, want, buf.String())
}

func TestText_Render_NestedScopesIndent(t *testing.T) {
	var buf bytes.Buffer
	e := outfmt.New(&buf, outfmt.WithFormat(NewText()))

	require.NoError(t, e.OpenDocument())
	require.NoError(t, e.OpenScope("Sections"))
	require.NoError(t, e.OpenScope("Section"))
	require.NoError(t, e.KeyValue("Name", ".text"))
	require.NoError(t, e.CloseScope())
	require.NoError(t, e.CloseScope())
	require.NoError(t, e.CloseDocument())

	want := "\nSections\n" +
		"\n    Section\n" +
		"        Name:" + strings.Repeat(" ", 19) + ".text\n"
	assert.Equal(t, want, buf.String())
}

func TestText_Render_ContinuationCellsAlign(t *testing.T) {
	var buf bytes.Buffer
	e := outfmt.New(&buf, outfmt.WithFormat(NewText()))

	require.NoError(t, e.OpenDocument())
	require.NoError(t, e.OpenScope("COFF/File header"))
	require.NoError(t, e.Key("Characteristics"))
	require.NoError(t, e.Value("EXECUTABLE_IMAGE"))
	require.NoError(t, e.Value("LINE_NUMS_STRIPPED"))
	require.NoError(t, e.CloseScope())
	require.NoError(t, e.CloseDocument())

	want := "\nCOFF/File header\n" +
		"    Characteristics\n" +
		strings.Repeat(" ", 32) + "EXECUTABLE_IMAGE\n" +
		strings.Repeat(" ", 32) + "LINE_NUMS_STRIPPED\n"
	assert.Equal(t, want, buf.String())
}

func TestText_Render_LongKeyKeepsOneSpace(t *testing.T) {
	f := NewText()
	var buf bytes.Buffer

	ev := outfmt.Event{
		Type:  outfmt.EventAttribute,
		Level: 2,
		Key:   strptr("a key far too long for the value column"),
		Value: strptr("v"),
	}
	require.NoError(t, f.Render(&buf, ev))

	assert.Equal(t, "    a key far too long for the value column: v\n", buf.String())
}

func TestText_Render_DocumentEventsPrintNothing(t *testing.T) {
	f := NewText()
	var buf bytes.Buffer

	require.NoError(t, f.Render(&buf, outfmt.Event{Type: outfmt.EventDocumentOpen, Key: strptr("report")}))
	require.NoError(t, f.Render(&buf, outfmt.Event{Type: outfmt.EventDocumentClose}))
	require.NoError(t, f.Render(&buf, outfmt.Event{Type: outfmt.EventScopeClose, Level: 1, Key: strptr("x")}))

	assert.Zero(t, buf.Len())
}
