package legacy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blog-cms-be/pkg/document"
)

func TestImportHTMLInlineFormatting(t *testing.T) {
	blocks := ImportHTML(`<p>Hello <b>world</b><br>again</p>`)

	require.Len(t, blocks, 1)
	p := blocks[0]
	assert.Equal(t, document.TypeParagraph, p.Type)
	require.Len(t, p.Children, 4)

	assert.Equal(t, "Hello ", p.Children[0].Text)
	assert.Equal(t, 0, p.Children[0].Format.Bits)

	assert.Equal(t, "world", p.Children[1].Text)
	assert.Equal(t, document.FormatBold, p.Children[1].Format.Bits)

	assert.Equal(t, document.TypeLinebreak, p.Children[2].Type)

	assert.Equal(t, "again", p.Children[3].Text)
	assert.Equal(t, 0, p.Children[3].Format.Bits)
}

func TestImportHTMLEntities(t *testing.T) {
	blocks := ImportHTML(`<p>Fish &amp; chips &mdash; &lt;cheap&gt;</p>`)

	require.Len(t, blocks, 1)
	require.Len(t, blocks[0].Children, 1)
	assert.Equal(t, "Fish & chips — <cheap>", blocks[0].Children[0].Text)
}

func TestImportHTMLUnknownTagsUnwrap(t *testing.T) {
	blocks := ImportHTML(`<p><article>kept <code>text</code></article></p>`)

	require.Len(t, blocks, 1)
	var text string
	for _, c := range blocks[0].Children {
		text += c.Text
	}
	assert.Equal(t, "kept text", text)
}

func TestImportHTMLImageSplitsParagraph(t *testing.T) {
	blocks := ImportHTML(`<p>before<img src="/content/images/a.jpg" alt="A">after</p>`)

	require.Len(t, blocks, 3)
	assert.Equal(t, document.TypeParagraph, blocks[0].Type)
	assert.Equal(t, "before", blocks[0].Children[0].Text)

	assert.Equal(t, document.TypeImage, blocks[1].Type)
	assert.Equal(t, "/content/images/a.jpg", blocks[1].Src)
	assert.Equal(t, "A", blocks[1].Alt)

	assert.Equal(t, document.TypeParagraph, blocks[2].Type)
	assert.Equal(t, "after", blocks[2].Children[0].Text)
}

func TestImportHTMLLinks(t *testing.T) {
	blocks := ImportHTML(`<p>see <a href="https://example.com" target="_blank">the <i>docs</i></a></p>`)

	require.Len(t, blocks, 1)
	require.Len(t, blocks[0].Children, 2)

	link := blocks[0].Children[1]
	assert.Equal(t, document.TypeLink, link.Type)
	assert.Equal(t, "https://example.com", link.URL)
	assert.Equal(t, "_blank", link.Target)
	require.Len(t, link.Children, 2)
	assert.Equal(t, "the ", link.Children[0].Text)
	assert.Equal(t, document.FormatItalic, link.Children[1].Format.Bits)
}

func TestImportHTMLHrefLessAnchorUnwraps(t *testing.T) {
	blocks := ImportHTML(`<p><a name="x">plain</a></p>`)

	require.Len(t, blocks, 1)
	require.Len(t, blocks[0].Children, 1)
	assert.Equal(t, document.TypeText, blocks[0].Children[0].Type)
	assert.Equal(t, "plain", blocks[0].Children[0].Text)
}

func TestImportHTMLStyles(t *testing.T) {
	blocks := ImportHTML(`<p><u><font color="red">warm</font></u> <span style="color: blue; float: left">cool</span></p>`)

	require.Len(t, blocks, 1)
	children := blocks[0].Children
	require.Len(t, children, 3)

	assert.Equal(t, "text-decoration: underline; color: red", children[0].Style)
	// Only allowlisted declarations survive a span's style attribute.
	assert.Equal(t, "color: blue", children[2].Style)
}

func TestImportHTMLDivAlignment(t *testing.T) {
	blocks := ImportHTML(`<div align="center"><p>centered</p></div><p>plain</p>`)

	require.Len(t, blocks, 2)
	assert.Equal(t, "center", blocks[0].Format.Align)
	assert.True(t, blocks[1].Format.IsZero())
}

func TestImportHTMLInterBlockWhitespaceDropped(t *testing.T) {
	blocks := ImportHTML("<p>one</p>\n\t<p>two</p>")

	require.Len(t, blocks, 2)
	assert.Equal(t, "one", blocks[0].Children[0].Text)
	assert.Equal(t, "two", blocks[1].Children[0].Text)
}

func TestImportHTMLBareText(t *testing.T) {
	blocks := ImportHTML(`just prose, no tags`)

	require.Len(t, blocks, 1)
	assert.Equal(t, document.TypeParagraph, blocks[0].Type)
	assert.Equal(t, "just prose, no tags", blocks[0].Children[0].Text)
}
