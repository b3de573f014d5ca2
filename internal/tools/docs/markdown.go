package docs

import (
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-yaml"
	md "github.com/nao1215/markdown"
)

// Markdown wraps the markdown package with front matter support.
type Markdown struct {
	md        *md.Markdown
	writer    io.Writer
	buffer    *strings.Builder
	useBuffer bool
}

// NewMarkdown creates a new markdown builder
func NewMarkdown(w io.Writer) *Markdown {
	return &Markdown{
		md:     md.NewMarkdown(w),
		writer: w,
	}
}

// NewMarkdownBuffer creates a new markdown builder with internal buffer
func NewMarkdownBuffer() *Markdown {
	buffer := &strings.Builder{}
	return &Markdown{
		md:        md.NewMarkdown(buffer),
		writer:    buffer,
		buffer:    buffer,
		useBuffer: true,
	}
}

// String returns the buffered content
func (m *Markdown) String() string {
	if m.useBuffer && m.buffer != nil {
		return m.buffer.String()
	}
	return ""
}

// FrontMatter writes v as a YAML front matter block. It must be called
// before any other content.
func (m *Markdown) FrontMatter(v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshaling front matter: %w", err)
	}
	_, err = fmt.Fprintf(m.writer, "---\n%s---\n\n", data)
	return err
}

// H1 creates a level 1 header
func (m *Markdown) H1(text string) *Markdown {
	m.md.H1(text)
	return m
}

// H2 creates a level 2 header
func (m *Markdown) H2(text string) *Markdown {
	m.md.H2(text)
	return m
}

// PlainText adds plain text
func (m *Markdown) PlainText(text string) *Markdown {
	m.md.PlainText(text)
	return m
}

// LF adds a line feed
func (m *Markdown) LF() *Markdown {
	m.md.LF()
	return m
}

// Italic adds italic text
func (m *Markdown) Italic(text string) *Markdown {
	m.md.PlainText(md.Italic(text))
	return m
}

// Table adds a markdown table
func (m *Markdown) Table(header []string, rows [][]string) *Markdown {
	m.md.Table(md.TableSet{Header: header, Rows: rows})
	return m
}

// Build finalizes the markdown document
func (m *Markdown) Build() error {
	return m.md.Build()
}
