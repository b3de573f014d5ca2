package docs

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/agentstation/metricdocs/pkg/catalog"
	"github.com/agentstation/metricdocs/pkg/constants"
)

// pageFrontMatter is the YAML header of an entity page.
type pageFrontMatter struct {
	Title          string `yaml:"title"`
	Description    string `yaml:"description,omitempty"`
	Identifier     string `yaml:"identifier"`
	Collection     string `yaml:"collection"`
	CollectionName string `yaml:"collection_name,omitempty"`
	Classification string `yaml:"classification"`
	Kind           string `yaml:"kind"`
	Source         string `yaml:"source,omitempty"`
	Interval       string `yaml:"interval,omitempty"`
	Aggregation    string `yaml:"aggregation,omitempty"`
	Category       string `yaml:"category,omitempty"`
}

var titleCaser = cases.Title(language.English)

// renderPage renders one entity page. payload is the cached sample
// response, or nil.
func renderPage(e *catalog.Entity, payload any) (string, error) {
	collectionName := e.CollectionKey()
	class := "generic"
	if col := e.Collection(); col != nil {
		collectionName = col.Name
		class = string(catalog.Classify(col).Kind())
	}

	title := e.Name()
	if title == "" {
		title = e.ID()
	}

	m := NewMarkdownBuffer()
	err := m.FrontMatter(pageFrontMatter{
		Title:          title,
		Description:    e.Description(),
		Identifier:     e.ID(),
		Collection:     e.CollectionKey(),
		CollectionName: collectionName,
		Classification: class,
		Kind:           string(e.Kind()),
		Source:         e.Source(),
		Interval:       e.Interval(),
		Aggregation:    e.Aggregation(),
		Category:       e.Category(),
	})
	if err != nil {
		return "", err
	}

	m.H1(title)
	if e.Description() != "" {
		m.PlainText(e.Description()).LF()
	}

	m.H2("Details").Table([]string{"Field", "Value"}, [][]string{
		{"Identifier", "`" + e.ID() + "`"},
		{"Collection", collectionName},
		{"Classification", titleCaser.String(class)},
		{"Kind", titleCaser.String(string(e.Kind()))},
		{"Source", dash(e.Source())},
		{"Interval", dash(e.Interval())},
		{"Aggregation", dash(e.Aggregation())},
		{"Category", dash(e.Category())},
	})

	m.H2("Sample data")
	if rows := sampleRows(e.CollectionKey(), payload); len(rows) > 0 {
		m.Table([]string{"Date", "Value"}, rows)
	} else {
		m.Italic("No sample data available.").LF()
	}

	if err := m.Build(); err != nil {
		return "", err
	}
	return m.String(), nil
}

// sampleRows extracts the first preview rows from a sample response.
func sampleRows(collection string, payload any) [][]string {
	obj, ok := payload.(map[string]any)
	if !ok {
		return nil
	}
	var points []any
	for key, v := range obj {
		if !strings.EqualFold(key, collection) {
			continue
		}
		switch data := v.(type) {
		case []any:
			points = data
		case map[string]any:
			points = []any{data}
		}
		break
	}

	var rows [][]string
	for _, p := range points {
		if len(rows) == constants.SamplePreviewRows {
			break
		}
		point, ok := p.(map[string]any)
		if !ok {
			continue
		}
		rows = append(rows, []string{cell(point["date"]), cell(point["value"])})
	}
	return rows
}

func cell(v any) string {
	switch x := v.(type) {
	case nil:
		return "-"
	case string:
		return x
	case float64:
		return fmt.Sprintf("%g", x)
	}
	return fmt.Sprintf("%v", v)
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
