package output

import (
	"strconv"

	"github.com/agentstation/metricdocs/pkg/catalog"
	"github.com/agentstation/metricdocs/pkg/differ"
	"github.com/agentstation/metricdocs/pkg/validator"
)

// IssuesData builds the issue table.
func IssuesData(issues []validator.Issue) Data {
	rows := make([][]string, len(issues))
	for i, issue := range issues {
		rows[i] = []string{issue.Entity.String(), issue.Code, strconv.Itoa(issue.Count), issue.Message}
	}
	return Data{
		Headers:    []string{"Entity", "Code", "Count", "Message"},
		Rows:       rows,
		RightAlign: []int{2},
		Source:     issues,
	}
}

// KeysData builds a one-column table of entity keys.
func KeysData(keys []catalog.Key) Data {
	rows := make([][]string, len(keys))
	for i, k := range keys {
		rows[i] = []string{k.String()}
	}
	return Data{Headers: []string{"Entity"}, Rows: rows, Source: keys}
}

// ChangesData builds the shape change table.
func ChangesData(cs *differ.Changeset) Data {
	var changes []differ.Change
	if cs != nil {
		changes = cs.Changes
	}
	rows := make([][]string, len(changes))
	for i, c := range changes {
		rows[i] = []string{c.Path, string(c.Type), c.OldShape, c.NewShape}
	}
	return Data{
		Headers: []string{"Path", "Change", "Old", "New"},
		Rows:    rows,
		Source:  changes,
	}
}

// SummaryData builds a two-column key/value table.
func SummaryData(pairs [][2]string, source any) Data {
	rows := make([][]string, len(pairs))
	for i, p := range pairs {
		rows[i] = []string{p[0], p[1]}
	}
	return Data{Headers: []string{"Step", "Result"}, Rows: rows, Source: source}
}
