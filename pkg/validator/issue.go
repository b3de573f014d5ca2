package validator

import (
	"fmt"
	"sort"

	"github.com/agentstation/metricdocs/pkg/catalog"
)

// Issue codes.
const (
	CodeKindMismatch         = "kind_mismatch"
	CodeUnknownKind          = "unknown_kind"
	CodeFetchError           = "fetch_error"
	CodeInvalidResponse      = "invalid_response"
	CodeMissingCollectionKey = "missing_collection_key"
	CodeUnexpectedFields     = "unexpected_fields"
	CodeInvalidPayload       = "invalid_payload"
	CodeInvalidPoint         = "invalid_point"
	CodeMissingValue         = "missing_value"
	CodeInvalidValueType     = "invalid_value_type"
	CodeInvalidDateType      = "invalid_date_type"
	CodeMalformedPayload     = "malformed_payload"
)

// Issue is one reportable finding against an entity.
type Issue struct {
	Entity     catalog.Key `json:"entity" yaml:"entity"`
	Collection string      `json:"collection" yaml:"collection"`
	Code       string      `json:"code" yaml:"code"`
	Message    string      `json:"message" yaml:"message"`
	Fragment   string      `json:"fragment,omitempty" yaml:"fragment,omitempty"`
	Count      int         `json:"count" yaml:"count"`
}

// String renders the issue on one line.
func (i Issue) String() string {
	if i.Count > 1 {
		return fmt.Sprintf("%s: [%s] %s (x%d)", i.Entity, i.Code, i.Message, i.Count)
	}
	return fmt.Sprintf("%s: [%s] %s", i.Entity, i.Code, i.Message)
}

// IssuesFor flattens the findings of entities into issues ordered by
// entity key. Findings keep their recorded order within an entity.
func IssuesFor(entities []*catalog.Entity) []Issue {
	sorted := make([]*catalog.Entity, len(entities))
	copy(sorted, entities)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Key() < sorted[j].Key() })

	issues := []Issue{}
	for _, e := range sorted {
		for _, f := range e.Findings() {
			count := f.Count
			if count == 0 {
				count = 1
			}
			issues = append(issues, Issue{
				Entity:     e.Key(),
				Collection: e.CollectionKey(),
				Code:       f.Code,
				Message:    f.Message,
				Fragment:   f.Fragment,
				Count:      count,
			})
		}
	}
	return issues
}
