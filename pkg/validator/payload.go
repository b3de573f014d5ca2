package validator

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/agentstation/metricdocs/pkg/catalog"
	"github.com/agentstation/metricdocs/pkg/constants"
)

const (
	fieldValue = "value"
	fieldDate  = "date"
)

// ValidatePayload checks a decoded sample response for the entity's
// collection. The response must hold the collection key, matched without
// regard to case, whose payload is a list of points or a single point.
// Repeated point-level findings with the same code collapse into one that
// carries the count and the first offending point.
func ValidatePayload(collection string, response any) []catalog.Finding {
	obj, ok := response.(map[string]any)
	if !ok {
		return []catalog.Finding{finding(CodeInvalidResponse,
			fmt.Sprintf("response is %s, expected an object", kindOf(response)), response)}
	}

	var (
		matched string
		found   bool
		extra   []string
	)
	for key := range obj {
		if !found && strings.EqualFold(key, collection) {
			matched, found = key, true
			continue
		}
		extra = append(extra, key)
	}
	sort.Strings(extra)

	if !found {
		return []catalog.Finding{finding(CodeMissingCollectionKey,
			fmt.Sprintf("response has no %q key (keys: %s)", collection, strings.Join(extra, ", ")), nil)}
	}

	var findings []catalog.Finding
	if len(extra) > 0 {
		findings = append(findings, finding(CodeUnexpectedFields,
			fmt.Sprintf("unexpected top-level fields: %s", strings.Join(extra, ", ")), nil))
	}

	var points []any
	switch payload := obj[matched].(type) {
	case []any:
		points = payload
	case map[string]any:
		points = []any{payload}
	default:
		return append(findings, finding(CodeInvalidPayload,
			fmt.Sprintf("payload is %s, expected an array of points or a point", kindOf(payload)), payload))
	}

	agg := newAggregator()
	for _, point := range points {
		for _, f := range checkPoint(point) {
			agg.add(f)
		}
	}
	return append(findings, agg.findings()...)
}

func checkPoint(point any) []catalog.Finding {
	p, ok := point.(map[string]any)
	if !ok {
		return []catalog.Finding{finding(CodeInvalidPoint,
			fmt.Sprintf("point is %s, expected an object", kindOf(point)), point)}
	}

	var extra []string
	for key := range p {
		if key != fieldValue && key != fieldDate {
			extra = append(extra, key)
		}
	}
	sort.Strings(extra)

	value, hasValue := p[fieldValue]
	date, hasDate := p[fieldDate]

	var out []catalog.Finding
	switch {
	case !hasValue && (hasDate || len(extra) > 0):
		out = append(out, finding(CodeMalformedPayload,
			fmt.Sprintf("point has no value field but has %s", strings.Join(presentFields(hasDate, extra), ", ")), p))
	case !hasValue:
		out = append(out, finding(CodeMissingValue, "point has no value field", p))
	default:
		if !isValueKind(value) {
			out = append(out, finding(CodeInvalidValueType,
				fmt.Sprintf("value is %s, expected null, string or number", kindOf(value)), p))
		}
		if len(extra) > 0 {
			out = append(out, finding(CodeMalformedPayload,
				fmt.Sprintf("point has unexpected fields: %s", strings.Join(extra, ", ")), p))
		}
	}

	if hasDate {
		if _, ok := date.(string); !ok {
			out = append(out, finding(CodeInvalidDateType,
				fmt.Sprintf("date is %s, expected string", kindOf(date)), p))
		}
	}
	return out
}

func presentFields(hasDate bool, extra []string) []string {
	if hasDate {
		return append([]string{fieldDate}, extra...)
	}
	return extra
}

func isValueKind(v any) bool {
	switch v.(type) {
	case nil, string, float64, float32, int, int64, int32:
		return true
	}
	return false
}

func kindOf(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "a string"
	case bool:
		return "a boolean"
	case float64, float32, int, int64, int32:
		return "a number"
	case []any:
		return "an array"
	case map[string]any:
		return "an object"
	}
	return fmt.Sprintf("%T", v)
}

func finding(code, message string, fragment any) catalog.Finding {
	return catalog.Finding{Code: code, Message: message, Fragment: renderFragment(fragment), Count: 1}
}

func renderFragment(v any) string {
	if v == nil {
		return ""
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	s := string(data)
	if len(s) > constants.MaxFragmentLength {
		cut := constants.MaxFragmentLength
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		s = s[:cut] + "..."
	}
	return s
}

// aggregator collapses findings by code, keeping first-seen order.
type aggregator struct {
	order []string
	byKey map[string]*catalog.Finding
}

func newAggregator() *aggregator {
	return &aggregator{byKey: make(map[string]*catalog.Finding)}
}

func (a *aggregator) add(f catalog.Finding) {
	if existing, ok := a.byKey[f.Code]; ok {
		existing.Count++
		return
	}
	a.order = append(a.order, f.Code)
	a.byKey[f.Code] = &f
}

func (a *aggregator) findings() []catalog.Finding {
	out := make([]catalog.Finding, 0, len(a.order))
	for _, code := range a.order {
		f := *a.byKey[code]
		if f.Count > 1 {
			f.Message = fmt.Sprintf("%s (%d points)", f.Message, f.Count)
		}
		out = append(out, f)
	}
	return out
}
