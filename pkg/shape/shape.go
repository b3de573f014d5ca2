// Package shape derives structural fingerprints from decoded JSON values.
//
// Arrays are fingerprinted from their first element only. A heterogeneous
// array therefore looks exactly like a homogeneous one built from its first
// element; drift in later elements is not observed. An array whose first
// element is an object carries that object's field mapping directly, so an
// array of objects and a single object with the same fields compare equal
// field by field.
package shape

import (
	"encoding/json"
	"reflect"
	"sort"

	"github.com/agentstation/metricdocs/pkg/errors"
)

// Kind is the structural kind of a fingerprint node.
type Kind string

// Fingerprint kinds.
const (
	KindPrimitive Kind = "primitive"
	KindNull      Kind = "null"
	KindArray     Kind = "array"
	KindObject    Kind = "object"
)

// Primitive type names.
const (
	TypeString  = "string"
	TypeNumber  = "number"
	TypeBoolean = "boolean"
	TypeUnknown = "unknown"
)

// Fingerprint is a recursive structural description of a JSON value.
type Fingerprint struct {
	Kind Kind `json:"kind"`

	// Type is the runtime kind of a primitive.
	Type string `json:"type,omitempty"`

	// Element is the fingerprint of a non-object first array element.
	// Nil on an array without Fields means the element is unknown.
	Element *Fingerprint `json:"element,omitempty"`

	// Fields maps field names for objects and for arrays of objects.
	Fields map[string]*Fingerprint `json:"fields,omitempty"`
}

// Primitive returns a primitive fingerprint of the given type.
func Primitive(typ string) *Fingerprint {
	return &Fingerprint{Kind: KindPrimitive, Type: typ}
}

// Null returns the null fingerprint.
func Null() *Fingerprint {
	return &Fingerprint{Kind: KindNull}
}

// Object returns an object fingerprint with the given fields.
func Object(fields map[string]*Fingerprint) *Fingerprint {
	if fields == nil {
		fields = map[string]*Fingerprint{}
	}
	return &Fingerprint{Kind: KindObject, Fields: fields}
}

// Array returns an array fingerprint. An object element is flattened into
// the array's field mapping; a nil element means unknown.
func Array(element *Fingerprint) *Fingerprint {
	if element != nil && element.Kind == KindObject {
		return &Fingerprint{Kind: KindArray, Fields: element.Fields}
	}
	return &Fingerprint{Kind: KindArray, Element: element}
}

// Extract derives the fingerprint of a decoded JSON object. It fails with a
// validation error when value is not an object.
func Extract(value any) (*Fingerprint, error) {
	obj, ok := value.(map[string]any)
	if !ok {
		return nil, errors.NewValidationError("value", typeName(value), "top-level value must be a JSON object")
	}
	return infer(obj), nil
}

// ExtractJSON decodes data and derives its fingerprint.
func ExtractJSON(data []byte) (*Fingerprint, error) {
	var value any
	if err := json.Unmarshal(data, &value); err != nil {
		return nil, errors.WrapParse("json", "", err)
	}
	return Extract(value)
}

func infer(value any) *Fingerprint {
	switch v := value.(type) {
	case nil:
		return Null()
	case map[string]any:
		fields := make(map[string]*Fingerprint, len(v))
		for name, child := range v {
			fields[name] = infer(child)
		}
		return Object(fields)
	case []any:
		if len(v) == 0 {
			return Array(nil)
		}
		return Array(infer(v[0]))
	default:
		return Primitive(typeName(v))
	}
}

func typeName(value any) string {
	switch value.(type) {
	case nil:
		return "null"
	case string:
		return TypeString
	case bool:
		return TypeBoolean
	case float64, float32, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64:
		return TypeNumber
	case map[string]any:
		return "object"
	case []any:
		return "array"
	}
	return TypeUnknown
}

// FieldMap returns the field mapping carried by an object or an array of
// objects, nil otherwise.
func (f *Fingerprint) FieldMap() map[string]*Fingerprint {
	if f == nil {
		return nil
	}
	return f.Fields
}

// ElementShape returns the element fingerprint of an array, nil when the
// element is unknown or f is not an array.
func (f *Fingerprint) ElementShape() *Fingerprint {
	if f == nil || f.Kind != KindArray {
		return nil
	}
	if f.Fields != nil {
		return Object(f.Fields)
	}
	return f.Element
}

// FieldNames returns the sorted field names of f.
func (f *Fingerprint) FieldNames() []string {
	names := make([]string, 0, len(f.FieldMap()))
	for name := range f.FieldMap() {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// String renders the fingerprint the way change reports show it:
// "string", "number[]", "object", "object[]", "unknown[]".
func (f *Fingerprint) String() string {
	if f == nil {
		return TypeUnknown
	}
	switch f.Kind {
	case KindPrimitive:
		return f.Type
	case KindNull:
		return "null"
	case KindObject:
		return "object"
	case KindArray:
		return f.ElementShape().String() + "[]"
	}
	return TypeUnknown
}

// Equal reports structural equality.
func (f *Fingerprint) Equal(other *Fingerprint) bool {
	return reflect.DeepEqual(f, other)
}
