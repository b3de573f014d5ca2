package differ

import (
	"sort"

	"github.com/agentstation/metricdocs/pkg/shape"
)

// Differ handles structural comparison of shape fingerprints.
type Differ interface {
	// Shapes compares two fingerprints, reporting paths relative to basePath.
	Shapes(old, updated *shape.Fingerprint, basePath string) *Changeset
}

type differ struct {
	ignoreFields map[string]bool
}

// New creates a Differ with default settings.
func New(opts ...Option) Differ {
	d := &differ{ignoreFields: make(map[string]bool)}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Shapes compares two fingerprints with a default Differ.
func Shapes(old, updated *shape.Fingerprint, basePath string) *Changeset {
	return New().Shapes(old, updated, basePath)
}

func (d *differ) Shapes(old, updated *shape.Fingerprint, basePath string) *Changeset {
	cs := &Changeset{}
	d.fields(cs, basePath, old.FieldMap(), updated.FieldMap())
	return cs
}

// fields walks the union of field names, old names first.
func (d *differ) fields(cs *Changeset, base string, old, updated map[string]*shape.Fingerprint) {
	for _, name := range unionNames(old, updated) {
		path := joinPath(base, name)
		if d.ignoreFields[path] {
			continue
		}
		o, inOld := old[name]
		n, inNew := updated[name]
		switch {
		case !inOld:
			cs.Changes = append(cs.Changes, Change{Path: path, Type: ChangeTypeAdded, NewShape: n.String()})
		case !inNew:
			cs.Changes = append(cs.Changes, Change{Path: path, Type: ChangeTypeRemoved, OldShape: o.String()})
		default:
			d.node(cs, path, o, n)
		}
	}
}

// node compares two fingerprints present at the same path. An array of
// objects and an object with the same fields are interchangeable.
func (d *differ) node(cs *Changeset, path string, old, updated *shape.Fingerprint) {
	if hasFields(old) && hasFields(updated) {
		d.fields(cs, path, old.FieldMap(), updated.FieldMap())
		return
	}
	if old.Kind != updated.Kind {
		cs.Changes = append(cs.Changes, typeChanged(path, old, updated))
		return
	}

	switch old.Kind {
	case shape.KindPrimitive:
		if old.Type != updated.Type {
			cs.Changes = append(cs.Changes, typeChanged(path, old, updated))
		}
	case shape.KindArray:
		oe, ne := old.ElementShape(), updated.ElementShape()
		switch {
		case ne == nil:
			// An empty array in the new observation says nothing about its
			// elements; the known baseline stands.
			return
		case oe == nil:
			cs.Changes = append(cs.Changes, typeChanged(path, old, updated))
			return
		}
		elemPath := path + "[]"
		if d.ignoreFields[elemPath] {
			return
		}
		d.node(cs, elemPath, oe, ne)
	}
}

// hasFields reports whether f carries a field mapping, as objects and
// arrays of objects do.
func hasFields(f *shape.Fingerprint) bool {
	return f.Kind == shape.KindObject || (f.Kind == shape.KindArray && f.Fields != nil)
}

func typeChanged(path string, old, updated *shape.Fingerprint) Change {
	return Change{
		Path:     path,
		Type:     ChangeTypeTypeChanged,
		OldShape: old.String(),
		NewShape: updated.String(),
	}
}

func unionNames(old, updated map[string]*shape.Fingerprint) []string {
	names := make([]string, 0, len(old)+len(updated))
	for name := range old {
		names = append(names, name)
	}
	sort.Strings(names)

	var added []string
	for name := range updated {
		if _, ok := old[name]; !ok {
			added = append(added, name)
		}
	}
	sort.Strings(added)
	return append(names, added...)
}

func joinPath(base, name string) string {
	if base == "" {
		return name
	}
	return base + "." + name
}
