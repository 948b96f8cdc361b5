package model

import (
	"fmt"
	"reflect"
	"sort"
)

// TextKey is the record attribute that carries a record's searchable
// text.
const TextKey = "string"

// Record is an opaque, caller-defined document indexed by Model. It
// must carry TextKey holding UTF-8 text; every other key is opaque
// payload carried through unmodified. Distinct records may use
// entirely different attribute shapes.
type Record map[string]any

// Text returns the record's searchable text and whether it was present
// and well-formed (a string value under TextKey).
func (r Record) Text() (string, bool) {
	v, ok := r[TextKey]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Equal reports whether two records are structurally equal under the
// canonical top-level-attribute rule used by Remove's records
// criterion: both must carry the same set of top-level keys, and every
// value under a shared key must be reflect.DeepEqual. Nested structures
// are compared as whole values, not recursively re-canonicalized.
func (r Record) Equal(other Record) bool {
	if len(r) != len(other) {
		return false
	}
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		ov, ok := other[k]
		if !ok {
			return false
		}
		if !reflect.DeepEqual(r[k], ov) {
			return false
		}
	}
	return true
}

func (r Record) String() string {
	text, _ := r.Text()
	return fmt.Sprintf("Record{%s: %q, +%d attrs}", TextKey, text, len(r)-1)
}
