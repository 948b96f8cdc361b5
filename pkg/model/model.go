// Package model implements C6, the façade over the normalizer, suffix
// array builder, owner index, and query engine: Build constructs an
// immutable Model from a set of records, Match runs a substring query
// against it, and Insert/Remove derive a fresh Model rather than
// mutating the receiver.
package model

import (
	"fmt"
	"unicode"

	"github.com/charmbracelet/log"

	"github.com/halfmoonlabs/substrix/internal/errs"
	"github.com/halfmoonlabs/substrix/pkg/config"
	"github.com/halfmoonlabs/substrix/pkg/normalize"
	"github.com/halfmoonlabs/substrix/pkg/ownermap"
	"github.com/halfmoonlabs/substrix/pkg/query"
	"github.com/halfmoonlabs/substrix/pkg/querycache"
	"github.com/halfmoonlabs/substrix/pkg/sufarray"
)

// Model is an immutable substring-autocomplete index over a fixed set
// of records. Concurrent Match calls against one Model are safe, as is
// concurrent construction of independent Models; a Model is never
// mutated after Build returns it.
type Model struct {
	records     []Record
	chars       []rune
	suffixArray []int
	suffixOwner []int
	length      int

	logger *log.Logger
	cfg    *config.Config
	cache  *querycache.Cache[[]Record]
}

// Build indexes records into a Model. Every record must carry a string
// value under TextKey; a record missing it, or carrying a non-string
// value there, makes Build return an error wrapping errs.ErrInvalidInput.
func Build(records []Record, opts ...BuildOption) (*Model, error) {
	o := resolveOptions(opts)

	texts := make([]string, len(records))
	for i, r := range records {
		text, ok := r.Text()
		if !ok {
			o.logger.Warnf("record %d missing %q text attribute", i, TextKey)
			return nil, fmt.Errorf("%w: record %d missing %q text attribute", errs.ErrInvalidInput, i, TextKey)
		}
		texts[i] = text
	}

	o.logger.Debugf("normalizing %d records", len(records))
	stream := normalize.Build(texts)

	o.logger.Debugf("building suffix array over %d symbols (alphabet=%d)", stream.Length, stream.AlphabetSize)
	sa := sufarray.Build(stream.Symbols, stream.Length, stream.AlphabetSize)
	errs.Assert(len(sa) == stream.Length, "suffix array length does not match stream length")

	owner := ownermap.Build(stream.RecordStarts, stream.Length)
	so := ownermap.SuffixOwners(sa, owner)
	for _, idx := range so {
		errs.Assert(idx >= 0 && idx < len(records), "owner index out of range")
	}

	m := &Model{
		records:     append([]Record(nil), records...),
		chars:       stream.Chars,
		suffixArray: sa,
		suffixOwner: so,
		length:      stream.Length,
		logger:      o.logger,
		cfg:         o.cfg,
	}
	if o.cfg.Cache.Enabled {
		m.cache = querycache.New[[]Record](o.cfg.Cache.MaxEntries)
	}
	return m, nil
}

// Match returns every record whose text contains query as a substring,
// case-insensitively, each record appearing at most once, in suffix
// array order. An empty query matches every record. No match returns
// an empty, non-nil slice.
func (m *Model) Match(queryText string) []Record {
	q := lowercaseRunes(queryText)
	key := string(q)

	if m.cache != nil {
		if cached, ok := m.cache.Get(key); ok {
			m.logger.Debugf("cache hit for query %q", queryText)
			return cached
		}
	}

	lo, hi := query.Range(m.suffixArray, m.chars, q)
	result := m.materialize(lo, hi)

	if m.cache != nil {
		m.cache.Put(key, result)
	}
	return result
}

func (m *Model) materialize(lo, hi int) []Record {
	if hi <= lo {
		return []Record{}
	}
	seen := make(map[int]bool, hi-lo)
	out := make([]Record, 0, hi-lo)
	for i := lo; i < hi; i++ {
		owner := m.suffixOwner[i]
		if seen[owner] {
			continue
		}
		seen[owner] = true
		out = append(out, m.records[owner])
	}
	return out
}

// Insert returns a new Model over the receiver's records plus the given
// ones, in that order. The receiver is left untouched.
func (m *Model) Insert(records ...Record) (*Model, error) {
	combined := make([]Record, 0, len(m.records)+len(records))
	combined = append(combined, m.records...)
	combined = append(combined, records...)
	return Build(combined, WithLogger(m.logger), WithConfig(m.cfg))
}

// RemoveCriteria selects which of a Model's records Remove drops. All
// three criteria are independent and may be combined.
//
// Filters are keep-predicates, AND-combined: a record survives only if
// every filter returns true for it. (This follows spec.md's worked
// example literally, which is the opposite of the prose immediately
// above it describing filters as remove-predicates OR'd together — see
// DESIGN.md for the resolution.) Strings names exact record texts to
// drop. Records names whole records to drop, compared via Record.Equal
// (same top-level attribute set, deep-equal values).
type RemoveCriteria struct {
	Filters []func(Record) bool
	Strings []string
	Records []Record
}

// Remove returns a new Model over the receiver's records with every
// record matching criteria dropped. Criteria with no fields set leaves
// every record in place. The receiver is left untouched.
func (m *Model) Remove(criteria RemoveCriteria) (*Model, error) {
	dropText := make(map[string]bool, len(criteria.Strings))
	for _, s := range criteria.Strings {
		dropText[s] = true
	}

	kept := make([]Record, 0, len(m.records))
recordLoop:
	for _, r := range m.records {
		for _, keep := range criteria.Filters {
			if !keep(r) {
				continue recordLoop
			}
		}
		if text, ok := r.Text(); ok && dropText[text] {
			continue
		}
		for _, target := range criteria.Records {
			if r.Equal(target) {
				continue recordLoop
			}
		}
		kept = append(kept, r)
	}
	return Build(kept, WithLogger(m.logger), WithConfig(m.cfg))
}

// Stats reports diagnostic counters: record count, stream length,
// suffix array size, and (when caching is enabled) cache occupancy.
func (m *Model) Stats() map[string]int {
	stats := map[string]int{
		"records":         len(m.records),
		"streamLength":    m.length,
		"suffixArraySize": len(m.suffixArray),
	}
	if m.cache != nil {
		for k, v := range m.cache.Stats() {
			stats[k] = v
		}
	}
	return stats
}

// CachedQueries lists every query string currently held in the query
// cache, or nil if caching is disabled. Intended for diagnostics.
func (m *Model) CachedQueries() []string {
	if m.cache == nil {
		return nil
	}
	return m.cache.Keys()
}

func lowercaseRunes(s string) []rune {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		out = append(out, unicode.ToLower(r))
	}
	return out
}
