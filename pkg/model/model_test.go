package model_test

import (
	"math/rand"
	"sort"
	"strings"
	"testing"

	"github.com/halfmoonlabs/substrix/pkg/model"
)

func rec(text string, attrs ...any) model.Record {
	r := model.Record{model.TextKey: text}
	for i := 0; i+1 < len(attrs); i += 2 {
		r[attrs[i].(string)] = attrs[i+1]
	}
	return r
}

func texts(records []model.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		t, _ := r.Text()
		out[i] = t
	}
	sort.Strings(out)
	return out
}

// Scenario 1: substring, not prefix, match.
func TestMatchSubstringNotPrefix(t *testing.T) {
	m, err := model.Build([]model.Record{rec("test"), rec("complete")})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	got := texts(m.Match("es"))
	want := []string{"test"}
	if !equalStrings(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

// Scenario 2: multiple owners for a shared substring, deduplicated as a set.
func TestMatchSetOfOwners(t *testing.T) {
	m, err := model.Build([]model.Record{rec("test"), rec("complete"), rec("suffix")})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	got := texts(m.Match("e"))
	want := []string{"complete", "test"}
	if !equalStrings(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

// Scenario 3: case-insensitive match, original case preserved on output.
func TestMatchPreservesOriginalCase(t *testing.T) {
	m, err := model.Build([]model.Record{rec("teST")})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	got := m.Match("est")
	if len(got) != 1 {
		t.Fatalf("got %d results want 1", len(got))
	}
	text, _ := got[0].Text()
	if text != "teST" {
		t.Fatalf("got %q want %q", text, "teST")
	}
}

// Scenario 4: multi-byte code points index and match correctly.
func TestMatchMultiByteCodepoint(t *testing.T) {
	m, err := model.Build([]model.Record{rec("Pharaoh 🐪𓂀")})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	got := m.Match("🐪")
	if len(got) != 1 {
		t.Fatalf("got %d results want 1", len(got))
	}
	text, _ := got[0].Text()
	if text != "Pharaoh 🐪𓂀" {
		t.Fatalf("got %q", text)
	}
}

// Scenario 5: AND-combined keep-filters.
func TestRemoveFilters(t *testing.T) {
	m, err := model.Build([]model.Record{
		rec("test", "id", 2),
		rec("auto", "id", 5),
		rec("module", "id", 1),
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	m2, err := m.Remove(model.RemoveCriteria{
		Filters: []func(model.Record) bool{
			func(r model.Record) bool { return r["id"].(int) < 5 },
			func(r model.Record) bool {
				text, _ := r.Text()
				return !strings.HasPrefix(text, "te")
			},
		},
	})
	if err != nil {
		t.Fatalf("Remove: %v", err)
	}
	got := m2.Match("")
	if len(got) != 1 {
		t.Fatalf("got %d results want 1: %v", len(got), got)
	}
	if text, _ := got[0].Text(); text != "module" {
		t.Fatalf("got %q want %q", text, "module")
	}
}

// Scenario 6: remove by exact text.
func TestRemoveStrings(t *testing.T) {
	m, err := model.Build([]model.Record{
		rec("test", "id", 2),
		rec("auto", "id", 5),
		rec("module", "id", 1),
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	m2, err := m.Remove(model.RemoveCriteria{Strings: []string{"module", "auto"}})
	if err != nil {
		t.Fatalf("Remove: %v", err)
	}
	got := m2.Match("")
	if len(got) != 1 {
		t.Fatalf("got %d results want 1: %v", len(got), got)
	}
	if text, _ := got[0].Text(); text != "test" {
		t.Fatalf("got %q want %q", text, "test")
	}
}

// Scenario 7: records criterion compares whole top-level attribute sets, so
// a record with a differing attribute does not match and nothing is removed.
func TestRemoveRecordsNoMatchOnDifferingAttribute(t *testing.T) {
	m, err := model.Build([]model.Record{
		rec("test", "id", 2),
		rec("auto", "id", 5),
		rec("module", "id", 1),
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	m2, err := m.Remove(model.RemoveCriteria{
		Records: []model.Record{rec("module", "id", 8)},
	})
	if err != nil {
		t.Fatalf("Remove: %v", err)
	}
	got := texts(m2.Match(""))
	want := []string{"auto", "module", "test"}
	if !equalStrings(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

// P5: the empty query matches every record, exactly once each.
func TestMatchEmptyQueryReturnsAll(t *testing.T) {
	recs := []model.Record{rec("alpha"), rec("beta"), rec("gamma")}
	m, err := model.Build(recs)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	got := texts(m.Match(""))
	want := []string{"alpha", "beta", "gamma"}
	if !equalStrings(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

// P4: no duplicates even when the query occurs multiple times in one record.
func TestMatchNoDuplicatesWithRepeatedSubstring(t *testing.T) {
	m, err := model.Build([]model.Record{rec("banananana")})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	got := m.Match("ana")
	if len(got) != 1 {
		t.Fatalf("got %d results want 1 (deduplicated): %v", len(got), got)
	}
}

// P6: Insert/Remove do not mutate the receiver.
func TestInsertDoesNotMutateReceiver(t *testing.T) {
	m, err := model.Build([]model.Record{rec("alpha")})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	before := texts(m.Match(""))

	if _, err := m.Insert(rec("beta")); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	after := texts(m.Match(""))
	if !equalStrings(before, after) {
		t.Fatalf("receiver mutated: before %v after %v", before, after)
	}
}

func TestRemoveDoesNotMutateReceiver(t *testing.T) {
	m, err := model.Build([]model.Record{rec("alpha"), rec("beta")})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	before := texts(m.Match(""))

	if _, err := m.Remove(model.RemoveCriteria{Strings: []string{"alpha"}}); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	after := texts(m.Match(""))
	if !equalStrings(before, after) {
		t.Fatalf("receiver mutated: before %v after %v", before, after)
	}
}

// P7: Remove with no criteria yields a model whose results are pointwise
// equal to the originals.
func TestRemoveNoCriteriaIsIdentity(t *testing.T) {
	recs := []model.Record{rec("alpha"), rec("beta"), rec("gamma")}
	m, err := model.Build(recs)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	m2, err := m.Remove(model.RemoveCriteria{})
	if err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if !equalStrings(texts(m.Match("")), texts(m2.Match(""))) {
		t.Fatalf("Remove with no criteria changed results")
	}
}

func TestBuildRejectsMissingText(t *testing.T) {
	_, err := model.Build([]model.Record{{"id": 1}})
	if err == nil {
		t.Fatal("expected error for record missing text attribute")
	}
}

func TestBuildEmptyInputIsValid(t *testing.T) {
	m, err := model.Build(nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if got := m.Match("anything"); len(got) != 0 {
		t.Fatalf("expected no matches against an empty model, got %v", got)
	}
	if got := m.Match(""); len(got) != 0 {
		t.Fatalf("expected empty query on empty model to return nothing, got %v", got)
	}
}

func TestInsertWrapsSingleRecord(t *testing.T) {
	m, err := model.Build([]model.Record{rec("alpha")})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	m2, err := m.Insert(rec("beta"))
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	got := texts(m2.Match(""))
	want := []string{"alpha", "beta"}
	if !equalStrings(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

// Fuzz property (spec §8): compare Match against a brute-force
// strings.Contains scan over random record sets and queries.
func TestMatchAgainstBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	alphabet := []rune("abcXYZ 012")

	for trial := 0; trial < 200; trial++ {
		n := rng.Intn(12)
		recs := make([]model.Record, n)
		rawTexts := make([]string, n)
		for i := 0; i < n; i++ {
			rawTexts[i] = randomString(rng, alphabet, rng.Intn(10))
			recs[i] = rec(rawTexts[i])
		}
		m, err := model.Build(recs)
		if err != nil {
			t.Fatalf("Build: %v", err)
		}

		for q := 0; q < 5; q++ {
			query := randomString(rng, alphabet, rng.Intn(4))

			gotSet := map[string]bool{}
			for _, r := range m.Match(query) {
				text, _ := r.Text()
				gotSet[text] = true
			}

			wantSet := map[string]bool{}
			for _, text := range rawTexts {
				if strings.Contains(strings.ToLower(text), strings.ToLower(query)) {
					wantSet[text] = true
				}
			}

			if !setsEqual(gotSet, wantSet) {
				t.Fatalf("trial %d query %q: got %v want %v (records=%v)", trial, query, gotSet, wantSet, rawTexts)
			}
		}
	}
}

func FuzzMatchAgainstBruteForce(f *testing.F) {
	f.Add("test", "es")
	f.Add("Pharaoh", "ph")
	f.Add("", "")
	f.Fuzz(func(t *testing.T, text, query string) {
		m, err := model.Build([]model.Record{rec(text)})
		if err != nil {
			t.Skip()
		}
		got := m.Match(query)
		want := strings.Contains(strings.ToLower(text), strings.ToLower(query))
		if (len(got) > 0) != want {
			t.Fatalf("text=%q query=%q: Match returned %v, strings.Contains says %v", text, query, got, want)
		}
	})
}

func randomString(rng *rand.Rand, alphabet []rune, n int) string {
	out := make([]rune, n)
	for i := range out {
		out[i] = alphabet[rng.Intn(len(alphabet))]
	}
	return string(out)
}

func setsEqual(a, b map[string]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if !b[k] {
			return false
		}
	}
	return true
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
