// Package normalize implements C1, the text normalizer: it turns a set
// of record texts into the single symbol stream the suffix array
// builder consumes, plus a parallel rune array the query engine
// compares characters against directly.
package normalize

import (
	"sort"
	"unicode"
)

// Sentinel is the minimal symbol, strictly less than every real
// character. It terminates each record's text in the stream and never
// occurs inside one, since lowercasing never produces rune 0.
const Sentinel = 0

// Stream is the normalized form of a set of record texts: a dense-rank
// symbol sequence for the suffix array builder (C2/C3), a parallel
// original-case-stripped rune sequence the query engine (C5) compares
// against directly, and the offsets at which each record's text begins.
type Stream struct {
	// Symbols has length Length+3: Symbols[0:Length] is the dense-rank
	// encoding of the lower-cased text of every record, each record
	// followed by one Sentinel; Symbols[Length:Length+3] are the three
	// trailing zero pads the DC3 recursion requires.
	Symbols []int

	// Chars mirrors Symbols one-for-one but holds the actual lower-cased
	// code point at each position (0 at sentinel/pad positions) instead
	// of a dense rank, so query comparisons never need to invert the
	// rank mapping for characters the index has never seen.
	Chars []rune

	// RecordStarts[i] is the stream offset at which record i's text
	// begins, in the order records were passed to Build.
	RecordStarts []int

	// Length is the total stream length n, excluding the 3-symbol pad.
	Length int

	// AlphabetSize is the number of distinct code points across every
	// record's lower-cased text (the K bound the radix passes sort
	// within).
	AlphabetSize int
}

// Build normalizes texts into a Stream. An empty texts slice is valid
// and yields a Stream of Length 0.
func Build(texts []string) *Stream {
	lowered := make([][]rune, len(texts))
	seen := make(map[rune]struct{})
	total := 0
	for i, text := range texts {
		runes := lowerRunes(text)
		lowered[i] = runes
		total += len(runes) + 1 // +1 for this record's sentinel
		for _, r := range runes {
			seen[r] = struct{}{}
		}
	}

	alphabet := make([]rune, 0, len(seen))
	for r := range seen {
		alphabet = append(alphabet, r)
	}
	sort.Slice(alphabet, func(i, j int) bool { return alphabet[i] < alphabet[j] })

	rank := make(map[rune]int, len(alphabet))
	for i, r := range alphabet {
		rank[r] = i + 1 // 0 is reserved for Sentinel
	}

	symbols := make([]int, total+3)
	chars := make([]rune, total+3)
	recordStarts := make([]int, len(texts))

	pos := 0
	for i, runes := range lowered {
		recordStarts[i] = pos
		for _, r := range runes {
			symbols[pos] = rank[r]
			chars[pos] = r
			pos++
		}
		symbols[pos] = Sentinel
		chars[pos] = Sentinel
		pos++
	}

	return &Stream{
		Symbols:      symbols,
		Chars:        chars,
		RecordStarts: recordStarts,
		Length:       total,
		AlphabetSize: len(alphabet),
	}
}

func lowerRunes(s string) []rune {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		out = append(out, unicode.ToLower(r))
	}
	return out
}
