// Package ownermap implements C4: the dense stream-position-to-record
// index, and the suffix-array-aligned owner cache derived from it.
package ownermap

// Build returns a dense array of length n where owner[p] is the index
// of the record whose text (or trailing sentinel) occupies stream
// position p. recordStarts must be sorted ascending, one entry per
// record, as produced by normalize.Build.
func Build(recordStarts []int, n int) []int {
	owner := make([]int, n)
	r := 0
	for pos := 0; pos < n; pos++ {
		for r+1 < len(recordStarts) && recordStarts[r+1] <= pos {
			r++
		}
		owner[pos] = r
	}
	return owner
}

// SuffixOwners derives SO[i] = owner[sa[i]] for every suffix array
// slot, turning per-match owner lookup during a query into a single
// array read instead of a binary search against recordStarts.
func SuffixOwners(sa, owner []int) []int {
	so := make([]int, len(sa))
	for i, pos := range sa {
		so[i] = owner[pos]
	}
	return so
}
