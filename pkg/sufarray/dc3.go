// Package sufarray implements C3, the suffix array builder, via the
// Karkkainen-Sanders skew (DC3) algorithm: recursively sort the sample
// suffixes starting at positions i%3 != 0, derive a rank for each from
// that order, sort the remaining i%3==0 suffixes using those ranks, then
// merge the two sorted halves in one linear pass.
package sufarray

import (
	"github.com/charmbracelet/log"

	"github.com/halfmoonlabs/substrix/internal/errs"
	"github.com/halfmoonlabs/substrix/pkg/radix"
)

// Build returns the suffix array of text[0:n]: a permutation of
// [0,n) listing every suffix start position in ascending order of the
// suffix it starts. text must have length >= n+3, with text[n],
// text[n+1], text[n+2] == 0, and every value in text[0:n] in [0, k]
// with 0 reserved as the minimal (sentinel) symbol. Interior zeros (one
// per record boundary, in the generalized-suffix-array case this module
// builds on) are allowed: Build shifts every symbol up by one before
// running DC3, so a sentinel sorts below every real symbol and the only
// zeros the recursion sees are the three trailing pads.
func Build(text []int, n, k int) []int {
	sa := make([]int, n)
	switch n {
	case 0:
		return sa
	case 1:
		sa[0] = 0
		return sa
	}
	shifted := make([]int, n+3)
	for i := 0; i < n; i++ {
		shifted[i] = text[i] + 1
	}
	build(shifted, sa, n, k+1, 0)
	return sa
}

func build(text, sa []int, n, k, depth int) {
	log.Debugf("dc3: depth=%d n=%d k=%d", depth, n, k)

	n0 := (n + 2) / 3
	n1 := (n + 1) / 3
	n2 := n / 3
	n02 := n0 + n2

	rank := make([]int, n02+3)
	sa12 := make([]int, n02+3)
	rank0 := make([]int, n0)
	sa0 := make([]int, n0)

	// Sample positions: every i with i%3 != 0, plus a dummy mod-1 slot
	// when n%3 == 1 so mod-1 and mod-2 runs stay balanced.
	j := 0
	for i := 0; i < n+(n0-n1); i++ {
		if i%3 != 0 {
			rank[j] = i
			j++
		}
	}

	// Three LSD passes sort the sample triples (text[i], text[i+1], text[i+2]).
	radix.Pass(rank, sa12, text[2:], n02, k)
	radix.Pass(sa12, rank, text[1:], n02, k)
	radix.Pass(rank, sa12, text, n02, k)

	name := 0
	c0, c1, c2 := -1, -1, -1
	for i := 0; i < n02; i++ {
		if text[sa12[i]] != c0 || text[sa12[i]+1] != c1 || text[sa12[i]+2] != c2 {
			name++
			c0, c1, c2 = text[sa12[i]], text[sa12[i]+1], text[sa12[i]+2]
		}
		if sa12[i]%3 == 1 {
			rank[sa12[i]/3] = name
		} else {
			rank[sa12[i]/3+n0] = name
		}
	}

	if name < n02 {
		build(rank, sa12, n02, name, depth+1)
		for i := 0; i < n02; i++ {
			rank[sa12[i]] = i + 1
		}
	} else {
		for i := 0; i < n02; i++ {
			sa12[rank[i]-1] = i
		}
	}

	// Sort the mod-0 positions by first character; their relative order
	// among ties is already correct because SA12's traversal order is.
	j = 0
	for i := 0; i < n02; i++ {
		if sa12[i] < n0 {
			rank0[j] = 3 * sa12[i]
			j++
		}
	}
	radix.Pass(rank0, sa0, text, n0, k)

	merge(text, sa, sa12, sa0, rank, n, n0, n1, n02)
}

func merge(text, sa, sa12, sa0, rank []int, n, n0, n1, n02 int) {
	p, t, kk := 0, n0-n1, 0
	getI := func() int {
		if sa12[t] < n0 {
			return sa12[t]*3 + 1
		}
		return (sa12[t]-n0)*3 + 2
	}

	for ; kk < n; kk++ {
		i := getI()
		jj := sa0[p]

		var lessOrEqual bool
		if sa12[t] < n0 {
			lessOrEqual = leqPair(text[i], rank[sa12[t]+n0], text[jj], rank[jj/3])
		} else {
			lessOrEqual = leqTriple(text[i], text[i+1], rank[sa12[t]-n0+1], text[jj], text[jj+1], rank[jj/3+n0])
		}

		if lessOrEqual {
			sa[kk] = i
			t++
			if t == n02 {
				sa[kk] = i
				kk++
				for p < n0 {
					sa[kk] = sa0[p]
					p++
					kk++
				}
			}
		} else {
			sa[kk] = jj
			p++
			if p == n0 {
				kk++
				for t < n02 {
					sa[kk] = getI()
					t++
					kk++
				}
			}
		}
	}
	errs.Assert(p >= n0 || t >= n02, "merge loop exited before consuming either run")
}

func leqPair(a1, a2, b1, b2 int) bool {
	return a1 < b1 || (a1 == b1 && a2 <= b2)
}

func leqTriple(a1, a2, a3, b1, b2, b3 int) bool {
	return a1 < b1 || (a1 == b1 && leqPair(a2, a3, b2, b3))
}
