// Package query implements C5: locating the contiguous suffix-array
// range whose suffixes carry a given query as a prefix, via two
// independent binary searches over the comparator rather than a scan.
package query

// Range returns the half-open range [lo, hi) of indices into sa whose
// suffixes (compared through chars, which must be sa's parallel
// original-character array) carry query as a prefix. An empty query
// matches every suffix. No match yields (0, 0).
func Range(sa []int, chars []rune, query []rune) (lo, hi int) {
	n := len(sa)
	if len(query) == 0 {
		return 0, n
	}
	if n == 0 {
		return 0, 0
	}
	low := lowerBound(sa, chars, query)
	if low == -1 {
		return 0, 0
	}
	up := upperBound(sa, chars, query)
	return low, up + 1
}

func charAt(chars []rune, pos int) rune {
	if pos < len(chars) {
		return chars[pos]
	}
	return 0
}

// compare returns the sign of (suffix-prefix - query): -1 if the
// length-len(query) prefix of the suffix starting at pos sorts before
// query, +1 if after, 0 if the suffix starts with query.
func compare(chars []rune, pos int, query []rune) int {
	for i, qc := range query {
		c := charAt(chars, pos+i)
		if c < qc {
			return -1
		}
		if c > qc {
			return 1
		}
	}
	return 0
}

func lowerBound(sa []int, chars []rune, query []rune) int {
	lo, hi := 0, len(sa)-1
	result := -1
	for lo <= hi {
		mid := lo + (hi-lo)/2
		switch compare(chars, sa[mid], query) {
		case 0:
			result = mid
			hi = mid - 1
		case -1:
			lo = mid + 1
		default:
			hi = mid - 1
		}
	}
	return result
}

func upperBound(sa []int, chars []rune, query []rune) int {
	lo, hi := 0, len(sa)-1
	result := -1
	for lo <= hi {
		mid := lo + (hi-lo)/2
		switch compare(chars, sa[mid], query) {
		case 0:
			result = mid
			lo = mid + 1
		case -1:
			lo = mid + 1
		default:
			hi = mid - 1
		}
	}
	return result
}
