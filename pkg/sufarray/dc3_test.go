package sufarray_test

import (
	"reflect"
	"testing"

	"github.com/halfmoonlabs/substrix/pkg/normalize"
	"github.com/halfmoonlabs/substrix/pkg/sufarray"
)

func TestBuildEmpty(t *testing.T) {
	sa := sufarray.Build([]int{0, 0, 0}, 0, 0)
	if len(sa) != 0 {
		t.Fatalf("expected empty suffix array, got %v", sa)
	}
}

func TestBuildSingleRecordSingleChar(t *testing.T) {
	// "a\0": suffixes are pos0="a\0", pos1="\0"; "\0" < "a\0".
	stream := normalize.Build([]string{"a"})
	sa := sufarray.Build(stream.Symbols, stream.Length, stream.AlphabetSize)
	want := []int{1, 0}
	if !reflect.DeepEqual(sa, want) {
		t.Fatalf("got %v want %v", sa, want)
	}
}

func TestBuildBanana(t *testing.T) {
	// "banana\0": classic example, worked by hand against sentinel-terminated
	// ordering (sentinel sorts below every real character).
	stream := normalize.Build([]string{"banana"})
	sa := sufarray.Build(stream.Symbols, stream.Length, stream.AlphabetSize)
	want := []int{6, 5, 3, 1, 0, 4, 2}
	if !reflect.DeepEqual(sa, want) {
		t.Fatalf("got %v want %v", sa, want)
	}
}

func TestBuildIsPermutationInOrder(t *testing.T) {
	stream := normalize.Build([]string{"banana", "ananas", "test"})
	sa := sufarray.Build(stream.Symbols, stream.Length, stream.AlphabetSize)

	if len(sa) != stream.Length {
		t.Fatalf("got len(sa)=%d want %d", len(sa), stream.Length)
	}
	seen := make([]bool, stream.Length)
	for _, pos := range sa {
		if pos < 0 || pos >= stream.Length || seen[pos] {
			t.Fatalf("sa is not a permutation of [0,%d): repeated or out-of-range pos %d", stream.Length, pos)
		}
		seen[pos] = true
	}
	for i := 1; i < len(sa); i++ {
		if !lessSuffix(stream.Chars, sa[i-1], sa[i]) {
			t.Fatalf("suffix at sa[%d]=%d is not ordered before suffix at sa[%d]=%d", i-1, sa[i-1], i, sa[i])
		}
	}
}

func lessSuffix(chars []rune, a, b int) bool {
	for guard := 0; guard < len(chars)+1; guard++ {
		ca, cb := charAt(chars, a), charAt(chars, b)
		if ca != cb {
			return ca < cb
		}
		a++
		b++
	}
	return false
}

func charAt(chars []rune, pos int) rune {
	if pos < len(chars) {
		return chars[pos]
	}
	return 0
}
