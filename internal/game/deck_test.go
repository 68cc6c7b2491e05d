package game

import (
	"sort"
	"testing"
)

func TestDealInvariants(t *testing.T) {
	for i := 0; i < 100; i++ {
		hand1, hand2 := Deal()
		if len(hand1) != HandSize || len(hand2) != HandSize {
			t.Fatalf("hand sizes = %d/%d, want %d", len(hand1), len(hand2), HandSize)
		}
		if !sort.IntsAreSorted(hand1) || !sort.IntsAreSorted(hand2) {
			t.Fatalf("hands must be ascending: %v %v", hand1, hand2)
		}
		seen := make(map[int]bool)
		for _, v := range append(append([]int{}, hand1...), hand2...) {
			if v < DeckMin || v > DeckMax {
				t.Fatalf("value %d outside %d..%d", v, DeckMin, DeckMax)
			}
			if seen[v] {
				t.Fatalf("duplicate value %d in draw %v %v", v, hand1, hand2)
			}
			seen[v] = true
		}
	}
}

func TestDealDrawsFreshEachCall(t *testing.T) {
	first1, first2 := Deal()
	for i := 0; i < 10; i++ {
		hand1, hand2 := Deal()
		if !equalInts(hand1, first1) || !equalInts(hand2, first2) {
			return
		}
	}
	t.Error("ten consecutive deals were identical")
}

func equalInts(a, b []int) bool {
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
