package game

import (
	"math/rand"
	"sort"
)

// Deal draws CardsPerRound distinct values from the inclusive range
// DeckMin..DeckMax and splits them into two sorted hands. Every round and
// every manual reset gets a fresh draw; a draw is never reused.
func Deal() (hand1, hand2 []int) {
	drawn := rand.Perm(DeckMax-DeckMin+1)[:CardsPerRound]
	hand1 = make([]int, HandSize)
	hand2 = make([]int, HandSize)
	for i, v := range drawn[:HandSize] {
		hand1[i] = v + DeckMin
	}
	for i, v := range drawn[HandSize:] {
		hand2[i] = v + DeckMin
	}
	sort.Ints(hand1)
	sort.Ints(hand2)
	return hand1, hand2
}
