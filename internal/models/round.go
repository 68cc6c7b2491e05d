package models

import "time"

// RoundStatus represents the current phase of a session's round
type RoundStatus string

const (
	StatusPending         RoundStatus = "pending"
	StatusRunning         RoundStatus = "running"
	StatusWaitingForInput RoundStatus = "waiting_for_input"
)

// PlayRecord is one played card on the board (round-scoped)
type PlayRecord struct {
	Value      int     `json:"value"`
	IsMistake  bool    `json:"isMistake"`
	PlayerID   string  `json:"playerId"`
	TimePlayed float64 `json:"timePlayed"` // seconds since the turn clock started; 0 for auto-plays
}

// PendingHandshake holds a player-initiated play while the observer's
// free-text input is outstanding. Present iff status is waiting_for_input.
type PendingHandshake struct {
	Play     PlayRecord
	Seq      int // 1-based board position captured when the play was recorded
	Actor    string
	Observer string
}

// GameState is the turn engine state for one session. Round-scoped fields
// are reset by each deal; Buffer accumulates across the whole game.
type GameState struct {
	RoundNumber  int
	SetNumber    int // 1 for rounds 1-5, 2 for rounds 6-10
	Status       RoundStatus
	Hands        map[string][]int // identity -> remaining values, ascending
	Board        []PlayRecord
	MistakeCount int
	TurnStart    time.Time
	Pending      *PendingHandshake
	Buffer       []Play // finalized plays awaiting the game-over flush
}
