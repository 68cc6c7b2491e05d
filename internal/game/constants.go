package game

const (
	// MaxPlayers is the number of participants a session holds
	MaxPlayers = 2

	// HandSize is the number of values dealt to each participant per round
	HandSize = 5

	// CardsPerRound is the number of values drawn per round (both hands)
	CardsPerRound = 10

	// FinalRound is the round after which the game ends
	FinalRound = 10

	// SetBoundary is the last round of set 1; later rounds belong to set 2
	SetBoundary = 5

	// DeckMin and DeckMax bound the inclusive draw range
	DeckMin = 1
	DeckMax = 100

	// RoomCodeLength is the length of generated room codes
	RoomCodeLength = 4

	// RoomCodeChars are the characters used for generating room codes
	RoomCodeChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

	// FlushTimeoutSeconds bounds the game-over batch write so a slow
	// database cannot stall other sessions
	FlushTimeoutSeconds = 10
)
