package game

import "github.com/annavogt-hci/ascend/internal/models"

// Outbound event name constants
const (
	EventRoomCreated          = "room_created"
	EventGameReady            = "game_ready"
	EventErrorMessage         = "error_message"
	EventGameStarted          = "game_started"
	EventWaitForInput         = "wait_for_input"
	EventRequestInput         = "request_input"
	EventMistakeNotice        = "mistake_notice"
	EventGameStateUpdate      = "game_state_update"
	EventRoundOver            = "round_over"
	EventGameOver             = "game_over"
	EventOpponentDisconnected = "opponent_disconnected"
)

// Event is one outbound named event addressed to specific participants.
// The transport delivers it; the engine only produces it.
type Event struct {
	To   []string
	Name string
	Data any
}

// RoomCreatedPayload carries the code of a freshly registered room
type RoomCreatedPayload struct {
	RoomCode string `json:"room_code"`
}

// ErrorPayload carries a human-readable rejection
type ErrorPayload struct {
	Message string `json:"message"`
}

// GameStartedPayload is the per-participant view of a fresh round
type GameStartedPayload struct {
	Hand  []int               `json:"hand"`
	Board []models.PlayRecord `json:"board"`
	Round int                 `json:"round"`
	Set   int                 `json:"set"`
}

// RequestInputPayload asks the observer for free-text input
type RequestInputPayload struct {
	Set int `json:"set"`
}

// MistakeNoticePayload reports an out-of-order play to both participants
type MistakeNoticePayload struct {
	Value        int `json:"value"`
	CorrectValue int `json:"correct_value"`
}

// GameStateUpdatePayload is the per-participant incremental view
type GameStateUpdatePayload struct {
	Hand         []int               `json:"hand"`
	Board        []models.PlayRecord `json:"board"`
	StartCounter bool                `json:"start_counter"`
}

// RoundSummaryPayload closes a round or the whole game
type RoundSummaryPayload struct {
	Round    int `json:"round"`
	Mistakes int `json:"mistakes"`
}

func errorEvent(to, message string) Event {
	return Event{To: []string{to}, Name: EventErrorMessage, Data: ErrorPayload{Message: message}}
}
