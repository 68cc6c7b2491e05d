package game

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/annavogt-hci/ascend/internal/models"
	"github.com/annavogt-hci/ascend/internal/store"
)

// Engine is the session/turn-state machine. Each operation resolves a
// session, mutates it under its lock, and returns the outbound events the
// transport should deliver. Invalid inbound events are dropped or answered
// with an error_message event; nothing here panics a session.
type Engine struct {
	sessions *store.SessionStore
	plays    store.PlayStore
	log      *zap.Logger

	// swapped out in tests
	now  func() time.Time
	deal func() ([]int, []int)
}

// NewEngine creates an engine on top of the session registry and play store
func NewEngine(sessions *store.SessionStore, plays store.PlayStore, log *zap.Logger) *Engine {
	return &Engine{
		sessions: sessions,
		plays:    plays,
		log:      log,
		now:      time.Now,
		deal:     Deal,
	}
}

// CreateRoom registers a new session with the requester as sole participant
func (e *Engine) CreateRoom(playerID string) []Event {
	code := GetUniqueRoomCode(e.sessions)
	sess := &models.Session{Code: code, Players: []string{playerID}}
	e.sessions.Set(code, sess)
	e.log.Info("room created", zap.String("room", code), zap.String("player", playerID))
	return []Event{{To: []string{playerID}, Name: EventRoomCreated, Data: RoomCreatedPayload{RoomCode: code}}}
}

// JoinRoom adds the identity to an existing session. Joining a room you are
// already in is a no-op so client retries are safe.
func (e *Engine) JoinRoom(playerID, code string) []Event {
	sess, ok := e.sessions.Get(code)
	if !ok {
		return []Event{errorEvent(playerID, "Room not found.")}
	}
	sess.Lock()
	defer sess.Unlock()

	if sess.HasPlayer(playerID) {
		return nil
	}
	if len(sess.Players) >= MaxPlayers {
		return []Event{errorEvent(playerID, "This room is full.")}
	}
	sess.Players = append(sess.Players, playerID)
	e.sessions.Index(playerID, code)
	e.log.Info("player joined", zap.String("room", code), zap.String("player", playerID))

	if len(sess.Players) == MaxPlayers {
		return []Event{{To: participants(sess), Name: EventGameReady}}
	}
	return nil
}

// StartRound deals the next round, or round 1 when no state exists yet.
// If the current round's board is incomplete the same round number is
// re-dealt; that is the recovery path for a mid-round reconnection.
func (e *Engine) StartRound(playerID string) []Event {
	sess, ok := e.sessions.Resolve(playerID)
	if !ok {
		return nil
	}
	sess.Lock()
	defer sess.Unlock()

	if len(sess.Players) != MaxPlayers {
		return nil
	}
	st := sess.State
	switch {
	case st == nil:
		return e.dealRound(sess, 1)
	case len(st.Board) != CardsPerRound:
		return e.dealRound(sess, st.RoundNumber)
	default:
		return e.dealRound(sess, st.RoundNumber+1)
	}
}

// ResetRound re-deals the current round with fresh hands, keeping the round
// and set numbers. Board and mistake count reset; the telemetry buffer does not.
func (e *Engine) ResetRound(playerID string) []Event {
	sess, ok := e.sessions.Resolve(playerID)
	if !ok {
		return nil
	}
	sess.Lock()
	defer sess.Unlock()

	if sess.State == nil || len(sess.Players) != MaxPlayers {
		return nil
	}
	e.log.Info("round reset", zap.String("room", sess.Code), zap.Int("round", sess.State.RoundNumber))
	return e.dealRound(sess, sess.State.RoundNumber)
}

// Play handles a participant playing a value from their hand
func (e *Engine) Play(playerID string, value int) []Event {
	sess, ok := e.sessions.Resolve(playerID)
	if !ok {
		return nil
	}
	sess.Lock()
	defer sess.Unlock()

	st := sess.State
	if st == nil || st.Status != models.StatusRunning {
		return nil
	}
	observer, ok := sess.Opponent(playerID)
	if !ok {
		return nil
	}
	if !contains(st.Hands[playerID], value) {
		return nil
	}

	elapsed := e.now().Sub(st.TurnStart).Seconds()
	trueMin := minRemaining(st.Hands[playerID], st.Hands[observer])
	mistake := value != trueMin

	var events []Event
	if mistake {
		st.MistakeCount++
		// Once a higher value has been declared playable, everything still
		// below it is common knowledge; resolve those cards automatically.
		for _, card := range below(st.Hands[observer], value) {
			events = append(events, e.autoPlay(sess, observer, card)...)
		}
		for _, card := range below(st.Hands[playerID], value) {
			events = append(events, e.autoPlay(sess, playerID, card)...)
		}
	}

	record := models.PlayRecord{Value: value, IsMistake: mistake, PlayerID: playerID, TimePlayed: elapsed}
	st.Board = append(st.Board, record)
	seq := len(st.Board)
	st.Hands[playerID] = removeValue(st.Hands[playerID], value)

	// An emptied hand makes the rest of the other hand trivially playable.
	if len(st.Hands[playerID]) == 0 {
		for _, card := range below(st.Hands[observer], DeckMax+1) {
			events = append(events, e.autoPlay(sess, observer, card)...)
		}
	}
	if len(st.Hands[observer]) == 0 {
		for _, card := range below(st.Hands[playerID], DeckMax+1) {
			events = append(events, e.autoPlay(sess, playerID, card)...)
		}
	}

	st.Status = models.StatusWaitingForInput
	st.Pending = &models.PendingHandshake{Play: record, Seq: seq, Actor: playerID, Observer: observer}

	e.log.Info("number played",
		zap.String("room", sess.Code),
		zap.String("player", playerID),
		zap.Int("value", value),
		zap.Bool("mistake", mistake))

	events = append(events,
		Event{To: []string{playerID}, Name: EventWaitForInput},
		Event{To: []string{observer}, Name: EventRequestInput, Data: RequestInputPayload{Set: st.SetNumber}},
	)
	if mistake {
		events = append(events, Event{
			To:   participants(sess),
			Name: EventMistakeNotice,
			Data: MistakeNoticePayload{Value: value, CorrectValue: trueMin},
		})
	}
	return events
}

// SubmitInput completes the handshake for the held play. Only the pending
// observer may respond, and only while input is awaited.
func (e *Engine) SubmitInput(playerID, input string) []Event {
	sess, ok := e.sessions.Resolve(playerID)
	if !ok {
		return nil
	}
	sess.Lock()
	defer sess.Unlock()

	st := sess.State
	if st == nil || st.Status != models.StatusWaitingForInput || st.Pending == nil || st.Pending.Observer != playerID {
		e.log.Warn("input submitted at an invalid time", zap.String("player", playerID))
		return nil
	}

	pending := st.Pending
	st.Pending = nil
	st.Buffer = append(st.Buffer, models.Play{
		GameSessionID:     sess.Code,
		RoundNumber:       st.RoundNumber,
		SetNumber:         st.SetNumber,
		PlayNumberInRound: pending.Seq,
		PlayerID:          pending.Actor,
		ValuePlayed:       pending.Play.Value,
		TimeSincePrevious: pending.Play.TimePlayed,
		WasMistake:        pending.Play.IsMistake,
		ObserverInput:     input,
	})
	st.Status = models.StatusRunning
	st.TurnStart = e.now()

	if len(st.Board) < CardsPerRound {
		return e.stateUpdates(sess, true)
	}

	// Round closed.
	events := e.stateUpdates(sess, false)
	summary := RoundSummaryPayload{Round: st.RoundNumber, Mistakes: st.MistakeCount}

	if st.RoundNumber >= FinalRound {
		e.flush(sess.Code, append([]models.Play(nil), st.Buffer...))
		events = append(events, Event{To: participants(sess), Name: EventGameOver, Data: summary})
		e.log.Info("game over", zap.String("room", sess.Code), zap.Int("mistakes", st.MistakeCount))
		e.sessions.Delete(sess.Code)
		return events
	}

	events = append(events, Event{To: participants(sess), Name: EventRoundOver, Data: summary})
	e.log.Info("round over", zap.String("room", sess.Code), zap.Int("round", st.RoundNumber))
	return events
}

// Disconnect removes the identity from its session and tears the session
// down once empty. A lone remaining participant keeps the room.
func (e *Engine) Disconnect(playerID string) []Event {
	sess, ok := e.sessions.Resolve(playerID)
	if !ok {
		return nil
	}
	sess.Lock()
	defer sess.Unlock()

	sess.RemovePlayer(playerID)
	e.sessions.Unindex(playerID)
	e.log.Info("player left", zap.String("room", sess.Code), zap.String("player", playerID))

	var events []Event
	for _, p := range sess.Players {
		events = append(events, Event{To: []string{p}, Name: EventOpponentDisconnected})
	}
	if len(sess.Players) == 0 {
		e.sessions.Delete(sess.Code)
		e.log.Info("room cleaned up", zap.String("room", sess.Code))
	}
	return events
}

// dealRound draws fresh hands and resets the round-scoped state. The
// caller holds the session lock and has verified both seats are filled.
func (e *Engine) dealRound(sess *models.Session, round int) []Event {
	set := 1
	if round > SetBoundary {
		set = 2
	}
	hand1, hand2 := e.deal()

	st := sess.State
	if st == nil {
		st = &models.GameState{}
		sess.State = st
	}
	st.RoundNumber = round
	st.SetNumber = set
	st.Status = models.StatusRunning
	st.MistakeCount = 0
	st.Board = nil
	st.Pending = nil
	st.TurnStart = e.now()
	st.Hands = map[string][]int{
		sess.Players[0]: hand1,
		sess.Players[1]: hand2,
	}

	e.log.Info("round started",
		zap.String("room", sess.Code),
		zap.Int("round", round),
		zap.Int("set", set))

	events := make([]Event, 0, MaxPlayers)
	for _, p := range sess.Players {
		events = append(events, Event{
			To:   []string{p},
			Name: EventGameStarted,
			Data: GameStartedPayload{
				Hand:  append([]int(nil), st.Hands[p]...),
				Board: []models.PlayRecord{},
				Round: round,
				Set:   set,
			},
		})
	}
	return events
}

// autoPlay resolves one obviously-playable card: zero elapsed time, never a
// mistake, no handshake. The durable record is created immediately.
func (e *Engine) autoPlay(sess *models.Session, playerID string, value int) []Event {
	st := sess.State
	st.Board = append(st.Board, models.PlayRecord{Value: value, PlayerID: playerID})
	st.Hands[playerID] = removeValue(st.Hands[playerID], value)
	st.Buffer = append(st.Buffer, models.Play{
		GameSessionID:     sess.Code,
		RoundNumber:       st.RoundNumber,
		SetNumber:         st.SetNumber,
		PlayNumberInRound: len(st.Board),
		PlayerID:          playerID,
		ValuePlayed:       value,
	})
	return e.stateUpdates(sess, false)
}

// stateUpdates builds the per-participant view of the current round
func (e *Engine) stateUpdates(sess *models.Session, startCounter bool) []Event {
	st := sess.State
	events := make([]Event, 0, len(sess.Players))
	for _, p := range sess.Players {
		events = append(events, Event{
			To:   []string{p},
			Name: EventGameStateUpdate,
			Data: GameStateUpdatePayload{
				Hand:         append([]int(nil), st.Hands[p]...),
				Board:        append([]models.PlayRecord(nil), st.Board...),
				StartCounter: startCounter,
			},
		})
	}
	return events
}

// flush commits the buffered plays off the event path. Best effort: a
// failure is logged and the records are lost, gameplay is never blocked.
func (e *Engine) flush(code string, plays []models.Play) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), FlushTimeoutSeconds*time.Second)
		defer cancel()
		if err := e.plays.SaveBatch(ctx, plays); err != nil {
			e.log.Error("batch save failed", zap.String("room", code), zap.Int("plays", len(plays)), zap.Error(err))
			return
		}
		e.log.Info("batch save complete", zap.String("room", code), zap.Int("plays", len(plays)))
	}()
}

func participants(sess *models.Session) []string {
	return append([]string(nil), sess.Players...)
}

func contains(hand []int, v int) bool {
	for _, c := range hand {
		if c == v {
			return true
		}
	}
	return false
}

func removeValue(hand []int, v int) []int {
	for i, c := range hand {
		if c == v {
			return append(hand[:i], hand[i+1:]...)
		}
	}
	return hand
}

// below returns, ascending, the hand's values strictly less than v.
// Copied so callers can keep iterating while the hand shrinks.
func below(hand []int, v int) []int {
	var out []int
	for _, c := range hand {
		if c < v {
			out = append(out, c)
		}
	}
	return out
}

func minRemaining(hands ...[]int) int {
	min := DeckMax + 1
	for _, hand := range hands {
		for _, c := range hand {
			if c < min {
				min = c
			}
		}
	}
	return min
}
