package export

import (
	"encoding/csv"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/annavogt-hci/ascend/internal/store"
)

var csvHeader = []string{
	"id", "game_session_id", "round_number", "set_number",
	"play_number_in_round", "player_id", "value_played",
	"time_since_previous", "was_mistake", "observer_input",
}

// Handler streams every persisted play as CSV. The shared secret is
// embedded in the path: GET /admin/export/{secret}.
type Handler struct {
	plays  store.PlayStore
	secret string
	log    *zap.Logger
}

// NewHandler creates the export handler. An empty secret disables the
// endpoint entirely.
func NewHandler(plays store.PlayStore, secret string, log *zap.Logger) *Handler {
	return &Handler{plays: plays, secret: secret, log: log}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	secret := strings.TrimPrefix(r.URL.Path, "/admin/export/")
	if h.secret == "" || secret != h.secret {
		http.Error(w, "Not authorized", http.StatusForbidden)
		return
	}

	plays, err := h.plays.AllPlays(r.Context())
	if err != nil {
		h.log.Error("export query failed", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename=game_export.csv`)

	cw := csv.NewWriter(w)
	cw.Write(csvHeader)
	for _, p := range plays {
		cw.Write([]string{
			strconv.FormatUint(uint64(p.ID), 10),
			p.GameSessionID,
			strconv.Itoa(p.RoundNumber),
			strconv.Itoa(p.SetNumber),
			strconv.Itoa(p.PlayNumberInRound),
			p.PlayerID,
			strconv.Itoa(p.ValuePlayed),
			strconv.FormatFloat(p.TimeSincePrevious, 'f', -1, 64),
			strconv.FormatBool(p.WasMistake),
			p.ObserverInput,
		})
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		h.log.Error("export write failed", zap.Error(err))
		return
	}
	h.log.Info("export served", zap.Int("plays", len(plays)))
}
