package export

import (
	"net/http"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
	"go.uber.org/zap"

	"github.com/annavogt-hci/ascend/internal/store"
)

const qrSize = 256

// QRHandler serves a PNG QR code with the join link for an active room,
// so the second participant can scan into the session.
// GET /qr/{code}.
type QRHandler struct {
	publicURL string
	sessions  *store.SessionStore
	log       *zap.Logger
}

// NewQRHandler creates the QR handler. publicURL is the externally
// reachable base URL of this server, without a trailing slash.
func NewQRHandler(publicURL string, sessions *store.SessionStore, log *zap.Logger) *QRHandler {
	return &QRHandler{publicURL: strings.TrimSuffix(publicURL, "/"), sessions: sessions, log: log}
}

func (h *QRHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	code := strings.ToUpper(strings.TrimPrefix(r.URL.Path, "/qr/"))
	if code == "" || !h.sessions.Exists(code) {
		http.NotFound(w, r)
		return
	}

	png, err := qrcode.Encode(h.publicURL+"/?join="+code, qrcode.Medium, qrSize)
	if err != nil {
		h.log.Error("qr encode failed", zap.String("room", code), zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}
