package health

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/bnema/opbots/internal/application"
	"github.com/go-chi/chi/v5"
)

// SessionSource exposes the operator session for the /status route.
type SessionSource interface {
	Snapshot() application.SessionSnapshot
}

type healthResponse struct {
	Status   string `json:"status"`
	WhatsApp string `json:"whatsapp"`
}

// NewRouter serves /healthz and /status. /healthz reports degraded with a
// 503 while the WhatsApp session is down.
func NewRouter(source SessionSource, logger *slog.Logger) *chi.Mux {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Logger(logger))
	r.Use(Recovery(logger))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		snapshot := source.Snapshot()
		if !snapshot.Connected {
			writeJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "degraded", WhatsApp: "disconnected"})
			return
		}
		writeJSON(w, http.StatusOK, healthResponse{Status: "ok", WhatsApp: "connected"})
	})

	r.Get("/status", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, source.Snapshot())
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
