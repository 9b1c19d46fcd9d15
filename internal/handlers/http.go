package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io/fs"
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"stackviz/internal/engine"
	"stackviz/internal/export"
	"stackviz/internal/inspect"
	"stackviz/internal/metadata"
	"stackviz/internal/models"
	"stackviz/internal/observability"
	"stackviz/internal/simulation"
)

const maxBodySize = 64 << 10

// Server bundles the dependencies of the HTTP routes.
type Server struct {
	Engine   *engine.Engine
	Registry *metadata.Registry
	Assets   fs.FS
	Logger   zerolog.Logger
}

// RegisterRoutes sets up all HTTP routes on the given mux.
func RegisterRoutes(mux *http.ServeMux, s Server) {
	mux.Handle("/", http.FileServer(http.FS(s.Assets)))

	mux.HandleFunc("/ws", HandleWebSocket(s.Engine, s.Logger))

	mux.HandleFunc("/api/layers", handleLayers)
	mux.HandleFunc("/api/metadata", handleMetadata(s.Registry))
	mux.HandleFunc("/api/simulate", handleSimulate(s.Engine))
	mux.HandleFunc("/api/export.pcap", handleExport)
	mux.HandleFunc("/api/inspect", handleInspect)

	observability.RegisterMetrics()
	mux.Handle("/metrics", promhttp.Handler())
}

// NewHandler returns the full handler chain: routes wrapped in request logging.
func NewHandler(s Server) http.Handler {
	mux := http.NewServeMux()
	RegisterRoutes(mux, s)
	return observability.RequestLogger(s.Logger, mux)
}

func handleLayers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "GET only")
		return
	}
	writeJSON(w, http.StatusOK, engine.LayerInfo())
}

type metadataResponse struct {
	Layers map[string]string `json:"layers"`
	Fields map[string]string `json:"fields"`
}

func handleMetadata(reg *metadata.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "GET only")
			return
		}
		writeJSON(w, http.StatusOK, metadataResponse{Layers: reg.Layers(), Fields: reg.Fields()})
	}
}

func handleSimulate(eng *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "POST only")
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
		var req models.StartRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		frames, err := eng.Simulate(req.Message)
		if err != nil {
			writeFailure(w, err)
			return
		}
		writeJSON(w, http.StatusOK, frames)
	}
}

func handleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "GET only")
		return
	}
	var buf bytes.Buffer
	if err := export.WritePcap(&buf, r.URL.Query().Get("message")); err != nil {
		writeFailure(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.tcpdump.pcap")
	w.Header().Set("Content-Disposition", `attachment; filename="stackviz.pcap"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

func handleInspect(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "GET only")
		return
	}
	info, err := inspect.Message(r.URL.Query().Get("message"))
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

// writeFailure maps validation errors to 400 and everything else to 500.
func writeFailure(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, simulation.ErrEmptyMessage), errors.Is(err, export.ErrPayloadTooLarge):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		log.Error().Err(err).Msg("request failed")
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, models.ErrorPayload{Message: message})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
