// Package status serves a read-only HTTP view of a running simulation.
package status

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/swbase/swb/internal/model/core"
)

// WeaponStatus is the live state of one simulated weapon.
type WeaponStatus struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Owner     string  `json:"owner"`
	Realm     string  `json:"realm"`
	Ammo      int     `json:"ammo"`
	Reserve   int     `json:"reserve"`
	ClipSize  int     `json:"clipSize"`
	Reloading bool    `json:"reloading"`
	Bolt      string  `json:"bolt,omitempty"`
	Heat      float64 `json:"heat"`
}

// Sources supply the data behind each endpoint. Nil sources answer 404.
type Sources struct {
	Weapons func() []WeaponStatus
	Summary func() (core.SessionSummary, bool)
	Metrics func(ctx context.Context) (metricdata.ResourceMetrics, error)
}

// Server is the status HTTP server.
type Server struct {
	src     Sources
	log     *slog.Logger
	started time.Time
	http    *http.Server
}

// New creates a status server listening on addr once Start is called.
func New(addr string, src Sources, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	s := &Server{
		src:     src,
		log:     log.With("component", "status"),
		started: time.Now(),
	}
	s.http = &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Router returns the endpoint routes.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/weapons", s.handleWeapons).Methods(http.MethodGet)
	r.HandleFunc("/weapons/{id}", s.handleWeapon).Methods(http.MethodGet)
	r.HandleFunc("/session", s.handleSession).Methods(http.MethodGet)
	r.HandleFunc("/metrics", s.handleMetrics).Methods(http.MethodGet)
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "GET only")
	})
	return r
}

// Start listens and serves in the background. The returned error covers listen
// failures only.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.http.Addr)
	if err != nil {
		return fmt.Errorf("status listen %s: %w", s.http.Addr, err)
	}
	s.log.Info("status server listening", "addr", ln.Addr().String())
	go func() {
		if err := s.http.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("status server stopped", "error", err)
		}
	}()
	return nil
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"uptime": time.Since(s.started).Round(time.Millisecond).String(),
	})
}

func (s *Server) handleWeapons(w http.ResponseWriter, _ *http.Request) {
	if s.src.Weapons == nil {
		writeError(w, http.StatusNotFound, "no simulation attached")
		return
	}
	weapons := s.src.Weapons()
	if weapons == nil {
		weapons = []WeaponStatus{}
	}
	writeJSON(w, http.StatusOK, weapons)
}

func (s *Server) handleWeapon(w http.ResponseWriter, r *http.Request) {
	if s.src.Weapons == nil {
		writeError(w, http.StatusNotFound, "no simulation attached")
		return
	}
	id := mux.Vars(r)["id"]
	for _, ws := range s.src.Weapons() {
		if ws.ID == id {
			writeJSON(w, http.StatusOK, ws)
			return
		}
	}
	writeError(w, http.StatusNotFound, "unknown weapon "+id)
}

func (s *Server) handleSession(w http.ResponseWriter, _ *http.Request) {
	if s.src.Summary == nil {
		writeError(w, http.StatusNotFound, "no session")
		return
	}
	sum, ok := s.src.Summary()
	if !ok {
		writeError(w, http.StatusNotFound, "storage backend keeps no summary")
		return
	}
	type weaponRow struct {
		core.WeaponStats
		Accuracy float64 `json:"accuracy"`
	}
	rows := make(map[string]weaponRow, len(sum.ByWeapon))
	for name, ws := range sum.ByWeapon {
		rows[name] = weaponRow{WeaponStats: ws, Accuracy: ws.Accuracy()}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"session":  sum.Session,
		"totals":   weaponRow{WeaponStats: sum.Totals, Accuracy: sum.Totals.Accuracy()},
		"byWeapon": rows,
	})
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if s.src.Metrics == nil {
		writeError(w, http.StatusNotFound, "metrics disabled")
		return
	}
	rm, err := s.src.Metrics(r.Context())
	if err != nil {
		s.log.Error("collecting metrics", "error", err)
		writeError(w, http.StatusInternalServerError, "collecting metrics failed")
		return
	}
	writeJSON(w, http.StatusOK, flatten(rm))
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}
