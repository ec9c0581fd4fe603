// Package web is the browser front end: one page shows the transcript and a
// narration form; each narration runs a full player round before the page
// reloads.
package web

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/louisbranch/gmtrainer/internal/errors"
	"github.com/louisbranch/gmtrainer/internal/game"
	"github.com/louisbranch/gmtrainer/internal/scenario"
)

// Server hosts the single-session web UI. One GM at a time: rounds are
// serialized so concurrent narrations cannot interleave turns.
type Server struct {
	orc *game.Orchestrator
	scn *scenario.Scenario

	mu      sync.Mutex
	session *game.Session
}

// NewServer builds a web UI over the orchestrator and scenario.
func NewServer(orc *game.Orchestrator, scn *scenario.Scenario) *Server {
	return &Server{orc: orc, scn: scn}
}

// RegisterRoutes registers the UI endpoints on mux.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/narrate", s.handleNarrate)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
}

// Run serves the UI on addr until ctx is cancelled, then drains in-flight
// requests.
func (s *Server) Run(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	s.RegisterRoutes(mux)

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown web ui: %w", err)
	}
	return <-errCh
}

type sessionView struct {
	ScenarioName string
	Turns        []game.Turn
	Error        string
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	s.mu.Lock()
	session, err := s.ensureSession(r.Context())
	var turns []game.Turn
	if session != nil {
		turns = append(turns, session.Turns...)
	}
	s.mu.Unlock()

	view := sessionView{ScenarioName: s.scn.Name, Turns: turns}
	if err != nil {
		view.Error = err.Error()
		s.render(w, errors.HTTPStatus(err), view)
		return
	}
	s.render(w, http.StatusOK, view)
}

func (s *Server) handleNarrate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	narration := strings.TrimSpace(r.FormValue("narration"))
	if narration == "" {
		s.renderError(w, http.StatusBadRequest, "narration is required")
		return
	}

	s.mu.Lock()
	err := s.narrate(r.Context(), narration)
	s.mu.Unlock()

	if err != nil {
		s.renderError(w, errors.HTTPStatus(err), err.Error())
		return
	}
	// Redirect after post so a reload does not replay the round.
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// ensureSession lazily starts the session on first use. Callers hold mu.
func (s *Server) ensureSession(ctx context.Context) (*game.Session, error) {
	if s.session != nil {
		return s.session, nil
	}
	session, err := s.orc.Begin(ctx, s.scn.Name, s.scn.Narration)
	if err != nil {
		return nil, err
	}
	s.session = session
	return session, nil
}

// narrate commits the GM turn, then runs one player round. Callers hold mu.
func (s *Server) narrate(ctx context.Context, narration string) error {
	session, err := s.ensureSession(ctx)
	if err != nil {
		return err
	}
	// The opening narration comes from the scenario; the first form
	// submission is the GM's second turn.
	if _, err := s.orc.Advance(ctx, session, game.GM(), narration); err != nil {
		return err
	}
	if _, err := s.orc.RunRound(ctx, session); err != nil {
		return err
	}
	return nil
}

func (s *Server) renderError(w http.ResponseWriter, status int, message string) {
	s.mu.Lock()
	view := sessionView{ScenarioName: s.scn.Name, Error: message}
	if s.session != nil {
		view.Turns = append(view.Turns, s.session.Turns...)
	}
	s.mu.Unlock()
	s.render(w, status, view)
}

func (s *Server) render(w http.ResponseWriter, status int, view sessionView) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := templates.ExecuteTemplate(w, "session.html", view); err != nil {
		log.Printf("render session page: %v", err)
	}
}
