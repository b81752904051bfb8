// Package server implements the HTTP layout service: the save/load endpoint
// pair the editor talks to, plus read-only listing used by dashboards and the
// occupancy heat-map overlay.
//
// # Endpoints
//
//	GET    /healthz                       liveness probe
//	GET    /api/rooms                     list rooms with a stored layout
//	GET    /api/rooms/{room}/layout       fetch a room's layout
//	PUT    /api/rooms/{room}/layout       upsert a room's layout (editor only)
//	DELETE /api/rooms/{room}/layout       remove a room's layout
//
// The PUT body is the room-scoped layout document from pkg/layout. The room
// in the URL is authoritative; a mismatching room in the body is rejected.
package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/elvisburrniku/OrderTable-sub008/pkg/errors"
	"github.com/elvisburrniku/OrderTable-sub008/pkg/layout"
	"github.com/elvisburrniku/OrderTable-sub008/pkg/layoutstore"
	"github.com/elvisburrniku/OrderTable-sub008/pkg/observability"
)

// maxLayoutBytes caps the accepted PUT body. A floor plan is tens of items;
// anything near this limit is a client bug.
const maxLayoutBytes = 1 << 20

// Server serves the layout API on top of a storage backend.
type Server struct {
	store  layoutstore.Store
	logger *log.Logger
	http   *http.Server
}

// New creates a layout server bound to addr.
// A nil logger falls back to log.Default().
func New(addr string, store layoutstore.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{store: store, logger: logger}
	s.http = &http.Server{
		Addr:              addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// ListenAndServe blocks serving requests until the context is canceled or the
// listener fails, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("layout service listening", "addr", s.http.Addr)
		errCh <- s.http.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.http.Shutdown(shutdownCtx)
	case err := <-errCh:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// Handler returns the routed handler, exposed for tests.
func (s *Server) Handler() http.Handler { return s.routes() }

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api/rooms", func(r chi.Router) {
		r.Get("/", s.handleListRooms)
		r.Route("/{room}", func(r chi.Router) {
			r.Get("/layout", s.handleGetLayout)
			r.Put("/layout", s.handlePutLayout)
			r.Delete("/layout", s.handleDeleteLayout)
		})
	})
	return r
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "list rooms"))
		return
	}
	if rooms == nil {
		rooms = []string{}
	}
	writeJSON(w, http.StatusOK, map[string][]string{"rooms": rooms})
}

func (s *Server) handleGetLayout(w http.ResponseWriter, r *http.Request) {
	room := chi.URLParam(r, "room")
	if err := errors.ValidateRoom(room); err != nil {
		s.writeError(w, err)
		return
	}

	start := time.Now()
	l, err := s.store.Get(r.Context(), room)
	observability.Storage().OnLoad(r.Context(), room, err == nil, time.Since(start))
	if stderrors.Is(err, layoutstore.ErrNotFound) {
		s.writeError(w, errors.New(errors.ErrCodeRoomNotFound, "no layout for room %q", room))
		return
	}
	if err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "load layout for %q", room))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = layout.Write(l, w)
}

func (s *Server) handlePutLayout(w http.ResponseWriter, r *http.Request) {
	room := chi.URLParam(r, "room")
	if err := errors.ValidateRoom(room); err != nil {
		s.writeError(w, err)
		return
	}

	l, err := layout.Read(http.MaxBytesReader(w, r.Body, maxLayoutBytes))
	if err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidLayout, err, "parse layout body"))
		return
	}
	if l.Room == "" {
		l.Room = room
	}
	if l.Room != room {
		s.writeError(w, errors.New(errors.ErrCodeInvalidLayout,
			"layout room %q does not match URL room %q", l.Room, room))
		return
	}

	start := time.Now()
	err = s.store.Put(r.Context(), l)
	observability.Storage().OnSave(r.Context(), room, len(l.Positions), time.Since(start), err)
	if err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "store layout for %q", room))
		return
	}

	s.logger.Info("layout saved", "room", room, "items", len(l.Positions))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteLayout(w http.ResponseWriter, r *http.Request) {
	room := chi.URLParam(r, "room")
	if err := errors.ValidateRoom(room); err != nil {
		s.writeError(w, err)
		return
	}
	err := s.store.Delete(r.Context(), room)
	observability.Storage().OnDelete(r.Context(), room, err)
	if err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "delete layout for %q", room))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// Responses
// =============================================================================

// errorBody is the JSON error envelope.
type errorBody struct {
	Error struct {
		Code    errors.Code `json:"code"`
		Message string      `json:"message"`
	} `json:"error"`
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}

	var body errorBody
	body.Error.Code = code
	body.Error.Message = errors.UserMessage(err)

	status := statusFor(code)
	if status >= 500 {
		s.logger.Error("request failed", "code", code, "err", err)
	}
	writeJSON(w, status, body)
}

func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidRoom, errors.ErrCodeInvalidLayout, errors.ErrCodeInvalidInput:
		return http.StatusBadRequest
	case errors.ErrCodeRoomNotFound, errors.ErrCodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// logRequests logs method, path, and duration for every request.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"duration", time.Since(start).Round(time.Millisecond),
		)
	})
}
