package progress

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

// Server exposes a Sink over a local websocket endpoint so an out-of-scope
// GUI front-end can subscribe to live progress (SPEC_FULL.md §2 ambient
// table, grounded on the teacher pack's websocket transport).
type Server struct {
	sink     *Sink
	log      *slog.Logger
	upgrader websocket.Upgrader
}

// NewServer returns a Server broadcasting sink's events.
func NewServer(sink *Sink, log *slog.Logger) *Server {
	return &Server{
		sink: sink,
		log:  log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// Handler upgrades a connection and streams every subsequent event to it
// until the client disconnects.
func (s *Server) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := s.upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		ch, unsubscribe := s.sink.Subscribe(16)
		defer unsubscribe()

		if last := s.sink.Last(); last.Message != "" {
			s.write(conn, last)
		}
		for e := range ch {
			if !s.write(conn, e) {
				return
			}
		}
	}
}

func (s *Server) write(conn *websocket.Conn, e Event) bool {
	b, err := json.Marshal(e)
	if err != nil {
		return true
	}
	_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
	if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
		if s.log != nil {
			s.log.Debug("progress subscriber disconnected", "error", err)
		}
		return false
	}
	return true
}

// ListenAndServe starts the HTTP server at addr, serving the progress
// websocket at "/progress". Blocks until the server errors or is shut down.
func (s *Server) ListenAndServe(addr string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/progress", s.Handler())
	return http.ListenAndServe(addr, mux)
}
