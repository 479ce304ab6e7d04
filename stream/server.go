package stream

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/ethaniccc/float32-cube/cube"
	"github.com/gorilla/websocket"
	"github.com/oomph-ac/leapvox/highlight"
	"github.com/sasha-s/go-deadlock"
	"github.com/sirupsen/logrus"
	"go.uber.org/atomic"
)

// DefaultQueueSize is the amount of messages buffered per client before it is dropped.
const DefaultQueueSize = 64

// Message is the JSON form of a highlight event sent to observers.
type Message struct {
	Type  string    `json:"type"`
	Pos   *cube.Pos `json:"pos,omitempty"`
	Start *cube.Pos `json:"start,omitempty"`
	End   *cube.Pos `json:"end,omitempty"`
}

// Server broadcasts highlight events to every connected websocket observer.
type Server struct {
	log       *logrus.Logger
	upgrader  websocket.Upgrader
	queueSize int

	mu      deadlock.RWMutex
	clients map[uint64]chan []byte
	nextID  atomic.Uint64
}

var _ highlight.Handler = (*Server)(nil)

// NewServer returns a server with no observers. A queueSize of zero or less uses DefaultQueueSize.
func NewServer(log *logrus.Logger, queueSize int) *Server {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	return &Server{
		log:       log,
		queueSize: queueSize,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		clients: make(map[uint64]chan []byte),
	}
}

// Handler returns the handler that upgrades requests to observer connections.
func (s *Server) Handler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		conn, err := s.upgrader.Upgrade(rw, r, nil)
		if err != nil {
			s.log.Debugf("stream: upgrade %s: %v", r.RemoteAddr, err)
			return
		}
		defer conn.Close()

		id, out := s.join()
		s.log.Debugf("stream: observer %d joined from %s", id, r.RemoteAddr)
		defer s.leave(id)

		go func() {
			for msg := range out {
				_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
				if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
					_ = conn.Close()
					return
				}
			}
			// Dropped by the server.
			_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye"), time.Now().Add(time.Second))
			_ = conn.Close()
		}()

		// Observers only listen; reading detects the connection closing.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}
}

func (s *Server) join() (uint64, chan []byte) {
	id := s.nextID.Inc()
	out := make(chan []byte, s.queueSize)

	s.mu.Lock()
	s.clients[id] = out
	s.mu.Unlock()
	return id, out
}

func (s *Server) leave(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if out, ok := s.clients[id]; ok {
		delete(s.clients, id)
		close(out)
	}
}

// Observers returns the amount of connected observers.
func (s *Server) Observers() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// Broadcast sends a message to every observer. Observers whose queue is full are dropped.
func (s *Server) Broadcast(msg Message) {
	dat, err := json.Marshal(msg)
	if err != nil {
		s.log.Errorf("stream: encode %s: %v", msg.Type, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for id, out := range s.clients {
		select {
		case out <- dat:
		default:
			s.log.Warnf("stream: dropping observer %d, queue full", id)
			delete(s.clients, id)
			close(out)
		}
	}
}

// Close disconnects every observer.
func (s *Server) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, out := range s.clients {
		delete(s.clients, id)
		close(out)
	}
}

func (s *Server) HandleHighlight(pos cube.Pos) {
	s.Broadcast(Message{Type: "highlight", Pos: &pos})
}

func (s *Server) HandleRemove(pos cube.Pos) {
	s.Broadcast(Message{Type: "remove", Pos: &pos})
}

func (s *Server) HandleHighlightAdjacent(pos cube.Pos) {
	s.Broadcast(Message{Type: "highlight-adjacent", Pos: &pos})
}

func (s *Server) HandleRemoveAdjacent(pos cube.Pos) {
	s.Broadcast(Message{Type: "remove-adjacent", Pos: &pos})
}

func (s *Server) HandleSelect(sel highlight.Selection) {
	s.Broadcast(Message{Type: "highlight-select", Start: &sel.Start, End: &sel.End})
}

func (s *Server) HandleDeselect(sel highlight.Selection) {
	s.Broadcast(Message{Type: "highlight-deselect", Start: &sel.Start, End: &sel.End})
}
