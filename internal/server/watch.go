package server

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Bounds on the client-requested sampling interval.
	minWatchInterval     = 10 * time.Millisecond
	defaultWatchInterval = 500 * time.Millisecond
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  512,
	WriteBufferSize: 512,
}

// Update is one sample on a watch stream.
type Update struct {
	Path  string    `json:"path"`
	Value string    `json:"value"`
	At    time.Time `json:"at"`
}

// handleWatch streams the value of one property at a fixed interval
// over a websocket until the client disconnects. Query parameters:
// path (required), interval (optional Go duration, default 500ms).
func (s *Server) handleWatch(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		writeError(w, http.StatusBadRequest, "missing path parameter")
		return
	}

	handle := s.root.Child(path)
	if !handle.IsValid() {
		writeError(w, http.StatusNotFound, "unknown property path")
		return
	}
	if !handle.Type().CanRead() {
		writeError(w, http.StatusUnprocessableEntity, "property is not readable")
		return
	}

	interval := defaultWatchInterval
	if raw := r.URL.Query().Get("interval"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid interval")
			return
		}
		interval = max(d, minWatchInterval)
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("watch upgrade failed", zap.String("path", path), zap.Error(err))
		return
	}
	defer conn.Close()
	s.log.Info("watch started", zap.String("path", path), zap.Duration("interval", interval))

	// Drain the read side so close frames are processed.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-r.Context().Done():
			return
		case <-ticker.C:
			var buf [valueBufSize]byte
			n, ok := handle.GetString(buf[:])
			if !ok {
				continue
			}
			update := Update{Path: path, Value: string(buf[:n]), At: time.Now().UTC()}
			if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				s.log.Debug("watch ended", zap.String("path", path), zap.Error(err))
				return
			}
			if err := conn.WriteJSON(update); err != nil {
				s.log.Debug("watch ended", zap.String("path", path), zap.Error(err))
				return
			}
		}
	}
}
