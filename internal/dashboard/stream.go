package dashboard

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/zerodeltainc/monte-carlo/internal/domain"
)

const (
	streamWriteTimeout = 10 * time.Second
	streamReadTimeout  = 60 * time.Second
)

// Frame types sent over the live stream.
const (
	FramePoint  = "point"
	FrameReport = "report"
	FrameError  = "error"
)

// StreamFrame is one message of the live simulation stream. Point frames
// carry the running equity of the first trial, one per trade; the final
// report frame carries the full simulation payload.
type StreamFrame struct {
	Type          string  `json:"type"`
	Trade         int     `json:"trade,omitempty"`
	Equity        float64 `json:"equity,omitempty"`
	MovingAverage float64 `json:"moving_average,omitempty"`

	Response *SimulateResponse `json:"response,omitempty"`
	Error    string            `json:"error,omitempty"`
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// The dashboard serves local front ends; origin policy is left to the
	// deployment proxy.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// handleStream upgrades to WebSocket, reads one config message from the
// client, runs the simulation and streams equity points followed by the
// final report frame.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error response.
		if s.metrics != nil {
			s.metrics.RequestErrors.WithLabelValues("upgrade").Inc()
		}
		s.logger.Printf("upgrade error: %v", err)
		return
	}
	defer conn.Close()

	if s.metrics != nil {
		s.metrics.ActiveStreams.Inc()
		defer s.metrics.ActiveStreams.Dec()
	}

	conn.SetReadDeadline(time.Now().Add(streamReadTimeout))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		s.logger.Printf("stream read: %v", err)
		return
	}

	cfg := domain.DefaultConfig()
	if err := json.Unmarshal(msg, &cfg); err != nil {
		s.writeFrame(conn, StreamFrame{Type: FrameError, Error: "invalid config: " + err.Error()})
		return
	}

	resp, err := s.simulate(r, cfg)
	if err != nil {
		s.writeFrame(conn, StreamFrame{Type: FrameError, Error: err.Error()})
		return
	}

	for i, equity := range resp.EquityCurve {
		frame := StreamFrame{
			Type:          FramePoint,
			Trade:         i,
			Equity:        equity,
			MovingAverage: resp.MovingAverage[i],
		}
		if err := s.writeFrame(conn, frame); err != nil {
			s.logger.Printf("stream write: %v", err)
			return
		}
	}

	if err := s.writeFrame(conn, StreamFrame{Type: FrameReport, Response: resp}); err != nil {
		s.logger.Printf("stream write: %v", err)
		return
	}

	conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(streamWriteTimeout))
}

// writeFrame sends one JSON frame under a write deadline.
func (s *Server) writeFrame(conn *websocket.Conn, frame StreamFrame) error {
	conn.SetWriteDeadline(time.Now().Add(streamWriteTimeout))
	return conn.WriteJSON(frame)
}
