package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/studydesk/studydesk/internal/artifact"
	"github.com/studydesk/studydesk/internal/notes"
)

// wsFrame is one server-to-client WebSocket message. Unlike the SSE route,
// WebSocket turns are delivered whole: the full response text plus its
// rendered artifact in a single frame.
type wsFrame struct {
	Type     string           `json:"type"` // "response" or "error"
	Text     string           `json:"text,omitempty"`
	Artifact *artifactPayload `json:"artifact,omitempty"`
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: s.corsOrigins,
	})
	if err != nil {
		slog.Warn("websocket accept failed", "error", err)
		return
	}
	defer conn.CloseNow()

	ctx := r.Context()
	for {
		var req chatRequest
		if err := wsjson.Read(ctx, conn, &req); err != nil {
			if websocket.CloseStatus(err) == websocket.StatusNormalClosure ||
				websocket.CloseStatus(err) == websocket.StatusGoingAway {
				return
			}
			slog.Debug("websocket closed", "error", err)
			return
		}
		if req.SessionID == "" {
			req.SessionID = "default"
		}
		if req.Message == "" {
			s.writeFrame(ctx, conn, wsFrame{Type: "error", Text: "message is required"})
			continue
		}

		reply, err := s.engine.ProcessMessage(ctx, req.SessionID, req.Message)
		if err != nil {
			text := "Error: " + err.Error()
			if errors.Is(err, notes.ErrNoMaterials) {
				text = "No study materials found. Add PDF or Markdown files to the notes directory first."
			}
			s.writeFrame(ctx, conn, wsFrame{Type: "error", Text: text})
			continue
		}

		a := artifact.Build(reply)
		s.writeFrame(ctx, conn, wsFrame{
			Type: "response",
			Text: reply,
			Artifact: &artifactPayload{
				Kind: a.Kind.String(),
				HTML: string(a.HTML),
				Quiz: a.Quiz,
				Deck: a.Deck,
			},
		})
	}
}

func (s *Server) writeFrame(ctx context.Context, conn *websocket.Conn, frame wsFrame) {
	if err := wsjson.Write(ctx, conn, frame); err != nil {
		slog.Debug("websocket write failed", "error", err)
	}
}
