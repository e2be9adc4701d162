package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/studydesk/studydesk/internal/artifact"
	"github.com/studydesk/studydesk/internal/notes"
)

// sseDoneFrame terminates every stream, error paths included.
const sseDoneFrame = "data: [DONE]\n\n"

// handleChat streams one chat turn over server-sent events: raw model
// fragments as data frames, then a single artifact event carrying the
// rendered result, then the done sentinel.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	req, err := decodeChatRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	chunks, err := s.engine.StreamMessage(r.Context(), req.SessionID, req.Message)
	if err != nil {
		streamFailure(w, flusher, err)
		return
	}

	var full strings.Builder
	for chunk := range chunks {
		if chunk.Error != nil {
			slog.Error("chat stream failed", "session_id", req.SessionID, "error", chunk.Error)
			streamFailure(w, flusher, chunk.Error)
			return
		}
		if chunk.Content == "" {
			continue
		}
		full.WriteString(chunk.Content)
		writeDataFrame(w, chunk.Content)
		flusher.Flush()
	}

	if full.Len() > 0 {
		writeArtifactFrame(w, artifact.Build(full.String()))
	}
	fmt.Fprint(w, sseDoneFrame)
	flusher.Flush()
}

// writeDataFrame emits one data frame. Fragments may span lines; each line
// gets its own data: prefix so the SSE body reassembles with newlines
// intact.
func writeDataFrame(w http.ResponseWriter, content string) {
	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(w, "data: %s\n", line)
	}
	fmt.Fprint(w, "\n")
}

// artifactPayload is the wire form of a built artifact.
type artifactPayload struct {
	Kind string             `json:"kind"`
	HTML string             `json:"html"`
	Quiz *artifact.QuizView `json:"quiz,omitempty"`
	Deck *artifact.DeckView `json:"deck,omitempty"`
}

func writeArtifactFrame(w http.ResponseWriter, a artifact.Artifact) {
	payload, err := json.Marshal(artifactPayload{
		Kind: a.Kind.String(),
		HTML: string(a.HTML),
		Quiz: a.Quiz,
		Deck: a.Deck,
	})
	if err != nil {
		slog.Error("marshaling artifact failed", "error", err)
		return
	}
	fmt.Fprintf(w, "event: artifact\ndata: %s\n\n", payload)
}

// streamFailure reports an error inside an already-started stream. Missing
// study materials are a user-visible condition, not a server fault.
func streamFailure(w http.ResponseWriter, flusher http.Flusher, err error) {
	msg := "Error: " + err.Error()
	if errors.Is(err, notes.ErrNoMaterials) {
		msg = "No study materials found. Add PDF or Markdown files to the notes directory first."
	}
	writeDataFrame(w, msg)
	fmt.Fprint(w, sseDoneFrame)
	flusher.Flush()
}
