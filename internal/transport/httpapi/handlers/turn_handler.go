// README: Conversational turn handler — unary and streaming endpoints.
package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"travelcore/internal/coretypes"
	"travelcore/internal/orchestrator"
)

// TurnHandler exposes the Master Orchestrator over HTTP.
type TurnHandler struct {
	orchestrator *orchestrator.Orchestrator
}

func NewTurnHandler(o *orchestrator.Orchestrator) *TurnHandler {
	return &TurnHandler{orchestrator: o}
}

type turnRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

// Chat handles POST /api/turn: one request, one complete Response Chunk.
func (h *TurnHandler) Chat(c *gin.Context) {
	var req turnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}

	req.SessionID = strings.TrimSpace(req.SessionID)
	req.Message = strings.TrimSpace(req.Message)
	if req.SessionID == "" || req.Message == "" {
		writeError(c, http.StatusBadRequest, "missing session_id or message")
		return
	}
	if !isValidSessionID(req.SessionID) {
		writeError(c, http.StatusBadRequest, "invalid session_id")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	result, err := h.orchestrator.Turn(ctx, req.SessionID, req.Message)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(c, http.StatusOK, result.Chunk)
}

// Stream handles POST /api/turn/stream: a newline-delimited JSON stream of
// partial Response Chunks followed by one complete chunk, flushed as each
// pipeline stage finishes rather than buffered until the turn ends.
func (h *TurnHandler) Stream(c *gin.Context) {
	var req turnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}

	req.SessionID = strings.TrimSpace(req.SessionID)
	req.Message = strings.TrimSpace(req.Message)
	if req.SessionID == "" || req.Message == "" {
		writeError(c, http.StatusBadRequest, "missing session_id or message")
		return
	}
	if !isValidSessionID(req.SessionID) {
		writeError(c, http.StatusBadRequest, "invalid session_id")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 60*time.Second)
	defer cancel()

	chunks := make(chan *coretypes.ResponseChunk, 8)
	done := make(chan error, 1)

	go func() {
		_, err := h.orchestrator.Stream(ctx, req.SessionID, req.Message, func(chunk *coretypes.ResponseChunk) {
			chunks <- chunk
		})
		close(chunks)
		done <- err
	}()

	c.Header("Content-Type", "application/x-ndjson")
	c.Stream(func(w io.Writer) bool {
		chunk, ok := <-chunks
		if !ok {
			return false
		}
		enc := json.NewEncoder(w)
		_ = enc.Encode(chunk)
		return true
	})

	if err := <-done; err != nil {
		// The stream already started, so the error can't become a status
		// code any more — it just ends the response early.
		return
	}
}
