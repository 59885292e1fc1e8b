package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/financeai/financeai-backend/internal"
	"github.com/financeai/financeai-backend/internal/document"
	"github.com/financeai/financeai-backend/internal/gemini"
	"github.com/financeai/financeai-backend/internal/store"
)

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"ok":     true,
		"uptime": time.Since(s.started).Round(time.Second).String(),
	})
}

func (s *Server) handleModel(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"model": s.generator.Model()})
}

func (s *Server) handleMessages(c *gin.Context) {
	c.JSON(http.StatusOK, internal.ChatHistory{Messages: s.store.Snapshot()})
}

func (s *Server) handleReset(c *gin.Context) {
	s.store.Reset()
	store.SeedWelcome(s.store, WelcomeMessage)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// handleChat runs one request-response cycle: the user turn is recorded
// before the model call so a failed call still leaves it visible, and a
// failure is reduced to a synthetic assistant turn plus an error status.
func (s *Server) handleChat(c *gin.Context) {
	var req internal.ChatRequest
	if err := c.BindJSON(&req); err != nil || req.UserMessage == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userMessage required"})
		return
	}

	// Clients replaying their own transcript take precedence over the
	// server-side session log.
	var history []internal.Message
	if len(req.Messages) > 0 {
		history = make([]internal.Message, 0, len(req.Messages))
		for _, t := range req.Messages {
			history = append(history, internal.Message{Role: t.Role, Content: t.Content, Seed: t.Seed})
		}
	} else {
		history = s.store.Snapshot()
	}

	s.store.Append(internal.RoleUser, renderedUserContent(req))

	reply, err := s.generator.Generate(c.Request.Context(), history, req.UserMessage, req.Documents)
	if err != nil {
		s.logger.Error("chat failed", zap.Error(err))
		s.store.Append(internal.RoleAssistant, failureTurn(err))
		status, msg := failureResponse(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}

	s.store.Append(internal.RoleAssistant, reply)
	c.JSON(http.StatusOK, internal.ChatResponse{Reply: reply})
}

// renderedUserContent is what the session log keeps for a user turn:
// the text plus a note naming any attachments.
func renderedUserContent(req internal.ChatRequest) string {
	if len(req.Documents) == 0 {
		return req.UserMessage
	}
	names := make([]string, 0, len(req.Documents))
	for _, d := range req.Documents {
		names = append(names, d.Name)
	}
	return fmt.Sprintf("%s\n\n[Documents attached: %s]", req.UserMessage, strings.Join(names, ", "))
}

// failureTurn is the fixed assistant-visible text for each failure kind,
// keeping the transcript coherent across errors.
func failureTurn(err error) string {
	switch {
	case errors.Is(err, gemini.ErrMissingCredential):
		return "I can't respond yet: no Gemini API key is configured. Please add GEMINI_API_KEY to the environment and try again."
	case errors.Is(err, gemini.ErrInvalidCredential):
		return "Sorry, the configured Gemini API key was rejected. Please check GEMINI_API_KEY and try again."
	default:
		return "Sorry, I encountered an error while processing your request. Please try again."
	}
}

func failureResponse(err error) (int, string) {
	switch {
	case errors.Is(err, gemini.ErrMissingCredential):
		return http.StatusInternalServerError, "GEMINI_API_KEY is not configured. Please add it to your environment variables."
	case errors.Is(err, gemini.ErrInvalidCredential):
		return http.StatusUnauthorized, "Invalid or missing GEMINI_API_KEY. Please check your environment variables."
	default:
		return http.StatusInternalServerError, "Failed to process your request. Please try again."
	}
}

// handleUpload encodes one file into a transport-ready descriptor. The
// descriptor goes back to the client, which attaches it to a later chat
// request; nothing is stored server-side.
func (s *Server) handleUpload(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No file provided"})
		return
	}
	if fh.Size > document.MaxFileSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "File exceeds the 20 MiB limit"})
		return
	}

	f, err := fh.Open()
	if err != nil {
		s.logger.Error("upload open failed", zap.String("file", fh.Filename), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process file"})
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		s.logger.Error("upload read failed", zap.String("file", fh.Filename), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process file"})
		return
	}

	desc, err := document.Encode(data, fh.Filename, fh.Header.Get("Content-Type"))
	switch {
	case errors.Is(err, document.ErrNoFileProvided):
		c.JSON(http.StatusNotFound, gin.H{"error": "No file provided"})
		return
	case errors.Is(err, document.ErrFileTooLarge):
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "File exceeds the 20 MiB limit"})
		return
	case err != nil:
		s.logger.Error("upload encode failed", zap.String("file", fh.Filename), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process file"})
		return
	}

	c.JSON(http.StatusOK, internal.UploadResponse{
		FileID:        desc.FileID,
		FileName:      desc.Name,
		MimeType:      desc.MimeType,
		Base64Content: desc.Base64Content,
		SizeBytes:     desc.SizeBytes,
	})
}
