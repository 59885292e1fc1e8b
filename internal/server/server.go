package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/financeai/financeai-backend/internal/gemini"
	"github.com/financeai/financeai-backend/internal/store"
)

// WelcomeMessage opens every session. The seeded turn is rendered but never
// replayed to the model.
const WelcomeMessage = "Hello! I'm your Financial Assistant powered by Gemini AI. I can help you with financial questions, investment advice, budgeting tips, and more. You can also upload financial documents like bank statements, tax returns, or investment statements to analyze them together. What would you like to know?"

type Server struct {
	engine     *gin.Engine
	store      *store.ConversationStore
	generator  gemini.Generator
	logger     *zap.Logger
	corsOrigin string
	started    time.Time
}

type Options struct {
	Store      *store.ConversationStore
	Generator  gemini.Generator
	Logger     *zap.Logger
	CORSOrigin string
}

func New(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Store == nil {
		opts.Store = store.NewConversationStore()
	}
	if opts.Store.Len() == 0 {
		store.SeedWelcome(opts.Store, WelcomeMessage)
	}

	s := &Server{
		engine:     gin.Default(),
		store:      opts.Store,
		generator:  opts.Generator,
		logger:     opts.Logger,
		corsOrigin: opts.CORSOrigin,
		started:    time.Now(),
	}
	s.engine.Use(s.cors())
	s.routes()
	return s
}

// cors lets the browser collaborator call cross-origin; OPTIONS preflights
// short-circuit.
func (s *Server) cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.corsOrigin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", s.corsOrigin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			c.Writer.Header().Set("Access-Control-Allow-Methods", "*")
		}
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

func (s *Server) routes() {
	s.engine.GET("/health", s.handleHealth)
	s.engine.GET("/api/model", s.handleModel)
	s.engine.GET("/api/messages", s.handleMessages)
	s.engine.POST("/api/chat", s.handleChat)
	s.engine.POST("/api/upload", s.handleUpload)
	s.engine.POST("/api/reset", s.handleReset)
}

// Handler exposes the router for tests and embedding.
func (s *Server) Handler() http.Handler { return s.engine }

func (s *Server) Run(addr string) error {
	s.logger.Info("listening", zap.String("addr", addr))
	return s.engine.Run(addr)
}
