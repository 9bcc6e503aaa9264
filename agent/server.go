package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/imkonsowa/restaurant-chatbot/config"
	"github.com/imkonsowa/restaurant-chatbot/responder"
	"github.com/imkonsowa/restaurant-chatbot/session"
)

type Agent struct {
	config   *config.Config
	handler  *Handler
	upgrader websocket.Upgrader
}

func NewAgent(cfg *config.Config, handler *Handler) *Agent {
	a := &Agent{config: cfg, handler: handler}
	a.upgrader = websocket.Upgrader{CheckOrigin: a.checkOrigin}

	return a
}

func (a *Agent) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" || origin == "http://"+r.Host || origin == "https://"+r.Host {
		return true
	}

	return slices.Contains(a.config.Server.AllowedOrigins, origin)
}

// sessionID returns the id from the session cookie, or a fresh one when the
// cookie is missing or was not issued by us.
func (a *Agent) sessionID(ctx *gin.Context) string {
	if id, err := ctx.Cookie(a.config.Server.CookieName); err == nil {
		if _, err := uuid.Parse(id); err == nil {
			return id
		}
	}

	return uuid.NewString()
}

func (a *Agent) setSessionCookie(ctx *gin.Context, id string) {
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(a.config.Server.CookieName, id, 0, "/", "", false, true)
}

func (a *Agent) Router() *gin.Engine {
	r := gin.Default()

	if len(a.config.Server.AllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     a.config.Server.AllowedOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	r.GET("/healthz", func(ctx *gin.Context) {
		if !a.handler.Ready() {
			ctx.JSON(http.StatusServiceUnavailable, gin.H{"status": "starting"})
			return
		}

		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.POST("/chat", func(ctx *gin.Context) {
		var req ChatRequest
		if err := ctx.ShouldBindJSON(&req); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		result, err := a.handler.Chat(ctx, a.sessionID(ctx), req.Message)
		if errors.Is(err, ErrNotReady) {
			ctx.JSON(http.StatusOK, ChatResponse{Response: StartingUpReply})
			return
		}
		if err != nil {
			slog.Error("failed to answer chat message", "error", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		a.setSessionCookie(ctx, result.SessionID)
		ctx.JSON(http.StatusOK, ChatResponse{Response: result.Reply.Text, SessionFlags: result.Flags})
	})

	r.POST("/api/query", func(ctx *gin.Context) {
		var req ChatRequest
		if err := ctx.ShouldBindJSON(&req); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		result, err := a.handler.Chat(ctx, a.sessionID(ctx), req.Message)
		if errors.Is(err, ErrNotReady) {
			ctx.JSON(http.StatusOK, QueryResponse{Answer: StartingUpReply, Actions: []string{}})
			return
		}
		if err != nil {
			slog.Error("failed to answer query", "error", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		a.setSessionCookie(ctx, result.SessionID)
		ctx.JSON(http.StatusOK, QueryResponse{
			Answer:  result.Reply.Text,
			Actions: responder.SuggestActions(req.Message),
		})
	})

	r.GET("/api/session", func(ctx *gin.Context) {
		id, err := ctx.Cookie(a.config.Server.CookieName)
		if err != nil {
			ctx.JSON(http.StatusNotFound, gin.H{"error": session.ErrNotFound.Error()})
			return
		}

		s, err := a.handler.Session(ctx, id)
		if errors.Is(err, session.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		if err != nil {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		resp := SessionResponse{SessionFlags: s.Flags()}
		if s.LastTopic != nil {
			resp.LastTopic = s.LastTopic.Name
		}
		ctx.JSON(http.StatusOK, resp)
	})

	r.GET("/ws", func(ctx *gin.Context) {
		id := a.sessionID(ctx)

		c, err := a.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
		if err != nil {
			slog.Warn("websocket upgrade failed", "error", err)
			return
		}
		defer c.Close()

		if err := c.WriteJSON(WebSocketsMessage{Type: "session", Data: id}); err != nil {
			return
		}

		for {
			var req ChatRequest
			if err := c.ReadJSON(&req); err != nil {
				if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					slog.Debug("websocket closed", "session", id, "error", err)
				}
				return
			}

			msg := WebSocketsMessage{Type: "chat"}
			result, err := a.handler.Chat(ctx.Request.Context(), id, req.Message)
			switch {
			case errors.Is(err, ErrNotReady):
				msg.Data = ChatResponse{Response: StartingUpReply}
			case err != nil:
				slog.Error("failed to answer websocket message", "error", err)
				msg = WebSocketsMessage{Type: "error", Data: err.Error()}
			default:
				msg.Data = ChatResponse{Response: result.Reply.Text, SessionFlags: result.Flags}
			}

			if err := c.WriteJSON(msg); err != nil {
				slog.Error("failed to write to ws connection", "error", err)
				return
			}
		}
	})

	return r
}

// Run serves HTTP until ctx is done, then shuts down gracefully.
func (a *Agent) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    a.config.Server.Address(),
		Handler: a.Router(),
	}

	errChan := make(chan error, 1)
	go func() {
		slog.Info("agent listening", "address", srv.Addr)
		errChan <- srv.ListenAndServe()
	}()

	select {
	case err := <-errChan:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		return srv.Shutdown(shutdownCtx)
	}
}
