package httpserver

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/messagely/server/internal/errs"
	"github.com/messagely/server/internal/service"
	"github.com/messagely/server/internal/token"
)

// Server wires services into HTTP handlers.
type Server struct {
	auth     service.AuthService
	users    service.UserService
	messages service.MessageService
	tokens   *token.Service
	logger   *zap.Logger
}

// New constructs the HTTP server with injected services.
func New(auth service.AuthService, users service.UserService, messages service.MessageService, tokens *token.Service, logger *zap.Logger) *Server {
	return &Server{auth: auth, users: users, messages: messages, tokens: tokens, logger: logger}
}

// Router builds the gin engine with middleware and the full route table.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(Recover(s.logger), RequestLogger(s.logger), Authenticate(s.tokens))

	r.GET("/healthz", s.health)
	r.POST("/login", s.login)
	r.POST("/register", s.register)

	users := r.Group("/users", RequireLogin())
	users.GET("", s.listUsers)
	users.GET("/:username", RequireSameUser(), s.getUser)
	users.GET("/:username/to", RequireSameUser(), s.messagesTo)
	users.GET("/:username/from", RequireSameUser(), s.messagesFrom)

	messages := r.Group("/messages")
	messages.POST("", RequireLogin(), s.sendMessage)
	messages.GET("/:id", RequireParticipant(s.messages), s.getMessage)
	messages.POST("/:id/read", RequireParticipant(s.messages), s.markMessageRead)

	return r
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortError(c, fmt.Errorf("invalid body: %w", errs.ErrValidation))
		return
	}
	tok, err := s.auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		abortError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": tok})
}

type registerRequest struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
}

func (s *Server) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortError(c, fmt.Errorf("invalid body: %w", errs.ErrValidation))
		return
	}
	tok, err := s.auth.Register(c.Request.Context(), service.RegisterParams{
		Username:  req.Username,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	})
	if err != nil {
		abortError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": tok})
}

func (s *Server) listUsers(c *gin.Context) {
	users, err := s.users.List(c.Request.Context())
	if err != nil {
		abortError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

func (s *Server) getUser(c *gin.Context) {
	u, err := s.users.Get(c.Request.Context(), c.Param("username"))
	if err != nil {
		abortError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": u})
}

func (s *Server) messagesTo(c *gin.Context) {
	msgs, err := s.users.MessagesTo(c.Request.Context(), c.Param("username"))
	if err != nil {
		abortError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": msgs})
}

func (s *Server) messagesFrom(c *gin.Context) {
	msgs, err := s.users.MessagesFrom(c.Request.Context(), c.Param("username"))
	if err != nil {
		abortError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": msgs})
}

type sendMessageRequest struct {
	ToUsername string `json:"to_username"`
	Body       string `json:"body"`
}

func (s *Server) sendMessage(c *gin.Context) {
	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortError(c, fmt.Errorf("invalid body: %w", errs.ErrValidation))
		return
	}
	from, _ := Identity(c)
	m, err := s.messages.Send(c.Request.Context(), from, req.ToUsername, req.Body)
	if err != nil {
		abortError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": m})
}

func (s *Server) getMessage(c *gin.Context) {
	msg, ok := messageFromCtx(c)
	if !ok {
		abortError(c, fmt.Errorf("message not resolved by guard"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": msg})
}

// markMessageRead narrows the participant guard further: only the recipient
// may stamp read_at.
func (s *Server) markMessageRead(c *gin.Context) {
	msg, ok := messageFromCtx(c)
	if !ok {
		abortError(c, fmt.Errorf("message not resolved by guard"))
		return
	}
	user, _ := Identity(c)
	if msg.To.Username != user {
		abortError(c, errs.ErrUnauthorized)
		return
	}
	readAt, err := s.messages.MarkRead(c.Request.Context(), msg.ID)
	if err != nil {
		abortError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": gin.H{"id": msg.ID, "read_at": readAt}})
}
