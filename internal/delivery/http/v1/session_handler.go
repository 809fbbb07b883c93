package v1

import (
	"net/http"

	"go-mockinterview-backend/internal/delivery/http/response"
	"go-mockinterview-backend/internal/domain"
	"go-mockinterview-backend/pkg/voice"

	"github.com/gin-gonic/gin"
)

type SessionHandler struct {
	sessionUC domain.SessionUsecase
}

func NewSessionHandler(protected *gin.RouterGroup, sessionUC domain.SessionUsecase) {
	handler := &SessionHandler{sessionUC: sessionUC}

	sessions := protected.Group("/sessions")
	{
		sessions.POST("", handler.Open)
		sessions.GET("/:id", handler.Get)
		sessions.POST("/:id/start", handler.Start)
		sessions.POST("/:id/events", handler.HandleEvent)
		sessions.POST("/:id/disconnect", handler.Disconnect)
	}
}

type OpenSessionRequest struct {
	Purpose     string `json:"purpose" binding:"required"`
	InterviewID string `json:"interviewId"`
	FeedbackID  string `json:"feedbackId"`
}

// Open godoc
// @Summary      Open a session
// @Description  Create a new conversation session in its initial state
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        session  body      OpenSessionRequest  true  "Session JSON"
// @Success      201      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Router       /sessions [post]
// @Security     BearerAuth
func (h *SessionHandler) Open(c *gin.Context) {
	var req OpenSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}

	userID := c.GetString(string(domain.KeyUserID))

	session, err := h.sessionUC.Open(c.Request.Context(), &domain.Session{
		UserID:      userID,
		InterviewID: req.InterviewID,
		FeedbackID:  req.FeedbackID,
		Purpose:     domain.SessionPurpose(req.Purpose),
	})
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Session opened", session)
}

// Start godoc
// @Summary      Start a session
// @Description  Move the session into the connecting state while the call is established
// @Tags         sessions
// @Produce      json
// @Param        id   path      string  true  "Session ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /sessions/{id}/start [post]
// @Security     BearerAuth
func (h *SessionHandler) Start(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	session, err := h.sessionUC.Start(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Session starting", session)
}

// HandleEvent godoc
// @Summary      Deliver a provider event
// @Description  Relay a voice-provider callback event into the session lifecycle
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        id     path      string       true  "Session ID"
// @Param        event  body      voice.Event  true  "Provider event JSON"
// @Success      200    {object}  response.Response
// @Failure      400    {object}  response.Response
// @Failure      404    {object}  response.Response
// @Router       /sessions/{id}/events [post]
// @Security     BearerAuth
func (h *SessionHandler) HandleEvent(c *gin.Context) {
	var event voice.Event
	if err := c.ShouldBindJSON(&event); err != nil {
		c.Error(bindError(err))
		return
	}

	domainEvent, ok := toDomainEvent(event)
	if !ok {
		// Partial transcripts and unknown event types are ignored
		// without touching the session.
		session, err := h.sessionUC.Get(c.Request.Context(), c.Param("id"), c.GetString(string(domain.KeyUserID)))
		if err != nil {
			c.Error(err)
			return
		}
		response.Success(c, http.StatusOK, "Event ignored", session)
		return
	}

	userID := c.GetString(string(domain.KeyUserID))

	session, err := h.sessionUC.HandleEvent(c.Request.Context(), c.Param("id"), userID, domainEvent)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Event processed", session)
}

// Disconnect godoc
// @Summary      Disconnect a session
// @Description  End the session from the client side; scoring runs if the call was live
// @Tags         sessions
// @Produce      json
// @Param        id   path      string  true  "Session ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /sessions/{id}/disconnect [post]
// @Security     BearerAuth
func (h *SessionHandler) Disconnect(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	session, err := h.sessionUC.Disconnect(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Session disconnected", session)
}

// Get godoc
// @Summary      Get a session
// @Tags         sessions
// @Produce      json
// @Param        id   path      string  true  "Session ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /sessions/{id} [get]
// @Security     BearerAuth
func (h *SessionHandler) Get(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	session, err := h.sessionUC.Get(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Session details", session)
}

// toDomainEvent maps a provider payload onto the session lifecycle
// vocabulary. Partial transcript segments carry no lifecycle meaning
// and map to nothing.
func toDomainEvent(event voice.Event) (domain.SessionEvent, bool) {
	switch event.Type {
	case voice.EventCallStart:
		return domain.SessionEvent{Kind: domain.SessionEventCallStart}, true
	case voice.EventCallEnd:
		return domain.SessionEvent{Kind: domain.SessionEventCallEnd}, true
	case voice.EventSpeechStart:
		return domain.SessionEvent{Kind: domain.SessionEventSpeechStart}, true
	case voice.EventSpeechEnd:
		return domain.SessionEvent{Kind: domain.SessionEventSpeechEnd}, true
	case voice.EventError:
		return domain.SessionEvent{Kind: domain.SessionEventError, ErrMessage: event.ErrorMessage}, true
	case voice.EventMessage:
		if !event.IsFinalTranscript() {
			return domain.SessionEvent{}, false
		}
		return domain.SessionEvent{
			Kind:       domain.SessionEventTranscript,
			Role:       event.Role,
			Transcript: event.Transcript,
		}, true
	default:
		return domain.SessionEvent{}, false
	}
}
