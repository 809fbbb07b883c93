package v1

import (
	"net/http"
	"strconv"
	"strings"

	"go-mockinterview-backend/internal/delivery/http/response"
	"go-mockinterview-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type InterviewHandler struct {
	interviewUC  domain.InterviewUsecase
	generationUC domain.GenerationUsecase
	feedbackUC   domain.FeedbackUsecase
}

func NewInterviewHandler(protected *gin.RouterGroup, generateLimited *gin.RouterGroup, interviewUC domain.InterviewUsecase, generationUC domain.GenerationUsecase, feedbackUC domain.FeedbackUsecase) {
	handler := &InterviewHandler{
		interviewUC:  interviewUC,
		generationUC: generationUC,
		feedbackUC:   feedbackUC,
	}

	// Generation endpoints call the model and carry a stricter limit.
	generateInterviews := generateLimited.Group("/interviews")
	{
		generateInterviews.POST("", handler.Create)
		generateInterviews.POST("/resume", handler.CreateFromResume)
	}

	interviews := protected.Group("/interviews")
	{
		interviews.GET("", handler.ListMine)
		interviews.GET("/available", handler.ListAvailable)
		interviews.GET("/:id", handler.Get)
		interviews.DELETE("/:id", handler.Delete)
		interviews.GET("/:id/feedback", handler.GetFeedback)
		interviews.POST("/:id/feedback", handler.CreateFeedback)
	}
}

type CreateInterviewRequest struct {
	Role           string `json:"role" binding:"required,no_emoji"`
	Type           string `json:"type" binding:"required,interview_type"`
	Level          string `json:"level" binding:"required"`
	Techstack      string `json:"techstack"`
	Amount         int    `json:"amount"`
	Duration       int    `json:"duration"`
	JobDescription string `json:"jobDescription"`
}

type CreateFromResumeRequest struct {
	ResumeText string `json:"resumeText" binding:"required"`
	Role       string `json:"role"`
	Level      string `json:"level"`
}

type CreateFeedbackRequest struct {
	Transcript []domain.TranscriptTurn `json:"transcript" binding:"required"`
	FeedbackID string                  `json:"feedbackId"`
}

// Create godoc
// @Summary      Create an interview
// @Description  Generate questions for the given role and persist a new interview
// @Tags         interviews
// @Accept       json
// @Produce      json
// @Param        interview  body      CreateInterviewRequest  true  "Interview JSON"
// @Success      201        {object}  response.Response
// @Failure      400        {object}  response.Response
// @Failure      502        {object}  response.Response
// @Router       /interviews [post]
// @Security     BearerAuth
func (h *InterviewHandler) Create(c *gin.Context) {
	var req CreateInterviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}

	userID := c.GetString(string(domain.KeyUserID))

	questions, err := h.generationUC.GenerateQuestions(c.Request.Context(), domain.GenerateQuestionsParams{
		Role:            req.Role,
		Type:            req.Type,
		Level:           req.Level,
		Techstack:       splitTechstack(req.Techstack),
		NumQuestions:    req.Amount,
		DurationMinutes: req.Duration,
		JobDescription:  req.JobDescription,
	})
	if err != nil {
		c.Error(err)
		return
	}

	interview := &domain.Interview{
		Role:      req.Role,
		Type:      req.Type,
		Level:     req.Level,
		Techstack: splitTechstack(req.Techstack),
		Questions: questions,
		UserID:    userID,
	}

	id, err := h.interviewUC.CreateInterview(c.Request.Context(), interview)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Interview created", gin.H{
		"interviewId": id,
		"questions":   questions,
	})
}

// CreateFromResume godoc
// @Summary      Create an interview from a resume
// @Description  Generate resume-tailored questions and persist a private interview
// @Tags         interviews
// @Accept       json
// @Produce      json
// @Param        resume  body      CreateFromResumeRequest  true  "Resume JSON"
// @Success      201     {object}  response.Response
// @Failure      400     {object}  response.Response
// @Failure      502     {object}  response.Response
// @Router       /interviews/resume [post]
// @Security     BearerAuth
func (h *InterviewHandler) CreateFromResume(c *gin.Context) {
	var req CreateFromResumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}

	userID := c.GetString(string(domain.KeyUserID))

	questions, err := h.generationUC.GenerateResumeQuestions(c.Request.Context(), req.ResumeText)
	if err != nil {
		c.Error(err)
		return
	}

	role := req.Role
	if role == "" {
		role = "Software Engineer"
	}
	level := req.Level
	if level == "" {
		level = "Mid-level"
	}

	interview := &domain.Interview{
		Role:      role,
		Type:      domain.InterviewTypeResume,
		Level:     level,
		Techstack: []string{},
		Questions: questions,
		UserID:    userID,
	}

	id, err := h.interviewUC.CreateInterview(c.Request.Context(), interview)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Resume interview created", gin.H{
		"interviewId": id,
		"questions":   questions,
	})
}

// ListMine godoc
// @Summary      List my interviews
// @Description  List the authenticated user's interviews, newest first
// @Tags         interviews
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /interviews [get]
// @Security     BearerAuth
func (h *InterviewHandler) ListMine(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	interviews, err := h.interviewUC.ListByUser(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Interview list", gin.H{
		"interviews": interviews,
		"total":      len(interviews),
	})
}

// ListAvailable godoc
// @Summary      List available interviews
// @Description  List finalized interviews created by other users, excluding resume-derived ones
// @Tags         interviews
// @Produce      json
// @Param        limit  query     int  false  "Max results"
// @Success      200    {object}  response.Response
// @Router       /interviews/available [get]
// @Security     BearerAuth
func (h *InterviewHandler) ListAvailable(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	interviews, err := h.interviewUC.ListAvailable(c.Request.Context(), userID, limit)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Available interviews", gin.H{
		"interviews": interviews,
		"total":      len(interviews),
	})
}

// Get godoc
// @Summary      Get an interview
// @Tags         interviews
// @Produce      json
// @Param        id   path      string  true  "Interview ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /interviews/{id} [get]
// @Security     BearerAuth
func (h *InterviewHandler) Get(c *gin.Context) {
	interview, err := h.interviewUC.GetInterview(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Interview details", interview)
}

// Delete godoc
// @Summary      Delete an interview
// @Description  Delete an interview you own together with its feedback
// @Tags         interviews
// @Produce      json
// @Param        id   path      string  true  "Interview ID"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /interviews/{id} [delete]
// @Security     BearerAuth
func (h *InterviewHandler) Delete(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	if err := h.interviewUC.DeleteInterview(c.Request.Context(), c.Param("id"), userID); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Interview deleted", nil)
}

// GetFeedback godoc
// @Summary      Get interview feedback
// @Description  Get the authenticated user's feedback for an interview
// @Tags         feedback
// @Produce      json
// @Param        id   path      string  true  "Interview ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /interviews/{id}/feedback [get]
// @Security     BearerAuth
func (h *InterviewHandler) GetFeedback(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	feedback, err := h.feedbackUC.GetByInterviewID(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Feedback details", feedback)
}

// CreateFeedback godoc
// @Summary      Score a transcript
// @Description  Synthesize structured feedback from an interview transcript
// @Tags         feedback
// @Accept       json
// @Produce      json
// @Param        id          path      string                 true  "Interview ID"
// @Param        transcript  body      CreateFeedbackRequest  true  "Transcript JSON"
// @Success      201         {object}  response.Response
// @Failure      400         {object}  response.Response
// @Failure      502         {object}  response.Response
// @Router       /interviews/{id}/feedback [post]
// @Security     BearerAuth
func (h *InterviewHandler) CreateFeedback(c *gin.Context) {
	var req CreateFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}

	userID := c.GetString(string(domain.KeyUserID))

	feedbackID, err := h.feedbackUC.CreateFeedback(c.Request.Context(), domain.CreateFeedbackParams{
		InterviewID: c.Param("id"),
		UserID:      userID,
		Transcript:  req.Transcript,
		FeedbackID:  req.FeedbackID,
	})
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Feedback created", gin.H{"feedbackId": feedbackID})
}

// splitTechstack parses the comma-separated techstack field clients send.
func splitTechstack(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return []string{}
	}
	parts := strings.Split(raw, ",")
	stack := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			stack = append(stack, s)
		}
	}
	return stack
}
