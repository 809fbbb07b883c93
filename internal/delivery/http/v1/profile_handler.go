package v1

import (
	"net/http"

	"go-mockinterview-backend/internal/delivery/http/response"
	"go-mockinterview-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	progressUC  domain.ProgressUsecase
	interviewUC domain.InterviewUsecase
}

func NewProfileHandler(protected *gin.RouterGroup, progressUC domain.ProgressUsecase, interviewUC domain.InterviewUsecase) {
	handler := &ProfileHandler{progressUC: progressUC, interviewUC: interviewUC}

	profile := protected.Group("/profile")
	{
		profile.GET("/progress", handler.Progress)
		profile.GET("/stats", handler.Stats)
	}
}

// Progress godoc
// @Summary      Skill progress
// @Description  Return the per-category skill snapshot derived from the latest feedback
// @Tags         profile
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /profile/progress [get]
// @Security     BearerAuth
func (h *ProfileHandler) Progress(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	snapshot, err := h.progressUC.LatestSnapshot(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Skill progress", snapshot)
}

// Stats godoc
// @Summary      Profile statistics
// @Description  Return interview count and the average score across all feedback
// @Tags         profile
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /profile/stats [get]
// @Security     BearerAuth
func (h *ProfileHandler) Stats(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	averageScore, err := h.progressUC.AverageScore(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	interviews, err := h.interviewUC.ListByUser(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Profile stats", gin.H{
		"interviewCount": len(interviews),
		"averageScore":   averageScore,
	})
}
