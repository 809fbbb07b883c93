package v1

import (
	"net/http"

	"go-mockinterview-backend/internal/delivery/http/response"
	"go-mockinterview-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type BillingHandler struct {
	billingUC domain.BillingUsecase
}

func NewBillingHandler(protected *gin.RouterGroup, billingUC domain.BillingUsecase) {
	handler := &BillingHandler{billingUC: billingUC}

	billing := protected.Group("/billing")
	{
		billing.POST("/checkout", handler.CreateCheckout)
		billing.GET("/checkout/:id", handler.GetCheckout)
	}
}

type CreateCheckoutRequest struct {
	PriceID string `json:"priceId" binding:"required"`
}

// CreateCheckout godoc
// @Summary      Create a checkout session
// @Description  Create a subscription checkout session and return its redirect URL
// @Tags         billing
// @Accept       json
// @Produce      json
// @Param        checkout  body      CreateCheckoutRequest  true  "Checkout JSON"
// @Success      201       {object}  response.Response
// @Failure      400       {object}  response.Response
// @Failure      502       {object}  response.Response
// @Router       /billing/checkout [post]
// @Security     BearerAuth
func (h *BillingHandler) CreateCheckout(c *gin.Context) {
	var req CreateCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}

	userID := c.GetString(string(domain.KeyUserID))

	session, err := h.billingUC.CreateCheckout(c.Request.Context(), userID, req.PriceID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Checkout session created", session)
}

// GetCheckout godoc
// @Summary      Get a checkout session
// @Description  Look up a checkout session's status after the redirect returns
// @Tags         billing
// @Produce      json
// @Param        id   path      string  true  "Checkout session ID"
// @Success      200  {object}  response.Response
// @Failure      502  {object}  response.Response
// @Router       /billing/checkout/{id} [get]
// @Security     BearerAuth
func (h *BillingHandler) GetCheckout(c *gin.Context) {
	session, err := h.billingUC.GetCheckout(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Checkout session", session)
}
