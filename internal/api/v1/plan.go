package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/poloedu/polobill/internal/api/dto"
	"github.com/poloedu/polobill/internal/domain/plan"
	ierr "github.com/poloedu/polobill/internal/errors"
	"github.com/poloedu/polobill/internal/logger"
	"github.com/poloedu/polobill/internal/service"
)

type PlanHandler struct {
	service service.PlanService
	log     *logger.Logger
}

func NewPlanHandler(service service.PlanService, log *logger.Logger) *PlanHandler {
	return &PlanHandler{service: service, log: log}
}

// @Summary Create an installment plan
// @Description Validate, submit to the payment gateway and persist a new installment plan
// @Tags Plans
// @Accept json
// @Produce json
// @Param plan body dto.CreatePlanRequest true "Installment plan configuration"
// @Success 201 {object} dto.CreatePlanResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 502 {object} ierr.ErrorResponse
// @Router /plans [post]
func (h *PlanHandler) CreatePlan(c *gin.Context) {
	var req dto.CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Error("Failed to bind JSON", "error", err)
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CreatePlan(c.Request.Context(), &req)
	if err != nil {
		h.log.Error("Failed to create plan", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// @Summary Get an installment plan by ID
// @Description Get an installment plan by ID
// @Tags Plans
// @Produce json
// @Param id path string true "Plan ID"
// @Success 200 {object} dto.PlanResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /plans/{id} [get]
func (h *PlanHandler) GetPlan(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.Error(ierr.NewError("id is required").
			WithHint("Plan ID is required").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.GetPlan(c.Request.Context(), id)
	if err != nil {
		h.log.Error("Failed to get plan", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary List installment plans
// @Description List installment plans with optional filtering
// @Tags Plans
// @Produce json
// @Param filter query plan.Filter false "Filter"
// @Success 200 {object} dto.ListPlansResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /plans [get]
func (h *PlanHandler) ListPlans(c *gin.Context) {
	var filter plan.Filter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.log.Error("Failed to bind query parameters", "error", err)
		c.Error(ierr.WithError(err).
			WithHint("Invalid filter parameters").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.ListPlans(c.Request.Context(), &filter)
	if err != nil {
		h.log.Error("Failed to list plans", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Download the payment book for a plan
// @Description Download the gateway-generated payment book PDF for a plan
// @Tags Plans
// @Produce application/pdf
// @Param id path string true "Plan ID"
// @Success 200 {file} binary
// @Failure 404 {object} ierr.ErrorResponse
// @Router /plans/{id}/payment-book [get]
func (h *PlanHandler) GetPaymentBook(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.Error(ierr.NewError("id is required").
			WithHint("Plan ID is required").
			Mark(ierr.ErrValidation))
		return
	}

	book, err := h.service.GetPaymentBook(c.Request.Context(), id)
	if err != nil {
		h.log.Error("Failed to fetch payment book", "error", err)
		c.Error(err)
		return
	}

	c.Data(http.StatusOK, "application/pdf", book)
}
