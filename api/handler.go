package api

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/tilakWebkorps/Healthy-meal/middleware"
	"github.com/tilakWebkorps/Healthy-meal/models"
	"github.com/tilakWebkorps/Healthy-meal/repository"
	"github.com/tilakWebkorps/Healthy-meal/services"
	"github.com/tilakWebkorps/Healthy-meal/utils"

	"github.com/gin-gonic/gin"
)

// APIHandler holds all dependencies for API handlers.
type APIHandler struct {
	planRepo        repository.PlanRepository
	scheduleService services.ScheduleService
	purchaseService services.PurchaseService
	sessionService  services.SessionService
	presenter       *services.Presenter
}

// NewAPIHandler creates a new APIHandler with necessary dependencies.
func NewAPIHandler(
	planRepo repository.PlanRepository,
	scheduleService services.ScheduleService,
	purchaseService services.PurchaseService,
	sessionService services.SessionService,
	presenter *services.Presenter,
) *APIHandler {
	return &APIHandler{
		planRepo:        planRepo,
		scheduleService: scheduleService,
		purchaseService: purchaseService,
		sessionService:  sessionService,
		presenter:       presenter,
	}
}

// RegisterRoutes wires every endpoint onto the router. Plan purchase requires
// an authenticated session; the CRUD endpoints do not.
func (h *APIHandler) RegisterRoutes(router *gin.Engine) {
	router.POST("/login", h.Login)
	router.DELETE("/logout", h.Logout)

	plans := router.Group("/plans")
	{
		plans.GET("", h.ListPlans)
		plans.GET("/:id", h.ShowPlan)
		plans.POST("", h.CreatePlan)
		plans.PUT("/:id", h.UpdatePlan)
		plans.PATCH("/:id", h.UpdatePlan)
		plans.DELETE("/:id", h.DeletePlan)
		plans.POST("/:id/buy", middleware.Auth(h.sessionService), h.BuyPlan)
	}
}

// ListPlans returns the scalar summary of every plan.
func (h *APIHandler) ListPlans(c *gin.Context) {
	plans, err := h.planRepo.GetAllPlans()
	if err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "something wrong", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"plans": h.presenter.PresentPlans(plans)})
}

// ShowPlan returns the full view of one plan, schedule included.
func (h *APIHandler) ShowPlan(c *gin.Context) {
	plan, ok := h.fetchPlan(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"plan": h.presenter.PresentPlan(plan)})
}

// CreatePlan validates the submitted schedule and builds a new plan tree.
func (h *APIHandler) CreatePlan(c *gin.Context) {
	var req models.PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("WARN: [APIHandler] Malformed plan payload: %v", err)
		c.JSON(http.StatusNotAcceptable, gin.H{"message": gin.H{"plan": "malformed plan payload"}})
		return
	}

	plan, fieldErrors, err := h.scheduleService.CreatePlan(req.Plan)
	if err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "something wrong", err)
		return
	}
	if fieldErrors.Any() {
		c.JSON(http.StatusNotAcceptable, gin.H{"message": fieldErrors})
		return
	}

	// Re-read through the repository so the response carries the resolved
	// category and recipe names.
	created, err := h.planRepo.GetPlanByID(plan.ID)
	if err != nil || created == nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "something wrong", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "plan created", "plan": h.presenter.PresentPlan(created)})
}

// UpdatePlan replaces an existing plan's schedule and scalar fields.
func (h *APIHandler) UpdatePlan(c *gin.Context) {
	plan, ok := h.fetchPlan(c)
	if !ok {
		return
	}
	var req models.PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("WARN: [APIHandler] Malformed plan payload: %v", err)
		c.JSON(http.StatusNotAcceptable, gin.H{"message": gin.H{"plan": "malformed plan payload"}})
		return
	}

	fieldErrors, err := h.scheduleService.UpdatePlan(plan, req.Plan)
	if err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "something wrong", err)
		return
	}
	if fieldErrors.Any() {
		c.JSON(http.StatusNotAcceptable, gin.H{"message": fieldErrors})
		return
	}

	updated, err := h.planRepo.GetPlanByID(plan.ID)
	if err != nil || updated == nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "something wrong", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "plan updated", "plan": h.presenter.PresentPlan(updated)})
}

// BuyPlan activates the plan for the current user and returns the bill.
func (h *APIHandler) BuyPlan(c *gin.Context) {
	plan, ok := h.fetchPlan(c)
	if !ok {
		return
	}
	currentUser, exists := c.Get(middleware.CurrentUserKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Hmm nothing happened."})
		return
	}
	user := currentUser.(*models.User)

	bill, err := h.purchaseService.BuyPlan(user.ID, plan)
	if err != nil {
		var alreadyActive *services.AlreadyActiveError
		if errors.As(err, &alreadyActive) {
			c.JSON(http.StatusNotAcceptable, gin.H{"message": alreadyActive.Error()})
			return
		}
		utils.SendJSONError(c, http.StatusInternalServerError, "something wrong", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": bill})
}

// DeletePlan removes a plan and its whole schedule tree.
func (h *APIHandler) DeletePlan(c *gin.Context) {
	plan, ok := h.fetchPlan(c)
	if !ok {
		return
	}
	if err := h.planRepo.DeletePlan(plan.ID); err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "something wrong", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "plan deleted"})
}

// fetchPlan resolves the :id path parameter into a fully preloaded plan,
// writing the error response itself when the plan cannot be served.
func (h *APIHandler) fetchPlan(c *gin.Context) (*models.Plan, bool) {
	planID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "plan not found"})
		return nil, false
	}
	plan, err := h.planRepo.GetPlanByID(uint(planID))
	if err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "something wrong", err)
		return nil, false
	}
	if plan == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "plan not found"})
		return nil, false
	}
	return plan, true
}
