package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"freelanceflow/internal/middleware"
	"freelanceflow/internal/services"
)

type DashboardHandler struct {
	service *services.DashboardService
	log     *zap.Logger
}

func NewDashboardHandler(service *services.DashboardService, log *zap.Logger) *DashboardHandler {
	return &DashboardHandler{service: service, log: log}
}

// GetDashboard returns the role-specific overview
// @Summary Get the dashboard overview
// @Description Role-specific counters plus the five most recent visible projects and tasks
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} services.DashboardOverview "Dashboard overview"
// @Failure 401 {object} map[string]interface{} "Unauthenticated"
// @Router /dashboard [get]
func (h *DashboardHandler) GetDashboard(c *fiber.Ctx) error {
	actor := middleware.ActorFromCtx(c)
	overview, err := h.service.Overview(c.UserContext(), actor)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(overview)
}
