package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"urbancab/internal/domain"
	"urbancab/internal/service"
)

// StatsHandler handles HTTP requests for dashboards.
type StatsHandler struct {
	statsService *service.StatsService
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(statsService *service.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// DashboardResponse is the role-specific dashboard summary.
type DashboardResponse struct {
	TotalBookings  int   `json:"total_bookings"`
	ActiveBookings int   `json:"active_bookings"`
	TotalEarnings  int64 `json:"total_earnings"`
	PendingBalance int64 `json:"pending_balance"`
}

// AdminDashboardResponse is the platform-wide dashboard summary.
type AdminDashboardResponse struct {
	TotalUsers     int   `json:"total_users"`
	TotalBookings  int   `json:"total_bookings"`
	ActiveBookings int   `json:"active_bookings"`
	TotalRevenue   int64 `json:"total_revenue"`
	AdminEarnings  int64 `json:"admin_earnings"`
	PendingPayouts int   `json:"pending_payouts"`
}

// Dashboard handles GET /v1/dashboard. The figures returned depend on the
// caller's role; admins get the platform-wide summary.
func (h *StatsHandler) Dashboard(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()

	switch caller.Role {
	case domain.RoleAdmin:
		stats, err := h.statsService.PlatformStats(ctx, caller)
		if err != nil {
			respondError(c, err)
			return
		}
		respondJSON(c, http.StatusOK, AdminDashboardResponse{
			TotalUsers:     stats.TotalUsers,
			TotalBookings:  stats.TotalBookings,
			ActiveBookings: stats.ActiveBookings,
			TotalRevenue:   stats.TotalRevenue,
			AdminEarnings:  stats.AdminEarnings,
			PendingPayouts: stats.PendingPayouts,
		})
		return

	case domain.RoleCustomer:
		stats, err := h.statsService.CustomerStats(ctx, caller)
		if err != nil {
			respondError(c, err)
			return
		}
		respondJSON(c, http.StatusOK, toDashboardResponse(stats))
		return

	case domain.RoleDriver:
		stats, err := h.statsService.DriverStats(ctx, caller)
		if err != nil {
			respondError(c, err)
			return
		}
		respondJSON(c, http.StatusOK, toDashboardResponse(stats))
		return

	case domain.RoleDealer:
		stats, err := h.statsService.DealerStats(ctx, caller)
		if err != nil {
			respondError(c, err)
			return
		}
		respondJSON(c, http.StatusOK, toDashboardResponse(stats))
		return
	}

	c.JSON(http.StatusForbidden, ErrorResponse{Error: "no dashboard for role"})
}

func toDashboardResponse(s *service.DashboardStats) DashboardResponse {
	return DashboardResponse{
		TotalBookings:  s.TotalBookings,
		ActiveBookings: s.ActiveBookings,
		TotalEarnings:  s.TotalEarnings,
		PendingBalance: s.PendingBalance,
	}
}
