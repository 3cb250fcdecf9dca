package controller

import (
	"strconv"

	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type PointsController struct {
	PointsService *service.PointsService
}

func NewPointsController(pointsService *service.PointsService) *PointsController {
	return &PointsController{PointsService: pointsService}
}

// Leaderboard godoc
// @Summary Get the XP leaderboard
// @Tags points
// @Produce  json
// @Param   limit query int false "Number of entries (default 10, max 50)"
// @Success 200 {object} util.Response{data=[]service.LeaderboardEntry}
// @Router /api/leaderboard [get]
func (c *PointsController) Leaderboard(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "10"))
	if limit < 1 || limit > 50 {
		limit = 10
	}

	entries, err := c.PointsService.GetLeaderboard(limit)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, entries)
}

// MySummary godoc
// @Summary Get the current user's XP total and recent awards
// @Tags points
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.PointsSummary}
// @Router /api/points [get]
func (c *PointsController) MySummary(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	summary, err := c.PointsService.GetSummary(claims.UserID)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, summary)
}
