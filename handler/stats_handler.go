package handler

import (
	"log"

	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

// OverallStatsHandler returns today's aggregate progress across all of the
// user's habits.
func OverallStatsHandler(c *gin.Context, habitsService *usecase.HabitsService) {
	userID := c.GetString("user_id")

	stats, err := habitsService.OverallStats(c.Request.Context(), userID)
	if err != nil {
		log.Printf("failed to compute overall stats for user %s: %v", userID, err)
		utils.InternalError(c, "Failed to compute stats")
		return
	}

	utils.Success(c, stats)
}
