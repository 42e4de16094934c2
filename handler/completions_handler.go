package handler

import (
	"log"
	"strconv"

	"main/dto"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

// ToggleCompletionHandler flips the completion mark for one habit and date.
func ToggleCompletionHandler(c *gin.Context, habitsService *usecase.HabitsService) {
	habitID := c.Param("id")
	userID := c.GetString("user_id")

	var req dto.CompletionToggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}

	completed, err := habitsService.ToggleCompletion(c.Request.Context(), userID, habitID, req.Date)
	if err != nil {
		if err == usecase.ErrHabitNotFound {
			utils.NotFound(c, "Habit not found")
			return
		}
		utils.BadRequest(c, err.Error())
		return
	}

	utils.Success(c, dto.CompletionToggleResponse{
		Date:      req.Date,
		Completed: completed,
	})
}

// GetCompletionsHandler returns the completion history and derived stats for
// a habit over the trailing `days` window.
func GetCompletionsHandler(c *gin.Context, habitsService *usecase.HabitsService) {
	habitID := c.Param("id")
	userID := c.GetString("user_id")

	days, err := strconv.Atoi(c.DefaultQuery("days", strconv.Itoa(habitsService.Stats.WindowDays)))
	if err != nil || days < 1 {
		utils.BadRequest(c, "days must be a positive integer")
		return
	}

	completionLog, err := habitsService.GetCompletionLog(c.Request.Context(), userID, habitID, days)
	if err != nil {
		if err == usecase.ErrHabitNotFound {
			utils.NotFound(c, "Habit not found")
			return
		}
		log.Printf("failed to load completions for habit %s: %v", habitID, err)
		utils.InternalError(c, "Failed to fetch completions")
		return
	}

	stats, err := habitsService.HabitStats(c.Request.Context(), userID, habitID, days)
	if err != nil {
		log.Printf("failed to compute stats for habit %s: %v", habitID, err)
		utils.InternalError(c, "Failed to compute habit stats")
		return
	}

	// Trim the response map to the requested window; the log may carry
	// extra history fetched for the streak walk.
	window := make(map[string]bool, days)
	for _, key := range utils.DateRange(utils.Today(), days) {
		if completed, ok := completionLog[key]; ok {
			window[key] = completed
		}
	}

	utils.Success(c, dto.CompletionLogResponse{
		HabitID:     habitID,
		Completions: window,
		Stats:       stats,
	})
}
