package handler

import (
	"log"

	"main/dto"
	"main/model"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

// GetUserHabitsHandler lists the user's habits, each with derived stats.
func GetUserHabitsHandler(c *gin.Context, habitsService *usecase.HabitsService) {
	userID := c.GetString("user_id")

	habits, err := habitsService.GetUserHabits(c.Request.Context(), userID)
	if err != nil {
		log.Printf("failed to list habits for user %s: %v", userID, err)
		utils.InternalError(c, "Failed to fetch habits")
		return
	}

	responses := make([]dto.HabitResponse, 0, len(habits))
	for _, habit := range habits {
		stats, err := habitsService.HabitStats(c.Request.Context(), userID, habit.HabitID, 0)
		if err != nil {
			log.Printf("failed to compute stats for habit %s: %v", habit.HabitID, err)
			utils.InternalError(c, "Failed to compute habit stats")
			return
		}
		responses = append(responses, dto.ToHabitResponse(habit, &stats))
	}

	utils.Success(c, responses)
}

func CreateHabitHandler(c *gin.Context, habitsService *usecase.HabitsService) {
	var req dto.HabitCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}

	habit := &model.Habit{
		UserID:   c.GetString("user_id"),
		Name:     req.Name,
		Category: req.Category,
	}
	if req.Notification != nil {
		habit.Notification = *req.Notification
	}

	if err := habitsService.CreateHabit(c.Request.Context(), habit); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	utils.Created(c, dto.ToHabitResponse(habit, nil))
}

func UpdateHabitHandler(c *gin.Context, habitsService *usecase.HabitsService) {
	habitID := c.Param("id")
	userID := c.GetString("user_id")

	var req dto.HabitUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}

	habit, err := habitsService.UpdateHabit(c.Request.Context(), habitID, userID,
		req.Name, req.Category, req.Notification)
	if err != nil {
		if err == usecase.ErrHabitNotFound {
			utils.NotFound(c, "Habit not found")
			return
		}
		utils.BadRequest(c, err.Error())
		return
	}

	utils.Success(c, dto.ToHabitResponse(habit, nil))
}

func DeleteHabitHandler(c *gin.Context, habitsService *usecase.HabitsService) {
	habitID := c.Param("id")
	userID := c.GetString("user_id")

	if err := habitsService.DeleteHabit(c.Request.Context(), habitID, userID); err != nil {
		if err == usecase.ErrHabitNotFound {
			utils.NotFound(c, "Habit not found")
			return
		}
		log.Printf("failed to delete habit %s: %v", habitID, err)
		utils.InternalError(c, "Failed to delete habit")
		return
	}

	utils.Success(c, gin.H{"message": "Habit deleted successfully"})
}
