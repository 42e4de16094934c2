package utils

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var Validate *validator.Validate

func InitValidator() {
	Validate = validator.New()
	Validate.RegisterValidation("reminder_time", ValidateReminderTimeRule)
	Validate.RegisterValidation("weekdays", ValidateWeekdaysRule)
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("reminder_time", ValidateReminderTimeRule)
		v.RegisterValidation("weekdays", ValidateWeekdaysRule)
	}
}

func ValidateReminderTimeRule(fl validator.FieldLevel) bool {
	return ValidateReminderTime(fl.Field().String())
}

// ValidateReminderTime accepts "HH:MM" with HH in 00-23 and MM in 00-59.
func ValidateReminderTime(value string) bool {
	parts := strings.Split(value, ":")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return false
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return false
	}

	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return false
	}

	return true
}

func ValidateWeekdaysRule(fl validator.FieldLevel) bool {
	days, ok := fl.Field().Interface().([]int)
	if !ok {
		return false
	}
	return ValidateWeekdays(days)
}

// ValidateWeekdays accepts a set of weekday numbers 0 (Sunday) through 6
// (Saturday) with no duplicates.
func ValidateWeekdays(days []int) bool {
	seen := make(map[int]bool, len(days))
	for _, day := range days {
		if day < 0 || day > 6 || seen[day] {
			return false
		}
		seen[day] = true
	}
	return true
}
