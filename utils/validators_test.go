package utils

import "testing"

func TestValidateReminderTime(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"09:00", true},
		{"00:00", true},
		{"23:59", true},
		{"24:00", false},
		{"12:60", false},
		{"9:00", false},
		{"09:0", false},
		{"09:00:00", false},
		{"0900", false},
		{"ab:cd", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := ValidateReminderTime(tt.value); got != tt.want {
			t.Errorf("ValidateReminderTime(%q) = %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestValidateWeekdays(t *testing.T) {
	tests := []struct {
		name string
		days []int
		want bool
	}{
		{"Weekdays", []int{1, 2, 3, 4, 5}, true},
		{"Full Week", []int{0, 1, 2, 3, 4, 5, 6}, true},
		{"Empty", []int{}, true},
		{"Sunday Only", []int{0}, true},
		{"Out Of Range High", []int{7}, false},
		{"Out Of Range Low", []int{-1}, false},
		{"Duplicate", []int{1, 1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidateWeekdays(tt.days); got != tt.want {
				t.Errorf("ValidateWeekdays(%v) = %v, want %v", tt.days, got, tt.want)
			}
		})
	}
}
