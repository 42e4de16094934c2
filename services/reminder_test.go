package services

import (
	"testing"
	"time"

	"main/model"
)

func TestIsReminderDue(t *testing.T) {
	// 2025-06-30 is a Monday
	monday0900 := time.Date(2025, 6, 30, 9, 0, 0, 0, time.UTC)
	weekdays := []int{1, 2, 3, 4, 5}

	tests := []struct {
		name     string
		settings model.NotificationSettings
		now      time.Time
		want     bool
	}{
		{
			name:     "Exact Match",
			settings: model.NotificationSettings{Enabled: true, Time: "09:00", Days: weekdays},
			now:      monday0900,
			want:     true,
		},
		{
			name:     "Disabled",
			settings: model.NotificationSettings{Enabled: false, Time: "09:00", Days: weekdays},
			now:      monday0900,
			want:     false,
		},
		{
			name:     "One Minute Early",
			settings: model.NotificationSettings{Enabled: true, Time: "09:01", Days: weekdays},
			now:      monday0900,
			want:     true,
		},
		{
			name:     "One Minute Late",
			settings: model.NotificationSettings{Enabled: true, Time: "08:59", Days: weekdays},
			now:      monday0900,
			want:     true,
		},
		{
			name:     "Two Minutes Off",
			settings: model.NotificationSettings{Enabled: true, Time: "09:02", Days: weekdays},
			now:      monday0900,
			want:     false,
		},
		{
			name:     "Wrong Hour Same Minute",
			settings: model.NotificationSettings{Enabled: true, Time: "10:00", Days: weekdays},
			now:      monday0900,
			want:     false,
		},
		{
			name:     "Hour Boundary Not Bridged",
			settings: model.NotificationSettings{Enabled: true, Time: "09:00", Days: weekdays},
			now:      time.Date(2025, 6, 30, 8, 59, 0, 0, time.UTC),
			want:     false,
		},
		{
			name:     "Weekday Not Listed",
			settings: model.NotificationSettings{Enabled: true, Time: "09:00", Days: weekdays},
			now:      time.Date(2025, 6, 29, 9, 0, 0, 0, time.UTC), // Sunday
			want:     false,
		},
		{
			name:     "Sunday Listed As Zero",
			settings: model.NotificationSettings{Enabled: true, Time: "09:00", Days: []int{0}},
			now:      time.Date(2025, 6, 29, 9, 0, 0, 0, time.UTC),
			want:     true,
		},
		{
			name:     "Empty Days",
			settings: model.NotificationSettings{Enabled: true, Time: "09:00", Days: nil},
			now:      monday0900,
			want:     false,
		},
		{
			name:     "Malformed Time",
			settings: model.NotificationSettings{Enabled: true, Time: "nine", Days: weekdays},
			now:      monday0900,
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsReminderDue(tt.settings, tt.now); got != tt.want {
				t.Errorf("IsReminderDue(%+v, %s) = %v, want %v",
					tt.settings, tt.now.Format(time.RFC3339), got, tt.want)
			}
		})
	}
}

func TestPruneSent(t *testing.T) {
	rs := &ReminderScheduler{sent: map[string]bool{
		"habit-1:2025-06-29": true,
		"habit-2:2025-06-29": true,
		"habit-1:2025-06-30": true,
	}}

	rs.pruneSent("2025-06-30")

	if len(rs.sent) != 1 {
		t.Fatalf("expected 1 entry after prune, got %d", len(rs.sent))
	}
	if !rs.sent["habit-1:2025-06-30"] {
		t.Error("expected today's entry to survive")
	}
}
