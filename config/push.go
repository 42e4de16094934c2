package config

import (
	"time"

	"main/utils"
)

// PushConfig carries the VAPID key pair identifying this application to the
// push relay. Keys come from the environment; there is no baked-in default
// because a deployment must generate its own pair.
type PushConfig struct {
	VAPIDPublicKey   string
	VAPIDPrivateKey  string
	Subscriber       string // mailto: contact handed to the relay
	AppURL           string // window clients focus/open this on notification click
	ReminderInterval time.Duration
}

func LoadPushConfig() PushConfig {
	return PushConfig{
		VAPIDPublicKey:   utils.GetEnvAsString("VAPID_PUBLIC_KEY", ""),
		VAPIDPrivateKey:  utils.GetEnvAsString("VAPID_PRIVATE_KEY", ""),
		Subscriber:       utils.GetEnvAsString("VAPID_SUBSCRIBER", "mailto:admin@example.com"),
		AppURL:           utils.GetEnvAsString("APP_URL", "http://localhost:3000"),
		ReminderInterval: utils.GetEnvAsDuration("REMINDER_INTERVAL", time.Minute),
	}
}

// Enabled reports whether push sending is configured at all. Without keys the
// service still runs, it just cannot deliver reminders.
func (c PushConfig) Enabled() bool {
	return c.VAPIDPublicKey != "" && c.VAPIDPrivateKey != ""
}
