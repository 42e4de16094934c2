package utils

import (
	"log"

	"github.com/shirou/gopsutil/v4/cpu"
)

// GetCPUUsage returns the CPU usage since the previous call as a
// percentage. The zero interval keeps health checks from blocking.
func GetCPUUsage() float64 {
	percentage, err := cpu.Percent(0, false)
	if err != nil {
		log.Printf("Error getting CPU usage: %v", err)
		return 0
	}
	if len(percentage) > 0 {
		return percentage[0]
	}
	return 0
}
