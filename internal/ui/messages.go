package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ngmaloney/solar-terminal/internal/models"
)

// Message types for async operations. Fetch results for the dashboard data
// and the drill-down are defined by the coordinator and drilldown packages.

// WeatherMsg delivers a new live weather snapshot from the poller.
type WeatherMsg struct {
	Snapshot models.WeatherSnapshot
}

// WeatherNotifier adapts a program's Send to the poller's Notify callback.
func WeatherNotifier(send func(tea.Msg)) func(models.WeatherSnapshot) {
	return func(s models.WeatherSnapshot) {
		send(WeatherMsg{Snapshot: s})
	}
}
