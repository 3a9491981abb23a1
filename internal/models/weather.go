package models

import "time"

// WeatherSnapshot is the live plant weather, refreshed by the poller.
type WeatherSnapshot struct {
	WindSpeed   float64 // km/h
	Temperature float64 // °C
	Humidity    float64 // %
	Timestamp   time.Time
}
