package domain

import "time"

// WeatherSnapshot is the external weather context attached to a ticket after
// creation. Best-effort: a ticket is fully usable without one.
type WeatherSnapshot struct {
	TemperatureC float64   `json:"temperature_c"`
	WindSpeedKmh float64   `json:"wind_speed_kmh"`
	WeatherCode  int       `json:"weather_code"`
	ObservedAt   time.Time `json:"observed_at"`
	FetchedAt    time.Time `json:"fetched_at"`
}
