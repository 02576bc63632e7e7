package domain

import "time"

// EngineerLocation is the most recent known position of one engineer.
// Exactly one row per engineer, overwritten in place on every report.
type EngineerLocation struct {
	UserID        int64
	Latitude      float64
	Longitude     float64
	LastUpdatedAt time.Time
}

// DispatchCandidate is one row of the engineer ranking query: an engineer
// joined with their latest location and current open-ticket workload.
// Latitude/Longitude are nil when the engineer has never reported a location.
type DispatchCandidate struct {
	UserID      int64
	EngineerID  string
	FullName    string
	Latitude    *float64
	Longitude   *float64
	OpenTickets int64
}

// RankedEngineer is a dispatch candidate with the computed distance to the
// ticket, nearest first in ranking output.
type RankedEngineer struct {
	UserID      int64
	EngineerID  string
	FullName    string
	Latitude    float64
	Longitude   float64
	OpenTickets int64
	DistanceKm  float64
}
