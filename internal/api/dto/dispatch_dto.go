package dto

import (
	"time"

	"github.com/owenj053/netone-backend/internal/domain"
)

// ReportLocationRequest payload.
type ReportLocationRequest struct {
	Latitude  float64 `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude float64 `json:"longitude" validate:"gte=-180,lte=180"`
}

// LocationResponse echoes the stored location.
type LocationResponse struct {
	UserID        int64     `json:"user_id"`
	Latitude      float64   `json:"latitude"`
	Longitude     float64   `json:"longitude"`
	LastUpdatedAt time.Time `json:"last_updated_at"`
}

// NewLocationResponse maps a domain location.
func NewLocationResponse(loc *domain.EngineerLocation) LocationResponse {
	return LocationResponse{
		UserID:        loc.UserID,
		Latitude:      loc.Latitude,
		Longitude:     loc.Longitude,
		LastUpdatedAt: loc.LastUpdatedAt,
	}
}

// RankedEngineerResponse is one dispatch ranking row, nearest first.
type RankedEngineerResponse struct {
	UserID      int64   `json:"user_id"`
	EngineerID  string  `json:"engineer_id"`
	FullName    string  `json:"full_name"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	OpenTickets int64   `json:"open_tickets"`
	DistanceKm  float64 `json:"distance_km"`
}

// NewRankedEngineerListResponse maps the ranking output.
func NewRankedEngineerListResponse(ranked []domain.RankedEngineer) []RankedEngineerResponse {
	out := make([]RankedEngineerResponse, 0, len(ranked))
	for _, engineer := range ranked {
		out = append(out, RankedEngineerResponse{
			UserID:      engineer.UserID,
			EngineerID:  engineer.EngineerID,
			FullName:    engineer.FullName,
			Latitude:    engineer.Latitude,
			Longitude:   engineer.Longitude,
			OpenTickets: engineer.OpenTickets,
			DistanceKm:  engineer.DistanceKm,
		})
	}
	return out
}
