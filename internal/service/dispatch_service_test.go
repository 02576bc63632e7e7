package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/owenj053/netone-backend/internal/domain"
	"github.com/owenj053/netone-backend/internal/observability"
)

type dispatchFixture struct {
	service   *DispatchService
	tickets   *fakeTicketRepo
	locations *fakeLocationRepo
	audit     *fakeAuditRepo
}

func newDispatchFixture(t *testing.T) *dispatchFixture {
	t.Helper()
	tickets := newFakeTicketRepo()
	locations := newFakeLocationRepo()
	audit := &fakeAuditRepo{}
	svc := NewDispatchService(DispatchDependencies{
		TicketRepo:   tickets,
		LocationRepo: locations,
		Audit:        NewAuditTrail(audit, zap.NewNop(), observability.NewMetrics()),
		Logger:       zap.NewNop(),
	})
	return &dispatchFixture{service: svc, tickets: tickets, locations: locations, audit: audit}
}

func (f *dispatchFixture) addTicket(t *testing.T, lat, lon *float64) *domain.Ticket {
	t.Helper()
	ticket := &domain.Ticket{
		AssetID:     1,
		CreatedByID: 1,
		Status:      domain.TicketStatusOpen,
		Urgency:     domain.TicketUrgencyHigh,
		Description: "outage",
		Latitude:    lat,
		Longitude:   lon,
	}
	require.NoError(t, f.tickets.Create(context.Background(), ticket))
	return ticket
}

func TestHaversineZeroAtSamePoint(t *testing.T) {
	assert.Zero(t, haversine(51.5, -0.12, 51.5, -0.12))
}

func TestHaversineSymmetric(t *testing.T) {
	a := haversine(-17.82, 31.05, -20.15, 28.58)
	b := haversine(-20.15, 28.58, -17.82, 31.05)
	assert.InDelta(t, a, b, 1e-9)
	assert.Greater(t, a, 0.0)
}

func TestHaversineKnownDistance(t *testing.T) {
	// One degree of longitude on the equator is about 111.19 km.
	d := haversine(0, 0, 0, 1)
	assert.InDelta(t, 111.19, d, 0.1)
}

func TestRankForTicketOrdersByDistance(t *testing.T) {
	f := newDispatchFixture(t)
	ticket := f.addTicket(t, ptr(0.0), ptr(0.0))

	f.locations.candidates = []domain.DispatchCandidate{
		{UserID: 1, EngineerID: "ENG-1", FullName: "Far", Latitude: ptr(0.0), Longitude: ptr(2.0), OpenTickets: 0},
		{UserID: 2, EngineerID: "ENG-2", FullName: "Near", Latitude: ptr(0.0), Longitude: ptr(0.5), OpenTickets: 3},
		{UserID: 3, EngineerID: "ENG-3", FullName: "NoFix", Latitude: nil, Longitude: nil},
	}

	ranked, err := f.service.RankForTicket(context.Background(), ticket.ID)
	require.NoError(t, err)

	// The engineer without a reported location is discarded.
	require.Len(t, ranked, 2)
	assert.Equal(t, int64(2), ranked[0].UserID)
	assert.Equal(t, int64(1), ranked[1].UserID)
	assert.Less(t, ranked[0].DistanceKm, ranked[1].DistanceKm)
	assert.Equal(t, int64(3), ranked[0].OpenTickets)
}

func TestRankForTicketWithoutCoordinates(t *testing.T) {
	f := newDispatchFixture(t)
	ticket := f.addTicket(t, nil, nil)

	_, err := f.service.RankForTicket(context.Background(), ticket.ID)
	assertCode(t, err, "NOT_FOUND")
}

func TestRankForUnknownTicket(t *testing.T) {
	f := newDispatchFixture(t)
	_, err := f.service.RankForTicket(context.Background(), 404)
	assertCode(t, err, "NOT_FOUND")
}

func TestReportLocationOverwrites(t *testing.T) {
	f := newDispatchFixture(t)

	first, err := f.service.ReportLocation(context.Background(), 7, -17.82, 31.05)
	require.NoError(t, err)
	assert.Equal(t, int64(7), first.UserID)

	second, err := f.service.ReportLocation(context.Background(), 7, -17.90, 31.10)
	require.NoError(t, err)
	assert.Equal(t, -17.90, second.Latitude)

	require.Len(t, f.locations.locations, 1)
	assert.Equal(t, -17.90, f.locations.locations[7].Latitude)
	assert.Equal(t, []string{domain.AuditReportLocation, domain.AuditReportLocation}, f.audit.actions())
}

func TestReportLocationRejectsOutOfRange(t *testing.T) {
	f := newDispatchFixture(t)

	_, err := f.service.ReportLocation(context.Background(), 7, 91, 0)
	assertCode(t, err, "VALIDATION_FAILED")

	_, err = f.service.ReportLocation(context.Background(), 7, 0, -181)
	assertCode(t, err, "VALIDATION_FAILED")
}
