package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/owenj053/netone-backend/internal/auth"
	"github.com/owenj053/netone-backend/internal/domain"
	"github.com/owenj053/netone-backend/internal/repository"
	"github.com/owenj053/netone-backend/internal/service"
	apperrors "github.com/owenj053/netone-backend/pkg/util"
)

type memTicketRepo struct {
	tickets map[int64]*domain.Ticket
	nextID  int64
}

func (m *memTicketRepo) Create(_ context.Context, t *domain.Ticket) error {
	t.ID = m.nextID
	m.nextID++
	t.Version = 1
	t.CreatedAt = time.Now()
	stored := *t
	m.tickets[t.ID] = &stored
	return nil
}

func (m *memTicketRepo) Update(_ context.Context, t *domain.Ticket) error {
	stored, ok := m.tickets[t.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	if stored.Version != t.Version {
		return repository.ErrVersionConflict
	}
	copied := *t
	copied.Version++
	m.tickets[t.ID] = &copied
	t.Version++
	return nil
}

func (m *memTicketRepo) UpdateWeather(_ context.Context, id int64, snap *domain.WeatherSnapshot) error {
	stored, ok := m.tickets[id]
	if !ok {
		return pgx.ErrNoRows
	}
	stored.Weather = snap
	return nil
}

func (m *memTicketRepo) GetByID(_ context.Context, id int64) (*domain.Ticket, error) {
	stored, ok := m.tickets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *stored
	return &copied, nil
}

func (m *memTicketRepo) List(_ context.Context, _ repository.TicketFilter) ([]domain.Ticket, error) {
	var out []domain.Ticket
	for _, stored := range m.tickets {
		out = append(out, *stored)
	}
	return out, nil
}

type memAssetRepo struct{ assets map[int64]*domain.Asset }

func (m *memAssetRepo) Create(_ context.Context, a *domain.Asset) error { return nil }
func (m *memAssetRepo) GetByID(_ context.Context, id int64) (*domain.Asset, error) {
	stored, ok := m.assets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return stored, nil
}
func (m *memAssetRepo) List(_ context.Context) ([]domain.Asset, error)          { return nil, nil }
func (m *memAssetRepo) CountChildren(_ context.Context, _ int64) (int64, error) { return 0, nil }
func (m *memAssetRepo) Delete(_ context.Context, _ int64) error                 { return nil }

type memLogRepo struct{ logs []domain.ActivityLog }

func (m *memLogRepo) Create(_ context.Context, l *domain.ActivityLog) error {
	l.ID = int64(len(m.logs) + 1)
	l.CreatedAt = time.Now()
	m.logs = append(m.logs, *l)
	return nil
}

func (m *memLogRepo) ListByTicket(_ context.Context, ticketID int64) ([]domain.ActivityLog, error) {
	var out []domain.ActivityLog
	for i := len(m.logs) - 1; i >= 0; i-- {
		if m.logs[i].TicketID == ticketID {
			out = append(out, m.logs[i])
		}
	}
	return out, nil
}

// newTestApp wires the tickets handler behind the shared error envelope and a
// middleware that injects a fixed principal, bypassing the JWT layer.
func newTestApp(t *testing.T, user *domain.User) *fiber.App {
	t.Helper()
	tickets := &memTicketRepo{tickets: map[int64]*domain.Ticket{}, nextID: 1}
	assets := &memAssetRepo{assets: map[int64]*domain.Asset{
		1: {ID: 1, Name: "Tower", Type: "tower"},
	}}
	svc := service.NewTicketService(service.TicketDependencies{
		TicketRepo:      tickets,
		AssetRepo:       assets,
		ActivityLogRepo: &memLogRepo{},
		Logger:          zap.NewNop(),
	})
	handler := NewTicketsHandler(svc)

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if err := c.Next(); err != nil {
			domainErr := apperrors.ToDomainError(err)
			return c.Status(domainErr.HTTPStatus).JSON(fiber.Map{"error": fiber.Map{
				"code":    domainErr.Code,
				"message": domainErr.Message,
			}})
		}
		return nil
	})
	app.Use(func(c *fiber.Ctx) error {
		auth.SetPrincipal(c, &auth.Principal{User: user})
		return c.Next()
	})
	app.Post("/tickets", handler.CreateTicket)
	app.Get("/tickets/:id", handler.GetTicket)
	app.Put("/tickets/:id", handler.UpdateTicket)
	app.Get("/tickets/:id/logs", handler.ListLogs)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, payload any) *http.Response {
	t.Helper()
	var body bytes.Buffer
	if payload != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(payload))
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeData(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var envelope struct {
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	return envelope.Data
}

func testEngineer() *domain.User {
	return &domain.User{ID: 7, EngineerID: "ENG-7", FullName: "T. Moyo", Role: domain.RoleEngineer}
}

func TestCreateTicketEndpoint(t *testing.T) {
	app := newTestApp(t, testEngineer())

	resp := doJSON(t, app, fiber.MethodPost, "/tickets", fiber.Map{
		"asset_id":    1,
		"description": "generator failure",
		"urgency":     "High",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	data := decodeData(t, resp)
	assert.Equal(t, "Open", data["status"])
	assert.Equal(t, "High", data["urgency"])
	assert.Equal(t, float64(7), data["created_by_id"])
}

func TestCreateTicketEndpointValidation(t *testing.T) {
	app := newTestApp(t, testEngineer())

	resp := doJSON(t, app, fiber.MethodPost, "/tickets", fiber.Map{"asset_id": 1})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUpdateTicketLogEntryReturnsLog(t *testing.T) {
	app := newTestApp(t, testEngineer())

	resp := doJSON(t, app, fiber.MethodPost, "/tickets", fiber.Map{
		"asset_id":    1,
		"description": "generator failure",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, app, fiber.MethodPut, "/tickets/1", fiber.Map{
		"log_entry": "refuelled and restarted",
		"status":    "Resolved",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	data := decodeData(t, resp)
	assert.Equal(t, "refuelled and restarted", data["log_entry"])

	// The ticket status is untouched by a log-entry payload.
	resp = doJSON(t, app, fiber.MethodGet, "/tickets/1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Open", decodeData(t, resp)["status"])
}

func TestGetTicketNotFoundEnvelope(t *testing.T) {
	app := newTestApp(t, testEngineer())

	resp := doJSON(t, app, fiber.MethodGet, "/tickets/999", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	assert.Equal(t, "NOT_FOUND", envelope.Error.Code)
}
