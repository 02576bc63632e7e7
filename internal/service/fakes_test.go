package service

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/owenj053/netone-backend/internal/domain"
	"github.com/owenj053/netone-backend/internal/events"
	"github.com/owenj053/netone-backend/internal/repository"
)

// In-memory repository fakes. They hold copies keyed by id and mimic the
// error contracts of the pgx-backed implementations, including the version
// guard on ticket updates.

type fakeTicketRepo struct {
	tickets map[int64]*domain.Ticket
	nextID  int64

	// conflictsLeft forces Update to fail with ErrVersionConflict the given
	// number of times before succeeding.
	conflictsLeft int
	updateCalls   int
}

func newFakeTicketRepo() *fakeTicketRepo {
	return &fakeTicketRepo{tickets: map[int64]*domain.Ticket{}, nextID: 1}
}

func (f *fakeTicketRepo) Create(_ context.Context, ticket *domain.Ticket) error {
	ticket.ID = f.nextID
	f.nextID++
	ticket.Version = 1
	ticket.CreatedAt = time.Now()
	stored := *ticket
	f.tickets[ticket.ID] = &stored
	return nil
}

func (f *fakeTicketRepo) Update(_ context.Context, ticket *domain.Ticket) error {
	f.updateCalls++
	stored, ok := f.tickets[ticket.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	if f.conflictsLeft > 0 {
		f.conflictsLeft--
		return repository.ErrVersionConflict
	}
	if stored.Version != ticket.Version {
		return repository.ErrVersionConflict
	}
	copied := *ticket
	copied.Version++
	f.tickets[ticket.ID] = &copied
	ticket.Version++
	return nil
}

func (f *fakeTicketRepo) UpdateWeather(_ context.Context, id int64, snapshot *domain.WeatherSnapshot) error {
	stored, ok := f.tickets[id]
	if !ok {
		return pgx.ErrNoRows
	}
	stored.Weather = snapshot
	return nil
}

func (f *fakeTicketRepo) GetByID(_ context.Context, id int64) (*domain.Ticket, error) {
	stored, ok := f.tickets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *stored
	return &copied, nil
}

func (f *fakeTicketRepo) List(_ context.Context, filter repository.TicketFilter) ([]domain.Ticket, error) {
	var result []domain.Ticket
	for _, stored := range f.tickets {
		if filter.AssignedToID != nil {
			if stored.AssignedToID == nil || *stored.AssignedToID != *filter.AssignedToID {
				continue
			}
		}
		if filter.CreatedByID != nil && stored.CreatedByID != *filter.CreatedByID {
			continue
		}
		result = append(result, *stored)
	}
	return result, nil
}

type fakeAssetRepo struct {
	assets map[int64]*domain.Asset
	nextID int64
}

func newFakeAssetRepo() *fakeAssetRepo {
	return &fakeAssetRepo{assets: map[int64]*domain.Asset{}, nextID: 1}
}

func (f *fakeAssetRepo) Create(_ context.Context, asset *domain.Asset) error {
	asset.ID = f.nextID
	f.nextID++
	asset.CreatedAt = time.Now()
	stored := *asset
	f.assets[asset.ID] = &stored
	return nil
}

func (f *fakeAssetRepo) GetByID(_ context.Context, id int64) (*domain.Asset, error) {
	stored, ok := f.assets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *stored
	return &copied, nil
}

func (f *fakeAssetRepo) List(_ context.Context) ([]domain.Asset, error) {
	var result []domain.Asset
	for _, stored := range f.assets {
		result = append(result, *stored)
	}
	return result, nil
}

func (f *fakeAssetRepo) CountChildren(_ context.Context, id int64) (int64, error) {
	var count int64
	for _, stored := range f.assets {
		if stored.ParentAssetID != nil && *stored.ParentAssetID == id {
			count++
		}
	}
	return count, nil
}

func (f *fakeAssetRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.assets[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.assets, id)
	return nil
}

func (f *fakeAssetRepo) add(lat, lon *float64) *domain.Asset {
	asset := &domain.Asset{Name: "Tower", Type: "tower", Latitude: lat, Longitude: lon}
	_ = f.Create(context.Background(), asset)
	return asset
}

type fakeActivityLogRepo struct {
	logs   []domain.ActivityLog
	nextID int64
}

func newFakeActivityLogRepo() *fakeActivityLogRepo {
	return &fakeActivityLogRepo{nextID: 1}
}

func (f *fakeActivityLogRepo) Create(_ context.Context, log *domain.ActivityLog) error {
	log.ID = f.nextID
	f.nextID++
	log.CreatedAt = time.Now()
	f.logs = append(f.logs, *log)
	return nil
}

func (f *fakeActivityLogRepo) ListByTicket(_ context.Context, ticketID int64) ([]domain.ActivityLog, error) {
	var result []domain.ActivityLog
	for i := len(f.logs) - 1; i >= 0; i-- {
		if f.logs[i].TicketID == ticketID {
			result = append(result, f.logs[i])
		}
	}
	return result, nil
}

type fakePermitRepo struct {
	permits map[int64]*domain.Permit
	byTkt   map[int64]int64
	nextID  int64
}

func newFakePermitRepo() *fakePermitRepo {
	return &fakePermitRepo{permits: map[int64]*domain.Permit{}, byTkt: map[int64]int64{}, nextID: 1}
}

func (f *fakePermitRepo) Create(_ context.Context, permit *domain.Permit) error {
	if _, exists := f.byTkt[permit.TicketID]; exists {
		return &pgconn.PgError{Code: "23505", ConstraintName: "permits_ticket_id_key"}
	}
	permit.ID = f.nextID
	f.nextID++
	permit.IssuedAt = time.Now()
	stored := *permit
	f.permits[permit.ID] = &stored
	f.byTkt[permit.TicketID] = permit.ID
	return nil
}

func (f *fakePermitRepo) Update(_ context.Context, permit *domain.Permit) error {
	if _, ok := f.permits[permit.ID]; !ok {
		return pgx.ErrNoRows
	}
	stored := *permit
	f.permits[permit.ID] = &stored
	return nil
}

func (f *fakePermitRepo) GetByID(_ context.Context, id int64) (*domain.Permit, error) {
	stored, ok := f.permits[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *stored
	return &copied, nil
}

type fakeAuditRepo struct {
	entries []domain.AuditEntry
	fail    bool
}

func (f *fakeAuditRepo) Create(_ context.Context, entry *domain.AuditEntry) error {
	if f.fail {
		return &pgconn.PgError{Code: "53300", Message: "too many connections"}
	}
	entry.ID = int64(len(f.entries) + 1)
	entry.CreatedAt = time.Now()
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeAuditRepo) actions() []string {
	out := make([]string, 0, len(f.entries))
	for _, entry := range f.entries {
		out = append(out, entry.Action)
	}
	return out
}

type fakeLocationRepo struct {
	locations  map[int64]*domain.EngineerLocation
	candidates []domain.DispatchCandidate
}

func newFakeLocationRepo() *fakeLocationRepo {
	return &fakeLocationRepo{locations: map[int64]*domain.EngineerLocation{}}
}

func (f *fakeLocationRepo) Upsert(_ context.Context, loc *domain.EngineerLocation) error {
	loc.LastUpdatedAt = time.Now()
	stored := *loc
	f.locations[loc.UserID] = &stored
	return nil
}

func (f *fakeLocationRepo) DispatchCandidates(_ context.Context) ([]domain.DispatchCandidate, error) {
	return f.candidates, nil
}

type fakeUserRepo struct {
	users  map[int64]*domain.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[int64]*domain.User{}, nextID: 1}
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	for _, existing := range f.users {
		if existing.EngineerID == user.EngineerID {
			return &pgconn.PgError{Code: "23505", ConstraintName: "users_engineer_id_key"}
		}
	}
	user.ID = f.nextID
	f.nextID++
	user.CreatedAt = time.Now()
	stored := *user
	f.users[user.ID] = &stored
	return nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := f.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	stored := *user
	f.users[user.ID] = &stored
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	stored, ok := f.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *stored
	return &copied, nil
}

func (f *fakeUserRepo) GetByEngineerID(_ context.Context, engineerID string) (*domain.User, error) {
	for _, stored := range f.users {
		if stored.EngineerID == engineerID {
			copied := *stored
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserRepo) ListByRole(_ context.Context, role domain.Role) ([]domain.User, error) {
	var result []domain.User
	for _, stored := range f.users {
		if stored.Role.Is(role) {
			result = append(result, *stored)
		}
	}
	return result, nil
}

// recordingDispatcher captures published events for assertions.
type recordingDispatcher struct {
	published []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.published = append(d.published, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *recordingDispatcher) types() []events.EventType {
	out := make([]events.EventType, 0, len(d.published))
	for _, event := range d.published {
		out = append(out, event.Type)
	}
	return out
}
