// FilePath: internal/hubservice/fakes_test.go
package hubservice

import (
	"context"
	"database/sql"
	"sort"
	"time"

	"github.com/luxhub/twilight-hub/internal/auth"
	"github.com/luxhub/twilight-hub/internal/database"
	"github.com/luxhub/twilight-hub/internal/errors"
	"github.com/luxhub/twilight-hub/internal/models"
)

// fakeTx satisfies database.Transaction without a real database. Raw
// statements executed through it are recorded for assertions.
type fakeTx struct {
	committed  bool
	rolledBack bool
	statements []string
	onExec     func(query string, args ...interface{})
}

func (t *fakeTx) Commit() error   { t.committed = true; return nil }
func (t *fakeTx) Rollback() error { t.rolledBack = true; return nil }

func (t *fakeTx) ExecContext(_ context.Context, query string, args ...interface{}) (sql.Result, error) {
	t.statements = append(t.statements, query)
	if t.onExec != nil {
		t.onExec(query, args...)
	}
	return nil, nil
}

type fakeBase struct {
	tx *fakeTx
}

func (b *fakeBase) BeginTx(context.Context) (database.Transaction, error) {
	if b.tx == nil {
		b.tx = &fakeTx{}
	}
	return b.tx, nil
}

// fakeEventRepo is an in-memory append-only event log ordered like the
// postgres implementation: created_at desc, id desc.
type fakeEventRepo struct {
	fakeBase
	rows   []*models.SensorEvent
	nextID int64
	now    time.Time
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{nextID: 1, now: time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC)}
}

func (r *fakeEventRepo) Append(_ context.Context, event *models.SensorEvent) error {
	event.ID = r.nextID
	r.nextID++
	r.now = r.now.Add(time.Minute)
	event.CreatedAt = r.now
	r.rows = append(r.rows, event)
	return nil
}

func (r *fakeEventRepo) sorted() []*models.SensorEvent {
	out := make([]*models.SensorEvent, len(r.rows))
	copy(out, r.rows)
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

func (r *fakeEventRepo) Latest(context.Context) (*models.SensorEvent, error) {
	if len(r.rows) == 0 {
		return nil, errors.NewNotFoundError("no sensor events recorded yet", nil)
	}
	return r.sorted()[0], nil
}

func (r *fakeEventRepo) List(_ context.Context, page, limit int) ([]*models.SensorEvent, int64, error) {
	rows := r.sorted()
	total := int64(len(rows))
	offset := (page - 1) * limit
	if offset >= len(rows) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(rows) {
		end = len(rows)
	}
	return rows[offset:end], total, nil
}

func (r *fakeEventRepo) ByDateRange(_ context.Context, start, end time.Time) ([]*models.SensorEvent, error) {
	var out []*models.SensorEvent
	for _, row := range r.sorted() {
		if !row.CreatedAt.Before(start) && !row.CreatedAt.After(end) {
			out = append(out, row)
		}
	}
	return out, nil
}

func (r *fakeEventRepo) ClearAllButLatest(ctx context.Context) (int64, error) {
	if len(r.rows) <= 1 {
		return 0, nil
	}
	latest, _ := r.Latest(ctx)
	deleted := int64(len(r.rows) - 1)
	r.rows = []*models.SensorEvent{latest}
	return deleted, nil
}

func (r *fakeEventRepo) Stats(context.Context) (*models.SensorStatsReport, error) {
	stats := &models.SensorStats{TotalRecords: int64(len(r.rows))}
	relay := map[bool]int64{}
	modes := map[models.Mode]int64{}
	for i, row := range r.rows {
		if i == 0 || row.Lux > stats.MaxLux {
			stats.MaxLux = row.Lux
		}
		if i == 0 || row.Lux < stats.MinLux {
			stats.MinLux = row.Lux
		}
		stats.AvgLux += row.Lux
		relay[row.RelayStatus]++
		modes[row.Mode]++
	}
	if len(r.rows) > 0 {
		stats.AvgLux /= float64(len(r.rows))
	}
	report := &models.SensorStatsReport{Stats: stats}
	for status, count := range relay {
		report.RelayDistribution = append(report.RelayDistribution, models.RelayCount{RelayStatus: status, Count: count})
	}
	for mode, count := range modes {
		report.ModeDistribution = append(report.ModeDistribution, models.ModeCount{Mode: mode, Count: count})
	}
	return report, nil
}

func (r *fakeEventRepo) Count(context.Context) (int64, error) {
	return int64(len(r.rows)), nil
}

// fakeUserRepo keeps accounts in memory keyed by id.
type fakeUserRepo struct {
	fakeBase
	users  map[int64]*models.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[int64]*models.User{}, nextID: 1}
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return errors.NewConflictError("email is already registered", nil)
		}
	}
	user.ID = r.nextID
	r.nextID++
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) Get(_ context.Context, id int64) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, errors.NewNotFoundError("user not found", nil)
	}
	clone := *user
	return &clone, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, errors.NewNotFoundError("user not found", nil)
}

func (r *fakeUserRepo) Update(_ context.Context, user *models.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return errors.NewNotFoundError("user not found", nil)
	}
	user.UpdatedAt = time.Now()
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.users[id]; !ok {
		return errors.NewNotFoundError("user not found", nil)
	}
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) List(context.Context) ([]*models.User, error) {
	out := make([]*models.User, 0, len(r.users))
	for _, user := range r.users {
		clone := *user
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

type fakeDeviceRepo struct {
	fakeBase
	devices map[int64]*models.Device
	nextID  int64
}

func newFakeDeviceRepo() *fakeDeviceRepo {
	return &fakeDeviceRepo{devices: map[int64]*models.Device{}, nextID: 1}
}

func (r *fakeDeviceRepo) Create(_ context.Context, device *models.Device) error {
	for _, existing := range r.devices {
		if existing.DeviceID == device.DeviceID {
			return errors.NewConflictError("device id is already registered", nil)
		}
	}
	device.ID = r.nextID
	r.nextID++
	clone := *device
	r.devices[device.ID] = &clone
	return nil
}

func (r *fakeDeviceRepo) Get(_ context.Context, id int64) (*models.Device, error) {
	device, ok := r.devices[id]
	if !ok {
		return nil, errors.NewNotFoundError("device not found", nil)
	}
	clone := *device
	return &clone, nil
}

func (r *fakeDeviceRepo) GetByDeviceID(_ context.Context, deviceID string) (*models.Device, error) {
	for _, device := range r.devices {
		if device.DeviceID == deviceID {
			clone := *device
			return &clone, nil
		}
	}
	return nil, errors.NewNotFoundError("device not found", nil)
}

func (r *fakeDeviceRepo) Update(_ context.Context, device *models.Device) error {
	if _, ok := r.devices[device.ID]; !ok {
		return errors.NewNotFoundError("device not found", nil)
	}
	clone := *device
	r.devices[device.ID] = &clone
	return nil
}

func (r *fakeDeviceRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.devices[id]; !ok {
		return errors.NewNotFoundError("device not found", nil)
	}
	delete(r.devices, id)
	return nil
}

func (r *fakeDeviceRepo) List(context.Context) ([]*models.Device, error) {
	out := make([]*models.Device, 0, len(r.devices))
	for _, device := range r.devices {
		clone := *device
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

type fakeNotificationRepo struct {
	fakeBase
	notifications map[int64]*models.Notification
	nextID        int64
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{notifications: map[int64]*models.Notification{}, nextID: 1}
}

func (r *fakeNotificationRepo) Create(_ context.Context, n *models.Notification) error {
	n.ID = r.nextID
	r.nextID++
	n.CreatedAt = time.Now()
	clone := *n
	r.notifications[n.ID] = &clone
	return nil
}

func (r *fakeNotificationRepo) GetForUser(_ context.Context, id, userID int64) (*models.Notification, error) {
	n, ok := r.notifications[id]
	if !ok || n.UserID != userID {
		return nil, errors.NewNotFoundError("notification not found", nil)
	}
	clone := *n
	return &clone, nil
}

func (r *fakeNotificationRepo) ListByUser(_ context.Context, userID int64) ([]*models.Notification, error) {
	var out []*models.Notification
	for _, n := range r.notifications {
		if n.UserID == userID {
			clone := *n
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *fakeNotificationRepo) MarkRead(_ context.Context, id, userID int64) error {
	n, ok := r.notifications[id]
	if !ok || n.UserID != userID {
		return errors.NewNotFoundError("notification not found", nil)
	}
	n.IsRead = true
	return nil
}

func (r *fakeNotificationRepo) MarkAllRead(_ context.Context, userID int64) error {
	for _, n := range r.notifications {
		if n.UserID == userID {
			n.IsRead = true
		}
	}
	return nil
}

func (r *fakeNotificationRepo) Delete(_ context.Context, id, userID int64) error {
	n, ok := r.notifications[id]
	if !ok || n.UserID != userID {
		return errors.NewNotFoundError("notification not found", nil)
	}
	delete(r.notifications, id)
	return nil
}

func (r *fakeNotificationRepo) DeleteByUser(_ context.Context, userID int64, _ database.Transaction) error {
	for id, n := range r.notifications {
		if n.UserID == userID {
			delete(r.notifications, id)
		}
	}
	return nil
}

// fakeDenylist records revocations in memory.
type fakeDenylist struct {
	revoked map[string]time.Time
}

func newFakeDenylist() *fakeDenylist {
	return &fakeDenylist{revoked: map[string]time.Time{}}
}

func (d *fakeDenylist) Revoke(_ context.Context, tokenID string, until time.Time) error {
	d.revoked[tokenID] = until
	return nil
}

func (d *fakeDenylist) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	_, ok := d.revoked[tokenID]
	return ok, nil
}

type fixture struct {
	svc           *HubService
	events        *fakeEventRepo
	users         *fakeUserRepo
	devices       *fakeDeviceRepo
	notifications *fakeNotificationRepo
	denylist      *fakeDenylist
}

func newFixture() *fixture {
	events := newFakeEventRepo()
	users := newFakeUserRepo()
	devices := newFakeDeviceRepo()
	notifications := newFakeNotificationRepo()
	denylist := newFakeDenylist()

	// The user-deletion cascade issues a raw delete through the
	// transaction; mirror it against the in-memory store
	users.tx = &fakeTx{onExec: func(_ string, args ...interface{}) {
		if id, ok := args[0].(int64); ok {
			delete(users.users, id)
		}
	}}

	svc := New(events, users, devices, notifications,
		auth.NewTokenManager("test-secret", time.Hour), denylist, 4)

	return &fixture{
		svc:           svc,
		events:        events,
		users:         users,
		devices:       devices,
		notifications: notifications,
		denylist:      denylist,
	}
}
