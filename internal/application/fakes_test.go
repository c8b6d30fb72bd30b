package application

import (
	"context"
	"sort"
	"time"

	"eventbot/internal/domain"
	"eventbot/internal/domain/entities"
	"eventbot/internal/ports/output"
)

// In-memory port implementations for service tests.

type fakeEventRepo struct {
	events map[int64]*entities.Event
	nextID int64
}

var _ output.EventRepository = (*fakeEventRepo)(nil)

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{events: make(map[int64]*entities.Event), nextID: 1}
}

func (f *fakeEventRepo) Create(_ context.Context, event *entities.Event) error {
	event.ID = f.nextID
	f.nextID++
	event.CreatedAt = time.Now()
	stored := *event
	f.events[event.ID] = &stored
	return nil
}

func (f *fakeEventRepo) FindByID(_ context.Context, id int64) (*entities.Event, error) {
	event, ok := f.events[id]
	if !ok {
		return nil, domain.ErrEventNotFound
	}
	copied := *event
	return &copied, nil
}

func (f *fakeEventRepo) FindAll(_ context.Context) ([]entities.Event, error) {
	return f.filter(func(*entities.Event) bool { return true }), nil
}

func (f *fakeEventRepo) FindByOpen(_ context.Context, isOpen bool) ([]entities.Event, error) {
	return f.filter(func(e *entities.Event) bool { return e.IsOpen == isOpen }), nil
}

func (f *fakeEventRepo) SetOpen(_ context.Context, id int64, isOpen bool) error {
	event, ok := f.events[id]
	if !ok {
		return domain.ErrEventNotFound
	}
	event.IsOpen = isOpen
	return nil
}

func (f *fakeEventRepo) filter(keep func(*entities.Event) bool) []entities.Event {
	var out []entities.Event
	for _, e := range f.events {
		if keep(e) {
			out = append(out, *e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

type regKey struct {
	eventID int64
	userID  string
}

type fakeRegistrationRepo struct {
	registrations map[regKey]*entities.Registration
	nextID        int64

	failUpdateFor map[string]bool // user IDs whose UpdateStatus fails
}

var _ output.RegistrationRepository = (*fakeRegistrationRepo)(nil)

func newFakeRegistrationRepo() *fakeRegistrationRepo {
	return &fakeRegistrationRepo{
		registrations: make(map[regKey]*entities.Registration),
		nextID:        1,
		failUpdateFor: make(map[string]bool),
	}
}

func (f *fakeRegistrationRepo) Create(_ context.Context, registration *entities.Registration) error {
	key := regKey{registration.EventID, registration.UserID}
	if _, exists := f.registrations[key]; exists {
		return domain.ErrAlreadyRegistered
	}
	registration.ID = f.nextID
	f.nextID++
	stored := *registration
	f.registrations[key] = &stored
	return nil
}

func (f *fakeRegistrationRepo) FindByEventIDAndUserID(_ context.Context, eventID int64, userID string) (*entities.Registration, error) {
	r, ok := f.registrations[regKey{eventID, userID}]
	if !ok {
		return nil, domain.ErrRegistrationNotFound
	}
	copied := *r
	return &copied, nil
}

func (f *fakeRegistrationRepo) FindByEventID(_ context.Context, eventID int64) ([]entities.Registration, error) {
	return f.filter(func(r *entities.Registration) bool { return r.EventID == eventID }), nil
}

func (f *fakeRegistrationRepo) FindByUserID(_ context.Context, userID string) ([]entities.Registration, error) {
	return f.filter(func(r *entities.Registration) bool { return r.UserID == userID }), nil
}

func (f *fakeRegistrationRepo) FindPending(_ context.Context, eventID int64) ([]entities.Registration, error) {
	return f.filter(func(r *entities.Registration) bool {
		return r.EventID == eventID && r.Status == domain.StatusPending
	}), nil
}

func (f *fakeRegistrationRepo) FindWaiting(_ context.Context, eventID int64) ([]entities.Registration, error) {
	return f.filter(func(r *entities.Registration) bool {
		return r.EventID == eventID && r.Status == domain.StatusWaiting
	}), nil
}

func (f *fakeRegistrationRepo) FindOfferedBefore(_ context.Context, cutoff time.Time) ([]entities.Registration, error) {
	return f.filter(func(r *entities.Registration) bool {
		return r.Status == domain.StatusOffered && r.OfferedAt.Before(cutoff)
	}), nil
}

func (f *fakeRegistrationRepo) UpdateStatus(_ context.Context, eventID int64, userID string, status string) error {
	if f.failUpdateFor[userID] {
		return context.DeadlineExceeded
	}
	r, ok := f.registrations[regKey{eventID, userID}]
	if !ok {
		return domain.ErrRegistrationNotFound
	}
	r.Status = status
	r.UpdatedAt = time.Now()
	return nil
}

func (f *fakeRegistrationRepo) MarkOffered(_ context.Context, eventID int64, userID string, offeredAt time.Time) error {
	r, ok := f.registrations[regKey{eventID, userID}]
	if !ok {
		return domain.ErrRegistrationNotFound
	}
	r.Status = domain.StatusOffered
	r.OfferedAt = offeredAt
	r.UpdatedAt = time.Now()
	return nil
}

func (f *fakeRegistrationRepo) filter(keep func(*entities.Registration) bool) []entities.Registration {
	var out []entities.Registration
	for _, r := range f.registrations {
		if keep(r) {
			out = append(out, *r)
		}
	}
	// Registration time ascending, the promotion order.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].RegistrationTime.Before(out[j].RegistrationTime)
	})
	return out
}

func (f *fakeRegistrationRepo) status(eventID int64, userID string) string {
	r, ok := f.registrations[regKey{eventID, userID}]
	if !ok {
		return ""
	}
	return r.Status
}

type notification struct {
	userID  string
	content string
	offer   bool
	eventID int64
}

type fakeNotifier struct {
	sent []notification
}

var _ output.Notifier = (*fakeNotifier)(nil)

func (f *fakeNotifier) Notify(userID, content string) {
	f.sent = append(f.sent, notification{userID: userID, content: content})
}

func (f *fakeNotifier) NotifyOffer(userID string, eventID int64, content string) {
	f.sent = append(f.sent, notification{userID: userID, content: content, offer: true, eventID: eventID})
}

func (f *fakeNotifier) offersTo(userID string) int {
	n := 0
	for _, msg := range f.sent {
		if msg.offer && msg.userID == userID {
			n++
		}
	}
	return n
}

type fakeTranslator struct{}

var _ output.T = fakeTranslator{}

func (fakeTranslator) T(_, key string, _ map[string]any) string { return key }
