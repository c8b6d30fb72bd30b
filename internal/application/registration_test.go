package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventbot/internal/domain"
	"eventbot/internal/domain/entities"
)

type fixture struct {
	events        *fakeEventRepo
	registrations *fakeRegistrationRepo
	notifier      *fakeNotifier
	service       *RegistrationService
	eventService  *EventService
}

func newFixture(t *testing.T, adminIDs []string, offerTimeout time.Duration) *fixture {
	t.Helper()
	events := newFakeEventRepo()
	registrations := newFakeRegistrationRepo()
	notifier := &fakeNotifier{}
	return &fixture{
		events:        events,
		registrations: registrations,
		notifier:      notifier,
		service:       NewRegistrationService(registrations, events, notifier, fakeTranslator{}, adminIDs, "de", offerTimeout),
		eventService:  NewEventService(events, registrations, notifier, fakeTranslator{}, "de"),
	}
}

func (f *fixture) openEvent(t *testing.T, seatLimit int) *entities.Event {
	t.Helper()
	event, err := f.eventService.CreateEvent(context.Background(), "Stammtisch", seatLimit)
	require.NoError(t, err)
	_, err = f.eventService.OpenEvent(context.Background(), event.ID)
	require.NoError(t, err)
	event.IsOpen = true
	return event
}

func (f *fixture) register(t *testing.T, eventID int64, userID string, opts ...func(*entities.Registration)) {
	t.Helper()
	template := entities.Registration{Username: userID}
	for _, opt := range opts {
		opt(&template)
	}
	_, err := f.service.Register(context.Background(), eventID, userID, template.Username, template.FullName, template.IsNeuling, template.PartnerName)
	require.NoError(t, err)
	if !template.RegistrationTime.IsZero() {
		f.registrations.registrations[regKey{eventID, userID}].RegistrationTime = template.RegistrationTime
	}
}

func TestRegister(t *testing.T) {
	f := newFixture(t, []string{"admin1"}, 0)
	event := f.openEvent(t, 10)

	r, err := f.service.Register(context.Background(), event.ID, "u1", "user1", "User One", true, " @anna ")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, r.Status)
	assert.True(t, r.IsNeuling)
	assert.False(t, r.IsAdmin)
	assert.Equal(t, "@anna", r.PartnerName, "stored verbatim apart from surrounding whitespace")
	assert.False(t, r.RegistrationTime.IsZero())

	r, err = f.service.Register(context.Background(), event.ID, "admin1", "admin1", "", false, "")
	require.NoError(t, err)
	assert.True(t, r.IsAdmin, "admin flag derives from the configured admin list")
}

func TestRegisterDuplicate(t *testing.T) {
	f := newFixture(t, nil, 0)
	event := f.openEvent(t, 10)

	f.register(t, event.ID, "u1")
	_, err := f.service.Register(context.Background(), event.ID, "u1", "u1", "", false, "")
	assert.ErrorIs(t, err, domain.ErrAlreadyRegistered)
}

func TestRegisterClosedEvent(t *testing.T) {
	f := newFixture(t, nil, 0)
	event, err := f.eventService.CreateEvent(context.Background(), "Stammtisch", 10)
	require.NoError(t, err)

	_, err = f.service.Register(context.Background(), event.ID, "u1", "u1", "", false, "")
	assert.ErrorIs(t, err, domain.ErrEventClosed)

	_, err = f.service.Register(context.Background(), 999, "u1", "u1", "", false, "")
	assert.ErrorIs(t, err, domain.ErrEventNotFound)
}

func TestCancelPendingDoesNotPromote(t *testing.T) {
	f := newFixture(t, nil, 0)
	event := f.openEvent(t, 10)
	f.register(t, event.ID, "u1")

	outcome, err := f.service.Cancel(context.Background(), event.ID, "u1")
	require.NoError(t, err)
	assert.False(t, outcome.AlreadyCancelled)
	assert.False(t, outcome.WasAccepted)
	assert.False(t, outcome.Promoted)
	assert.Equal(t, domain.StatusCancelled, f.registrations.status(event.ID, "u1"))
}

func TestCancelAcceptedPromotesWaiting(t *testing.T) {
	f := newFixture(t, nil, 0)
	event := f.openEvent(t, 1)
	base := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	f.register(t, event.ID, "u1", withTime(base))
	f.register(t, event.ID, "u2", withTime(base.Add(time.Minute)))

	_, err := f.eventService.CloseEvent(context.Background(), event.ID)
	require.NoError(t, err)
	accepted := "u1"
	waiting := "u2"
	if f.registrations.status(event.ID, "u1") != domain.StatusAccepted {
		accepted, waiting = "u2", "u1"
	}
	require.Equal(t, domain.StatusWaiting, f.registrations.status(event.ID, waiting))

	outcome, err := f.service.Cancel(context.Background(), event.ID, accepted)
	require.NoError(t, err)
	assert.True(t, outcome.WasAccepted)
	assert.True(t, outcome.Promoted)
	assert.Equal(t, domain.StatusOffered, f.registrations.status(event.ID, waiting))
	assert.Equal(t, 1, f.notifier.offersTo(waiting))
}

func TestCancelIsIdempotent(t *testing.T) {
	f := newFixture(t, nil, 0)
	event := f.openEvent(t, 1)
	base := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	f.register(t, event.ID, "u1", withTime(base))
	f.register(t, event.ID, "u2", withTime(base.Add(time.Minute)))
	f.register(t, event.ID, "u3", withTime(base.Add(2*time.Minute)))

	_, err := f.eventService.CloseEvent(context.Background(), event.ID)
	require.NoError(t, err)
	var accepted string
	for _, id := range []string{"u1", "u2", "u3"} {
		if f.registrations.status(event.ID, id) == domain.StatusAccepted {
			accepted = id
		}
	}
	require.NotEmpty(t, accepted)

	first, err := f.service.Cancel(context.Background(), event.ID, accepted)
	require.NoError(t, err)
	assert.True(t, first.Promoted)

	// Cancelling again must not free a second seat or promote anyone else.
	second, err := f.service.Cancel(context.Background(), event.ID, accepted)
	require.NoError(t, err)
	assert.True(t, second.AlreadyCancelled)
	assert.False(t, second.Promoted)

	offers := 0
	for _, msg := range f.notifier.sent {
		if msg.offer {
			offers++
		}
	}
	assert.Equal(t, 1, offers, "exactly one promotion per freed seat")
}

func TestCancelUnknownRegistration(t *testing.T) {
	f := newFixture(t, nil, 0)
	event := f.openEvent(t, 1)
	_, err := f.service.Cancel(context.Background(), event.ID, "ghost")
	assert.ErrorIs(t, err, domain.ErrRegistrationNotFound)
}

func TestRespondToOfferAccept(t *testing.T) {
	f := newFixture(t, nil, 0)
	event := f.openEvent(t, 1)
	base := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	f.register(t, event.ID, "u1", withTime(base))
	f.register(t, event.ID, "u2", withTime(base.Add(time.Minute)))

	_, err := f.eventService.CloseEvent(context.Background(), event.ID)
	require.NoError(t, err)
	accepted := "u1"
	waiting := "u2"
	if f.registrations.status(event.ID, "u1") != domain.StatusAccepted {
		accepted, waiting = "u2", "u1"
	}

	_, err = f.service.Cancel(context.Background(), event.ID, accepted)
	require.NoError(t, err)
	require.Equal(t, domain.StatusOffered, f.registrations.status(event.ID, waiting))

	require.NoError(t, f.service.RespondToOffer(context.Background(), event.ID, waiting, true))
	assert.Equal(t, domain.StatusAccepted, f.registrations.status(event.ID, waiting))

	// Answering the same offer again is stale.
	err = f.service.RespondToOffer(context.Background(), event.ID, waiting, true)
	assert.ErrorIs(t, err, domain.ErrOfferNotValid)
}

func TestRespondToOfferDeclinePromotesNext(t *testing.T) {
	f := newFixture(t, nil, 0)
	event := f.openEvent(t, 1)
	base := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	f.register(t, event.ID, "first", withTime(base))
	f.register(t, event.ID, "second", withTime(base.Add(time.Minute)))
	f.register(t, event.ID, "third", withTime(base.Add(2*time.Minute)))
	// The admin flag on "first" makes the accepted seat deterministic.
	f.registrations.registrations[regKey{event.ID, "first"}].IsAdmin = true

	_, err := f.eventService.CloseEvent(context.Background(), event.ID)
	require.NoError(t, err)
	require.Equal(t, domain.StatusAccepted, f.registrations.status(event.ID, "first"))
	require.Equal(t, domain.StatusWaiting, f.registrations.status(event.ID, "second"))
	require.Equal(t, domain.StatusWaiting, f.registrations.status(event.ID, "third"))

	_, err = f.service.Cancel(context.Background(), event.ID, "first")
	require.NoError(t, err)
	require.Equal(t, domain.StatusOffered, f.registrations.status(event.ID, "second"))

	// Declining hands the seat down the waiting list, FIFO.
	require.NoError(t, f.service.RespondToOffer(context.Background(), event.ID, "second", false))
	assert.Equal(t, domain.StatusDeclined, f.registrations.status(event.ID, "second"))
	assert.Equal(t, domain.StatusOffered, f.registrations.status(event.ID, "third"))
	assert.Equal(t, 1, f.notifier.offersTo("third"))
}

func TestRespondToOfferNeverOffered(t *testing.T) {
	f := newFixture(t, nil, 0)
	event := f.openEvent(t, 10)
	f.register(t, event.ID, "u1")

	err := f.service.RespondToOffer(context.Background(), event.ID, "u1", true)
	assert.ErrorIs(t, err, domain.ErrOfferNotValid)
	err = f.service.RespondToOffer(context.Background(), event.ID, "ghost", true)
	assert.ErrorIs(t, err, domain.ErrOfferNotValid)
}

func TestExpireOffersDisabled(t *testing.T) {
	f := newFixture(t, nil, 0)
	expired, err := f.service.ExpireOffers(context.Background(), time.Now())
	require.NoError(t, err)
	assert.Zero(t, expired)
}

func TestExpireOffersDeclinesStaleAndPromotes(t *testing.T) {
	f := newFixture(t, nil, time.Hour)
	event := f.openEvent(t, 1)
	base := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	f.register(t, event.ID, "first", withTime(base))
	f.register(t, event.ID, "second", withTime(base.Add(time.Minute)))
	f.register(t, event.ID, "third", withTime(base.Add(2*time.Minute)))
	f.registrations.registrations[regKey{event.ID, "first"}].IsAdmin = true

	_, err := f.eventService.CloseEvent(context.Background(), event.ID)
	require.NoError(t, err)
	_, err = f.service.Cancel(context.Background(), event.ID, "first")
	require.NoError(t, err)
	require.Equal(t, domain.StatusOffered, f.registrations.status(event.ID, "second"))

	// Fresh offer: nothing expires yet.
	expired, err := f.service.ExpireOffers(context.Background(), time.Now())
	require.NoError(t, err)
	assert.Zero(t, expired)

	// Two hours later the offer is stale; it is declined and the seat moves on.
	expired, err = f.service.ExpireOffers(context.Background(), time.Now().Add(2*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, expired)
	assert.Equal(t, domain.StatusDeclined, f.registrations.status(event.ID, "second"))
	assert.Equal(t, domain.StatusOffered, f.registrations.status(event.ID, "third"))
}
