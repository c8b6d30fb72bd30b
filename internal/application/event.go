package application

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	"eventbot/internal/domain"
	"eventbot/internal/domain/entities"
	"eventbot/internal/ports/input"
	"eventbot/internal/ports/output"
)

var _ input.EventUseCase = (*EventService)(nil)

type EventService struct {
	eventRepo        output.EventRepository
	registrationRepo output.RegistrationRepository
	notifier         output.Notifier
	translator       output.T
	locale           string

	// closeLocks serializes allocation runs per event: CloseEvent
	// reads-then-writes the whole pending set without store isolation.
	closeLocks sync.Map // event ID -> *sync.Mutex
}

func NewEventService(
	eventRepo output.EventRepository,
	registrationRepo output.RegistrationRepository,
	notifier output.Notifier,
	translator output.T,
	locale string,
) *EventService {
	return &EventService{
		eventRepo:        eventRepo,
		registrationRepo: registrationRepo,
		notifier:         notifier,
		translator:       translator,
		locale:           locale,
	}
}

// CreateEvent creates a closed event with a fixed seat limit.
func (s *EventService) CreateEvent(ctx context.Context, name string, seatLimit int) (*entities.Event, error) {
	if seatLimit <= 0 {
		return nil, domain.ErrInvalidSeatLimit
	}
	event := &entities.Event{
		Name:      strings.TrimSpace(name),
		IsOpen:    false,
		SeatLimit: seatLimit,
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	return event, nil
}

func (s *EventService) OpenEvent(ctx context.Context, eventID int64) (*entities.Event, error) {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return nil, domain.ErrEventNotFound
	}
	if err := s.eventRepo.SetOpen(ctx, eventID, true); err != nil {
		return nil, fmt.Errorf("open event: %w", err)
	}
	event.IsOpen = true
	return event, nil
}

// CloseEvent closes registration and runs the seat allocation over all
// pending registrations. Runs for the same event are serialized; re-running
// after the pending set has drained is a no-op. Per-user persistence or
// notification failures are logged and never abort the batch.
func (s *EventService) CloseEvent(ctx context.Context, eventID int64) (*domain.AllocationSummary, error) {
	mu := s.closeLock(eventID)
	mu.Lock()
	defer mu.Unlock()

	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return nil, domain.ErrEventNotFound
	}
	if event.IsOpen {
		if err := s.eventRepo.SetOpen(ctx, eventID, false); err != nil {
			return nil, fmt.Errorf("close event: %w", err)
		}
	}

	pending, err := s.registrationRepo.FindPending(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("load pending registrations: %w", err)
	}

	alloc := Allocate(pending, event.SeatLimit)

	for _, r := range alloc.Accepted {
		if err := s.registrationRepo.UpdateStatus(ctx, eventID, r.UserID, domain.StatusAccepted); err != nil {
			log.Printf("❌ Persist ACCEPTED (event=%d, user=%s): %v", eventID, r.UserID, err)
			continue
		}
		key := "dm.allocation.accepted"
		data := map[string]any{"Event": event.Name}
		if guest, ok := alloc.PhantomGuests[r.UserID]; ok {
			key = "dm.allocation.accepted_with_guest"
			data["Guest"] = guest
		}
		s.notifier.Notify(r.UserID, s.translator.T(s.locale, key, data))
	}
	for _, r := range alloc.Waiting {
		if err := s.registrationRepo.UpdateStatus(ctx, eventID, r.UserID, domain.StatusWaiting); err != nil {
			log.Printf("❌ Persist WAITING (event=%d, user=%s): %v", eventID, r.UserID, err)
			continue
		}
		s.notifier.Notify(r.UserID, s.translator.T(s.locale, "dm.allocation.waiting", map[string]any{"Event": event.Name}))
	}

	return &domain.AllocationSummary{
		EventID:    eventID,
		SeatsTaken: alloc.SeatsTaken,
		Accepted:   len(alloc.Accepted),
		Waiting:    len(alloc.Waiting),
	}, nil
}

func (s *EventService) GetEvent(ctx context.Context, eventID int64) (*entities.Event, error) {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return nil, domain.ErrEventNotFound
	}
	return event, nil
}

func (s *EventService) ListEvents(ctx context.Context) ([]entities.Event, error) {
	return s.eventRepo.FindAll(ctx)
}

func (s *EventService) ListEventsByOpen(ctx context.Context, isOpen bool) ([]entities.Event, error) {
	return s.eventRepo.FindByOpen(ctx, isOpen)
}

func (s *EventService) ListRegistrations(ctx context.Context, eventID int64) ([]entities.Registration, error) {
	if _, err := s.eventRepo.FindByID(ctx, eventID); err != nil {
		return nil, domain.ErrEventNotFound
	}
	return s.registrationRepo.FindByEventID(ctx, eventID)
}

func (s *EventService) closeLock(eventID int64) *sync.Mutex {
	v, _ := s.closeLocks.LoadOrStore(eventID, &sync.Mutex{})
	return v.(*sync.Mutex)
}
