package application

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"eventbot/internal/domain"
	"eventbot/internal/domain/entities"
	"eventbot/internal/ports/input"
	"eventbot/internal/ports/output"
)

var _ input.RegistrationUseCase = (*RegistrationService)(nil)

type RegistrationService struct {
	registrationRepo output.RegistrationRepository
	eventRepo        output.EventRepository
	notifier         output.Notifier
	translator       output.T
	adminIDs         map[string]bool
	locale           string
	offerTimeout     time.Duration // 0 = offers never expire
}

func NewRegistrationService(
	registrationRepo output.RegistrationRepository,
	eventRepo output.EventRepository,
	notifier output.Notifier,
	translator output.T,
	adminIDs []string,
	locale string,
	offerTimeout time.Duration,
) *RegistrationService {
	admins := make(map[string]bool, len(adminIDs))
	for _, id := range adminIDs {
		admins[id] = true
	}
	return &RegistrationService{
		registrationRepo: registrationRepo,
		eventRepo:        eventRepo,
		notifier:         notifier,
		translator:       translator,
		adminIDs:         admins,
		locale:           locale,
		offerTimeout:     offerTimeout,
	}
}

// Register stores a PENDING registration for an open event. The admin
// priority flag is derived from the configured admin list.
func (s *RegistrationService) Register(ctx context.Context, eventID int64, userID, username, fullName string, isNeuling bool, partnerName string) (*entities.Registration, error) {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return nil, domain.ErrEventNotFound
	}
	if !event.IsOpen {
		return nil, domain.ErrEventClosed
	}
	if existing, _ := s.registrationRepo.FindByEventIDAndUserID(ctx, eventID, userID); existing != nil {
		return nil, domain.ErrAlreadyRegistered
	}
	registration := &entities.Registration{
		EventID:          eventID,
		UserID:           userID,
		Username:         username,
		FullName:         fullName,
		IsAdmin:          s.adminIDs[userID],
		IsNeuling:        isNeuling,
		PartnerName:      strings.TrimSpace(partnerName),
		Status:           domain.StatusPending,
		RegistrationTime: time.Now(),
	}
	if err := s.registrationRepo.Create(ctx, registration); err != nil {
		// The unique (user, event) constraint backstops the lookup above.
		if errors.Is(err, domain.ErrAlreadyRegistered) {
			return nil, domain.ErrAlreadyRegistered
		}
		return nil, fmt.Errorf("create registration: %w", err)
	}
	return registration, nil
}

// Cancel marks the registration CANCELLED. Cancelling an already cancelled
// registration succeeds as a no-op; only an ACCEPTED cancellation frees a
// confirmed seat and promotes the next waiting registrant.
func (s *RegistrationService) Cancel(ctx context.Context, eventID int64, userID string) (domain.CancelOutcome, error) {
	registration, err := s.registrationRepo.FindByEventIDAndUserID(ctx, eventID, userID)
	if err != nil {
		return domain.CancelOutcome{}, domain.ErrRegistrationNotFound
	}
	wasAccepted := registration.Status == domain.StatusAccepted
	outcome, err := domain.Transition(registration, domain.StatusCancelled)
	if err != nil {
		return domain.CancelOutcome{}, err
	}
	if outcome == domain.TransitionNoop {
		return domain.CancelOutcome{AlreadyCancelled: true}, nil
	}
	if err := s.registrationRepo.UpdateStatus(ctx, eventID, userID, domain.StatusCancelled); err != nil {
		return domain.CancelOutcome{}, fmt.Errorf("persist cancellation: %w", err)
	}
	result := domain.CancelOutcome{WasAccepted: wasAccepted}
	if wasAccepted {
		result.Promoted = s.promoteNext(ctx, eventID)
	}
	return result, nil
}

// RespondToOffer resolves an outstanding seat offer. A response against a
// registration that is no longer OFFERED is rejected as a stale offer.
func (s *RegistrationService) RespondToOffer(ctx context.Context, eventID int64, userID string, accept bool) error {
	registration, err := s.registrationRepo.FindByEventIDAndUserID(ctx, eventID, userID)
	if err != nil {
		return domain.ErrOfferNotValid
	}
	if registration.Status != domain.StatusOffered {
		return domain.ErrOfferNotValid
	}
	next := domain.StatusDeclined
	if accept {
		next = domain.StatusAccepted
	}
	if _, err := domain.Transition(registration, next); err != nil {
		return err
	}
	if err := s.registrationRepo.UpdateStatus(ctx, eventID, userID, next); err != nil {
		return fmt.Errorf("persist offer response: %w", err)
	}
	if !accept {
		s.promoteNext(ctx, eventID)
	}
	return nil
}

func (s *RegistrationService) UserRegistrations(ctx context.Context, userID string) ([]entities.Registration, error) {
	return s.registrationRepo.FindByUserID(ctx, userID)
}

func (s *RegistrationService) GetRegistration(ctx context.Context, eventID int64, userID string) (*entities.Registration, error) {
	registration, err := s.registrationRepo.FindByEventIDAndUserID(ctx, eventID, userID)
	if err != nil {
		return nil, domain.ErrRegistrationNotFound
	}
	return registration, nil
}

// ExpireOffers declines offers older than the configured timeout and
// promotes the next waiting registrants. A zero timeout disables expiry:
// an unresponsive offeree then holds the seat indefinitely.
func (s *RegistrationService) ExpireOffers(ctx context.Context, now time.Time) (int, error) {
	if s.offerTimeout <= 0 {
		return 0, nil
	}
	stale, err := s.registrationRepo.FindOfferedBefore(ctx, now.Add(-s.offerTimeout))
	if err != nil {
		return 0, fmt.Errorf("load stale offers: %w", err)
	}
	expired := 0
	for i := range stale {
		r := &stale[i]
		if _, err := domain.Transition(r, domain.StatusDeclined); err != nil {
			continue
		}
		if err := s.registrationRepo.UpdateStatus(ctx, r.EventID, r.UserID, domain.StatusDeclined); err != nil {
			log.Printf("❌ Persist offer expiry (event=%d, user=%s): %v", r.EventID, r.UserID, err)
			continue
		}
		expired++
		s.notifier.Notify(r.UserID, s.translator.T(s.locale, "dm.offer.expired", nil))
		s.promoteNext(ctx, r.EventID)
	}
	return expired, nil
}

// promoteNext offers the freed seat to the head of the waiting list (FIFO by
// registration time). Exactly one offer goes out per freed seat; failures are
// logged and reported as "no promotion" rather than escalated.
func (s *RegistrationService) promoteNext(ctx context.Context, eventID int64) bool {
	waiting, err := s.registrationRepo.FindWaiting(ctx, eventID)
	if err != nil {
		log.Printf("❌ Load waiting list (event=%d): %v", eventID, err)
		return false
	}
	if len(waiting) == 0 {
		return false
	}
	next := &waiting[0]
	if _, err := domain.Transition(next, domain.StatusOffered); err != nil {
		return false
	}
	if err := s.registrationRepo.MarkOffered(ctx, eventID, next.UserID, time.Now()); err != nil {
		log.Printf("❌ Persist OFFERED (event=%d, user=%s): %v", eventID, next.UserID, err)
		return false
	}
	eventName := ""
	if event, err := s.eventRepo.FindByID(ctx, eventID); err == nil {
		eventName = event.Name
	}
	s.notifier.NotifyOffer(next.UserID, eventID, s.translator.T(s.locale, "dm.offer.received", map[string]any{"Event": eventName}))
	return true
}
