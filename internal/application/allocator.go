package application

import (
	"math/rand"
	"sort"

	"eventbot/internal/domain/entities"
)

// Allocation is the outcome of one seat-allocation run over the pending set.
type Allocation struct {
	// Accepted holds the accepted registrations in acceptance order.
	Accepted []entities.Registration
	// Waiting holds everyone else, ordered by registration time ascending
	// (the promotion order of the waiting list).
	Waiting []entities.Registration
	// SeatsTaken counts every charged seat, including phantom seats for
	// unregistered companions. It can exceed the limit through the admin
	// and neuling tiers; the random tier never pushes it past the limit.
	SeatsTaken int
	// PhantomGuests maps accepted user IDs to the named companion who has
	// no registration of their own but occupies a seat anyway.
	PhantomGuests map[string]string
}

// Allocate partitions the pending registrations of an event into accepted and
// waiting sets, in three strict tiers:
//
//  1. Admins are accepted unconditionally, companions included.
//  2. Neulings not yet accepted, same rule.
//  3. The remainder is shuffled uniformly and accepted while seats last.
//
// A registered companion is accepted together with the registrant (two
// seats); an unregistered companion charges one phantom seat. In the random
// tier a pending pair is taken both-or-neither, and a candidate whose
// capacity check fails is left for the waiting list while cheaper candidates
// after it are still considered.
//
// The function is pure apart from the shuffle: it owns its accumulator and
// performs no I/O, so re-running it on an already drained pending set is a
// no-op.
func Allocate(pending []entities.Registration, seatLimit int) Allocation {
	acceptedIDs := make(map[string]bool, len(pending))
	alloc := Allocation{PhantomGuests: make(map[string]string)}

	// accept is idempotent per user so both sides of a pairing can call it.
	accept := func(r *entities.Registration) {
		if acceptedIDs[r.UserID] {
			return
		}
		acceptedIDs[r.UserID] = true
		alloc.SeatsTaken++
		alloc.Accepted = append(alloc.Accepted, *r)
	}
	chargePhantom := func(r *entities.Registration) {
		alloc.SeatsTaken++
		alloc.PhantomGuests[r.UserID] = r.PartnerName
	}
	// Tiers 1 and 2 accept without a capacity gate.
	acceptWithCompanion := func(r *entities.Registration) {
		accept(r)
		if !r.HasPartner() {
			return
		}
		if partner := FindPartner(r.PartnerName, pending); partner != nil {
			accept(partner)
		} else {
			chargePhantom(r)
		}
	}

	// Tier 1: admins.
	for i := range pending {
		if pending[i].IsAdmin {
			acceptWithCompanion(&pending[i])
		}
	}

	// Tier 2: neulings not already seated via tier 1.
	for i := range pending {
		if pending[i].IsNeuling && !acceptedIDs[pending[i].UserID] {
			acceptWithCompanion(&pending[i])
		}
	}

	// Tier 3: everyone left, in uniformly random order.
	remaining := make([]*entities.Registration, 0, len(pending))
	for i := range pending {
		if !acceptedIDs[pending[i].UserID] {
			remaining = append(remaining, &pending[i])
		}
	}
	rand.Shuffle(len(remaining), func(i, j int) {
		remaining[i], remaining[j] = remaining[j], remaining[i]
	})
	for _, r := range remaining {
		if acceptedIDs[r.UserID] {
			// Seated as the partner of an earlier candidate in this tier.
			continue
		}
		partner := FindPartner(r.PartnerName, pending)
		switch {
		case !r.HasPartner():
			if alloc.SeatsTaken+1 <= seatLimit {
				accept(r)
			}
		case partner == nil:
			// Unregistered companion occupies a seat too.
			if alloc.SeatsTaken+2 <= seatLimit {
				accept(r)
				chargePhantom(r)
			}
		case acceptedIDs[partner.UserID]:
			if alloc.SeatsTaken+1 <= seatLimit {
				accept(r)
			}
		default:
			// Pending pair: both or neither.
			if alloc.SeatsTaken+2 <= seatLimit {
				accept(r)
				accept(partner)
			}
		}
	}

	for i := range pending {
		if !acceptedIDs[pending[i].UserID] {
			alloc.Waiting = append(alloc.Waiting, pending[i])
		}
	}
	sort.SliceStable(alloc.Waiting, func(i, j int) bool {
		return alloc.Waiting[i].RegistrationTime.Before(alloc.Waiting[j].RegistrationTime)
	})

	return alloc
}
