package application

import (
	"strings"

	"eventbot/internal/domain/entities"
)

// NormalizePartnerName canonicalizes a free-text companion name: trim,
// lowercase, strip a single leading "@" (users paste handles either way).
func NormalizePartnerName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.TrimPrefix(name, "@")
	return name
}

// FindPartner resolves a companion name against a candidate set.
// Full-name matches win over username matches; within each field the first
// candidate in slice order wins, so the tie-break is stable. Matching is
// exact normalized equality, never fuzzy.
func FindPartner(partnerName string, candidates []entities.Registration) *entities.Registration {
	name := NormalizePartnerName(partnerName)
	if name == "" {
		return nil
	}
	for i := range candidates {
		if strings.ToLower(strings.TrimSpace(candidates[i].FullName)) == name {
			return &candidates[i]
		}
	}
	for i := range candidates {
		if strings.ToLower(strings.TrimSpace(candidates[i].Username)) == name {
			return &candidates[i]
		}
	}
	return nil
}
