// Package authz implements the role-scoped authorization and
// data-visibility model: which rows of which entities an authenticated
// actor may read or mutate, and how case-team membership is composed into
// every query path.
package authz

import "advocate_desk_go/models"

// Actor is the per-request identity every authorization check receives.
// There is no ambient current-user global; handlers resolve the actor once
// and pass it down explicitly.
type Actor struct {
	ID         string
	Role       string
	AdvocateID *string
}

// ActorFromProfile builds an Actor from a directory profile.
func ActorFromProfile(p *models.Profile) *Actor {
	return &Actor{
		ID:         p.ID,
		Role:       p.Role,
		AdvocateID: p.AdvocateID,
	}
}

// IsAdvocate reports whether the actor is a tenant root.
func (a *Actor) IsAdvocate() bool {
	return a.Role == models.RoleAdvocate
}
