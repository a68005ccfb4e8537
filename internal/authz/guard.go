// Package authz decides whether an actor may mutate an owned resource.
// Every write to a group, its memberships, its meetings, or their attendance
// goes through CanMutate; reads never do.
package authz

import "github.com/snishiyama/networking-crm/internal/models"

// Actor is the authenticated user performing an operation.
type Actor struct {
	ID   uint64
	Role models.Role
}

// CanMutate reports whether the actor may modify a resource owned by
// ownerID. Super admins may modify anything; admins only what they own.
// It never errors and has no side effects.
func CanMutate(role models.Role, actorID, ownerID uint64) bool {
	if role == models.RoleSuperAdmin {
		return true
	}
	return role == models.RoleAdmin && actorID == ownerID
}

// CanMutateOwned is the Actor-receiver form of CanMutate.
func (a Actor) CanMutateOwned(ownerID uint64) bool {
	return CanMutate(a.Role, a.ID, ownerID)
}
