package authz

import (
	"testing"

	"github.com/snishiyama/networking-crm/internal/models"
	"github.com/stretchr/testify/require"
)

func TestCanMutate(t *testing.T) {
	tests := []struct {
		name    string
		role    models.Role
		actorID uint64
		ownerID uint64
		want    bool
	}{
		{"super admin on own resource", models.RoleSuperAdmin, 1, 1, true},
		{"super admin on foreign resource", models.RoleSuperAdmin, 1, 2, true},
		{"admin on own resource", models.RoleAdmin, 7, 7, true},
		{"admin on foreign resource", models.RoleAdmin, 7, 8, false},
		{"unknown role", models.Role("VIEWER"), 1, 1, false},
		{"empty role", models.Role(""), 3, 3, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, CanMutate(tt.role, tt.actorID, tt.ownerID))

			actor := Actor{ID: tt.actorID, Role: tt.role}
			require.Equal(t, tt.want, actor.CanMutateOwned(tt.ownerID))
		})
	}
}
