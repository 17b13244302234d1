package guard

import (
	"testing"

	"voucherdesk/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestCheck(t *testing.T) {
	g := New("admin")

	tests := []struct {
		name    string
		claims  *models.UserClaims
		decided Decision
	}{
		{
			name:    "no claims yet is pending",
			claims:  nil,
			decided: Pending,
		},
		{
			name:    "matching role is authorized",
			claims:  &models.UserClaims{Role: "admin"},
			decided: Authorized,
		},
		{
			name: "admin read permission authorizes regardless of role",
			claims: &models.UserClaims{
				Role:        "agent",
				Permissions: []string{models.PermissionReadAdmin},
			},
			decided: Authorized,
		},
		{
			name:    "wrong role without permission is denied",
			claims:  &models.UserClaims{Role: "agent"},
			decided: Denied,
		},
		{
			name:    "empty role is denied not pending",
			claims:  &models.UserClaims{},
			decided: Denied,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.decided, g.Check(tt.claims))
		})
	}
}

func TestDecisionString(t *testing.T) {
	assert.Equal(t, "pending", Pending.String())
	assert.Equal(t, "authorized", Authorized.String())
	assert.Equal(t, "denied", Denied.String())
	assert.Equal(t, "unknown", Decision(42).String())
}
