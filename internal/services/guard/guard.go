// Package guard performs the capability check that gates data loads. The
// check runs once per view entry and yields a tri-state decision instead of
// ad hoc role flags scattered through controllers.
package guard

import "voucherdesk/internal/models"

type Decision int

const (
	// Pending means no claims are available yet; the caller stays in its
	// authenticating state.
	Pending Decision = iota
	Authorized
	Denied
)

func (d Decision) String() string {
	switch d {
	case Pending:
		return "pending"
	case Authorized:
		return "authorized"
	case Denied:
		return "denied"
	}
	return "unknown"
}

// Guard authorizes access for one required role.
type Guard struct {
	role string
}

func New(requiredRole string) *Guard {
	return &Guard{role: requiredRole}
}

// Check evaluates the claims. Nil claims are Pending, a matching role (or
// the admin read permission) is Authorized, everything else is Denied.
func (g *Guard) Check(claims *models.UserClaims) Decision {
	if claims == nil {
		return Pending
	}
	if claims.Role == g.role {
		return Authorized
	}
	if claims.HasPermission(models.PermissionReadAdmin) {
		return Authorized
	}
	return Denied
}
