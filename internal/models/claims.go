package models

import "github.com/golang-jwt/jwt/v5"

// Application permissions
const (
	// Admin permissions
	PermissionReadAdmin  = "admin:read"
	PermissionWriteAdmin = "admin:write"

	// Retailer permissions
	PermissionRetailerRead = "retailer:read"

	// Terminal permissions
	PermissionTerminalRead  = "terminal:read"
	PermissionTerminalWrite = "terminal:write"

	// Agent permissions
	PermissionAgentRead  = "agent:read"
	PermissionAgentWrite = "agent:write"

	// Report permissions
	PermissionReportRead = "report:read"
)

type UserClaims struct {
	jwt.RegisteredClaims
	UserID       uint     `json:"user_id"`
	Email        string   `json:"email"`
	Role         string   `json:"role"`
	Permissions  []string `json:"permissions"`
	TokenVersion int      `json:"token_version"`
}

// HasPermission checks if the claims include a specific permission
func (c *UserClaims) HasPermission(permission string) bool {
	for _, p := range c.Permissions {
		if p == permission {
			return true
		}
	}
	return false
}

// GetDefaultPermissions returns default permissions based on role
func GetDefaultPermissions(role string) []string {
	switch role {
	case "admin":
		return []string{
			PermissionReadAdmin,
			PermissionWriteAdmin,
			PermissionRetailerRead,
			PermissionTerminalRead,
			PermissionTerminalWrite,
			PermissionAgentRead,
			PermissionAgentWrite,
			PermissionReportRead,
		}
	case "agent":
		return []string{
			PermissionRetailerRead,
			PermissionTerminalRead,
			PermissionReportRead,
		}
	default:
		return []string{}
	}
}
