package auth

import (
	"errors"

	"onboarding-service/models"
)

var ErrForbidden = errors.New("access denied")

// Principal is the authenticated identity making the current request.
type Principal struct {
	Email string
	Role  models.Role
}

// Policy configures the gate for one operation. The ownership check always
// applies to CLIENT principals; OwnerCheckAppliesToManager extends it to
// managers for endpoints that are strictly self-service. The variance across
// resource types is intentional and mirrors the product behavior: note reads
// are self-only for everyone, report and client reads let a manager see any
// client.
type Policy struct {
	RequiredRole               models.Role // empty means any authenticated role
	OwnerCheckAppliesToManager bool
}

// Decide returns nil when the principal may act on the resource owned by
// ownerEmail, ErrForbidden otherwise. Pure function, no side effects.
func Decide(p Principal, ownerEmail string, policy Policy) error {
	if policy.RequiredRole != "" && p.Role != policy.RequiredRole {
		return ErrForbidden
	}
	if p.Email != ownerEmail {
		if p.Role == models.RoleClient || policy.OwnerCheckAppliesToManager {
			return ErrForbidden
		}
	}
	return nil
}
