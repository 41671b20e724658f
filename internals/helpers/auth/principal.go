// file: internals/helpers/auth/principal.go
package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"sekolahku_backend/internals/constants"
	"sekolahku_backend/internals/helpers/errs"
)

/* ============================================
   Locals Keys (auth middleware sets these)
   ============================================ */

const (
	LocUserID         = "user_id"         // string UUID
	LocRole           = "role"            // string
	LocRoleID         = "role_id"         // string UUID of the admin/teacher/student record
	LocOrganizationID = "organization_id" // string UUID, absent for superadmin
)

/* ============================================
   Principal
   The authenticated actor, resolved ONCE from verified JWT locals
   and passed into every service call as a plain value. Services
   never reach back into the request for tenant context.
   ============================================ */

type Principal struct {
	UserID uuid.UUID
	Role   string
	RoleID uuid.UUID

	// OrganizationID is the tenant key. For admins it equals RoleID
	// (an admin record IS its organization root). Nil only for superadmin.
	OrganizationID uuid.UUID
}

func (p Principal) IsSuperadmin() bool { return p.Role == constants.RoleSuperadmin }

func (p Principal) Can(op constants.Operation) bool { return constants.RoleCan(p.Role, op) }

/* ============================================
   Resolution from fiber locals
   ============================================ */

func localUUID(c *fiber.Ctx, key string) (uuid.UUID, bool) {
	v := c.Locals(key)
	if v == nil {
		return uuid.Nil, false
	}
	switch t := v.(type) {
	case string:
		id, err := uuid.Parse(strings.TrimSpace(t))
		if err != nil || id == uuid.Nil {
			return uuid.Nil, false
		}
		return id, true
	case uuid.UUID:
		return t, t != uuid.Nil
	}
	return uuid.Nil, false
}

func localString(c *fiber.Ctx, key string) string {
	if v := c.Locals(key); v != nil {
		if s, ok := v.(string); ok {
			return strings.ToLower(strings.TrimSpace(s))
		}
	}
	return ""
}

// PrincipalFromLocals builds the Principal for this request.
// Fails Unauthenticated when identity locals are missing and
// IncompleteProfile when a non-superadmin has no resolvable
// organization — never silently unscoped.
func PrincipalFromLocals(c *fiber.Ctx) (Principal, error) {
	userID, ok := localUUID(c, LocUserID)
	if !ok {
		return Principal{}, errs.New(errs.Unauthenticated, "user_id not found in token")
	}

	role := localString(c, LocRole)
	if role == "" {
		return Principal{}, errs.New(errs.Unauthenticated, "role not found in token")
	}
	valid := false
	for _, r := range constants.AllRoles {
		if r == role {
			valid = true
			break
		}
	}
	if !valid {
		return Principal{}, errs.Newf(errs.Unauthenticated, "unknown role %q in token", role)
	}

	roleID, _ := localUUID(c, LocRoleID)

	p := Principal{
		UserID: userID,
		Role:   role,
		RoleID: roleID,
	}

	if role == constants.RoleSuperadmin {
		return p, nil
	}

	if role == constants.RoleAdmin {
		// An admin record is its own organization root.
		if roleID == uuid.Nil {
			return Principal{}, errs.New(errs.IncompleteProfile, "admin token has no role_id")
		}
		p.OrganizationID = roleID
		return p, nil
	}

	orgID, ok := localUUID(c, LocOrganizationID)
	if !ok {
		return Principal{}, errs.New(errs.IncompleteProfile, "organization could not be resolved for this account")
	}
	p.OrganizationID = orgID
	return p, nil
}
