// file: internals/features/school/tenancy/guard.go
package tenancy

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	helperAuth "sekolahku_backend/internals/helpers/auth"
	"sekolahku_backend/internals/helpers/errs"
)

/* =========================================================
   TENANT ISOLATION GUARD

   Every model that belongs to an organization implements
   TenantScoped; every soft-deletable model implements
   SoftDeletable. All reads go through Scope/ScopeAlive and all
   writes stamp the tenant key via Stamp, so a forgotten filter is
   a compile-time absence of a call, not a silent cross-tenant leak.
========================================================= */

// TenantScoped is implemented by every organization-owned model.
type TenantScoped interface {
	TenantColumn() string
}

// SoftDeletable exposes the live-row flag column so the
// "is_active = TRUE" filter is written in exactly one place.
type SoftDeletable interface {
	ActiveColumn() string
}

// TenantFilter is the pure core of the guard: the WHERE fragment
// that pins a query to the principal's own organization.
func TenantFilter(p helperAuth.Principal, m TenantScoped) (map[string]interface{}, error) {
	if p.IsSuperadmin() {
		// Superadmin operations cross organizations explicitly via
		// CrossOrganization, never through the scoping guard.
		return nil, errs.New(errs.ConfigurationError, "superadmin queries must use CrossOrganization explicitly")
	}
	if p.OrganizationID == uuid.Nil {
		return nil, errs.New(errs.ConfigurationError, "principal has no resolvable organization")
	}
	return map[string]interface{}{m.TenantColumn(): p.OrganizationID}, nil
}

// Scope constrains db to the principal's organization.
func Scope(db *gorm.DB, p helperAuth.Principal, m TenantScoped) (*gorm.DB, error) {
	filter, err := TenantFilter(p, m)
	if err != nil {
		return nil, err
	}
	return db.Where(filter), nil
}

// Alive adds the uniform live-row predicate.
func Alive(db *gorm.DB, m SoftDeletable) *gorm.DB {
	return db.Where(m.ActiveColumn()+" = ?", true)
}

// ScopeAlive combines tenant scoping with the live-row filter —
// the default entry point for reads.
func ScopeAlive(db *gorm.DB, p helperAuth.Principal, m interface {
	TenantScoped
	SoftDeletable
}) (*gorm.DB, error) {
	scoped, err := Scope(db, p, m)
	if err != nil {
		return nil, err
	}
	return Alive(scoped, m), nil
}

// Stamp returns the tenant key to attach to a write payload.
func Stamp(p helperAuth.Principal) (uuid.UUID, error) {
	if p.IsSuperadmin() {
		return uuid.Nil, errs.New(errs.ConfigurationError, "superadmin writes must target an explicit organization")
	}
	if p.OrganizationID == uuid.Nil {
		return uuid.Nil, errs.New(errs.ConfigurationError, "principal has no resolvable organization")
	}
	return p.OrganizationID, nil
}

// CrossOrganization is the explicit escape hatch for superadmin
// operations. It refuses anyone else.
func CrossOrganization(db *gorm.DB, p helperAuth.Principal) (*gorm.DB, error) {
	if !p.IsSuperadmin() {
		return nil, errs.New(errs.Forbidden, "cross-organization access is superadmin only")
	}
	return db, nil
}
