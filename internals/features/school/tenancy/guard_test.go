// file: internals/features/school/tenancy/guard_test.go
package tenancy

import (
	"testing"

	"github.com/google/uuid"

	"sekolahku_backend/internals/constants"
	classModel "sekolahku_backend/internals/features/school/classes/model"
	helperAuth "sekolahku_backend/internals/helpers/auth"
	"sekolahku_backend/internals/helpers/errs"
)

func TestTenantFilterPinsToOrganization(t *testing.T) {
	orgID := uuid.New()
	p := helperAuth.Principal{
		UserID:         uuid.New(),
		Role:           constants.RoleTeacher,
		RoleID:         uuid.New(),
		OrganizationID: orgID,
	}

	filter, err := TenantFilter(p, classModel.ClassModel{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := filter["class_organization_id"]; got != orgID {
		t.Fatalf("filter = %v, want class_organization_id=%s", filter, orgID)
	}
	if len(filter) != 1 {
		t.Fatalf("filter has %d keys, want 1", len(filter))
	}
}

func TestTenantFilterRefusesSuperadmin(t *testing.T) {
	p := helperAuth.Principal{
		UserID: uuid.New(),
		Role:   constants.RoleSuperadmin,
	}
	_, err := TenantFilter(p, classModel.ClassModel{})
	if !errs.IsKind(err, errs.ConfigurationError) {
		t.Fatalf("err = %v, want ConfigurationError", err)
	}
}

func TestTenantFilterRefusesMissingOrganization(t *testing.T) {
	p := helperAuth.Principal{
		UserID: uuid.New(),
		Role:   constants.RoleStudent,
		RoleID: uuid.New(),
		// OrganizationID deliberately zero
	}
	_, err := TenantFilter(p, classModel.ClassModel{})
	if !errs.IsKind(err, errs.ConfigurationError) {
		t.Fatalf("err = %v, want ConfigurationError", err)
	}
}

func TestStamp(t *testing.T) {
	orgID := uuid.New()
	p := helperAuth.Principal{
		UserID:         uuid.New(),
		Role:           constants.RoleAdmin,
		RoleID:         orgID,
		OrganizationID: orgID,
	}
	got, err := Stamp(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != orgID {
		t.Fatalf("stamp = %s, want %s", got, orgID)
	}

	if _, err := Stamp(helperAuth.Principal{Role: constants.RoleSuperadmin}); !errs.IsKind(err, errs.ConfigurationError) {
		t.Fatalf("superadmin stamp err = %v, want ConfigurationError", err)
	}
}

func TestCrossOrganizationIsSuperadminOnly(t *testing.T) {
	teacher := helperAuth.Principal{
		UserID:         uuid.New(),
		Role:           constants.RoleTeacher,
		OrganizationID: uuid.New(),
	}
	if _, err := CrossOrganization(nil, teacher); !errs.IsKind(err, errs.Forbidden) {
		t.Fatalf("err = %v, want Forbidden", err)
	}

	super := helperAuth.Principal{UserID: uuid.New(), Role: constants.RoleSuperadmin}
	if _, err := CrossOrganization(nil, super); err != nil {
		t.Fatalf("unexpected error for superadmin: %v", err)
	}
}
