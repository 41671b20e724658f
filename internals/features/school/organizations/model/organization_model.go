// file: internals/features/school/organizations/model/organization_model.go
package model

import (
	"time"

	"github.com/google/uuid"
)

/* =========================================================
   ORGANIZATION (tenant root)
   One row = one school/admin account. Its primary key is the
   tenant key stamped on every other table.
========================================================= */

type OrganizationModel struct {
	OrganizationID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:organization_id" json:"organization_id"`

	OrganizationName  string `gorm:"type:varchar(120);not null;column:organization_name" json:"organization_name"`
	OrganizationEmail string `gorm:"type:varchar(120);not null;uniqueIndex;column:organization_email" json:"organization_email"`

	// bcrypt hash, never serialized
	OrganizationPasswordHash string `gorm:"type:varchar(100);not null;column:organization_password_hash" json:"-"`

	OrganizationIsActive bool `gorm:"not null;default:true;column:organization_is_active" json:"organization_is_active"`

	OrganizationCreatedAt time.Time `gorm:"type:timestamptz;not null;default:now();autoCreateTime;column:organization_created_at" json:"organization_created_at"`
	OrganizationUpdatedAt time.Time `gorm:"type:timestamptz;not null;default:now();autoUpdateTime;column:organization_updated_at" json:"organization_updated_at"`
}

func (OrganizationModel) TableName() string { return "organizations" }

// An organization is scoped to itself: its PK is the tenant key.
func (OrganizationModel) TenantColumn() string { return "organization_id" }
func (OrganizationModel) ActiveColumn() string { return "organization_is_active" }
