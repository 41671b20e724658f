package constants

// Role names as carried in JWT claims and principal records.
const (
	RoleSuperadmin = "superadmin"
	RoleAdmin      = "admin"
	RoleTeacher    = "teacher"
	RoleStudent    = "student"
)

// ==========================
// Grouped Role Slices
// ==========================
var (
	AllRoles = []string{
		RoleSuperadmin,
		RoleAdmin,
		RoleTeacher,
		RoleStudent,
	}

	StaffRoles = []string{
		RoleAdmin,
		RoleTeacher,
	}

	AdminAndAbove = []string{
		RoleSuperadmin,
		RoleAdmin,
	}
)

/* ==========================
   Capability table
   Authorization is decided once at the boundary by looking the
   operation up here, never re-checked ad hoc inside business code.
========================== */

type Operation string

const (
	OpManageOrganization Operation = "organization:manage"
	OpManageClasses      Operation = "classes:manage"
	OpManageTests        Operation = "tests:manage"
	OpManageSchedules    Operation = "schedules:manage"
	OpManageAnnouncement Operation = "announcements:manage"
	OpEnterScores        Operation = "scores:enter"
	OpViewAnalytics      Operation = "analytics:view"
	OpTakeTest           Operation = "tests:take"
	OpViewOwnScores      Operation = "scores:view-own"
)

var roleCapabilities = map[string]map[Operation]bool{
	RoleSuperadmin: {
		OpManageOrganization: true,
		OpManageClasses:      true,
		OpManageTests:        true,
		OpManageSchedules:    true,
		OpManageAnnouncement: true,
		OpEnterScores:        true,
		OpViewAnalytics:      true,
	},
	RoleAdmin: {
		OpManageOrganization: true,
		OpManageClasses:      true,
		OpManageTests:        true,
		OpManageSchedules:    true,
		OpManageAnnouncement: true,
		OpEnterScores:        true,
		OpViewAnalytics:      true,
	},
	RoleTeacher: {
		OpManageTests:     true,
		OpManageSchedules: true,
		OpEnterScores:     true,
		OpViewAnalytics:   true,
	},
	RoleStudent: {
		OpTakeTest:      true,
		OpViewOwnScores: true,
	},
}

func RoleCan(role string, op Operation) bool {
	caps, ok := roleCapabilities[role]
	if !ok {
		return false
	}
	return caps[op]
}
