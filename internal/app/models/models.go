package models

// RoleType defines the user role type
type RoleType string

const (
	RoleStudent       RoleType = "student"
	RoleRegistrar     RoleType = "registrar"
	RoleAdministrator RoleType = "administrator"
	RoleVisitor       RoleType = "visitor"
)

// StaffRoles are the roles allowed on administrative resources. Visitors
// hold a synced account but appear in no allow-list.
var StaffRoles = []RoleType{RoleAdministrator, RoleRegistrar}

// IsValidRole reports whether the value is a known role.
func IsValidRole(role RoleType) bool {
	switch role {
	case RoleStudent, RoleRegistrar, RoleAdministrator, RoleVisitor:
		return true
	default:
		return false
	}
}
