package models

// PrincipalKind tags which identity scheme authenticated the caller.
type PrincipalKind string

const (
	PrincipalProvider     PrincipalKind = "provider"      // staff session from the identity provider
	PrincipalStudentToken PrincipalKind = "student_token" // locally issued student JWT
)

// Principal is the authenticated caller as seen by handlers. Both identity
// schemes resolve into this one shape so handlers never branch on the
// middleware family that admitted the request.
type Principal struct {
	Kind      PrincipalKind
	Role      RoleType
	UserID    int64  // set for provider principals
	StudentID int64  // set when the principal maps to a student profile
	Email     string
	FirstName string
	LastName  string
}

// HasRole reports whether the principal's role is in the allow-list.
func (p Principal) HasRole(roles ...RoleType) bool {
	for _, r := range roles {
		if p.Role == r {
			return true
		}
	}
	return false
}

// IsStudent reports whether the principal resolves to a student profile,
// regardless of which scheme authenticated it.
func (p Principal) IsStudent() bool {
	return p.StudentID > 0
}
