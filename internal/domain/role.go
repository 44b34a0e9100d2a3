package domain

// Role governs which endpoints a user may call. New accounts default to
// RoleReader; only an admin can change a user's role.
type Role string

const (
	RoleReader Role = "reader"
	RoleWriter Role = "writer"
	RoleAdmin  Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleReader, RoleWriter, RoleAdmin:
		return true
	}
	return false
}

func (r Role) String() string {
	return string(r)
}
