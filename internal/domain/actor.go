package domain

// Role is the closed set of roles the visibility filter dispatches on.
// The surrounding application resolves group membership to one of these
// before calling into the workflow.
type Role int

const (
	RoleUnknown Role = iota
	RoleSuperuser
	RoleCommercialExecutive
	RoleRetentionExecutive
)

var roleNames = map[string]Role{
	"superuser":            RoleSuperuser,
	"commercial_executive": RoleCommercialExecutive,
	"retention_executive":  RoleRetentionExecutive,
}

// ParseRole maps a role name supplied by the caller to a Role.
// Unrecognized names map to RoleUnknown, which sees nothing.
func ParseRole(name string) Role {
	if r, ok := roleNames[name]; ok {
		return r
	}

	return RoleUnknown
}

func (r Role) String() string {
	switch r {
	case RoleSuperuser:
		return "superuser"
	case RoleCommercialExecutive:
		return "commercial_executive"
	case RoleRetentionExecutive:
		return "retention_executive"
	default:
		return "unknown"
	}
}

// Actor is the authenticated caller context the front end supplies with
// every operation: an external identity id plus role memberships.
type Actor struct {
	IdentityID int64
	Name       string
	Roles      []Role
}

func (a Actor) HasRole(role Role) bool {
	for _, r := range a.Roles {
		if r == role {
			return true
		}
	}

	return false
}
