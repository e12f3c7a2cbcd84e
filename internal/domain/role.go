package domain

// Role enumerates the privilege levels encoded in credentials.
type Role int

const (
	RoleUser Role = iota + 1
	RoleAdmin
)

// Group names as carried in the credential's groups claim.
const (
	GroupUser  = "user"
	GroupAdmin = "admin"
)

// String returns the group name for the role.
func (r Role) String() string {
	switch r {
	case RoleUser:
		return GroupUser
	case RoleAdmin:
		return GroupAdmin
	default:
		return ""
	}
}

// ParseRole maps a group name to its role.
func ParseRole(group string) (Role, bool) {
	switch group {
	case GroupUser:
		return RoleUser, true
	case GroupAdmin:
		return RoleAdmin, true
	default:
		return 0, false
	}
}

// RoleForAccount derives the role granted by an account lookup. A nil account
// (lookup miss) yields the lowest privilege.
func RoleForAccount(account *Account) Role {
	if account.IsAdmin() {
		return RoleAdmin
	}
	return RoleUser
}
