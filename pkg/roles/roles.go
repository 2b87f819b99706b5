package roles

// Role identifies the permission profile of a user.
type Role string

const (
	Admin      Role = "admin"
	Operations Role = "operations"
	Finance    Role = "finance"
)

var displayNames = map[Role]string{
	Admin:      "Admin",
	Operations: "Operations",
	Finance:    "Finance",
}

func (r Role) IsValid() bool {
	_, ok := displayNames[r]
	return ok
}

func (r Role) String() string {
	return string(r)
}

// DisplayName returns the human-readable role name for error messages.
func (r Role) DisplayName() string {
	if name, ok := displayNames[r]; ok {
		return name
	}
	return string(r)
}

func All() []Role {
	return []Role{Admin, Operations, Finance}
}
