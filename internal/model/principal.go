package model

// Principal is the signed-in user. Technicians carry a display name;
// office accounts leave it empty and get the privileged views.
type Principal struct {
	UID         string
	Email       string
	DisplayName string
}

func (p Principal) IsPrivileged() bool {
	return p.DisplayName == ""
}

func (p Principal) IsTechnician() bool {
	return p.DisplayName != ""
}
