package enums

type Role string

const (
	RoleUser  Role = "User"
	RoleAdmin Role = "Admin"
)
