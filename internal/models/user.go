package models

type Role string

const (
	RoleCustomer Role = "customer"
	RoleOwner    Role = "owner"
	RoleAdmin    Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleOwner, RoleAdmin:
		return true
	}
	return false
}

// DashboardPath is the landing page for the role.
func (r Role) DashboardPath() string {
	return "/dashboard/" + string(r)
}

type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
	Role  Role   `json:"role"`
}
