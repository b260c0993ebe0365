package domain

type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleAdmin    Role = "ADMIN"
)

// Actor identifies who is driving an operation. Authentication itself
// is owned by an external collaborator; the engine only receives the
// already-verified identity and role.
type Actor struct {
	ID   int64 `json:"id"`
	Role Role  `json:"role"`
}

func (a Actor) IsAdmin() bool { return a.Role == RoleAdmin }

// CanAccessRental reports whether the actor may read the rental.
func (a Actor) CanAccessRental(r *Rental) bool {
	return a.IsAdmin() || a.ID == r.CustomerID
}
