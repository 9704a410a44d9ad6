package models

// Person kinds. The people ledger holds customers, suppliers and staff in
// one table, discriminated by kind.
const (
	PersonKindCustomer = "customer"
	PersonKindSupplier = "supplier"
	PersonKindStaff    = "staff"
)

// Person is one contact in the people ledger. Names are unique per kind;
// saving an existing name updates the contact details in place.
type Person struct {
	ID       int    `json:"id"`
	Kind     string `json:"kind"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location,omitempty"`
}
