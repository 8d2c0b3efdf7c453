package models

// Customer is the person an order would be placed for. The client only
// uses the address today; the rest of the record is carried so order
// building has somewhere to start from.
type Customer struct {
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	Email       string  `json:"email"`
	PhoneNumber string  `json:"phone_number"`
	Address     Address `json:"address"`
}
