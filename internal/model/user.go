package model

// User is a customer account as returned by the backend. The password never
// comes back and is only sent on registration.
type User struct {
	ID        string `json:"_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Age       int    `json:"age,omitempty"`
	Gender    string `json:"gender,omitempty"`
	ContactNo string `json:"contactno,omitempty"`
	Address   string `json:"address,omitempty"`
}

// Admin is an admin panel account.
type Admin struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}
