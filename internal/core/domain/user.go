package domain

// User is the minimal shape of an authenticated session user, only the
// fields the storefront actually reads.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}
