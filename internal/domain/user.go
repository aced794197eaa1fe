package domain

import "time"

// User is the subset of the account record the rental core needs.
// Accounts are managed by the auth service.
type User struct {
	ID        int32     `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedOn time.Time `json:"created_on"`
}

// DisplayName falls back to a synthetic name when the account has none.
func (u *User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return "User " + itoa(u.ID)
}
