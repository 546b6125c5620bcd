package entity

// User is the aggregate root for the user domain.
// PasswordHash holds a bcrypt hash; it is empty for rows created through the
// admin create route without a password.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
}

// HasPassword reports whether the user can authenticate with a password.
func (u *User) HasPassword() bool {
	return u != nil && u.PasswordHash != ""
}
