package domain

// User is one account record as persisted in the user store. PasswordHash
// carries the Argon2id encoded credential and must never be serialized to a
// client-facing response; hand out Public() views instead.
type User struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	PasswordHash string `json:"password_hash"`
	IsAdmin      bool   `json:"is_admin"`
}

// PublicUser is the redacted view of a User. It is the only user shape that
// crosses the HTTP boundary.
type PublicUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	IsAdmin  bool   `json:"is_admin"`
}

// Public strips the credential material from a User.
func (u User) Public() PublicUser {
	return PublicUser{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		IsAdmin:  u.IsAdmin,
	}
}
