package auth

// LoginDTO mirrors the OAuth2 password form: the username is the account email.
type LoginDTO struct {
	Username string `json:"username" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
