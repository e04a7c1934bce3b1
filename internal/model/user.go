package model

// User is an administrator account stored by the API server.
type User struct {
	ID       int64
	Username string
	AuthHash string
}

// LoginRequest is the body of POST /login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is the body of a successful POST /login.
type LoginResponse struct {
	AccessToken string `json:"accessToken"`
	Message     string `json:"message"`
}
