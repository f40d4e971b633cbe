package dto

// CredentialsRequest is the JSON body for POST /auth/signup and /auth/login.
type CredentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AccountResponse is returned after signup and login.
type AccountResponse struct {
	Message string `json:"message"`
	Email   string `json:"email"`
}

// MeResponse is the identity carried by the session cookie.
type MeResponse struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
