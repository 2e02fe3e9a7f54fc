package httptransport

type RegisterRequest struct {
	Username     string `json:"username"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	PasswordHash string `json:"password_hash"`
}

type RegisterResponse struct {
	CredentialID int64  `json:"credential_id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
}

type UpdateCredentialRequest struct {
	Username     string `json:"username,omitempty"`
	Email        string `json:"email,omitempty"`
	PasswordHash string `json:"password_hash,omitempty"`
}

type CredentialResponse struct {
	CredentialID int64  `json:"credential_id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
}

type StatusResponse struct {
	OK string `json:"ok"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
