package httptransport

type CreateProfileRequest struct {
	CredentialID int64  `json:"credential_id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	Role         string `json:"role"`
}

type EditProfileRequest struct {
	CredentialID int64  `json:"credential_id"`
	Username     string `json:"username,omitempty"`
	Email        string `json:"email,omitempty"`
	Role         string `json:"role,omitempty"`
}

type ProfileDTO struct {
	ProfileID    int64  `json:"profile_id"`
	CredentialID int64  `json:"credential_id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	Role         string `json:"role"`
}

type ListProfilesResponse struct {
	Profiles []ProfileDTO `json:"profiles"`
}

type StatusResponse struct {
	OK string `json:"ok"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
