package dto

// AuthRequest describes login/password payload.
type AuthRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// AuthResponse carries the issued admin token.
type AuthResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
}
