package dto

// JSON keys on the auth surface match the original web client contract.

type SignupRequest struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type SignupResponse struct {
	Status string `json:"status"`
}

type LoginRequest struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Status       string `json:"Status"`
	Role         string `json:"role"`
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
	ExpiresInSec int64  `json:"expiresInSec"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type RefreshResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
	ExpiresInSec int64  `json:"expiresInSec"`
}

type CheckUserExistResponse struct {
	Exists bool `json:"exists"`
}
