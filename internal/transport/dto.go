package transport

type RegisterRequest struct {
	Username      string `json:"username"`
	Password      string `json:"password"`
	ContactNumber string `json:"contact_number"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LogoutRequest struct {
	UserID uint `json:"user_id"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	AccessExp    int64  `json:"access_exp"`
	RefreshExp   int64  `json:"refresh_exp"`
}

// CreatePositionRequest keeps the original wire shape: "id" is the
// owning user's id.
type CreatePositionRequest struct {
	PositionCode string `json:"position_code"`
	PositionName string `json:"position_name"`
	ID           uint   `json:"id"`
}

type UpdatePositionRequest struct {
	PositionCode *string `json:"position_code"`
	PositionName *string `json:"position_name"`
	ID           *uint   `json:"id"`
}

type UpdateUserRequest struct {
	ContactNumber *string `json:"contact_number"`
	Role          *string `json:"role"`
}
