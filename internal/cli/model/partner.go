package model

// Partner — профиль партнёра доставки.
type Partner struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	Phone             string  `json:"phone"`
	VehicleType       string  `json:"vehicleType,omitempty"`
	City              string  `json:"city,omitempty"`
	IsOnline          bool    `json:"isOnline"`
	Latitude          float64 `json:"latitude,omitempty"`
	Longitude         float64 `json:"longitude,omitempty"`
	OnboardingStatus  string  `json:"onboardingStatus,omitempty"`
	TrainingCompleted bool    `json:"trainingCompleted"`
	Rating            float64 `json:"rating,omitempty"`
}

// AuthResponse — ответ verify-otp/login/register.
type AuthResponse struct {
	AccessToken  string  `json:"accessToken"`
	RefreshToken string  `json:"refreshToken"`
	Partner      Partner `json:"partner"`
}

type SendOTPRequest struct {
	Phone string `json:"phone"`
}

type SendOTPResponse struct {
	Message   string `json:"message"`
	ExpiresIn int    `json:"expiresIn,omitempty"` // секунды
}

type VerifyOTPRequest struct {
	Phone string `json:"phone"`
	OTP   string `json:"otp"`
}

type LoginRequest struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	Password    string `json:"password"`
	VehicleType string `json:"vehicleType"`
	City        string `json:"city"`
}

type StatusRequest struct {
	IsOnline bool `json:"isOnline"`
}

type LocationRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Document — документ онбординга (права, паспорт ТС и т.п.).
type Document struct {
	Type   string `json:"type"`
	Number string `json:"number"`
	URL    string `json:"url,omitempty"`
	Status string `json:"status,omitempty"`
}

type DocumentsRequest struct {
	Documents []Document `json:"documents"`
}

type BankDetails struct {
	AccountHolder string `json:"accountHolder"`
	AccountNumber string `json:"accountNumber"`
	IFSC          string `json:"ifsc"`
	BankName      string `json:"bankName,omitempty"`
}

type TrainingRequest struct {
	ModuleID string `json:"moduleId"`
}

// MessageResponse — типовой ответ сервера без данных.
type MessageResponse struct {
	Message string `json:"message"`
}
