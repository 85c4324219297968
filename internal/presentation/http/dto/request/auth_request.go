package request

// PinLoginRequest represents an admin PIN login request
type PinLoginRequest struct {
	PIN string `json:"pin" binding:"required"`
}

// ChangePinRequest represents a PIN change request
type ChangePinRequest struct {
	CurrentPIN string `json:"currentPin" binding:"required"`
	NewPIN     string `json:"newPin" binding:"required"`
}
