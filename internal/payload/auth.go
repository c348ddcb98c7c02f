package payload

type SendOTPRequest struct {
	PhoneNumber string `json:"phone_number" validate:"required,et_phone"`
}

type VerifyOTPRequest struct {
	PhoneNumber string `json:"phone_number" validate:"required,et_phone"`
	Code        string `json:"code"         validate:"required,len=6,numeric"`
}

type ForgetPasswordRequest struct {
	PhoneNumber string `json:"phone_number" validate:"required,et_phone"`
}

type VerifyResetOTPRequest struct {
	PhoneNumber string `json:"phone_number" validate:"required,et_phone"`
	Code        string `json:"code"         validate:"required,len=6,numeric"`
}

type ResetPasswordRequest struct {
	ResetToken  string `json:"reset_token"  validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

type MessageResponse struct {
	Detail string `json:"detail"`
}

type VerifyResetOTPResponse struct {
	Detail     string `json:"detail"`
	ResetToken string `json:"reset_token"`
}

type ErrorResponse struct {
	Detail string   `json:"detail"`
	Errors []string `json:"errors,omitempty"`
}
