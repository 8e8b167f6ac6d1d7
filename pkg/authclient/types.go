package authclient

import (
	"github.com/dmitrymomot/authkit/pkg/permissions"
)

// Credentials is the login payload. The API accepts two credential kinds:
// email+password, or mobile+country code followed by an OTP verification.
// Exactly one kind must be populated per attempt.
type Credentials struct {
	Email       string `json:"email,omitempty" validate:"omitempty,email"`
	Password    string `json:"password,omitempty"`
	Mobile      string `json:"mobile,omitempty" validate:"omitempty,numeric"`
	CountryCode string `json:"country_code,omitempty"`
}

// isEmail reports whether the payload is an email+password attempt.
func (c Credentials) isEmail() bool {
	return c.Email != "" || c.Password != ""
}

// isMobile reports whether the payload is a mobile attempt.
func (c Credentials) isMobile() bool {
	return c.Mobile != "" || c.CountryCode != ""
}

// LoginResponse is the success payload of the login and OTP-verify
// endpoints. The user object is intentionally not modeled: identity is
// always derived from the token, never trusted from a side channel.
type LoginResponse struct {
	Token   string `json:"token"`
	Message string `json:"message,omitempty"`
}

// RefreshResponse is the success payload of the refresh endpoint.
type RefreshResponse struct {
	Token string `json:"token"`
}

// otpRequest is the payload of the OTP send endpoint.
type otpRequest struct {
	Mobile      string `json:"mobile"`
	CountryCode string `json:"country_code"`
}

// otpVerifyRequest is the payload of the OTP verify endpoint.
type otpVerifyRequest struct {
	Mobile      string `json:"mobile"`
	CountryCode string `json:"country_code"`
	Code        string `json:"code"`
}

// permissionsResponse is the payload of the permissions endpoint.
type permissionsResponse struct {
	Success     bool                `json:"success"`
	Permissions []permissions.Grant `json:"permissions"`
}

// Endpoints names the API paths the client calls, relative to the base URL.
type Endpoints struct {
	Login       string
	OTPSend     string
	OTPVerify   string
	Logout      string
	Refresh     string
	Permissions string
}

// DefaultEndpoints returns the paths the auth API serves by default.
func DefaultEndpoints() Endpoints {
	return Endpoints{
		Login:       "/auth/login",
		OTPSend:     "/auth/otp/send",
		OTPVerify:   "/auth/otp/verify",
		Logout:      "/auth/logout",
		Refresh:     "/auth/refresh",
		Permissions: "/auth/permissions",
	}
}
