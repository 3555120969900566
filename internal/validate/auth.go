package validate

import "strings"

// SignUpInput is the body of POST /api/auth/sign-up.  Any role sent by the
// client is not part of the input and is therefore ignored.
type SignUpInput struct {
	Email    string  `json:"email" label:"Email" validate:"required,email,max=255"`
	Password string  `json:"password" label:"Password" validate:"required,min=6,max=72"`
	FullName string  `json:"full_name" label:"Full name" validate:"required,min=2,max=255"`
	Phone    *string `json:"phone" label:"10-digit phone number" validate:"omitempty,len=10,number"`
}

// Normalize trims surrounding whitespace and drops an empty phone.
func (in *SignUpInput) Normalize() {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.FullName = strings.TrimSpace(in.FullName)
	if in.Phone != nil {
		p := strings.TrimSpace(*in.Phone)
		if p == "" {
			in.Phone = nil
		} else {
			in.Phone = &p
		}
	}
}

// SignInInput is the body of POST /api/auth/sign-in.
type SignInInput struct {
	Email    string `json:"email" label:"Email" validate:"required,email"`
	Password string `json:"password" label:"Password" validate:"required"`
}

// RefreshInput carries a raw refresh token (refresh and sign-out).
type RefreshInput struct {
	RefreshToken string `json:"refresh_token" label:"Refresh token" validate:"required"`
}

// ProfileInput is the body of PUT /api/auth/profile.  Nil fields are left
// unchanged; an empty phone clears it.
type ProfileInput struct {
	FullName *string `json:"full_name" label:"Full name" validate:"omitempty,min=2,max=255"`
	Phone    *string `json:"phone" label:"10-digit phone number" validate:"omitempty,len=10,number"`
}

// SignUp normalizes and validates in.
func SignUp(in *SignUpInput) error {
	in.Normalize()
	return Struct(in)
}

// SignIn validates in after normalizing the email.
func SignIn(in *SignInInput) error {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	return Struct(in)
}

// Profile validates in.  A blank full name is rejected; a blank phone is
// kept so the caller can clear the stored number.
func Profile(in *ProfileInput) error {
	if in.FullName != nil {
		n := strings.TrimSpace(*in.FullName)
		in.FullName = &n
		if n == "" {
			return &Error{Field: "FullName", Message: "Full name is required"}
		}
	}
	if in.Phone != nil {
		p := strings.TrimSpace(*in.Phone)
		in.Phone = &p
	}
	check := *in
	if check.Phone != nil && *check.Phone == "" {
		check.Phone = nil
	}
	return Struct(&check)
}
