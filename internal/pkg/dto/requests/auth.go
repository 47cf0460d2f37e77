package requests

type RegisterUser struct {
	Name           string `json:"name" validate:"required,min=2,max=60"`
	Email          string `json:"email" validate:"required,email"`
	Password       string `json:"password" validate:"required,min=8"`
	RetypePassword string `json:"retype_password" validate:"required,eqfield=Password"`
}

type LoginUser struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type VerifyOTP struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp" validate:"required,numeric,len=6"`
}

type ResendOTP struct {
	Email string `json:"email" validate:"required,email"`
}

type GoogleSignIn struct {
	IDToken string `json:"id_token" validate:"required"`
}
