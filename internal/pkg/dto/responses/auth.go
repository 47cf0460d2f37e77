package responses

type LoginResponse struct {
	Token string       `json:"token"`
	User  *UserProfile `json:"user"`
}

type UserProfile struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Email           string   `json:"email"`
	Role            string   `json:"role"`
	AccountStatus   string   `json:"account_status"`
	EnrolledCourses []string `json:"enrolled_courses"`
}
