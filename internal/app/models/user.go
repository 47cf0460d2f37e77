package models

type User struct {
	ID              string   `bson:"_id,omitempty"`
	Name            string   `bson:"name"`
	Email           string   `bson:"email"`
	Password        string   `bson:"password,omitempty"`
	GoogleID        string   `bson:"googleId,omitempty"`
	Role            string   `bson:"role"`
	AccountStatus   string   `bson:"accountStatus"`
	EnrolledCourses []string `bson:"enrolledCourses"`
	TimeModel       `bson:",inline"`
}

// IsEnrolled reports whether courseID is already in the user's enrollment list.
func (u *User) IsEnrolled(courseID string) bool {
	for _, id := range u.EnrolledCourses {
		if id == courseID {
			return true
		}
	}
	return false
}
