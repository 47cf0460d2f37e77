package requests

type CreateCourse struct {
	Title       string  `json:"title" validate:"required,min=3,max=120"`
	Description string  `json:"description" validate:"required"`
	Instructor  string  `json:"instructor" validate:"required"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Batch       string  `json:"batch"`
	Published   bool    `json:"published"`
}

type UpdateCourse struct {
	Title       *string  `json:"title,omitempty"`
	Description *string  `json:"description,omitempty"`
	Instructor  *string  `json:"instructor,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Batch       *string  `json:"batch,omitempty"`
	Published   *bool    `json:"published,omitempty"`
}
