package responses

import "time"

type CourseDetail struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Instructor   string    `json:"instructor"`
	Price        float64   `json:"price"`
	Batch        string    `json:"batch,omitempty"`
	ThumbnailURL string    `json:"thumbnailUrl,omitempty"`
	Published    bool      `json:"published"`
	CreatedAt    time.Time `json:"createdAt"`
}
