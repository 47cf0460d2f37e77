package models

type Course struct {
	ID              string  `bson:"_id,omitempty"`
	Title           string  `bson:"title"`
	Description     string  `bson:"description"`
	Instructor      string  `bson:"instructor"`
	Price           float64 `bson:"price"`
	Batch           string  `bson:"batch"`
	ThumbnailObject string  `bson:"thumbnailObject,omitempty"`
	Published       bool    `bson:"published"`
	TimeModel       `bson:",inline"`
}
