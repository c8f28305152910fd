package entity

import "time"

// Episode belongs to exactly one course.
//
// Position determines display order and next-episode sequencing. It is not
// required to be unique within a course; listings sort by position ascending
// with creation time as the tie-break so the order stays stable.
type Episode struct {
	ID            string
	CourseID      string
	Title         string
	Description   string
	Position      int
	IsFreePreview bool
	VideoURL      string
	ThumbnailURL  string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
