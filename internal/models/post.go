package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

type MediaType string

const (
	MediaTypeImage MediaType = "image"
	MediaTypeVideo MediaType = "video"
)

// MediaTypeFromMIME maps "image/*" to image and anything else to video.
func MediaTypeFromMIME(mime string) MediaType {
	if strings.HasPrefix(strings.ToLower(mime), "image") {
		return MediaTypeImage
	}
	return MediaTypeVideo
}

type Post struct {
	ID          string    `gorm:"primaryKey;size:36" bson:"_id" json:"id"`
	OwnerID     string    `gorm:"size:36;not null;index" bson:"userOwn" json:"userOwn"`
	Description string    `gorm:"type:text;not null" bson:"description" json:"description"`
	Media       string    `bson:"media" json:"media"`
	MediaType   MediaType `gorm:"size:10" bson:"mediaType" json:"mediaType"`
	Likes       int       `gorm:"not null;default:0" bson:"likes" json:"likes"`
	CreatedAt   time.Time `gorm:"index" bson:"createdAt" json:"createdAt"`

	// Top-level comments in insertion order. Stored as an array in document
	// backends and derived from comments.post_id in relational ones.
	CommentIDs []string `gorm:"-" bson:"comments" json:"comments"`
}

func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = NewID()
	}
	return nil
}
