package models

import (
	"time"

	"gorm.io/gorm"
)

// Comment is either a top-level comment (ParentID nil) or a reply. Replies
// carry the PostID of the comment they answer.
type Comment struct {
	ID        string    `gorm:"primaryKey;size:36" bson:"_id" json:"id"`
	PostID    string    `gorm:"size:36;not null;index" bson:"post" json:"post"`
	UserID    string    `gorm:"size:36;not null;index" bson:"user" json:"user"`
	ParentID  *string   `gorm:"size:36;index" bson:"parent,omitempty" json:"parent,omitempty"`
	Text      string    `gorm:"type:text;not null" bson:"text" json:"text"`
	Likes     int       `gorm:"not null;default:0" bson:"likes" json:"likes"`
	CreatedAt time.Time `gorm:"index" bson:"createdAt" json:"createdAt"`

	ReplyIDs []string `gorm:"-" bson:"replies" json:"replies"`
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = NewID()
	}
	return nil
}

func (c *Comment) IsReply() bool {
	return c.ParentID != nil
}
