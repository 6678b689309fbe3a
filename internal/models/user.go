package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID           string    `gorm:"primaryKey;size:36" bson:"_id" json:"id"`
	Name         string    `gorm:"not null" bson:"name" json:"name"`
	LastName     string    `gorm:"not null" bson:"lastName" json:"lastName"`
	Email        string    `gorm:"uniqueIndex;not null" bson:"email" json:"email"`
	Username     string    `gorm:"uniqueIndex;not null" bson:"username" json:"username"`
	Password     string    `gorm:"not null" bson:"password" json:"password,omitempty"` // bcrypt hash
	ProfileImage string    `bson:"profileImage" json:"profileImage"`                  // stored filename, empty when none
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = NewID()
	}
	return nil
}

// WithoutPassword returns a copy that is safe to send to clients.
func (u User) WithoutPassword() User {
	u.Password = ""
	return u
}

// Author is the public projection of a User embedded in posts and comments.
type Author struct {
	ID           string `bson:"_id" json:"id"`
	Name         string `bson:"name" json:"name"`
	LastName     string `bson:"lastName" json:"lastName"`
	Username     string `bson:"username" json:"username"`
	ProfileImage string `bson:"profileImage" json:"profileImage"`
}

// AuthorColumns lists the user columns an Author is allowed to read.
var AuthorColumns = []string{"id", "name", "last_name", "username", "profile_image"}

// UserPatch holds the optional fields of a profile update. Nil means unchanged.
type UserPatch struct {
	Name         *string
	LastName     *string
	Email        *string
	Username     *string
	Password     *string // already hashed when it reaches the store
	ProfileImage *string
}

func (p UserPatch) IsEmpty() bool {
	return p.Name == nil && p.LastName == nil && p.Email == nil &&
		p.Username == nil && p.Password == nil && p.ProfileImage == nil
}

// Apply copies the present fields onto u.
func (p UserPatch) Apply(u *User) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.LastName != nil {
		u.LastName = *p.LastName
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Username != nil {
		u.Username = *p.Username
	}
	if p.Password != nil {
		u.Password = *p.Password
	}
	if p.ProfileImage != nil {
		u.ProfileImage = *p.ProfileImage
	}
}

func NewID() string {
	return uuid.NewString()
}
