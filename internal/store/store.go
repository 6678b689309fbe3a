// Package store defines the persistence contracts used by the services.
// Implementations live in gormstore (postgres, sqlite) and mongostore.
package store

import (
	"context"
	"errors"

	"socialfeed/internal/models"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate key")
)

type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, id string) (*models.User, error)
	FindUserByUsername(ctx context.Context, username string) (*models.User, error)
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	// FindUsersByEmailOrUsername returns every user matching either value.
	FindUsersByEmailOrUsername(ctx context.Context, email, username string) ([]models.User, error)
	UpdateUser(ctx context.Context, id string, patch models.UserPatch) (*models.User, error)
}

type ContentStore interface {
	CreatePost(ctx context.Context, post *models.Post) error
	GetPost(ctx context.Context, id string) (*models.Post, error)
	IncrementPostLikes(ctx context.Context, id string) (int, error)

	// CreateComment persists the comment and links it to its post, or to its
	// parent comment when ParentID is set.
	CreateComment(ctx context.Context, comment *models.Comment) error
	GetComment(ctx context.Context, id string) (*models.Comment, error)
	IncrementCommentLikes(ctx context.Context, id string) (int, error)

	ListPosts(ctx context.Context, filter PostFilter) (*Feed, error)
}

type Store interface {
	UserStore
	ContentStore
	Migrate(ctx context.Context) error
	Close(ctx context.Context) error
}

type PostFilter struct {
	OwnerID string // empty lists every post
}

// Feed is a listing with its comments kept in an arena keyed by id.
// Post.CommentIDs and Comment.ReplyIDs reference entries of Comments.
type Feed struct {
	Posts    []models.Post
	Comments map[string]models.Comment
	Authors  map[string]models.Author
}

func NewFeed() *Feed {
	return &Feed{
		Comments: map[string]models.Comment{},
		Authors:  map[string]models.Author{},
	}
}

// Link fills Post.CommentIDs and Comment.ReplyIDs from parent pointers.
// comments must be in insertion order.
func (f *Feed) Link(comments []models.Comment) {
	postIndex := make(map[string]int, len(f.Posts))
	for i := range f.Posts {
		f.Posts[i].CommentIDs = []string{}
		postIndex[f.Posts[i].ID] = i
	}
	for _, c := range comments {
		c.ReplyIDs = []string{}
		f.Comments[c.ID] = c
	}
	for _, c := range comments {
		if c.ParentID == nil {
			if i, ok := postIndex[c.PostID]; ok {
				f.Posts[i].CommentIDs = append(f.Posts[i].CommentIDs, c.ID)
			}
			continue
		}
		if parent, ok := f.Comments[*c.ParentID]; ok {
			parent.ReplyIDs = append(parent.ReplyIDs, c.ID)
			f.Comments[parent.ID] = parent
		}
	}
}

// AuthorIDs returns the distinct user ids referenced by posts and comments.
func (f *Feed) AuthorIDs() []string {
	seen := map[string]bool{}
	ids := []string{}
	add := func(id string) {
		if id != "" && !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	for _, p := range f.Posts {
		add(p.OwnerID)
	}
	for _, c := range f.Comments {
		add(c.UserID)
	}
	return ids
}
