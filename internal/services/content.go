package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"socialfeed/internal/log"
	"socialfeed/internal/media"
	"socialfeed/internal/models"
	"socialfeed/internal/store"
	"socialfeed/internal/utils"
)

type CreatePostInput struct {
	Owner       string        `json:"userOwn" form:"userOwn" validate:"required"`
	Description string        `json:"description" form:"description" validate:"required"`
	Media       *media.Upload `json:"-" form:"-"`
	// OwnerAlias is read when userOwn is absent.
	OwnerAlias  string        `json:"owner" form:"owner"`
}

type CommentInput struct {
	User string `json:"user" form:"user" validate:"required"`
	Text string `json:"text" form:"text" validate:"required"`
}

const feedKeyAll = "all"

func feedKeyUser(userID string) string {
	return "user:" + userID
}

// ContentService owns posts, comments and replies. Listings are cached and
// the cache is purged by every write.
type ContentService struct {
	content store.ContentStore
	users   store.UserStore
	media   *media.Store
	feeds   *utils.TTLCache[*store.Feed]
	now     func() time.Time
}

func NewContentService(content store.ContentStore, users store.UserStore, mediaStore *media.Store, feeds *utils.TTLCache[*store.Feed]) *ContentService {
	return &ContentService{
		content: content,
		users:   users,
		media:   mediaStore,
		feeds:   feeds,
		now:     time.Now,
	}
}

// CreatePost saves the media file, then the post. The file is removed again
// if the post cannot be stored.
func (s *ContentService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	in.Owner = strings.TrimSpace(in.Owner)
	if in.Owner == "" {
		in.Owner = strings.TrimSpace(in.OwnerAlias)
	}
	if err := checkRequired(in); err != nil {
		return nil, err
	}
	if in.Media.Empty() {
		return nil, &ValidationError{Missing: []string{"media"}, Message: MsgMediaRequired}
	}
	if err := s.requireUser(ctx, in.Owner); err != nil {
		return nil, err
	}

	name, err := s.media.Save(in.Media.Data, in.Media.Filename)
	if err != nil {
		return nil, err
	}
	post := &models.Post{
		OwnerID:     in.Owner,
		Description: in.Description,
		Media:       name,
		MediaType:   models.MediaTypeFromMIME(in.Media.ContentType),
		CreatedAt:   s.now(),
		CommentIDs:  []string{},
	}
	if err := s.content.CreatePost(ctx, post); err != nil {
		if rmErr := s.media.Remove(name); rmErr != nil {
			log.Errorf("remove orphan media %s: %v", name, rmErr)
		}
		return nil, fmt.Errorf("create post: %w", err)
	}
	s.feeds.Purge()
	return post, nil
}

// AddComment attaches a top-level comment to post postID.
func (s *ContentService) AddComment(ctx context.Context, postID string, in CommentInput) (*models.Comment, error) {
	in.User = strings.TrimSpace(in.User)
	if err := checkRequired(in); err != nil {
		return nil, err
	}
	if _, err := s.content.GetPost(ctx, postID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, notFound(EntityPost)
		}
		return nil, fmt.Errorf("get post: %w", err)
	}
	if err := s.requireUser(ctx, in.User); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		PostID:    postID,
		UserID:    in.User,
		Text:      in.Text,
		CreatedAt: s.now(),
	}
	if err := s.content.CreateComment(ctx, comment); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, notFound(EntityPost)
		}
		return nil, fmt.Errorf("create comment: %w", err)
	}
	s.feeds.Purge()
	return comment, nil
}

// AddReply answers comment commentID. The reply belongs to the same post as
// the comment it answers.
func (s *ContentService) AddReply(ctx context.Context, commentID string, in CommentInput) (*models.Comment, error) {
	in.User = strings.TrimSpace(in.User)
	if err := checkRequired(in); err != nil {
		return nil, err
	}
	parent, err := s.content.GetComment(ctx, commentID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, notFound(EntityComment)
		}
		return nil, fmt.Errorf("get comment: %w", err)
	}
	if err := s.requireUser(ctx, in.User); err != nil {
		return nil, err
	}

	parentID := parent.ID
	reply := &models.Comment{
		PostID:    parent.PostID,
		UserID:    in.User,
		ParentID:  &parentID,
		Text:      in.Text,
		CreatedAt: s.now(),
	}
	if err := s.content.CreateComment(ctx, reply); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, notFound(EntityComment)
		}
		return nil, fmt.Errorf("create reply: %w", err)
	}
	s.feeds.Purge()
	return reply, nil
}

// LikePost adds exactly one like and returns the new count.
func (s *ContentService) LikePost(ctx context.Context, postID string) (int, error) {
	likes, err := s.content.IncrementPostLikes(ctx, postID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return 0, notFound(EntityPost)
		}
		return 0, fmt.Errorf("like post: %w", err)
	}
	s.feeds.Purge()
	return likes, nil
}

func (s *ContentService) LikeComment(ctx context.Context, commentID string) (int, error) {
	likes, err := s.content.IncrementCommentLikes(ctx, commentID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return 0, notFound(EntityComment)
		}
		return 0, fmt.Errorf("like comment: %w", err)
	}
	s.feeds.Purge()
	return likes, nil
}

// ListAllPosts returns every post with its comments, replies and authors.
// The returned feed is shared and must not be modified.
func (s *ContentService) ListAllPosts(ctx context.Context) (*store.Feed, error) {
	return s.listPosts(ctx, feedKeyAll, store.PostFilter{})
}

func (s *ContentService) ListPostsByUser(ctx context.Context, userID string) (*store.Feed, error) {
	return s.listPosts(ctx, feedKeyUser(userID), store.PostFilter{OwnerID: userID})
}

func (s *ContentService) listPosts(ctx context.Context, key string, filter store.PostFilter) (*store.Feed, error) {
	if feed, ok := s.feeds.Get(key); ok {
		return feed, nil
	}
	gen := s.feeds.Generation()
	feed, err := s.content.ListPosts(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	// a write during the load leaves the feed uncached
	s.feeds.SetIfGeneration(key, feed, gen)
	return feed, nil
}

func (s *ContentService) requireUser(ctx context.Context, id string) error {
	if _, err := s.users.GetUser(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return notFound(EntityUser)
		}
		return fmt.Errorf("get user: %w", err)
	}
	return nil
}
