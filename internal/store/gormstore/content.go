package gormstore

import (
	"context"

	"socialfeed/internal/models"
	"socialfeed/internal/store"

	"gorm.io/gorm"
)

func (s *Store) CreatePost(ctx context.Context, post *models.Post) error {
	return translate(s.db.WithContext(ctx).Create(post).Error)
}

func (s *Store) GetPost(ctx context.Context, id string) (*models.Post, error) {
	var post models.Post
	if err := s.db.WithContext(ctx).First(&post, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &post, nil
}

func (s *Store) IncrementPostLikes(ctx context.Context, id string) (int, error) {
	return s.incrementLikes(ctx, &models.Post{}, id)
}

func (s *Store) IncrementCommentLikes(ctx context.Context, id string) (int, error) {
	return s.incrementLikes(ctx, &models.Comment{}, id)
}

// incrementLikes bumps the counter in SQL so concurrent likes never overwrite each other.
func (s *Store) incrementLikes(ctx context.Context, model interface{}, id string) (int, error) {
	var likes []int
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(model).Where("id = ?", id).UpdateColumn("likes", gorm.Expr("likes + ?", 1))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Model(model).Where("id = ?", id).Pluck("likes", &likes).Error
	})
	if err != nil {
		return 0, translate(err)
	}
	if len(likes) == 0 {
		return 0, store.ErrNotFound
	}
	return likes[0], nil
}

// CreateComment checks the link target and inserts the comment in one transaction.
func (s *Store) CreateComment(ctx context.Context, comment *models.Comment) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		target := tx.Model(&models.Post{}).Where("id = ?", comment.PostID)
		if comment.ParentID != nil {
			target = tx.Model(&models.Comment{}).Where("id = ?", *comment.ParentID)
		}
		if err := target.Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Create(comment).Error
	})
	if err != nil {
		return translate(err)
	}
	comment.ReplyIDs = []string{}
	return nil
}

func (s *Store) GetComment(ctx context.Context, id string) (*models.Comment, error) {
	var comment models.Comment
	if err := s.db.WithContext(ctx).First(&comment, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	var replies []string
	if err := s.db.WithContext(ctx).Model(&models.Comment{}).
		Where("parent_id = ?", id).
		Order("created_at ASC, id ASC").
		Pluck("id", &replies).Error; err != nil {
		return nil, translate(err)
	}
	comment.ReplyIDs = replies
	if comment.ReplyIDs == nil {
		comment.ReplyIDs = []string{}
	}
	return &comment, nil
}

func (s *Store) ListPosts(ctx context.Context, filter store.PostFilter) (*store.Feed, error) {
	tx := s.db.WithContext(ctx)
	feed := store.NewFeed()

	query := tx.Order("created_at ASC, id ASC")
	if filter.OwnerID != "" {
		query = query.Where("owner_id = ?", filter.OwnerID)
	}
	if err := query.Find(&feed.Posts).Error; err != nil {
		return nil, translate(err)
	}
	if len(feed.Posts) == 0 {
		return feed, nil
	}

	postIDs := make([]string, len(feed.Posts))
	for i, p := range feed.Posts {
		postIDs[i] = p.ID
	}

	// replies inherit post_id, so one query loads the whole thread
	var comments []models.Comment
	if err := tx.Where("post_id IN ?", postIDs).
		Order("created_at ASC, id ASC").
		Find(&comments).Error; err != nil {
		return nil, translate(err)
	}
	feed.Link(comments)

	var authors []models.Author
	if err := tx.Model(&models.User{}).
		Select(models.AuthorColumns).
		Where("id IN ?", feed.AuthorIDs()).
		Find(&authors).Error; err != nil {
		return nil, translate(err)
	}
	for _, a := range authors {
		feed.Authors[a.ID] = a
	}
	return feed, nil
}
