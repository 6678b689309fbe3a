package presenter

import (
	"socialfeed/internal/models"
	"socialfeed/internal/store"
	"socialfeed/internal/utils"
)

type CommentView struct {
	ID        string         `json:"id"`
	Post      string         `json:"post"`
	User      *models.Author `json:"user"`
	Text      string         `json:"text"`
	Likes     int            `json:"likes"`
	CreatedAt string         `json:"createdAt"`
	Replies   []CommentView  `json:"replies"`
}

type PostView struct {
	ID              string         `json:"id"`
	Owner           *models.Author `json:"userOwn"`
	Description     string         `json:"description"`
	DescriptionHTML string         `json:"descriptionHtml"`
	Media           string         `json:"media"`
	MediaType       string         `json:"mediaType"`
	Likes           int            `json:"likes"`
	CreatedAt       string         `json:"createdAt"`
	Comments        []CommentView  `json:"comments"`
}

// ShapeFeed shapes every post of feed in order. feed is not modified.
func (f *Formatter) ShapeFeed(feed *store.Feed) []PostView {
	views := make([]PostView, 0, len(feed.Posts))
	for i := range feed.Posts {
		views = append(views, f.ShapePost(&feed.Posts[i], feed))
	}
	return views
}

// ShapePost resolves the post's author, comments and replies from feed.
func (f *Formatter) ShapePost(post *models.Post, feed *store.Feed) PostView {
	return PostView{
		ID:              post.ID,
		Owner:           author(feed, post.OwnerID),
		Description:     post.Description,
		DescriptionHTML: utils.RenderMarkdown(post.Description),
		Media:           post.Media,
		MediaType:       string(post.MediaType),
		Likes:           post.Likes,
		CreatedAt:       f.FormatTimestamp(post.CreatedAt),
		Comments:        f.shapeComments(post.CommentIDs, feed),
	}
}

func (f *Formatter) shapeComments(ids []string, feed *store.Feed) []CommentView {
	views := make([]CommentView, 0, len(ids))
	for _, id := range ids {
		c, ok := feed.Comments[id]
		if !ok {
			continue
		}
		views = append(views, CommentView{
			ID:        c.ID,
			Post:      c.PostID,
			User:      author(feed, c.UserID),
			Text:      c.Text,
			Likes:     c.Likes,
			CreatedAt: f.FormatTimestamp(c.CreatedAt),
			Replies:   f.shapeComments(c.ReplyIDs, feed),
		})
	}
	return views
}

// author returns nil for users that no longer resolve.
func author(feed *store.Feed, id string) *models.Author {
	a, ok := feed.Authors[id]
	if !ok {
		return nil
	}
	return &a
}
