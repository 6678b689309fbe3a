package mongostore

import (
	"context"
	"time"

	"socialfeed/internal/log"
	"socialfeed/internal/models"
	"socialfeed/internal/store"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (s *Store) CreatePost(ctx context.Context, post *models.Post) error {
	if post.ID == "" {
		post.ID = models.NewID()
	}
	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now()
	}
	post.CommentIDs = []string{}
	_, err := s.posts.InsertOne(ctx, post)
	return translate(err)
}

func (s *Store) GetPost(ctx context.Context, id string) (*models.Post, error) {
	var post models.Post
	if err := s.posts.FindOne(ctx, bson.M{"_id": id}).Decode(&post); err != nil {
		return nil, translate(err)
	}
	return &post, nil
}

func (s *Store) IncrementPostLikes(ctx context.Context, id string) (int, error) {
	return incrementLikes(ctx, s.posts, id)
}

func (s *Store) IncrementCommentLikes(ctx context.Context, id string) (int, error) {
	return incrementLikes(ctx, s.comments, id)
}

// incrementLikes uses $inc so the read-modify-write happens inside the server.
func incrementLikes(ctx context.Context, coll *mongo.Collection, id string) (int, error) {
	var doc struct {
		Likes int `bson:"likes"`
	}
	err := coll.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$inc": bson.M{"likes": 1}},
		options.FindOneAndUpdate().
			SetReturnDocument(options.After).
			SetProjection(bson.M{"likes": 1}),
	).Decode(&doc)
	if err != nil {
		return 0, translate(err)
	}
	return doc.Likes, nil
}

// CreateComment inserts the comment, then pushes its id onto the post or the
// parent comment. When the push fails the inserted comment is deleted again.
func (s *Store) CreateComment(ctx context.Context, comment *models.Comment) error {
	if comment.ID == "" {
		comment.ID = models.NewID()
	}
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now()
	}
	comment.ReplyIDs = []string{}
	if _, err := s.comments.InsertOne(ctx, comment); err != nil {
		return translate(err)
	}

	var (
		res *mongo.UpdateResult
		err error
	)
	if comment.ParentID != nil {
		res, err = s.comments.UpdateOne(ctx,
			bson.M{"_id": *comment.ParentID},
			bson.M{"$push": bson.M{"replies": comment.ID}})
	} else {
		res, err = s.posts.UpdateOne(ctx,
			bson.M{"_id": comment.PostID},
			bson.M{"$push": bson.M{"comments": comment.ID}})
	}
	if err == nil && res.MatchedCount == 0 {
		err = store.ErrNotFound
	}
	if err != nil {
		if _, derr := s.comments.DeleteOne(ctx, bson.M{"_id": comment.ID}); derr != nil {
			log.Errorf("failed to remove unlinked comment %s: %v", comment.ID, derr)
		}
		return translate(err)
	}
	return nil
}

func (s *Store) GetComment(ctx context.Context, id string) (*models.Comment, error) {
	var comment models.Comment
	if err := s.comments.FindOne(ctx, bson.M{"_id": id}).Decode(&comment); err != nil {
		return nil, translate(err)
	}
	if comment.ReplyIDs == nil {
		comment.ReplyIDs = []string{}
	}
	return &comment, nil
}

func (s *Store) ListPosts(ctx context.Context, filter store.PostFilter) (*store.Feed, error) {
	feed := store.NewFeed()

	query := bson.M{}
	if filter.OwnerID != "" {
		query["userOwn"] = filter.OwnerID
	}
	cursor, err := s.posts.Find(ctx, query,
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}}))
	if err != nil {
		return nil, translate(err)
	}
	if err := cursor.All(ctx, &feed.Posts); err != nil {
		return nil, translate(err)
	}
	if len(feed.Posts) == 0 {
		return feed, nil
	}

	postIDs := make(bson.A, len(feed.Posts))
	for i := range feed.Posts {
		if feed.Posts[i].CommentIDs == nil {
			feed.Posts[i].CommentIDs = []string{}
		}
		postIDs[i] = feed.Posts[i].ID
	}

	cursor, err = s.comments.Find(ctx, bson.M{"post": bson.M{"$in": postIDs}})
	if err != nil {
		return nil, translate(err)
	}
	var comments []models.Comment
	if err := cursor.All(ctx, &comments); err != nil {
		return nil, translate(err)
	}
	for _, c := range comments {
		if c.ReplyIDs == nil {
			c.ReplyIDs = []string{}
		}
		feed.Comments[c.ID] = c
	}

	authorIDs := bson.A{}
	for _, id := range feed.AuthorIDs() {
		authorIDs = append(authorIDs, id)
	}
	cursor, err = s.users.Find(ctx, bson.M{"_id": bson.M{"$in": authorIDs}},
		options.Find().SetProjection(bson.M{"name": 1, "lastName": 1, "username": 1, "profileImage": 1}))
	if err != nil {
		return nil, translate(err)
	}
	var authors []models.Author
	if err := cursor.All(ctx, &authors); err != nil {
		return nil, translate(err)
	}
	for _, a := range authors {
		feed.Authors[a.ID] = a
	}
	return feed, nil
}
