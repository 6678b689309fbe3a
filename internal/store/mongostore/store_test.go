package mongostore

import (
	"context"
	"os"
	"testing"
	"time"

	"socialfeed/internal/config"
	"socialfeed/internal/db"
	"socialfeed/internal/models"
	"socialfeed/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Runs against a live server only: MONGO_TEST_URI=mongodb://localhost:27017 go test ./...
func newTestStore(t *testing.T) *Store {
	t.Helper()
	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set")
	}
	ctx := context.Background()
	client, database, err := db.OpenMongo(ctx, &config.Config{
		MongoURI:      uri,
		MongoDatabase: "socialfeed_test_" + models.NewID()[:8],
	})
	require.NoError(t, err)
	s := New(client, database)
	require.NoError(t, s.Migrate(ctx))
	t.Cleanup(func() {
		_ = database.Drop(context.Background())
		_ = s.Close(context.Background())
	})
	return s
}

func TestMongoThread(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	ana := &models.User{Name: "Ana", LastName: "García", Email: "ana@example.com", Username: "ana", Password: "hash"}
	require.NoError(t, s.CreateUser(ctx, ana))
	err := s.CreateUser(ctx, &models.User{Name: "x", LastName: "y", Email: "ana@example.com", Username: "otra", Password: "h"})
	assert.ErrorIs(t, err, store.ErrDuplicate)

	post := &models.Post{OwnerID: ana.ID, Description: "hola", Media: "1.jpg", MediaType: models.MediaTypeImage}
	require.NoError(t, s.CreatePost(ctx, post))

	comment := &models.Comment{PostID: post.ID, UserID: ana.ID, Text: "uno", CreatedAt: time.Now()}
	require.NoError(t, s.CreateComment(ctx, comment))
	reply := &models.Comment{PostID: post.ID, ParentID: &comment.ID, UserID: ana.ID, Text: "dos"}
	require.NoError(t, s.CreateComment(ctx, reply))

	orphan := &models.Comment{PostID: "missing", UserID: ana.ID, Text: "tres"}
	assert.ErrorIs(t, s.CreateComment(ctx, orphan), store.ErrNotFound)
	_, err = s.GetComment(ctx, orphan.ID)
	assert.ErrorIs(t, err, store.ErrNotFound, "unlinked comment is removed")

	likes, err := s.IncrementPostLikes(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, likes)

	feed, err := s.ListPosts(ctx, store.PostFilter{OwnerID: ana.ID})
	require.NoError(t, err)
	require.Len(t, feed.Posts, 1)
	assert.Equal(t, []string{comment.ID}, feed.Posts[0].CommentIDs)
	assert.Equal(t, []string{reply.ID}, feed.Comments[comment.ID].ReplyIDs)
	assert.Equal(t, "ana", feed.Authors[ana.ID].Username)
}
