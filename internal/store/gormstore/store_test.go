package gormstore

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"socialfeed/internal/config"
	"socialfeed/internal/db"
	"socialfeed/internal/models"
	"socialfeed/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	gdb, err := db.Open(&config.Config{
		StoreDriver: config.DriverSQLite,
		DatabaseURL: filepath.Join(t.TempDir(), "test.db"),
	})
	require.NoError(t, err)
	s := New(gdb)
	require.NoError(t, s.Migrate(context.Background()))
	t.Cleanup(func() { _ = s.Close(context.Background()) })
	return s
}

func seedUser(t *testing.T, s *Store, username string) *models.User {
	t.Helper()
	u := &models.User{
		Name:     "Ana",
		LastName: "García",
		Email:    username + "@example.com",
		Username: username,
		Password: "hash",
	}
	require.NoError(t, s.CreateUser(context.Background(), u))
	return u
}

func TestUserLookups(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	ana := seedUser(t, s, "ana")
	require.NotEmpty(t, ana.ID)

	got, err := s.FindUserByUsername(ctx, "ana")
	require.NoError(t, err)
	assert.Equal(t, ana.ID, got.ID)

	_, err = s.FindUserByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = s.GetUser(ctx, "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)

	seedUser(t, s, "luis")
	users, err := s.FindUsersByEmailOrUsername(ctx, "luis@example.com", "ana")
	require.NoError(t, err)
	assert.Len(t, users, 2)
}

func TestDuplicateUsernameIsTranslated(t *testing.T) {
	s := newTestStore(t)
	seedUser(t, s, "ana")

	dup := &models.User{Name: "x", LastName: "y", Email: "other@example.com", Username: "ana", Password: "h"}
	err := s.CreateUser(context.Background(), dup)
	assert.ErrorIs(t, err, store.ErrDuplicate)
}

func TestUpdateUserAppliesOnlyPresentFields(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	ana := seedUser(t, s, "ana")

	name := "Anita"
	updated, err := s.UpdateUser(ctx, ana.ID, models.UserPatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Anita", updated.Name)
	assert.Equal(t, "García", updated.LastName)

	reloaded, err := s.GetUser(ctx, ana.ID)
	require.NoError(t, err)
	assert.Equal(t, "Anita", reloaded.Name)
	assert.Equal(t, "ana@example.com", reloaded.Email)

	_, err = s.UpdateUser(ctx, "missing", models.UserPatch{Name: &name})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestIncrementLikes(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	ana := seedUser(t, s, "ana")
	post := &models.Post{OwnerID: ana.ID, Description: "hola", Media: "a.jpg", MediaType: models.MediaTypeImage}
	require.NoError(t, s.CreatePost(ctx, post))

	for i := 1; i <= 5; i++ {
		likes, err := s.IncrementPostLikes(ctx, post.ID)
		require.NoError(t, err)
		assert.Equal(t, i, likes)
	}

	_, err := s.IncrementPostLikes(ctx, "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.IncrementCommentLikes(ctx, "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestCreateCommentRequiresTarget(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	ana := seedUser(t, s, "ana")

	err := s.CreateComment(ctx, &models.Comment{PostID: "missing", UserID: ana.ID, Text: "hola"})
	assert.ErrorIs(t, err, store.ErrNotFound)

	parent := "missing"
	err = s.CreateComment(ctx, &models.Comment{PostID: "p", ParentID: &parent, UserID: ana.ID, Text: "hola"})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestListPostsBuildsArena(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	ana := seedUser(t, s, "ana")
	luis := seedUser(t, s, "luis")

	base := time.Now().Add(-time.Hour)
	p1 := &models.Post{OwnerID: ana.ID, Description: "uno", Media: "1.jpg", MediaType: models.MediaTypeImage, CreatedAt: base}
	p2 := &models.Post{OwnerID: luis.ID, Description: "dos", Media: "2.mp4", MediaType: models.MediaTypeVideo, CreatedAt: base.Add(time.Minute)}
	require.NoError(t, s.CreatePost(ctx, p1))
	require.NoError(t, s.CreatePost(ctx, p2))

	c1 := &models.Comment{PostID: p1.ID, UserID: luis.ID, Text: "primero", CreatedAt: base.Add(2 * time.Minute)}
	require.NoError(t, s.CreateComment(ctx, c1))
	c2 := &models.Comment{PostID: p1.ID, UserID: ana.ID, Text: "segundo", CreatedAt: base.Add(3 * time.Minute)}
	require.NoError(t, s.CreateComment(ctx, c2))
	r1 := &models.Comment{PostID: p1.ID, ParentID: &c1.ID, UserID: ana.ID, Text: "respuesta", CreatedAt: base.Add(4 * time.Minute)}
	require.NoError(t, s.CreateComment(ctx, r1))

	feed, err := s.ListPosts(ctx, store.PostFilter{})
	require.NoError(t, err)
	require.Len(t, feed.Posts, 2)
	assert.Equal(t, p1.ID, feed.Posts[0].ID)
	assert.Equal(t, []string{c1.ID, c2.ID}, feed.Posts[0].CommentIDs, "replies never appear in the post list")
	assert.Empty(t, feed.Posts[1].CommentIDs)
	assert.Equal(t, []string{r1.ID}, feed.Comments[c1.ID].ReplyIDs)
	assert.Len(t, feed.Comments, 3)
	assert.Equal(t, "luis", feed.Authors[luis.ID].Username)
	assert.Equal(t, "García", feed.Authors[ana.ID].LastName)

	byLuis, err := s.ListPosts(ctx, store.PostFilter{OwnerID: luis.ID})
	require.NoError(t, err)
	require.Len(t, byLuis.Posts, 1)
	assert.Equal(t, p2.ID, byLuis.Posts[0].ID)

	comment, err := s.GetComment(ctx, c1.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{r1.ID}, comment.ReplyIDs)
}
