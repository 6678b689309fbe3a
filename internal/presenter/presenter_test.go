package presenter

import (
	"testing"
	"time"

	"socialfeed/internal/models"
	"socialfeed/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var madrid = time.FixedZone("CEST", 2*60*60)

func fixedFormatter(now time.Time) *Formatter {
	return NewFormatter(madrid).WithClock(func() time.Time { return now })
}

func TestFormatTimestamp(t *testing.T) {
	now := time.Date(2026, 10, 17, 12, 0, 0, 0, madrid)
	f := fixedFormatter(now)

	tests := []struct {
		name string
		ago  time.Duration
		want string
	}{
		{name: "just now", ago: 10 * time.Second, want: "hace unos segundos"},
		{name: "one minute", ago: 70 * time.Second, want: "hace un minuto"},
		{name: "ten minutes", ago: 10 * time.Minute, want: "hace 10 minutos"},
		{name: "about an hour", ago: 50 * time.Minute, want: "hace una hora"},
		{name: "three hours", ago: 3 * time.Hour, want: "hace 3 horas"},
		{name: "almost a day", ago: 23*time.Hour + 59*time.Minute, want: "hace un día"},
		{name: "exactly a day", ago: 24 * time.Hour, want: "16 de octubre de 2026"},
		{name: "three days", ago: 72 * time.Hour, want: "14 de octubre de 2026"},
		{name: "future is now", ago: -time.Hour, want: "hace unos segundos"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, f.FormatTimestamp(now.Add(-tt.ago)))
		})
	}
}

func TestAbsoluteDateUsesLocation(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	f := fixedFormatter(now)
	// 23:30 UTC on 1 March is already 2 March in UTC+2.
	assert.Equal(t, "02 de marzo de 2026", f.FormatTimestamp(time.Date(2026, 3, 1, 23, 30, 0, 0, time.UTC)))
}

func TestShapeFeed(t *testing.T) {
	now := time.Date(2026, 10, 17, 12, 0, 0, 0, madrid)
	f := fixedFormatter(now)

	parent := "c1"
	feed := store.NewFeed()
	feed.Posts = []models.Post{{
		ID: "p1", OwnerID: "u1", Description: "**hola**", Media: "a.png",
		MediaType: models.MediaTypeImage, Likes: 2, CreatedAt: now.Add(-72 * time.Hour),
	}}
	feed.Authors["u1"] = models.Author{ID: "u1", Name: "Ana", LastName: "García", Username: "ana"}
	feed.Authors["u2"] = models.Author{ID: "u2", Name: "Luis", LastName: "Pérez", Username: "luis"}
	feed.Link([]models.Comment{
		{ID: "c1", PostID: "p1", UserID: "u2", Text: "bonita", CreatedAt: now.Add(-10 * time.Minute)},
		{ID: "c2", PostID: "p1", UserID: "u1", ParentID: &parent, Text: "gracias", CreatedAt: now.Add(-3 * time.Hour)},
	})

	views := f.ShapeFeed(feed)
	require.Len(t, views, 1)
	post := views[0]
	assert.Equal(t, "14 de octubre de 2026", post.CreatedAt)
	require.NotNil(t, post.Owner)
	assert.Equal(t, "ana", post.Owner.Username)
	assert.Contains(t, post.DescriptionHTML, "<strong>hola</strong>")

	require.Len(t, post.Comments, 1)
	c := post.Comments[0]
	assert.Equal(t, "hace 10 minutos", c.CreatedAt)
	assert.Equal(t, "luis", c.User.Username)
	require.Len(t, c.Replies, 1)
	assert.Equal(t, "hace 3 horas", c.Replies[0].CreatedAt)
	assert.Equal(t, "ana", c.Replies[0].User.Username)
	assert.Empty(t, c.Replies[0].Replies)

	// the stored feed keeps its raw timestamps
	assert.Equal(t, now.Add(-10*time.Minute), feed.Comments["c1"].CreatedAt)
}
