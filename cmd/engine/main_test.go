package main

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"activity-hub/internal/api"
	"activity-hub/internal/client"
	"activity-hub/internal/config"
	"activity-hub/internal/store"
)

func testConfig(t *testing.T, snapshotDir string) *config.Config {
	t.Helper()
	t.Setenv("SNAPSHOT_BACKEND", "file")
	t.Setenv("SNAPSHOT_PATH", snapshotDir)
	t.Setenv("BCRYPT_COST", "4")
	t.Setenv("TOKEN_FORMAT", "jwt")
	t.Setenv("JWT_SECRET", "integration-secret")
	cfg, err := config.FromEnv()
	require.NoError(t, err)
	return cfg
}

func startApp(t *testing.T, cfg *config.Config) (*app, *client.Client) {
	t.Helper()
	a, err := newApp(context.Background(), cfg, zap.NewNop().Sugar())
	require.NoError(t, err)
	srv := httptest.NewServer(a.handler)
	t.Cleanup(srv.Close)
	return a, client.New(srv.URL, srv.Client())
}

func TestIntegrationFlow(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t, t.TempDir())
	a, moto := startApp(t, cfg)
	defer a.close()

	_, err := moto.Login(ctx, "user@example.com", "wrong")
	assert.Equal(t, http.StatusUnauthorized, client.StatusOf(err))

	login, err := moto.Login(ctx, "user@example.com", store.SeedPassword)
	require.NoError(t, err)
	assert.Equal(t, "Moto_Traveler", login.User.Username)

	// A second account on the same server.
	diver := client.New(moto.BaseURL, nil)
	_, err = diver.Login(ctx, "diver@example.com", store.SeedPassword)
	require.NoError(t, err)

	post, err := moto.CreatePost(ctx, &api.CreatePostRequest{
		Title:         "Elbrus in winter",
		Content:       "Cold but worth it",
		SubcategoryID: 1,
		Tags:          []string{"mountains"},
	})
	require.NoError(t, err)

	_, err = moto.CreatePost(ctx, &api.CreatePostRequest{Title: "Waves", SubcategoryID: 4})
	assert.Equal(t, http.StatusBadRequest, client.StatusOf(err))

	comment, err := diver.CreateComment(ctx, post.ID, nil, "Which route?")
	require.NoError(t, err)
	_, err = moto.CreateComment(ctx, post.ID, &comment.ID, "The southern one")
	require.NoError(t, err)

	tree, err := diver.Comments(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, tree, 1)
	require.Len(t, tree[0].Replies, 1)

	state, err := diver.Like(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, state.LikesCount)
	_, err = diver.Like(ctx, post.ID)
	assert.Equal(t, http.StatusBadRequest, client.StatusOf(err))

	page, err := moto.Notifications(ctx, true, 0, 0)
	require.NoError(t, err)
	// Two seeded unread notifications, plus the comment and the like.
	assert.Equal(t, 4, page.UnreadCount)

	replies, err := diver.Notifications(ctx, true, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, replies.UnreadCount)

	health, err := moto.Health(ctx)
	require.NoError(t, err)
	assert.Equal(t, "healthy", health.Status)
	assert.Equal(t, 5, health.Posts)
}

func TestStateSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t, t.TempDir())

	first, c := startApp(t, cfg)
	_, err := c.Login(ctx, "cyclist@example.com", store.SeedPassword)
	require.NoError(t, err)
	post, err := c.CreatePost(ctx, &api.CreatePostRequest{Title: "Crimea by bike, part two", SubcategoryID: 3})
	require.NoError(t, err)
	token := c.Token()
	first.close()

	second, c := startApp(t, cfg)
	defer second.close()

	details, err := c.GetPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "Crimea by bike, part two", details.Title)

	// The token issued by the first process is still accepted.
	c.SetToken(token)
	me, err := c.CurrentUser(ctx)
	require.NoError(t, err)
	require.NotNil(t, me.Stats)
	assert.Equal(t, 2, me.Stats.PostsCount)
}

func TestServeReportsListenFailure(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t, t.TempDir())
	a, c := startApp(t, cfg)

	_, err := c.Login(ctx, "diver@example.com", store.SeedPassword)
	require.NoError(t, err)
	post, err := c.CreatePost(ctx, &api.CreatePostRequest{Title: "Blue hole at dawn", SubcategoryID: 2})
	require.NoError(t, err)

	busy, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer busy.Close()

	// The listener error comes back to the caller, which still owns close.
	assert.Error(t, a.serve(ctx, busy.Addr().String()))
	a.close()

	second, c := startApp(t, cfg)
	defer second.close()
	details, err := c.GetPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "Blue hole at dawn", details.Title)
}

func TestServeStopsOnCancel(t *testing.T) {
	a, _ := startApp(t, testConfig(t, t.TempDir()))
	defer a.close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.serve(ctx, "127.0.0.1:0") }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not return after cancel")
	}
}

func TestUnknownSnapshotBackend(t *testing.T) {
	t.Setenv("SNAPSHOT_BACKEND", "tape")
	_, err := config.FromEnv()
	assert.Error(t, err)
}
