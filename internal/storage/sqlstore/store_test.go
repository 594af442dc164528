package sqlstore

import (
	"context"
	"path/filepath"
	"testing"
	"time"
	"wallfeed/internal/models"
	"wallfeed/internal/storage"
	"wallfeed/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLiteStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(SQLite, filepath.Join(t.TempDir(), "wallfeed.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	ctx := context.Background()
	require.NoError(t, s.Migrate(ctx))

	snap := testutil.Fixture()
	for _, p := range snap.Profiles {
		require.NoError(t, s.PutProfile(ctx, p))
	}
	for _, c := range snap.Contacts {
		require.NoError(t, s.PutContact(ctx, c))
	}
	for _, p := range snap.Posts {
		require.NoError(t, s.PutPost(ctx, p))
	}
	for _, term := range snap.Terms {
		require.NoError(t, s.PutTerm(ctx, term))
	}
	for id, us := range snap.Settings {
		require.NoError(t, s.PutUserSettings(ctx, id, us))
	}
	return s
}

func aliceSpec() models.QuerySpec {
	return models.QuerySpec{
		OwnerID: testutil.AliceID,
		Predicates: []models.Predicate{
			{Kind: models.PredOwner, ID: testutil.AliceID},
			{Kind: models.PredVisible},
			{Kind: models.PredNotDeleted},
			{Kind: models.PredNotModerated},
			{Kind: models.PredWall},
			{Kind: models.PredAuthorNotBlocked},
			{Kind: models.PredAuthor, ID: testutil.AliceContact},
		},
		Permission: models.PermissionScope{OwnerID: testutil.AliceID},
		Limit:      20,
	}
}

func TestStore_MigrateIsIdempotent(t *testing.T) {
	s := newSQLiteStore(t)
	assert.NoError(t, s.Migrate(context.Background()))
}

func TestStore_AnonymousOrdering(t *testing.T) {
	s := newSQLiteStore(t)

	posts, err := s.QueryTimeline(context.Background(), aliceSpec())
	require.NoError(t, err)
	assert.Equal(t, []int64{112, 101, 102, 103, 115, 110, 111}, testutil.IDs(posts))
	assert.Equal(t, time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC), posts[0].ReceivedAt)
}

func TestStore_MatchesMemoryStore(t *testing.T) {
	s := newSQLiteStore(t)
	mem := storage.NewMemoryStore()
	mem.Load(testutil.Fixture())

	scopes := []models.PermissionScope{
		{OwnerID: testutil.AliceID},
		{OwnerID: testutil.AliceID, ViewerIsOwner: true},
		{OwnerID: testutil.AliceID, RemoteContactID: testutil.FriendContact, Groups: []int64{testutil.FriendGroup}},
		{OwnerID: testutil.AliceID, RemoteContactID: testutil.FriendContact},
	}
	for _, scope := range scopes {
		spec := aliceSpec()
		spec.Permission = scope

		want, err := mem.QueryTimeline(context.Background(), spec)
		require.NoError(t, err)
		got, err := s.QueryTimeline(context.Background(), spec)
		require.NoError(t, err)
		assert.Equal(t, testutil.IDs(want), testutil.IDs(got), "scope %+v", scope)
	}
}

func TestStore_TermFilters(t *testing.T) {
	s := newSQLiteStore(t)
	spec := aliceSpec()
	spec.TermFilters = []models.TermFilter{
		{Term: "funny", ObjectType: models.TermObjectPost, Type: models.TermCategory, OwnerID: testutil.AliceID},
		{Term: "cats", ObjectType: models.TermObjectPost, Type: models.TermHashtag, OwnerID: testutil.AliceID},
	}

	posts, err := s.QueryTimeline(context.Background(), spec)
	require.NoError(t, err)
	assert.Equal(t, []int64{103}, testutil.IDs(posts))
}

func TestStore_HostileTermDoesNotBreakQuery(t *testing.T) {
	s := newSQLiteStore(t)
	spec := aliceSpec()
	spec.TermFilters = []models.TermFilter{
		{Term: "funny' OR '1'='1", ObjectType: models.TermObjectPost, Type: models.TermCategory, OwnerID: testutil.AliceID},
	}

	posts, err := s.QueryTimeline(context.Background(), spec)
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestStore_Pagination(t *testing.T) {
	s := newSQLiteStore(t)
	spec := aliceSpec()
	spec.Limit = 3
	spec.Offset = 3

	posts, err := s.QueryTimeline(context.Background(), spec)
	require.NoError(t, err)
	assert.Equal(t, []int64{103, 115, 110}, testutil.IDs(posts))

	spec.Offset = -3
	posts, err = s.QueryTimeline(context.Background(), spec)
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestStore_BlockedAuthorExcluded(t *testing.T) {
	s := newSQLiteStore(t)
	spec := models.QuerySpec{
		Predicates: []models.Predicate{
			{Kind: models.PredOwner, ID: testutil.ForumID},
			{Kind: models.PredAuthorNotBlocked},
		},
		Permission: models.PermissionScope{OwnerID: testutil.ForumID},
	}

	posts, err := s.QueryTimeline(context.Background(), spec)
	require.NoError(t, err)
	assert.Equal(t, []int64{202, 201}, testutil.IDs(posts))
}

func TestStore_PinnedPosts(t *testing.T) {
	s := newSQLiteStore(t)

	pinned, err := s.PinnedPosts(context.Background(), testutil.AliceID, models.PermissionScope{OwnerID: testutil.AliceID})
	require.NoError(t, err)
	assert.Equal(t, []int64{111, 110}, testutil.IDs(pinned))
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), pinned[0].PinnedAt)
}

func TestStore_MarkWallSeen(t *testing.T) {
	s := newSQLiteStore(t)

	n, err := s.MarkWallSeen(context.Background(), testutil.AliceID)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = s.MarkWallSeen(context.Background(), testutil.AliceID)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestStore_CountSince(t *testing.T) {
	s := newSQLiteStore(t)

	n, err := s.CountSince(context.Background(), aliceSpec(), time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestStore_ProfileByNickname(t *testing.T) {
	s := newSQLiteStore(t)

	p, err := s.ProfileByNickname(context.Background(), "FORUM")
	require.NoError(t, err)
	assert.Equal(t, models.PageCommunity, p.PageType)
	assert.Equal(t, testutil.ForumContact, p.PrimaryContactID)

	_, err = s.ProfileByNickname(context.Background(), "nobody")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestStore_ContactByID(t *testing.T) {
	s := newSQLiteStore(t)

	c, err := s.ContactByID(context.Background(), testutil.MemberContact)
	require.NoError(t, err)
	assert.Equal(t, testutil.ForumID, c.OwnerID)
	assert.False(t, c.Blocked)

	c, err = s.ContactByID(context.Background(), testutil.BlockedContact)
	require.NoError(t, err)
	assert.True(t, c.Blocked)

	_, err = s.ContactByID(context.Background(), 999)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestStore_UserSettings(t *testing.T) {
	s := newSQLiteStore(t)
	ctx := context.Background()

	us, err := s.UserSettings(ctx, testutil.AliceID)
	require.NoError(t, err)
	require.NotNil(t, us)
	assert.Equal(t, 3, us.ItemsPerPageMobile)

	require.NoError(t, s.PutUserSettings(ctx, testutil.AliceID, &models.UserSettings{ItemsPerPage: 7}))
	us, err = s.UserSettings(ctx, testutil.AliceID)
	require.NoError(t, err)
	assert.Equal(t, 7, us.ItemsPerPage)

	us, err = s.UserSettings(ctx, 999)
	require.NoError(t, err)
	assert.Nil(t, us)
}

func TestStore_Ping(t *testing.T) {
	s := newSQLiteStore(t)
	assert.NoError(t, s.Ping(context.Background()))

	require.NoError(t, s.Close())
	assert.Error(t, s.Ping(context.Background()))
}
