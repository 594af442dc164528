package timeline

import (
	"context"
	"errors"
	"testing"
	"wallfeed/internal/models"
	"wallfeed/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPinned struct {
	posts []*models.Post
	err   error
	calls int
}

func (s *stubPinned) PinnedPosts(_ context.Context, _ int64, _ models.PermissionScope) ([]*models.Post, error) {
	s.calls++
	return s.posts, s.err
}

func posts(ids ...int64) []*models.Post {
	out := make([]*models.Post, 0, len(ids))
	for _, id := range ids {
		out = append(out, &models.Post{ID: id})
	}
	return out
}

func mainPage(n int) models.Page {
	ids := make([]int64, 0, n)
	for i := 0; i < n; i++ {
		ids = append(ids, int64(100+i))
	}
	return models.Page{Items: posts(ids...), PageSize: 20, HasMore: n == 20}
}

func TestPinnedOverlay_FirstPagePrependsWithoutDedup(t *testing.T) {
	src := &stubPinned{posts: posts(7, 100, 3)}
	o := NewPinnedOverlay(src)

	page, err := o.Apply(context.Background(), mainPage(20), 1, models.PermissionScope{}, NewPager("1", 20))
	require.NoError(t, err)

	assert.Len(t, page.Items, 23)
	assert.Equal(t, []int64{7, 100, 3, 100, 101}, testutil.IDs(page.Items[:5]))
	assert.True(t, page.HasMore)
}

func TestPinnedOverlay_LaterPagesUntouched(t *testing.T) {
	src := &stubPinned{posts: posts(7, 8, 9)}
	o := NewPinnedOverlay(src)

	page, err := o.Apply(context.Background(), mainPage(20), 1, models.PermissionScope{}, NewPager("2", 20))
	require.NoError(t, err)

	assert.Len(t, page.Items, 20)
	assert.Equal(t, 0, src.calls)
}

func TestPinnedOverlay_UnknownOwner(t *testing.T) {
	src := &stubPinned{posts: posts(7)}
	page, err := NewPinnedOverlay(src).Apply(context.Background(), mainPage(2), 0, models.PermissionScope{}, NewPager("", 20))
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, 0, src.calls)
}

func TestPinnedOverlay_NothingPinned(t *testing.T) {
	page, err := NewPinnedOverlay(&stubPinned{}).Apply(context.Background(), mainPage(2), 1, models.PermissionScope{}, NewPager("", 20))
	require.NoError(t, err)
	assert.Equal(t, []int64{100, 101}, testutil.IDs(page.Items))
}

func TestPinnedOverlay_Error(t *testing.T) {
	_, err := NewPinnedOverlay(&stubPinned{err: testutil.ErrInjected}).Apply(context.Background(), mainPage(2), 1, models.PermissionScope{}, NewPager("", 20))

	var se *StorageError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "pinned", se.Op)
	assert.ErrorIs(t, err, testutil.ErrInjected)
}
