package timeline

import (
	"context"
	"math"
	"strconv"
	"testing"
	"wallfeed/internal/models"
	"wallfeed/internal/structures"
	"wallfeed/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSettings struct {
	data map[int64]*models.UserSettings
	err  error
}

func (s *stubSettings) UserSettings(_ context.Context, userID int64) (*models.UserSettings, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.data[userID], nil
}

func TestNewPager(t *testing.T) {
	cases := []struct {
		param string
		page  int
		start int
	}{
		{"", 1, 0},
		{"1", 1, 0},
		{"3", 3, 40},
		{"0", 1, 0},
		{"-2", 1, 0},
		{"abc", 1, 0},
	}
	for _, tc := range cases {
		p := NewPager(tc.param, 20)
		assert.Equal(t, tc.page, p.Page, tc.param)
		assert.Equal(t, tc.start, p.Start(), tc.param)
		assert.Equal(t, tc.start == 0, p.IsFirstPage(), tc.param)
	}
}

func TestNewPager_HugePageIsCapped(t *testing.T) {
	for _, size := range []int{1, 3, 20} {
		for _, param := range []string{"4611686018427387904", strconv.Itoa(math.MaxInt)} {
			p := NewPager(param, size)
			assert.False(t, p.IsFirstPage(), "%s/%d", param, size)
			assert.Positive(t, p.Start(), "%s/%d", param, size)
			assert.LessOrEqual(t, p.Page, MaxPage(size))
		}
	}

	// beyond int range the value does not parse at all
	assert.True(t, NewPager("99999999999999999999", 20).IsFirstPage())
}

func TestNewPager_MinimumSize(t *testing.T) {
	assert.Equal(t, 1, NewPager("", 0).ItemsPerPage)
}

func TestClampPageSize(t *testing.T) {
	assert.Equal(t, 20, ClampPageSize(20, 0))
	assert.Equal(t, 10, ClampPageSize(20, 10))
	assert.Equal(t, 20, ClampPageSize(20, 50))
}

func TestPageSizeResolver(t *testing.T) {
	conf := structures.TimelineConfig{ItemsPerPage: 20, ItemsPerPageMobile: 10}
	settings := &stubSettings{data: map[int64]*models.UserSettings{
		1: {ItemsPerPage: 5, ItemsPerPageMobile: 3},
		2: {ItemsPerPage: 0, ItemsPerPageMobile: 4},
	}}
	r := NewPageSizeResolver(conf, settings)
	ctx := context.Background()

	cases := []struct {
		viewer models.Viewer
		want   int
	}{
		{models.Viewer{}, 20},
		{models.Viewer{Mobile: true}, 10},
		{models.Viewer{LocalUserID: 1}, 5},
		{models.Viewer{LocalUserID: 1, Mobile: true}, 3},
		{models.Viewer{LocalUserID: 2}, 20},
		{models.Viewer{LocalUserID: 2, Mobile: true}, 4},
		{models.Viewer{LocalUserID: 9}, 20},
	}
	for _, tc := range cases {
		got, err := r.Resolve(ctx, tc.viewer)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "%+v", tc.viewer)
	}
}

func TestPageSizeResolver_ThemeClamp(t *testing.T) {
	r := NewPageSizeResolver(structures.TimelineConfig{ItemsPerPage: 20, ItemsPerPageMobile: 10, ForceMaxItems: 8}, nil)

	got, err := r.Resolve(context.Background(), models.Viewer{LocalUserID: 1})
	require.NoError(t, err)
	assert.Equal(t, 8, got)
}

func TestPageSizeResolver_SettingsError(t *testing.T) {
	r := NewPageSizeResolver(structures.TimelineConfig{ItemsPerPage: 20}, &stubSettings{err: testutil.ErrInjected})

	_, err := r.Resolve(context.Background(), models.Viewer{LocalUserID: 1})
	assert.ErrorIs(t, err, testutil.ErrInjected)

	got, err := r.Resolve(context.Background(), models.Viewer{})
	require.NoError(t, err)
	assert.Equal(t, 20, got)
}
