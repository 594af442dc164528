package storage

import (
	"context"
	"errors"
	"slices"
	"time"
	"wallfeed/internal/models"
)

var ErrNotFound = errors.New("not found")

// PostStore executes timeline queries built by the timeline package.
type PostStore interface {
	ProfileByNickname(ctx context.Context, nickname string) (*models.Profile, error)
	ContactByID(ctx context.Context, id int64) (*models.Contact, error)
	QueryTimeline(ctx context.Context, spec models.QuerySpec) ([]*models.Post, error)
	CountSince(ctx context.Context, spec models.QuerySpec, since time.Time) (int, error)
	PinnedPosts(ctx context.Context, ownerID int64, scope models.PermissionScope) ([]*models.Post, error)
	MarkWallSeen(ctx context.Context, ownerID int64) (int, error)
	UserSettings(ctx context.Context, userID int64) (*models.UserSettings, error)
	Ping(ctx context.Context) error
	Close() error
}

// Permitted is the ACL evaluator. The owner sees everything. Anyone else
// sees public posts; a remote contact additionally sees posts that allow
// them or one of their groups, unless they or one of their groups is denied.
func Permitted(post *models.Post, scope models.PermissionScope) bool {
	if scope.ViewerIsOwner {
		return true
	}
	if scope.RemoteContactID == 0 {
		return post.IsPublic()
	}

	if slices.Contains(post.DenyCID, scope.RemoteContactID) || intersects(post.DenyGID, scope.Groups) {
		return false
	}
	if post.IsPublic() {
		return true
	}
	return slices.Contains(post.AllowCID, scope.RemoteContactID) || intersects(post.AllowGID, scope.Groups)
}

func intersects(a, b []int64) bool {
	for _, x := range a {
		if slices.Contains(b, x) {
			return true
		}
	}
	return false
}

// Less orders posts by received time desc, then thread id desc.
func Less(a, b *models.Post) bool {
	if !a.ReceivedAt.Equal(b.ReceivedAt) {
		return a.ReceivedAt.After(b.ReceivedAt)
	}
	return a.ThreadID > b.ThreadID
}
