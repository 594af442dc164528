package timeline

import (
	"context"
	"time"
	"wallfeed/internal/models"
	"wallfeed/internal/providers"
)

// UpdateTracker remembers when a viewer last rendered a wall so the update
// poller can tell which posts are new.
type UpdateTracker struct {
	store  providers.LastSeenStoreInterface
	logger providers.Logger
}

func NewUpdateTracker(store providers.LastSeenStoreInterface, logger providers.Logger) *UpdateTracker {
	return &UpdateTracker{store: store, logger: logger}
}

// Stamp records now for the (profile, viewer) pair. A failing store is
// logged and otherwise ignored.
func (u *UpdateTracker) Stamp(ctx context.Context, profile *models.Profile, viewer models.Viewer, now time.Time) {
	key := models.NewLastSeenKey(profile, viewer)
	if err := u.store.Set(ctx, key, now.UTC()); err != nil {
		u.logger.Warnf(providers.TypeApp, "Unable to stamp last-seen for %s: %s", key, err)
	}
}

func (u *UpdateTracker) LastSeen(ctx context.Context, profile *models.Profile, viewer models.Viewer) (time.Time, bool, error) {
	return u.store.Get(ctx, models.NewLastSeenKey(profile, viewer))
}
