package services

import (
	"context"
	"errors"
	"net/url"
	"time"
	"wallfeed/internal/models"
	"wallfeed/internal/providers"
	"wallfeed/internal/storage"
	"wallfeed/internal/structures"
	"wallfeed/internal/timeline"
)

const (
	OutcomeOK       = "ok"
	OutcomeDenied   = "denied"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

type RenderRequest struct {
	Nickname string
	Segments []string
	Query    url.Values
	Viewer   models.Viewer
	Now      time.Time
}

type RenderResult struct {
	Profile           *models.Profile
	Page              models.Page
	Filters           models.FilterSet
	IsOwner           bool
	CanPost           bool
	CommentingVisitor bool
	Indexable         bool
}

type PollResult struct {
	LastSeen time.Time
	Known    bool
	NewItems int
}

type TimelineServiceInterface interface {
	Render(ctx context.Context, req RenderRequest) (*RenderResult, error)
	Poll(ctx context.Context, nickname string, viewer models.Viewer) (*PollResult, error)
}

type TimelineService struct {
	store    storage.PostStore
	policy   *timeline.AccessPolicy
	builder  *timeline.QueryBuilder
	sizes    *timeline.PageSizeResolver
	pinned   *timeline.PinnedOverlay
	tracker  *timeline.UpdateTracker
	location *time.Location
	logger   providers.Logger
	metrics  providers.MetricsProviderInterface
}

func NewTimelineService(conf *structures.Config, store storage.PostStore, lastSeen providers.LastSeenStoreInterface, logger providers.Logger, metrics providers.MetricsProviderInterface) TimelineServiceInterface {
	loc := time.UTC
	if conf.Timeline.Timezone != "" {
		l, err := time.LoadLocation(conf.Timeline.Timezone)
		if err != nil {
			logger.Warnf(providers.TypeApp, "Unknown timezone %q, using UTC", conf.Timeline.Timezone)
		} else {
			loc = l
		}
	}
	policy := timeline.NewAccessPolicy(conf.Timeline.BlockPublic)
	return &TimelineService{
		store:    store,
		policy:   policy,
		builder:  timeline.NewQueryBuilder(policy),
		sizes:    timeline.NewPageSizeResolver(conf.Timeline, store),
		pinned:   timeline.NewPinnedOverlay(store),
		tracker:  timeline.NewUpdateTracker(lastSeen, logger),
		location: loc,
		logger:   logger,
		metrics:  metrics,
	}
}

func (ts *TimelineService) Render(ctx context.Context, req RenderRequest) (*RenderResult, error) {
	res, err := ts.render(ctx, req)
	ts.metrics.IncRenders(outcomeOf(err))
	return res, err
}

func (ts *TimelineService) render(ctx context.Context, req RenderRequest) (*RenderResult, error) {
	profile, err := ts.profile(ctx, req.Nickname)
	if err != nil {
		return nil, err
	}
	req.Viewer, err = ts.resolveViewer(ctx, profile, req.Viewer)
	if err != nil {
		return nil, err
	}
	if err := ts.policy.CanView(profile, req.Viewer); err != nil {
		return nil, err
	}

	filters := timeline.ParseFilters(req.Segments, req.Query, ts.location)

	size, err := ts.sizes.Resolve(ctx, req.Viewer)
	if err != nil {
		return nil, &timeline.StorageError{Op: "settings", Err: err}
	}
	pager := timeline.NewPager(req.Query.Get("page"), size)
	spec := ts.builder.Build(profile, req.Viewer, filters, pager)

	start := time.Now()
	items, err := ts.store.QueryTimeline(ctx, spec)
	ts.metrics.ObserveQueryDuration(time.Since(start))
	if err != nil {
		return nil, &timeline.StorageError{Op: "query", Err: err}
	}

	now := req.Now
	if now.IsZero() {
		now = time.Now()
	}
	ts.tracker.Stamp(ctx, profile, req.Viewer, now)

	page := models.Page{
		Items:    items,
		Offset:   spec.Offset,
		PageSize: spec.Limit,
		HasMore:  len(items) == spec.Limit,
	}

	isOwner := ts.policy.IsOwner(profile, req.Viewer)
	if isOwner {
		n, err := ts.store.MarkWallSeen(ctx, profile.OwnerID)
		if err != nil {
			return nil, &timeline.StorageError{Op: "mark_seen", Err: err}
		}
		if n > 0 {
			ts.logger.Debugf(providers.TypeGet, "Marked %d wall posts of %s as seen", n, profile.Nickname)
		}
	}

	page, err = ts.pinned.Apply(ctx, page, profile.OwnerID, spec.Permission, pager)
	if err != nil {
		return nil, err
	}

	return &RenderResult{
		Profile:           profile,
		Page:              page,
		Filters:           filters,
		IsOwner:           isOwner,
		CanPost:           ts.policy.CanPost(profile, req.Viewer),
		CommentingVisitor: ts.policy.CommentingVisitor(profile, req.Viewer),
		Indexable:         ts.policy.Indexable(profile),
	}, nil
}

// Poll reports how many posts the viewer has not yet seen on the wall. A
// viewer that never rendered the wall has no baseline and gets zero.
func (ts *TimelineService) Poll(ctx context.Context, nickname string, viewer models.Viewer) (*PollResult, error) {
	profile, err := ts.profile(ctx, nickname)
	if err != nil {
		return nil, err
	}
	viewer, err = ts.resolveViewer(ctx, profile, viewer)
	if err != nil {
		return nil, err
	}
	if err := ts.policy.CanView(profile, viewer); err != nil {
		return nil, err
	}

	last, ok, err := ts.tracker.LastSeen(ctx, profile, viewer)
	if err != nil {
		return nil, &timeline.StorageError{Op: "last_seen", Err: err}
	}
	res := &PollResult{LastSeen: last, Known: ok}
	if !ok {
		return res, nil
	}

	spec := ts.builder.Build(profile, viewer, models.FilterSet{}, timeline.NewPager("", 1))
	spec.Offset, spec.Limit = 0, 0
	res.NewItems, err = ts.store.CountSince(ctx, spec, last)
	if err != nil {
		return nil, &timeline.StorageError{Op: "count", Err: err}
	}
	return res, nil
}

func (ts *TimelineService) profile(ctx context.Context, nickname string) (*models.Profile, error) {
	profile, err := ts.store.ProfileByNickname(ctx, nickname)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, timeline.ErrProfileNotFound
	}
	if err != nil {
		return nil, &timeline.StorageError{Op: "profile", Err: err}
	}
	return profile, nil
}

// resolveViewer keeps the remote contact identity only when the contact row
// belongs to the profile owner. A contact of another user is treated as
// not connected, together with its group memberships.
func (ts *TimelineService) resolveViewer(ctx context.Context, profile *models.Profile, viewer models.Viewer) (models.Viewer, error) {
	if viewer.RemoteContactID == 0 {
		return viewer, nil
	}
	contact, err := ts.store.ContactByID(ctx, viewer.RemoteContactID)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return viewer, &timeline.StorageError{Op: "contact", Err: err}
	}
	if contact == nil || contact.OwnerID != profile.OwnerID {
		ts.logger.Debugf(providers.TypeGet, "Remote contact %d is not a contact of %s", viewer.RemoteContactID, profile.Nickname)
		viewer.RemoteContactID = 0
		viewer.Groups = nil
	}
	return viewer, nil
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, timeline.ErrProfileNotFound):
		return OutcomeNotFound
	case timeline.DenyReasonOf(err) != 0:
		return OutcomeDenied
	default:
		return OutcomeError
	}
}
