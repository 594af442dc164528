package timeline

import (
	"context"
	"wallfeed/internal/models"
)

// PinnedSource lists the posts an owner pinned, in pin order, that the
// scope may see.
type PinnedSource interface {
	PinnedPosts(ctx context.Context, ownerID int64, scope models.PermissionScope) ([]*models.Post, error)
}

type PinnedOverlay struct {
	source PinnedSource
}

func NewPinnedOverlay(source PinnedSource) *PinnedOverlay {
	return &PinnedOverlay{source: source}
}

// Apply prepends the owner's pinned posts to the first page. Pinned posts are
// not matched against the filters and not removed from the main result, so a
// post may be listed twice. The ACL scope still applies.
func (o *PinnedOverlay) Apply(ctx context.Context, page models.Page, ownerID int64, scope models.PermissionScope, pager Pager) (models.Page, error) {
	if !pager.IsFirstPage() || ownerID == 0 {
		return page, nil
	}

	pinned, err := o.source.PinnedPosts(ctx, ownerID, scope)
	if err != nil {
		return page, &StorageError{Op: "pinned", Err: err}
	}
	if len(pinned) == 0 {
		return page, nil
	}

	items := make([]*models.Post, 0, len(pinned)+len(page.Items))
	items = append(items, pinned...)
	items = append(items, page.Items...)
	page.Items = items
	return page, nil
}
