package timeline

import "wallfeed/internal/models"

// AccessPolicy decides whether a viewer may read or write a profile wall.
type AccessPolicy struct {
	BlockPublic bool
}

func NewAccessPolicy(blockPublic bool) *AccessPolicy {
	return &AccessPolicy{BlockPublic: blockPublic}
}

func (a *AccessPolicy) IsOwner(profile *models.Profile, viewer models.Viewer) bool {
	return viewer.LocalUserID != 0 && viewer.LocalUserID == profile.OwnerID
}

// CanView fails closed. A signed-in local session or a verified remote
// contact passes the public-access block; only the owner or a remote contact
// passes a hidden wall.
func (a *AccessPolicy) CanView(profile *models.Profile, viewer models.Viewer) error {
	if a.BlockPublic && viewer.IsAnonymous() {
		return &AccessDeniedError{Reason: DenyLoginRequired}
	}
	if profile.HideWall && !a.IsOwner(profile, viewer) && viewer.RemoteContactID == 0 {
		return &AccessDeniedError{Reason: DenyWallRestricted}
	}
	return nil
}

// CommentingVisitor reports a remote contact on a community or group page.
func (a *AccessPolicy) CommentingVisitor(profile *models.Profile, viewer models.Viewer) bool {
	return profile.PageType.IsGroup() && viewer.RemoteContactID != 0
}

func (a *AccessPolicy) CanPost(profile *models.Profile, viewer models.Viewer) bool {
	return a.IsOwner(profile, viewer) || a.CommentingVisitor(profile, viewer)
}

// Indexable reports whether search engines may index the wall.
func (a *AccessPolicy) Indexable(profile *models.Profile) bool {
	return profile.IsWallPublic
}
