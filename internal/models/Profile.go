package models

type PageType int

const (
	PageNormal PageType = iota
	PageCommunity
	PagePrivateGroup
)

// IsGroup reports whether several distinct contacts may post to the wall.
func (p PageType) IsGroup() bool {
	return p == PageCommunity || p == PagePrivateGroup
}

func (p PageType) String() string {
	switch p {
	case PageCommunity:
		return "community"
	case PagePrivateGroup:
		return "private_group"
	default:
		return "normal"
	}
}

// Profile is resolved once per render and not modified afterwards.
type Profile struct {
	OwnerID          int64    `json:"owner_id"`
	Nickname         string   `json:"nickname"`
	Username         string   `json:"username"`
	IsWallPublic     bool     `json:"net_publish"`
	HideWall         bool     `json:"hide_wall"`
	PageType         PageType `json:"page_type"`
	PrimaryContactID int64    `json:"contact_id"`
}

// Viewer is the identity of the requester as resolved by the session layer.
// A zero id means the corresponding identity is absent.
type Viewer struct {
	LocalUserID     int64
	RemoteContactID int64
	Groups          []int64
	Mobile          bool
}

func (v Viewer) IsAnonymous() bool {
	return v.LocalUserID == 0 && v.RemoteContactID == 0
}
