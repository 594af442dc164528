package models

import "time"

// Term index object and type codes.
const (
	TermObjectPost = 1

	TermHashtag  = 1
	TermCategory = 3
)

type Post struct {
	ID         int64     `json:"id"`
	URI        string    `json:"uri"`
	ThreadID   int64     `json:"thread_id"`
	OwnerID    int64     `json:"uid"`
	ContactID  int64     `json:"contact_id"`
	ReceivedAt time.Time `json:"received"`
	Visible    bool      `json:"visible"`
	Deleted    bool      `json:"deleted"`
	Moderated  bool      `json:"moderated"`
	Wall       bool      `json:"wall"`
	Pinned     bool      `json:"pinned"`
	PinnedAt   time.Time `json:"pinned_at,omitempty"`
	Unseen     bool      `json:"unseen"`
	Private    bool      `json:"private"`
	AllowCID   []int64   `json:"allow_cid,omitempty"`
	AllowGID   []int64   `json:"allow_gid,omitempty"`
	DenyCID    []int64   `json:"deny_cid,omitempty"`
	DenyGID    []int64   `json:"deny_gid,omitempty"`
}

// Listable reports whether the post may appear on a timeline at all.
func (p *Post) Listable() bool {
	return p.Visible && !p.Deleted && !p.Moderated && p.Wall
}

// IsPublic reports whether the post carries no access restriction.
func (p *Post) IsPublic() bool {
	return !p.Private && len(p.AllowCID) == 0 && len(p.AllowGID) == 0 &&
		len(p.DenyCID) == 0 && len(p.DenyGID) == 0
}

type Contact struct {
	ID      int64 `json:"id"`
	OwnerID int64 `json:"uid"`
	Blocked bool  `json:"blocked"`
	Pending bool  `json:"pending"`
}

// Term is a row of the tag index.
type Term struct {
	PostID     int64  `json:"oid"`
	OwnerID    int64  `json:"uid"`
	Term       string `json:"term"`
	ObjectType int    `json:"otype"`
	Type       int    `json:"type"`
}

// UserSettings holds per-user overrides of deployment defaults.
type UserSettings struct {
	ItemsPerPage       int `json:"itemspage_network,omitempty"`
	ItemsPerPageMobile int `json:"itemspage_mobile_network,omitempty"`
}
