package testutil

import (
	"fmt"
	"time"
	"wallfeed/internal/models"
)

// Owners and contacts of the fixture dataset.
const (
	AliceID        int64 = 1
	ForumID        int64 = 2
	HermitID       int64 = 3
	AliceContact   int64 = 10
	FriendContact  int64 = 11
	ForumContact   int64 = 20
	MemberContact  int64 = 21
	BlockedContact int64 = 22
	HermitContact  int64 = 30
	FriendGroup    int64 = 5
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func wallPost(id, owner, contact int64, received time.Time) *models.Post {
	return &models.Post{
		ID:         id,
		URI:        fmt.Sprintf("https://example.org/objects/%d", id),
		ThreadID:   id,
		OwnerID:    owner,
		ContactID:  contact,
		ReceivedAt: received,
		Visible:    true,
		Wall:       true,
	}
}

// Fixture returns a small dataset covering visibility, ACL, tags, pins and
// ordering.
//
// Anonymous viewers of alice see, in order: 112, 101, 102, 103, 115, 110, 111.
// The owner additionally sees 113, 114 and 104. FriendContact in FriendGroup
// sees 114 and 104 but not 113.
func Fixture() *models.Snapshot {
	noon := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	posts := []*models.Post{
		wallPost(101, AliceID, AliceContact, noon),
		wallPost(102, AliceID, AliceContact, day(2024, 3, 5)),
		wallPost(103, AliceID, AliceContact, day(2024, 3, 1)),
		wallPost(104, AliceID, AliceContact, day(2024, 2, 20)),
		wallPost(105, AliceID, FriendContact, day(2024, 2, 15)),
		wallPost(106, AliceID, AliceContact, day(2024, 2, 10)),
		wallPost(107, AliceID, AliceContact, day(2024, 2, 10)),
		wallPost(108, AliceID, AliceContact, day(2024, 2, 10)),
		wallPost(109, AliceID, AliceContact, day(2024, 2, 10)),
		wallPost(110, AliceID, AliceContact, day(2024, 1, 1)),
		wallPost(111, AliceID, AliceContact, day(2023, 12, 1)),
		wallPost(112, AliceID, AliceContact, noon),
		wallPost(113, AliceID, AliceContact, day(2024, 2, 25)),
		wallPost(114, AliceID, AliceContact, day(2024, 2, 22)),
		wallPost(115, AliceID, AliceContact, day(2024, 2, 1)),
		wallPost(201, ForumID, ForumContact, day(2024, 3, 1)),
		wallPost(202, ForumID, MemberContact, day(2024, 3, 2)),
		wallPost(203, ForumID, BlockedContact, day(2024, 3, 3)),
		wallPost(301, HermitID, HermitContact, day(2024, 3, 1)),
	}
	byID := make(map[int64]*models.Post, len(posts))
	for _, p := range posts {
		byID[p.ID] = p
	}

	byID[101].Unseen = true
	byID[104].Private = true
	byID[104].AllowCID = []int64{FriendContact}
	byID[106].Deleted = true
	byID[107].Visible = false
	byID[108].Moderated = true
	byID[109].Wall = false
	byID[109].Unseen = true
	byID[110].Pinned = true
	byID[110].PinnedAt = day(2024, 1, 2)
	byID[111].Pinned = true
	byID[111].PinnedAt = day(2024, 1, 1)
	byID[113].DenyCID = []int64{FriendContact}
	byID[114].Private = true
	byID[114].AllowGID = []int64{FriendGroup}
	byID[115].Unseen = true

	return &models.Snapshot{
		Version: models.SnapshotVersion,
		Profiles: []*models.Profile{
			{OwnerID: AliceID, Nickname: "alice", Username: "Alice", IsWallPublic: true, PageType: models.PageNormal, PrimaryContactID: AliceContact},
			{OwnerID: ForumID, Nickname: "forum", Username: "Forum", IsWallPublic: true, PageType: models.PageCommunity, PrimaryContactID: ForumContact},
			{OwnerID: HermitID, Nickname: "hermit", Username: "Hermit", HideWall: true, PageType: models.PageNormal, PrimaryContactID: HermitContact},
		},
		Contacts: []*models.Contact{
			{ID: AliceContact, OwnerID: AliceID},
			{ID: FriendContact, OwnerID: AliceID},
			{ID: ForumContact, OwnerID: ForumID},
			{ID: MemberContact, OwnerID: ForumID},
			{ID: BlockedContact, OwnerID: ForumID, Blocked: true},
			{ID: HermitContact, OwnerID: HermitID},
		},
		Posts: posts,
		Terms: []*models.Term{
			{PostID: 102, OwnerID: AliceID, Term: "funny", ObjectType: models.TermObjectPost, Type: models.TermCategory},
			{PostID: 103, OwnerID: AliceID, Term: "funny", ObjectType: models.TermObjectPost, Type: models.TermCategory},
			{PostID: 103, OwnerID: AliceID, Term: "cats", ObjectType: models.TermObjectPost, Type: models.TermHashtag},
			{PostID: 101, OwnerID: AliceID, Term: "cats", ObjectType: models.TermObjectPost, Type: models.TermHashtag},
			{PostID: 101, OwnerID: ForumID, Term: "funny", ObjectType: models.TermObjectPost, Type: models.TermCategory},
		},
		Settings: map[int64]*models.UserSettings{
			AliceID: {ItemsPerPage: 5, ItemsPerPageMobile: 3},
		},
	}
}

// IDs lists post ids in order.
func IDs(posts []*models.Post) []int64 {
	out := make([]int64, 0, len(posts))
	for _, p := range posts {
		out = append(out, p.ID)
	}
	return out
}
