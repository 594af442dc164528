package storage

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"
	"wallfeed/internal/models"

	"github.com/RoaringBitmap/roaring/v2/roaring64"
)

type termKey struct {
	ownerID    int64
	objectType int
	termType   int
	term       string
}

func termKeyOf(t *models.Term) termKey {
	return termKey{ownerID: t.OwnerID, objectType: t.ObjectType, termType: t.Type, term: t.Term}
}

// MemoryStore keeps the whole dataset in process. It is the default backend
// and is persisted through snapshots.
type MemoryStore struct {
	mu       sync.RWMutex
	profiles map[int64]*models.Profile
	byNick   map[string]int64
	contacts map[int64]*models.Contact
	posts    map[int64]*models.Post
	terms    []*models.Term
	index    map[termKey]*roaring64.Bitmap
	settings map[int64]*models.UserSettings
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		profiles: make(map[int64]*models.Profile),
		byNick:   make(map[string]int64),
		contacts: make(map[int64]*models.Contact),
		posts:    make(map[int64]*models.Post),
		index:    make(map[termKey]*roaring64.Bitmap),
		settings: make(map[int64]*models.UserSettings),
	}
}

func (s *MemoryStore) PutProfile(p *models.Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[p.OwnerID] = p
	s.byNick[strings.ToLower(p.Nickname)] = p.OwnerID
}

func (s *MemoryStore) PutContact(c *models.Contact) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.contacts[c.ID] = c
}

func (s *MemoryStore) PutPost(p *models.Post) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.posts[p.ID] = p
}

func (s *MemoryStore) PutTerm(t *models.Term) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.terms = append(s.terms, t)
	s.indexTerm(t)
}

// indexTerm must be called with the write lock held.
func (s *MemoryStore) indexTerm(t *models.Term) {
	key := termKeyOf(t)
	bm, ok := s.index[key]
	if !ok {
		bm = roaring64.NewBitmap()
		s.index[key] = bm
	}
	bm.Add(uint64(t.PostID))
}

func (s *MemoryStore) PutUserSettings(userID int64, us *models.UserSettings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings[userID] = us
}

func (s *MemoryStore) PostCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.posts)
}

func (s *MemoryStore) ProfileByNickname(_ context.Context, nickname string) (*models.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byNick[strings.ToLower(nickname)]
	if !ok {
		return nil, ErrNotFound
	}
	p := *s.profiles[id]
	return &p, nil
}

func (s *MemoryStore) ContactByID(_ context.Context, id int64) (*models.Contact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.contacts[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (s *MemoryStore) QueryTimeline(ctx context.Context, spec models.QuerySpec) ([]*models.Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	matched := s.match(spec)
	s.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool { return Less(matched[i], matched[j]) })

	if spec.Offset < 0 || spec.Offset >= len(matched) {
		return []*models.Post{}, nil
	}
	end := len(matched)
	if spec.Limit > 0 && spec.Offset+spec.Limit < end {
		end = spec.Offset + spec.Limit
	}
	return matched[spec.Offset:end], nil
}

func (s *MemoryStore) CountSince(ctx context.Context, spec models.QuerySpec, since time.Time) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, p := range s.match(spec) {
		if p.ReceivedAt.After(since) {
			n++
		}
	}
	return n, nil
}

// match must be called with the read lock held. Returned posts are copies.
func (s *MemoryStore) match(spec models.QuerySpec) []*models.Post {
	allowed, filtered := s.termMatches(spec.TermFilters)

	out := make([]*models.Post, 0)
	if filtered && allowed.IsEmpty() {
		return out
	}
	for _, p := range s.posts {
		if filtered && !allowed.Contains(uint64(p.ID)) {
			continue
		}
		if !s.matchPredicates(p, spec.Predicates) || !Permitted(p, spec.Permission) {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	return out
}

// termMatches intersects the indexed post ids of every filter. The second
// result is false when there is nothing to filter on.
func (s *MemoryStore) termMatches(filters []models.TermFilter) (*roaring64.Bitmap, bool) {
	if len(filters) == 0 {
		return nil, false
	}
	var acc *roaring64.Bitmap
	for _, tf := range filters {
		bm, ok := s.index[termKey{ownerID: tf.OwnerID, objectType: tf.ObjectType, termType: tf.Type, term: tf.Term}]
		if !ok {
			return roaring64.NewBitmap(), true
		}
		if acc == nil {
			acc = bm.Clone()
			continue
		}
		acc.And(bm)
	}
	return acc, true
}

func (s *MemoryStore) matchPredicates(p *models.Post, preds []models.Predicate) bool {
	for _, pr := range preds {
		switch pr.Kind {
		case models.PredOwner:
			if p.OwnerID != pr.ID {
				return false
			}
		case models.PredVisible:
			if !p.Visible {
				return false
			}
		case models.PredNotDeleted:
			if p.Deleted {
				return false
			}
		case models.PredNotModerated:
			if p.Moderated {
				return false
			}
		case models.PredWall:
			if !p.Wall {
				return false
			}
		case models.PredAuthorNotBlocked:
			c, ok := s.contacts[p.ContactID]
			if !ok || c.Blocked || c.Pending {
				return false
			}
		case models.PredAuthor:
			if p.ContactID != pr.ID {
				return false
			}
		case models.PredReceivedAtMost:
			if p.ReceivedAt.After(pr.Time) {
				return false
			}
		case models.PredReceivedAtLeast:
			if p.ReceivedAt.Before(pr.Time) {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// PinnedPosts returns the owner's pinned posts the viewer may see, in the
// order they were pinned.
func (s *MemoryStore) PinnedPosts(ctx context.Context, ownerID int64, scope models.PermissionScope) ([]*models.Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Post, 0)
	for _, p := range s.posts {
		if p.OwnerID != ownerID || !p.Pinned || !p.Listable() || !Permitted(p, scope) {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].PinnedAt.Equal(out[j].PinnedAt) {
			return out[i].PinnedAt.Before(out[j].PinnedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *MemoryStore) MarkWallSeen(ctx context.Context, ownerID int64) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, p := range s.posts {
		if p.OwnerID == ownerID && p.Wall && p.Unseen {
			p.Unseen = false
			n++
		}
	}
	return n, nil
}

func (s *MemoryStore) UserSettings(_ context.Context, userID int64) (*models.UserSettings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	us, ok := s.settings[userID]
	if !ok {
		return nil, nil
	}
	cp := *us
	return &cp, nil
}

// Snapshot returns a copy of the dataset for persistence.
func (s *MemoryStore) Snapshot() *models.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := &models.Snapshot{
		Version:  models.SnapshotVersion,
		Profiles: make([]*models.Profile, 0, len(s.profiles)),
		Contacts: make([]*models.Contact, 0, len(s.contacts)),
		Posts:    make([]*models.Post, 0, len(s.posts)),
		Terms:    make([]*models.Term, 0, len(s.terms)),
		Settings: make(map[int64]*models.UserSettings, len(s.settings)),
	}
	for _, p := range s.profiles {
		cp := *p
		snap.Profiles = append(snap.Profiles, &cp)
	}
	for _, c := range s.contacts {
		cp := *c
		snap.Contacts = append(snap.Contacts, &cp)
	}
	for _, p := range s.posts {
		cp := *p
		snap.Posts = append(snap.Posts, &cp)
	}
	for _, t := range s.terms {
		cp := *t
		snap.Terms = append(snap.Terms, &cp)
	}
	for id, us := range s.settings {
		cp := *us
		snap.Settings[id] = &cp
	}
	sort.Slice(snap.Posts, func(i, j int) bool { return snap.Posts[i].ID < snap.Posts[j].ID })
	return snap
}

// Load replaces the dataset with the snapshot contents.
func (s *MemoryStore) Load(snap *models.Snapshot) {
	fresh := NewMemoryStore()
	for _, p := range snap.Profiles {
		fresh.profiles[p.OwnerID] = p
		fresh.byNick[strings.ToLower(p.Nickname)] = p.OwnerID
	}
	for _, c := range snap.Contacts {
		fresh.contacts[c.ID] = c
	}
	for _, p := range snap.Posts {
		fresh.posts[p.ID] = p
	}
	fresh.terms = append(fresh.terms, snap.Terms...)
	for _, t := range fresh.terms {
		fresh.indexTerm(t)
	}
	for id, us := range snap.Settings {
		fresh.settings[id] = us
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles = fresh.profiles
	s.byNick = fresh.byNick
	s.contacts = fresh.contacts
	s.posts = fresh.posts
	s.terms = fresh.terms
	s.index = fresh.index
	s.settings = fresh.settings
}

func (s *MemoryStore) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (s *MemoryStore) Close() error {
	return nil
}

var _ PostStore = (*MemoryStore)(nil)
