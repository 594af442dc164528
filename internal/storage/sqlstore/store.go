package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"wallfeed/internal/models"
	"wallfeed/internal/storage"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// Store runs timeline queries against a relational database.
type Store struct {
	db      *sql.DB
	dialect Dialect
}

// Open connects to the database described by dsn. For SQLite the dsn is a
// file path; the parent directory is created and WAL mode enabled.
func Open(d Dialect, dsn string) (*Store, error) {
	if d.Name == SQLite.Name && !strings.HasPrefix(dsn, "file:") && dsn != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dsn), 0o755); err != nil {
			return nil, err
		}
		dsn = fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", dsn)
	}

	db, err := sql.Open(d.DriverName, dsn)
	if err != nil {
		return nil, err
	}
	if d.Name == SQLite.Name {
		db.SetMaxOpenConns(1)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db, dialect: d}, nil
}

func New(db *sql.DB, d Dialect) *Store {
	return &Store{db: db, dialect: d}
}

// Migrate creates the schema when missing.
func (s *Store) Migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ph(n int) string {
	return s.dialect.Placeholder(n)
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func (s *Store) ProfileByNickname(ctx context.Context, nickname string) (*models.Profile, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT uid, nickname, username, net_publish, hidewall, page_flags, contact_id FROM profile WHERE lower(nickname) = lower("+s.ph(1)+")",
		nickname)

	var p models.Profile
	var publish, hide, pageType int
	err := row.Scan(&p.OwnerID, &p.Nickname, &p.Username, &publish, &hide, &pageType, &p.PrimaryContactID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	p.IsWallPublic = publish != 0
	p.HideWall = hide != 0
	p.PageType = models.PageType(pageType)
	return &p, nil
}

func (s *Store) ContactByID(ctx context.Context, id int64) (*models.Contact, error) {
	row := s.db.QueryRowContext(ctx, "SELECT id, uid, blocked, pending FROM contact WHERE id = "+s.ph(1), id)

	var c models.Contact
	var blocked, pending int
	if err := row.Scan(&c.ID, &c.OwnerID, &blocked, &pending); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	c.Blocked = blocked != 0
	c.Pending = pending != 0
	return &c, nil
}

func scanPosts(rows *sql.Rows) ([]*models.Post, error) {
	defer rows.Close()

	out := make([]*models.Post, 0)
	for rows.Next() {
		var p models.Post
		var received, pinnedAt int64
		var visible, deleted, moderated, wall, pinned, unseen, private int
		var allowCID, allowGID, denyCID, denyGID string
		err := rows.Scan(&p.ID, &p.URI, &p.ThreadID, &p.OwnerID, &p.ContactID, &received,
			&visible, &deleted, &moderated, &wall, &pinned, &pinnedAt, &unseen, &private,
			&allowCID, &allowGID, &denyCID, &denyGID)
		if err != nil {
			return nil, err
		}
		p.ReceivedAt = time.UnixMicro(received).UTC()
		if pinnedAt != 0 {
			p.PinnedAt = time.UnixMicro(pinnedAt).UTC()
		}
		p.Visible = visible != 0
		p.Deleted = deleted != 0
		p.Moderated = moderated != 0
		p.Wall = wall != 0
		p.Pinned = pinned != 0
		p.Unseen = unseen != 0
		p.Private = private != 0
		p.AllowCID = decodeIDs(allowCID)
		p.AllowGID = decodeIDs(allowGID)
		p.DenyCID = decodeIDs(denyCID)
		p.DenyGID = decodeIDs(denyGID)
		out = append(out, &p)
	}
	return out, rows.Err()
}

func (s *Store) QueryTimeline(ctx context.Context, spec models.QuerySpec) ([]*models.Post, error) {
	if spec.Offset < 0 {
		return []*models.Post{}, nil
	}
	c, err := CompileTimeline(s.dialect, spec)
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, c.SQL, c.Args...)
	if err != nil {
		return nil, err
	}
	return scanPosts(rows)
}

func (s *Store) CountSince(ctx context.Context, spec models.QuerySpec, since time.Time) (int, error) {
	c, err := CompileCountSince(s.dialect, spec, since)
	if err != nil {
		return 0, err
	}
	var n int
	if err := s.db.QueryRowContext(ctx, c.SQL, c.Args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (s *Store) PinnedPosts(ctx context.Context, ownerID int64, scope models.PermissionScope) ([]*models.Post, error) {
	c := CompilePinned(s.dialect, ownerID, scope)
	rows, err := s.db.QueryContext(ctx, c.SQL, c.Args...)
	if err != nil {
		return nil, err
	}
	return scanPosts(rows)
}

func (s *Store) MarkWallSeen(ctx context.Context, ownerID int64) (int, error) {
	res, err := s.db.ExecContext(ctx,
		"UPDATE post SET unseen = 0 WHERE uid = "+s.ph(1)+" AND wall = 1 AND unseen = 1", ownerID)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

func (s *Store) UserSettings(ctx context.Context, userID int64) (*models.UserSettings, error) {
	var us models.UserSettings
	err := s.db.QueryRowContext(ctx,
		"SELECT itemspage_network, itemspage_mobile_network FROM pconfig WHERE uid = "+s.ph(1), userID).
		Scan(&us.ItemsPerPage, &us.ItemsPerPageMobile)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &us, nil
}

func (s *Store) PutProfile(ctx context.Context, p *models.Profile) error {
	_, err := s.db.ExecContext(ctx,
		fmt.Sprintf("INSERT INTO profile (uid, nickname, username, net_publish, hidewall, page_flags, contact_id) VALUES (%s, %s, %s, %s, %s, %s, %s)",
			s.ph(1), s.ph(2), s.ph(3), s.ph(4), s.ph(5), s.ph(6), s.ph(7)),
		p.OwnerID, p.Nickname, p.Username, boolInt(p.IsWallPublic), boolInt(p.HideWall), int(p.PageType), p.PrimaryContactID)
	return err
}

func (s *Store) PutContact(ctx context.Context, c *models.Contact) error {
	_, err := s.db.ExecContext(ctx,
		fmt.Sprintf("INSERT INTO contact (id, uid, blocked, pending) VALUES (%s, %s, %s, %s)",
			s.ph(1), s.ph(2), s.ph(3), s.ph(4)),
		c.ID, c.OwnerID, boolInt(c.Blocked), boolInt(c.Pending))
	return err
}

func (s *Store) PutPost(ctx context.Context, p *models.Post) error {
	cols := "id, uri, thread_id, uid, contact_id, received_us, visible, deleted, moderated, wall, pinned, pinned_us, unseen, private, allow_cid, allow_gid, deny_cid, deny_gid"
	marks := make([]string, 18)
	for i := range marks {
		marks[i] = s.ph(i + 1)
	}
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO post ("+cols+") VALUES ("+strings.Join(marks, ", ")+")",
		p.ID, p.URI, p.ThreadID, p.OwnerID, p.ContactID, micros(p.ReceivedAt),
		boolInt(p.Visible), boolInt(p.Deleted), boolInt(p.Moderated), boolInt(p.Wall),
		boolInt(p.Pinned), micros(p.PinnedAt), boolInt(p.Unseen), boolInt(p.Private),
		encodeIDs(p.AllowCID), encodeIDs(p.AllowGID), encodeIDs(p.DenyCID), encodeIDs(p.DenyGID))
	return err
}

func (s *Store) PutTerm(ctx context.Context, t *models.Term) error {
	_, err := s.db.ExecContext(ctx,
		fmt.Sprintf("INSERT INTO term (oid, uid, term, otype, type) VALUES (%s, %s, %s, %s, %s)",
			s.ph(1), s.ph(2), s.ph(3), s.ph(4), s.ph(5)),
		t.PostID, t.OwnerID, t.Term, t.ObjectType, t.Type)
	return err
}

func (s *Store) PutUserSettings(ctx context.Context, userID int64, us *models.UserSettings) error {
	_, err := s.db.ExecContext(ctx,
		fmt.Sprintf(`INSERT INTO pconfig (uid, itemspage_network, itemspage_mobile_network) VALUES (%s, %s, %s)
			ON CONFLICT (uid) DO UPDATE SET itemspage_network = excluded.itemspage_network,
			itemspage_mobile_network = excluded.itemspage_mobile_network`,
			s.ph(1), s.ph(2), s.ph(3)),
		userID, us.ItemsPerPage, us.ItemsPerPageMobile)
	return err
}

var _ storage.PostStore = (*Store)(nil)
