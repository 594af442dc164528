package sqlstore

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"wallfeed/internal/models"
)

const postColumns = `p.id, p.uri, p.thread_id, p.uid, p.contact_id, p.received_us, p.visible, p.deleted,
	p.moderated, p.wall, p.pinned, p.pinned_us, p.unseen, p.private,
	p.allow_cid, p.allow_gid, p.deny_cid, p.deny_gid`

// query accumulates SQL text and its bound arguments. Values never reach
// the SQL text.
type query struct {
	dialect Dialect
	sb      strings.Builder
	args    []any
	where   []string
}

func newQuery(d Dialect) *query {
	return &query{dialect: d}
}

func (q *query) bind(v any) string {
	q.args = append(q.args, v)
	return q.dialect.Placeholder(len(q.args))
}

func (q *query) cond(c string) {
	q.where = append(q.where, c)
}

func (q *query) whereClause() string {
	if len(q.where) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(q.where, " AND ")
}

// Compiled is a ready-to-run statement.
type Compiled struct {
	SQL  string
	Args []any
}

func micros(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMicro()
}

// encodeIDs renders an ACL list in the "<1><2>" form.
func encodeIDs(ids []int64) string {
	var sb strings.Builder
	for _, id := range ids {
		sb.WriteByte('<')
		sb.WriteString(strconv.FormatInt(id, 10))
		sb.WriteByte('>')
	}
	return sb.String()
}

func decodeIDs(s string) []int64 {
	if s == "" {
		return nil
	}
	var out []int64
	for _, part := range strings.Split(s, ">") {
		part = strings.TrimPrefix(part, "<")
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			continue
		}
		out = append(out, id)
	}
	return out
}

func aclToken(id int64) string {
	return "%<" + strconv.FormatInt(id, 10) + ">%"
}

// permissions appends the ACL evaluator for scope.
func (q *query) permissions(scope models.PermissionScope) {
	if scope.ViewerIsOwner {
		return
	}
	public := "(p.private = 0 AND p.allow_cid = '' AND p.allow_gid = '' AND p.deny_cid = '' AND p.deny_gid = '')"
	if scope.RemoteContactID == 0 {
		q.cond(public)
		return
	}

	q.cond("p.deny_cid NOT LIKE " + q.bind(aclToken(scope.RemoteContactID)))
	for _, g := range scope.Groups {
		q.cond("p.deny_gid NOT LIKE " + q.bind(aclToken(g)))
	}
	allowed := []string{public, "p.allow_cid LIKE " + q.bind(aclToken(scope.RemoteContactID))}
	for _, g := range scope.Groups {
		allowed = append(allowed, "p.allow_gid LIKE "+q.bind(aclToken(g)))
	}
	q.cond("(" + strings.Join(allowed, " OR ") + ")")
}

// filters appends predicates and term filters and reports whether the
// contact join is required.
func (q *query) filters(spec models.QuerySpec) (bool, error) {
	join := false
	for _, pr := range spec.Predicates {
		switch pr.Kind {
		case models.PredOwner:
			q.cond("p.uid = " + q.bind(pr.ID))
		case models.PredVisible:
			q.cond("p.visible = 1")
		case models.PredNotDeleted:
			q.cond("p.deleted = 0")
		case models.PredNotModerated:
			q.cond("p.moderated = 0")
		case models.PredWall:
			q.cond("p.wall = 1")
		case models.PredAuthorNotBlocked:
			join = true
		case models.PredAuthor:
			q.cond("p.contact_id = " + q.bind(pr.ID))
		case models.PredReceivedAtMost:
			q.cond("p.received_us <= " + q.bind(micros(pr.Time)))
		case models.PredReceivedAtLeast:
			q.cond("p.received_us >= " + q.bind(micros(pr.Time)))
		default:
			return false, fmt.Errorf("unsupported predicate %s", pr.Kind)
		}
	}
	for _, tf := range spec.TermFilters {
		q.cond(fmt.Sprintf("p.id IN (SELECT oid FROM term WHERE term = %s AND otype = %s AND type = %s AND uid = %s)",
			q.bind(tf.Term), q.bind(tf.ObjectType), q.bind(tf.Type), q.bind(tf.OwnerID)))
	}
	q.permissions(spec.Permission)
	return join, nil
}

func fromClause(join bool) string {
	if join {
		return " FROM post p INNER JOIN contact c ON c.id = p.contact_id AND c.blocked = 0 AND c.pending = 0"
	}
	return " FROM post p"
}

// CompileTimeline renders the paginated timeline query.
func CompileTimeline(d Dialect, spec models.QuerySpec) (Compiled, error) {
	q := newQuery(d)
	join, err := q.filters(spec)
	if err != nil {
		return Compiled{}, err
	}

	q.sb.WriteString("SELECT " + postColumns)
	q.sb.WriteString(fromClause(join))
	q.sb.WriteString(q.whereClause())
	q.sb.WriteString(" ORDER BY p.received_us DESC, p.thread_id DESC")
	if spec.Limit > 0 {
		q.sb.WriteString(" LIMIT " + q.bind(spec.Limit))
		q.sb.WriteString(" OFFSET " + q.bind(spec.Offset))
	}
	return Compiled{SQL: q.sb.String(), Args: q.args}, nil
}

// CompileCountSince counts matching posts received after since.
func CompileCountSince(d Dialect, spec models.QuerySpec, since time.Time) (Compiled, error) {
	q := newQuery(d)
	join, err := q.filters(spec)
	if err != nil {
		return Compiled{}, err
	}
	q.cond("p.received_us > " + q.bind(micros(since)))

	q.sb.WriteString("SELECT COUNT(*)")
	q.sb.WriteString(fromClause(join))
	q.sb.WriteString(q.whereClause())
	return Compiled{SQL: q.sb.String(), Args: q.args}, nil
}

// CompilePinned lists pinned posts of an owner in pin order.
func CompilePinned(d Dialect, ownerID int64, scope models.PermissionScope) Compiled {
	q := newQuery(d)
	q.cond("p.uid = " + q.bind(ownerID))
	q.cond("p.pinned = 1")
	q.cond("p.visible = 1")
	q.cond("p.deleted = 0")
	q.cond("p.moderated = 0")
	q.cond("p.wall = 1")
	q.permissions(scope)

	q.sb.WriteString("SELECT " + postColumns + " FROM post p")
	q.sb.WriteString(q.whereClause())
	q.sb.WriteString(" ORDER BY p.pinned_us ASC, p.id ASC")
	return Compiled{SQL: q.sb.String(), Args: q.args}
}
