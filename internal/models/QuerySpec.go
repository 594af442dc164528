package models

import "time"

type PredicateKind int

const (
	PredOwner PredicateKind = iota
	PredVisible
	PredNotDeleted
	PredNotModerated
	PredWall
	PredAuthorNotBlocked
	PredAuthor
	PredReceivedAtMost
	PredReceivedAtLeast
)

func (k PredicateKind) String() string {
	switch k {
	case PredOwner:
		return "owner"
	case PredVisible:
		return "visible"
	case PredNotDeleted:
		return "not_deleted"
	case PredNotModerated:
		return "not_moderated"
	case PredWall:
		return "wall"
	case PredAuthorNotBlocked:
		return "author_not_blocked"
	case PredAuthor:
		return "author"
	case PredReceivedAtMost:
		return "received_at_most"
	case PredReceivedAtLeast:
		return "received_at_least"
	default:
		return "unknown"
	}
}

// Predicate is a single tagged condition. ID is bound for PredOwner and
// PredAuthor, Time for the received bounds; the rest carry no parameter.
type Predicate struct {
	Kind PredicateKind
	ID   int64
	Time time.Time
}

// PermissionScope parameterizes the ACL evaluator of the store. Groups are
// the already verified memberships of RemoteContactID.
type PermissionScope struct {
	OwnerID         int64
	ViewerIsOwner   bool
	RemoteContactID int64
	Groups          []int64
}

// TermFilter restricts results to posts present in the tag index under the
// given term. Several filters intersect.
type TermFilter struct {
	Term       string
	ObjectType int
	Type       int
	OwnerID    int64
}

type SortOrder int

const (
	SortReceivedDesc SortOrder = iota
)

// QuerySpec is what a store executes to produce one timeline window.
type QuerySpec struct {
	OwnerID     int64
	Predicates  []Predicate
	Permission  PermissionScope
	TermFilters []TermFilter
	Sort        SortOrder
	Offset      int
	Limit       int
}

// Find returns the first predicate of the given kind.
func (q *QuerySpec) Find(kind PredicateKind) (Predicate, bool) {
	for _, p := range q.Predicates {
		if p.Kind == kind {
			return p, true
		}
	}
	return Predicate{}, false
}
