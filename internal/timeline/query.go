package timeline

import "wallfeed/internal/models"

// QueryBuilder turns (profile, viewer, filters, pager) into a QuerySpec. It
// never talks to the store.
type QueryBuilder struct {
	policy *AccessPolicy
}

func NewQueryBuilder(policy *AccessPolicy) *QueryBuilder {
	return &QueryBuilder{policy: policy}
}

func (b *QueryBuilder) Build(profile *models.Profile, viewer models.Viewer, filters models.FilterSet, pager Pager) models.QuerySpec {
	spec := models.QuerySpec{
		OwnerID: profile.OwnerID,
		Predicates: []models.Predicate{
			{Kind: models.PredOwner, ID: profile.OwnerID},
			{Kind: models.PredVisible},
			{Kind: models.PredNotDeleted},
			{Kind: models.PredNotModerated},
			{Kind: models.PredWall},
			{Kind: models.PredAuthorNotBlocked},
		},
		Permission: models.PermissionScope{
			OwnerID:         profile.OwnerID,
			ViewerIsOwner:   b.policy.IsOwner(profile, viewer),
			RemoteContactID: viewer.RemoteContactID,
		},
		Sort:   models.SortReceivedDesc,
		Offset: pager.Start(),
		Limit:  pager.ItemsPerPage,
	}
	if viewer.RemoteContactID != 0 && len(viewer.Groups) > 0 {
		spec.Permission.Groups = append([]int64(nil), viewer.Groups...)
	}

	// Only group pages carry posts from other authors.
	if !profile.PageType.IsGroup() {
		spec.Predicates = append(spec.Predicates, models.Predicate{Kind: models.PredAuthor, ID: profile.PrimaryContactID})
	}

	if filters.Category != "" {
		spec.TermFilters = append(spec.TermFilters, models.TermFilter{
			Term:       filters.Category,
			ObjectType: models.TermObjectPost,
			Type:       models.TermCategory,
			OwnerID:    profile.OwnerID,
		})
	}
	if filters.Hashtags != "" {
		spec.TermFilters = append(spec.TermFilters, models.TermFilter{
			Term:       filters.Hashtags,
			ObjectType: models.TermObjectPost,
			Type:       models.TermHashtag,
			OwnerID:    profile.OwnerID,
		})
	}

	// The first date found in the path bounds the upper end, the second the
	// lower end.
	if filters.DateFrom != nil {
		spec.Predicates = append(spec.Predicates, models.Predicate{Kind: models.PredReceivedAtMost, Time: filters.DateFrom.UTC()})
	}
	if filters.DateTo != nil {
		spec.Predicates = append(spec.Predicates, models.Predicate{Kind: models.PredReceivedAtLeast, Time: filters.DateTo.UTC()})
	}

	return spec
}
