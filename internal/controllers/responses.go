package controllers

import (
	"time"
	"wallfeed/internal/models"
	"wallfeed/internal/services"
)

type postResponse struct {
	ID         int64     `json:"id"`
	URI        string    `json:"uri"`
	ThreadID   int64     `json:"thread_id"`
	ContactID  int64     `json:"contact_id"`
	ReceivedAt time.Time `json:"received_at"`
	Pinned     bool      `json:"pinned"`
	Unseen     bool      `json:"unseen"`
	Private    bool      `json:"private"`
}

type paginationResponse struct {
	Page     int  `json:"page"`
	Offset   int  `json:"offset"`
	PageSize int  `json:"page_size"`
	HasMore  bool `json:"has_more"`
}

type filtersResponse struct {
	Category string `json:"category,omitempty"`
	Tag      string `json:"tag,omitempty"`
	DateFrom string `json:"date_from,omitempty"`
	DateTo   string `json:"date_to,omitempty"`
}

type timelineResponse struct {
	Nickname          string             `json:"nickname"`
	Username          string             `json:"username"`
	Items             []postResponse     `json:"items"`
	Pagination        paginationResponse `json:"pagination"`
	Filters           filtersResponse    `json:"filters"`
	IsOwner           bool               `json:"is_owner"`
	CanPost           bool               `json:"can_post"`
	CommentingVisitor bool               `json:"commenting_visitor"`
	NoIndex           bool               `json:"noindex"`
}

type updateResponse struct {
	LastSeen *time.Time `json:"last_seen"`
	NewItems int        `json:"new_items"`
}

type errorResponse struct {
	Error  string `json:"error"`
	Reason string `json:"reason,omitempty"`
}

func newTimelineResponse(res *services.RenderResult) timelineResponse {
	items := make([]postResponse, 0, len(res.Page.Items))
	for _, p := range res.Page.Items {
		items = append(items, newPostResponse(p))
	}
	page := 1
	if res.Page.PageSize > 0 {
		page = res.Page.Offset/res.Page.PageSize + 1
	}
	return timelineResponse{
		Nickname: res.Profile.Nickname,
		Username: res.Profile.Username,
		Items:    items,
		Pagination: paginationResponse{
			Page:     page,
			Offset:   res.Page.Offset,
			PageSize: res.Page.PageSize,
			HasMore:  res.Page.HasMore,
		},
		Filters: filtersResponse{
			Category: res.Filters.Category,
			Tag:      res.Filters.Hashtags,
			DateFrom: res.Filters.RawDateFrom,
			DateTo:   res.Filters.RawDateTo,
		},
		IsOwner:           res.IsOwner,
		CanPost:           res.CanPost,
		CommentingVisitor: res.CommentingVisitor,
		NoIndex:           !res.Indexable,
	}
}

func newPostResponse(p *models.Post) postResponse {
	return postResponse{
		ID:         p.ID,
		URI:        p.URI,
		ThreadID:   p.ThreadID,
		ContactID:  p.ContactID,
		ReceivedAt: p.ReceivedAt.UTC(),
		Pinned:     p.Pinned,
		Unseen:     p.Unseen,
		Private:    !p.IsPublic(),
	}
}
