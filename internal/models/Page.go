package models

// Page is one window of a timeline. Items are ordered by ReceivedAt desc,
// ties broken by ThreadID desc; pinned posts, when overlaid, come first.
type Page struct {
	Items           []*Post `json:"items"`
	Offset          int     `json:"offset"`
	PageSize        int     `json:"page_size"`
	TotalCountKnown bool    `json:"total_count_known"`
	HasMore         bool    `json:"has_more"`
}
