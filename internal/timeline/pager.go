package timeline

import (
	"context"
	"math"
	"strconv"
	"wallfeed/internal/models"
	"wallfeed/internal/structures"
)

type Pager struct {
	Page         int
	ItemsPerPage int
}

// NewPager builds a pager from the raw "page" query value. Anything that is
// not a positive number selects the first page. Pages are capped so that the
// start offset stays representable.
func NewPager(pageParam string, itemsPerPage int) Pager {
	if itemsPerPage < 1 {
		itemsPerPage = 1
	}
	page, err := strconv.Atoi(pageParam)
	if err != nil || page < 1 {
		page = 1
	}
	if last := MaxPage(itemsPerPage); page > last {
		page = last
	}
	return Pager{Page: page, ItemsPerPage: itemsPerPage}
}

// MaxPage is the highest page whose start offset fits in an int.
func MaxPage(itemsPerPage int) int {
	if itemsPerPage < 1 {
		itemsPerPage = 1
	}
	return math.MaxInt / itemsPerPage
}

func (p Pager) Start() int {
	if p.Page <= 1 {
		return 0
	}
	return (p.Page - 1) * p.ItemsPerPage
}

func (p Pager) IsFirstPage() bool {
	return p.Page <= 1
}

// SettingsSource returns per-user page-size overrides.
type SettingsSource interface {
	UserSettings(ctx context.Context, userID int64) (*models.UserSettings, error)
}

// PageSizeResolver picks the page size for a viewer: the user's own setting
// for the device class, else the deployment default, clamped to the theme
// maximum.
type PageSizeResolver struct {
	conf     structures.TimelineConfig
	settings SettingsSource
}

func NewPageSizeResolver(conf structures.TimelineConfig, settings SettingsSource) *PageSizeResolver {
	return &PageSizeResolver{conf: conf, settings: settings}
}

func (r *PageSizeResolver) Resolve(ctx context.Context, viewer models.Viewer) (int, error) {
	size := r.conf.ItemsPerPage
	if viewer.Mobile {
		size = r.conf.ItemsPerPageMobile
	}

	if viewer.LocalUserID != 0 && r.settings != nil {
		us, err := r.settings.UserSettings(ctx, viewer.LocalUserID)
		if err != nil {
			return 0, err
		}
		if us != nil {
			if viewer.Mobile && us.ItemsPerPageMobile > 0 {
				size = us.ItemsPerPageMobile
			} else if !viewer.Mobile && us.ItemsPerPage > 0 {
				size = us.ItemsPerPage
			}
		}
	}

	return ClampPageSize(size, r.conf.ForceMaxItems), nil
}

// ClampPageSize applies a theme-imposed maximum when one is set.
func ClampPageSize(configured, themeMax int) int {
	if themeMax > 0 && themeMax < configured {
		return themeMax
	}
	return configured
}
