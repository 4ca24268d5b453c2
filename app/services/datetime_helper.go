package services

import (
	"sync"
	"time"

	"storenews/app/config"
	"storenews/app/logger"
	"storenews/app/models"
)

// DateTimeHelper converts UTC timestamps into the time zone of the viewer.
type DateTimeHelper struct {
	settings  config.DateTimeSettings
	locations sync.Map
}

func NewDateTimeHelper(settings config.DateTimeSettings) *DateTimeHelper {
	return &DateTimeHelper{settings: settings}
}

// CurrentTimeZone resolves the viewer's time zone: the customer's own zone when
// customers may choose one, then the store default, then UTC.
func (h *DateTimeHelper) CurrentTimeZone(wc *models.WorkContext) *time.Location {
	if h.settings.AllowCustomersToSetTimeZone {
		if id := wc.Customer().TimeZoneID; id != "" {
			if loc, ok := h.load(id); ok {
				return loc
			}
		}
	}
	if loc, ok := h.load(h.settings.DefaultStoreTimeZoneID); ok {
		return loc
	}
	return time.UTC
}

// ConvertToUserTime returns utc in the viewer's time zone.
func (h *DateTimeHelper) ConvertToUserTime(wc *models.WorkContext, utc time.Time) time.Time {
	return utc.In(h.CurrentTimeZone(wc))
}

func (h *DateTimeHelper) load(id string) (*time.Location, bool) {
	if id == "" {
		return nil, false
	}
	if loc, ok := h.locations.Load(id); ok {
		return loc.(*time.Location), true
	}

	loc, err := time.LoadLocation(id)
	if err != nil {
		logger.WithFields(logger.Fields{"time_zone": id}).Warn("unknown time zone, falling back")
		return nil, false
	}
	h.locations.Store(id, loc)
	return loc, true
}
