package services

import (
	"testing"
	"time"

	"storenews/app/config"
	"storenews/app/models"

	"github.com/stretchr/testify/assert"
)

func TestConvertToUserTime(t *testing.T) {
	utc := time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)
	berliner := &models.WorkContext{CurrentCustomer: &models.Customer{ID: 1, TimeZoneID: "Europe/Berlin"}}
	lost := &models.WorkContext{CurrentCustomer: &models.Customer{ID: 2, TimeZoneID: "Nowhere/Special"}}

	tests := []struct {
		name     string
		settings config.DateTimeSettings
		wc       *models.WorkContext
		wantZone string
		wantHour int
	}{
		{"store default", config.DateTimeSettings{DefaultStoreTimeZoneID: "America/New_York"}, berliner, "America/New_York", 8},
		{"customer zone", config.DateTimeSettings{DefaultStoreTimeZoneID: "America/New_York", AllowCustomersToSetTimeZone: true}, berliner, "Europe/Berlin", 14},
		{"unknown customer zone", config.DateTimeSettings{DefaultStoreTimeZoneID: "America/New_York", AllowCustomersToSetTimeZone: true}, lost, "America/New_York", 8},
		{"nothing configured", config.DateTimeSettings{}, nil, "UTC", 12},
		{"guest", config.DateTimeSettings{DefaultStoreTimeZoneID: "Asia/Tokyo", AllowCustomersToSetTimeZone: true}, &models.WorkContext{}, "Asia/Tokyo", 21},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewDateTimeHelper(tt.settings)
			local := h.ConvertToUserTime(tt.wc, utc)
			assert.Equal(t, tt.wantZone, local.Location().String())
			assert.Equal(t, tt.wantHour, local.Hour())
			assert.True(t, utc.Equal(local), "conversion keeps the instant")
		})
	}
}
