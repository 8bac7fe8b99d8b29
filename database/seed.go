package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"iftarmap/internal/httpapi/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// seedUserID is the system user the curated starter listings are attributed to.
const seedUserID = "system-seed"

func strPtr(s string) *string { return &s }

var seedPlaces = []models.Place{
	{
		ID:        "5b1d24d3-6a51-4b83-9f54-1f0c9e1d3a01",
		Name:      "Sheikh Zayed Grand Mosque Iftar Tent",
		Location:  "Sheikh Rashid Bin Saeed Street, Abu Dhabi",
		Latitude:  strPtr("24.4128"),
		Longitude: strPtr("54.4750"),
		Description: strPtr("Large community tent serving free Iftar meals " +
			"throughout Ramadan."),
	},
	{
		ID:        "5b1d24d3-6a51-4b83-9f54-1f0c9e1d3a02",
		Name:      "Al Farooq Mosque Iftar",
		Location:  "Al Safa 1, Dubai",
		Latitude:  strPtr("25.1762"),
		Longitude: strPtr("55.2382"),
	},
	{
		ID:        "5b1d24d3-6a51-4b83-9f54-1f0c9e1d3a03",
		Name:      "Sharjah Charity Iftar Point",
		Location:  "Al Majaz Waterfront, Sharjah",
		Latitude:  strPtr("25.3241"),
		Longitude: strPtr("55.3849"),
	},
}

// SeedIfEmpty inserts the curated starter listings when the places table is
// empty. The existence check runs under its own timeout; if the datastore
// does not answer in time the seed is skipped and boot continues, since an
// empty directory is preferable to a server that never comes up.
func SeedIfEmpty(db *gorm.DB, timeout time.Duration, log *slog.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var count int64
	if err := db.WithContext(ctx).Model(&models.Place{}).Count(&count).Error; err != nil {
		if ctx.Err() != nil {
			log.Warn("seed_check_timed_out", "timeout", timeout.String())
			return nil
		}
		return fmt.Errorf("seed existence check: %w", err)
	}
	if count > 0 {
		return nil
	}

	seedUser := models.User{
		ID:          seedUserID,
		Email:       "seed@iftarmap.local",
		DisplayName: "IftarMap",
	}
	if err := db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&seedUser).Error; err != nil {
		return fmt.Errorf("seed system user: %w", err)
	}

	now := time.Now()
	for i := range seedPlaces {
		place := seedPlaces[i]
		place.CreatedBy = seedUserID
		place.Approved = true
		place.ApprovedBy = strPtr(seedUserID)
		place.ApprovedAt = &now
		if err := db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&place).Error; err != nil {
			return fmt.Errorf("seed place %q: %w", place.Name, err)
		}
	}

	log.Info("seeded_starter_places", "count", len(seedPlaces))
	return nil
}
