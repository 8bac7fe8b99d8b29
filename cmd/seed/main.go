// Command seed bulk-imports places from a JSON file into the database. Rows
// import as already-approved listings attributed to an importer user, so the
// tool is for trusted curated data, not user submissions.
//
// Usage: seed [places.json]
package main

import (
	"encoding/json"
	"log"
	"log/slog"
	"os"
	"time"

	"iftarmap/database"
	"iftarmap/internal/config"
	"iftarmap/internal/httpapi/models"

	"gorm.io/gorm/clause"
)

const importerUserID = "system-import"

type placeImport struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Location    string  `json:"location"`
	Latitude    *string `json:"latitude"`
	Longitude   *string `json:"longitude"`
	ImageURL1   *string `json:"image_url1"`
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	jsonFile := "places.json"
	if len(os.Args) > 1 {
		jsonFile = os.Args[1]
	}

	raw, err := os.ReadFile(jsonFile)
	if err != nil {
		log.Fatalf("Failed to read %s: %v", jsonFile, err)
	}

	var imports []placeImport
	if err := json.Unmarshal(raw, &imports); err != nil {
		log.Fatalf("Failed to parse %s: %v", jsonFile, err)
	}
	logger.Info("loaded_import_file", "file", jsonFile, "places", len(imports))

	db, err := database.ConnectDB(cfg, logger)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	importer := models.User{
		ID:          importerUserID,
		Email:       "import@iftarmap.local",
		DisplayName: "IftarMap Import",
	}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&importer).Error; err != nil {
		log.Fatalf("Failed to create importer user: %v", err)
	}

	now := time.Now()
	adminID := importerUserID
	imported := 0
	for _, entry := range imports {
		if entry.Name == "" || entry.Location == "" {
			logger.Warn("skipping_invalid_entry", "name", entry.Name)
			continue
		}
		place := models.Place{
			Name:        entry.Name,
			Description: entry.Description,
			Location:    entry.Location,
			Latitude:    entry.Latitude,
			Longitude:   entry.Longitude,
			ImageURL1:   entry.ImageURL1,
			CreatedBy:   importerUserID,
			Approved:    true,
			ApprovedBy:  &adminID,
			ApprovedAt:  &now,
		}
		if err := db.Create(&place).Error; err != nil {
			log.Fatalf("Failed to import %q: %v", entry.Name, err)
		}
		imported++
	}

	logger.Info("import_complete", "imported", imported, "skipped", len(imports)-imported)
}
