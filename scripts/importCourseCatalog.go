package main

import (
	"encoding/csv"
	"encoding/json"
	"lms/config"
	"lms/database"
	courseModels "lms/models/course"
	"log"
	"os"
	"strconv"
	"strings"

	"gorm.io/datatypes"
)

func main() {
	// Load config and connect to database
	config.LoadConfig()
	database.ConnectDb()

	// Open CSV file
	file, err := os.Open("CourseCatalog.csv")
	if err != nil {
		log.Fatalf("Failed to open CSV file: %v", err)
	}
	defer file.Close()

	// Create CSV reader
	reader := csv.NewReader(file)

	// Read all records
	records, err := reader.ReadAll()
	if err != nil {
		log.Fatalf("Failed to read CSV: %v", err)
	}

	if len(records) < 2 {
		log.Fatal("CSV file is empty or has only headers")
	}

	// Skip header row
	header := records[0]
	log.Printf("CSV Headers: %v", header)
	log.Printf("Total rows to import: %d", len(records)-1)

	// Map header indices
	headerIndex := make(map[string]int)
	for i, h := range header {
		headerIndex[strings.TrimSpace(h)] = i
	}

	inserted := 0
	updated := 0
	skipped := 0

	for i, row := range records[1:] {
		if i%100 == 0 {
			log.Printf("Processing row %d...", i+1)
		}

		course := courseModels.Course{
			Title:              getField(row, headerIndex, "title"),
			Description:        getField(row, headerIndex, "description"),
			Category:           getField(row, headerIndex, "category"),
			Type:               getField(row, headerIndex, "type"),
			Duration:           int64(parseInt(getField(row, headerIndex, "duration"))),
			LessonCount:        parseInt(getField(row, headerIndex, "lessonCount")),
			BackgroundColorHex: getField(row, headerIndex, "backgroundColorHex"),
			IconURL:            getField(row, headerIndex, "iconUrl"),
			ThumbnailURL:       getField(row, headerIndex, "thumbnailUrl"),
			Tags:               parseTags(getField(row, headerIndex, "tags")),
			IsDeleted:          false,
		}
		if course.Type == "" {
			course.Type = courseModels.TypeRecorded
		}
		if course.BackgroundColorHex == "" {
			course.BackgroundColorHex = "#2D5BFF"
		}

		// Skip if no title
		if course.Title == "" {
			skipped++
			continue
		}

		// Check if course exists by title and category
		var existing courseModels.Course
		result := database.Database.Db.Where("title = ? AND category = ?", course.Title, course.Category).First(&existing)

		if result.Error != nil {
			// Insert new course
			if err := database.Database.Db.Create(&course).Error; err != nil {
				log.Printf("Error inserting course %s: %v", course.Title, err)
				continue
			}
			inserted++
		} else {
			// Update existing course
			existing.Description = course.Description
			existing.Type = course.Type
			existing.Duration = course.Duration
			existing.LessonCount = course.LessonCount
			existing.BackgroundColorHex = course.BackgroundColorHex
			existing.IconURL = course.IconURL
			existing.ThumbnailURL = course.ThumbnailURL
			existing.Tags = course.Tags

			if err := database.Database.Db.Save(&existing).Error; err != nil {
				log.Printf("Error updating course %s: %v", course.Title, err)
				continue
			}
			updated++
		}
	}

	log.Printf("=== Import Complete ===")
	log.Printf("Inserted: %d", inserted)
	log.Printf("Updated: %d", updated)
	log.Printf("Skipped: %d", skipped)
}

func getField(row []string, headerIndex map[string]int, name string) string {
	idx, ok := headerIndex[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func parseInt(s string) int {
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

// parseTags turns a pipe separated tag list into the stored JSON array
func parseTags(s string) datatypes.JSON {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, "|")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			tags = append(tags, trimmed)
		}
	}
	raw, err := json.Marshal(tags)
	if err != nil {
		return nil
	}
	return datatypes.JSON(raw)
}
