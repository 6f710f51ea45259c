package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/loteriainsights/megasena-backend/internal/models"
	mongorepo "github.com/loteriainsights/megasena-backend/internal/repositories/mongodb"
	"github.com/loteriainsights/megasena-backend/pkg/mongodb"
)

// Imports a CSV dump of historical draws into MongoDB. Expected columns:
// contest,date(YYYY-MM-DD),n1,n2,n3,n4,n5,n6 with a header row. Useful to
// seed a deployment from an offline results export without hitting the
// upstream API.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	mongoURI := os.Getenv("MONGODB_URI")
	if mongoURI == "" {
		log.Fatal("MONGODB_URI environment variable is required")
	}
	dbName := os.Getenv("MONGODB_DATABASE")
	if dbName == "" {
		dbName = "megasena"
	}

	if len(os.Args) < 2 {
		log.Fatal("CSV file path is required as a command line argument")
	}
	csvFilePath := os.Args[1]

	client, err := mongodb.NewClient(context.Background(), mongoURI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(context.Background())

	db := client.Database(dbName)
	imported, err := importDraws(db, csvFilePath)
	if err != nil {
		log.Fatalf("Failed to import draws: %v", err)
	}

	log.Printf("Imported %d draws successfully", imported)
}

func importDraws(db *mongo.Database, csvFilePath string) (int, error) {
	file, err := os.Open(csvFilePath)
	if err != nil {
		return 0, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return 0, fmt.Errorf("failed to parse CSV file: %w", err)
	}
	if len(records) < 2 {
		return 0, fmt.Errorf("CSV file is empty or has only a header")
	}

	var draws []models.DrawRecord
	for i, record := range records {
		if i == 0 {
			continue
		}
		if len(record) < 2+models.NumbersPerDraw {
			log.Printf("Warning: row %d has %d fields, expected %d, skipping", i, len(record), 2+models.NumbersPerDraw)
			continue
		}

		contest, err := strconv.Atoi(record[0])
		if err != nil {
			log.Printf("Warning: row %d has invalid contest number %q, skipping", i, record[0])
			continue
		}
		date, err := time.Parse("2006-01-02", record[1])
		if err != nil {
			log.Printf("Warning: row %d has invalid date %q, skipping", i, record[1])
			continue
		}
		numbers := make([]int, 0, models.NumbersPerDraw)
		ok := true
		for _, raw := range record[2 : 2+models.NumbersPerDraw] {
			n, err := strconv.Atoi(raw)
			if err != nil {
				log.Printf("Warning: row %d has invalid number %q, skipping", i, raw)
				ok = false
				break
			}
			numbers = append(numbers, n)
		}
		if !ok {
			continue
		}

		draw := models.DrawRecord{
			ContestNumber: contest,
			DrawDate:      date,
			Numbers:       numbers,
		}
		if err := draw.Validate(); err != nil {
			log.Printf("Warning: row %d failed validation (%v), skipping", i, err)
			continue
		}
		draws = append(draws, draw)
	}

	if len(draws) == 0 {
		return 0, fmt.Errorf("no valid draws found in %s", csvFilePath)
	}

	repo := mongorepo.NewDrawRepository(db)
	if err := repo.UpsertMany(context.Background(), draws); err != nil {
		return 0, fmt.Errorf("failed to upsert draws: %w", err)
	}
	return len(draws), nil
}
