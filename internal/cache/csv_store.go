// Package cache persists the two derived tables the analyzer exports as
// flat CSV files: per-draw geographic winner records and per-number
// frequency counts. The files exist to avoid recomputation across runs;
// the engine produces identical results whether its snapshot comes from a
// freshly fetched history or from these tables.
package cache

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"golang.org/x/exp/slog"

	"github.com/loteriainsights/megasena-backend/internal/models"
)

const dateLayout = "2006-01-02"

// WinnerRecord is one row of the winner-records table: a single Sena win
// attributed to a municipality in a specific contest.
type WinnerRecord struct {
	ContestNumber int
	DrawDate      time.Time
	Municipality  string
	State         string
}

// Store reads and writes the cached tables under a base directory.
type Store struct {
	winnersPath   string
	frequencyPath string
}

// NewStore creates a Store rooted at dir using the given file names.
func NewStore(dir, winnersFile, frequencyFile string) *Store {
	return &Store{
		winnersPath:   filepath.Join(dir, winnersFile),
		frequencyPath: filepath.Join(dir, frequencyFile),
	}
}

// SaveWinnerRecords rewrites the winner-records table from the draw
// history, one row per winning ticket.
func (s *Store) SaveWinnerRecords(draws []models.DrawRecord) error {
	rows := [][]string{{"contest", "date", "municipality", "state"}}
	for _, draw := range draws {
		for _, w := range draw.Winners {
			rows = append(rows, []string{
				strconv.Itoa(draw.ContestNumber),
				draw.DrawDate.Format(dateLayout),
				w.Municipality,
				w.State,
			})
		}
	}
	if err := s.writeFile(s.winnersPath, rows); err != nil {
		return fmt.Errorf("failed to save winner records: %w", err)
	}
	slog.Info("Winner records cache rewritten", "path", s.winnersPath, "rows", len(rows)-1)
	return nil
}

// LoadWinnerRecords reads the winner-records table back.
func (s *Store) LoadWinnerRecords() ([]WinnerRecord, error) {
	rows, err := s.readFile(s.winnersPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load winner records: %w", err)
	}
	records := make([]WinnerRecord, 0, len(rows))
	for i, row := range rows {
		if len(row) != 4 {
			return nil, fmt.Errorf("winner records row %d: expected 4 fields, got %d", i+1, len(row))
		}
		contest, err := strconv.Atoi(row[0])
		if err != nil {
			return nil, fmt.Errorf("winner records row %d: invalid contest %q", i+1, row[0])
		}
		date, err := time.Parse(dateLayout, row[1])
		if err != nil {
			return nil, fmt.Errorf("winner records row %d: invalid date %q", i+1, row[1])
		}
		records = append(records, WinnerRecord{
			ContestNumber: contest,
			DrawDate:      date,
			Municipality:  row[2],
			State:         row[3],
		})
	}
	return records, nil
}

// SaveFrequencyTable rewrites the per-number frequency table. Rows are
// written in ascending number order so the file diffs cleanly.
func (s *Store) SaveFrequencyTable(table models.FrequencyTable) error {
	numbers := make([]int, 0, len(table.Counts))
	for n := range table.Counts {
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)

	rows := [][]string{{"number", "occurrences", "totalDraws"}}
	for _, n := range numbers {
		rows = append(rows, []string{
			fmt.Sprintf("%02d", n),
			strconv.Itoa(table.Counts[n]),
			strconv.Itoa(table.TotalDraws),
		})
	}
	if err := s.writeFile(s.frequencyPath, rows); err != nil {
		return fmt.Errorf("failed to save frequency table: %w", err)
	}
	slog.Info("Frequency cache rewritten", "path", s.frequencyPath, "numbers", len(numbers))
	return nil
}

// LoadFrequencyTable reads the frequency table back. The loaded table
// carries the same counts and draw total the analyzer computed, so
// rankings derived from it match a fresh rebuild.
func (s *Store) LoadFrequencyTable() (models.FrequencyTable, error) {
	rows, err := s.readFile(s.frequencyPath)
	if err != nil {
		return models.FrequencyTable{}, fmt.Errorf("failed to load frequency table: %w", err)
	}
	table := models.FrequencyTable{Counts: make(map[int]int, models.MaxNumber)}
	for i, row := range rows {
		if len(row) != 3 {
			return models.FrequencyTable{}, fmt.Errorf("frequency row %d: expected 3 fields, got %d", i+1, len(row))
		}
		number, err := strconv.Atoi(row[0])
		if err != nil || number < models.MinNumber || number > models.MaxNumber {
			return models.FrequencyTable{}, fmt.Errorf("frequency row %d: invalid number %q", i+1, row[0])
		}
		count, err := strconv.Atoi(row[1])
		if err != nil || count < 0 {
			return models.FrequencyTable{}, fmt.Errorf("frequency row %d: invalid count %q", i+1, row[1])
		}
		totalDraws, err := strconv.Atoi(row[2])
		if err != nil {
			return models.FrequencyTable{}, fmt.Errorf("frequency row %d: invalid draw total %q", i+1, row[2])
		}
		table.Counts[number] = count
		table.TotalDraws = totalDraws
	}
	if len(table.Counts) != models.MaxNumber {
		return models.FrequencyTable{}, fmt.Errorf("frequency table covers %d numbers, expected %d", len(table.Counts), models.MaxNumber)
	}
	return table, nil
}

// Exists reports whether both cached tables are present on disk.
func (s *Store) Exists() bool {
	for _, path := range []string{s.winnersPath, s.frequencyPath} {
		if _, err := os.Stat(path); err != nil {
			return false
		}
	}
	return true
}

func (s *Store) writeFile(path string, rows [][]string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.WriteAll(rows); err != nil {
		return err
	}
	writer.Flush()
	return writer.Error()
}

// readFile returns the data rows of a CSV file, skipping the header.
func (s *Store) readFile(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: missing header row", path)
	}
	return rows[1:], nil
}
