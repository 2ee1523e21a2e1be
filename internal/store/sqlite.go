// Package store archives generation runs in SQLite so repeated syntheses can
// be kept and compared. It is an optional sink next to the CSV dataset.
package store

import (
	"database/sql"
	"fmt"
	"time"

	"fieldspectra/internal/models"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Run is one archived generation with its reproducibility triple.
type Run struct {
	ID        int64
	Rows      int
	Cols      int
	Seed      int64
	CreatedAt time.Time
}

// InsertRun records a new generation run and returns its ID.
func (s *Store) InsertRun(rows, cols int, seed int64) (int64, error) {
	res, err := s.db.Exec(`
		INSERT INTO runs (grid_rows, grid_cols, seed, created_at)
		VALUES (?, ?, ?, ?)
	`, rows, cols, seed, time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}
	return res.LastInsertId()
}

// InsertRecords stores a run's records in one transaction.
func (s *Store) InsertRecords(runID int64, records []models.SpectralRecord) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO records (run_id, plot_id, grid_row, grid_col, blue_480, green_560, red_665, red_edge_705, red_edge_740, nir_842, nir2_865, swir_1610, swir_2190)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i := range records {
		rec := &records[i]
		if _, err := stmt.Exec(runID, rec.PlotID, rec.Row, rec.Col,
			rec.Blue480, rec.Green560, rec.Red665,
			rec.RedEdge705, rec.RedEdge740,
			rec.NIR842, rec.NIR2865,
			rec.SWIR1610, rec.SWIR2190); err != nil {
			tx.Rollback()
			return fmt.Errorf("insert record %s: %w", rec.PlotID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit records: %w", err)
	}
	return nil
}

// LatestRun returns the most recently archived run, or nil when the archive
// is empty.
func (s *Store) LatestRun() (*Run, error) {
	row := s.db.QueryRow(`
		SELECT id, grid_rows, grid_cols, seed, created_at
		FROM runs
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`)

	var run Run
	err := row.Scan(&run.ID, &run.Rows, &run.Cols, &run.Seed, &run.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &run, nil
}

// GetRun looks up a run by ID; nil when absent.
func (s *Store) GetRun(id int64) (*Run, error) {
	row := s.db.QueryRow(`
		SELECT id, grid_rows, grid_cols, seed, created_at
		FROM runs
		WHERE id = ?
	`, id)

	var run Run
	err := row.Scan(&run.ID, &run.Rows, &run.Cols, &run.Seed, &run.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &run, nil
}

// GetRecords returns a run's records in row-major order.
func (s *Store) GetRecords(runID int64) ([]models.SpectralRecord, error) {
	rows, err := s.db.Query(`
		SELECT plot_id, grid_row, grid_col, blue_480, green_560, red_665, red_edge_705, red_edge_740, nir_842, nir2_865, swir_1610, swir_2190
		FROM records
		WHERE run_id = ?
		ORDER BY grid_row ASC, grid_col ASC
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.SpectralRecord
	for rows.Next() {
		var rec models.SpectralRecord
		if err := rows.Scan(&rec.PlotID, &rec.Row, &rec.Col,
			&rec.Blue480, &rec.Green560, &rec.Red665,
			&rec.RedEdge705, &rec.RedEdge740,
			&rec.NIR842, &rec.NIR2865,
			&rec.SWIR1610, &rec.SWIR2190); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// ListRuns returns archived runs, newest first.
func (s *Store) ListRuns(limit int) ([]Run, error) {
	rows, err := s.db.Query(`
		SELECT id, grid_rows, grid_cols, seed, created_at
		FROM runs
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		if err := rows.Scan(&run.ID, &run.Rows, &run.Cols, &run.Seed, &run.CreatedAt); err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
