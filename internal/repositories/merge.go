package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/listmerge/internal/models"
	"github.com/desertthunder/listmerge/internal/shared"
)

// MergeRepository stores committed merges and their items.
type MergeRepository struct {
	db *sql.DB
}

// NewMergeRepository creates a new MergeRepository with the given database connection
func NewMergeRepository(db *sql.DB) *MergeRepository {
	return &MergeRepository{db: db}
}

// Create inserts a merge and its items in one transaction, assigning ID and sequence.
func (r *MergeRepository) Create(rec *models.MergeRecord) error {
	rec.SetID(shared.GenerateID())
	if err := rec.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	sequence, err := NextSequence(tx, "merges")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	_, err = tx.Exec(`
		INSERT INTO merges (id, sequence, list_number, first_list, second_list, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, rec.ID(), sequence, rec.ListNumber(), rec.FirstList(), rec.SecondList(), rec.CreatedAt())
	if err != nil {
		return fmt.Errorf("failed to insert merge: %w", err)
	}

	for _, it := range rec.Items() {
		_, err := tx.Exec(`
			INSERT INTO merge_items (merge_id, position, item_id, name, description, origin)
			VALUES (?, ?, ?, ?, ?, ?)
		`, rec.ID(), it.Position, string(it.ID), it.Name, it.Description, it.Origin)
		if err != nil {
			return fmt.Errorf("failed to insert merge item %s: %w", it.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit merge: %w", err)
	}

	rec.SetSequence(sequence)
	return nil
}

// Get retrieves a merge by ID, excluding soft-deleted merges
func (r *MergeRepository) Get(id string) (*models.MergeRecord, error) {
	row := r.db.QueryRow(`
		SELECT id, sequence, list_number, first_list, second_list, created_at
		FROM merges
		WHERE id = ? AND deleted_at IS NULL
	`, id)

	rec, err := r.scan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", shared.ErrMergeNotFound, id)
	}
	if err != nil {
		return nil, err
	}

	return r.withItems(rec)
}

// GetBySequence retrieves a merge by its sequence number.
func (r *MergeRepository) GetBySequence(sequence int) (*models.MergeRecord, error) {
	row := r.db.QueryRow(`
		SELECT id, sequence, list_number, first_list, second_list, created_at
		FROM merges
		WHERE sequence = ? AND deleted_at IS NULL
	`, sequence)

	rec, err := r.scan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: #%d", shared.ErrMergeNotFound, sequence)
	}
	if err != nil {
		return nil, err
	}

	return r.withItems(rec)
}

// Delete soft-deletes a merge by ID
func (r *MergeRepository) Delete(id string) error {
	result, err := r.db.Exec(`
		UPDATE merges
		SET deleted_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to delete merge: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", shared.ErrMergeNotFound, id)
	}

	return nil
}

// List retrieves up to limit merges, newest first. A non-positive limit returns all of them.
func (r *MergeRepository) List(limit int) ([]*models.MergeRecord, error) {
	query := `
		SELECT id, sequence, list_number, first_list, second_list, created_at
		FROM merges
		WHERE deleted_at IS NULL
		ORDER BY sequence DESC
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query merges: %w", err)
	}

	var records []*models.MergeRecord
	for rows.Next() {
		rec, err := r.scan(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	rows.Close()

	for i, rec := range records {
		if records[i], err = r.withItems(rec); err != nil {
			return nil, err
		}
	}

	return records, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func (r *MergeRepository) scan(row scanner) (*models.MergeRecord, error) {
	var (
		id         string
		sequence   int
		listNumber int
		firstList  int
		secondList int
		createdAt  time.Time
	)

	if err := row.Scan(&id, &sequence, &listNumber, &firstList, &secondList, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan merge: %w", err)
	}

	return models.RestoreMergeRecord(id, sequence, listNumber, firstList, secondList, nil, createdAt), nil
}

func (r *MergeRepository) withItems(rec *models.MergeRecord) (*models.MergeRecord, error) {
	rows, err := r.db.Query(`
		SELECT position, item_id, name, description, origin
		FROM merge_items
		WHERE merge_id = ?
		ORDER BY position ASC
	`, rec.ID())
	if err != nil {
		return nil, fmt.Errorf("failed to query merge items: %w", err)
	}
	defer rows.Close()

	var items []models.MergeItem
	for rows.Next() {
		var (
			it     models.MergeItem
			itemID string
		)
		if err := rows.Scan(&it.Position, &itemID, &it.Name, &it.Description, &it.Origin); err != nil {
			return nil, fmt.Errorf("failed to scan merge item: %w", err)
		}
		it.ID = models.ItemID(itemID)
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return models.RestoreMergeRecord(rec.ID(), rec.Sequence(), rec.ListNumber(), rec.FirstList(), rec.SecondList(), items, rec.CreatedAt()), nil
}
