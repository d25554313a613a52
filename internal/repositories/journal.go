package repositories

import (
	"fmt"

	"github.com/desertthunder/listmerge/internal/merge"
	"github.com/desertthunder/listmerge/internal/models"
)

// JournalAdapter records commits from the state machine with a [MergeRepository].
type JournalAdapter struct {
	repo *MergeRepository
}

// NewJournalAdapter creates a new JournalAdapter with the given repository
func NewJournalAdapter(repo *MergeRepository) *JournalAdapter {
	return &JournalAdapter{repo: repo}
}

// Record stores a committed merge and returns its sequence number.
func (a *JournalAdapter) Record(c merge.Committed) (int, error) {
	items := make([]models.MergeItem, len(c.Entries))
	for i, e := range c.Entries {
		items[i] = models.MergeItem{Item: e.Item, Origin: e.Origin}
	}

	rec := models.NewMergeRecord(c.List.Number, c.First, c.Second, items)
	if err := a.repo.Create(rec); err != nil {
		return 0, fmt.Errorf("failed to record merge of list %d: %w", c.List.Number, err)
	}

	return rec.Sequence(), nil
}
