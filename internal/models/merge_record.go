package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// MergeItem is an item of a committed merge together with the list it was moved out of.
type MergeItem struct {
	Item
	Origin   int `json:"origin"`
	Position int `json:"position"`
}

// MergeRecord is the journal entry written when a merge is committed.
//
// FirstList and SecondList are the lists selected at commit time. Selection can change while a merge
// is pending, so they need not be where the items came from; each item's Origin records that.
type MergeRecord struct {
	id         string
	sequence   int
	listNumber int
	firstList  int
	secondList int
	items      []MergeItem
	createdAt  time.Time
}

// NewMergeRecord creates an unsaved record. Item positions are assigned from slice order.
func NewMergeRecord(listNumber, firstList, secondList int, items []MergeItem) *MergeRecord {
	positioned := make([]MergeItem, len(items))
	for i, it := range items {
		it.Position = i
		positioned[i] = it
	}

	return &MergeRecord{
		listNumber: listNumber,
		firstList:  firstList,
		secondList: secondList,
		items:      positioned,
		createdAt:  time.Now().UTC(),
	}
}

// RestoreMergeRecord rebuilds a record read from storage.
func RestoreMergeRecord(id string, sequence, listNumber, firstList, secondList int, items []MergeItem, createdAt time.Time) *MergeRecord {
	return &MergeRecord{
		id:         id,
		sequence:   sequence,
		listNumber: listNumber,
		firstList:  firstList,
		secondList: secondList,
		items:      items,
		createdAt:  createdAt,
	}
}

func (m *MergeRecord) ID() string           { return m.id }
func (m *MergeRecord) Sequence() int        { return m.sequence }
func (m *MergeRecord) ListNumber() int      { return m.listNumber }
func (m *MergeRecord) FirstList() int       { return m.firstList }
func (m *MergeRecord) SecondList() int      { return m.secondList }
func (m *MergeRecord) Items() []MergeItem   { return m.items }
func (m *MergeRecord) CreatedAt() time.Time { return m.createdAt }

func (m *MergeRecord) SetID(id string)     { m.id = id }
func (m *MergeRecord) SetSequence(seq int) { m.sequence = seq }

// Validate checks the record describes a merge that could have been committed.
func (m *MergeRecord) Validate() error {
	if m.id == "" {
		return fmt.Errorf("merge record id is required")
	}
	if len(m.items) == 0 {
		return fmt.Errorf("merge record %s has no items", m.id)
	}
	if m.firstList == m.secondList {
		return fmt.Errorf("merge record %s: source lists must differ", m.id)
	}
	if m.listNumber == m.firstList || m.listNumber == m.secondList {
		return fmt.Errorf("merge record %s: list number %d collides with a source list", m.id, m.listNumber)
	}
	for _, it := range m.items {
		if it.ID == "" {
			return fmt.Errorf("merge record %s: item at position %d has no id", m.id, it.Position)
		}
	}
	return nil
}

// MarshalJSON renders the record for CLI output.
func (m *MergeRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID         string      `json:"id"`
		Sequence   int         `json:"sequence"`
		ListNumber int         `json:"list_number"`
		FirstList  int         `json:"first_list"`
		SecondList int         `json:"second_list"`
		Items      []MergeItem `json:"items"`
		CreatedAt  time.Time   `json:"created_at"`
	}{m.id, m.sequence, m.listNumber, m.firstList, m.secondList, m.items, m.createdAt})
}
