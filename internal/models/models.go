// package models defines the data model for list merging
package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Model defines the base interface for all persistent models.
type Model interface {
	ID() string           // ID returns the unique identifier for this model
	CreatedAt() time.Time // CreatedAt returns when this model was created
	Validate() error      // Validate checks if the model's data is valid and returns an error if not
}

// Repository defines the interface for data access operations.
type Repository[T Model] interface {
	Create(model T) error        // Create inserts a new model into the database
	Get(id string) (T, error)    // Get retrieves a model by its ID
	Delete(id string) error      // Delete removes a model from the database by its ID
	List(limit int) ([]T, error) // List retrieves the most recent models, newest first
}

// ItemID identifies an [Item]. The lists endpoint sends ids as either strings or numbers.
type ItemID string

// UnmarshalJSON accepts a JSON string or number.
func (id *ItemID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ItemID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("item id must be a string or number: %w", err)
	}
	*id = ItemID(n.String())
	return nil
}

// UnmarshalYAML accepts a string or integer scalar.
func (id *ItemID) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.ScalarNode {
		return fmt.Errorf("item id must be a scalar, line %d", n.Line)
	}
	switch n.ShortTag() {
	case "!!str", "!!int":
		*id = ItemID(n.Value)
		return nil
	default:
		return fmt.Errorf("item id must be a string or integer, got %s on line %d", n.ShortTag(), n.Line)
	}
}

// Item is an atomic entry of a list. Items are never modified once loaded.
type Item struct {
	ID          ItemID `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description,omitempty"`
}

// List is a numbered, ordered collection of items.
type List struct {
	Number int    `json:"list_number" yaml:"list_number"`
	Items  []Item `json:"items" yaml:"items"`
}

// Title is the display name of the list.
func (l List) Title() string {
	return "List " + strconv.Itoa(l.Number)
}

// Index returns the position of the item with the given id, or -1.
func (l List) Index(id ItemID) int {
	for i, it := range l.Items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

// Clone returns a copy that shares no backing array with l.
func (l List) Clone() List {
	items := make([]Item, len(l.Items))
	copy(items, l.Items)
	return List{Number: l.Number, Items: items}
}

// RawItem is one element of the lists endpoint response.
type RawItem struct {
	ID          ItemID `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	ListNumber  int    `json:"list_number" yaml:"list_number"`
}

// Item strips the list number.
func (r RawItem) Item() Item {
	return Item{ID: r.ID, Name: r.Name, Description: r.Description}
}

// Payload is the lists endpoint response body.
type Payload struct {
	Lists []RawItem `json:"lists" yaml:"lists"`
}

// Partition groups raw items into lists by list number.
//
// Lists 1 and 2 are always present, possibly empty; any other list numbers follow in ascending order.
// Items with a list number below 1, including a missing one, are dropped.
// Within a list, items keep payload order.
func Partition(raw []RawItem) []List {
	groups := map[int][]Item{1: {}, 2: {}}
	for _, r := range raw {
		if r.ListNumber < 1 {
			continue
		}
		groups[r.ListNumber] = append(groups[r.ListNumber], r.Item())
	}

	numbers := make([]int, 0, len(groups))
	for n := range groups {
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)

	lists := make([]List, 0, len(numbers))
	for _, n := range numbers {
		lists = append(lists, List{Number: n, Items: groups[n]})
	}
	return lists
}

// MaxNumber returns the largest list number, or 0 for no lists.
func MaxNumber(lists []List) int {
	max := 0
	for i, l := range lists {
		if i == 0 || l.Number > max {
			max = l.Number
		}
	}
	return max
}
