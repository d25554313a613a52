package models

import (
	"encoding/json"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestItemID(t *testing.T) {
	tc := []struct {
		name    string
		in      string
		want    ItemID
		wantErr bool
	}{
		{name: "string id", in: `"a1"`, want: "a1"},
		{name: "integer id", in: `42`, want: "42"},
		{name: "uuid id", in: `"c7d3f0b8-1f6e-4a0e-9d55-8d0a1b2c3d4e"`, want: "c7d3f0b8-1f6e-4a0e-9d55-8d0a1b2c3d4e"},
		{name: "boolean id", in: `true`, wantErr: true},
		{name: "object id", in: `{}`, wantErr: true},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			var id ItemID
			err := json.Unmarshal([]byte(tt.in), &id)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Unmarshal(%s) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && id != tt.want {
				t.Errorf("Unmarshal(%s) = %q, want %q", tt.in, id, tt.want)
			}
		})
	}
}

func TestItemIDYAML(t *testing.T) {
	tc := []struct {
		name    string
		in      string
		want    ItemID
		wantErr bool
	}{
		{name: "string id", in: `id: a1`, want: "a1"},
		{name: "quoted number", in: `id: "7"`, want: "7"},
		{name: "integer id", in: `id: 42`, want: "42"},
		{name: "boolean id", in: `id: true`, wantErr: true},
		{name: "list id", in: `id: [1]`, wantErr: true},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			var body struct {
				ID ItemID `yaml:"id"`
			}
			err := yaml.Unmarshal([]byte(tt.in), &body)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Unmarshal(%s) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && body.ID != tt.want {
				t.Errorf("Unmarshal(%s) = %q, want %q", tt.in, body.ID, tt.want)
			}
		})
	}
}

func TestPartition(t *testing.T) {
	t.Run("Splits By List Number In Payload Order", func(t *testing.T) {
		raw := []RawItem{
			{ID: "a", Name: "A", ListNumber: 1},
			{ID: "c", Name: "C", ListNumber: 2},
			{ID: "b", Name: "B", ListNumber: 1},
		}

		lists := Partition(raw)
		if len(lists) != 2 {
			t.Fatalf("expected 2 lists, got %d", len(lists))
		}
		if lists[0].Number != 1 || lists[1].Number != 2 {
			t.Fatalf("expected lists 1 and 2, got %d and %d", lists[0].Number, lists[1].Number)
		}
		if got := lists[0].Items; len(got) != 2 || got[0].ID != "a" || got[1].ID != "b" {
			t.Errorf("unexpected list 1 items: %+v", got)
		}
		if got := lists[1].Items; len(got) != 1 || got[0].ID != "c" {
			t.Errorf("unexpected list 2 items: %+v", got)
		}
	})

	t.Run("Always Has Lists One And Two", func(t *testing.T) {
		lists := Partition(nil)
		if len(lists) != 2 {
			t.Fatalf("expected 2 empty lists, got %d", len(lists))
		}
		for _, l := range lists {
			if len(l.Items) != 0 {
				t.Errorf("expected list %d to be empty", l.Number)
			}
		}
	})

	t.Run("Extra List Numbers Are Appended In Order", func(t *testing.T) {
		lists := Partition([]RawItem{
			{ID: "x", ListNumber: 7},
			{ID: "y", ListNumber: 4},
		})

		want := []int{1, 2, 4, 7}
		if len(lists) != len(want) {
			t.Fatalf("expected %d lists, got %d", len(want), len(lists))
		}
		for i, n := range want {
			if lists[i].Number != n {
				t.Errorf("lists[%d].Number = %d, want %d", i, lists[i].Number, n)
			}
		}
	})

	t.Run("Drops Items Without A Valid List Number", func(t *testing.T) {
		lists := Partition([]RawItem{
			{ID: "zero", ListNumber: 0},
			{ID: "neg", ListNumber: -3},
			{ID: "a", ListNumber: 1},
		})

		if len(lists) != 2 || lists[0].Number != 1 || lists[1].Number != 2 {
			t.Fatalf("expected only lists 1 and 2, got %+v", lists)
		}
		if got := lists[0].Items; len(got) != 1 || got[0].ID != "a" {
			t.Errorf("unexpected list 1 items: %+v", got)
		}
		if len(lists[1].Items) != 0 {
			t.Errorf("expected list 2 to be empty, got %+v", lists[1].Items)
		}
	})

	t.Run("Missing List Number In JSON", func(t *testing.T) {
		var p Payload
		if err := json.Unmarshal([]byte(`{"lists":[{"id":1,"name":"Orphan"},{"id":2,"name":"Kept","list_number":2}]}`), &p); err != nil {
			t.Fatalf("unmarshal failed: %v", err)
		}

		lists := Partition(p.Lists)
		if len(lists) != 2 || len(lists[0].Items) != 0 || len(lists[1].Items) != 1 {
			t.Errorf("expected orphan to be dropped, got %+v", lists)
		}
	})
}

func TestList(t *testing.T) {
	l := List{Number: 3, Items: []Item{{ID: "a"}, {ID: "b"}}}

	if l.Title() != "List 3" {
		t.Errorf("unexpected title %q", l.Title())
	}
	if l.Index("b") != 1 || l.Index("z") != -1 {
		t.Errorf("unexpected Index results: %d, %d", l.Index("b"), l.Index("z"))
	}

	c := l.Clone()
	c.Items[0].Name = "changed"
	if l.Items[0].Name == "changed" {
		t.Error("Clone should not share items with the original")
	}

	if MaxNumber([]List{{Number: 2}, {Number: 9}, {Number: 4}}) != 9 {
		t.Error("expected MaxNumber 9")
	}
	if MaxNumber(nil) != 0 {
		t.Error("expected MaxNumber 0 for no lists")
	}
}

func TestMergeRecord(t *testing.T) {
	t.Run("Positions Follow Slice Order", func(t *testing.T) {
		rec := NewMergeRecord(3, 1, 2, []MergeItem{
			{Item: Item{ID: "a"}, Origin: 1},
			{Item: Item{ID: "c"}, Origin: 2},
		})

		for i, it := range rec.Items() {
			if it.Position != i {
				t.Errorf("item %s has position %d, want %d", it.ID, it.Position, i)
			}
		}
		if rec.CreatedAt().IsZero() {
			t.Error("expected created_at to be set")
		}
	})

	t.Run("MarshalJSON", func(t *testing.T) {
		rec := NewMergeRecord(3, 1, 2, []MergeItem{{Item: Item{ID: "a", Name: "Alpha"}, Origin: 1}})
		rec.SetID("rec-1")
		rec.SetSequence(4)

		data, err := json.Marshal(rec)
		if err != nil {
			t.Fatalf("Marshal failed: %v", err)
		}

		var decoded map[string]any
		if err := json.Unmarshal(data, &decoded); err != nil {
			t.Fatalf("Unmarshal failed: %v", err)
		}
		if decoded["id"] != "rec-1" || decoded["sequence"] != float64(4) || decoded["list_number"] != float64(3) {
			t.Errorf("unexpected fields: %v", decoded)
		}
		items := decoded["items"].([]any)
		first := items[0].(map[string]any)
		if first["id"] != "a" || first["origin"] != float64(1) || first["position"] != float64(0) {
			t.Errorf("unexpected item: %v", first)
		}
	})

	t.Run("Validate", func(t *testing.T) {
		tc := []struct {
			name    string
			rec     *MergeRecord
			setID   bool
			wantErr bool
		}{
			{name: "valid", rec: NewMergeRecord(3, 1, 2, []MergeItem{{Item: Item{ID: "a"}, Origin: 1}}), setID: true},
			{name: "missing id", rec: NewMergeRecord(3, 1, 2, []MergeItem{{Item: Item{ID: "a"}, Origin: 1}}), wantErr: true},
			{name: "no items", rec: NewMergeRecord(3, 1, 2, nil), setID: true, wantErr: true},
			{name: "same sources", rec: NewMergeRecord(3, 1, 1, []MergeItem{{Item: Item{ID: "a"}}}), setID: true, wantErr: true},
			{name: "number collides", rec: NewMergeRecord(2, 1, 2, []MergeItem{{Item: Item{ID: "a"}}}), setID: true, wantErr: true},
			{name: "item without id", rec: NewMergeRecord(3, 1, 2, []MergeItem{{Item: Item{Name: "nameless"}}}), setID: true, wantErr: true},
		}

		for _, tt := range tc {
			t.Run(tt.name, func(t *testing.T) {
				if tt.setID {
					tt.rec.SetID("rec-1")
				}
				if err := tt.rec.Validate(); (err != nil) != tt.wantErr {
					t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
				}
			})
		}
	})
}
