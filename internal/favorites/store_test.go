package favorites

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/bilgisen/gossipd/internal/kv"
	"github.com/bilgisen/gossipd/internal/models"
)

func sample(id string) models.SavedGossip {
	return models.SavedGossip{
		ID:        id,
		Celebrity: "Taylor Swift",
		Category:  "fashion",
		Headline:  "Headline " + id,
		Summary:   "Summary",
		Content:   "C1\n\nC2",
		Timestamp: 1700000000000,
		Theme:     "tabloid",
	}
}

// brokenSlot fails every operation
type brokenSlot struct{}

func (brokenSlot) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, errors.New("disk on fire")
}
func (brokenSlot) Set(context.Context, string, []byte) error { return errors.New("disk on fire") }
func (brokenSlot) Close() error                              { return nil }

func TestAddContainsRemove(t *testing.T) {
	ctx := context.Background()
	s := New(kv.NewMemoryStore(), "")

	s.Add(ctx, sample("a"))
	if !s.Contains("a") {
		t.Fatal("expected a after Add")
	}

	s.Remove(ctx, "a")
	if s.Contains("a") {
		t.Fatal("expected a gone after Remove")
	}

	s.Remove(ctx, "never-added")
	if s.Contains("never-added") || s.Len() != 0 {
		t.Fatal("removing an unknown id must be a no-op")
	}
}

func TestInsertionOrderAndDuplicates(t *testing.T) {
	ctx := context.Background()
	s := New(kv.NewMemoryStore(), "")

	s.Add(ctx, sample("a"))
	s.Add(ctx, sample("b"))
	dup := sample("a")
	dup.Headline = "second a"
	s.Add(ctx, dup)

	got := s.List()
	ids := []string{got[0].ID, got[1].ID, got[2].ID}
	if !reflect.DeepEqual(ids, []string{"a", "b", "a"}) {
		t.Fatalf("unexpected order %v", ids)
	}

	first, _ := s.Get("a")
	if first.Headline != "Headline a" {
		t.Fatalf("Get should return first match, got %q", first.Headline)
	}

	s.Remove(ctx, "a")
	if s.Len() != 1 || s.List()[0].ID != "b" {
		t.Fatalf("Remove should drop all duplicates, left %+v", s.List())
	}
}

func TestListReturnsCopy(t *testing.T) {
	s := New(kv.NewMemoryStore(), "")
	s.Add(context.Background(), sample("a"))

	list := s.List()
	list[0].Headline = "mutated"
	if got, _ := s.Get("a"); got.Headline != "Headline a" {
		t.Fatal("List exposed internal state")
	}
}

func TestPersistAndReload(t *testing.T) {
	ctx := context.Background()
	slot := kv.NewMemoryStore()

	s1 := New(slot, "favs")
	s1.Add(ctx, sample("a"))
	s1.Add(ctx, sample("b"))
	s1.Remove(ctx, "a")

	s2 := New(slot, "favs")
	if s2.Len() != 0 {
		t.Fatal("store must start empty before Load")
	}
	s2.Load(ctx)

	if !reflect.DeepEqual(s2.List(), s1.List()) {
		t.Fatalf("reloaded %+v, want %+v", s2.List(), s1.List())
	}
}

func TestLoadReplacesWholesale(t *testing.T) {
	ctx := context.Background()
	slot := kv.NewMemoryStore()
	data, _ := Encode([]models.SavedGossip{sample("persisted")})
	slot.Set(ctx, DefaultKey, data)

	s := New(slot, "")
	s.items = append(s.items, sample("in-memory"))
	s.Load(ctx)

	if s.Contains("in-memory") || !s.Contains("persisted") || s.Len() != 1 {
		t.Fatalf("Load must replace, not merge: %+v", s.List())
	}
}

func TestLoadFallsBackToEmpty(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		slot kv.Store
	}{
		{"absent", kv.NewMemoryStore()},
		{"unreadable", brokenSlot{}},
		{"malformed", func() kv.Store {
			m := kv.NewMemoryStore()
			m.Set(ctx, DefaultKey, []byte(`{"not":"an array"`))
			return m
		}()},
		{"null", func() kv.Store {
			m := kv.NewMemoryStore()
			m.Set(ctx, DefaultKey, []byte(`null`))
			return m
		}()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(tt.slot, "")
			s.Load(ctx)
			if list := s.List(); list == nil || len(list) != 0 {
				t.Fatalf("expected empty collection, got %#v", list)
			}
		})
	}
}

func TestWriteFailuresAreSwallowed(t *testing.T) {
	s := New(brokenSlot{}, "")
	s.Add(context.Background(), sample("a"))
	if !s.Contains("a") {
		t.Fatal("in-memory state must still change when persistence fails")
	}
	s.Remove(context.Background(), "a")
	if s.Contains("a") {
		t.Fatal("remove must apply in memory when persistence fails")
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	withImage := sample("img")
	withImage.ImagePrompt = "a llama"
	withImage.ImageURL = "https://cdn.example.com/images/abc.png"

	collections := [][]models.SavedGossip{
		{},
		{sample("a")},
		{sample("a"), withImage, sample("a")},
	}

	for i, items := range collections {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			data, err := Encode(items)
			if err != nil {
				t.Fatal(err)
			}
			got, err := Decode(data)
			if err != nil {
				t.Fatal(err)
			}
			if !reflect.DeepEqual(got, items) {
				t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, items)
			}
		})
	}
}

func TestEncodeNilIsEmptyArray(t *testing.T) {
	data, err := Encode(nil)
	if err != nil || string(data) != "[]" {
		t.Fatalf("Encode(nil) = %s, %v", data, err)
	}
}

func TestReadsBrowserFormat(t *testing.T) {
	raw := `[{"id":"1712345678901","celebrity":"Zendaya","category":"career","headline":"H","summary":"S","content":"C","imagePrompt":"P","imageUrl":"/placeholder.svg","timestamp":1712345678901,"theme":"entertainment"}]`
	items, err := Decode([]byte(raw))
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 || items[0].Celebrity != "Zendaya" || items[0].ImageURL != "/placeholder.svg" || items[0].Timestamp != 1712345678901 {
		t.Fatalf("unexpected decode %+v", items)
	}
}
