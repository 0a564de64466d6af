package favorites

import (
	"errors"
	"math/rand"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/log"
	"github.com/mmcdole/marquee/internal/notify"
	"github.com/mmcdole/marquee/internal/store"
)

type countingAck struct {
	calls []string
}

func (a *countingAck) Success(key, message string) notify.Notice {
	a.calls = append(a.calls, key+":"+message)
	return notify.Notice{Key: key, Message: message}
}

// failingStorage returns errors from every operation
type failingStorage struct {
	getErr error
	putErr error
	data   []byte
}

func (f *failingStorage) Get(string) ([]byte, bool, error) {
	if f.getErr != nil {
		return nil, false, f.getErr
	}
	return f.data, f.data != nil, nil
}
func (f *failingStorage) Put(_ string, v []byte) error {
	if f.putErr != nil {
		return f.putErr
	}
	f.data = v
	return nil
}
func (f *failingStorage) Delete(string) error { return nil }
func (f *failingStorage) Close() error        { return nil }

func memoryStorage(t *testing.T) domain.KeyValueStore {
	t.Helper()
	s, err := store.Open("")
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	return s
}

func TestToggle_EndToEnd(t *testing.T) {
	ack := &countingAck{}
	s := New(memoryStorage(t), ack, log.NullLogger())
	a := domain.Movie{ID: 42, Title: "A"}

	added, err := s.Toggle(a)
	if err != nil || !added {
		t.Fatalf("Toggle = (%v, %v), want (true, nil)", added, err)
	}
	if got := s.List(); !reflect.DeepEqual(got, []domain.Movie{a}) {
		t.Fatalf("List = %+v, want [A]", got)
	}
	if !s.Contains(42) {
		t.Fatalf("Contains(42) = false after add")
	}
	if len(ack.calls) != 1 || ack.calls[0] != NoticeKey+":"+AddedMessage {
		t.Fatalf("ack calls = %v, want one add acknowledgment", ack.calls)
	}

	added, err = s.Toggle(a)
	if err != nil || added {
		t.Fatalf("second Toggle = (%v, %v), want (false, nil)", added, err)
	}
	if got := s.List(); len(got) != 0 {
		t.Fatalf("List = %+v, want empty", got)
	}
	if s.Contains(42) {
		t.Fatalf("Contains(42) = true after remove")
	}
	if len(ack.calls) != 1 {
		t.Fatalf("removal emitted an acknowledgment: %v", ack.calls)
	}
}

func TestToggle_PreservesInsertionOrder(t *testing.T) {
	s := New(memoryStorage(t), nil, log.NullLogger())
	for _, id := range []int{3, 1, 2} {
		if _, err := s.Toggle(domain.Movie{ID: id}); err != nil {
			t.Fatalf("Toggle(%d): %v", id, err)
		}
	}
	// Remove the middle entry, then re-add it at the end
	s.Toggle(domain.Movie{ID: 1})
	s.Toggle(domain.Movie{ID: 1})

	var ids []int
	for _, m := range s.List() {
		ids = append(ids, m.ID)
	}
	if !reflect.DeepEqual(ids, []int{3, 2, 1}) {
		t.Fatalf("ids = %v, want [3 2 1]", ids)
	}
	for _, id := range ids {
		if !s.Contains(id) {
			t.Fatalf("Contains(%d) = false", id)
		}
	}
}

func TestToggle_NeverDuplicates(t *testing.T) {
	storage := memoryStorage(t)
	s := New(storage, nil, log.NullLogger())
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 500; i++ {
		id := rng.Intn(12)
		before := s.Contains(id)
		if _, err := s.Toggle(domain.Movie{ID: id}); err != nil {
			t.Fatalf("Toggle: %v", err)
		}
		if s.Contains(id) == before {
			t.Fatalf("step %d: membership of %d did not flip", i, id)
		}

		seen := make(map[int]bool)
		for _, m := range s.List() {
			if seen[m.ID] {
				t.Fatalf("step %d: duplicate id %d in %v", i, m.ID, s.List())
			}
			seen[m.ID] = true
		}
		if len(seen) != s.Len() {
			t.Fatalf("Len = %d, want %d", s.Len(), len(seen))
		}
	}

	// Round trip: a fresh store over the same storage sees the same list
	reloaded := New(storage, nil, log.NullLogger())
	if !reflect.DeepEqual(reloaded.List(), s.List()) {
		t.Fatalf("reloaded = %v, want %v", reloaded.List(), s.List())
	}
}

func TestNew_RoundTripThroughBolt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "marquee.db")

	db, err := store.Open(path)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	s := New(db, nil, log.NullLogger())
	want := []domain.Movie{
		{ID: 1, Title: "Dune", PosterPath: "/dune.jpg", VoteAverage: 8.1},
		{ID: 2, Name: "Arcane", Overview: "Piltover", BackdropPath: "/arcane.jpg"},
	}
	for _, m := range want {
		s.Toggle(m)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	db, err = store.Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	got := New(db, nil, log.NullLogger()).List()
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("reloaded = %+v, want %+v", got, want)
	}
}

func TestNew_CorruptOrMissingStorageIsEmpty(t *testing.T) {
	tests := []struct {
		name    string
		storage domain.KeyValueStore
	}{
		{"nil storage", nil},
		{"missing key", &failingStorage{}},
		{"malformed json", &failingStorage{data: []byte("{not json")}},
		{"wrong shape", &failingStorage{data: []byte(`{"id":1}`)}},
		{"read error", &failingStorage{getErr: errors.New("disk on fire")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(tt.storage, nil, log.NullLogger())
			if s.Len() != 0 {
				t.Fatalf("Len = %d, want 0", s.Len())
			}
		})
	}
}

func TestNew_DropsStoredDuplicates(t *testing.T) {
	storage := &failingStorage{data: []byte(`[{"id":1,"title":"first"},{"id":1,"title":"second"},{"id":2}]`)}
	s := New(storage, nil, log.NullLogger())

	got := s.List()
	if len(got) != 2 || got[0].Title != "first" || got[1].ID != 2 {
		t.Fatalf("List = %+v, want [first, 2]", got)
	}
}

func TestToggle_PersistErrorReturned(t *testing.T) {
	storage := &failingStorage{putErr: errors.New("read-only")}
	s := New(storage, nil, log.NullLogger())

	added, err := s.Toggle(domain.Movie{ID: 9})
	if err == nil {
		t.Fatalf("Toggle returned nil error on failed write")
	}
	if !added || !s.Contains(9) {
		t.Fatalf("in-memory state not applied on failed write")
	}
}

func TestClear(t *testing.T) {
	storage := memoryStorage(t)
	s := New(storage, nil, log.NullLogger())
	s.Toggle(domain.Movie{ID: 1})
	s.Toggle(domain.Movie{ID: 2})

	if err := s.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if s.Len() != 0 || s.Contains(1) {
		t.Fatalf("store not empty after Clear")
	}
	raw, ok, _ := storage.Get(StorageKey)
	if !ok || string(raw) != "[]" {
		t.Fatalf("persisted = %q, want []", raw)
	}
}

func TestFilter(t *testing.T) {
	s := New(memoryStorage(t), nil, log.NullLogger())
	s.Toggle(domain.Movie{ID: 1, Title: "Inception"})
	s.Toggle(domain.Movie{ID: 2, Title: "Interstellar"})
	s.Toggle(domain.Movie{ID: 3, Name: "Dune"})

	if got := s.Filter(""); len(got) != 3 {
		t.Fatalf("Filter(\"\") = %d results, want 3", len(got))
	}

	got := s.Filter("inc")
	if len(got) != 1 || got[0].Movie.ID != 1 {
		t.Fatalf("Filter(inc) = %+v, want Inception", got)
	}
	if len(got[0].MatchedIndexes) != 3 {
		t.Fatalf("MatchedIndexes = %v, want 3 positions", got[0].MatchedIndexes)
	}

	if got := s.Filter("dune"); len(got) != 1 || got[0].Movie.ID != 3 {
		t.Fatalf("Filter(dune) = %+v, want Dune via name", got)
	}
}
