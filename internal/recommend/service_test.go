package recommend

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/justestif/go-moodtune/internal/db"
	"github.com/justestif/go-moodtune/internal/mood"
)

// fakeCatalog serves recommendations from memory.
type fakeCatalog struct {
	byType map[string][]db.MusicRecommendation
	err    error
	calls  []string
}

func (f *fakeCatalog) Create(_ context.Context, rec *db.MusicRecommendation) error {
	if f.byType == nil {
		f.byType = make(map[string][]db.MusicRecommendation)
	}
	f.byType[rec.MoodType] = append(f.byType[rec.MoodType], *rec)
	return nil
}

func (f *fakeCatalog) ListByMoodType(_ context.Context, moodType string, limit int) ([]db.MusicRecommendation, error) {
	f.calls = append(f.calls, moodType)
	if f.err != nil {
		return nil, f.err
	}
	recs := f.byType[moodType]
	if len(recs) > limit {
		recs = recs[:limit]
	}
	return append([]db.MusicRecommendation(nil), recs...), nil
}

func (f *fakeCatalog) Count(context.Context) (int, error) {
	n := 0
	for _, recs := range f.byType {
		n += len(recs)
	}
	return n, nil
}

func song(title, artist, genre string, moodType mood.MusicMoodType) db.MusicRecommendation {
	rec := db.MusicRecommendation{
		ID:       uuid.New(),
		Title:    title,
		Artist:   artist,
		MoodType: string(moodType),
		IsActive: true,
	}
	if genre != "" {
		rec.Genre = &genre
	}
	return rec
}

func catalogWith(counts map[mood.MusicMoodType]int) *fakeCatalog {
	f := &fakeCatalog{}
	for mt, n := range counts {
		for i := 0; i < n; i++ {
			rec := song(string(mt)+"-"+string(rune('a'+i)), "artist", "pop", mt)
			_ = f.Create(context.Background(), &rec)
		}
	}
	return f
}

func noShuffle(int, func(i, j int)) {}

func reverse(n int, swap func(i, j int)) {
	for i := 0; i < n/2; i++ {
		swap(i, n-1-i)
	}
}

func TestRecommend_ExactMatchShuffledAndTruncated(t *testing.T) {
	catalog := catalogWith(map[mood.MusicMoodType]int{mood.MusicCalm: 8})
	svc := New(catalog, WithShuffle(reverse))

	recs, err := svc.Recommend(context.Background(), mood.MusicCalm)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(recs) != ResultLimit {
		t.Fatalf("len = %d, want %d", len(recs), ResultLimit)
	}
	if recs[0].Title != "calm-h" {
		t.Errorf("first = %q, want shuffled calm-h", recs[0].Title)
	}
	for _, r := range recs {
		if r.MoodType != string(mood.MusicCalm) {
			t.Errorf("got %s song in calm results", r.MoodType)
		}
	}
	if len(catalog.calls) != 1 {
		t.Errorf("catalog calls = %v, want one lookup", catalog.calls)
	}
}

func TestRecommend_FewerThanLimit(t *testing.T) {
	catalog := catalogWith(map[mood.MusicMoodType]int{mood.MusicSad: 3})
	svc := New(catalog, WithShuffle(noShuffle))

	recs, err := svc.Recommend(context.Background(), mood.MusicSad)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(recs) != 3 {
		t.Errorf("len = %d, want 3", len(recs))
	}
}

func TestRecommend_Fallback(t *testing.T) {
	catalog := catalogWith(map[mood.MusicMoodType]int{
		mood.MusicHappy:     2,
		mood.MusicCalm:      3,
		mood.MusicPeaceful:  3,
		mood.MusicEnergetic: 3,
	})
	shuffled := false
	svc := New(catalog, WithShuffle(func(int, func(i, j int)) { shuffled = true }))

	recs, err := svc.Recommend(context.Background(), mood.MusicDreamy)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if shuffled {
		t.Error("fallback results should keep category order")
	}

	want := []string{"happy-a", "happy-b", "calm-a", "calm-b", "calm-c", "peaceful-a"}
	if len(recs) != len(want) {
		t.Fatalf("len = %d, want %d", len(recs), len(want))
	}
	for i, w := range want {
		if recs[i].Title != w {
			t.Errorf("recs[%d] = %q, want %q", i, recs[i].Title, w)
		}
	}

	wantCalls := []string{"dreamy", "happy", "calm", "peaceful", "energetic"}
	if len(catalog.calls) != len(wantCalls) {
		t.Fatalf("calls = %v, want %v", catalog.calls, wantCalls)
	}
	for i, w := range wantCalls {
		if catalog.calls[i] != w {
			t.Errorf("calls[%d] = %q, want %q", i, catalog.calls[i], w)
		}
	}
}

func TestRecommend_EmptyCatalog(t *testing.T) {
	svc := New(&fakeCatalog{})
	recs, err := svc.Recommend(context.Background(), mood.MusicHappy)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(recs) != 0 {
		t.Errorf("len = %d, want 0", len(recs))
	}
}

func TestRecommend_Error(t *testing.T) {
	boom := errors.New("boom")
	svc := New(&fakeCatalog{err: boom})
	if _, err := svc.Recommend(context.Background(), mood.MusicHappy); !errors.Is(err, boom) {
		t.Errorf("error = %v, want wrapped boom", err)
	}
}
