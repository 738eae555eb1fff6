package db

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
)

func openTestDB(t *testing.T) *SQLiteDB {
	t.Helper()
	store, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "moodtune.db"))
	if err != nil {
		t.Fatalf("OpenSQLite() error = %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func strPtr(s string) *string { return &s }

func newEntry(happiness, calmness int, at time.Time) *MoodEntry {
	e := &MoodEntry{Happiness: happiness, Calmness: calmness, IsAnonymous: true, Timestamp: at}
	e.ApplyColor()
	return e
}

func TestOpenSQLite_MigrateIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "moodtune.db")
	ctx := context.Background()

	first, err := OpenSQLite(ctx, path)
	if err != nil {
		t.Fatalf("first OpenSQLite() error = %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	second, err := OpenSQLite(ctx, path)
	if err != nil {
		t.Fatalf("second OpenSQLite() error = %v", err)
	}
	defer second.Close()

	var version int
	if err := second.db.QueryRow(`SELECT MAX(version) FROM schema_migrations`).Scan(&version); err != nil {
		t.Fatalf("reading version: %v", err)
	}
	if version != SQLiteSchemaVersion {
		t.Errorf("version = %d, want %d", version, SQLiteSchemaVersion)
	}
}

func TestOpen_UnknownBackend(t *testing.T) {
	_, err := Open(context.Background(), "mysql", "whatever")
	if !errors.Is(err, ErrUnknownBackend) {
		t.Errorf("Open() error = %v, want ErrUnknownBackend", err)
	}
}

func TestMoodEntries_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := openTestDB(t).MoodEntries()

	entry := newEntry(75, 60, time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC))
	entry.Notes = strPtr("sunny walk")
	entry.City = strPtr("Taipei")
	if err := repo.Create(ctx, entry); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if entry.ID == uuid.Nil {
		t.Fatal("Create() did not assign an ID")
	}

	got, err := repo.Get(ctx, entry.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Happiness != 75 || got.Calmness != 60 || got.ColorHex != entry.ColorHex || got.Hue != 150 {
		t.Errorf("Get() = %+v", got)
	}
	if got.Notes == nil || *got.Notes != "sunny walk" {
		t.Errorf("Notes = %v, want sunny walk", got.Notes)
	}
	if got.UserID != nil || got.QuickMood != nil || got.Country != nil {
		t.Errorf("nullable fields should be nil: %+v", got)
	}
	if !got.Timestamp.Equal(entry.Timestamp) {
		t.Errorf("Timestamp = %v, want %v", got.Timestamp, entry.Timestamp)
	}
	if !got.IsAnonymous {
		t.Error("IsAnonymous = false, want true")
	}

	got.Happiness = 20
	got.Calmness = 20
	got.ApplyColor()
	if err := repo.Update(ctx, got); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	updated, err := repo.Get(ctx, entry.ID)
	if err != nil {
		t.Fatalf("Get() after update error = %v", err)
	}
	if updated.Happiness != 20 || updated.ColorHex == entry.ColorHex {
		t.Errorf("Update() not persisted: %+v", updated)
	}

	if err := repo.Delete(ctx, entry.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := repo.Get(ctx, entry.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() after delete error = %v, want ErrNotFound", err)
	}
	if err := repo.Delete(ctx, entry.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete() error = %v, want ErrNotFound", err)
	}
	if err := repo.Update(ctx, got); !errors.Is(err, ErrNotFound) {
		t.Errorf("Update() of deleted entry error = %v, want ErrNotFound", err)
	}
}

func TestMoodEntries_List(t *testing.T) {
	ctx := context.Background()
	repo := openTestDB(t).MoodEntries()

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 6; i++ {
		e := newEntry(10*i, 50, base.Add(time.Duration(i)*time.Hour))
		if i%2 == 0 {
			e.UserID = strPtr("alice")
		}
		if i == 5 {
			e.IsAnonymous = false
		}
		if err := repo.Create(ctx, e); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	tests := []struct {
		name          string
		filter        EntryFilter
		wantHappiness []int
	}{
		{"all newest first", EntryFilter{}, []int{50, 40, 30, 20, 10, 0}},
		{"limit and skip", EntryFilter{Limit: 2, Skip: 1}, []int{40, 30}},
		{"by user", EntryFilter{UserID: "alice"}, []int{40, 20, 0}},
		{"anonymous only", EntryFilter{AnonymousOnly: true, Limit: 3}, []int{40, 30, 20}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.List(ctx, tt.filter)
			if err != nil {
				t.Fatalf("List() error = %v", err)
			}
			if len(got) != len(tt.wantHappiness) {
				t.Fatalf("List() returned %d entries, want %d", len(got), len(tt.wantHappiness))
			}
			for i, e := range got {
				if e.Happiness != tt.wantHappiness[i] {
					t.Errorf("entry %d happiness = %d, want %d", i, e.Happiness, tt.wantHappiness[i])
				}
			}
		})
	}
}

func TestMoodEntries_FindSimilar(t *testing.T) {
	ctx := context.Background()
	repo := openTestDB(t).MoodEntries()

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	samples := [][2]int{{50, 50}, {60, 60}, {61, 50}, {45, 41}, {90, 90}}
	for i, s := range samples {
		if err := repo.Create(ctx, newEntry(s[0], s[1], base.Add(time.Duration(i)*time.Minute))); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	got, err := repo.FindSimilar(ctx, 50, 50, 10, 500)
	if err != nil {
		t.Fatalf("FindSimilar() error = %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("FindSimilar() returned %d entries, want 3", len(got))
	}

	// Only the two newest are scanned.
	got, err = repo.FindSimilar(ctx, 50, 50, 10, 2)
	if err != nil {
		t.Fatalf("FindSimilar() error = %v", err)
	}
	if len(got) != 1 || got[0].Happiness != 45 {
		t.Errorf("FindSimilar(scan=2) = %+v", got)
	}
}

func TestMessages(t *testing.T) {
	ctx := context.Background()
	store := openTestDB(t)

	entry := newEntry(30, 30, time.Now())
	if err := store.MoodEntries().Create(ctx, entry); err != nil {
		t.Fatalf("Create entry error = %v", err)
	}

	repo := store.Messages()
	linked := &EmotionMessage{MoodEntryID: &entry.ID, Message: "hang in there", IsAnonymous: true}
	loose := &EmotionMessage{Message: "sending warmth", IsAnonymous: true, City: strPtr("Tainan")}
	for _, m := range []*EmotionMessage{linked, loose} {
		if err := repo.Create(ctx, m); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	all, err := repo.List(ctx, nil, 0)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("List() returned %d messages, want 2", len(all))
	}

	forEntry, err := repo.List(ctx, &entry.ID, 10)
	if err != nil {
		t.Fatalf("List(entry) error = %v", err)
	}
	if len(forEntry) != 1 || forEntry[0].Message != "hang in there" {
		t.Errorf("List(entry) = %+v", forEntry)
	}
	if forEntry[0].MoodEntryID == nil || *forEntry[0].MoodEntryID != entry.ID {
		t.Errorf("MoodEntryID = %v, want %v", forEntry[0].MoodEntryID, entry.ID)
	}

	if err := repo.AddSupport(ctx, linked.ID); err != nil {
		t.Fatalf("AddSupport() error = %v", err)
	}
	if err := repo.AddSupport(ctx, linked.ID); err != nil {
		t.Fatalf("AddSupport() error = %v", err)
	}
	forEntry, _ = repo.List(ctx, &entry.ID, 10)
	if forEntry[0].SupportCount != 2 {
		t.Errorf("SupportCount = %d, want 2", forEntry[0].SupportCount)
	}

	if err := repo.AddSupport(ctx, uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Errorf("AddSupport(missing) error = %v, want ErrNotFound", err)
	}
}

func TestRecommendations(t *testing.T) {
	ctx := context.Background()
	repo := openTestDB(t).Recommendations()

	titles := []string{"first", "second", "third"}
	for _, title := range titles {
		rec := &MusicRecommendation{Title: title, Artist: "artist", MoodType: "calm", IsActive: true}
		if err := repo.Create(ctx, rec); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}
	inactive := &MusicRecommendation{Title: "hidden", Artist: "artist", MoodType: "calm", IsActive: false}
	if err := repo.Create(ctx, inactive); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := repo.ListByMoodType(ctx, "calm", 10)
	if err != nil {
		t.Fatalf("ListByMoodType() error = %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("ListByMoodType() returned %d rows, want 3", len(got))
	}
	for i, rec := range got {
		if rec.Title != titles[i] {
			t.Errorf("row %d title = %q, want %q", i, rec.Title, titles[i])
		}
	}

	limited, _ := repo.ListByMoodType(ctx, "calm", 2)
	if len(limited) != 2 {
		t.Errorf("ListByMoodType(limit 2) returned %d rows", len(limited))
	}

	none, err := repo.ListByMoodType(ctx, "Calm", 10)
	if err != nil || len(none) != 0 {
		t.Errorf("mood type match must be exact: %v, %v", none, err)
	}

	n, err := repo.Count(ctx)
	if err != nil || n != 4 {
		t.Errorf("Count() = %d, %v; want 4", n, err)
	}
}

func TestListenersAndSessions(t *testing.T) {
	ctx := context.Background()
	store := openTestDB(t)

	listener := &Listener{ID: "spotify-user", DisplayName: "Mei"}
	if err := store.Listeners().Upsert(ctx, listener); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	if listener.CreatedAt.IsZero() {
		t.Error("Upsert() did not fill CreatedAt")
	}

	listener.DisplayName = "Mei Lin"
	if err := store.Listeners().Upsert(ctx, listener); err != nil {
		t.Fatalf("second Upsert() error = %v", err)
	}

	analyzed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	if err := store.Listeners().UpdateLastAnalyzed(ctx, listener.ID, analyzed); err != nil {
		t.Fatalf("UpdateLastAnalyzed() error = %v", err)
	}
	got, err := store.Listeners().Get(ctx, listener.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.DisplayName != "Mei Lin" || got.LastAnalyzedAt == nil || !got.LastAnalyzedAt.Equal(analyzed) {
		t.Errorf("Get() = %+v", got)
	}
	if err := store.Listeners().UpdateLastAnalyzed(ctx, "nobody", analyzed); !errors.Is(err, ErrNotFound) {
		t.Errorf("UpdateLastAnalyzed(missing) error = %v", err)
	}

	now := time.Now().UTC()
	live := &Session{ID: "live", ListenerID: listener.ID, AccessToken: "a", RefreshToken: "r",
		TokenExpiry: now.Add(time.Hour), CreatedAt: now, ExpiresAt: now.Add(24 * time.Hour)}
	expired := &Session{ID: "expired", ListenerID: listener.ID, AccessToken: "a", RefreshToken: "r",
		TokenExpiry: now, CreatedAt: now.Add(-48 * time.Hour), ExpiresAt: now.Add(-time.Hour)}
	for _, s := range []*Session{live, expired} {
		if err := store.Sessions().Create(ctx, s); err != nil {
			t.Fatalf("Create session error = %v", err)
		}
	}

	if _, err := store.Sessions().Get(ctx, "expired"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(expired) error = %v, want ErrNotFound", err)
	}
	if err := store.Sessions().UpdateToken(ctx, "live", "a2", "r2", now.Add(2*time.Hour)); err != nil {
		t.Fatalf("UpdateToken() error = %v", err)
	}
	s, err := store.Sessions().Get(ctx, "live")
	if err != nil {
		t.Fatalf("Get(live) error = %v", err)
	}
	if s.AccessToken != "a2" || s.RefreshToken != "r2" {
		t.Errorf("tokens = %q/%q", s.AccessToken, s.RefreshToken)
	}

	n, err := store.Sessions().DeleteExpired(ctx)
	if err != nil || n != 1 {
		t.Errorf("DeleteExpired() = %d, %v; want 1", n, err)
	}
	if err := store.Sessions().Delete(ctx, "live"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := store.Sessions().Get(ctx, "live"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(deleted) error = %v", err)
	}
}

func TestPreferences(t *testing.T) {
	ctx := context.Background()
	store := openTestDB(t)

	if err := store.Listeners().Upsert(ctx, &Listener{ID: "u1", DisplayName: "U"}); err != nil {
		t.Fatalf("Upsert listener error = %v", err)
	}

	if _, err := store.Preferences().Get(ctx, "u1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() before upsert error = %v, want ErrNotFound", err)
	}

	energy, valence := 0.72, 0.4
	pref := &MusicPreference{
		ListenerID:         "u1",
		TopGenres:          []string{"indie pop", "jazz"},
		TopArtists:         []string{"Lin", "Chen"},
		PreferredMoodTypes: []string{"energetic", "excited"},
		EnergyLevel:        &energy,
		Valence:            &valence,
		LastAnalyzed:       time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	}
	if err := store.Preferences().Upsert(ctx, pref); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	pref.TopGenres = []string{"classical"}
	pref.Valence = nil
	if err := store.Preferences().Upsert(ctx, pref); err != nil {
		t.Fatalf("second Upsert() error = %v", err)
	}

	got, err := store.Preferences().Get(ctx, "u1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if len(got.TopGenres) != 1 || got.TopGenres[0] != "classical" {
		t.Errorf("TopGenres = %v", got.TopGenres)
	}
	if len(got.TopArtists) != 2 || got.PreferredMoodTypes[1] != "excited" {
		t.Errorf("lists = %v / %v", got.TopArtists, got.PreferredMoodTypes)
	}
	if got.EnergyLevel == nil || *got.EnergyLevel != 0.72 || got.Valence != nil {
		t.Errorf("EnergyLevel = %v, Valence = %v", got.EnergyLevel, got.Valence)
	}

	rec := &MusicRecommendation{Title: "t", Artist: "a", MoodType: "calm", IsActive: true}
	if err := store.Recommendations().Create(ctx, rec); err != nil {
		t.Fatalf("Create recommendation error = %v", err)
	}
	picks := []PersonalizedRecommendation{
		{ListenerID: "u1", RecommendationID: rec.ID, Confidence: 0.9, Reason: "matched"},
		{ListenerID: "u1", RecommendationID: rec.ID, Confidence: 0.5, Reason: "matched"},
	}
	if err := store.Preferences().RecordPersonalized(ctx, picks); err != nil {
		t.Fatalf("RecordPersonalized() error = %v", err)
	}
	if picks[0].ID == uuid.Nil {
		t.Error("RecordPersonalized() did not assign IDs")
	}

	listed, err := store.Preferences().ListPersonalized(ctx, "u1", 0)
	if err != nil {
		t.Fatalf("ListPersonalized() error = %v", err)
	}
	if len(listed) != 2 || listed[0].Confidence != 0.9 {
		t.Errorf("ListPersonalized() = %+v", listed)
	}
	if listed[0].IsLiked != nil || listed[0].MoodEntryID != nil {
		t.Errorf("nullable columns should be nil: %+v", listed[0])
	}
}
