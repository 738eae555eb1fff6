// Package catalog holds the built-in song catalog and sample wall content,
// and seeds them into an empty store.
package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/justestif/go-moodtune/internal/db"
	"github.com/justestif/go-moodtune/internal/mood"
)

// Song is a catalog entry before it is stored.
type Song struct {
	Title      string
	Artist     string
	Genre      string
	MoodType   mood.MusicMoodType
	YouTubeURL string
	SpotifyURL string
}

// Songs is the built-in catalog, three songs per mood type.
var Songs = []Song{
	{"安靜", "周杰倫", "流行", mood.MusicPeaceful, "https://www.youtube.com/watch?v=OiNsgKOmFTQ", "https://open.spotify.com/track/2KrxsD86ARO5beq7Q0Gsdd"},
	{"夜空中最亮的星", "逃跑計劃", "民謠", mood.MusicPeaceful, "https://www.youtube.com/watch?v=qf8_tn7lBIc", "https://open.spotify.com/track/0y6kdSRJVQlfnAQuen1mwj"},
	{"慢慢", "張學友", "抒情", mood.MusicPeaceful, "https://www.youtube.com/watch?v=djV11Xbc914", "https://open.spotify.com/track/4uLU6hMCjMI75M1A2tKUQC"},

	{"小幸運", "田馥甄", "流行", mood.MusicHappy, "https://www.youtube.com/watch?v=rcjJqeUlps8", "https://open.spotify.com/track/1K3ESzZIujmOJ7tQPPgm7O"},
	{"晴天", "周杰倫", "流行", mood.MusicHappy, "https://www.youtube.com/watch?v=lnCeZY6nxjQ", "https://open.spotify.com/track/2PjlaxlMunGOUvcRzlTbtE"},
	{"愛你", "陳芳語", "流行", mood.MusicHappy, "https://www.youtube.com/watch?v=9AQByLgzPRc", "https://open.spotify.com/track/6JmQbOaVSIHIVvE5VqkKST"},

	{"時光機", "五月天", "搖滾", mood.MusicCalm, "https://www.youtube.com/watch?v=lYOUQxCEHPw", "https://open.spotify.com/track/4aLd4rqGrIaGuLhTNlhTPZ"},
	{"寧夏", "梁靜茹", "抒情", mood.MusicCalm, "https://www.youtube.com/watch?v=5NyAEWOjlUE", "https://open.spotify.com/track/2TxZOIWh2SWTEZyVGWQJRO"},
	{"Moon River", "王菲", "爵士", mood.MusicCalm, "https://www.youtube.com/watch?v=mNOJnSUEfM0", "https://open.spotify.com/track/6rqhFgbbKwnb9MLmUQDjG6"},

	{"聽見下雨的聲音", "魏如昀", "抒情", mood.MusicSad, "https://www.youtube.com/watch?v=DYQS_TQFVb0", "https://open.spotify.com/track/5Uon3ZP0ufGVKmtWGX5N0F"},
	{"成全", "林宥嘉", "抒情", mood.MusicSad, "https://www.youtube.com/watch?v=9v8_aTOz_xM", "https://open.spotify.com/track/6BOcmEOUvyI0LXJ8CQq0Nq"},
	{"說謊", "林宥嘉", "抒情", mood.MusicSad, "https://www.youtube.com/watch?v=YkH5YnHO_Bk", "https://open.spotify.com/track/4P3yDxI5FlpNQz9yubLX9g"},

	{"海闊天空", "Beyond", "搖滾", mood.MusicAnxious, "https://www.youtube.com/watch?v=qu_FSptjRic", "https://open.spotify.com/track/2xU1K5b3W91OJmM4Hnv4eM"},
	{"最初的夢想", "范瑋琪", "流行", mood.MusicAnxious, "https://www.youtube.com/watch?v=6Uo0NmOAJF8", "https://open.spotify.com/track/1VpOGNOUz2MZzGo4dTGEPR"},
	{"我不會喜歡你", "陳柏霖", "流行", mood.MusicAnxious, "https://www.youtube.com/watch?v=bCuGF8XL3YQ", "https://open.spotify.com/track/3dNpv8BgdGjGZJxZwgq2Oy"},

	{"好想你", "朱主愛", "流行", mood.MusicEnergetic, "https://www.youtube.com/watch?v=H7bqjjNzmcI", "https://open.spotify.com/track/4dNiEb3mAhRvdpkJVnfnX8"},
	{"年少有為", "李榮浩", "流行", mood.MusicEnergetic, "https://www.youtube.com/watch?v=TKmKaD7NP7A", "https://open.spotify.com/track/2dFU5qTwm3kbFSX1MJI8zR"},
	{"稻香", "周杰倫", "流行", mood.MusicEnergetic, "https://www.youtube.com/watch?v=VjrYjxNTCNE", "https://open.spotify.com/track/1L6A0aGwxD5fq8VgUdh8vr"},
}

// SampleEntry is an anonymous wall entry shipped with a fresh install.
type SampleEntry struct {
	Happiness int
	Calmness  int
	QuickMood string
	Notes     string
	Country   string
	City      string
}

// SampleEntries populate the emotion wall of a fresh install.
var SampleEntries = []SampleEntry{
	{75, 80, "peaceful", "今天感覺很平靜，看了美麗的夕陽", "Taiwan", "Taipei"},
	{45, 30, "anxious", "工作壓力有點大", "Taiwan", "Kaohsiung"},
	{85, 70, "happy", "朋友們一起聚餐很開心", "Taiwan", "Taichung"},
}

// SampleMessages are the first notes on the emotion wall.
var SampleMessages = []string{
	"今天記得要對自己溫柔一點 🌱",
	"無論多困難，你都比想像中更堅強",
	"深呼吸，這個感受會過去的",
	"你的存在本身就很珍貴",
}

// Recommendation converts a song into a storable catalog row.
func (s Song) Recommendation() *db.MusicRecommendation {
	rec := &db.MusicRecommendation{
		Title:    s.Title,
		Artist:   s.Artist,
		MoodType: string(s.MoodType),
		IsActive: true,
	}
	if s.Genre != "" {
		rec.Genre = &s.Genre
	}
	if s.YouTubeURL != "" {
		rec.YouTubeURL = &s.YouTubeURL
	}
	if s.SpotifyURL != "" {
		rec.SpotifyURL = &s.SpotifyURL
	}
	return rec
}

// Entry converts a sample into a mood entry with its derived color.
func (s SampleEntry) Entry() *db.MoodEntry {
	e := &db.MoodEntry{
		Happiness:   s.Happiness,
		Calmness:    s.Calmness,
		QuickMood:   &s.QuickMood,
		Notes:       &s.Notes,
		IsAnonymous: true,
		Country:     &s.Country,
		City:        &s.City,
	}
	e.ApplyColor()
	return e
}

// Seed stores the catalog and sample content when the catalog is empty.
// It reports whether anything was written.
func Seed(ctx context.Context, store db.Store, logger *slog.Logger) (bool, error) {
	n, err := store.Recommendations().Count(ctx)
	if err != nil {
		return false, fmt.Errorf("counting catalog: %w", err)
	}
	if n > 0 {
		logger.Debug("catalog already seeded", "songs", n)
		return false, nil
	}

	for _, song := range Songs {
		if err := store.Recommendations().Create(ctx, song.Recommendation()); err != nil {
			return false, fmt.Errorf("seeding song %q: %w", song.Title, err)
		}
	}
	for _, sample := range SampleEntries {
		if err := store.MoodEntries().Create(ctx, sample.Entry()); err != nil {
			return false, fmt.Errorf("seeding sample entry: %w", err)
		}
	}
	for _, text := range SampleMessages {
		msg := &db.EmotionMessage{Message: text, IsAnonymous: true}
		if err := store.Messages().Create(ctx, msg); err != nil {
			return false, fmt.Errorf("seeding sample message: %w", err)
		}
	}

	logger.Info("seeded catalog",
		"songs", len(Songs),
		"entries", len(SampleEntries),
		"messages", len(SampleMessages),
	)
	return true, nil
}
