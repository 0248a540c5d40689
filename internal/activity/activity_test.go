package activity

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careerlens/careerlens/internal/models"
)

var now = time.Date(2026, time.October, 15, 15, 4, 0, 0, time.UTC)

func score(n int) *int { return &n }

func badgeIDs(bs []Badge) []string {
	out := make([]string, 0, len(bs))
	for _, b := range bs {
		out = append(out, b.ID)
	}
	return out
}

func TestApply_ResumeAnalyzed(t *testing.T) {
	s, earned, err := Apply(State{}, ResumeAnalysis(score(82), ""), now)
	require.NoError(t, err)

	assert.Equal(t, Stats{ResumesAnalyzed: 1, AnalysesCompleted: 1, TotalATSScore: 82, ATSScoreCount: 1}, s.Stats)
	require.Len(t, s.Resumes, 1)
	assert.Equal(t, ResumeRecord{
		ID: now.UnixMilli(), Name: "Resume 1", ATSScore: 82, Timestamp: "Oct 15, 2026, 03:04 PM", Date: now,
	}, s.Resumes[0])
	assert.Equal(t, []Entry{{Type: ResumeAnalyzed, Description: "Resume analyzed with ATS score of 82%", Timestamp: "Oct 15, 2026, 03:04 PM"}}, s.History)
	assert.Equal(t, []string{"first_resume"}, badgeIDs(earned))
	assert.Equal(t, earned, s.Badges)
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	s1, _, err := Apply(State{}, ResumeAnalysis(score(50), "a.pdf"), now)
	require.NoError(t, err)
	s2, _, err := Apply(s1, ResumeAnalysis(score(60), "b.pdf"), now.Add(time.Minute))
	require.NoError(t, err)

	assert.Len(t, s1.Resumes, 1)
	assert.Len(t, s1.History, 1)
	assert.Equal(t, []string{"b.pdf", "a.pdf"}, []string{s2.Resumes[0].Name, s2.Resumes[1].Name})
}

func TestApply_UnscoredResume(t *testing.T) {
	s, _, err := Apply(State{}, ResumeAnalysis(nil, ""), now)
	require.NoError(t, err)
	assert.Equal(t, 1, s.Stats.ResumesAnalyzed)
	assert.Zero(t, s.Stats.ATSScoreCount)
	assert.Empty(t, s.Resumes)
	assert.Equal(t, "Resume analyzed", s.History[0].Description)
}

func TestApply_Rejects(t *testing.T) {
	before := State{Stats: Stats{ResumesAnalyzed: 2}}

	s, _, err := Apply(before, ResumeAnalysis(score(101), ""), now)
	assert.ErrorIs(t, err, ErrScoreRange)
	assert.Equal(t, before, s)

	_, _, err = Apply(before, Event{Type: "uploaded"}, now)
	assert.ErrorIs(t, err, ErrUnknownEvent)
}

func TestApply_SkillGapMergesProgress(t *testing.T) {
	s, earned, err := Apply(State{}, SkillGapAnalysis("SRE",
		SkillUpdate{Name: "Kubernetes", Progress: 20, Category: "Infra"},
		SkillUpdate{Name: "Go", Progress: 60},
	), now)
	require.NoError(t, err)
	assert.Equal(t, []string{"skill_seeker"}, badgeIDs(earned))
	assert.Equal(t, "Other", s.SkillProgress[1].Category)

	later := now.Add(24 * time.Hour)
	s, earned, err = Apply(s, SkillGapAnalysis("SRE", SkillUpdate{Name: "Kubernetes", Progress: 55}), later)
	require.NoError(t, err)
	assert.Empty(t, earned)
	require.Len(t, s.SkillProgress, 2)
	assert.Equal(t, SkillProgress{Name: "Kubernetes", Progress: 55, Category: "Infra", LastUpdated: later.Format(TimestampLayout)}, s.SkillProgress[0])
	assert.Equal(t, 2, s.Stats.AnalysesCompleted)
	assert.Equal(t, "Analyzed skill gaps for SRE", s.History[0].Description)
}

func TestBadges_AwardedOnce(t *testing.T) {
	var s State
	var all []string
	events := []Event{
		RoadmapGeneration("SRE"),
		ResumeAnalysis(score(100), ""),
		ResumeAnalysis(score(95), ""),
		ResumeAnalysis(score(90), ""),
		ResumeAnalysis(score(92), ""),
		ResumeAnalysis(score(88), ""),
		RoadmapGeneration("SRE"),
		SkillGapAnalysis("SRE"),
		SkillGapAnalysis("SRE"),
		ResumeAnalysis(nil, ""),
	}
	for i, e := range events {
		var earned []Badge
		var err error
		s, earned, err = Apply(s, e, now.Add(time.Duration(i)*time.Minute))
		require.NoError(t, err)
		all = append(all, badgeIDs(earned)...)
	}

	assert.ElementsMatch(t, []string{
		"career_planner", "first_resume", "high_scorer", "perfect_score", "five_resumes", "skill_seeker", "dedicated",
	}, all)
	assert.Len(t, s.Badges, 7)
	assert.Equal(t, 10, s.Stats.AnalysesCompleted)
	assert.InDelta(t, 93.0, s.AverageATSScore(), 0.001)
}

func TestBadges_HighScorerUsesAverage(t *testing.T) {
	s, earned, err := Apply(State{}, ResumeAnalysis(score(89), ""), now)
	require.NoError(t, err)
	assert.NotContains(t, badgeIDs(earned), "high_scorer")

	_, earned, err = Apply(s, ResumeAnalysis(score(91), ""), now)
	require.NoError(t, err)
	assert.Contains(t, badgeIDs(earned), "high_scorer")
}

func TestParseATSScore(t *testing.T) {
	tests := []struct {
		text string
		want int
		ok   bool
	}{
		{"ATS SCORE\n████░░ 78%", 78, true},
		{"🎯 Overall ATS Score: 84 / 100", 84, true},
		{"ats: 65", 65, true},
		{"Keyword coverage 150% of baseline", 0, false},
		{"No numbers here", 0, false},
		{"100% match", 100, true},
		{"Keyword Coverage 62%\nOverall ATS Score: 84 / 100", 84, true},
		{"Missing keywords 120% over\nCoverage 71%", 71, true},
		{"Score: 250\nATS: 90", 90, true},
		{"Score: 400 and 300%", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseATSScore(tt.text)
		assert.Equal(t, tt.ok, ok, tt.text)
		assert.Equal(t, tt.want, got, tt.text)
	}
}

func TestProfileCompletion(t *testing.T) {
	assert.Zero(t, ProfileCompletion(nil))

	p := &models.ProfileView{Name: "Asha", Email: "asha@example.com"}
	assert.Equal(t, 22, ProfileCompletion(p))

	p.Phone, p.Bio, p.TargetRole, p.Location = "1", "bio", "SRE", "Pune"
	p.LinkedIn, p.GitHub, p.ProfileImage = "l", "g", "  "
	assert.Equal(t, 89, ProfileCompletion(p))

	p.ProfileImage = "/uploads/a.png"
	assert.Equal(t, 100, ProfileCompletion(p))
}

func TestRecommendations(t *testing.T) {
	recs := Recommendations(State{}, 40)
	require.Len(t, recs, 3)
	assert.Equal(t, "Upload Your First Resume", recs[0].Title)
	assert.Equal(t, "Generate Your Career Roadmap", recs[1].Title)
	assert.Equal(t, "Analyze Your Skill Gaps", recs[2].Title)

	s := State{
		Stats:   Stats{ResumesAnalyzed: 2, TotalATSScore: 120, ATSScoreCount: 2},
		History: []Entry{{Type: RoadmapGenerated}, {Type: SkillGapAnalyzed}},
	}
	recs = Recommendations(s, 50)
	require.Len(t, recs, 2)
	assert.Equal(t, "Improve Your ATS Score", recs[0].Title)
	assert.Equal(t, "Complete Your Profile", recs[1].Title)

	s.Stats.TotalATSScore = 170
	assert.Empty(t, Recommendations(s, 100))
}

func storages(t *testing.T) map[string]Storage {
	return map[string]Storage{
		"memory": NewMemoryStorage(),
		"file":   NewFileStorage(filepath.Join(t.TempDir(), "careerlens", "activity.json")),
	}
}

func TestTracker_RoundTrip(t *testing.T) {
	for name, store := range storages(t) {
		t.Run(name, func(t *testing.T) {
			tr := NewTracker(store)
			tr.now = func() time.Time { return now }

			require.NoError(t, tr.SetCurrentUser(&models.PublicUser{Username: "asha", Name: "Asha", Email: "a@example.com"}))
			earned, err := tr.Record(ResumeAnalysis(score(100), "cv.pdf"))
			require.NoError(t, err)
			assert.Equal(t, []string{"first_resume", "high_scorer", "perfect_score"}, badgeIDs(earned))

			_, err = tr.Record(RoadmapGeneration("SRE"))
			require.NoError(t, err)

			s, err := NewTracker(store).Load()
			require.NoError(t, err)
			assert.Equal(t, 2, s.Stats.AnalysesCompleted)
			assert.Len(t, s.Badges, 4)
			assert.Equal(t, "cv.pdf", s.Resumes[0].Name)
			assert.Equal(t, RoadmapGenerated, s.History[0].Type)

			u, err := tr.CurrentUser()
			require.NoError(t, err)
			assert.Equal(t, "asha", u.Username)

			require.NoError(t, tr.Clear())
			for _, key := range allKeys {
				_, ok, err := store.Get(key)
				require.NoError(t, err)
				assert.False(t, ok, key)
			}
			u, err = tr.CurrentUser()
			require.NoError(t, err)
			assert.Nil(t, u)
		})
	}
}

func TestTracker_CorruptValue(t *testing.T) {
	store := NewMemoryStorage()
	require.NoError(t, store.Set(KeyStats, "{not json"))

	_, err := NewTracker(store).Load()
	assert.ErrorContains(t, err, KeyStats)
}

type failingStorage struct {
	*MemoryStorage
	sets int
}

func (f *failingStorage) Set(key, value string) error {
	f.sets++
	return f.MemoryStorage.Set(key, value)
}

func (f *failingStorage) SetMany(map[string]string) error {
	return errors.New("disk full")
}

func TestTracker_RecordIsAllOrNothing(t *testing.T) {
	store := &failingStorage{MemoryStorage: NewMemoryStorage()}
	tr := NewTracker(store)
	tr.now = func() time.Time { return now }

	_, err := tr.Record(ResumeAnalysis(score(80), "cv.pdf"))
	require.ErrorContains(t, err, "disk full")
	assert.Zero(t, store.sets)

	s, err := tr.Load()
	require.NoError(t, err)
	assert.Zero(t, s.Stats.ResumesAnalyzed)
	assert.Empty(t, s.History)
	assert.Empty(t, s.Badges)
}

func TestFileStorage_SetManySingleWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "activity.json")
	f := NewFileStorage(path)
	require.NoError(t, f.Set(KeyCurrentUser, `{"username":"asha"}`))

	require.NoError(t, f.SetMany(map[string]string{KeyStats: `{"resumesAnalyzed":1}`, KeyBadges: `[]`}))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"currentUser": "{\"username\":\"asha\"}",
		"userActivityStats": "{\"resumesAnalyzed\":1}",
		"userBadges": "[]"
	}`, string(b))
}

func TestFileStorage_Persists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "activity.json")
	a := NewFileStorage(path)
	require.NoError(t, a.Set("k", "v"))

	v, ok, err := NewFileStorage(path).Get("k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", v)

	require.NoError(t, a.Remove("k"))
	require.NoError(t, a.Remove("missing"))
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(b))
}
