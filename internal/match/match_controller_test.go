package match

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/jfarias-dev/ligauni/internal/stream"
)

// fakeStreamRepo holds at most one broadcast per match.
type fakeStreamRepo struct {
	byMatch map[uint]*stream.Stream
}

func (r *fakeStreamRepo) GetAll(page, limit int) ([]stream.Stream, int64, error) {
	return nil, 0, nil
}

func (r *fakeStreamRepo) GetByID(id uint) (*stream.Stream, error) { return nil, nil }

func (r *fakeStreamRepo) GetByMatchID(matchID uint) (*stream.Stream, error) {
	return r.byMatch[matchID], nil
}

func TestGetMatchByIDAggregatesDetail(t *testing.T) {
	repo := newFakeMatchRepo()
	seedLiveMatch(repo, 1)
	repo.events = append(repo.events, Event{MatchID: 1, TeamID: 1, Type: EventGoal, Minute: 12})
	repo.events[0].ID = 1
	repo.links = append(repo.links,
		EventPlayer{EventID: 1, PlayerID: 9, Role: RoleMain},
		EventPlayer{EventID: 1, PlayerID: 4, Role: RoleAssist},
	)
	repo.attendance = append(repo.attendance, MatchAttendance{MatchID: 1, PlayerID: 9, TeamID: 1, JerseyNumber: 10})

	broadcast := &stream.Stream{MatchID: uintPtr(1), YoutubeVideoID: "dQw4w9WgXcQ", Title: "Final"}
	streams := &fakeStreamRepo{byMatch: map[uint]*stream.Stream{1: broadcast}}

	gin.SetMode(gin.TestMode)
	r := gin.New()
	mc := NewMatchController(repo, streams, MarkStatusProvider{})
	r.GET("/matches/:match_id", mc.GetMatchByID)

	req := httptest.NewRequest(http.MethodGet, "/matches/1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; body %s", w.Code, w.Body.String())
	}

	var payload struct {
		Data struct {
			Match struct {
				Status Status `json:"status"`
			} `json:"match"`
			Events []struct {
				Type    EventType `json:"type"`
				Players []struct {
					PlayerID uint            `json:"player_id"`
					Role     EventPlayerRole `json:"role"`
				} `json:"players"`
			} `json:"events"`
			Attendance []MatchAttendance `json:"attendance"`
			Stream     *stream.Stream    `json:"stream"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
		t.Fatalf("bad response body: %v", err)
	}

	if payload.Data.Match.Status != StatusLive {
		t.Fatalf("match status = %q, want %q", payload.Data.Match.Status, StatusLive)
	}
	if len(payload.Data.Events) != 1 || len(payload.Data.Events[0].Players) != 2 {
		t.Fatalf("events must carry their linked players: %s", w.Body.String())
	}
	if payload.Data.Events[0].Players[0].Role != RoleMain {
		t.Fatalf("first link role = %q, want %q", payload.Data.Events[0].Players[0].Role, RoleMain)
	}
	if len(payload.Data.Attendance) != 1 {
		t.Fatalf("attendance sheet missing from detail")
	}
	if payload.Data.Stream == nil || payload.Data.Stream.YoutubeVideoID != "dQw4w9WgXcQ" {
		t.Fatalf("broadcast missing from detail: %s", w.Body.String())
	}
}

func TestGetMatchByIDWithoutBroadcast(t *testing.T) {
	repo := newFakeMatchRepo()
	seedLiveMatch(repo, 1)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	mc := NewMatchController(repo, &fakeStreamRepo{}, MarkStatusProvider{})
	r.GET("/matches/:match_id", mc.GetMatchByID)

	req := httptest.NewRequest(http.MethodGet, "/matches/1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; body %s", w.Code, w.Body.String())
	}

	var payload struct {
		Data struct {
			Stream *stream.Stream `json:"stream"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if payload.Data.Stream != nil {
		t.Fatalf("expected null stream for a match without broadcast")
	}
}

func TestGetMatchesFiltersByDerivedStatus(t *testing.T) {
	repo := newFakeMatchRepo()
	seedLiveMatch(repo, 1)
	scheduled := &Match{LocalTeamID: 3, VisitorTeamID: 4, CompetitionID: 1}
	scheduled.ID = 2
	repo.matches[2] = scheduled

	gin.SetMode(gin.TestMode)
	r := gin.New()
	mc := NewMatchController(repo, &fakeStreamRepo{}, MarkStatusProvider{})
	r.GET("/matches", mc.GetMatches)

	req := httptest.NewRequest(http.MethodGet, "/matches?status=live", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var payload struct {
		Data []struct {
			ID     uint   `json:"ID"`
			Status Status `json:"status"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if len(payload.Data) != 1 || payload.Data[0].Status != StatusLive {
		t.Fatalf("status filter not applied: %s", w.Body.String())
	}
}

func uintPtr(v uint) *uint { return &v }
