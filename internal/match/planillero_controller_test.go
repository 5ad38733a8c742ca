package match

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jfarias-dev/ligauni/internal/identity"
	"github.com/jfarias-dev/ligauni/internal/team"
)

// fakeMatchRepo is an in-memory MatchRepository.
type fakeMatchRepo struct {
	matches    map[uint]*Match
	lineups    []Lineup
	events     []Event
	links      []EventPlayer
	attendance []MatchAttendance
}

func newFakeMatchRepo() *fakeMatchRepo {
	return &fakeMatchRepo{matches: map[uint]*Match{}}
}

func (r *fakeMatchRepo) GetByID(id uint) (*Match, error) {
	m, ok := r.matches[id]
	if !ok {
		return nil, nil
	}
	copied := *m
	return &copied, nil
}

func (r *fakeMatchRepo) GetDetailed(id uint) (*Match, error) { return r.GetByID(id) }

func (r *fakeMatchRepo) GetAll(competitionID uint) ([]Match, error) {
	var out []Match
	for _, m := range r.matches {
		if competitionID == 0 || m.CompetitionID == competitionID {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (r *fakeMatchRepo) GetByTeamID(teamID uint) ([]Match, error) {
	var out []Match
	for _, m := range r.matches {
		if m.LocalTeamID == teamID || m.VisitorTeamID == teamID {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (r *fakeMatchRepo) UpdateMatch(m *Match) error {
	copied := *m
	r.matches[m.ID] = &copied
	return nil
}

func (r *fakeMatchRepo) GetLineups(matchID uint) ([]Lineup, error) { return r.lineups, nil }

func (r *fakeMatchRepo) GetEvents(matchID uint) ([]Event, error) {
	var out []Event
	for _, e := range r.events {
		if e.MatchID == matchID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeMatchRepo) CreateEvent(e *Event) error {
	e.ID = uint(len(r.events) + 1)
	r.events = append(r.events, *e)
	return nil
}

func (r *fakeMatchRepo) GetEventPlayers(eventID uint) ([]EventPlayer, error) {
	var out []EventPlayer
	for _, link := range r.links {
		if link.EventID == eventID {
			out = append(out, link)
		}
	}
	return out, nil
}

func (r *fakeMatchRepo) CreateEventPlayer(ep *EventPlayer) error {
	r.links = append(r.links, *ep)
	return nil
}

func (r *fakeMatchRepo) GetAttendance(matchID uint) ([]MatchAttendance, error) {
	var out []MatchAttendance
	for _, a := range r.attendance {
		if a.MatchID == matchID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeMatchRepo) JerseyTaken(matchID uint, jerseyNumber int) (bool, error) {
	for _, a := range r.attendance {
		if a.MatchID == matchID && a.JerseyNumber == jerseyNumber {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeMatchRepo) PlayerAttending(matchID, playerID uint) (bool, error) {
	for _, a := range r.attendance {
		if a.MatchID == matchID && a.PlayerID == playerID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeMatchRepo) CreateAttendance(a *MatchAttendance) error {
	r.attendance = append(r.attendance, *a)
	return nil
}

// fakeTeamRepo serves only the player lookups the scorekeeper flow needs.
type fakeTeamRepo struct {
	players   map[uint]*team.Player
	byProfile map[uint]*team.Player
}

func (r *fakeTeamRepo) GetPlayerByID(id uint) (*team.Player, error) { return r.players[id], nil }
func (r *fakeTeamRepo) GetPlayerByProfileID(profileID uint) (*team.Player, error) {
	return r.byProfile[profileID], nil
}

func (r *fakeTeamRepo) GetTeamByID(uint) (*team.Team, error)         { return nil, nil }
func (r *fakeTeamRepo) GetTeamWithRoster(uint) (*team.Team, error)   { return nil, nil }
func (r *fakeTeamRepo) GetAllTeams(int, int, string) ([]team.Team, int64, error) {
	return nil, 0, nil
}
func (r *fakeTeamRepo) UpdateTeam(*team.Team) error                 { return nil }
func (r *fakeTeamRepo) CreatePlayer(*team.Player) error             { return nil }
func (r *fakeTeamRepo) DeletePlayer(uint) error                     { return nil }
func (r *fakeTeamRepo) PlayerHasHistory(uint) (bool, error)         { return false, nil }
func (r *fakeTeamRepo) CreateJoinRequest(*team.JoinTeamRequest) error { return nil }
func (r *fakeTeamRepo) GetJoinRequestByID(uint) (*team.JoinTeamRequest, error) {
	return nil, nil
}
func (r *fakeTeamRepo) GetJoinRequestsByTeamID(uint, string) ([]team.JoinTeamRequest, error) {
	return nil, nil
}
func (r *fakeTeamRepo) GetPendingRequestByProfileID(uint) (*team.JoinTeamRequest, error) {
	return nil, nil
}
func (r *fakeTeamRepo) UpdateJoinRequest(*team.JoinTeamRequest) error { return nil }

func newPlanilleroRouter(repo MatchRepository, teams team.TeamRepository, actor identity.Actor) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(identity.ContextActorKey, actor)
		c.Next()
	})
	pc := NewPlanilleroController(repo, teams, MarkStatusProvider{})
	r.POST("/matches/:match_id/attendance", pc.RecordAttendance)
	r.POST("/matches/:match_id/events", pc.RecordEvent)
	r.POST("/matches/:match_id/close", pc.CloseMatch)
	r.POST("/matches/:match_id/validate", pc.ValidateMatch)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func seedLiveMatch(repo *fakeMatchRepo, id uint) *Match {
	started := time.Now().Add(-30 * time.Minute)
	m := &Match{LocalTeamID: 1, VisitorTeamID: 2, CompetitionID: 1, StartedAt: &started}
	m.ID = id
	repo.matches[id] = m
	return m
}

var scorerActor = identity.Actor{
	Authenticated: true,
	ProfileID:     5,
	Roles:         []string{identity.RolePlanillero},
}

func TestRecordAttendanceRejectsDuplicateJersey(t *testing.T) {
	repo := newFakeMatchRepo()
	seedLiveMatch(repo, 1)
	repo.attendance = append(repo.attendance, MatchAttendance{MatchID: 1, PlayerID: 8, TeamID: 1, JerseyNumber: 10})

	teams := &fakeTeamRepo{
		players:   map[uint]*team.Player{9: {TeamID: 1}},
		byProfile: map[uint]*team.Player{5: {TeamID: 1}},
	}
	teams.players[9].ID = 9
	r := newPlanilleroRouter(repo, teams, scorerActor)

	w := postJSON(t, r, "/matches/1/attendance", `{"player_id": 9, "jersey_number": 10}`)
	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409; body %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "El dorsal ya está ocupado en este partido") {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
	if len(repo.attendance) != 1 {
		t.Fatalf("conflicting line was persisted")
	}

	// A free number goes through.
	w = postJSON(t, r, "/matches/1/attendance", `{"player_id": 9, "jersey_number": 11}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body %s", w.Code, w.Body.String())
	}
	if len(repo.attendance) != 2 {
		t.Fatalf("attendance line not persisted")
	}
}

func TestCloseMatchOnlyWhenLive(t *testing.T) {
	repo := newFakeMatchRepo()
	scheduled := &Match{LocalTeamID: 1, VisitorTeamID: 2, CompetitionID: 1}
	scheduled.ID = 1
	repo.matches[1] = scheduled

	teams := &fakeTeamRepo{byProfile: map[uint]*team.Player{5: {TeamID: 1}}}
	r := newPlanilleroRouter(repo, teams, scorerActor)

	w := postJSON(t, r, "/matches/1/close", `{"local_score": 2, "visitor_score": 1}`)
	if w.Code != http.StatusConflict {
		t.Fatalf("closing a scheduled match: status = %d, want 409", w.Code)
	}

	started := time.Now().Add(-90 * time.Minute)
	repo.matches[1].StartedAt = &started

	w = postJSON(t, r, "/matches/1/close", `{"local_score": 2, "visitor_score": 1}`)
	if w.Code != http.StatusOK {
		t.Fatalf("closing a live match: status = %d; body %s", w.Code, w.Body.String())
	}

	closed := repo.matches[1]
	if closed.FinishedAt == nil || closed.Validated {
		t.Fatalf("close must set the finish mark and leave validation pending: %+v", closed)
	}
	if closed.LocalScore != 2 || closed.VisitorScore != 1 {
		t.Fatalf("final score not stored: %d-%d", closed.LocalScore, closed.VisitorScore)
	}
	if got := (MarkStatusProvider{}).StatusOf(closed, time.Now()); got != StatusInReview {
		t.Fatalf("closed match status = %q, want %q", got, StatusInReview)
	}

	// Closing twice is rejected: the match is now in review, not live.
	w = postJSON(t, r, "/matches/1/close", `{"local_score": 3, "visitor_score": 1}`)
	if w.Code != http.StatusConflict {
		t.Fatalf("double close: status = %d, want 409", w.Code)
	}
}

func TestValidateMatchOnlyWhenInReview(t *testing.T) {
	repo := newFakeMatchRepo()
	seedLiveMatch(repo, 1)

	teams := &fakeTeamRepo{byProfile: map[uint]*team.Player{5: {TeamID: 1}}}
	r := newPlanilleroRouter(repo, teams, scorerActor)

	w := postJSON(t, r, "/matches/1/validate", ``)
	if w.Code != http.StatusConflict {
		t.Fatalf("validating a live match: status = %d, want 409", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Solo se puede validar un partido en revisión") {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}

	finished := time.Now().Add(-5 * time.Minute)
	repo.matches[1].FinishedAt = &finished

	w = postJSON(t, r, "/matches/1/validate", ``)
	if w.Code != http.StatusOK {
		t.Fatalf("validating a match in review: status = %d; body %s", w.Code, w.Body.String())
	}
	validated := repo.matches[1]
	if !validated.Validated {
		t.Fatalf("validated flag not stored")
	}
	if got := (MarkStatusProvider{}).StatusOf(validated, time.Now()); got != StatusFinished {
		t.Fatalf("validated match status = %q, want %q", got, StatusFinished)
	}

	var payload struct {
		Data struct {
			Status Status `json:"status"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if payload.Data.Status != StatusFinished {
		t.Fatalf("response status = %q, want %q", payload.Data.Status, StatusFinished)
	}
}

func TestGoalEventUpdatesScore(t *testing.T) {
	repo := newFakeMatchRepo()
	seedLiveMatch(repo, 1)

	teams := &fakeTeamRepo{
		players:   map[uint]*team.Player{9: {TeamID: 1}},
		byProfile: map[uint]*team.Player{5: {TeamID: 1}},
	}
	teams.players[9].ID = 9
	r := newPlanilleroRouter(repo, teams, scorerActor)

	w := postJSON(t, r, "/matches/1/events", `{"team_id": 1, "type": "goal", "minute": 23, "main_player_id": 9}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d; body %s", w.Code, w.Body.String())
	}
	if repo.matches[1].LocalScore != 1 || repo.matches[1].VisitorScore != 0 {
		t.Fatalf("score = %d-%d, want 1-0", repo.matches[1].LocalScore, repo.matches[1].VisitorScore)
	}
	if len(repo.events) != 1 || len(repo.links) != 1 || repo.links[0].Role != RoleMain {
		t.Fatalf("event or main link missing: %v %v", repo.events, repo.links)
	}
}

func TestSubstitutionRequiresBothPlayers(t *testing.T) {
	repo := newFakeMatchRepo()
	seedLiveMatch(repo, 1)

	teams := &fakeTeamRepo{
		players: map[uint]*team.Player{
			9:  {TeamID: 1},
			10: {TeamID: 1},
			11: {TeamID: 1},
		},
		byProfile: map[uint]*team.Player{5: {TeamID: 1}},
	}
	for id, p := range teams.players {
		p.ID = id
	}
	r := newPlanilleroRouter(repo, teams, scorerActor)

	w := postJSON(t, r, "/matches/1/events",
		`{"team_id": 1, "type": "substitution", "minute": 60, "main_player_id": 9, "sub_in_player_id": 10}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("substitution without outgoing player: status = %d, want 400", w.Code)
	}

	w = postJSON(t, r, "/matches/1/events",
		`{"team_id": 1, "type": "substitution", "minute": 60, "main_player_id": 9, "sub_in_player_id": 10, "sub_out_player_id": 11}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d; body %s", w.Code, w.Body.String())
	}

	roles := map[EventPlayerRole]bool{}
	for _, link := range repo.links {
		roles[link.Role] = true
	}
	if !roles[RoleMain] || !roles[RoleSubstitutedIn] || !roles[RoleSubstitutedOut] {
		t.Fatalf("substitution links incomplete: %v", repo.links)
	}
}

func TestScorekeeperLimitedToOwnTeamMatches(t *testing.T) {
	repo := newFakeMatchRepo()
	seedLiveMatch(repo, 1)

	// The scorekeeper's player belongs to neither participant.
	teams := &fakeTeamRepo{byProfile: map[uint]*team.Player{5: {TeamID: 99}}}
	r := newPlanilleroRouter(repo, teams, scorerActor)

	w := postJSON(t, r, "/matches/1/close", `{"local_score": 1, "visitor_score": 0}`)
	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", w.Code)
	}
}
