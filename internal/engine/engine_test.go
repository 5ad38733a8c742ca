package engine

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/jfarias-dev/ligauni/internal/identity"
	"github.com/jfarias-dev/ligauni/internal/registry"
	"github.com/jfarias-dev/ligauni/pkg/apperr"
)

// fakeStore is an in-memory registry.Store: rows per table, each row a
// column map carrying its own "id".
type fakeStore struct {
	rows map[string][]map[string]interface{}
}

func newFakeStore() *fakeStore {
	return &fakeStore{rows: make(map[string][]map[string]interface{})}
}

func (s *fakeStore) seed(table string, row map[string]interface{}) {
	s.rows[table] = append(s.rows[table], row)
}

func (s *fakeStore) Exists(_ context.Context, table string, id uint) (bool, error) {
	for _, row := range s.rows[table] {
		if registry.RowUint(row, "id") == id {
			return true, nil
		}
	}
	return false, nil
}

func matches(row, conds map[string]interface{}) bool {
	for k, v := range conds {
		if fmt.Sprint(row[k]) != fmt.Sprint(v) {
			return false
		}
	}
	return true
}

func (s *fakeStore) ExistsWhere(_ context.Context, table string, conds map[string]interface{}) (bool, error) {
	for _, row := range s.rows[table] {
		if matches(row, conds) {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeStore) ExistsWhereNot(_ context.Context, table string, conds map[string]interface{}, excludeID uint) (bool, error) {
	for _, row := range s.rows[table] {
		if registry.RowUint(row, "id") == excludeID {
			continue
		}
		if matches(row, conds) {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeStore) Lookup(_ context.Context, table string, id uint) (map[string]interface{}, error) {
	for _, row := range s.rows[table] {
		if registry.RowUint(row, "id") == id {
			return row, nil
		}
	}
	return nil, nil
}

var (
	admin  = identity.Actor{Authenticated: true, Admin: true, Roles: []string{identity.RoleAdmin}}
	member = identity.Actor{Authenticated: true, Roles: []string{"user"}}
)

func mustSpec(t *testing.T, name string) *registry.EntitySpec {
	t.Helper()
	spec, ok := registry.New().Spec(name)
	if !ok {
		t.Fatalf("entity %q not declared", name)
	}
	return spec
}

func TestValidateCreateRejectsNonAdmin(t *testing.T) {
	e := New(newFakeStore())
	spec := mustSpec(t, "teams")

	form := map[string]string{"name": "Robovolt United", "major": "Engineering"}
	_, aerr := e.ValidateCreate(context.Background(), member, spec, form)
	if aerr == nil || aerr.Kind != apperr.Unauthorized {
		t.Fatalf("expected Unauthorized, got %v", aerr)
	}
}

func TestValidateCreateTeam(t *testing.T) {
	e := New(newFakeStore())
	spec := mustSpec(t, "teams")

	payload, aerr := e.ValidateCreate(context.Background(), admin, spec, map[string]string{
		"name":  "Robovolt United",
		"major": "Engineering",
	})
	if aerr != nil {
		t.Fatalf("unexpected error: %v", aerr)
	}
	if payload["name"] != "Robovolt United" || payload["major"] != "Engineering" {
		t.Fatalf("payload not normalized: %v", payload)
	}
	if _, ok := payload["captain_id"]; ok {
		t.Fatalf("unset optional reference must be omitted, got %v", payload["captain_id"])
	}
}

func TestMissingRequiredFieldsAreAggregated(t *testing.T) {
	e := New(newFakeStore())
	spec := mustSpec(t, "teams")

	_, aerr := e.ValidateCreate(context.Background(), admin, spec, map[string]string{})
	if aerr == nil || aerr.Kind != apperr.InvalidInput {
		t.Fatalf("expected InvalidInput, got %v", aerr)
	}
	if !strings.Contains(aerr.Message, "Revisa los campos del formulario") {
		t.Fatalf("expected aggregated message, got %q", aerr.Message)
	}
	if !strings.Contains(aerr.Message, "El nombre del equipo") || !strings.Contains(aerr.Message, "La carrera") {
		t.Fatalf("expected both violations listed, got %q", aerr.Message)
	}
}

func TestZeroIDFailsMinimumAfterCoercion(t *testing.T) {
	e := New(newFakeStore())
	spec := mustSpec(t, "players")

	_, aerr := e.ValidateCreate(context.Background(), admin, spec, map[string]string{
		"team_id":    "0",
		"first_name": "Ana",
		"last_name":  "Rojas",
		"position":   "GK",
	})
	if aerr == nil || aerr.Kind != apperr.InvalidInput {
		t.Fatalf("expected InvalidInput for zero team_id, got %v", aerr)
	}
}

func TestForeignKeyMustExist(t *testing.T) {
	e := New(newFakeStore())
	spec := mustSpec(t, "teams")

	_, aerr := e.ValidateCreate(context.Background(), admin, spec, map[string]string{
		"name":       "Los Pumas",
		"major":      "Medicina",
		"captain_id": "99",
	})
	if aerr == nil || aerr.Kind != apperr.NotFound {
		t.Fatalf("expected NotFound, got %v", aerr)
	}
	if aerr.Message != "El capitán no existe" {
		t.Fatalf("unexpected message %q", aerr.Message)
	}
}

func TestDuplicateTeamNameConflicts(t *testing.T) {
	store := newFakeStore()
	store.seed("teams", map[string]interface{}{"id": uint(1), "name": "Robovolt United"})
	e := New(store)
	spec := mustSpec(t, "teams")

	_, aerr := e.ValidateCreate(context.Background(), admin, spec, map[string]string{
		"name":  "Robovolt United",
		"major": "Engineering",
	})
	if aerr == nil || aerr.Kind != apperr.Conflict {
		t.Fatalf("expected Conflict, got %v", aerr)
	}

	// The row's own name must not collide with itself on update.
	_, aerr = e.ValidateUpdate(context.Background(), admin, spec, 1, map[string]string{
		"name":  "Robovolt United",
		"major": "Engineering",
	})
	if aerr != nil {
		t.Fatalf("self-collision on update: %v", aerr)
	}
}

func TestMatchTeamsMustDiffer(t *testing.T) {
	store := newFakeStore()
	store.seed("teams", map[string]interface{}{"id": uint(1)})
	store.seed("competitions", map[string]interface{}{"id": uint(3)})
	e := New(store)
	spec := mustSpec(t, "matches")

	_, aerr := e.ValidateCreate(context.Background(), admin, spec, map[string]string{
		"local_team_id":   "1",
		"visitor_team_id": "1",
		"competition_id":  "3",
		"scheduled_at":    "2026-09-12T18:00",
	})
	if aerr == nil || aerr.Kind != apperr.RelationMismatch {
		t.Fatalf("expected RelationMismatch, got %v", aerr)
	}
}

func TestLineupChecks(t *testing.T) {
	store := newFakeStore()
	store.seed("teams", map[string]interface{}{"id": uint(1)})
	store.seed("teams", map[string]interface{}{"id": uint(2)})
	store.seed("teams", map[string]interface{}{"id": uint(3)})
	store.seed("matches", map[string]interface{}{
		"id": uint(10), "local_team_id": uint(1), "visitor_team_id": uint(2),
	})
	store.seed("lineups", map[string]interface{}{
		"id": uint(5), "team_id": uint(1), "match_id": uint(10),
	})
	e := New(store)
	spec := mustSpec(t, "lineups")

	// Team outside the match.
	_, aerr := e.ValidateCreate(context.Background(), admin, spec, map[string]string{
		"team_id": "3", "match_id": "10",
	})
	if aerr == nil || aerr.Kind != apperr.RelationMismatch {
		t.Fatalf("expected RelationMismatch, got %v", aerr)
	}

	// Second lineup for the same (team, match).
	_, aerr = e.ValidateCreate(context.Background(), admin, spec, map[string]string{
		"team_id": "1", "match_id": "10",
	})
	if aerr == nil || aerr.Kind != apperr.Conflict {
		t.Fatalf("expected Conflict, got %v", aerr)
	}

	// The visitor may still register its own.
	_, aerr = e.ValidateCreate(context.Background(), admin, spec, map[string]string{
		"team_id": "2", "match_id": "10",
	})
	if aerr != nil {
		t.Fatalf("visitor lineup rejected: %v", aerr)
	}
}

func TestPreferenceUniquePerProfileTypeChannel(t *testing.T) {
	store := newFakeStore()
	store.seed("profiles", map[string]interface{}{"id": uint(7)})
	store.seed("preferences", map[string]interface{}{
		"id": uint(1), "profile_id": uint(7), "type": "notification", "channel": "email",
	})
	e := New(store)
	spec := mustSpec(t, "preferences")

	_, aerr := e.ValidateCreate(context.Background(), admin, spec, map[string]string{
		"profile_id": "7", "type": "notification", "channel": "email",
	})
	if aerr == nil || aerr.Kind != apperr.Conflict {
		t.Fatalf("expected Conflict, got %v", aerr)
	}

	// A different channel is a different setting.
	_, aerr = e.ValidateCreate(context.Background(), admin, spec, map[string]string{
		"profile_id": "7", "type": "notification", "channel": "push",
	})
	if aerr != nil {
		t.Fatalf("distinct channel rejected: %v", aerr)
	}
}

func TestOnePendingJoinRequestPerProfile(t *testing.T) {
	store := newFakeStore()
	store.seed("profiles", map[string]interface{}{"id": uint(4)})
	store.seed("teams", map[string]interface{}{"id": uint(1)})
	store.seed("join_team_requests", map[string]interface{}{
		"id": uint(20), "profile_id": uint(4), "status": "pending",
	})
	e := New(store)
	spec := mustSpec(t, "join-requests")

	_, aerr := e.ValidateCreate(context.Background(), admin, spec, map[string]string{
		"profile_id": "4", "team_id": "1", "status": "pending",
	})
	if aerr == nil || aerr.Kind != apperr.Conflict {
		t.Fatalf("expected Conflict, got %v", aerr)
	}

	// Resolving the existing request through update is not blocked by itself.
	_, aerr = e.ValidateUpdate(context.Background(), admin, spec, 20, map[string]string{
		"profile_id": "4", "team_id": "1", "status": "approved",
	})
	if aerr != nil {
		t.Fatalf("resolution rejected: %v", aerr)
	}
}

func TestEventPlayerTeamMembership(t *testing.T) {
	store := newFakeStore()
	store.seed("events", map[string]interface{}{"id": uint(1), "team_id": uint(1)})
	store.seed("players", map[string]interface{}{"id": uint(9), "team_id": uint(2)})
	e := New(store)
	spec := mustSpec(t, "event-players")

	_, aerr := e.ValidateCreate(context.Background(), admin, spec, map[string]string{
		"event_id": "1", "player_id": "9", "role": "main",
	})
	if aerr == nil || aerr.Kind != apperr.RelationMismatch {
		t.Fatalf("expected RelationMismatch, got %v", aerr)
	}
}

func TestCompetitionDateOrder(t *testing.T) {
	e := New(newFakeStore())
	spec := mustSpec(t, "competitions")

	_, aerr := e.ValidateCreate(context.Background(), admin, spec, map[string]string{
		"name":       "Clausura",
		"year":       "2026",
		"semester":   "2",
		"start_date": "2026-10-01",
		"end_date":   "2026-09-01",
	})
	if aerr == nil || aerr.Kind != apperr.InvalidInput {
		t.Fatalf("expected InvalidInput, got %v", aerr)
	}
}

func TestCoerceBoolCheckboxSemantics(t *testing.T) {
	spec := mustSpec(t, "streams")

	payload, aerr := CoerceFields(spec, map[string]string{
		"youtube_video_id": "dQw4w9WgXcQ",
		"title":            "Final del torneo",
		"stream_date":      "2026-11-20 19:00",
	})
	if aerr != nil {
		t.Fatalf("unexpected error: %v", aerr)
	}
	if payload["is_live_stream"] != false {
		t.Fatalf("absent checkbox must coerce to false, got %v", payload["is_live_stream"])
	}

	payload, aerr = CoerceFields(spec, map[string]string{
		"youtube_video_id": "dQw4w9WgXcQ",
		"title":            "Final del torneo",
		"stream_date":      "2026-11-20 19:00",
		"is_live_stream":   "on",
	})
	if aerr != nil {
		t.Fatalf("unexpected error: %v", aerr)
	}
	if payload["is_live_stream"] != true {
		t.Fatalf(`"on" must coerce to true`)
	}
}

func TestDeleteGuards(t *testing.T) {
	store := newFakeStore()
	store.seed("profiles", map[string]interface{}{"id": uint(3), "username": "caro"})
	store.seed("teams", map[string]interface{}{"id": uint(1), "captain_id": uint(3)})
	e := New(store)
	spec := mustSpec(t, "profiles")

	aerr := e.CheckDelete(context.Background(), admin, spec, 3)
	if aerr == nil || aerr.Kind != apperr.Conflict {
		t.Fatalf("expected Conflict while captaining, got %v", aerr)
	}
	if !strings.Contains(aerr.Message, "capitán") {
		t.Fatalf("guard message lost: %q", aerr.Message)
	}

	store.rows["teams"][0]["captain_id"] = uint(0)
	if aerr := e.CheckDelete(context.Background(), admin, spec, 3); aerr != nil {
		t.Fatalf("delete still blocked: %v", aerr)
	}
}
