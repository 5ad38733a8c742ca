package registry

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jfarias-dev/ligauni/pkg/apperr"
)

// Positions players can occupy; shared by players, join requests and the
// attendance roster.
var Positions = []string{"GK", "DEF", "MID", "FWD"}

// EventTypes the scorekeeper can record.
var EventTypes = []string{"goal", "yellow_card", "red_card", "substitution"}

// EventPlayerRoles link players to events.
var EventPlayerRoles = []string{"main", "assist", "substituted_in", "substituted_out"}

// JoinRequestStatuses of the participation state machine.
var JoinRequestStatuses = []string{"pending", "approved", "rejected"}

// NotificationStatuses of the delivery pipeline.
var NotificationStatuses = []string{"pending", "sent", "failed"}

// PreferenceTypes a profile can configure.
var PreferenceTypes = []string{"notification", "privacy", "display"}

func fk(table, label string) *ForeignKey {
	return &ForeignKey{Table: table, Label: label}
}

// teamInMatch verifies the team is one of the match's two participants.
func teamInMatch(ctx context.Context, store Store, matchID, teamID uint) *apperr.Error {
	row, err := store.Lookup(ctx, "matches", matchID)
	if err != nil {
		return apperr.StorageFailure()
	}
	if row == nil {
		return apperr.NotFoundf("El partido no existe")
	}
	if RowUint(row, "local_team_id") != teamID && RowUint(row, "visitor_team_id") != teamID {
		return apperr.Mismatchf("El equipo no participa en este partido")
	}
	return nil
}

func entitySpecs() []*EntitySpec {
	return []*EntitySpec{
		{
			Name:       "profiles",
			Table:      "profiles",
			Label:      "Perfil",
			LabelField: "username",
			Fields: []FieldSpec{
				{Name: "auth_id", Label: "Identificador de acceso", Kind: KindString, MaxLen: 64,
					Default: func() interface{} { return uuid.NewString() }},
				{Name: "username", Label: "El nombre de usuario", Kind: KindString, Required: true, MinLen: 3, MaxLen: 50},
				{Name: "email", Label: "El correo", Kind: KindString, MaxLen: 100},
				{Name: "first_name", Label: "El nombre", Kind: KindString, MaxLen: 60},
				{Name: "last_name", Label: "El apellido", Kind: KindString, MaxLen: 60},
				{Name: "major", Label: "La carrera", Kind: KindString, MaxLen: 100},
			},
			Uniques: []UniqueScope{
				{Fields: []string{"username"}, Message: "El nombre de usuario ya está en uso"},
				{Fields: []string{"email"}, Message: "El correo ya está registrado"},
			},
			DeleteGuards: []DeleteGuard{
				{Table: "teams", Column: "captain_id", Message: "El perfil figura como capitán de un equipo"},
				{Table: "players", Column: "profile_id", Message: "El perfil tiene un jugador asociado"},
				{Table: "join_team_requests", Column: "profile_id", Message: "El perfil tiene solicitudes de ingreso"},
			},
			List:  ListProjection{Order: "profiles.created_at DESC"},
			Views: []string{"profiles"},
			Messages: Messages{
				Created:  "Perfil creado correctamente: %s",
				Updated:  "Perfil actualizado correctamente: %s",
				Deleted:  "Perfil eliminado: %s",
				NotFound: "El perfil no existe",
			},
		},
		{
			Name:       "teams",
			Table:      "teams",
			Label:      "Equipo",
			LabelField: "name",
			Fields: []FieldSpec{
				{Name: "name", Label: "El nombre del equipo", Kind: KindString, Required: true, MinLen: 3, MaxLen: 100},
				{Name: "major", Label: "La carrera", Kind: KindString, Required: true, MinLen: 2, MaxLen: 100},
				{Name: "description", Label: "La descripción", Kind: KindString, MaxLen: 1000},
				{Name: "logo", Label: "El logo", Kind: KindString, MaxLen: 300},
				{Name: "captain_id", Label: "Capitán", Kind: KindUint, Foreign: fk("profiles", "El capitán")},
			},
			Uniques: []UniqueScope{
				{Fields: []string{"name"}, Message: "Ya existe un equipo con ese nombre"},
			},
			DeleteGuards: []DeleteGuard{
				{Table: "players", Column: "team_id", Message: "El equipo todavía tiene jugadores registrados"},
				{Table: "matches", Column: "local_team_id", Message: "El equipo participa en partidos como local"},
				{Table: "matches", Column: "visitor_team_id", Message: "El equipo participa en partidos como visitante"},
				{Table: "join_team_requests", Column: "team_id", Message: "El equipo tiene solicitudes de ingreso"},
				{Table: "team_competitions", Column: "team_id", Message: "El equipo está inscrito en una competencia"},
			},
			List: ListProjection{
				Select: "teams.id, teams.name, teams.major, teams.logo, teams.created_at, profiles.username AS captain",
				Joins:  []string{"LEFT JOIN profiles ON profiles.id = teams.captain_id"},
				Order:  "teams.created_at DESC",
			},
			Views: []string{"teams"},
			Messages: Messages{
				Created:  "Equipo creado correctamente: %s",
				Updated:  "Equipo actualizado correctamente: %s",
				Deleted:  "Equipo eliminado: %s",
				NotFound: "El equipo no existe",
			},
		},
		{
			Name:       "players",
			Table:      "players",
			Label:      "Jugador",
			LabelField: "last_name",
			Fields: []FieldSpec{
				{Name: "team_id", Label: "Equipo", Kind: KindUint, Required: true, Min: 1, HasMin: true, Foreign: fk("teams", "El equipo")},
				{Name: "profile_id", Label: "Perfil", Kind: KindUint, Foreign: fk("profiles", "El perfil")},
				{Name: "first_name", Label: "El nombre", Kind: KindString, Required: true, MinLen: 2, MaxLen: 60},
				{Name: "last_name", Label: "El apellido", Kind: KindString, Required: true, MinLen: 2, MaxLen: 60},
				{Name: "position", Label: "La posición", Kind: KindEnum, Required: true, Enum: Positions},
				{Name: "jersey_number", Label: "El dorsal", Kind: KindInt, Min: 1, Max: 99, HasMin: true, HasMax: true},
			},
			DeleteGuards: []DeleteGuard{
				{Table: "event_players", Column: "player_id", Message: "El jugador tiene eventos registrados"},
				{Table: "match_attendances", Column: "player_id", Message: "El jugador figura en planillas de asistencia"},
			},
			List: ListProjection{
				Select: "players.id, players.first_name, players.last_name, players.position, players.jersey_number, teams.name AS team, profiles.username AS profile",
				Joins: []string{
					"JOIN teams ON teams.id = players.team_id",
					"LEFT JOIN profiles ON profiles.id = players.profile_id",
				},
				Order: "players.created_at DESC",
			},
			Views: []string{"players"},
			Messages: Messages{
				Created:  "Jugador registrado correctamente: %s",
				Updated:  "Jugador actualizado correctamente: %s",
				Deleted:  "Jugador eliminado: %s",
				NotFound: "El jugador no existe",
			},
		},
		{
			Name:       "competitions",
			Table:      "competitions",
			Label:      "Competencia",
			LabelField: "name",
			Fields: []FieldSpec{
				{Name: "name", Label: "El nombre", Kind: KindString, Required: true, MinLen: 3, MaxLen: 100},
				{Name: "year", Label: "El año", Kind: KindInt, Required: true, Min: 2000, HasMin: true},
				{Name: "semester", Label: "El semestre", Kind: KindInt, Required: true, Min: 1, Max: 2, HasMin: true, HasMax: true},
				{Name: "start_date", Label: "La fecha de inicio", Kind: KindTime, Required: true},
				{Name: "end_date", Label: "La fecha de fin", Kind: KindTime, Required: true},
			},
			Relations: func(ctx context.Context, store Store, p Payload, excludeID uint) *apperr.Error {
				start, okS := p["start_date"].(time.Time)
				end, okE := p["end_date"].(time.Time)
				if okS && okE && end.Before(start) {
					return apperr.Invalidf("La fecha de fin debe ser posterior a la fecha de inicio")
				}
				return nil
			},
			DeleteGuards: []DeleteGuard{
				{Table: "matches", Column: "competition_id", Message: "La competencia tiene partidos programados"},
				{Table: "team_competitions", Column: "competition_id", Message: "La competencia tiene equipos inscritos"},
			},
			List:  ListProjection{Order: "competitions.year DESC, competitions.semester DESC"},
			Views: []string{"competitions"},
			Messages: Messages{
				Created:  "Competencia creada correctamente: %s",
				Updated:  "Competencia actualizada correctamente: %s",
				Deleted:  "Competencia eliminada: %s",
				NotFound: "La competencia no existe",
			},
		},
		{
			Name:  "team-competitions",
			Table: "team_competitions",
			Label: "Inscripción",
			Fields: []FieldSpec{
				{Name: "team_id", Label: "Equipo", Kind: KindUint, Required: true, Min: 1, HasMin: true, Foreign: fk("teams", "El equipo")},
				{Name: "competition_id", Label: "Competencia", Kind: KindUint, Required: true, Min: 1, HasMin: true, Foreign: fk("competitions", "La competencia")},
				{Name: "points", Label: "Los puntos", Kind: KindInt, Min: 0, HasMin: true},
				{Name: "position", Label: "La posición", Kind: KindInt, Min: 0, HasMin: true},
			},
			Uniques: []UniqueScope{
				{Fields: []string{"team_id", "competition_id"}, Message: "El equipo ya está inscrito en esta competencia"},
			},
			List: ListProjection{
				Select: "team_competitions.id, team_competitions.points, team_competitions.position, teams.name AS team, competitions.name AS competition",
				Joins: []string{
					"JOIN teams ON teams.id = team_competitions.team_id",
					"JOIN competitions ON competitions.id = team_competitions.competition_id",
				},
				Order: "team_competitions.points DESC",
			},
			Views: []string{"team_competitions", "standings"},
			Messages: Messages{
				Created:  "Inscripción registrada correctamente",
				Updated:  "Inscripción actualizada correctamente",
				Deleted:  "Inscripción eliminada",
				NotFound: "La inscripción no existe",
			},
		},
		{
			Name:  "matches",
			Table: "matches",
			Label: "Partido",
			Fields: []FieldSpec{
				{Name: "local_team_id", Label: "Equipo local", Kind: KindUint, Required: true, Min: 1, HasMin: true, Foreign: fk("teams", "El equipo local")},
				{Name: "visitor_team_id", Label: "Equipo visitante", Kind: KindUint, Required: true, Min: 1, HasMin: true, Foreign: fk("teams", "El equipo visitante")},
				{Name: "competition_id", Label: "Competencia", Kind: KindUint, Required: true, Min: 1, HasMin: true, Foreign: fk("competitions", "La competencia")},
				{Name: "stream_id", Label: "Transmisión", Kind: KindUint, Foreign: fk("streams", "La transmisión")},
				{Name: "scheduled_at", Label: "La fecha del partido", Kind: KindTime, Required: true},
				{Name: "location", Label: "El lugar", Kind: KindString, MaxLen: 200},
				{Name: "local_score", Label: "El marcador local", Kind: KindInt, Min: 0, HasMin: true},
				{Name: "visitor_score", Label: "El marcador visitante", Kind: KindInt, Min: 0, HasMin: true},
			},
			Relations: func(ctx context.Context, store Store, p Payload, excludeID uint) *apperr.Error {
				local := UintValue(p, "local_team_id")
				visitor := UintValue(p, "visitor_team_id")
				if local != 0 && local == visitor {
					return apperr.Mismatchf("El equipo local y el visitante deben ser distintos")
				}
				return nil
			},
			DeleteGuards: []DeleteGuard{
				{Table: "lineups", Column: "match_id", Message: "El partido tiene alineaciones registradas"},
				{Table: "events", Column: "match_id", Message: "El partido tiene eventos registrados"},
				{Table: "match_attendances", Column: "match_id", Message: "El partido tiene planillas de asistencia"},
				{Table: "notifications", Column: "match_id", Message: "El partido tiene notificaciones asociadas"},
				{Table: "streams", Column: "match_id", Message: "El partido tiene una transmisión vinculada"},
			},
			List: ListProjection{
				Select: "matches.id, matches.scheduled_at, matches.location, matches.local_score, matches.visitor_score, " +
					"locals.name AS local_team, visitors.name AS visitor_team, competitions.name AS competition",
				Joins: []string{
					"JOIN teams AS locals ON locals.id = matches.local_team_id",
					"JOIN teams AS visitors ON visitors.id = matches.visitor_team_id",
					"JOIN competitions ON competitions.id = matches.competition_id",
				},
				Order: "matches.scheduled_at DESC",
			},
			Views: []string{"matches"},
			Messages: Messages{
				Created:  "Partido programado correctamente",
				Updated:  "Partido actualizado correctamente",
				Deleted:  "Partido eliminado",
				NotFound: "El partido no existe",
			},
		},
		{
			Name:  "lineups",
			Table: "lineups",
			Label: "Alineación",
			Fields: []FieldSpec{
				{Name: "team_id", Label: "Equipo", Kind: KindUint, Required: true, Min: 1, HasMin: true, Foreign: fk("teams", "El equipo")},
				{Name: "match_id", Label: "Partido", Kind: KindUint, Required: true, Min: 1, HasMin: true, Foreign: fk("matches", "El partido")},
				{Name: "matrix", Label: "La formación", Kind: KindString, MaxLen: 2000},
			},
			Relations: func(ctx context.Context, store Store, p Payload, excludeID uint) *apperr.Error {
				return teamInMatch(ctx, store, UintValue(p, "match_id"), UintValue(p, "team_id"))
			},
			Uniques: []UniqueScope{
				{Fields: []string{"team_id", "match_id"}, Message: "Ya existe una alineación para este equipo en este partido"},
			},
			List: ListProjection{
				Select: "lineups.id, lineups.match_id, lineups.matrix, lineups.created_at, teams.name AS team",
				Joins:  []string{"JOIN teams ON teams.id = lineups.team_id"},
				Order:  "lineups.created_at DESC",
			},
			Views: []string{"lineups"},
			Messages: Messages{
				Created:  "Alineación registrada correctamente",
				Updated:  "Alineación actualizada correctamente",
				Deleted:  "Alineación eliminada",
				NotFound: "La alineación no existe",
			},
		},
		{
			Name:  "events",
			Table: "events",
			Label: "Evento",
			Fields: []FieldSpec{
				{Name: "match_id", Label: "Partido", Kind: KindUint, Required: true, Min: 1, HasMin: true, Foreign: fk("matches", "El partido")},
				{Name: "team_id", Label: "Equipo", Kind: KindUint, Required: true, Min: 1, HasMin: true, Foreign: fk("teams", "El equipo")},
				{Name: "type", Label: "El tipo de evento", Kind: KindEnum, Required: true, Enum: EventTypes},
				{Name: "minute", Label: "El minuto", Kind: KindInt, Required: true, Min: 0, Max: 130, HasMin: true, HasMax: true},
			},
			Relations: func(ctx context.Context, store Store, p Payload, excludeID uint) *apperr.Error {
				return teamInMatch(ctx, store, UintValue(p, "match_id"), UintValue(p, "team_id"))
			},
			DeleteGuards: []DeleteGuard{
				{Table: "event_players", Column: "event_id", Message: "El evento tiene jugadores vinculados"},
			},
			List: ListProjection{
				Select: "events.id, events.match_id, events.type, events.minute, teams.name AS team",
				Joins:  []string{"JOIN teams ON teams.id = events.team_id"},
				Order:  "events.created_at DESC",
			},
			Views: []string{"events"},
			Messages: Messages{
				Created:  "Evento registrado correctamente",
				Updated:  "Evento actualizado correctamente",
				Deleted:  "Evento eliminado",
				NotFound: "El evento no existe",
			},
		},
		{
			Name:  "event-players",
			Table: "event_players",
			Label: "Jugador de evento",
			Fields: []FieldSpec{
				{Name: "event_id", Label: "Evento", Kind: KindUint, Required: true, Min: 1, HasMin: true, Foreign: fk("events", "El evento")},
				{Name: "player_id", Label: "Jugador", Kind: KindUint, Required: true, Min: 1, HasMin: true, Foreign: fk("players", "El jugador")},
				{Name: "role", Label: "El rol", Kind: KindEnum, Required: true, Enum: EventPlayerRoles},
			},
			Relations: func(ctx context.Context, store Store, p Payload, excludeID uint) *apperr.Error {
				event, err := store.Lookup(ctx, "events", UintValue(p, "event_id"))
				if err != nil {
					return apperr.StorageFailure()
				}
				if event == nil {
					return apperr.NotFoundf("El evento no existe")
				}
				player, err := store.Lookup(ctx, "players", UintValue(p, "player_id"))
				if err != nil {
					return apperr.StorageFailure()
				}
				if player == nil {
					return apperr.NotFoundf("El jugador no existe")
				}
				if RowUint(player, "team_id") != RowUint(event, "team_id") {
					return apperr.Mismatchf("El jugador no pertenece al equipo del evento")
				}
				return nil
			},
			// One main actor per event: a new main row replaces any
			// pre-existing one instead of conflicting.
			Singleton: &SingletonScope{Field: "role", Value: "main", ParentFields: []string{"event_id"}},
			List: ListProjection{
				Select: "event_players.id, event_players.role, events.type AS event_type, events.minute, players.last_name AS player",
				Joins: []string{
					"JOIN events ON events.id = event_players.event_id",
					"JOIN players ON players.id = event_players.player_id",
				},
				Order: "event_players.created_at DESC",
			},
			Views: []string{"event_players", "events"},
			Messages: Messages{
				Created:  "Jugador vinculado al evento correctamente",
				Updated:  "Vínculo de evento actualizado correctamente",
				Deleted:  "Vínculo de evento eliminado",
				NotFound: "El vínculo de evento no existe",
			},
		},
		{
			Name:  "notifications",
			Table: "notifications",
			Label: "Notificación",
			Fields: []FieldSpec{
				{Name: "profile_id", Label: "Perfil", Kind: KindUint, Required: true, Min: 1, HasMin: true, Foreign: fk("profiles", "El perfil")},
				{Name: "match_id", Label: "Partido", Kind: KindUint, Foreign: fk("matches", "El partido")},
				{Name: "preference_id", Label: "Preferencia", Kind: KindUint, Foreign: fk("preferences", "La preferencia")},
				{Name: "is_enabled", Label: "Activa", Kind: KindBool},
				{Name: "status", Label: "El estado", Kind: KindEnum, Required: true, Enum: NotificationStatuses},
			},
			List: ListProjection{
				Select: "notifications.id, notifications.status, notifications.is_enabled, notifications.match_id, profiles.username AS profile",
				Joins:  []string{"JOIN profiles ON profiles.id = notifications.profile_id"},
				Order:  "notifications.created_at DESC",
			},
			Views: []string{"notifications"},
			Messages: Messages{
				Created:  "Notificación creada correctamente",
				Updated:  "Notificación actualizada correctamente",
				Deleted:  "Notificación eliminada",
				NotFound: "La notificación no existe",
			},
		},
		{
			Name:  "preferences",
			Table: "preferences",
			Label: "Preferencia",
			Fields: []FieldSpec{
				{Name: "profile_id", Label: "Perfil", Kind: KindUint, Required: true, Min: 1, HasMin: true, Foreign: fk("profiles", "El perfil")},
				{Name: "type", Label: "El tipo", Kind: KindEnum, Required: true, Enum: PreferenceTypes},
				{Name: "channel", Label: "El canal", Kind: KindString, Required: true, MinLen: 2, MaxLen: 50},
				{Name: "lead_time_minutes", Label: "La anticipación en minutos", Kind: KindInt, Min: 0, HasMin: true},
				{Name: "is_enabled", Label: "Activa", Kind: KindBool},
			},
			Uniques: []UniqueScope{
				{Fields: []string{"profile_id", "type", "channel"}, Message: "Ya existe una preferencia para este perfil, tipo y canal"},
			},
			DeleteGuards: []DeleteGuard{
				{Table: "notifications", Column: "preference_id", Message: "La preferencia tiene notificaciones asociadas"},
			},
			List: ListProjection{
				Select: "preferences.id, preferences.type, preferences.channel, preferences.lead_time_minutes, preferences.is_enabled, profiles.username AS profile",
				Joins:  []string{"JOIN profiles ON profiles.id = preferences.profile_id"},
				Order:  "preferences.created_at DESC",
			},
			Views: []string{"preferences"},
			Messages: Messages{
				Created:  "Preferencia creada correctamente",
				Updated:  "Preferencia actualizada correctamente",
				Deleted:  "Preferencia eliminada",
				NotFound: "La preferencia no existe",
			},
		},
		{
			Name:  "join-requests",
			Table: "join_team_requests",
			Label: "Solicitud de ingreso",
			Fields: []FieldSpec{
				{Name: "profile_id", Label: "Perfil", Kind: KindUint, Required: true, Min: 1, HasMin: true, Foreign: fk("profiles", "El perfil")},
				{Name: "team_id", Label: "Equipo", Kind: KindUint, Required: true, Min: 1, HasMin: true, Foreign: fk("teams", "El equipo")},
				{Name: "status", Label: "El estado", Kind: KindEnum, Required: true, Enum: JoinRequestStatuses},
				{Name: "position", Label: "La posición", Kind: KindEnum, Enum: Positions},
				{Name: "major", Label: "La carrera", Kind: KindString, MaxLen: 100},
				{Name: "phone", Label: "El teléfono", Kind: KindString, MaxLen: 20},
			},
			Relations: func(ctx context.Context, store Store, p Payload, excludeID uint) *apperr.Error {
				// One active request per profile, checked by existence
				// query (no schema-level constraint).
				if p["status"] != "pending" {
					return nil
				}
				conds := map[string]interface{}{
					"profile_id": UintValue(p, "profile_id"),
					"status":     "pending",
				}
				pending, err := store.ExistsWhereNot(ctx, "join_team_requests", conds, excludeID)
				if err != nil {
					return apperr.StorageFailure()
				}
				if pending {
					return apperr.Conflictf("El perfil ya tiene una solicitud de ingreso pendiente")
				}
				return nil
			},
			List: ListProjection{
				Select: "join_team_requests.id, join_team_requests.status, join_team_requests.position, profiles.username AS profile, teams.name AS team",
				Joins: []string{
					"JOIN profiles ON profiles.id = join_team_requests.profile_id",
					"JOIN teams ON teams.id = join_team_requests.team_id",
				},
				Order: "join_team_requests.created_at DESC",
			},
			Views: []string{"join_team_requests"},
			Messages: Messages{
				Created:  "Solicitud de ingreso registrada correctamente",
				Updated:  "Solicitud de ingreso actualizada correctamente",
				Deleted:  "Solicitud de ingreso eliminada",
				NotFound: "La solicitud de ingreso no existe",
			},
		},
		{
			Name:       "streams",
			Table:      "streams",
			Label:      "Transmisión",
			LabelField: "title",
			Fields: []FieldSpec{
				{Name: "match_id", Label: "Partido", Kind: KindUint, Foreign: fk("matches", "El partido")},
				{Name: "youtube_video_id", Label: "El video de YouTube", Kind: KindString, Required: true, MinLen: 5, MaxLen: 50},
				{Name: "title", Label: "El título", Kind: KindString, Required: true, MinLen: 3, MaxLen: 200},
				{Name: "is_live_stream", Label: "En vivo", Kind: KindBool},
				{Name: "stream_date", Label: "La fecha de transmisión", Kind: KindTime, Required: true},
			},
			DeleteGuards: []DeleteGuard{
				{Table: "matches", Column: "stream_id", Message: "La transmisión está asignada a un partido"},
			},
			List:  ListProjection{Order: "streams.stream_date DESC"},
			Views: []string{"streams"},
			Messages: Messages{
				Created:  "Transmisión creada correctamente: %s",
				Updated:  "Transmisión actualizada correctamente: %s",
				Deleted:  "Transmisión eliminada: %s",
				NotFound: "La transmisión no existe",
			},
		},
	}
}
