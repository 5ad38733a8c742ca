// Package engine validates admin form submissions against the entity
// schema registry and enforces relational invariants before any write.
// It has no side effects: persistence belongs to the dispatcher.
package engine

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/jfarias-dev/ligauni/internal/identity"
	"github.com/jfarias-dev/ligauni/internal/registry"
	"github.com/jfarias-dev/ligauni/pkg/apperr"
)

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

type Engine struct {
	store registry.Store
}

func New(store registry.Store) *Engine {
	return &Engine{store: store}
}

// Authorize is the gate every mutating operation passes first, before any
// field validation.
func (e *Engine) Authorize(actor identity.Actor) *apperr.Error {
	if !actor.Admin {
		return apperr.Unauthorizedf("No autorizado: se requieren permisos de administrador")
	}
	return nil
}

// ValidateCreate coerces and validates a raw submission for insertion.
func (e *Engine) ValidateCreate(ctx context.Context, actor identity.Actor, spec *registry.EntitySpec, form map[string]string) (registry.Payload, *apperr.Error) {
	return e.validate(ctx, actor, spec, form, 0)
}

// ValidateUpdate is ValidateCreate with the row's own id excluded from
// uniqueness checks.
func (e *Engine) ValidateUpdate(ctx context.Context, actor identity.Actor, spec *registry.EntitySpec, id uint, form map[string]string) (registry.Payload, *apperr.Error) {
	return e.validate(ctx, actor, spec, form, id)
}

// CheckDelete runs the dependent-row guards that must all pass before a
// physical delete. The target's existence is the dispatcher's concern.
func (e *Engine) CheckDelete(ctx context.Context, actor identity.Actor, spec *registry.EntitySpec, id uint) *apperr.Error {
	if aerr := e.Authorize(actor); aerr != nil {
		return aerr
	}
	for _, guard := range spec.DeleteGuards {
		blocked, err := e.store.ExistsWhere(ctx, guard.Table, map[string]interface{}{guard.Column: id})
		if err != nil {
			return apperr.StorageFailure()
		}
		if blocked {
			return apperr.Conflictf("No se puede eliminar: %s", guard.Message)
		}
	}
	return nil
}

func (e *Engine) validate(ctx context.Context, actor identity.Actor, spec *registry.EntitySpec, form map[string]string, excludeID uint) (registry.Payload, *apperr.Error) {
	if aerr := e.Authorize(actor); aerr != nil {
		return nil, aerr
	}

	payload, aerr := CoerceFields(spec, form)
	if aerr != nil {
		return nil, aerr
	}

	// Integrity checks run in a fixed order: later checks assume the
	// rows earlier ones verified actually exist.
	if aerr := e.checkForeignKeys(ctx, spec, payload); aerr != nil {
		return nil, aerr
	}
	if spec.Relations != nil {
		if aerr := spec.Relations(ctx, e.store, payload, excludeID); aerr != nil {
			return nil, aerr
		}
	}
	if aerr := e.checkUniques(ctx, spec, payload, excludeID); aerr != nil {
		return nil, aerr
	}

	return payload, nil
}

// CoerceFields applies the coerce-then-validate policy: numeric fields
// parsed from text default to 0 when absent or unparseable and then fail
// the declared minimum naturally. Violations are aggregated into a single
// "review the fields" failure.
func CoerceFields(spec *registry.EntitySpec, form map[string]string) (registry.Payload, *apperr.Error) {
	payload := registry.Payload{}
	var violations []string

	for _, f := range spec.Fields {
		raw, present := form[f.Name]
		raw = strings.TrimSpace(raw)
		if !present || raw == "" {
			if f.Default != nil {
				payload[f.Name] = f.Default()
				continue
			}
			switch f.Kind {
			case registry.KindBool:
				// Checkbox semantics: absent means unchecked.
				payload[f.Name] = false
			case registry.KindInt, registry.KindUint:
				if f.Required {
					// Sentinel zero, rejected by the minimum below.
					violations = append(violations, numericViolation(f))
				}
			default:
				if f.Required {
					violations = append(violations, f.Label+" es obligatorio")
				}
			}
			continue
		}

		switch f.Kind {
		case registry.KindString:
			if f.MinLen > 0 && len(raw) < f.MinLen {
				violations = append(violations, f.Label+" debe tener al menos "+strconv.Itoa(f.MinLen)+" caracteres")
				continue
			}
			if f.MaxLen > 0 && len(raw) > f.MaxLen {
				violations = append(violations, f.Label+" no debe superar "+strconv.Itoa(f.MaxLen)+" caracteres")
				continue
			}
			payload[f.Name] = raw

		case registry.KindInt:
			v, _ := strconv.ParseInt(raw, 10, 64)
			if msg, ok := numericBounds(f, v); !ok {
				violations = append(violations, msg)
				continue
			}
			payload[f.Name] = v

		case registry.KindUint:
			v, _ := strconv.ParseInt(raw, 10, 64)
			if v < 0 {
				v = 0
			}
			if f.Required || f.HasMin {
				if msg, ok := numericBounds(f, v); !ok {
					violations = append(violations, msg)
					continue
				}
			} else if v == 0 {
				// Optional reference left unset (or unparseable).
				continue
			}
			payload[f.Name] = uint(v)

		case registry.KindBool:
			payload[f.Name] = parseBool(raw)

		case registry.KindTime:
			t, ok := parseTime(raw)
			if !ok {
				violations = append(violations, f.Label+" no tiene un formato de fecha válido")
				continue
			}
			payload[f.Name] = t

		case registry.KindEnum:
			if !contains(f.Enum, raw) {
				violations = append(violations, f.Label+" debe ser uno de: "+strings.Join(f.Enum, ", "))
				continue
			}
			payload[f.Name] = raw
		}
	}

	if len(violations) > 0 {
		return nil, apperr.Invalidf("Revisa los campos del formulario: %s", strings.Join(violations, "; "))
	}
	return payload, nil
}

func (e *Engine) checkForeignKeys(ctx context.Context, spec *registry.EntitySpec, payload registry.Payload) *apperr.Error {
	for _, f := range spec.Fields {
		if f.Foreign == nil {
			continue
		}
		id := registry.UintValue(payload, f.Name)
		if id == 0 {
			continue
		}
		exists, err := e.store.Exists(ctx, f.Foreign.Table, id)
		if err != nil {
			return apperr.StorageFailure()
		}
		if !exists {
			return apperr.NotFoundf("%s no existe", f.Foreign.Label)
		}
	}
	return nil
}

func (e *Engine) checkUniques(ctx context.Context, spec *registry.EntitySpec, payload registry.Payload, excludeID uint) *apperr.Error {
	for _, scope := range spec.Uniques {
		conds := map[string]interface{}{}
		complete := true
		for _, name := range scope.Fields {
			v, ok := payload[name]
			if !ok || v == "" {
				complete = false
				break
			}
			conds[name] = v
		}
		if !complete {
			continue
		}
		taken, err := e.store.ExistsWhereNot(ctx, spec.Table, conds, excludeID)
		if err != nil {
			return apperr.StorageFailure()
		}
		if taken {
			return apperr.Conflictf("%s", scope.Message)
		}
	}
	return nil
}

func numericBounds(f registry.FieldSpec, v int64) (string, bool) {
	if f.HasMin && v < f.Min {
		return numericViolation(f), false
	}
	if f.HasMax && v > f.Max {
		return f.Label + " no debe superar " + strconv.FormatInt(f.Max, 10), false
	}
	return "", true
}

func numericViolation(f registry.FieldSpec) string {
	if f.HasMin {
		return f.Label + " debe ser mayor o igual a " + strconv.FormatInt(f.Min, 10)
	}
	return f.Label + " es obligatorio"
}

func parseBool(raw string) bool {
	switch strings.ToLower(raw) {
	case "true", "1", "on", "si", "sí":
		return true
	}
	return false
}

func parseTime(raw string) (time.Time, bool) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
