package admin

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jfarias-dev/ligauni/internal/engine"
	"github.com/jfarias-dev/ligauni/internal/identity"
	"github.com/jfarias-dev/ligauni/internal/registry"
	"github.com/jfarias-dev/ligauni/pkg/apperr"
	"github.com/jfarias-dev/ligauni/pkg/responses"
)

// Dispatcher orchestrates one full admin mutation or read per call:
// authorize, validate, check integrity, persist, invalidate views, and
// wrap everything into the uniform ActionResult. It never returns a raw
// error to the HTTP layer.
type Dispatcher struct {
	reg    *registry.Registry
	store  Store
	engine *engine.Engine
	cache  Invalidator
	log    zerolog.Logger
}

func NewDispatcher(reg *registry.Registry, store Store, cache Invalidator, log zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		reg:    reg,
		store:  store,
		engine: engine.New(store),
		cache:  cache,
		log:    log,
	}
}

// Registry exposes the entity table (the admin UI renders forms from it).
func (d *Dispatcher) Registry() *registry.Registry {
	return d.reg
}

// List runs the entity's label-joined read query. An empty table is an
// empty slice, never a failure.
func (d *Dispatcher) List(ctx context.Context, entity string) ([]map[string]interface{}, error) {
	spec, ok := d.reg.Spec(entity)
	if !ok {
		return nil, fmt.Errorf("unknown entity type %q", entity)
	}
	return d.store.List(ctx, spec)
}

// Create validates and inserts a new row.
func (d *Dispatcher) Create(ctx context.Context, actor identity.Actor, entity string, form map[string]string) (responses.ActionResult, int) {
	spec, ok := d.reg.Spec(entity)
	if !ok {
		return responses.Fail("Tipo de entidad desconocido", form), http.StatusBadRequest
	}

	payload, aerr := d.engine.ValidateCreate(ctx, actor, spec, form)
	if aerr != nil {
		return d.failure(entity, "create", aerr, form)
	}

	if aerr := d.replaceSingleton(ctx, spec, payload, 0); aerr != nil {
		return d.failure(entity, "create", aerr, form)
	}

	now := time.Now()
	payload["created_at"] = now
	payload["updated_at"] = now
	if err := d.store.Insert(ctx, spec.Table, payload); err != nil {
		d.log.Error().Err(err).Str("entity", entity).Msg("insert failed")
		return d.failure(entity, "create", apperr.StorageFailure(), form)
	}

	d.invalidate(spec)
	return responses.OK(d.message(spec.Messages.Created, displayName(spec, payload)), form), http.StatusCreated
}

// Update validates and applies changes to an existing row.
func (d *Dispatcher) Update(ctx context.Context, actor identity.Actor, entity string, id uint, form map[string]string) (responses.ActionResult, int) {
	spec, ok := d.reg.Spec(entity)
	if !ok {
		return responses.Fail("Tipo de entidad desconocido", form), http.StatusBadRequest
	}

	if aerr := d.engine.Authorize(actor); aerr != nil {
		return d.failure(entity, "update", aerr, form)
	}
	if id == 0 {
		return d.failure(entity, "update", apperr.Invalidf("Identificador inválido"), form)
	}

	existing, err := d.store.Lookup(ctx, spec.Table, id)
	if err != nil {
		return d.failure(entity, "update", apperr.StorageFailure(), form)
	}
	if existing == nil {
		return d.failure(entity, "update", apperr.NotFoundf("%s", spec.Messages.NotFound), form)
	}

	payload, aerr := d.engine.ValidateUpdate(ctx, actor, spec, id, form)
	if aerr != nil {
		return d.failure(entity, "update", aerr, form)
	}

	if aerr := d.replaceSingleton(ctx, spec, payload, id); aerr != nil {
		return d.failure(entity, "update", aerr, form)
	}

	payload["updated_at"] = time.Now()
	if err := d.store.Update(ctx, spec.Table, id, payload); err != nil {
		d.log.Error().Err(err).Str("entity", entity).Uint("id", id).Msg("update failed")
		return d.failure(entity, "update", apperr.StorageFailure(), form)
	}

	d.invalidate(spec)
	return responses.OK(d.message(spec.Messages.Updated, displayName(spec, payload)), form), http.StatusOK
}

// Delete removes a row after every dependent-row guard passes. Deleting a
// row that is already gone reports NotFound, never a silent success.
func (d *Dispatcher) Delete(ctx context.Context, actor identity.Actor, entity string, id uint, form map[string]string) (responses.ActionResult, int) {
	spec, ok := d.reg.Spec(entity)
	if !ok {
		return responses.Fail("Tipo de entidad desconocido", form), http.StatusBadRequest
	}

	if aerr := d.engine.Authorize(actor); aerr != nil {
		return d.failure(entity, "delete", aerr, form)
	}
	if id == 0 {
		return d.failure(entity, "delete", apperr.Invalidf("Identificador inválido"), form)
	}

	existing, err := d.store.Lookup(ctx, spec.Table, id)
	if err != nil {
		return d.failure(entity, "delete", apperr.StorageFailure(), form)
	}
	if existing == nil {
		return d.failure(entity, "delete", apperr.NotFoundf("%s", spec.Messages.NotFound), form)
	}

	if aerr := d.engine.CheckDelete(ctx, actor, spec, id); aerr != nil {
		return d.failure(entity, "delete", aerr, form)
	}

	if err := d.store.Delete(ctx, spec.Table, id); err != nil {
		d.log.Error().Err(err).Str("entity", entity).Uint("id", id).Msg("delete failed")
		return d.failure(entity, "delete", apperr.StorageFailure(), form)
	}

	d.invalidate(spec)
	name := displayName(spec, registry.Payload(existing))
	if name == "" {
		name = fmt.Sprintf("#%d", id)
	}
	return responses.OK(d.message(spec.Messages.Deleted, name), form), http.StatusOK
}

// replaceSingleton applies the last-write-wins policy for singleton-role
// rows: the new holder of the role evicts any sibling under the same parent.
func (d *Dispatcher) replaceSingleton(ctx context.Context, spec *registry.EntitySpec, payload registry.Payload, excludeID uint) *apperr.Error {
	s := spec.Singleton
	if s == nil || payload[s.Field] != s.Value {
		return nil
	}
	conds := map[string]interface{}{s.Field: s.Value}
	for _, parent := range s.ParentFields {
		conds[parent] = payload[parent]
	}
	if err := d.store.DeleteWhereNot(ctx, spec.Table, conds, excludeID); err != nil {
		d.log.Error().Err(err).Str("table", spec.Table).Msg("singleton replacement failed")
		return apperr.StorageFailure()
	}
	return nil
}

func (d *Dispatcher) invalidate(spec *registry.EntitySpec) {
	for _, view := range spec.Views {
		d.cache.Invalidate(view)
	}
}

func (d *Dispatcher) failure(entity, op string, aerr *apperr.Error, form map[string]string) (responses.ActionResult, int) {
	d.log.Debug().Str("entity", entity).Str("op", op).Str("kind", string(aerr.Kind)).Msg(aerr.Message)
	return responses.Fail(aerr.Message, form), responses.StatusFor(aerr.Kind)
}

func (d *Dispatcher) message(template, name string) string {
	if strings.Contains(template, "%s") {
		if name == "" {
			name = "registro"
		}
		return fmt.Sprintf(template, name)
	}
	return template
}

func displayName(spec *registry.EntitySpec, payload registry.Payload) string {
	if spec.LabelField == "" {
		return ""
	}
	if v, ok := payload[spec.LabelField].(string); ok {
		return v
	}
	return ""
}
