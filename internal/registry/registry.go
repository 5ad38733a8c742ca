// Package registry declares the schema of every entity the admin
// back-office manages: fields, foreign keys, uniqueness scopes, dependent-row
// guards and list projections. The validation engine and the CRUD dispatcher
// consume these specs generically; nothing here touches the database.
package registry

import (
	"context"

	"github.com/jfarias-dev/ligauni/pkg/apperr"
)

type FieldKind string

const (
	KindString FieldKind = "string"
	KindInt    FieldKind = "int"
	KindUint   FieldKind = "uint"
	KindBool   FieldKind = "bool"
	KindTime   FieldKind = "time"
	KindEnum   FieldKind = "enum"
)

// ForeignKey points a field at the table that must contain the referenced row.
type ForeignKey struct {
	Table string
	Label string // Spanish subject for "... no existe" messages
}

// FieldSpec describes one form field of an entity.
type FieldSpec struct {
	Name     string
	Label    string
	Kind     FieldKind
	Required bool
	MinLen   int
	MaxLen   int
	Min      int64
	Max      int64
	HasMin   bool
	HasMax   bool
	Enum     []string
	Foreign  *ForeignKey
	// Default fills the field when the submission omits it (e.g. a
	// generated auth id for locally created profiles).
	Default func() interface{}
}

// UniqueScope declares that the combination of Fields must be unique.
// Scopes with an absent field value are skipped (optional uniqueness,
// e.g. email only when present).
type UniqueScope struct {
	Fields  []string
	Message string
}

// SingletonScope marks a "one row per parent" discriminant. Writes whose
// discriminant matches Value replace any pre-existing sibling under the
// same parent instead of conflicting (last-write-wins).
type SingletonScope struct {
	Field        string
	Value        string
	ParentFields []string
}

// DeleteGuard blocks deletion while dependent rows still reference the entity.
type DeleteGuard struct {
	Table   string
	Column  string
	Message string
}

// ListProjection is the read-side query shape for the admin list view,
// joining in human-readable labels for foreign keys.
type ListProjection struct {
	Select string
	Joins  []string
	Order  string
}

// Messages holds the Spanish templates for user-visible outcomes. Templates
// containing %s are filled with the row's display name.
type Messages struct {
	Created  string
	Updated  string
	Deleted  string
	NotFound string
}

// Payload is a validated, typed field map ready for persistence.
type Payload map[string]interface{}

// Store is the read/replace surface the integrity checks run against.
// The dispatcher's storage layer implements it over GORM; tests use
// in-memory fakes.
type Store interface {
	Exists(ctx context.Context, table string, id uint) (bool, error)
	ExistsWhere(ctx context.Context, table string, conds map[string]interface{}) (bool, error)
	ExistsWhereNot(ctx context.Context, table string, conds map[string]interface{}, excludeID uint) (bool, error)
	// Lookup returns the row as a column map, or nil when it does not exist.
	Lookup(ctx context.Context, table string, id uint) (map[string]interface{}, error)
}

// RelationCheck enforces entity-specific cross-row consistency (e.g. a
// lineup's team must participate in its match). excludeID is the row's own
// id on update, zero on create.
type RelationCheck func(ctx context.Context, store Store, p Payload, excludeID uint) *apperr.Error

// EntitySpec is the full declarative description of one manageable entity.
type EntitySpec struct {
	Name         string // URL key, e.g. "event-players"
	Table        string
	Label        string
	LabelField   string
	Fields       []FieldSpec
	Uniques      []UniqueScope
	Singleton    *SingletonScope
	DeleteGuards []DeleteGuard
	Relations    RelationCheck
	List         ListProjection
	Views        []string
	Messages     Messages
}

// Registry indexes entity specs by URL key.
type Registry struct {
	specs map[string]*EntitySpec
	order []string
}

// New builds the registry with every manageable entity declared.
func New() *Registry {
	r := &Registry{specs: make(map[string]*EntitySpec)}
	for _, spec := range entitySpecs() {
		r.specs[spec.Name] = spec
		r.order = append(r.order, spec.Name)
	}
	return r
}

// Spec returns the spec for the given entity key.
func (r *Registry) Spec(name string) (*EntitySpec, bool) {
	s, ok := r.specs[name]
	return s, ok
}

// Names returns the entity keys in declaration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Field returns the field spec with the given name, or nil.
func (s *EntitySpec) Field(name string) *FieldSpec {
	for i := range s.Fields {
		if s.Fields[i].Name == name {
			return &s.Fields[i]
		}
	}
	return nil
}

// UintValue reads a payload field as uint, tolerating the integer types
// the coercion step and database scans produce.
func UintValue(p Payload, key string) uint {
	return toUint(p[key])
}

// RowUint reads a column from a Lookup row as uint.
func RowUint(row map[string]interface{}, key string) uint {
	if row == nil {
		return 0
	}
	return toUint(row[key])
}

func toUint(v interface{}) uint {
	switch n := v.(type) {
	case uint:
		return n
	case uint32:
		return uint(n)
	case uint64:
		return uint(n)
	case int:
		if n < 0 {
			return 0
		}
		return uint(n)
	case int32:
		if n < 0 {
			return 0
		}
		return uint(n)
	case int64:
		if n < 0 {
			return 0
		}
		return uint(n)
	case float64:
		if n < 0 {
			return 0
		}
		return uint(n)
	default:
		return 0
	}
}
