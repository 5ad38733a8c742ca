package admin

import (
	"context"
	"errors"
	"sort"
	"strings"

	"gorm.io/gorm"

	"github.com/jfarias-dev/ligauni/internal/registry"
)

// Store is the persistence surface the dispatcher drives. It extends the
// registry's read-side contract with the generic mutations of the admin
// back-office. Table names always come from the registry, never from
// request input.
type Store interface {
	registry.Store
	Insert(ctx context.Context, table string, row map[string]interface{}) error
	Update(ctx context.Context, table string, id uint, row map[string]interface{}) error
	Delete(ctx context.Context, table string, id uint) error
	DeleteWhereNot(ctx context.Context, table string, conds map[string]interface{}, excludeID uint) error
	List(ctx context.Context, spec *registry.EntitySpec) ([]map[string]interface{}, error)
}

type gormStore struct {
	db *gorm.DB
}

// NewStore wraps a GORM handle into the dispatcher's Store.
func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) Exists(ctx context.Context, table string, id uint) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Table(table).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (s *gormStore) ExistsWhere(ctx context.Context, table string, conds map[string]interface{}) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Table(table).Where(conds).Count(&count).Error
	return count > 0, err
}

func (s *gormStore) ExistsWhereNot(ctx context.Context, table string, conds map[string]interface{}, excludeID uint) (bool, error) {
	query := s.db.WithContext(ctx).Table(table).Where(conds)
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}
	var count int64
	err := query.Count(&count).Error
	return count > 0, err
}

func (s *gormStore) Lookup(ctx context.Context, table string, id uint) (map[string]interface{}, error) {
	row := map[string]interface{}{}
	err := s.db.WithContext(ctx).Table(table).Where("id = ?", id).Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return row, nil
}

func (s *gormStore) Insert(ctx context.Context, table string, row map[string]interface{}) error {
	return s.db.WithContext(ctx).Table(table).Create(row).Error
}

func (s *gormStore) Update(ctx context.Context, table string, id uint, row map[string]interface{}) error {
	return s.db.WithContext(ctx).Table(table).Where("id = ?", id).Updates(row).Error
}

func (s *gormStore) Delete(ctx context.Context, table string, id uint) error {
	return s.db.WithContext(ctx).Exec("DELETE FROM "+table+" WHERE id = ?", id).Error
}

func (s *gormStore) DeleteWhereNot(ctx context.Context, table string, conds map[string]interface{}, excludeID uint) error {
	columns := make([]string, 0, len(conds))
	for column := range conds {
		columns = append(columns, column)
	}
	sort.Strings(columns)

	clauses := make([]string, 0, len(columns)+1)
	args := make([]interface{}, 0, len(columns)+1)
	for _, column := range columns {
		clauses = append(clauses, column+" = ?")
		args = append(args, conds[column])
	}
	if excludeID > 0 {
		clauses = append(clauses, "id <> ?")
		args = append(args, excludeID)
	}
	sql := "DELETE FROM " + table + " WHERE " + strings.Join(clauses, " AND ")
	return s.db.WithContext(ctx).Exec(sql, args...).Error
}

func (s *gormStore) List(ctx context.Context, spec *registry.EntitySpec) ([]map[string]interface{}, error) {
	rows := []map[string]interface{}{}
	query := s.db.WithContext(ctx).Table(spec.Table)
	if spec.List.Select != "" {
		query = query.Select(spec.List.Select)
	}
	for _, join := range spec.List.Joins {
		query = query.Joins(join)
	}
	if spec.List.Order != "" {
		query = query.Order(spec.List.Order)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
