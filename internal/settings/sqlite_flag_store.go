package settings

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	model "todo-list.com/todo-list/internal/models"
)

type SQLiteFlagStore struct {
	db *gorm.DB
}

func NewSQLiteFlagStore(db *gorm.DB) *SQLiteFlagStore {
	return &SQLiteFlagStore{db: db}
}

func (s *SQLiteFlagStore) IsSet(ctx context.Context, key string) (bool, error) {
	var setting model.Setting
	err := s.db.WithContext(ctx).First(&setting, "name = ?", key).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return setting.Value != "", nil
}

func (s *SQLiteFlagStore) Set(ctx context.Context, key, value string) error {
	setting := model.Setting{Name: key, Value: value}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&setting).Error
}

func (s *SQLiteFlagStore) Clear(ctx context.Context, key string) error {
	return s.db.WithContext(ctx).Delete(&model.Setting{}, "name = ?", key).Error
}
