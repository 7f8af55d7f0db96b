package repositories

import (
	"context"
	"github.com/maxaizer/job-radar/internal/entities"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// Data is a small key/value table for state that must survive restarts, such as the last cycle report.
type Data struct {
	db *gorm.DB
}

func NewDataRepository(db *gorm.DB) *Data {
	return &Data{db: db}
}

func (repo *Data) Save(ctx context.Context, id string, data []byte) error {
	err := repo.db.WithContext(ctx).Save(&entities.StoredValue{
		ID:    id,
		Value: data,
	}).Error
	return errors.Wrapf(err, "save value %s", id)
}

// Load returns nil without error when id is unknown.
func (repo *Data) Load(ctx context.Context, id string) ([]byte, error) {
	var values []entities.StoredValue
	err := repo.db.WithContext(ctx).Where("id = ?", id).Limit(1).Find(&values).Error
	if err != nil {
		return nil, errors.Wrapf(err, "load value %s", id)
	}
	if len(values) == 0 {
		return nil, nil
	}
	return values[0].Value, nil
}
