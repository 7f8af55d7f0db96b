package repositories

import (
	"context"
	"github.com/maxaizer/job-radar/internal/entities"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SeenJobs struct {
	db *gorm.DB
}

func NewSeenJobsRepository(db *gorm.DB) *SeenJobs {
	return &SeenJobs{db: db}
}

func (repo *SeenJobs) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	err := repo.db.WithContext(ctx).
		Model(&entities.SeenJob{}).
		Where("job_id = ?", id).
		Count(&count).Error
	if err != nil {
		return false, errors.Wrapf(err, "check seen job %s", id)
	}
	return count > 0, nil
}

// Insert stores job once. A second insert of the same identity is a no-op and reports false.
func (repo *SeenJobs) Insert(ctx context.Context, job entities.SeenJob) (bool, error) {
	res := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&job)
	if res.Error != nil {
		return false, errors.Wrapf(res.Error, "insert seen job %s", job.JobID)
	}
	return res.RowsAffected > 0, nil
}

// ListAll returns stored jobs, most recently discovered first. A non-positive limit means no limit.
func (repo *SeenJobs) ListAll(ctx context.Context, limit int) ([]entities.SeenJob, error) {
	var jobs []entities.SeenJob

	query := repo.db.WithContext(ctx).
		Order("notified_at DESC").
		Order("days_ago ASC").
		Order("job_id ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&jobs).Error; err != nil {
		return nil, errors.Wrap(err, "list seen jobs")
	}
	return jobs, nil
}

func (repo *SeenJobs) Count(ctx context.Context) (int64, error) {
	var count int64
	err := repo.db.WithContext(ctx).Model(&entities.SeenJob{}).Count(&count).Error
	return count, errors.Wrap(err, "count seen jobs")
}
