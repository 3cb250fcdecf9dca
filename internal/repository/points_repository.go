package repository

import (
	"lms_backend/internal/model"

	"gorm.io/gorm"
)

type PointsRepository struct {
	DB *gorm.DB
}

func NewPointsRepository(db *gorm.DB) *PointsRepository {
	return &PointsRepository{DB: db}
}

// Create inserts one ledger entry. The unique Reference column turns a retried
// award into gorm.ErrDuplicatedKey, which callers treat as already-awarded.
func (r *PointsRepository) Create(tx *model.PointsTransaction) error {
	return r.DB.Create(tx).Error
}

func (r *PointsRepository) SumByUser(userID uint) (int64, error) {
	var sum int64
	err := r.DB.Model(&model.PointsTransaction{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(points), 0)").
		Scan(&sum).Error
	return sum, err
}

func (r *PointsRepository) ListByUser(userID uint, limit int) ([]model.PointsTransaction, error) {
	var txs []model.PointsTransaction
	err := r.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&txs).Error
	return txs, err
}
