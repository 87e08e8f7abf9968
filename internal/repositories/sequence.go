package repositories

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/models"
)

// SequenceRepository issues human-readable document numbers
type SequenceRepository interface {
	Next(ctx context.Context, name string) (int64, error)
	NextNumber(ctx context.Context, name string) (string, error)
}

type sequenceRepository struct {
	db *gorm.DB
}

// NewSequenceRepository creates a new sequence repository
func NewSequenceRepository(db *gorm.DB) SequenceRepository {
	return &sequenceRepository{db: db}
}

// Next increments the named counter in place and returns the new value
func (r *sequenceRepository) Next(ctx context.Context, name string) (int64, error) {
	var seq models.Sequence
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&models.Sequence{Name: name, Value: models.SequenceStart}).Error
		if err != nil {
			return err
		}
		err = tx.Model(&models.Sequence{}).
			Where("name = ?", name).
			Update("value", gorm.Expr("value + 1")).Error
		if err != nil {
			return err
		}
		return tx.Where("name = ?", name).First(&seq).Error
	})
	if err != nil {
		return 0, translate(err)
	}
	return seq.Value, nil
}

// NextNumber formats the next value as PREFIX-N
func (r *sequenceRepository) NextNumber(ctx context.Context, name string) (string, error) {
	n, err := r.Next(ctx, name)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%d", name, n), nil
}
