package repository

import (
	"Skylark/internal/model"
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type HashtagRepo interface {
	IncrementVolume(ctx context.Context, name string) error
	GetAll(ctx context.Context) ([]*model.Hashtag, error)
	UpdateScore(ctx context.Context, id uint64, score float64) error
	GetTop(ctx context.Context, limit int) ([]*model.Hashtag, error)
}

type HashtagRepoImpl struct {
	db *gorm.DB
}

func NewHashtagRepo(db *gorm.DB) HashtagRepo {
	return &HashtagRepoImpl{db: db}
}

// IncrementVolume 话题计数 +1，不存在则新建
// updated_at 一并刷新，作为热度衰减的起点
func (s *HashtagRepoImpl) IncrementVolume(ctx context.Context, name string) error {
	tag := &model.Hashtag{Name: name, Volume: 1}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "name"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"volume":     gorm.Expr("volume + 1"),
				"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
			}),
		}).
		Create(tag).Error
}

func (s *HashtagRepoImpl) GetAll(ctx context.Context) ([]*model.Hashtag, error) {
	tags := make([]*model.Hashtag, 0)
	result := s.db.WithContext(ctx).Find(&tags)
	if result.Error != nil {
		return nil, result.Error
	}
	return tags, nil
}

// UpdateScore 只写评分列，不触碰 updated_at，避免打分本身重置衰减时钟
func (s *HashtagRepoImpl) UpdateScore(ctx context.Context, id uint64, score float64) error {
	return s.db.WithContext(ctx).
		Model(&model.Hashtag{}).
		Where("id = ?", id).
		UpdateColumn("score", score).Error
}

// GetTop 按评分取前 N 个话题，评分相同时帖子量大者在前
func (s *HashtagRepoImpl) GetTop(ctx context.Context, limit int) ([]*model.Hashtag, error) {
	tags := make([]*model.Hashtag, 0)
	result := s.db.WithContext(ctx).
		Where("volume > 0").
		Order("score DESC, volume DESC").
		Limit(limit).
		Find(&tags)
	if result.Error != nil {
		return nil, result.Error
	}
	return tags, nil
}
