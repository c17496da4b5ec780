package repository

import (
	"Skylark/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

type PostRepo interface {
	CreatePost(ctx context.Context, post *model.Post) error
	GetPostById(ctx context.Context, id uint64) (*model.Post, error)
	GetPostByIds(ctx context.Context, ids []uint64) ([]*model.Post, error)
	GetPostByPublicID(ctx context.Context, publicID uint64) (*model.Post, error)
	GetPostsByAuthor(ctx context.Context, userID uint64, limit, offset int) ([]*model.Post, error)
	FindRepostOf(ctx context.Context, userID uint64, repostOfID uint64) (*model.Post, error)
	SetPublicID(ctx context.Context, id uint64, publicID uint64) error
	SoftDeletePost(ctx context.Context, id uint64) error
}

type PostRepoImpl struct {
	db *gorm.DB
}

func NewPostRepo(db *gorm.DB) PostRepo {
	return &PostRepoImpl{db: db}
}

func (s *PostRepoImpl) CreatePost(ctx context.Context, post *model.Post) error {
	return s.db.WithContext(ctx).Create(post).Error
}

func (s *PostRepoImpl) GetPostById(ctx context.Context, id uint64) (*model.Post, error) {
	post := &model.Post{}
	result := s.db.WithContext(ctx).
		Where("is_deleted = 0").
		First(post, id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	return post, nil
}

func (s *PostRepoImpl) GetPostByIds(ctx context.Context, ids []uint64) ([]*model.Post, error) {
	posts := make([]*model.Post, 0)
	result := s.db.WithContext(ctx).
		Where("id IN ? AND is_deleted = 0", ids).
		Find(&posts)
	if result.Error != nil {
		return nil, result.Error
	}
	return posts, nil
}

func (s *PostRepoImpl) GetPostByPublicID(ctx context.Context, publicID uint64) (*model.Post, error) {
	post := &model.Post{}
	result := s.db.WithContext(ctx).
		Where("public_id = ? AND is_deleted = 0", publicID).
		First(post)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	return post, nil
}

func (s *PostRepoImpl) GetPostsByAuthor(ctx context.Context, userID uint64, limit, offset int) ([]*model.Post, error) {
	posts := make([]*model.Post, 0)
	result := s.db.WithContext(ctx).
		Where("user_id = ? AND is_deleted = 0", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts)
	if result.Error != nil {
		return nil, result.Error
	}
	return posts, nil
}

// FindRepostOf 查找某用户针对某帖的转发帖，撤销转发时用于定位待删除的帖子
func (s *PostRepoImpl) FindRepostOf(ctx context.Context, userID uint64, repostOfID uint64) (*model.Post, error) {
	post := &model.Post{}
	result := s.db.WithContext(ctx).
		Where("user_id = ? AND repost_of_id = ? AND is_deleted = 0", userID, repostOfID).
		First(post)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	return post, nil
}

// SetPublicID 回填对外编号，仅在尚未回填时生效
func (s *PostRepoImpl) SetPublicID(ctx context.Context, id uint64, publicID uint64) error {
	return s.db.WithContext(ctx).
		Model(&model.Post{}).
		Where("id = ? AND public_id IS NULL", id).
		Update("public_id", publicID).Error
}

func (s *PostRepoImpl) SoftDeletePost(ctx context.Context, id uint64) error {
	return s.db.WithContext(ctx).
		Model(&model.Post{}).
		Where("id = ?", id).
		Update("is_deleted", true).Error
}
