package repository

import (
	"Skylark/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

type UserRepo interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserById(ctx context.Context, id uint64) (*model.User, error)
	GetUserByIds(ctx context.Context, ids []uint64) ([]*model.User, error)
	GetUserByScreenName(ctx context.Context, screenName string) (*model.User, error)
	SetPublicID(ctx context.Context, id uint64, publicID uint64) error
	IncrFollowersCount(ctx context.Context, id uint64, delta int64) error
	IncrFriendsCount(ctx context.Context, id uint64, delta int64) error
	IncrStatusesCount(ctx context.Context, id uint64, delta int64) error
	IncrFavouritesCount(ctx context.Context, id uint64, delta int64) error
	UpdateUser(ctx context.Context, user *model.User) error
}

type UserRepoImpl struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) UserRepo {
	return &UserRepoImpl{db: db}
}

func (s *UserRepoImpl) CreateUser(ctx context.Context, user *model.User) error {
	return s.db.WithContext(ctx).Create(user).Error
}

func (s *UserRepoImpl) GetUserById(ctx context.Context, id uint64) (*model.User, error) {
	user := &model.User{}
	result := s.db.WithContext(ctx).
		Where("is_deleted = 0").
		First(user, id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	return user, nil
}

func (s *UserRepoImpl) GetUserByIds(ctx context.Context, ids []uint64) ([]*model.User, error) {
	users := make([]*model.User, 0)
	result := s.db.WithContext(ctx).
		Where("id IN ? AND is_deleted = 0", ids).
		Find(&users)
	if result.Error != nil {
		return nil, result.Error
	}
	return users, nil
}

func (s *UserRepoImpl) GetUserByScreenName(ctx context.Context, screenName string) (*model.User, error) {
	user := &model.User{}
	result := s.db.WithContext(ctx).
		Where("screen_name = ? AND is_deleted = 0", screenName).
		First(user)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	return user, nil
}

// SetPublicID 回填对外编号，仅在尚未回填时生效，重复调用是空操作
func (s *UserRepoImpl) SetPublicID(ctx context.Context, id uint64, publicID uint64) error {
	return s.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ? AND public_id IS NULL", id).
		Update("public_id", publicID).Error
}

func (s *UserRepoImpl) IncrFollowersCount(ctx context.Context, id uint64, delta int64) error {
	return s.incrColumn(ctx, id, "followers_count", delta)
}

func (s *UserRepoImpl) IncrFriendsCount(ctx context.Context, id uint64, delta int64) error {
	return s.incrColumn(ctx, id, "friends_count", delta)
}

func (s *UserRepoImpl) IncrStatusesCount(ctx context.Context, id uint64, delta int64) error {
	return s.incrColumn(ctx, id, "statuses_count", delta)
}

func (s *UserRepoImpl) IncrFavouritesCount(ctx context.Context, id uint64, delta int64) error {
	return s.incrColumn(ctx, id, "favourites_count", delta)
}

func (s *UserRepoImpl) incrColumn(ctx context.Context, id uint64, column string, delta int64) error {
	return s.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", id).
		Update(column, gorm.Expr(column+" + ?", delta)).Error
}

func (s *UserRepoImpl) UpdateUser(ctx context.Context, user *model.User) error {
	return s.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", user.ID).
		Updates(map[string]interface{}{
			"name":     user.Name,
			"location": user.Location,
			"bio":      user.Bio,
		}).Error
}
