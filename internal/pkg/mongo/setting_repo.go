package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// settingVersion 共享计数器文档的固定主键
const settingVersion = "1.0"

// SettingModel 全局内部设置，单文档持有所有自增计数器
type SettingModel struct {
	Ver           string `bson:"ver" json:"ver"`
	CurrentUserID uint64 `bson:"current_user_id" json:"currentUserId"`
	CurrentPostID uint64 `bson:"current_post_id" json:"currentPostId"`
}

// SettingRepo 公开 ID 分配器
// FindOneAndUpdate + $inc 是整个系统里唯一依赖存储层原子性的位置：
// 并发分配绝不会读到同一个值
type SettingRepo interface {
	NextUserID(ctx context.Context) (uint64, error)
	NextPostID(ctx context.Context) (uint64, error)
}

type settingRepoImpl struct {
	col *mongo.Collection
}

func NewSettingRepo(db *mongo.Database) SettingRepo {
	return &settingRepoImpl{
		col: db.Collection("internal_settings"),
	}
}

func (s *settingRepoImpl) next(ctx context.Context, counter string) (uint64, error) {
	filter := bson.M{"ver": settingVersion}
	update := bson.M{"$inc": bson.M{counter: 1}}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var doc SettingModel
	if err := s.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc); err != nil {
		return 0, err
	}
	switch counter {
	case "current_user_id":
		return doc.CurrentUserID, nil
	case "current_post_id":
		return doc.CurrentPostID, nil
	}
	return 0, nil
}

// NextUserID 原子递增并返回下一个用户公开 ID
func (s *settingRepoImpl) NextUserID(ctx context.Context) (uint64, error) {
	return s.next(ctx, "current_user_id")
}

// NextPostID 原子递增并返回下一个帖子公开 ID
func (s *settingRepoImpl) NextPostID(ctx context.Context) (uint64, error) {
	return s.next(ctx, "current_post_id")
}
