package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type FriendshipRepo interface {
	EnsureRecord(ctx context.Context, userID uint64) error

	IsFollowing(ctx context.Context, userID, friendID uint64) (bool, error)
	IsFollowedBy(ctx context.Context, userID, followerID uint64) (bool, error)
	HasLiked(ctx context.Context, userID, postID uint64) (bool, error)
	HasReposted(ctx context.Context, userID, postID uint64) (bool, error)

	AddFriend(ctx context.Context, userID, friendID uint64) error
	RemoveFriend(ctx context.Context, userID, friendID uint64) error
	AddFollower(ctx context.Context, userID, followerID uint64) error
	RemoveFollower(ctx context.Context, userID, followerID uint64) error
	AddLiked(ctx context.Context, userID, postID uint64) error
	RemoveLiked(ctx context.Context, userID, postID uint64) error
	AddReposted(ctx context.Context, userID, postID uint64) error
	RemoveReposted(ctx context.Context, userID, postID uint64) error

	GetFollowerIDs(ctx context.Context, userID uint64, limit, offset int) ([]uint64, error)
	GetFriendIDs(ctx context.Context, userID uint64, limit, offset int) ([]uint64, error)
	GetAllFollowerIDs(ctx context.Context, userID uint64) ([]uint64, error)
}

type friendshipRepoImpl struct {
	col *mongo.Collection
}

func NewFriendshipRepo(db *mongo.Database) FriendshipRepo {
	return &friendshipRepoImpl{
		col: db.Collection("friendships"),
	}
}

// EnsureRecord 为用户建立空的社交图谱文档，已存在则不动
func (s *friendshipRepoImpl) EnsureRecord(ctx context.Context, userID uint64) error {
	filter := bson.M{"user_id": userID}
	update := bson.M{"$setOnInsert": bson.M{
		fieldFollowerIDs:   []uint64{},
		fieldFriendIDs:     []uint64{},
		fieldLikedPostIDs:  []uint64{},
		fieldRepostPostIDs: []uint64{},
	}}
	_, err := s.col.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

// exists 纯成员测试，无副作用
func (s *friendshipRepoImpl) exists(ctx context.Context, userID uint64, field string, member uint64) (bool, error) {
	count, err := s.col.CountDocuments(ctx, bson.M{"user_id": userID, field: member})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// pushFront 头部插入，成员已存在时 filter 不命中，天然幂等
func (s *friendshipRepoImpl) pushFront(ctx context.Context, userID uint64, field string, member uint64) error {
	filter := bson.M{"user_id": userID, field: bson.M{"$ne": member}}
	update := bson.M{"$push": bson.M{
		field: bson.M{"$each": []uint64{member}, "$position": 0},
	}}
	_, err := s.col.UpdateOne(ctx, filter, update)
	return err
}

// pull 移除成员，不存在时为空操作
func (s *friendshipRepoImpl) pull(ctx context.Context, userID uint64, field string, member uint64) error {
	filter := bson.M{"user_id": userID}
	update := bson.M{"$pull": bson.M{field: member}}
	_, err := s.col.UpdateOne(ctx, filter, update)
	return err
}

// IsFollowing 判断 userID 是否关注了 friendID
func (s *friendshipRepoImpl) IsFollowing(ctx context.Context, userID, friendID uint64) (bool, error) {
	return s.exists(ctx, userID, fieldFriendIDs, friendID)
}

// IsFollowedBy 判断 userID 是否被 followerID 关注
func (s *friendshipRepoImpl) IsFollowedBy(ctx context.Context, userID, followerID uint64) (bool, error) {
	return s.exists(ctx, userID, fieldFollowerIDs, followerID)
}

// HasLiked 判断用户是否点赞过帖子
func (s *friendshipRepoImpl) HasLiked(ctx context.Context, userID, postID uint64) (bool, error) {
	return s.exists(ctx, userID, fieldLikedPostIDs, postID)
}

// HasReposted 判断用户是否转发过帖子
func (s *friendshipRepoImpl) HasReposted(ctx context.Context, userID, postID uint64) (bool, error) {
	return s.exists(ctx, userID, fieldRepostPostIDs, postID)
}

func (s *friendshipRepoImpl) AddFriend(ctx context.Context, userID, friendID uint64) error {
	return s.pushFront(ctx, userID, fieldFriendIDs, friendID)
}

func (s *friendshipRepoImpl) RemoveFriend(ctx context.Context, userID, friendID uint64) error {
	return s.pull(ctx, userID, fieldFriendIDs, friendID)
}

func (s *friendshipRepoImpl) AddFollower(ctx context.Context, userID, followerID uint64) error {
	return s.pushFront(ctx, userID, fieldFollowerIDs, followerID)
}

func (s *friendshipRepoImpl) RemoveFollower(ctx context.Context, userID, followerID uint64) error {
	return s.pull(ctx, userID, fieldFollowerIDs, followerID)
}

func (s *friendshipRepoImpl) AddLiked(ctx context.Context, userID, postID uint64) error {
	return s.pushFront(ctx, userID, fieldLikedPostIDs, postID)
}

func (s *friendshipRepoImpl) RemoveLiked(ctx context.Context, userID, postID uint64) error {
	return s.pull(ctx, userID, fieldLikedPostIDs, postID)
}

func (s *friendshipRepoImpl) AddReposted(ctx context.Context, userID, postID uint64) error {
	return s.pushFront(ctx, userID, fieldRepostPostIDs, postID)
}

func (s *friendshipRepoImpl) RemoveReposted(ctx context.Context, userID, postID uint64) error {
	return s.pull(ctx, userID, fieldRepostPostIDs, postID)
}

// slicePage 通过 $slice 投影取数组的一页
func (s *friendshipRepoImpl) slicePage(ctx context.Context, userID uint64, field string, limit, offset int) ([]uint64, error) {
	opts := options.FindOne().SetProjection(bson.M{
		field: bson.M{"$slice": []int{offset, limit}},
	})
	var doc FriendshipModel
	err := s.col.FindOne(ctx, bson.M{"user_id": userID}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return []uint64{}, nil
		}
		return nil, err
	}
	switch field {
	case fieldFollowerIDs:
		return doc.FollowerIDs, nil
	case fieldFriendIDs:
		return doc.FriendIDs, nil
	}
	return []uint64{}, nil
}

// GetFollowerIDs 分页获取粉丝列表（最近关注的在前）
func (s *friendshipRepoImpl) GetFollowerIDs(ctx context.Context, userID uint64, limit, offset int) ([]uint64, error) {
	return s.slicePage(ctx, userID, fieldFollowerIDs, limit, offset)
}

// GetFriendIDs 分页获取关注列表
func (s *friendshipRepoImpl) GetFriendIDs(ctx context.Context, userID uint64, limit, offset int) ([]uint64, error) {
	return s.slicePage(ctx, userID, fieldFriendIDs, limit, offset)
}

// GetAllFollowerIDs 取全部粉丝 ID，发帖扇出时使用
func (s *friendshipRepoImpl) GetAllFollowerIDs(ctx context.Context, userID uint64) ([]uint64, error) {
	var doc FriendshipModel
	err := s.col.FindOne(ctx, bson.M{"user_id": userID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return []uint64{}, nil
		}
		return nil, err
	}
	return doc.FollowerIDs, nil
}
