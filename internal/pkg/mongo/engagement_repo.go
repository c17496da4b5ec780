package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type EngagementRepo interface {
	EnsureRecord(ctx context.Context, postID uint64) error

	RecordLike(ctx context.Context, postID, userID uint64) error
	RecordUnlike(ctx context.Context, postID, userID uint64) error
	RecordRepost(ctx context.Context, postID, userID uint64) error
	RecordUnrepost(ctx context.Context, postID, userID uint64) error
	RecordReply(ctx context.Context, parentPostID, childPostID uint64) error

	CountLikers(ctx context.Context, postID uint64) (int64, error)
	GetLikers(ctx context.Context, postID uint64, limit, offset int) ([]uint64, error)
	GetReposters(ctx context.Context, postID uint64, limit, offset int) ([]uint64, error)
	GetReplies(ctx context.Context, postID uint64, limit, offset int) ([]uint64, error)
}

type engagementRepoImpl struct {
	col *mongo.Collection
}

func NewEngagementRepo(db *mongo.Database) EngagementRepo {
	return &engagementRepoImpl{
		col: db.Collection("post_engagements"),
	}
}

// EnsureRecord 建立空的互动文档，已存在则不动
func (s *engagementRepoImpl) EnsureRecord(ctx context.Context, postID uint64) error {
	filter := bson.M{"post_id": postID}
	update := bson.M{"$setOnInsert": bson.M{
		fieldLikedBy:      []uint64{},
		fieldRepostedBy:   []uint64{},
		fieldReplyPostIDs: []uint64{},
	}}
	_, err := s.col.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

// record 头部插入成员，文档不存在时先按需建档；成员已在时为空操作
func (s *engagementRepoImpl) record(ctx context.Context, postID uint64, field string, member uint64) error {
	if err := s.EnsureRecord(ctx, postID); err != nil {
		return err
	}
	filter := bson.M{"post_id": postID, field: bson.M{"$ne": member}}
	update := bson.M{"$push": bson.M{
		field: bson.M{"$each": []uint64{member}, "$position": 0},
	}}
	_, err := s.col.UpdateOne(ctx, filter, update)
	return err
}

// erase 移除成员，文档或成员不存在时为空操作
func (s *engagementRepoImpl) erase(ctx context.Context, postID uint64, field string, member uint64) error {
	filter := bson.M{"post_id": postID}
	update := bson.M{"$pull": bson.M{field: member}}
	_, err := s.col.UpdateOne(ctx, filter, update)
	return err
}

func (s *engagementRepoImpl) RecordLike(ctx context.Context, postID, userID uint64) error {
	return s.record(ctx, postID, fieldLikedBy, userID)
}

func (s *engagementRepoImpl) RecordUnlike(ctx context.Context, postID, userID uint64) error {
	return s.erase(ctx, postID, fieldLikedBy, userID)
}

func (s *engagementRepoImpl) RecordRepost(ctx context.Context, postID, userID uint64) error {
	return s.record(ctx, postID, fieldRepostedBy, userID)
}

func (s *engagementRepoImpl) RecordUnrepost(ctx context.Context, postID, userID uint64) error {
	return s.erase(ctx, postID, fieldRepostedBy, userID)
}

func (s *engagementRepoImpl) RecordReply(ctx context.Context, parentPostID, childPostID uint64) error {
	return s.record(ctx, parentPostID, fieldReplyPostIDs, childPostID)
}

// slicePage 通过 $slice 投影取数组的一页；越界或无文档返回空页
func (s *engagementRepoImpl) slicePage(ctx context.Context, postID uint64, field string, limit, offset int) ([]uint64, error) {
	opts := options.FindOne().SetProjection(bson.M{
		field: bson.M{"$slice": []int{offset, limit}},
	})
	var doc EngagementModel
	err := s.col.FindOne(ctx, bson.M{"post_id": postID}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return []uint64{}, nil
		}
		return nil, err
	}
	switch field {
	case fieldLikedBy:
		return doc.LikedBy, nil
	case fieldRepostedBy:
		return doc.RepostedBy, nil
	case fieldReplyPostIDs:
		return doc.ReplyPostIDs, nil
	}
	return []uint64{}, nil
}

// CountLikers 统计点赞人数，无文档时计 0
func (s *engagementRepoImpl) CountLikers(ctx context.Context, postID uint64) (int64, error) {
	pipeline := []bson.M{
		{"$match": bson.M{"post_id": postID}},
		{"$project": bson.M{"count": bson.M{"$size": "$" + fieldLikedBy}}},
	}
	cursor, err := s.col.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var rows []struct {
		Count int64 `bson:"count"`
	}
	if err = cursor.All(ctx, &rows); err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Count, nil
}

func (s *engagementRepoImpl) GetLikers(ctx context.Context, postID uint64, limit, offset int) ([]uint64, error) {
	return s.slicePage(ctx, postID, fieldLikedBy, limit, offset)
}

func (s *engagementRepoImpl) GetReposters(ctx context.Context, postID uint64, limit, offset int) ([]uint64, error) {
	return s.slicePage(ctx, postID, fieldRepostedBy, limit, offset)
}

func (s *engagementRepoImpl) GetReplies(ctx context.Context, postID uint64, limit, offset int) ([]uint64, error) {
	return s.slicePage(ctx, postID, fieldReplyPostIDs, limit, offset)
}
