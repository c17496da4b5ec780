package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type TimelineRepo interface {
	EnsureTimeline(ctx context.Context, userID uint64) error
	AddEntries(ctx context.Context, ownerID uint64, entries []TimelineEntry) error
	RemoveByAuthor(ctx context.Context, ownerID, authorID uint64) error
	RemovePostEverywhere(ctx context.Context, postID uint64) error
	GetEntries(ctx context.Context, ownerID uint64, limit, offset int) ([]TimelineEntry, error)
}

type timelineRepoImpl struct {
	col *mongo.Collection
}

func NewTimelineRepo(db *mongo.Database) TimelineRepo {
	return &timelineRepoImpl{
		col: db.Collection("home_timelines"),
	}
}

// EnsureTimeline 为用户建立空时间线文档，已存在则不动
func (s *timelineRepoImpl) EnsureTimeline(ctx context.Context, userID uint64) error {
	filter := bson.M{"user_id": userID}
	update := bson.M{"$setOnInsert": bson.M{"posts": []TimelineEntry{}}}
	_, err := s.col.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

// AddEntries 批量插入帖子引用并按发帖时间降序整理
// 以 (owner, post_id) 去重：已有的引用会被过滤掉，重复扇出不产生重复条目
func (s *timelineRepoImpl) AddEntries(ctx context.Context, ownerID uint64, entries []TimelineEntry) error {
	if len(entries) == 0 {
		return nil
	}

	existing, err := s.existingPostIDs(ctx, ownerID)
	if err != nil {
		return err
	}

	fresh := make([]TimelineEntry, 0, len(entries))
	for _, e := range entries {
		if _, ok := existing[e.PostID]; ok {
			continue
		}
		fresh = append(fresh, e)
	}
	if len(fresh) == 0 {
		return nil
	}

	filter := bson.M{"user_id": ownerID}
	update := bson.M{"$push": bson.M{
		"posts": bson.M{
			"$each": fresh,
			"$sort": bson.M{"posted_at": -1},
		},
	}}
	_, err = s.col.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

// RemoveByAuthor 把某作者的全部帖子引用从时间线上撤下；重复执行为空操作
func (s *timelineRepoImpl) RemoveByAuthor(ctx context.Context, ownerID, authorID uint64) error {
	filter := bson.M{"user_id": ownerID}
	update := bson.M{"$pull": bson.M{"posts": bson.M{"author_id": authorID}}}
	_, err := s.col.UpdateOne(ctx, filter, update)
	return err
}

// RemovePostEverywhere 帖子删除后从所有时间线撤下该帖子的引用
func (s *timelineRepoImpl) RemovePostEverywhere(ctx context.Context, postID uint64) error {
	update := bson.M{"$pull": bson.M{"posts": bson.M{"post_id": postID}}}
	_, err := s.col.UpdateMany(ctx, bson.M{}, update)
	return err
}

// GetEntries 通过 $slice 投影分页读取时间线
func (s *timelineRepoImpl) GetEntries(ctx context.Context, ownerID uint64, limit, offset int) ([]TimelineEntry, error) {
	opts := options.FindOne().SetProjection(bson.M{
		"posts": bson.M{"$slice": []int{offset, limit}},
	})
	var doc TimelineModel
	err := s.col.FindOne(ctx, bson.M{"user_id": ownerID}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return []TimelineEntry{}, nil
		}
		return nil, err
	}
	return doc.Posts, nil
}

func (s *timelineRepoImpl) existingPostIDs(ctx context.Context, ownerID uint64) (map[uint64]struct{}, error) {
	opts := options.FindOne().SetProjection(bson.M{"posts.post_id": 1})
	var doc TimelineModel
	err := s.col.FindOne(ctx, bson.M{"user_id": ownerID}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return map[uint64]struct{}{}, nil
		}
		return nil, err
	}
	ids := make(map[uint64]struct{}, len(doc.Posts))
	for _, e := range doc.Posts {
		ids[e.PostID] = struct{}{}
	}
	return ids, nil
}
