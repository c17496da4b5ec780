package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type TrendRepo interface {
	EnsureLocation(ctx context.Context, woeid int, location string) error
	ReplaceTrends(ctx context.Context, woeid int, trends []TrendEntry, asOf time.Time) error
	GetByWOEID(ctx context.Context, woeid int) (*TrendModel, error)
}

type trendRepoImpl struct {
	col *mongo.Collection
}

func NewTrendRepo(db *mongo.Database) TrendRepo {
	return &trendRepoImpl{
		col: db.Collection("trends"),
	}
}

// EnsureLocation 确保地区榜单行存在，首轮写入前调用
func (s *trendRepoImpl) EnsureLocation(ctx context.Context, woeid int, location string) error {
	filter := bson.M{"woeid": woeid}
	update := bson.M{"$setOnInsert": bson.M{
		"location":   location,
		"trends":     []TrendEntry{},
		"created_at": time.Now(),
	}}
	_, err := s.col.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

// ReplaceTrends 整体替换榜单内容并刷新 as_of，不做增量合并
func (s *trendRepoImpl) ReplaceTrends(ctx context.Context, woeid int, trends []TrendEntry, asOf time.Time) error {
	filter := bson.M{"woeid": woeid}
	update := bson.M{"$set": bson.M{"trends": trends, "as_of": asOf}}
	_, err := s.col.UpdateOne(ctx, filter, update)
	return err
}

// GetByWOEID 读取某地区当前榜单
func (s *trendRepoImpl) GetByWOEID(ctx context.Context, woeid int) (*TrendModel, error) {
	var doc TrendModel
	err := s.col.FindOne(ctx, bson.M{"woeid": woeid}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &doc, nil
}
