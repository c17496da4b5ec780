package service

import (
	"Skylark/internal/model"
	"Skylark/internal/pkg/consts"
	"Skylark/internal/pkg/mongo"
	"Skylark/internal/repository"
	"context"
	"time"
)

type TimelineService interface {
	FanoutPost(ctx context.Context, post *model.Post) error
	WithdrawPost(ctx context.Context, postID uint64) error
	BackfillFromAuthor(ctx context.Context, ownerID, authorID uint64) error
	RemoveAuthorPosts(ctx context.Context, ownerID, authorID uint64) error
	GetHomeTimeline(ctx context.Context, userID uint64, page int) ([]*model.Post, error)
}

type TimelineServiceImpl struct {
	timelineRepo   mongo.TimelineRepo
	friendshipRepo mongo.FriendshipRepo
	postRepo       repository.PostRepo
}

func NewTimelineService(
	timelineRepo mongo.TimelineRepo,
	friendshipRepo mongo.FriendshipRepo,
	postRepo repository.PostRepo,
) TimelineService {
	return &TimelineServiceImpl{
		timelineRepo:   timelineRepo,
		friendshipRepo: friendshipRepo,
		postRepo:       postRepo,
	}
}

// FanoutPost 把新帖子的引用写入作者本人及全部粉丝的时间线
func (s *TimelineServiceImpl) FanoutPost(ctx context.Context, post *model.Post) error {
	followerIDs, err := s.friendshipRepo.GetAllFollowerIDs(ctx, post.UserID)
	if err != nil {
		return err
	}

	entry := mongo.TimelineEntry{
		PostID:     post.ID,
		AuthorID:   post.UserID,
		PostedAt:   post.CreatedAt,
		InsertedAt: time.Now(),
	}

	owners := append([]uint64{post.UserID}, followerIDs...)
	for _, ownerID := range owners {
		if err = s.timelineRepo.AddEntries(ctx, ownerID, []mongo.TimelineEntry{entry}); err != nil {
			return err
		}
	}
	return nil
}

// WithdrawPost 帖子删除后从所有时间线撤下引用
func (s *TimelineServiceImpl) WithdrawPost(ctx context.Context, postID uint64) error {
	return s.timelineRepo.RemovePostEverywhere(ctx, postID)
}

// BackfillFromAuthor 关注之后把被关注者的近期帖子回填到关注者的时间线
func (s *TimelineServiceImpl) BackfillFromAuthor(ctx context.Context, ownerID, authorID uint64) error {
	posts, err := s.postRepo.GetPostsByAuthor(ctx, authorID, consts.FanoutBackfillSize, 0)
	if err != nil {
		return err
	}
	if len(posts) == 0 {
		return nil
	}

	now := time.Now()
	entries := make([]mongo.TimelineEntry, 0, len(posts))
	for _, p := range posts {
		entries = append(entries, mongo.TimelineEntry{
			PostID:     p.ID,
			AuthorID:   p.UserID,
			PostedAt:   p.CreatedAt,
			InsertedAt: now,
		})
	}
	return s.timelineRepo.AddEntries(ctx, ownerID, entries)
}

// RemoveAuthorPosts 取关之后把被取关者的全部帖子从时间线上撤下
func (s *TimelineServiceImpl) RemoveAuthorPosts(ctx context.Context, ownerID, authorID uint64) error {
	return s.timelineRepo.RemoveByAuthor(ctx, ownerID, authorID)
}

// GetHomeTimeline 分页读取首页时间线，按发帖时间降序
func (s *TimelineServiceImpl) GetHomeTimeline(ctx context.Context, userID uint64, page int) ([]*model.Post, error) {
	if page < 1 {
		page = 1
	}
	offset := consts.TimelinePageSize * (page - 1)

	entries, err := s.timelineRepo.GetEntries(ctx, userID, consts.TimelinePageSize, offset)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return []*model.Post{}, nil
	}

	ids := make([]uint64, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.PostID)
	}
	posts, err := s.postRepo.GetPostByIds(ctx, ids)
	if err != nil {
		return nil, err
	}

	// 按时间线顺序回排，过滤已删除的帖子
	byID := make(map[uint64]*model.Post, len(posts))
	for _, p := range posts {
		byID[p.ID] = p
	}
	ordered := make([]*model.Post, 0, len(entries))
	for _, e := range entries {
		if p, ok := byID[e.PostID]; ok {
			ordered = append(ordered, p)
		}
	}
	return ordered, nil
}
