package service

import (
	"Skylark/internal/model"
	"Skylark/internal/pkg/consts"
	"Skylark/internal/pkg/mongo"
	"Skylark/internal/pkg/redis"
	"Skylark/internal/repository"
	"context"
	"strconv"

	log "log/slog"
)

type EngagementService interface {
	Like(ctx context.Context, userID, postID uint64) (*ActionResult, error)
	Unlike(ctx context.Context, userID, postID uint64) (*ActionResult, error)
	HasLiked(ctx context.Context, userID, postID uint64) (bool, error)
	GetLikeCount(ctx context.Context, postID uint64) (int64, error)
	GetLikers(ctx context.Context, postID uint64, page int) ([]*model.User, error)
	GetReposters(ctx context.Context, postID uint64, page int) ([]*model.User, error)
	GetReplies(ctx context.Context, postID uint64, page int) ([]*model.Post, error)
}

type EngagementServiceImpl struct {
	userRepo       repository.UserRepo
	postRepo       repository.PostRepo
	friendshipRepo mongo.FriendshipRepo
	engagementRepo mongo.EngagementRepo
}

func NewEngagementService(
	userRepo repository.UserRepo,
	postRepo repository.PostRepo,
	friendshipRepo mongo.FriendshipRepo,
	engagementRepo mongo.EngagementRepo,
) EngagementService {
	return &EngagementServiceImpl{
		userRepo:       userRepo,
		postRepo:       postRepo,
		friendshipRepo: friendshipRepo,
		engagementRepo: engagementRepo,
	}
}

// Like 点赞
// 用户侧与帖子侧各记一笔，先查成员再写入，重复请求返回未修改
func (s *EngagementServiceImpl) Like(ctx context.Context, userID, postID uint64) (*ActionResult, error) {
	post, err := s.mustGetPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	liked, err := s.friendshipRepo.HasLiked(ctx, userID, postID)
	if err != nil {
		return nil, err
	}
	if liked {
		return actionNoop, nil
	}

	if err = s.friendshipRepo.AddLiked(ctx, userID, postID); err != nil {
		return nil, err
	}
	if err = s.engagementRepo.RecordLike(ctx, post.ID, userID); err != nil {
		return nil, err
	}
	if err = s.userRepo.IncrFavouritesCount(ctx, userID, 1); err != nil {
		return nil, err
	}
	s.invalidateLikeCount(ctx, postID)
	return actionApplied, nil
}

// Unlike 取消点赞，未点赞过返回未修改
func (s *EngagementServiceImpl) Unlike(ctx context.Context, userID, postID uint64) (*ActionResult, error) {
	post, err := s.mustGetPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	liked, err := s.friendshipRepo.HasLiked(ctx, userID, postID)
	if err != nil {
		return nil, err
	}
	if !liked {
		return actionNoop, nil
	}

	if err = s.friendshipRepo.RemoveLiked(ctx, userID, postID); err != nil {
		return nil, err
	}
	if err = s.engagementRepo.RecordUnlike(ctx, post.ID, userID); err != nil {
		return nil, err
	}
	if err = s.userRepo.IncrFavouritesCount(ctx, userID, -1); err != nil {
		return nil, err
	}
	s.invalidateLikeCount(ctx, postID)
	return actionApplied, nil
}

func (s *EngagementServiceImpl) HasLiked(ctx context.Context, userID, postID uint64) (bool, error) {
	return s.friendshipRepo.HasLiked(ctx, userID, postID)
}

func (s *EngagementServiceImpl) GetLikeCount(ctx context.Context, postID uint64) (int64, error) {
	key := consts.PostLikerCountKey + strconv.FormatUint(postID, 10)
	if cached, err := redis.GetInt64(ctx, key); err == nil {
		return cached, nil
	}

	count, err := s.engagementRepo.CountLikers(ctx, postID)
	if err != nil {
		return 0, err
	}
	if err = redis.SetWithExpiration(ctx, key, count, countCacheTTL); err != nil {
		log.DebugContext(ctx, "cache like count failed", "key", key, "err", err)
	}
	return count, nil
}

// GetLikers 分页获取点赞用户，最近点赞的在前
func (s *EngagementServiceImpl) GetLikers(ctx context.Context, postID uint64, page int) ([]*model.User, error) {
	return s.getUserPage(ctx, postID, page, s.engagementRepo.GetLikers)
}

// GetReposters 分页获取转发用户
func (s *EngagementServiceImpl) GetReposters(ctx context.Context, postID uint64, page int) ([]*model.User, error) {
	return s.getUserPage(ctx, postID, page, s.engagementRepo.GetReposters)
}

// GetReplies 分页获取回复帖，最近回复的在前
func (s *EngagementServiceImpl) GetReplies(ctx context.Context, postID uint64, page int) ([]*model.Post, error) {
	if _, err := s.mustGetPost(ctx, postID); err != nil {
		return nil, err
	}

	ids, err := s.engagementRepo.GetReplies(ctx, postID, consts.EngagementPageSize, pageOffset(page))
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []*model.Post{}, nil
	}

	posts, err := s.postRepo.GetPostByIds(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint64]*model.Post, len(posts))
	for _, p := range posts {
		byID[p.ID] = p
	}
	ordered := make([]*model.Post, 0, len(ids))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			ordered = append(ordered, p)
		}
	}
	return ordered, nil
}

func (s *EngagementServiceImpl) getUserPage(ctx context.Context, postID uint64, page int, fetch fetchIDsFunc) ([]*model.User, error) {
	if _, err := s.mustGetPost(ctx, postID); err != nil {
		return nil, err
	}

	ids, err := fetch(ctx, postID, consts.EngagementPageSize, pageOffset(page))
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []*model.User{}, nil
	}

	users, err := s.userRepo.GetUserByIds(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint64]*model.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	ordered := make([]*model.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := byID[id]; ok {
			ordered = append(ordered, u)
		}
	}
	return ordered, nil
}

func (s *EngagementServiceImpl) mustGetPost(ctx context.Context, postID uint64) (*model.Post, error) {
	post, err := s.postRepo.GetPostById(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	return post, nil
}

func (s *EngagementServiceImpl) invalidateLikeCount(ctx context.Context, postID uint64) {
	key := consts.PostLikerCountKey + strconv.FormatUint(postID, 10)
	if err := redis.DeleteKey(ctx, key); err != nil {
		log.DebugContext(ctx, "invalidate like count cache failed", "key", key, "err", err)
	}
}

func pageOffset(page int) int {
	if page < 1 {
		page = 1
	}
	return consts.EngagementPageSize * (page - 1)
}
