package service

import (
	"Skylark/internal/model"
	"Skylark/internal/pkg/consts"
	"Skylark/internal/pkg/mongo"
	"Skylark/internal/pkg/redis"
	"Skylark/internal/repository"
	"context"
	"strconv"
	"time"

	log "log/slog"
)

const countCacheTTL = time.Hour

type RelationService interface {
	Follow(ctx context.Context, actorID, targetID uint64) (*ActionResult, error)
	Unfollow(ctx context.Context, actorID, targetID uint64) (*ActionResult, error)
	IsFollowing(ctx context.Context, actorID, targetID uint64) (bool, error)
	GetFollowers(ctx context.Context, userID uint64, page int) ([]*model.User, error)
	GetFriends(ctx context.Context, userID uint64, page int) ([]*model.User, error)
	GetFollowerCount(ctx context.Context, userID uint64) (int64, error)
	GetFriendCount(ctx context.Context, userID uint64) (int64, error)
}

type RelationServiceImpl struct {
	userRepo        repository.UserRepo
	friendshipRepo  mongo.FriendshipRepo
	timelineService TimelineService
	notifier        Notifier
}

func NewRelationService(
	userRepo repository.UserRepo,
	friendshipRepo mongo.FriendshipRepo,
	timelineService TimelineService,
	notifier Notifier,
) RelationService {
	return &RelationServiceImpl{
		userRepo:        userRepo,
		friendshipRepo:  friendshipRepo,
		timelineService: timelineService,
		notifier:        notifier,
	}
}

// Follow 建立关注关系
// 先做成员检查再逐步落盘，任何一步重放都是空操作，重复请求返回未修改
func (s *RelationServiceImpl) Follow(ctx context.Context, actorID, targetID uint64) (*ActionResult, error) {
	if actorID == targetID {
		return nil, ErrUserFollowSelf
	}
	if err := s.checkBothExist(ctx, actorID, targetID); err != nil {
		return nil, err
	}

	already, err := s.friendshipRepo.IsFollowing(ctx, actorID, targetID)
	if err != nil {
		return nil, err
	}
	if already {
		return actionNoop, nil
	}

	if err = s.friendshipRepo.AddFriend(ctx, actorID, targetID); err != nil {
		return nil, err
	}
	if err = s.friendshipRepo.AddFollower(ctx, targetID, actorID); err != nil {
		return nil, err
	}

	if err = s.userRepo.IncrFriendsCount(ctx, actorID, 1); err != nil {
		return nil, err
	}
	if err = s.userRepo.IncrFollowersCount(ctx, targetID, 1); err != nil {
		return nil, err
	}
	s.invalidateCounts(ctx, actorID, targetID)

	// 时间线回填失败只记录日志，关注关系本身已经成立
	if err = s.timelineService.BackfillFromAuthor(ctx, actorID, targetID); err != nil {
		log.ErrorContext(ctx, "backfill timeline after follow failed",
			"actor_id", actorID, "target_id", targetID, "err", err)
	}

	s.notifier.Notify(&NotificationEvent{
		ReceiverID: targetID,
		ActorID:    actorID,
		Type:       consts.NotificationFollowed,
	})
	return actionApplied, nil
}

// Unfollow 解除关注关系，未关注时返回未修改
func (s *RelationServiceImpl) Unfollow(ctx context.Context, actorID, targetID uint64) (*ActionResult, error) {
	if actorID == targetID {
		return nil, ErrUserFollowSelf
	}
	if err := s.checkBothExist(ctx, actorID, targetID); err != nil {
		return nil, err
	}

	following, err := s.friendshipRepo.IsFollowing(ctx, actorID, targetID)
	if err != nil {
		return nil, err
	}
	if !following {
		return actionNoop, nil
	}

	if err = s.friendshipRepo.RemoveFriend(ctx, actorID, targetID); err != nil {
		return nil, err
	}
	if err = s.friendshipRepo.RemoveFollower(ctx, targetID, actorID); err != nil {
		return nil, err
	}

	if err = s.userRepo.IncrFriendsCount(ctx, actorID, -1); err != nil {
		return nil, err
	}
	if err = s.userRepo.IncrFollowersCount(ctx, targetID, -1); err != nil {
		return nil, err
	}
	s.invalidateCounts(ctx, actorID, targetID)

	if err = s.timelineService.RemoveAuthorPosts(ctx, actorID, targetID); err != nil {
		log.ErrorContext(ctx, "clean timeline after unfollow failed",
			"actor_id", actorID, "target_id", targetID, "err", err)
	}

	s.notifier.Notify(&NotificationEvent{
		ReceiverID: targetID,
		ActorID:    actorID,
		Type:       consts.NotificationUnfollowed,
	})
	return actionApplied, nil
}

func (s *RelationServiceImpl) IsFollowing(ctx context.Context, actorID, targetID uint64) (bool, error) {
	return s.friendshipRepo.IsFollowing(ctx, actorID, targetID)
}

// GetFollowers 分页获取粉丝，最近关注的在前
func (s *RelationServiceImpl) GetFollowers(ctx context.Context, userID uint64, page int) ([]*model.User, error) {
	return s.getRelationPage(ctx, userID, page, s.friendshipRepo.GetFollowerIDs)
}

// GetFriends 分页获取关注列表
func (s *RelationServiceImpl) GetFriends(ctx context.Context, userID uint64, page int) ([]*model.User, error) {
	return s.getRelationPage(ctx, userID, page, s.friendshipRepo.GetFriendIDs)
}

func (s *RelationServiceImpl) GetFollowerCount(ctx context.Context, userID uint64) (int64, error) {
	return s.getCountCommon(ctx, userID, consts.UserFollowerCountKey, func(u *model.User) int64 {
		return u.FollowersCount
	})
}

func (s *RelationServiceImpl) GetFriendCount(ctx context.Context, userID uint64) (int64, error) {
	return s.getCountCommon(ctx, userID, consts.UserFriendCountKey, func(u *model.User) int64 {
		return u.FriendsCount
	})
}

type fetchIDsFunc func(ctx context.Context, userID uint64, limit, offset int) ([]uint64, error)

func (s *RelationServiceImpl) getRelationPage(ctx context.Context, userID uint64, page int, fetch fetchIDsFunc) ([]*model.User, error) {
	user, err := s.userRepo.GetUserById(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if page < 1 {
		page = 1
	}
	offset := consts.RelationPageSize * (page - 1)

	ids, err := fetch(ctx, userID, consts.RelationPageSize, offset)
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

	// 按列表顺序回排
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

func (s *RelationServiceImpl) getCountCommon(ctx context.Context, userID uint64, keyPrefix string, pick func(*model.User) int64) (int64, error) {
	key := keyPrefix + strconv.FormatUint(userID, 10)
	if cached, err := redis.GetInt64(ctx, key); err == nil {
		return cached, nil
	}

	user, err := s.userRepo.GetUserById(ctx, userID)
	if err != nil {
		return 0, err
	}
	if user == nil {
		return 0, ErrUserNotFound
	}

	count := pick(user)
	if err = redis.SetWithExpiration(ctx, key, count, countCacheTTL); err != nil {
		log.DebugContext(ctx, "cache relation count failed", "key", key, "err", err)
	}
	return count, nil
}

func (s *RelationServiceImpl) checkBothExist(ctx context.Context, actorID, targetID uint64) error {
	for _, id := range []uint64{actorID, targetID} {
		user, err := s.userRepo.GetUserById(ctx, id)
		if err != nil {
			return err
		}
		if user == nil {
			return ErrUserNotFound
		}
	}
	return nil
}

func (s *RelationServiceImpl) invalidateCounts(ctx context.Context, actorID, targetID uint64) {
	keys := []string{
		consts.UserFriendCountKey + strconv.FormatUint(actorID, 10),
		consts.UserFollowerCountKey + strconv.FormatUint(targetID, 10),
	}
	for _, key := range keys {
		if err := redis.DeleteKey(ctx, key); err != nil {
			log.DebugContext(ctx, "invalidate relation count cache failed", "key", key, "err", err)
		}
	}
}
