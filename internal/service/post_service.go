package service

import (
	"Skylark/internal/model"
	"Skylark/internal/pkg/consts"
	"Skylark/internal/pkg/mongo"
	"Skylark/internal/pkg/redis"
	"Skylark/internal/pkg/util"
	"Skylark/internal/repository"
	"context"
	"fmt"
	"strconv"

	log "log/slog"
)

const MaxPostTextLength = 500

type PostService interface {
	CreatePost(ctx context.Context, userID uint64, text string) (*model.Post, error)
	DeletePost(ctx context.Context, userID, postID uint64) error
	RepostPost(ctx context.Context, userID, postID uint64) (*ActionResult, *model.Post, error)
	UnrepostPost(ctx context.Context, userID, postID uint64) (*ActionResult, error)
	ReplyToPost(ctx context.Context, userID, parentID uint64, text string) (*model.Post, error)
	HasReposted(ctx context.Context, userID, postID uint64) (bool, error)
	GetPostById(ctx context.Context, id uint64) (*model.Post, error)
	GetPostByPublicID(ctx context.Context, publicID uint64) (*model.Post, error)
	GetPostsByAuthor(ctx context.Context, userID uint64, page int) ([]*model.Post, error)
	GetStatusCount(ctx context.Context, userID uint64) (int64, error)
}

type PostServiceImpl struct {
	postRepo        repository.PostRepo
	userRepo        repository.UserRepo
	hashtagRepo     repository.HashtagRepo
	settingRepo     mongo.SettingRepo
	friendshipRepo  mongo.FriendshipRepo
	engagementRepo  mongo.EngagementRepo
	timelineService TimelineService
}

func NewPostService(
	postRepo repository.PostRepo,
	userRepo repository.UserRepo,
	hashtagRepo repository.HashtagRepo,
	settingRepo mongo.SettingRepo,
	friendshipRepo mongo.FriendshipRepo,
	engagementRepo mongo.EngagementRepo,
	timelineService TimelineService,
) PostService {
	return &PostServiceImpl{
		postRepo:        postRepo,
		userRepo:        userRepo,
		hashtagRepo:     hashtagRepo,
		settingRepo:     settingRepo,
		friendshipRepo:  friendshipRepo,
		engagementRepo:  engagementRepo,
		timelineService: timelineService,
	}
}

// CreatePost 发帖
func (s *PostServiceImpl) CreatePost(ctx context.Context, userID uint64, text string) (*model.Post, error) {
	if text == "" {
		return nil, ErrPostTextEmpty
	}
	if len([]rune(text)) > MaxPostTextLength {
		return nil, ErrParamInvalid
	}

	author, err := s.userRepo.GetUserById(ctx, userID)
	if err != nil {
		return nil, err
	}
	if author == nil {
		return nil, ErrUserNotFound
	}

	post := &model.Post{UserID: userID, Text: text}
	return post, s.persistPost(ctx, post)
}

// persistPost 落盘新帖子的多步流程
// 行写入后各步均可安全重放：编号回填带条件，建档按需插入，扇出按 (owner, post) 去重
func (s *PostServiceImpl) persistPost(ctx context.Context, post *model.Post) error {
	if err := s.postRepo.CreatePost(ctx, post); err != nil {
		return err
	}

	publicID, err := s.settingRepo.NextPostID(ctx)
	if err != nil {
		return err
	}
	if err = s.postRepo.SetPublicID(ctx, post.ID, publicID); err != nil {
		return err
	}
	post.PublicID = &publicID

	if err = s.userRepo.IncrStatusesCount(ctx, post.UserID, 1); err != nil {
		return err
	}
	s.invalidateStatusCount(ctx, post.UserID)

	if err = s.engagementRepo.EnsureRecord(ctx, post.ID); err != nil {
		return err
	}

	for _, tag := range util.ExtractTags(post.Text) {
		if err = s.hashtagRepo.IncrementVolume(ctx, tag); err != nil {
			log.ErrorContext(ctx, "bump hashtag volume failed", "tag", tag, "err", err)
		}
	}

	// 扇出失败只记录日志，帖子本身已经发布成功
	if err = s.timelineService.FanoutPost(ctx, post); err != nil {
		log.ErrorContext(ctx, "fanout post failed", "post_id", post.ID, "err", err)
	}

	log.InfoContext(ctx, "post created", "post_id", post.ID, "public_id", publicID, "user_id", post.UserID)
	return nil
}

// DeletePost 删除帖子并从所有时间线撤下引用
func (s *PostServiceImpl) DeletePost(ctx context.Context, userID, postID uint64) error {
	post, err := s.postRepo.GetPostById(ctx, postID)
	if err != nil {
		return err
	}
	if post == nil {
		return ErrPostNotFound
	}
	if post.UserID != userID {
		return UnauthorizedError
	}

	if err = s.postRepo.SoftDeletePost(ctx, postID); err != nil {
		return err
	}
	if err = s.userRepo.IncrStatusesCount(ctx, userID, -1); err != nil {
		return err
	}
	s.invalidateStatusCount(ctx, userID)

	if err = s.timelineService.WithdrawPost(ctx, postID); err != nil {
		log.ErrorContext(ctx, "withdraw deleted post failed", "post_id", postID, "err", err)
	}
	return nil
}

// RepostPost 转发
// 转发本身是一条新帖子，正文带 RT 前缀并链接到原帖；重复转发返回未修改
func (s *PostServiceImpl) RepostPost(ctx context.Context, userID, postID uint64) (*ActionResult, *model.Post, error) {
	target, err := s.postRepo.GetPostById(ctx, postID)
	if err != nil {
		return nil, nil, err
	}
	if target == nil {
		return nil, nil, ErrPostNotFound
	}

	reposted, err := s.friendshipRepo.HasReposted(ctx, userID, target.ID)
	if err != nil {
		return nil, nil, err
	}
	if reposted {
		return actionNoop, nil, nil
	}

	author, err := s.userRepo.GetUserById(ctx, target.UserID)
	if err != nil {
		return nil, nil, err
	}
	if author == nil {
		return nil, nil, ErrUserNotFound
	}

	repost := &model.Post{
		UserID:     userID,
		Text:       fmt.Sprintf("RT @%s: %s", author.ScreenName, target.Text),
		RepostOfID: &target.ID,
	}
	if err = s.persistPost(ctx, repost); err != nil {
		return nil, nil, err
	}

	if err = s.friendshipRepo.AddReposted(ctx, userID, target.ID); err != nil {
		return nil, nil, err
	}
	if err = s.engagementRepo.RecordRepost(ctx, target.ID, userID); err != nil {
		return nil, nil, err
	}
	return actionApplied, repost, nil
}

// UnrepostPost 撤销转发，未转发过返回未修改
func (s *PostServiceImpl) UnrepostPost(ctx context.Context, userID, postID uint64) (*ActionResult, error) {
	target, err := s.postRepo.GetPostById(ctx, postID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, ErrPostNotFound
	}

	reposted, err := s.friendshipRepo.HasReposted(ctx, userID, target.ID)
	if err != nil {
		return nil, err
	}
	if !reposted {
		return actionNoop, nil
	}

	repost, err := s.postRepo.FindRepostOf(ctx, userID, target.ID)
	if err != nil {
		return nil, err
	}
	if repost != nil {
		if err = s.DeletePost(ctx, userID, repost.ID); err != nil {
			return nil, err
		}
	}

	if err = s.friendshipRepo.RemoveReposted(ctx, userID, target.ID); err != nil {
		return nil, err
	}
	if err = s.engagementRepo.RecordUnrepost(ctx, target.ID, userID); err != nil {
		return nil, err
	}
	return actionApplied, nil
}

// ReplyToPost 回复
// 回复是一条新帖子，带上父帖链接信息，并在父帖的互动记录里登记
func (s *PostServiceImpl) ReplyToPost(ctx context.Context, userID, parentID uint64, text string) (*model.Post, error) {
	if text == "" {
		return nil, ErrPostTextEmpty
	}

	parent, err := s.postRepo.GetPostById(ctx, parentID)
	if err != nil {
		return nil, err
	}
	if parent == nil {
		return nil, ErrPostNotFound
	}

	parentAuthor, err := s.userRepo.GetUserById(ctx, parent.UserID)
	if err != nil {
		return nil, err
	}
	if parentAuthor == nil {
		return nil, ErrUserNotFound
	}

	reply := &model.Post{
		UserID:              userID,
		Text:                text,
		InReplyToPostID:     &parent.ID,
		InReplyToUserID:     &parent.UserID,
		InReplyToScreenName: &parentAuthor.ScreenName,
	}
	if err = s.persistPost(ctx, reply); err != nil {
		return nil, err
	}

	if err = s.engagementRepo.RecordReply(ctx, parent.ID, reply.ID); err != nil {
		return nil, err
	}
	return reply, nil
}

func (s *PostServiceImpl) HasReposted(ctx context.Context, userID, postID uint64) (bool, error) {
	return s.friendshipRepo.HasReposted(ctx, userID, postID)
}

func (s *PostServiceImpl) GetPostById(ctx context.Context, id uint64) (*model.Post, error) {
	post, err := s.postRepo.GetPostById(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	return post, nil
}

func (s *PostServiceImpl) GetPostByPublicID(ctx context.Context, publicID uint64) (*model.Post, error) {
	post, err := s.postRepo.GetPostByPublicID(ctx, publicID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	return post, nil
}

func (s *PostServiceImpl) GetPostsByAuthor(ctx context.Context, userID uint64, page int) ([]*model.Post, error) {
	if page < 1 {
		page = 1
	}
	offset := consts.EngagementPageSize * (page - 1)
	return s.postRepo.GetPostsByAuthor(ctx, userID, consts.EngagementPageSize, offset)
}

func (s *PostServiceImpl) GetStatusCount(ctx context.Context, userID uint64) (int64, error) {
	key := consts.UserStatusCountKey + strconv.FormatUint(userID, 10)
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

	count := user.StatusesCount
	if err = redis.SetWithExpiration(ctx, key, count, countCacheTTL); err != nil {
		log.DebugContext(ctx, "cache status count failed", "key", key, "err", err)
	}
	return count, nil
}

func (s *PostServiceImpl) invalidateStatusCount(ctx context.Context, userID uint64) {
	key := consts.UserStatusCountKey + strconv.FormatUint(userID, 10)
	if err := redis.DeleteKey(ctx, key); err != nil {
		log.DebugContext(ctx, "invalidate status count cache failed", "key", key, "err", err)
	}
}
