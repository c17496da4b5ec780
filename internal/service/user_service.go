package service

import (
	"Skylark/internal/model"
	"Skylark/internal/pkg/mongo"
	"Skylark/internal/pkg/redis"
	"Skylark/internal/pkg/security"
	"Skylark/internal/repository"
	"context"
	"errors"

	log "log/slog"

	"github.com/go-sql-driver/mysql"
)

type UserService interface {
	Register(ctx context.Context, screenName, name, password string) (*model.User, error)
	Login(ctx context.Context, screenName, password string) (string, *model.User, error)
	Logout(ctx context.Context, token string) error
	CreateUser(ctx context.Context, user *model.User) error
	GetUserById(ctx context.Context, id uint64) (*model.User, error)
	GetUserByScreenName(ctx context.Context, screenName string) (*model.User, error)
	UpdateProfile(ctx context.Context, user *model.User) error
}

type UserServiceImpl struct {
	userRepo       repository.UserRepo
	settingRepo    mongo.SettingRepo
	friendshipRepo mongo.FriendshipRepo
	timelineRepo   mongo.TimelineRepo
}

func NewUserService(
	userRepo repository.UserRepo,
	settingRepo mongo.SettingRepo,
	friendshipRepo mongo.FriendshipRepo,
	timelineRepo mongo.TimelineRepo,
) UserService {
	return &UserServiceImpl{
		userRepo:       userRepo,
		settingRepo:    settingRepo,
		friendshipRepo: friendshipRepo,
		timelineRepo:   timelineRepo,
	}
}

// Register 注册新用户
func (s *UserServiceImpl) Register(ctx context.Context, screenName, name, password string) (*model.User, error) {
	if screenName == "" || password == "" {
		return nil, ErrParamInvalid
	}

	existing, err := s.userRepo.GetUserByScreenName(ctx, screenName)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUserScreenNameExist
	}

	hashed, err := security.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		ScreenName: screenName,
		Name:       name,
		Password:   &hashed,
	}
	if err = s.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// CreateUser 创建用户的多步流程
// 每一步都可以安全重放：行已存在时编号回填是空操作，文档建档按需插入
func (s *UserServiceImpl) CreateUser(ctx context.Context, user *model.User) error {
	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		// 预检查之后仍可能与并发注册撞上唯一索引
		if isDuplicateError(err) {
			return ErrUserScreenNameExist
		}
		return err
	}

	publicID, err := s.settingRepo.NextUserID(ctx)
	if err != nil {
		return err
	}
	if err = s.userRepo.SetPublicID(ctx, user.ID, publicID); err != nil {
		return err
	}
	user.PublicID = &publicID

	if err = s.friendshipRepo.EnsureRecord(ctx, user.ID); err != nil {
		return err
	}
	if err = s.timelineRepo.EnsureTimeline(ctx, user.ID); err != nil {
		return err
	}

	log.InfoContext(ctx, "user created", "user_id", user.ID, "public_id", publicID)
	return nil
}

func isDuplicateError(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1062
}

// Login 校验凭据并签发 Token
func (s *UserServiceImpl) Login(ctx context.Context, screenName, password string) (string, *model.User, error) {
	if screenName == "" || password == "" {
		return "", nil, ErrMissingLoginCredentials
	}

	user, err := s.userRepo.GetUserByScreenName(ctx, screenName)
	if err != nil {
		return "", nil, err
	}
	if user == nil || user.Password == nil {
		return "", nil, ErrUserNotFound
	}

	if err = security.CheckPasswordHash(password, *user.Password); err != nil {
		return "", nil, ErrPasswordIncorrect
	}

	token, err := security.GenerateToken(user.ID, []string{"user"})
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// Logout 把 Token 签名挂入黑名单，有效期与 Token 本身一致
func (s *UserServiceImpl) Logout(ctx context.Context, token string) error {
	signature, err := security.ExtractSignature(token)
	if err != nil {
		return ErrParamInvalid
	}
	return redis.SetWithExpiration(ctx, signature, "revoked", security.JWTExpirationTime)
}

func (s *UserServiceImpl) GetUserById(ctx context.Context, id uint64) (*model.User, error) {
	user, err := s.userRepo.GetUserById(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *UserServiceImpl) GetUserByScreenName(ctx context.Context, screenName string) (*model.User, error) {
	user, err := s.userRepo.GetUserByScreenName(ctx, screenName)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *UserServiceImpl) UpdateProfile(ctx context.Context, user *model.User) error {
	existing, err := s.userRepo.GetUserById(ctx, user.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrUserNotFound
	}
	return s.userRepo.UpdateUser(ctx, user)
}
