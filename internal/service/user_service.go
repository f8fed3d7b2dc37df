package service

import (
	"Community/internal/api/dto"
	"Community/internal/model"
	"Community/internal/pkg/consts"
	"Community/internal/pkg/security"
	"Community/internal/pkg/upload"
	"Community/internal/repository"
	"context"
	"errors"
	log "log/slog"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

type UserService interface {
	Register(ctx context.Context, req *dto.RegisterDTO, profileImage *upload.File) (uint64, error)
	GetProfile(ctx context.Context, userID uint64) (*dto.UserProfileDTO, error)
}

type userServiceImpl struct {
	userRepo          repository.UserRepo
	imageService      ImageService
	tx                repository.Transactor
	defaultProfileURL string
}

func NewUserService(userRepo repository.UserRepo, imageService ImageService, tx repository.Transactor, defaultProfileURL string) UserService {
	return &userServiceImpl{
		userRepo:          userRepo,
		imageService:      imageService,
		tx:                tx,
		defaultProfileURL: defaultProfileURL,
	}
}

// Register 注册，头像可选
func (s *userServiceImpl) Register(ctx context.Context, req *dto.RegisterDTO, profileImage *upload.File) (uint64, error) {
	existing, err := s.userRepo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return 0, err
	}
	if existing != nil {
		return 0, ErrUserExist
	}
	existing, err = s.userRepo.GetUserByNickname(ctx, req.Nickname)
	if err != nil {
		return 0, err
	}
	if existing != nil {
		return 0, ErrUserExist
	}

	hashed, err := security.HashPassword(req.Password)
	if err != nil {
		return 0, err
	}

	user := &model.User{
		Email:    req.Email,
		Password: hashed,
		Nickname: req.Nickname,
		Role:     consts.RoleUser,
	}

	err = s.tx.Transaction(ctx, func(ctx context.Context) error {
		if profileImage != nil {
			image, err := s.imageService.SaveOne(ctx, profileImage)
			if err != nil {
				return err
			}
			user.ImageID = &image.ID
		}
		return s.userRepo.CreateUser(ctx, user)
	})
	if err != nil {
		if isDuplicateError(err) {
			return 0, ErrUserExist
		}
		return 0, err
	}

	log.InfoContext(ctx, "user registered", "user_id", user.ID)
	return user.ID, nil
}

func (s *userServiceImpl) GetProfile(ctx context.Context, userID uint64) (*dto.UserProfileDTO, error) {
	user, err := s.userRepo.GetUserById(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	return &dto.UserProfileDTO{
		UserID:       user.ID,
		Email:        user.Email,
		Nickname:     user.Nickname,
		ProfileImage: user.ProfileImageURL(s.defaultProfileURL),
		Role:         user.Role,
	}, nil
}

func isDuplicateError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return true
	}
	return false
}
