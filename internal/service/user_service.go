package service

import (
	"Bastion/internal/api/dto"
	"Bastion/internal/model"
	"Bastion/internal/pkg/consts"
	"Bastion/internal/pkg/kafka"
	"Bastion/internal/pkg/realtime"
	"Bastion/internal/pkg/screening"
	"Bastion/internal/pkg/security"
	"Bastion/internal/pkg/util"
	"Bastion/internal/repository"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	log "log/slog"
	"strings"

	"github.com/google/uuid"
)

// ObjectStorage is the subset of the object store used for avatars
type ObjectStorage interface {
	Upload(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error)
	Delete(ctx context.Context, objectName string) error
	ObjectName(url string) (string, bool)
}

type UserService interface {
	Register(ctx context.Context, req *dto.RegisterDTO) (*dto.UserDTO, error)
	Login(ctx context.Context, req *dto.LoginDTO) (*dto.LoginResultDTO, error)
	GetProfile(ctx context.Context, viewerID, userID uint64) (*dto.UserDTO, error)
	// UpdateProfile returns only the fields that changed, keyed by their wire names
	UpdateProfile(ctx context.Context, userID uint64, req *dto.UpdateProfileDTO) (map[string]any, error)
	UploadAvatar(ctx context.Context, userID uint64, file io.Reader) (string, error)
}

type UserServiceImpl struct {
	userRepo       repository.UserRepo
	userFollowRepo repository.UserFollowRepo
	screener       screening.Screener
	broker         realtime.Broker
	notifier       NotificationService
	producer       kafka.Producer
	storage        ObjectStorage
}

// NewUserService storage may be nil when no object store is configured
func NewUserService(
	userRepo repository.UserRepo,
	userFollowRepo repository.UserFollowRepo,
	screener screening.Screener,
	broker realtime.Broker,
	notifier NotificationService,
	producer kafka.Producer,
	storage ObjectStorage,
) UserService {
	return &UserServiceImpl{
		userRepo:       userRepo,
		userFollowRepo: userFollowRepo,
		screener:       screener,
		broker:         broker,
		notifier:       notifier,
		producer:       producer,
		storage:        storage,
	}
}

func (s *UserServiceImpl) Register(ctx context.Context, req *dto.RegisterDTO) (*dto.UserDTO, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if username == "" || email == "" || req.Password == "" {
		return nil, ErrParamInvalid
	}

	existing, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUsernameExist
	}
	if existing, err = s.userRepo.GetUserByEmail(ctx, email); err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailExist
	}

	hash, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	user := &model.User{
		Username: username,
		Email:    email,
		Password: hash,
		Fullname: strings.TrimSpace(req.Fullname),
	}
	if err = s.userRepo.CreateUser(ctx, user, model.RoleUser); err != nil {
		// lost a race with a concurrent registration
		if repository.IsDuplicateError(err) {
			return nil, ErrUsernameExist
		}
		return nil, err
	}

	runSideEffects(ctx, "register", func(ctx context.Context) error {
		return s.producer.Emit(ctx, kafka.ActivityEvent{Type: kafka.EventUserCreated, EntityID: user.ID, ActorID: user.ID})
	})
	return toUserDTO(user), nil
}

func (s *UserServiceImpl) Login(ctx context.Context, req *dto.LoginDTO) (*dto.LoginResultDTO, error) {
	user, err := s.userRepo.GetUserByUsername(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if err = security.CheckPasswordHash(req.Password, user.Password); err != nil {
		if errors.Is(err, security.ErrInvalidCredentials) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	roles, err := s.userRepo.GetUserRoleNames(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	token, err := security.GenerateToken(user.ID, roles)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResultDTO{Token: token, User: toUserDTO(user)}, nil
}

func (s *UserServiceImpl) GetProfile(ctx context.Context, viewerID, userID uint64) (*dto.UserDTO, error) {
	user, err := s.userRepo.GetUserById(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	item := toUserDTO(user)
	if item.FollowerCount, err = s.userFollowRepo.GetUserFollowerCount(ctx, userID); err != nil {
		return nil, err
	}
	if item.FollowingCount, err = s.userFollowRepo.GetUserFollowingCount(ctx, userID); err != nil {
		return nil, err
	}
	if viewerID != 0 && viewerID != userID {
		ids, err := s.userFollowRepo.FilterFollowing(ctx, viewerID, []uint64{userID})
		if err != nil {
			return nil, err
		}
		item.IsFollowing = util.Ptr(len(ids) > 0)
	}
	return item, nil
}

// UpdateProfile screens fullname and bio, saves the changed fields and announces them
func (s *UserServiceImpl) UpdateProfile(ctx context.Context, userID uint64, req *dto.UpdateProfileDTO) (map[string]any, error) {
	if userID == 0 {
		return nil, ErrAuthRequired
	}
	provided := req.Fullname != nil || req.Bio != nil || req.Location != nil || req.Website != nil
	if !provided {
		return nil, ErrParamInvalid
	}
	user, err := s.userRepo.GetUserById(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	// only columns whose value differs from the stored one are written and announced
	fields := make(map[string]any)
	changed := make(map[string]any)
	set := func(column string, v *string, current string) string {
		if v == nil {
			return ""
		}
		val := strings.TrimSpace(*v)
		if val == current {
			return ""
		}
		fields[column] = val
		changed[column] = val
		return val
	}
	fullname := set("fullname", req.Fullname, user.Fullname)
	bio := set("bio", req.Bio, user.Bio)
	set("location", req.Location, user.Location)
	set("website", req.Website, user.Website)
	if len(fields) == 0 {
		return changed, nil
	}

	if err = s.screener.Check(ctx, fullname, bio); err != nil {
		return nil, err
	}

	if err = s.userRepo.UpdateUserFields(ctx, userID, fields); err != nil {
		return nil, err
	}

	s.announceProfile(ctx, userID, changed)
	return changed, nil
}

// UploadAvatar crops the image to a square, stores it and points the profile at it
func (s *UserServiceImpl) UploadAvatar(ctx context.Context, userID uint64, file io.Reader) (string, error) {
	if userID == 0 {
		return "", ErrAuthRequired
	}
	if s.storage == nil {
		return "", ErrStorageUnavailable
	}
	contentType, r, err := util.DetectContentType(file)
	if err != nil {
		return "", err
	}
	if !strings.HasPrefix(contentType, consts.MimePrefixImage) {
		return "", ErrFileNotSupported
	}
	thumb, err := util.SquareThumbnail(r, consts.AvatarSize)
	if err != nil {
		return "", ErrFileNotSupported
	}

	user, err := s.userRepo.GetUserById(ctx, userID)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", ErrUserNotFound
	}

	objectName := fmt.Sprintf("avatars/%d/%s.jpg", userID, uuid.NewString())
	url, err := s.storage.Upload(ctx, objectName, bytes.NewReader(thumb), int64(len(thumb)), "image/jpeg")
	if err != nil {
		return "", err
	}
	if err = s.userRepo.UpdateUserFields(ctx, userID, map[string]any{"avatar_url": url}); err != nil {
		return "", err
	}
	if old, ok := s.storage.ObjectName(user.AvatarURL); ok {
		if err := s.storage.Delete(ctx, old); err != nil {
			log.WarnContext(ctx, "delete previous avatar failed", "object", old, "err", err)
		}
	}

	s.announceProfile(ctx, userID, map[string]any{"avatarUrl": url})
	return url, nil
}

func (s *UserServiceImpl) announceProfile(ctx context.Context, userID uint64, changed map[string]any) {
	payload := make(map[string]any, len(changed)+1)
	for k, v := range changed {
		payload[k] = v
	}
	payload["userId"] = userID

	runSideEffects(ctx, "update_profile",
		func(ctx context.Context) error {
			s.broker.Broadcast(ctx, realtime.EventProfileUpdated, payload)
			return nil
		},
		func(ctx context.Context) error {
			s.notifier.Notify(ctx, &NotificationInput{
				RecipientID: userID,
				Title:       "Profile updated",
				Message:     "Your profile was updated successfully.",
				Kind:        model.KindProfileUpdate,
				SourceID:    userID,
				SourceKind:  "user",
				Link:        fmt.Sprintf("/profile/%d", userID),
			})
			return nil
		},
		func(ctx context.Context) error {
			return s.producer.Emit(ctx, kafka.ActivityEvent{Type: kafka.EventUserUpdated, EntityID: userID, ActorID: userID})
		},
	)
}
