package service

import (
	"context"
	"errors"
	"net/http"

	"acadly.app/portal/internal/entity"
	authDto "acadly.app/portal/internal/modules/auth/dto"
	profileRepo "acadly.app/portal/internal/modules/profile/repository"
	"acadly.app/portal/pkg/apperror"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService interface {
	Register(ctx context.Context, req authDto.RegisterRequest) (*entity.Profile, error)
	Login(ctx context.Context, req authDto.LoginRequest) (*entity.Profile, error)
	Me(ctx context.Context, userID uuid.UUID) (*authDto.ProfileResponse, error)
}

type authService struct {
	profiles profileRepo.ProfileRepository
}

func NewAuthService(profiles profileRepo.ProfileRepository) AuthService {
	return &authService{profiles: profiles}
}

func (s *authService) Register(ctx context.Context, req authDto.RegisterRequest) (*entity.Profile, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	role := req.Role
	if role == "" {
		role = entity.RoleFaculty
	}

	profile := &entity.Profile{
		FullName:     req.FullName,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         role,
	}

	if err := s.profiles.Create(ctx, profile); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.New(http.StatusConflict, "Email already registered", apperror.ErrConflict)
		}
		return nil, err
	}

	return profile, nil
}

func (s *authService) Login(ctx context.Context, req authDto.LoginRequest) (*entity.Profile, error) {
	profile, err := s.profiles.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(http.StatusUnauthorized, "Invalid email or password", apperror.ErrUnauthorized)
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperror.New(http.StatusUnauthorized, "Invalid email or password", apperror.ErrUnauthorized)
	}

	return profile, nil
}

func (s *authService) Me(ctx context.Context, userID uuid.UUID) (*authDto.ProfileResponse, error) {
	profile, err := s.profiles.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(http.StatusNotFound, "profile not found", apperror.ErrNotFound)
		}
		return nil, err
	}

	return &authDto.ProfileResponse{
		ID:        profile.ID,
		FullName:  profile.FullName,
		Email:     profile.Email,
		Role:      profile.Role,
		Points:    profile.Points,
		CreatedAt: profile.CreatedAt,
	}, nil
}
