package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/docassembler/backend/config"
	"github.com/docassembler/backend/internal/model"
	"github.com/docassembler/backend/internal/pkg/token"
	"github.com/docassembler/backend/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/oauth2"
	"k8s.io/klog/v2"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailExists        = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
)

const googleUserinfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// UserDTO 用户数据传输对象
type UserDTO struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Picture string `json:"picture,omitempty"`
}

// RegisterRequest 本地注册请求
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=100"`
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

// LoginRequest 本地登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthService 认证服务接口
type AuthService interface {
	GoogleLoginURL(state string) string
	HandleGoogleCallback(ctx context.Context, code string) (*UserDTO, string, error)
	Register(ctx context.Context, req RegisterRequest) (*UserDTO, string, error)
	Login(ctx context.Context, req LoginRequest) (*UserDTO, string, error)
	CurrentUser(ctx context.Context, userID uint) (*UserDTO, error)
}

// authService 实现
type authService struct {
	users  repository.UserRepository
	tokens *token.Service
	oauth  *oauth2.Config
}

// NewAuthService 创建服务实例
func NewAuthService(cfg *config.Config, users repository.UserRepository, tokens *token.Service) AuthService {
	return &authService{
		users:  users,
		tokens: tokens,
		oauth: &oauth2.Config{
			ClientID:     cfg.Auth.GoogleClientID,
			ClientSecret: cfg.Auth.GoogleClientSecret,
			RedirectURL:  cfg.Auth.GoogleRedirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint: oauth2.Endpoint{
				AuthURL:  "https://accounts.google.com/o/oauth2/auth",
				TokenURL: "https://oauth2.googleapis.com/token",
			},
		},
	}
}

// GoogleLoginURL 构造 Google 授权跳转地址
func (s *authService) GoogleLoginURL(state string) string {
	return s.oauth.AuthCodeURL(state)
}

// googleUserinfo Google userinfo 响应
type googleUserinfo struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// HandleGoogleCallback 用授权码换取用户信息并签发令牌
// 用户首次登录时自动建档，老用户刷新名称与头像
func (s *authService) HandleGoogleCallback(ctx context.Context, code string) (*UserDTO, string, error) {
	tok, err := s.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, "", fmt.Errorf("exchange code: %w", err)
	}

	resp, err := s.oauth.Client(ctx, tok).Get(googleUserinfoURL)
	if err != nil {
		return nil, "", fmt.Errorf("fetch userinfo: %w", err)
	}
	defer resp.Body.Close()

	var info googleUserinfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, "", fmt.Errorf("decode userinfo: %w", err)
	}
	if info.Email == "" {
		return nil, "", fmt.Errorf("userinfo missing email")
	}

	user, err := s.upsertGoogleUser(&info)
	if err != nil {
		return nil, "", err
	}

	signed, _, err := s.tokens.Sign(user)
	if err != nil {
		return nil, "", err
	}
	klog.V(6).Infof("Google 登录成功: userID=%d, email=%s", user.ID, user.Email)
	return toUserDTO(user), signed, nil
}

// upsertGoogleUser 按邮箱建档或刷新 Google 用户
func (s *authService) upsertGoogleUser(info *googleUserinfo) (*model.User, error) {
	email := strings.ToLower(info.Email)

	user, err := s.users.GetByEmail(email)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("failed to get user: %w", err)
		}
		user = &model.User{
			Name:     info.Name,
			Email:    email,
			Picture:  info.Picture,
			Provider: "google",
		}
		if err := s.users.Create(user); err != nil {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
		return user, nil
	}

	user.Name = info.Name
	user.Picture = info.Picture
	if err := s.users.Save(user); err != nil {
		return nil, fmt.Errorf("failed to save user: %w", err)
	}
	return user, nil
}

// Register 本地注册，成功后直接签发令牌
func (s *authService) Register(ctx context.Context, req RegisterRequest) (*UserDTO, string, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if _, err := s.users.GetByEmail(email); err == nil {
		return nil, "", ErrEmailExists
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, "", fmt.Errorf("failed to get user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Name:         req.Name,
		Email:        email,
		Provider:     "local",
		PasswordHash: string(hash),
	}
	if err := s.users.Create(user); err != nil {
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	signed, _, err := s.tokens.Sign(user)
	if err != nil {
		return nil, "", err
	}
	return toUserDTO(user), signed, nil
}

// Login 本地登录
func (s *authService) Login(ctx context.Context, req LoginRequest) (*UserDTO, string, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.users.GetByEmail(email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to get user: %w", err)
	}
	// Google 建档用户没有本地密码
	if user.PasswordHash == "" {
		return nil, "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	signed, _, err := s.tokens.Sign(user)
	if err != nil {
		return nil, "", err
	}
	return toUserDTO(user), signed, nil
}

// CurrentUser 获取当前登录用户
func (s *authService) CurrentUser(ctx context.Context, userID uint) (*UserDTO, error) {
	user, err := s.users.GetByID(userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return toUserDTO(user), nil
}

// toUserDTO 转换为 DTO
func toUserDTO(u *model.User) *UserDTO {
	return &UserDTO{
		ID:      u.ID,
		Name:    u.Name,
		Email:   u.Email,
		Picture: u.Picture,
	}
}
