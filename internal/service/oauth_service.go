package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"ai-studymate-be/internal/dto"
	"ai-studymate-be/internal/entity"
	"ai-studymate-be/internal/pkg/logger"
	"ai-studymate-be/internal/repository/specification"
	"ai-studymate-be/internal/repository/unitofwork"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

type IOAuthService interface {
	GetLoginURL(provider string) (*dto.OAuthLoginURLResponse, error)
	HandleCallback(ctx context.Context, provider string, req *dto.OAuthCallbackRequest) (*dto.LoginResponse, error)
}

type oauthService struct {
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
	googleConf *oauth2.Config
	jwtSecret  string
}

func NewOAuthService(uowFactory unitofwork.RepositoryFactory, log logger.ILogger, jwtSecret string) IOAuthService {
	conf := &oauth2.Config{
		ClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		ClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		RedirectURL:  os.Getenv("GOOGLE_REDIRECT_URL"),
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}

	return &oauthService{
		uowFactory: uowFactory,
		logger:     log,
		googleConf: conf,
		jwtSecret:  jwtSecret,
	}
}

func (s *oauthService) GetLoginURL(provider string) (*dto.OAuthLoginURLResponse, error) {
	if provider != "google" {
		return nil, errors.New("unsupported provider")
	}

	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return nil, err
	}
	state := base64.URLEncoding.EncodeToString(b)

	return &dto.OAuthLoginURLResponse{URL: s.googleConf.AuthCodeURL(state)}, nil
}

func (s *oauthService) HandleCallback(ctx context.Context, provider string, req *dto.OAuthCallbackRequest) (*dto.LoginResponse, error) {
	if provider != "google" {
		return nil, errors.New("unsupported provider")
	}

	token, err := s.googleConf.Exchange(ctx, req.Code)
	if err != nil {
		return nil, fmt.Errorf("code exchange failed: %w", err)
	}

	googleUser, err := s.fetchGoogleUser(token.AccessToken)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: googleUser.Email})
	if err != nil {
		return nil, err
	}

	if user == nil {
		user = &entity.User{
			Id:        uuid.New(),
			Email:     googleUser.Email,
			FullName:  googleUser.Name,
			Role:      entity.UserRoleUser,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}
		if googleUser.Picture != "" {
			user.AvatarURL = &googleUser.Picture
		}

		if err := uow.Begin(ctx); err != nil {
			return nil, err
		}
		defer uow.Rollback()

		if err := uow.UserRepository().Create(ctx, user); err != nil {
			return nil, err
		}
		if err := uow.UserRepository().CreateProvider(ctx, &entity.UserProvider{
			Id:             uuid.New(),
			UserId:         user.Id,
			ProviderName:   provider,
			ProviderUserId: googleUser.ID,
			AvatarURL:      googleUser.Picture,
			CreatedAt:      time.Now(),
		}); err != nil {
			return nil, err
		}
		if err := uow.Commit(); err != nil {
			return nil, err
		}

		s.logger.Info("oauth", "created user from google login", map[string]interface{}{
			"user_id": user.Id,
		})
	} else {
		// Link the provider identity on first social login of an existing
		// account.
		existing, err := uow.UserRepository().FindProvider(ctx, provider, googleUser.ID)
		if err != nil {
			return nil, err
		}
		if existing == nil {
			if err := uow.UserRepository().CreateProvider(ctx, &entity.UserProvider{
				Id:             uuid.New(),
				UserId:         user.Id,
				ProviderName:   provider,
				ProviderUserId: googleUser.ID,
				AvatarURL:      googleUser.Picture,
				CreatedAt:      time.Now(),
			}); err != nil {
				return nil, err
			}
		}
	}

	claims := jwt.MapClaims{
		"user_id": user.Id.String(),
		"role":    string(user.Role),
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwtSecret))
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		Token: signed,
		User:  *toUserProfile(user),
	}, nil
}

type googleUserInfo struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

func (s *oauthService) fetchGoogleUser(accessToken string) (*googleUserInfo, error) {
	resp, err := http.Get("https://www.googleapis.com/oauth2/v2/userinfo?access_token=" + accessToken)
	if err != nil {
		return nil, fmt.Errorf("failed getting user info: %w", err)
	}
	defer resp.Body.Close()

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var info googleUserInfo
	if err := json.Unmarshal(content, &info); err != nil {
		return nil, err
	}
	if info.Email == "" {
		return nil, errors.New("google userinfo response missing email")
	}
	return &info, nil
}
