package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"ai-journaling-be/internal/dto"
	"ai-journaling-be/internal/entity"
	"ai-journaling-be/internal/pkg/apperror"
	"ai-journaling-be/internal/pkg/logger"
	"ai-journaling-be/internal/repository/memory"
	"ai-journaling-be/internal/repository/unitofwork"
	"ai-journaling-be/pkg/authprovider"
	"ai-journaling-be/pkg/events"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	signupMessage         = "User signed up successfully!"
	signupNoLoginMessage  = "User signed up successfully but auto-login failed. Please log in manually."
	invalidTokenMessage   = "Invalid or expired token."
	invalidRefreshMessage = "Invalid refresh token or session expired."
)

// AuthProvider is the slice of the hosted auth API the service uses.
type AuthProvider interface {
	SignUp(ctx context.Context, email, password string) (*authprovider.SignUpResult, error)
	SignInWithPassword(ctx context.Context, email, password string) (*authprovider.Session, error)
	RefreshSession(ctx context.Context, refreshToken string) (*authprovider.Session, error)
	GetUser(ctx context.Context, accessToken string) (*authprovider.User, error)
}

type IAuthService interface {
	SignUp(ctx context.Context, req *dto.SignupRequest) (*dto.SignupResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.TokenResponse, error)
	VerifyToken(ctx context.Context, token string) (*entity.AuthUser, error)
}

type authService struct {
	uowFactory   unitofwork.RepositoryFactory
	provider     AuthProvider
	tokenCache   *memory.TokenCache
	jwtSecret    []byte
	eventService IEventService
	logger       logger.ILogger
}

func NewAuthService(
	uowFactory unitofwork.RepositoryFactory,
	provider AuthProvider,
	tokenCache *memory.TokenCache,
	jwtSecret string,
	eventService IEventService,
	log logger.ILogger,
) IAuthService {
	return &authService{
		uowFactory:   uowFactory,
		provider:     provider,
		tokenCache:   tokenCache,
		jwtSecret:    []byte(jwtSecret),
		eventService: eventService,
		logger:       log,
	}
}

func (s *authService) SignUp(ctx context.Context, req *dto.SignupRequest) (*dto.SignupResponse, error) {
	result, err := s.provider.SignUp(ctx, req.Email, req.Password)
	if err != nil {
		var pe *authprovider.Error
		if errors.As(err, &pe) && pe.IsClientError() {
			return nil, apperror.Validation("Signup failed. Check email/password validity.")
		}
		return nil, apperror.Store("auth.signup", err)
	}
	if result.User == nil {
		return nil, apperror.Validation("Signup failed. Check email/password validity.")
	}

	userID, err := uuid.Parse(result.User.ID)
	if err != nil {
		return nil, apperror.Store("auth.signup", err)
	}

	// The local users row only mirrors the provider account.
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.UserRepository().CreateIfAbsent(ctx, &entity.User{
		Id:        userID,
		Email:     result.User.Email,
		CreatedAt: time.Now(),
	}); err != nil {
		s.logger.Warn("AUTH", "Failed to mirror signed up user", map[string]interface{}{
			"user_id": userID.String(),
			"error":   err.Error(),
		})
	}
	s.eventService.Emit(ctx, events.TypeUserSignedUp, map[string]interface{}{
		"user_id": userID.String(),
		"email":   result.User.Email,
	})

	res := &dto.SignupResponse{
		Message: signupMessage,
		UserId:  userID,
		Email:   result.User.Email,
	}

	session := result.Session
	if session == nil {
		session, err = s.provider.SignInWithPassword(ctx, req.Email, req.Password)
		if err != nil {
			s.logger.Warn("AUTH", "Auto-login after signup failed", map[string]interface{}{
				"user_id": userID.String(),
				"error":   err.Error(),
			})
			res.Message = signupNoLoginMessage
			return res, nil
		}
	}

	res.AccessToken = &session.AccessToken
	res.RefreshToken = &session.RefreshToken
	return res, nil
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	session, err := s.provider.SignInWithPassword(ctx, req.Email, req.Password)
	if err != nil {
		return nil, providerError("auth.login", err, "Invalid email or password.")
	}
	return toTokenResponse(session), nil
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return nil, &apperror.AuthError{Message: invalidRefreshMessage}
	}
	session, err := s.provider.RefreshSession(ctx, refreshToken)
	if err != nil {
		return nil, providerError("auth.refresh", err, invalidRefreshMessage)
	}
	if session.AccessToken == "" {
		return nil, &apperror.AuthError{Message: invalidRefreshMessage}
	}
	return toTokenResponse(session), nil
}

// VerifyToken resolves a bearer token to its user. With a JWT secret the
// token is checked locally, otherwise the provider is asked.
func (s *authService) VerifyToken(ctx context.Context, token string) (*entity.AuthUser, error) {
	if user, ok := s.tokenCache.Get(token); ok {
		return user, nil
	}

	if len(s.jwtSecret) > 0 {
		user, expiresAt, err := s.parseToken(token)
		if err != nil {
			return nil, &apperror.AuthError{Message: invalidTokenMessage, Err: err}
		}
		s.tokenCache.Save(token, user, expiresAt)
		return user, nil
	}

	pu, err := s.provider.GetUser(ctx, token)
	if err != nil {
		return nil, providerError("auth.get_user", err, invalidTokenMessage)
	}
	id, err := uuid.Parse(pu.ID)
	if err != nil {
		return nil, &apperror.AuthError{Message: invalidTokenMessage, Err: err}
	}
	user := &entity.AuthUser{Id: id, Email: pu.Email, Role: pu.Role}
	s.tokenCache.Save(token, user, time.Time{})
	return user, nil
}

type providerClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

func (s *authService) parseToken(tokenString string) (*entity.AuthUser, time.Time, error) {
	claims := &providerClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, time.Time{}, err
	}

	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, time.Time{}, err
	}

	var expiresAt time.Time
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}
	return &entity.AuthUser{Id: id, Email: claims.Email, Role: claims.Role}, expiresAt, nil
}

// providerError turns provider rejections into AuthError and anything else
// into a StoreError, since the provider is part of the hosted backend.
func providerError(op string, err error, message string) error {
	var pe *authprovider.Error
	if errors.As(err, &pe) && pe.IsClientError() {
		return &apperror.AuthError{Message: message, Err: err}
	}
	return apperror.Store(op, err)
}

func toTokenResponse(session *authprovider.Session) *dto.TokenResponse {
	return &dto.TokenResponse{
		AccessToken:  session.AccessToken,
		RefreshToken: session.RefreshToken,
		ExpiresIn:    session.ExpiresIn,
	}
}
