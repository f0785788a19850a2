package auth

import (
	"context"
	"errors"
	"os"
	"time"

	autherrors "go-empdir/internal/auth/errors"
	"go-empdir/internal/employee"
	"go-empdir/internal/identity"

	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 7 * 24 * time.Hour
)

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	SignIn(ctx context.Context, req SignInRequest) (TokenPairResponse, error)
	Refresh(ctx context.Context, req RefreshRequest) (TokenPairResponse, error)
	SignOut(ctx context.Context, userID string) error
}

type service struct {
	users     identity.Repository
	employees employee.Repository
	tokens    TokenStore
	logger    *zap.Logger
}

func NewService(
	users identity.Repository,
	employees employee.Repository,
	tokens TokenStore,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{users: users, employees: employees, tokens: tokens, logger: l}
}

func (s *service) SignIn(ctx context.Context, req SignInRequest) (TokenPairResponse, error) {
	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		// Same error whether the account is missing or the password is
		// wrong, so sign-in cannot be used to probe for accounts.
		return TokenPairResponse{}, autherrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return TokenPairResponse{}, autherrors.ErrInvalidCredentials
	}

	resp, err := s.issueTokens(ctx, user)
	if err != nil {
		return TokenPairResponse{}, err
	}

	s.logger.Info("sign in success", zap.String("user_id", user.ID.String()))
	return resp, nil
}

func (s *service) Refresh(ctx context.Context, req RefreshRequest) (TokenPairResponse, error) {
	token, err := jwt.Parse(req.RefreshToken, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, autherrors.ErrInvalidToken
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return TokenPairResponse{}, autherrors.ErrInvalidRefreshToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return TokenPairResponse{}, autherrors.ErrInvalidToken
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return TokenPairResponse{}, autherrors.ErrInvalidUserID
	}

	stored, err := s.tokens.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return TokenPairResponse{}, autherrors.ErrInvalidRefreshToken
		}
		s.logger.Error("refresh token lookup failed", zap.Error(err))
		return TokenPairResponse{}, err
	}
	if stored != req.RefreshToken {
		return TokenPairResponse{}, autherrors.ErrInvalidRefreshToken
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return TokenPairResponse{}, autherrors.ErrUserNotFound
	}

	resp, err := s.issueTokens(ctx, user)
	if err != nil {
		return TokenPairResponse{}, err
	}

	s.logger.Info("token refresh success", zap.String("user_id", userID))
	return resp, nil
}

func (s *service) SignOut(ctx context.Context, userID string) error {
	if err := s.tokens.Delete(ctx, userID); err != nil {
		s.logger.Error("sign out failed", zap.String("user_id", userID), zap.Error(err))
		return err
	}
	s.logger.Info("sign out success", zap.String("user_id", userID))
	return nil
}

// issueTokens builds an access and refresh pair and rotates the stored
// refresh token. employee_id and company_id claims are empty for
// principals without an employee record.
func (s *service) issueTokens(ctx context.Context, user *identity.User) (TokenPairResponse, error) {
	employeeID := ""
	companyID := ""

	emp, err := s.employees.FindByUserID(ctx, user.ID.String())
	switch {
	case err == nil:
		employeeID = emp.ID.String()
		companyID = emp.CompanyID.String()
	case errors.Is(err, gorm.ErrRecordNotFound):
		// Admins without an employee record sign in fine.
	default:
		s.logger.Error("employee lookup failed", zap.Error(err))
		return TokenPairResponse{}, err
	}

	accessToken, err := generateToken(user, employeeID, companyID, accessTokenTTL)
	if err != nil {
		return TokenPairResponse{}, autherrors.ErrTokenGenerationFailed
	}
	refreshToken, err := generateToken(user, employeeID, companyID, refreshTokenTTL)
	if err != nil {
		return TokenPairResponse{}, autherrors.ErrTokenGenerationFailed
	}

	if err := s.tokens.Save(ctx, user.ID.String(), refreshToken, refreshTokenTTL); err != nil {
		s.logger.Error("store refresh token failed", zap.Error(err))
		return TokenPairResponse{}, err
	}

	return TokenPairResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User: UserInfo{
			ID:         user.ID.String(),
			Email:      user.Email,
			Name:       user.FullName(),
			Role:       user.Role,
			EmployeeID: employeeID,
			CompanyID:  companyID,
		},
	}, nil
}

func generateToken(user *identity.User, employeeID, companyID string, expiry time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id":     user.ID.String(),
		"employee_id": employeeID,
		"company_id":  companyID,
		"role":        user.Role,
		"exp":         time.Now().Add(expiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}
