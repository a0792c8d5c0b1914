package service

import (
	"context"
	"strings"
	"time"

	"campus-connect-be/internal/dto"
	"campus-connect-be/internal/entity"
	"campus-connect-be/internal/pkg/logger"
	"campus-connect-be/internal/pkg/serverutils"
	"campus-connect-be/internal/repository/specification"
	"campus-connect-be/internal/repository/unitofwork"
	"campus-connect-be/pkg/events"
	pktNats "campus-connect-be/pkg/nats"

	"golang.org/x/crypto/bcrypt"
)

type IAuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	Logout(ctx context.Context, token string) error
	Validate(ctx context.Context, token string) (*dto.ValidateResponse, error)
	Authenticate(ctx context.Context, token string) (*entity.User, error)
}

type authService struct {
	uowFactory     unitofwork.RepositoryFactory
	jwtSecret      string
	sessionTTL     time.Duration
	eventPublisher *pktNats.Publisher
	logger         logger.ILogger
}

func NewAuthService(
	uowFactory unitofwork.RepositoryFactory,
	jwtSecret string,
	sessionTTL time.Duration,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) IAuthService {
	return &authService{
		uowFactory:     uowFactory,
		jwtSecret:      jwtSecret,
		sessionTTL:     sessionTTL,
		eventPublisher: eventPublisher,
		logger:         log,
	}
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	registration := strings.TrimSpace(req.Registration)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByRegistration{Registration: registration})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, serverutils.Unauthorized("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, serverutils.Unauthorized("invalid credentials")
	}

	if user.AccessStatus != entity.AccessStatusActive {
		return nil, serverutils.Forbidden("account is not active")
	}

	now := time.Now().UTC()
	expiresAt := now.Add(s.sessionTTL)

	token, err := signToken(s.jwtSecret, user.Registration, now, expiresAt)
	if err != nil {
		return nil, err
	}

	session := &entity.Session{
		Token:          token,
		UserId:         user.Id,
		StartDate:      now,
		ExpirationDate: expiresAt,
	}
	if err := uow.SessionRepository().Create(ctx, session); err != nil {
		return nil, err
	}

	// Login events feed dashboards only, a broker outage must not block login.
	if s.eventPublisher != nil {
		evt := events.BaseEvent{
			Type: events.EventUserLogin,
			Data: map[string]interface{}{
				"user_id":      user.Id,
				"registration": user.Registration,
			},
			OccurredAt: now,
		}
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.logger.Warn("Auth", "Failed to publish login event", map[string]interface{}{"error": err.Error()})
		}
	}

	return &dto.LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresAt:   expiresAt,
		User:        toUserDTO(user),
	}, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.SessionRepository().Delete(ctx, token)
}

func (s *authService) Validate(ctx context.Context, token string) (*dto.ValidateResponse, error) {
	user, err := s.Authenticate(ctx, token)
	if err != nil {
		return nil, err
	}
	return &dto.ValidateResponse{
		Valid: true,
		User:  toUserDTO(user),
	}, nil
}

// Authenticate resolves a token to its user. Four gates, in order: the JWT
// must verify, the subject must name a known user, the account must be
// active, and a live session row must back the token. An expired session row
// is deleted on sight before the caller hears about it.
func (s *authService) Authenticate(ctx context.Context, token string) (*entity.User, error) {
	registration, ok := parseToken(s.jwtSecret, token)
	if !ok {
		return nil, serverutils.ErrInvalidToken
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByRegistration{Registration: registration})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, serverutils.ErrInvalidToken
	}

	if user.AccessStatus != entity.AccessStatusActive {
		return nil, serverutils.Forbidden("account is not active")
	}

	session, err := uow.SessionRepository().FindByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, serverutils.ErrSessionInvalid
	}

	if !session.ExpirationDate.After(time.Now().UTC()) {
		if err := uow.SessionRepository().Delete(ctx, token); err != nil {
			s.logger.Warn("Auth", "Failed to delete expired session", map[string]interface{}{"error": err.Error()})
		}
		return nil, serverutils.ErrSessionExpired
	}

	return user, nil
}

func toUserDTO(user *entity.User) dto.UserDTO {
	return dto.UserDTO{
		Id:           user.Id,
		Registration: user.Registration,
		Name:         user.Name,
		Email:        user.Email,
		Role:         string(user.Role),
		AccessStatus: string(user.AccessStatus),
	}
}
