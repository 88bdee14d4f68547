package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/prepwise/prepwise/internal/dto"
	"github.com/prepwise/prepwise/internal/model"
	"github.com/prepwise/prepwise/internal/repository"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

// SessionDuration is the validity window of a session token (one week).
const SessionDuration = 7 * 24 * time.Hour

// AuthService manages accounts and opaque session tokens. Tokens are issued
// at sign-in, stored server-side with a seven-day expiry and carried by the
// client in an HTTP-only cookie.
type AuthService interface {
	SignUp(req dto.SignUpRequest) (*dto.AuthResponse, error)
	SignIn(req dto.SignInRequest) (*dto.AuthResponse, string, error)
	SignOut(token string) (*dto.AuthResponse, error)
	GetCurrentUser(token string) (*model.User, error)
}

type authService struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
}

func NewAuthService(userRepo repository.UserRepository, sessionRepo repository.SessionRepository) AuthService {
	return &authService{userRepo: userRepo, sessionRepo: sessionRepo}
}

func (s *authService) SignUp(req dto.SignUpRequest) (*dto.AuthResponse, error) {
	existing, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to look up user: %s", ErrPersistence, err.Error())
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: user already exists. Please sign in", ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to hash password: %s", ErrValidation, err.Error())
	}

	user := model.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
	}
	if err := s.userRepo.Create(&user); err != nil {
		log.Error().Err(err).Str("email", req.Email).Msg("SignUp: failed to create user")
		return nil, fmt.Errorf("%w: failed to create account. Please try again", ErrPersistence)
	}

	return &dto.AuthResponse{
		Success: true,
		Message: "Account created successfully. Please sign in.",
	}, nil
}

// SignIn verifies the credentials and returns the response together with the
// freshly issued session token to be set as a cookie.
func (s *authService) SignIn(req dto.SignInRequest) (*dto.AuthResponse, string, error) {
	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		return nil, "", fmt.Errorf("%w: failed to look up user: %s", ErrPersistence, err.Error())
	}
	if user == nil {
		return nil, "", fmt.Errorf("%w: user does not exist. Create an account", ErrValidation)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, "", fmt.Errorf("%w: invalid email or password", ErrValidation)
	}

	session := model.Session{
		Token:     uuid.NewString(),
		UserID:    user.ID,
		ExpiresAt: time.Now().UTC().Add(SessionDuration),
	}
	if err := s.sessionRepo.Create(&session); err != nil {
		log.Error().Err(err).Str("userID", user.ID).Msg("SignIn: failed to create session")
		return nil, "", fmt.Errorf("%w: failed to sign in. Please try again", ErrPersistence)
	}

	var userResp dto.UserResponse
	if err := copier.Copy(&userResp, user); err != nil {
		return nil, "", fmt.Errorf("%w: error preparing response: %s", ErrPersistence, err.Error())
	}

	return &dto.AuthResponse{
		Success: true,
		Message: "Successfully signed in.",
		User:    &userResp,
	}, session.Token, nil
}

func (s *authService) SignOut(token string) (*dto.AuthResponse, error) {
	if token != "" {
		if err := s.sessionRepo.Delete(token); err != nil {
			log.Warn().Err(err).Msg("SignOut: failed to delete session")
		}
	}
	return &dto.AuthResponse{
		Success: true,
		Message: "Successfully signed out.",
	}, nil
}

// GetCurrentUser resolves the acting user from a session token. A missing,
// unknown or expired token yields ErrAuthRequired; the caller is anonymous.
func (s *authService) GetCurrentUser(token string) (*model.User, error) {
	if token == "" {
		return nil, ErrAuthRequired
	}

	session, err := s.sessionRepo.FindByToken(token)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to look up session: %s", ErrPersistence, err.Error())
	}
	if session == nil {
		return nil, ErrAuthRequired
	}
	if time.Now().UTC().After(session.ExpiresAt) {
		if err := s.sessionRepo.Delete(session.Token); err != nil {
			log.Warn().Err(err).Msg("GetCurrentUser: failed to delete expired session")
		}
		return nil, ErrAuthRequired
	}

	user, err := s.userRepo.FindByID(session.UserID)
	if err != nil {
		return nil, ErrAuthRequired
	}
	return user, nil
}
