package services

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"sutradhar/internal/domain"
	"sutradhar/internal/repos"
)

var (
	ErrBadCreds    = errors.New("invalid email or password")
	ErrEmailTaken  = errors.New("email is already registered")
	ErrInvalidRole = errors.New("invalid role")
)

type AuthService struct {
	Users *repos.UserRepo
}

func NewAuthService(users *repos.UserRepo) *AuthService { return &AuthService{Users: users} }

// SignUp creates the user and its profile, then binds the session so the new
// account is signed in immediately.
func (s *AuthService) SignUp(sid, email, password, displayName, role string) (*domain.Session, error) {
	if role == "" {
		role = "buyer"
	}
	if role != "buyer" && role != "seller" {
		return nil, ErrInvalidRole
	}
	if _, err := s.Users.ByEmail(email); err == nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return nil, err
	}
	u := &domain.User{ID: uuid.NewString(), Email: strings.ToLower(email), Hash: string(hash)}
	p := &domain.Profile{
		UserID:      u.ID,
		DisplayName: displayName,
		Role:        role,
		KYCStatus:   "pending",
		Language:    "en",
	}
	if err := s.Users.CreateWithProfile(u, p); err != nil {
		return nil, err
	}
	if err := s.Users.BindSession(sid, u.ID); err != nil {
		return nil, err
	}
	return &domain.Session{User: *u, Profile: *p, Tier: domain.TierFor(p.Points)}, nil
}

func (s *AuthService) Login(sid, email, password string) (*domain.Session, error) {
	u, err := s.Users.ByEmail(email)
	if err != nil {
		return nil, ErrBadCreds
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(password)) != nil {
		return nil, ErrBadCreds
	}
	if err := s.Users.BindSession(sid, u.ID); err != nil {
		return nil, err
	}
	return s.sessionFor(u)
}

func (s *AuthService) Logout(sid string) error {
	return s.Users.UnbindSession(sid)
}

// Current resolves the sid cookie to the signed-in user with profile and tier.
func (s *AuthService) Current(sid string) (*domain.Session, error) {
	u, err := s.Users.SessionUser(sid)
	if err != nil {
		return nil, err
	}
	return s.sessionFor(u)
}

func (s *AuthService) sessionFor(u *domain.User) (*domain.Session, error) {
	p, err := s.Users.Profile(u.ID)
	if err != nil {
		return nil, err
	}
	return &domain.Session{User: *u, Profile: *p, Tier: domain.TierFor(p.Points)}, nil
}

// SwitchRole writes the new role through to the profile.
func (s *AuthService) SwitchRole(userID, role string) error {
	if role != "buyer" && role != "seller" {
		return ErrInvalidRole
	}
	return s.Users.UpdateRole(userID, role)
}
