package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"urbancab/internal/auth"
	"urbancab/internal/domain"
	"urbancab/internal/repository"
)

// AuthService handles account registration and login.
type AuthService struct {
	userRepo   repository.UserRepository
	dealerRepo repository.DealerRepository
	tokens     *auth.TokenManager
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, dealerRepo repository.DealerRepository, tokens *auth.TokenManager) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		dealerRepo: dealerRepo,
		tokens:     tokens,
	}
}

// RegisterRequest contains the parameters for registering an account.
type RegisterRequest struct {
	Name     string
	Email    string
	Phone    string
	Password string
	Role     domain.Role
}

// AuthResult is the outcome of a successful register or login.
type AuthResult struct {
	Token string
	User  *domain.User
}

// Register creates a user account. Registering a dealer also creates its
// fleet profile so the dealer can start attaching drivers immediately.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*AuthResult, error) {
	if req.Email == "" || req.Password == "" || req.Name == "" {
		return nil, ErrInvalidCredentials
	}
	if !domain.ValidRole(req.Role) {
		return nil, ErrInvalidRole
	}

	existing, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: string(hash),
		Role:         req.Role,
		CreatedAt:    time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	if user.Role == domain.RoleDealer {
		dealer := &domain.Dealer{
			ID:          uuid.New().String(),
			UserID:      user.ID,
			CompanyName: fmt.Sprintf("%s's Fleet", user.Name),
			CreatedAt:   time.Now(),
		}
		if err := s.dealerRepo.Create(ctx, dealer); err != nil {
			return nil, err
		}
	}

	token, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user}, nil
}

// Login verifies credentials and issues an access token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user}, nil
}

// GetUser retrieves a user account by ID.
func (s *AuthService) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}
