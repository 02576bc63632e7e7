package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/owenj053/netone-backend/internal/auth"
	"github.com/owenj053/netone-backend/internal/domain"
	"github.com/owenj053/netone-backend/internal/repository"
	apperrors "github.com/owenj053/netone-backend/pkg/util"
)

// UserService handles account registration, login and the user registry.
type UserService struct {
	users      repository.UserRepository
	audit      *AuditTrail
	tokens     *auth.TokenManager
	bcryptCost int
	logger     *zap.Logger
}

// UserDependencies bundles collaborators for the user service.
type UserDependencies struct {
	UserRepo   repository.UserRepository
	Audit      *AuditTrail
	Tokens     *auth.TokenManager
	BcryptCost int
	Logger     *zap.Logger
}

// UserUpdateInput describes the optional fields of a user update.
type UserUpdateInput struct {
	FullName *string
	Role     *domain.Role
	Password *string
}

// NewUserService constructs the service.
func NewUserService(deps UserDependencies) *UserService {
	return &UserService{
		users:      deps.UserRepo,
		audit:      deps.Audit,
		tokens:     deps.Tokens,
		bcryptCost: deps.BcryptCost,
		logger:     deps.Logger,
	}
}

// Register creates a new account.
func (s *UserService) Register(ctx context.Context, actorID int64, engineerID, fullName, password string, role domain.Role) (*domain.User, error) {
	if !role.Is(domain.RoleEngineer) && !role.Is(domain.RoleManager) {
		return nil, apperrors.NewValidationError("role must be engineer or manager", nil)
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	user := &domain.User{
		EngineerID:   strings.TrimSpace(engineerID),
		FullName:     strings.TrimSpace(fullName),
		PasswordHash: hash,
		Role:         domain.Role(strings.ToLower(string(role))),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if apperrors.IsUniqueViolation(err) {
			return nil, apperrors.NewConflict("engineer id already registered", map[string]any{"engineer_id": user.EngineerID})
		}
		return nil, apperrors.MapError(err)
	}

	s.audit.Append(ctx, actorID, domain.AuditRegisterUser, "user", user.ID, map[string]any{
		"engineer_id": user.EngineerID,
		"role":        user.Role,
	})
	return user, nil
}

// Login verifies credentials and returns a signed token with its expiry.
func (s *UserService) Login(ctx context.Context, engineerID, password string) (*domain.User, string, time.Time, error) {
	user, err := s.users.GetByEngineerID(ctx, engineerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, "", time.Time{}, apperrors.MapError(err)
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}

	token, expiresAt, err := s.tokens.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, "", time.Time{}, apperrors.MapError(err)
	}

	s.audit.Append(ctx, user.ID, domain.AuditLoginUser, "user", user.ID, map[string]any{
		"engineer_id": user.EngineerID,
	})
	return user, token, expiresAt, nil
}

// ListByRole lists the registry filtered by role.
func (s *UserService) ListByRole(ctx context.Context, role domain.Role) ([]domain.User, error) {
	users, err := s.users.ListByRole(ctx, role)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return users, nil
}

// Update patches a user's name, role or password.
func (s *UserService) Update(ctx context.Context, actorID, userID int64, input UserUpdateInput) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"user_id": userID})
		}
		return nil, apperrors.MapError(err)
	}

	if input.FullName != nil && strings.TrimSpace(*input.FullName) != "" {
		user.FullName = strings.TrimSpace(*input.FullName)
	}
	if input.Role != nil {
		if !input.Role.Is(domain.RoleEngineer) && !input.Role.Is(domain.RoleManager) {
			return nil, apperrors.NewValidationError("role must be engineer or manager", nil)
		}
		user.Role = domain.Role(strings.ToLower(string(*input.Role)))
	}
	if input.Password != nil && *input.Password != "" {
		hash, err := auth.HashPassword(*input.Password, s.bcryptCost)
		if err != nil {
			return nil, apperrors.MapError(err)
		}
		user.PasswordHash = hash
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.audit.Append(ctx, actorID, domain.AuditUpdateUser, "user", user.ID, map[string]any{
		"engineer_id": user.EngineerID,
		"role":        user.Role,
	})
	return user, nil
}
