package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/iliyamo/cinema-tickets/internal/model"
)

var ErrInvalidUser = errors.New("full name, valid email and password are required")

var validate = validator.New(validator.WithRequiredStructEnabled())

// registration carries the same rules the HTTP layer applies to its body, so
// callers other than the API (cinemactl, tests) get them too.
type registration struct {
	FullName string `validate:"required,max=255"`
	Email    string `validate:"required,email,max=255"`
	Password string `validate:"required"`
}

type UserStore interface {
	Create(ctx context.Context, fullName, email, password string, cost int) (*model.User, error)
	GetByID(ctx context.Context, id uint64) (*model.User, error)
	FindByEmailAndPassword(ctx context.Context, email, password string) (*model.User, error)
}

type UserService struct {
	users      UserStore
	bcryptCost int
}

func NewUserService(users UserStore, bcryptCost int) *UserService {
	return &UserService{users: users, bcryptCost: bcryptCost}
}

// Register creates a user.  A taken email is repository.ErrEmailExists.
func (s *UserService) Register(ctx context.Context, fullName, email, password string) (*model.User, error) {
	in := registration{FullName: strings.TrimSpace(fullName), Email: strings.TrimSpace(email), Password: password}
	if err := validate.Struct(in); err != nil {
		return nil, ErrInvalidUser
	}
	return s.users.Create(ctx, fullName, email, password, s.bcryptCost)
}

// FindByEmailAndPassword authenticates a user.  Unknown email and wrong
// password are both repository.ErrUserNotFound.
func (s *UserService) FindByEmailAndPassword(ctx context.Context, email, password string) (*model.User, error) {
	return s.users.FindByEmailAndPassword(ctx, email, password)
}

func (s *UserService) FindByID(ctx context.Context, id uint64) (*model.User, error) {
	return s.users.GetByID(ctx, id)
}
