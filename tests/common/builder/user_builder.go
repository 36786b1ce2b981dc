//go:build unit || e2e

package builder

import (
	"time"

	"space-booking/internal/domain/user"
	reqdto "space-booking/internal/handler/dto/request"
	"space-booking/internal/usecase/commands"
	"space-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type UserBuilder struct {
	Name           string
	Email          string
	ReservationIDs []uuid.UUID
	CreatedAt      time.Time
}

func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		Name:      "Test User",
		Email:     "test@example.com",
		CreatedAt: time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (b *UserBuilder) With(mutate func(*UserBuilder)) *UserBuilder {
	mutate(b)
	return b
}

// Build methods
func (b *UserBuilder) BuildDomain() (*user.User, error) {
	email, err := user.NewEmail(b.Email)
	if err != nil {
		return nil, err
	}
	return user.NewUser(b.Name, email, b.CreatedAt)
}

func (b *UserBuilder) BuildCreateInput() commands.CreateUserInput {
	return commands.CreateUserInput{
		Name:  b.Name,
		Email: b.Email,
	}
}

func (b *UserBuilder) BuildCreateRequestDTO() reqdto.CreateUserRequest {
	return reqdto.CreateUserRequest{
		Name:  b.Name,
		Email: b.Email,
	}
}

func (b *UserBuilder) BuildView() *queries.UserView {
	return &queries.UserView{
		ID:             uuid.New(),
		Name:           b.Name,
		Email:          b.Email,
		ReservationIDs: b.ReservationIDs,
		CreatedAt:      b.CreatedAt,
	}
}
