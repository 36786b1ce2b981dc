package request

import "space-booking/internal/usecase/commands"

type CreateUserRequest struct {
	Name  string `json:"name" binding:"required,max=255"`
	Email string `json:"email" binding:"required,email"`
}

func (r CreateUserRequest) ToInput() commands.CreateUserInput {
	return commands.CreateUserInput{
		Name:  r.Name,
		Email: r.Email,
	}
}
