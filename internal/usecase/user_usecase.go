package usecase

import (
	"context"

	"talent-screen/internal/domain/user"
	ucuser "talent-screen/internal/usecase/user"

	"github.com/google/uuid"
)

type UserUsecase interface {
	GetMe(ctx context.Context, userID uuid.UUID) (user.User, error)
	UpdateMe(ctx context.Context, userID uuid.UUID, in ucuser.UpdateMeInput) (user.User, error)
}

type Users struct {
	svc *ucuser.Service
}

func NewUserUsecase(users user.Repository) *Users {
	return &Users{svc: ucuser.NewService(users)}
}

func (u *Users) GetMe(ctx context.Context, userID uuid.UUID) (user.User, error) {
	return u.svc.GetMe(ctx, userID)
}

func (u *Users) UpdateMe(ctx context.Context, userID uuid.UUID, in ucuser.UpdateMeInput) (user.User, error) {
	return u.svc.UpdateMe(ctx, userID, in)
}
