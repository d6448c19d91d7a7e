package auth

import (
	"context"

	"cafepos/internal/domain/model"
	"cafepos/internal/repository"
)

type MeUsecase struct {
	userRepo repository.UserRepository
}

func NewMeUsecase(userRepo repository.UserRepository) *MeUsecase {
	return &MeUsecase{userRepo: userRepo}
}

// ログイン中のユーザー
func (u *MeUsecase) Execute(ctx context.Context, userID string) (model.User, error) {
	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		return model.User{}, err
	}
	if user == nil {
		return model.User{}, ErrUserNotFound
	}
	if !user.IsActive {
		return model.User{}, ErrUserInactive
	}
	return *user, nil
}
