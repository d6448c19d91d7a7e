package auth

import (
	"context"
	"errors"

	"cafepos/internal/domain/model"
	"cafepos/internal/repository"
	"cafepos/internal/usecase"
)

// 対象ユーザーがいない
var ErrUserNotFound = errors.New("user not found")

// 端末のカートを捨てる約束（SessionRegistry）
type SessionCloser interface {
	Discard(sessionID string)
}

type ForceLogoutOutput struct {
	UserID          string `json:"user_id"`
	NewTokenVersion int    `json:"new_token_version"`
}

type LogoutUsecase struct {
	userRepo repository.UserRepository
	sessions SessionCloser
}

func NewLogoutUsecase(userRepo repository.UserRepository, sessions SessionCloser) *LogoutUsecase {
	return &LogoutUsecase{userRepo: userRepo, sessions: sessions}
}

// Execute は自分の端末のカートを捨て、token_versionを上げて今のトークンを無効にする。
func (u *LogoutUsecase) Execute(ctx context.Context, actor usecase.Actor) error {
	if actor.UserID == "" {
		return ErrUserNotFound
	}

	u.sessions.Discard(actor.SessionID)

	if err := u.userRepo.IncrementTokenVersion(ctx, actor.UserID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

// ForceLogout は管理者が他のユーザーのトークンを全部無効にする。
func (u *LogoutUsecase) ForceLogout(ctx context.Context, actor usecase.Actor, targetUserID string) (ForceLogoutOutput, error) {
	if err := actor.Require(model.CapManageUsers); err != nil {
		return ForceLogoutOutput{}, err
	}

	if err := u.userRepo.IncrementTokenVersion(ctx, targetUserID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ForceLogoutOutput{}, ErrUserNotFound
		}
		return ForceLogoutOutput{}, err
	}

	//更新後を取得してnew_token_versionを返す
	user, err := u.userRepo.FindByID(ctx, targetUserID)
	if err != nil {
		return ForceLogoutOutput{}, err
	}
	if user == nil {
		return ForceLogoutOutput{}, ErrUserNotFound
	}

	return ForceLogoutOutput{
		UserID:          user.ID,
		NewTokenVersion: user.TokenVersion,
	}, nil
}
