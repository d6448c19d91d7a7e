package repository

import (
	"cafepos/internal/domain/model"
	"context"
)

// 保存・取得を約束
type UserRepository interface {
	//新規ユーザー作成
	Create(ctx context.Context, user *model.User) error
	// IDからユーザーを1件取得する。無ければnil, nil
	FindByID(ctx context.Context, userID string) (*model.User, error)
	//ユーザー名からユーザーを一件取得する。無ければnil, nil
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	// 最終ログインなどの更新
	Update(ctx context.Context, user *model.User) error
	//トークンのバージョンを＋１
	IncrementTokenVersion(ctx context.Context, userID string) error
}
