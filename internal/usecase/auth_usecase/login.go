package auth

import (
	"context"
	"errors"
	"time"

	"cafepos/internal/domain/model"
	"cafepos/internal/repository"
	"cafepos/internal/usecase"
	"cafepos/internal/validator"
)

// handlerからusecaseに渡す入力
type LoginInput struct {
	Username string
	Password string
}

// token 形（JwtAccessToken相当）
type JwtAccessToken struct {
	AccessToken  string `json:"access_token"`
	ExpiresIn    int    `json:"expires_in"`
	TokenVersion int    `json:"token_version"`
}

// handlerがJSONにして返す
type LoginOutput struct {
	User  model.User     `json:"user"`
	Token JwtAccessToken `json:"token"`
}

// ユーザー名またはパスワードが違う
var ErrInvalidCredentials = errors.New("invalid credentials")

// 停止済みユーザー
var ErrUserInactive = errors.New("user is inactive")

// JWTを発行する約束。sessionIDはレジ端末のカートの持ち主。
type AccessTokenIssuer interface {
	Issue(userID string, role model.Role, tokenVersion int, sessionID string, now time.Time) (token string, expiresAt time.Time, err error)
}

// 入力パスワードと保存したハッシュを比べる約束
type PasswordVerifier interface {
	Verify(plain string, hashed string) bool
}

type LoginUsecase struct {
	userRepo repository.UserRepository
	verifier PasswordVerifier
	issuer   AccessTokenIssuer
	idGen    usecase.IDGenerator
	clock    usecase.Clock
}

func NewLoginUsecase(
	userRepo repository.UserRepository,
	verifier PasswordVerifier,
	issuer AccessTokenIssuer,
	idGen usecase.IDGenerator,
	clock usecase.Clock,
) *LoginUsecase {
	return &LoginUsecase{
		userRepo: userRepo,
		verifier: verifier,
		issuer:   issuer,
		idGen:    idGen,
		clock:    clock,
	}
}

// ログイン処理を実行する。ログインごとに新しい端末セッションになる。
func (u *LoginUsecase) Execute(ctx context.Context, in LoginInput) (LoginOutput, error) {
	var out LoginOutput

	if f := validator.Login(in.Username, in.Password); !f.OK() {
		return out, usecase.NewValidationError(f)
	}

	//ユーザー名でユーザー取得
	user, err := u.userRepo.FindByUsername(ctx, in.Username)
	if err != nil {
		return out, err
	}
	if user == nil {
		return out, ErrInvalidCredentials
	}

	//パスワード照合
	if ok := u.verifier.Verify(in.Password, user.PasswordHash); !ok {
		return out, ErrInvalidCredentials
	}

	//停止ユーザーはログイン不可
	if !user.IsActive {
		return out, ErrUserInactive
	}

	//AccessToken発行
	now := u.clock.Now()
	sessionID := u.idGen.NewID()
	accessToken, accessExp, err := u.issuer.Issue(user.ID, user.Role, user.TokenVersion, sessionID, now)
	if err != nil {
		return out, err
	}

	//最終ログイン時刻更新
	user.LastLoginAt = &now
	if err := u.userRepo.Update(ctx, user); err != nil {
		return out, err
	}

	out.User = *user
	out.Token = JwtAccessToken{
		AccessToken:  accessToken,
		ExpiresIn:    int(accessExp.Sub(now).Seconds()),
		TokenVersion: user.TokenVersion,
	}
	return out, nil
}
