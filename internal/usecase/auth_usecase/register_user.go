package auth

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"cafepos/internal/domain/model"
	"cafepos/internal/repository"
	"cafepos/internal/usecase"
	"cafepos/internal/validator"

	"golang.org/x/crypto/bcrypt"
)

// ユーザー登録の入力（管理者のみ）
type RegisterUserInput struct {
	Username    string
	Password    string
	DisplayName string
	Role        string // 空ならcashier
}

// ユーザー登録の出力
type RegisterUserOutput struct {
	User model.User `json:"user"`
}

// bcryptハッシュ化
type BcryptPasswordHasher struct {
	cost int
}

// 競合
var ErrUsernameAlreadyExists = errors.New("username already exists")

// 平文パスワードからハッシュへ。
type PasswordHasher interface {
	Hash(plain string) (string, error)
}

// RegisterUserUsecaseはユーザー登録の処理。
type RegisterUserUsecase struct {
	tx     repository.TransactionManager
	hasher PasswordHasher
	idGen  usecase.IDGenerator
	clock  usecase.Clock
}

// DI
func NewRegisterUserUsecase(
	tx repository.TransactionManager,
	hasher PasswordHasher,
	idGen usecase.IDGenerator,
	clock usecase.Clock,
) *RegisterUserUsecase {
	return &RegisterUserUsecase{
		tx:     tx,
		hasher: hasher,
		idGen:  idGen,
		clock:  clock,
	}
}

// ユーザー登録実行
func (u *RegisterUserUsecase) Execute(ctx context.Context, actor usecase.Actor, in RegisterUserInput) (RegisterUserOutput, error) {
	var out RegisterUserOutput

	if err := actor.Require(model.CapManageUsers); err != nil {
		return out, err
	}

	f := validator.Register(in.Username, in.Password, in.DisplayName)
	role := model.Role(in.Role)
	if in.Role == "" {
		role = model.RoleCashier
	}
	if !role.Valid() {
		f["role"] = "must be admin or cashier"
	}
	if !f.OK() {
		return out, usecase.NewValidationError(f)
	}

	// パスワードをハッシュ化
	hashed, err := u.hasher.Hash(in.Password)
	if err != nil {
		return out, err
	}

	now := u.clock.Now()
	user := &model.User{
		ID:           u.idGen.NewID(),
		Username:     strings.TrimSpace(in.Username),
		PasswordHash: hashed, // ハッシュを保存（平文は保存しない）
		DisplayName:  strings.TrimSpace(in.DisplayName),
		Role:         role,
		TokenVersion: 0,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = u.tx.WithinTx(ctx, func(r repository.TxRepos) error {
		// ユーザー名重複チェック
		existing, err := r.Users().FindByUsername(ctx, user.Username)
		if err != nil {
			return err
		}
		if existing != nil {
			return ErrUsernameAlreadyExists
		}

		if err := r.Users().Create(ctx, user); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return ErrUsernameAlreadyExists
			}
			return err
		}

		after, _ := json.Marshal(user)
		return r.AuditLogs().Create(ctx, model.AuditLog{
			ActorUserID:  actor.UserID,
			Action:       model.AuditActionCreate,
			ResourceType: model.AuditResourceUser,
			ResourceID:   user.ID,
			AfterJSON:    string(after),
			CreatedAt:    now,
		})
	})
	if err != nil {
		return out, err
	}

	out.User = *user
	return out, nil
}

// DI
func NewBcryptPasswordHasher(cost int) *BcryptPasswordHasher {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	return &BcryptPasswordHasher{cost}
}

// bcryptでハッシュ化
func (h *BcryptPasswordHasher) Hash(plain string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", err
	}

	return string(hashedBytes), nil
}

// bcryptハッシュと平文を比較
type BcryptPasswordVerifier struct{}

// DI
func NewBcryptPasswordVerifier() *BcryptPasswordVerifier {
	return &BcryptPasswordVerifier{}
}

// 平文(plain)をbcryptで比較
func (v *BcryptPasswordVerifier) Verify(plain string, hashed string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
	return err == nil
}
