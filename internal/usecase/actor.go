package usecase

import (
	"cafepos/internal/domain/model"
)

// Actor はリクエストしてきたログイン中のユーザー。
// SessionIDはログインごとに振られる端末セッション（カートの持ち主）。
type Actor struct {
	UserID    string
	Role      model.Role
	SessionID string
}

// Require はログイン済みかつcapを持つか確認する。
func (a Actor) Require(c model.Capability) error {
	if a.UserID == "" {
		return errUnauthorized
	}
	if !a.Role.Can(c) {
		return errForbidden
	}
	return nil
}

func (a Actor) requireSession() error {
	if a.UserID == "" || a.SessionID == "" {
		return errUnauthorized
	}
	return nil
}
