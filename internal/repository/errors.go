package repository

import "errors"

var (
	// 対象が無い
	ErrNotFound = errors.New("not found")
	// 一意制約違反（名前・取引番号など）
	ErrDuplicate = errors.New("duplicate")
)
