// Package validator は入力のフィールド単位チェック。
// DBは見ない（存在確認や重複はusecase側）。
package validator

import (
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// フィールド名→メッセージ。空なら問題なし。
type Fields map[string]string

func (f Fields) add(field, msg string) {
	if _, exists := f[field]; !exists {
		f[field] = msg
	}
}

func (f Fields) OK() bool {
	return len(f) == 0
}

const (
	maxCategoryName = 100
	maxMenuItemName = 200
	maxDescription  = 1000
	maxIcon         = 50
	maxImageURL     = 500
	maxUsername     = 50
	minUsername     = 3
	minPassword     = 8
	maxPassword     = 72 // bcryptの上限
	maxDisplayName  = 100
)

// numeric(12,2)に収まる上限
var maxPrice = decimal.RequireFromString("9999999999.99")

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

func requiredLen(f Fields, field, v string, max int) {
	v = strings.TrimSpace(v)
	if v == "" {
		f.add(field, "required")
		return
	}
	if utf8.RuneCountInString(v) > max {
		f.add(field, "too long")
	}
}

func optionalLen(f Fields, field, v string, max int) {
	if utf8.RuneCountInString(v) > max {
		f.add(field, "too long")
	}
}

// IsUUID はIDの形式チェック
func IsUUID(v string) bool {
	_, err := uuid.Parse(v)
	return err == nil
}

// Category はカテゴリの作成・更新入力
func Category(name, description, icon string) Fields {
	f := Fields{}
	requiredLen(f, "name", name, maxCategoryName)
	optionalLen(f, "description", description, maxDescription)
	optionalLen(f, "icon", icon, maxIcon)
	return f
}

// MenuItem はメニューの作成・更新入力。priceは10進文字列。
func MenuItem(name, categoryID, price, description, imageURL string) (decimal.Decimal, Fields) {
	f := Fields{}
	requiredLen(f, "name", name, maxMenuItemName)
	optionalLen(f, "description", description, maxDescription)

	if strings.TrimSpace(categoryID) == "" {
		f.add("category_id", "required")
	} else if !IsUUID(categoryID) {
		f.add("category_id", "invalid id")
	}

	p, msg := Money(price)
	if msg != "" {
		f.add("price", msg)
	}

	if imageURL != "" {
		optionalLen(f, "image_url", imageURL, maxImageURL)
		u, err := url.Parse(imageURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			f.add("image_url", "must be an http(s) URL")
		}
	}

	return p, f
}

// Money は金額文字列を読む。問題があればメッセージを返す。
func Money(v string) (decimal.Decimal, string) {
	v = strings.TrimSpace(v)
	if v == "" {
		return decimal.Zero, "required"
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Zero, "must be a decimal number"
	}
	if d.IsNegative() {
		return decimal.Zero, "must be >= 0"
	}
	if d.Exponent() < -2 && !d.Equal(d.Round(2)) {
		return decimal.Zero, "at most 2 decimal places"
	}
	if d.GreaterThan(maxPrice) {
		return decimal.Zero, "too large"
	}
	return d, ""
}

// Login はログイン入力
func Login(username, password string) Fields {
	f := Fields{}
	if strings.TrimSpace(username) == "" {
		f.add("username", "required")
	}
	if password == "" {
		f.add("password", "required")
	}
	return f
}

// Register はユーザー登録入力。roleの妥当性はusecase側。
func Register(username, password, displayName string) Fields {
	f := Fields{}

	username = strings.TrimSpace(username)
	switch {
	case username == "":
		f.add("username", "required")
	case len(username) < minUsername || len(username) > maxUsername:
		f.add("username", "must be 3-50 characters")
	case !usernamePattern.MatchString(username):
		f.add("username", "letters, digits, '_', '.', '-' only")
	}

	switch {
	case password == "":
		f.add("password", "required")
	case len(password) < minPassword:
		f.add("password", "too short")
	case len(password) > maxPassword:
		f.add("password", "too long")
	case isWeakPassword(password):
		f.add("password", "too weak")
	}

	optionalLen(f, "display_name", displayName, maxDisplayName)
	return f
}

// パスワードのよくある弱いパスワード
func isWeakPassword(password string) bool {
	normalized := strings.ToLower(strings.TrimSpace(password))

	weak := map[string]struct{}{
		"password":    {},
		"password123": {},
		"1234567890":  {},
		"12345678":    {},
		"qwertyuiop":  {},
		"letmein1":    {},
	}

	_, ok := weak[normalized]
	return ok
}
