package model

import "time"

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleCashier Role = "cashier"
)

// ロールごとにできる操作
type Capability string

const (
	CapManageCatalog Capability = "manage_catalog"
	CapViewDashboard Capability = "view_dashboard"
	CapManageUsers   Capability = "manage_users"
	CapCheckout      Capability = "checkout"
)

var roleCapabilities = map[Role]map[Capability]bool{
	RoleAdmin: {
		CapManageCatalog: true,
		CapViewDashboard: true,
		CapManageUsers:   true,
		CapCheckout:      true,
	},
	RoleCashier: {
		CapCheckout: true,
	},
}

// Canはロールが操作を許可されているか返す。
func (r Role) Can(c Capability) bool {
	return roleCapabilities[r][c]
}

func (r Role) Valid() bool {
	_, ok := roleCapabilities[r]
	return ok
}

type User struct {
	ID           string     `gorm:"type:uuid;primaryKey" json:"id"`
	Username     string     `gorm:"type:varchar(50);uniqueIndex;not null" json:"username"`
	PasswordHash string     `gorm:"column:password_hash;not null" json:"-"`
	DisplayName  string     `gorm:"type:varchar(100)" json:"display_name"`
	Role         Role       `gorm:"type:varchar(20);not null;default:'cashier'" json:"role"`
	TokenVersion int        `gorm:"not null;default:0" json:"token_version"`
	IsActive     bool       `gorm:"not null" json:"is_active"`
	LastLoginAt  *time.Time `json:"last_login_at"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// レシートなどに出す名前
func (u User) Name() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.Username
}
