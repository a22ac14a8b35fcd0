package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Role роль пользователя
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// User учётная запись покупателя или администратора
type User struct {
	ID            int64
	Email         string
	PasswordHash  string
	Name          string
	Surname       string
	ContactNumber string
	Role          Role
	CreatedAt     time.Time
}

// FullName имя и фамилия через пробел
func (u *User) FullName() string {
	return strings.TrimSpace(u.Name + " " + u.Surname)
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// CustomerStats сводка по покупателю для админки
type CustomerStats struct {
	User          User
	OrdersCount   int
	BookingsCount int
	TotalSpent    decimal.Decimal
	LastActivity  *time.Time
}

// Actor пользователь, выполняющий операцию (из JWT)
type Actor struct {
	UserID int64
	Role   Role
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// CanAccess владелец ресурса или администратор
func (a Actor) CanAccess(ownerID int64) bool {
	return a.IsAdmin() || a.UserID == ownerID
}
