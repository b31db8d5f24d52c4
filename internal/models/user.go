// Package models содержит доменные структуры планировщика свадеб:
// пользователи с жизненным циклом аккаунта, свадьбы, гости, задачи,
// бюджет, подрядчики и тайм-план дня свадьбы, а также вспомогательные
// типы для приёма данных из JSON-запросов.
package models

import "time"

// AccountStatus описывает статус жизненного цикла аккаунта.
// Множество значений закрытое, в любой момент наблюдения действует ровно одно.
type AccountStatus string

const (
	// StatusTrialActive — активный пробный период, полный доступ.
	StatusTrialActive AccountStatus = "trial_active"
	// StatusTrialExpired — пробный период истёк, только чтение.
	StatusTrialExpired AccountStatus = "trial_expired"
	// StatusPremiumActive — оплаченная подписка, полный доступ.
	StatusPremiumActive AccountStatus = "premium_active"
	// StatusPremiumCancelled — подписка отменена, только чтение.
	StatusPremiumCancelled AccountStatus = "premium_cancelled"
	// StatusSuspended — аккаунт заблокирован администратором.
	StatusSuspended AccountStatus = "suspended"
	// StatusDeleted — данные аккаунта удалены.
	StatusDeleted AccountStatus = "deleted"
)

// Valid сообщает, принадлежит ли значение закрытому перечислению статусов.
func (s AccountStatus) Valid() bool {
	switch s {
	case StatusTrialActive, StatusTrialExpired, StatusPremiumActive,
		StatusPremiumCancelled, StatusSuspended, StatusDeleted:
		return true
	}
	return false
}

// User представляет зарегистрированного пользователя системы.
type User struct {
	UID                 string        // Уникальный идентификатор пользователя
	Email               string        // Электронная почта
	Username            string        // Имя пользователя (уникальное)
	PasswordHash        string        // Хэш пароля пользователя
	Role                string        // Роль пользователя, admin или user
	AccountStatus       AccountStatus // Текущий статус жизненного цикла
	TrialEndsAt         *time.Time    // Дата окончания пробного периода
	SubscriptionExpiry  *time.Time    // Дата истечения оплаченной подписки
	DeletionScheduledAt *time.Time    // Дата запланированного удаления данных
	StripeCustomerID    *string       // Идентификатор клиента у платёжного провайдера
	CreatedAt           time.Time
}

// DummyRegister используется для приёма данных регистрации из JSON-запроса.
type DummyRegister struct {
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required,alphanum"`
	Password string `json:"password" validate:"required,min=8"`
}

// DummyLogin используется для приёма данных входа из JSON-запроса.
type DummyLogin struct {
	Username string `json:"username" validate:"required,alphanum"`
	Password string `json:"password" validate:"required"`
}

// DummyAccountDelete подтверждает запрос на удаление аккаунта.
// Поле Confirm должно содержать слово DELETE, иначе запрос отклоняется
// до обращения к хранилищу.
type DummyAccountDelete struct {
	Confirm string `json:"confirm" validate:"required,eq=DELETE"`
}
