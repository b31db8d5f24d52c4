package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/magabrotheeeer/wedding-planner/internal/models"
)

// ErrUserNotFound возвращается, когда пользователь не найден в базе.
var ErrUserNotFound = errors.New("user not found")

// RegisterUser сохраняет нового пользователя и возвращает его UID.
func (s *Storage) RegisterUser(ctx context.Context, user models.User) (string, error) {
	const op = "storage.RegisterUser"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO users (uid, email, username, password_hash, role,
			      account_status, trial_ends_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING uid`
	var uid string
	err := s.DB.QueryRowContext(ctx, query,
		user.UID, user.Email, user.Username, user.PasswordHash, user.Role,
		user.AccountStatus, user.TrialEndsAt).Scan(&uid)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return uid, nil
}

// GetUserByUsername возвращает пользователя по имени.
func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	const op = "storage.GetUserByUsername"

	query := `SELECT uid, email, username, password_hash, role, account_status,
				trial_ends_at, subscription_expiry, deletion_scheduled_at,
				stripe_customer_id, created_at
			  FROM users WHERE username = $1`
	row := s.DB.QueryRowContext(ctx, query, username)

	var user models.User
	err := row.Scan(&user.UID, &user.Email, &user.Username, &user.PasswordHash,
		&user.Role, &user.AccountStatus, &user.TrialEndsAt, &user.SubscriptionExpiry,
		&user.DeletionScheduledAt, &user.StripeCustomerID, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &user, nil
}

// GetUserByUID возвращает пользователя по его идентификатору.
func (s *Storage) GetUserByUID(ctx context.Context, userUID string) (*models.User, error) {
	const op = "storage.GetUserByUID"

	query := `SELECT uid, email, username, password_hash, role, account_status,
				trial_ends_at, subscription_expiry, deletion_scheduled_at,
				stripe_customer_id, created_at
			  FROM users WHERE uid = $1`
	row := s.DB.QueryRowContext(ctx, query, userUID)

	var user models.User
	err := row.Scan(&user.UID, &user.Email, &user.Username, &user.PasswordHash,
		&user.Role, &user.AccountStatus, &user.TrialEndsAt, &user.SubscriptionExpiry,
		&user.DeletionScheduledAt, &user.StripeCustomerID, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &user, nil
}

// UpdateAccountStatus записывает новый статус жизненного цикла и даты,
// которыми этот статус обусловлен. Возвращает количество изменённых строк.
func (s *Storage) UpdateAccountStatus(ctx context.Context, userUID string,
	status models.AccountStatus, deletionScheduledAt *time.Time) (int, error) {
	const op = "storage.UpdateAccountStatus"

	query := `UPDATE users
			  SET account_status = $1, deletion_scheduled_at = $2
			  WHERE uid = $3`
	result, err := s.DB.ExecContext(ctx, query, status, deletionScheduledAt, userUID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// SetStripeCustomerID сохраняет идентификатор клиента платёжного провайдера.
func (s *Storage) SetStripeCustomerID(ctx context.Context, userUID, customerID string) error {
	const op = "storage.SetStripeCustomerID"

	query := `UPDATE users SET stripe_customer_id = $1 WHERE uid = $2`
	if _, err := s.DB.ExecContext(ctx, query, customerID, userUID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ActivatePremium переводит аккаунт в premium_active: очищает дату удаления
// и устанавливает срок действия подписки.
func (s *Storage) ActivatePremium(ctx context.Context, userUID string, expiry time.Time) error {
	const op = "storage.ActivatePremium"

	query := `UPDATE users
			  SET account_status = $1, subscription_expiry = $2, deletion_scheduled_at = NULL
			  WHERE uid = $3`
	if _, err := s.DB.ExecContext(ctx, query, models.StatusPremiumActive, expiry, userUID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// FindUserByStripeCustomerID возвращает пользователя по идентификатору
// клиента платёжного провайдера.
func (s *Storage) FindUserByStripeCustomerID(ctx context.Context, customerID string) (*models.User, error) {
	const op = "storage.FindUserByStripeCustomerID"

	query := `SELECT uid, email, username, password_hash, role, account_status,
				trial_ends_at, subscription_expiry, deletion_scheduled_at,
				stripe_customer_id, created_at
			  FROM users WHERE stripe_customer_id = $1`
	row := s.DB.QueryRowContext(ctx, query, customerID)

	var user models.User
	err := row.Scan(&user.UID, &user.Email, &user.Username, &user.PasswordHash,
		&user.Role, &user.AccountStatus, &user.TrialEndsAt, &user.SubscriptionExpiry,
		&user.DeletionScheduledAt, &user.StripeCustomerID, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &user, nil
}

// FindExpiredTrials возвращает пользователей, чей пробный период истёк,
// но статус ещё trial_active.
func (s *Storage) FindExpiredTrials(ctx context.Context, now time.Time) ([]*models.User, error) {
	const op = "storage.FindExpiredTrials"

	query := `SELECT uid, email, username, password_hash, role, account_status,
				trial_ends_at, subscription_expiry, deletion_scheduled_at,
				stripe_customer_id, created_at
			  FROM users
			  WHERE account_status = $1 AND trial_ends_at < $2`
	return s.queryUsers(ctx, op, query, models.StatusTrialActive, now)
}

// FindUsersInDeletionWindow возвращает пользователей в режиме «только чтение»,
// чья дата удаления попадает в окно предупреждения.
func (s *Storage) FindUsersInDeletionWindow(ctx context.Context, now time.Time, window time.Duration) ([]*models.User, error) {
	const op = "storage.FindUsersInDeletionWindow"

	query := `SELECT uid, email, username, password_hash, role, account_status,
				trial_ends_at, subscription_expiry, deletion_scheduled_at,
				stripe_customer_id, created_at
			  FROM users
			  WHERE account_status IN ($1, $2)
			    AND deletion_scheduled_at > $3
			    AND deletion_scheduled_at <= $4`
	return s.queryUsers(ctx, op, query,
		models.StatusTrialExpired, models.StatusPremiumCancelled, now, now.Add(window))
}

// FindUsersDueForPurge возвращает пользователей, чья дата удаления наступила.
func (s *Storage) FindUsersDueForPurge(ctx context.Context, now time.Time) ([]*models.User, error) {
	const op = "storage.FindUsersDueForPurge"

	query := `SELECT uid, email, username, password_hash, role, account_status,
				trial_ends_at, subscription_expiry, deletion_scheduled_at,
				stripe_customer_id, created_at
			  FROM users
			  WHERE account_status IN ($1, $2)
			    AND deletion_scheduled_at <= $3`
	return s.queryUsers(ctx, op, query,
		models.StatusTrialExpired, models.StatusPremiumCancelled, now)
}

// PurgeUserData удаляет все записи свадьбы пользователя и помечает аккаунт
// как deleted. Выполняется в одной транзакции.
func (s *Storage) PurgeUserData(ctx context.Context, userUID string) error {
	const op = "storage.PurgeUserData"

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = tx.Rollback() }()

	tables := []string{"guests", "tasks", "budget_items", "vendors", "timeline_blocks"}
	for _, table := range tables {
		query := fmt.Sprintf(`DELETE FROM %s WHERE wedding_id IN
			(SELECT id FROM weddings WHERE user_uid = $1)`, table)
		if _, err := tx.ExecContext(ctx, query, userUID); err != nil {
			return fmt.Errorf("%s: delete from %s: %w", op, table, err)
		}
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM weddings WHERE user_uid = $1`, userUID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	query := `UPDATE users SET account_status = $1, deletion_scheduled_at = NULL WHERE uid = $2`
	if _, err := tx.ExecContext(ctx, query, models.StatusDeleted, userUID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *Storage) queryUsers(ctx context.Context, op, query string, args ...any) ([]*models.User, error) {
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = rows.Close() }()

	var users []*models.User
	for rows.Next() {
		var user models.User
		if err := rows.Scan(&user.UID, &user.Email, &user.Username, &user.PasswordHash,
			&user.Role, &user.AccountStatus, &user.TrialEndsAt, &user.SubscriptionExpiry,
			&user.DeletionScheduledAt, &user.StripeCustomerID, &user.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		users = append(users, &user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return users, nil
}
