package db

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/DeTr1ll/Task-Manager/internal/core/domain"
	"github.com/DeTr1ll/Task-Manager/internal/core/ports"
)

type TelegramRepository struct {
	db *sqlx.DB
}

var _ ports.TelegramRepository = (*TelegramRepository)(nil)

func NewTelegramRepository(db *sqlx.DB) *TelegramRepository {
	return &TelegramRepository{db: db}
}

type profileRow struct {
	ID        uint64         `db:"id"`
	UserID    sql.NullInt64  `db:"user_id"`
	ChatID    int64          `db:"chat_id"`
	TempToken sql.NullString `db:"temp_token"`
}

func (r *TelegramRepository) ProfileByChatID(ctx context.Context, chatID int64) (domain.TelegramProfile, error) {
	var row profileRow
	err := r.db.GetContext(ctx, &row,
		"SELECT id, user_id, chat_id, temp_token FROM telegram_profiles WHERE chat_id = ?",
		chatID)
	if err == sql.ErrNoRows {
		return domain.TelegramProfile{}, domain.ErrProfileNotFound
	}
	if err != nil {
		return domain.TelegramProfile{}, err
	}
	return mapProfileRow(row), nil
}

// UpsertToken is a single atomic statement so concurrent first contacts from
// the same chat cannot create duplicate rows.
func (r *TelegramRepository) UpsertToken(ctx context.Context, chatID int64, token string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO telegram_profiles (chat_id, temp_token) VALUES (?, ?)
ON DUPLICATE KEY UPDATE temp_token = VALUES(temp_token)`,
		chatID, token)
	return err
}

func (r *TelegramRepository) BindUser(ctx context.Context, chatID int64, token string, userID uint64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE telegram_profiles SET user_id = ?, temp_token = NULL
WHERE chat_id = ? AND temp_token = ?`,
		userID, chatID, token)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrLinkTokenMismatch
	}
	return nil
}

func (r *TelegramRepository) Unlink(ctx context.Context, chatID int64) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE telegram_profiles SET user_id = NULL WHERE chat_id = ?", chatID)
	return err
}

func (r *TelegramRepository) ListLinkedProfiles(ctx context.Context) ([]domain.TelegramProfile, error) {
	var rows []profileRow
	err := r.db.SelectContext(ctx, &rows,
		"SELECT id, user_id, chat_id, temp_token FROM telegram_profiles WHERE user_id IS NOT NULL")
	if err != nil {
		return nil, err
	}

	profiles := make([]domain.TelegramProfile, 0, len(rows))
	for _, row := range rows {
		profiles = append(profiles, mapProfileRow(row))
	}
	return profiles, nil
}

func mapProfileRow(row profileRow) domain.TelegramProfile {
	profile := domain.TelegramProfile{
		ID:     row.ID,
		ChatID: row.ChatID,
	}
	if row.UserID.Valid {
		value := uint64(row.UserID.Int64)
		profile.UserID = &value
	}
	if row.TempToken.Valid {
		value := row.TempToken.String
		profile.TempToken = &value
	}
	return profile
}
