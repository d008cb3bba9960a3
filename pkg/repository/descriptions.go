package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ketvision/telegram-bot/pkg/domain"
)

type descriptionsRepository struct {
	db *sql.DB
}

func NewDescriptionsRepository(db *sql.DB) *descriptionsRepository {
	return &descriptionsRepository{db: db}
}

func (r *descriptionsRepository) Save(ctx context.Context, d domain.Description) error {
	const query = `
		INSERT INTO descriptions (chat_id, file_id, model, text)
		VALUES ($1, $2, $3, $4)
	`

	if _, err := r.db.ExecContext(ctx, query, d.ChatID, d.FileID, d.Model, d.Text); err != nil {
		return fmt.Errorf("saving description: %w", err)
	}

	return nil
}

func (r *descriptionsRepository) GetRecent(ctx context.Context, chatID int64, limit int) ([]domain.Description, error) {
	const query = `
		SELECT id, chat_id, file_id, model, text, created_at
		FROM descriptions
		WHERE chat_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.db.QueryContext(ctx, query, chatID, limit)
	if err != nil {
		return nil, fmt.Errorf("fetching descriptions by chatID: %w", err)
	}
	defer rows.Close()

	var descriptions []domain.Description
	for rows.Next() {
		var d domain.Description
		if err := rows.Scan(&d.ID, &d.ChatID, &d.FileID, &d.Model, &d.Text, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning description row: %w", err)
		}
		descriptions = append(descriptions, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating description rows: %w", err)
	}

	return descriptions, nil
}
