package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_chatbot_store.go -package=mocks docbot/internal/storage ChatbotStore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

const chatbotColumns = "id, name, document_id, color, icon, welcome_message, placeholder, created_at, updated_at"

// ChatbotStore defines the interface for chatbot storage operations.
type ChatbotStore interface {
	// Create inserts a new chatbot. Timestamps are set when zero.
	Create(ctx context.Context, bot *ChatbotRecord) error
	// GetByID gets a chatbot by ID.
	// Returns nil and ErrNotFound if not found.
	GetByID(ctx context.Context, id string) (*ChatbotRecord, error)
	// List returns all chatbots, oldest first.
	List(ctx context.Context) ([]ChatbotRecord, error)
	// Update replaces every mutable field of an existing chatbot.
	// Returns ErrNotFound if the chatbot does not exist.
	Update(ctx context.Context, bot *ChatbotRecord) error
	// Delete removes a chatbot.
	// Returns ErrNotFound if the chatbot does not exist.
	Delete(ctx context.Context, id string) error
}

// ChatbotRepo provides methods for chatbot operations.
// It implements the ChatbotStore interface.
type ChatbotRepo struct {
	db *sql.DB
}

// NewChatbotRepo creates a new ChatbotRepo.
func NewChatbotRepo(db *sql.DB) *ChatbotRepo {
	return &ChatbotRepo{db: db}
}

// Create inserts a new chatbot.
func (r *ChatbotRepo) Create(ctx context.Context, bot *ChatbotRecord) error {
	if bot.ID == "" {
		return errors.New("chatbot id is required")
	}
	now := time.Now().UTC()
	if bot.CreatedAt.IsZero() {
		bot.CreatedAt = now
	}
	if bot.UpdatedAt.IsZero() {
		bot.UpdatedAt = bot.CreatedAt
	}

	_, err := r.db.ExecContext(ctx,
		"INSERT INTO chatbots ("+chatbotColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
		bot.ID, bot.Name, bot.DocumentID, bot.Color, bot.Icon, bot.WelcomeMessage, bot.Placeholder,
		bot.CreatedAt, bot.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert chatbot: %w", err)
	}

	return nil
}

// GetByID gets a chatbot by ID.
// Returns nil and ErrNotFound if not found.
func (r *ChatbotRepo) GetByID(ctx context.Context, id string) (*ChatbotRecord, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+chatbotColumns+" FROM chatbots WHERE id = ?", id)

	bot, err := scanChatbot(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query chatbot: %w", err)
	}

	return bot, nil
}

// List returns all chatbots ordered by creation time.
func (r *ChatbotRepo) List(ctx context.Context) ([]ChatbotRecord, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+chatbotColumns+" FROM chatbots ORDER BY created_at, rowid")
	if err != nil {
		return nil, fmt.Errorf("failed to query chatbots: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	bots := []ChatbotRecord{}
	for rows.Next() {
		bot, err := scanChatbot(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan chatbot: %w", err)
		}
		bots = append(bots, *bot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate chatbots: %w", err)
	}

	return bots, nil
}

// Update replaces the chatbot's fields wholesale. CreatedAt is preserved and
// UpdatedAt is set to the current time.
func (r *ChatbotRepo) Update(ctx context.Context, bot *ChatbotRecord) error {
	bot.UpdatedAt = time.Now().UTC()

	res, err := r.db.ExecContext(ctx,
		`UPDATE chatbots SET name = ?, document_id = ?, color = ?, icon = ?,
		 welcome_message = ?, placeholder = ?, updated_at = ? WHERE id = ?`,
		bot.Name, bot.DocumentID, bot.Color, bot.Icon, bot.WelcomeMessage, bot.Placeholder,
		bot.UpdatedAt, bot.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update chatbot: %w", err)
	}

	if err := requireAffected(res); err != nil {
		return err
	}

	return nil
}

// Delete removes a chatbot by ID.
func (r *ChatbotRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM chatbots WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete chatbot: %w", err)
	}
	return requireAffected(res)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanChatbot(row rowScanner) (*ChatbotRecord, error) {
	var bot ChatbotRecord
	err := row.Scan(&bot.ID, &bot.Name, &bot.DocumentID, &bot.Color, &bot.Icon,
		&bot.WelcomeMessage, &bot.Placeholder, &bot.CreatedAt, &bot.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &bot, nil
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
