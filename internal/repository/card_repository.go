package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"cardwise/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// CardRepository persists the card catalog in Postgres. Categories, benefit
// flags and links live in jsonb columns since the advisor only ever loads
// the whole catalog into memory.
type CardRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewCardRepository(db *pgxpool.Pool, logger *zap.Logger) *CardRepository {
	return &CardRepository{
		db:     db,
		logger: logger,
	}
}

func (r *CardRepository) Create(ctx context.Context, card *models.CardRecord) error {
	categories, err := json.Marshal(card.Categories)
	if err != nil {
		return fmt.Errorf("failed to encode categories: %w", err)
	}
	benefits, err := json.Marshal(card.Benefits)
	if err != nil {
		return fmt.Errorf("failed to encode benefits: %w", err)
	}
	links, err := json.Marshal(card.Links)
	if err != nil {
		return fmt.Errorf("failed to encode links: %w", err)
	}

	query := squirrel.Insert("cards").
		Columns("id", "bank", "name", "categories", "benefits", "min_income", "min_credit_score", "bank_customer_only", "tier", "links").
		Values(card.ID, card.Bank, card.Name, categories, benefits, card.MinIncome, card.MinCreditScore, card.BankCustomerOnly, card.Tier, links).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *CardRepository) CreateBatch(ctx context.Context, cards []models.CardRecord) error {
	if len(cards) == 0 {
		return nil
	}

	builder := squirrel.Insert("cards").
		Columns("id", "bank", "name", "categories", "benefits", "min_income", "min_credit_score", "bank_customer_only", "tier", "links").
		PlaceholderFormat(squirrel.Dollar)

	for _, card := range cards {
		categories, err := json.Marshal(card.Categories)
		if err != nil {
			return fmt.Errorf("failed to encode categories for %s: %w", card.ID, err)
		}
		benefits, err := json.Marshal(card.Benefits)
		if err != nil {
			return fmt.Errorf("failed to encode benefits for %s: %w", card.ID, err)
		}
		links, err := json.Marshal(card.Links)
		if err != nil {
			return fmt.Errorf("failed to encode links for %s: %w", card.ID, err)
		}
		builder = builder.Values(card.ID, card.Bank, card.Name, categories, benefits, card.MinIncome, card.MinCreditScore, card.BankCustomerOnly, card.Tier, links)
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

// ListAll returns the full catalog in insertion order.
func (r *CardRepository) ListAll(ctx context.Context) ([]models.CardRecord, error) {
	query := squirrel.Select("id", "bank", "name", "categories", "benefits", "min_income", "min_credit_score", "bank_customer_only", "tier", "links").
		From("cards").
		OrderBy("seq ASC").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cards []models.CardRecord
	for rows.Next() {
		var (
			card       models.CardRecord
			categories []byte
			benefits   []byte
			links      []byte
		)
		if err := rows.Scan(
			&card.ID, &card.Bank, &card.Name, &categories, &benefits, &card.MinIncome, &card.MinCreditScore, &card.BankCustomerOnly, &card.Tier, &links,
		); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(categories, &card.Categories); err != nil {
			return nil, fmt.Errorf("failed to decode categories for %s: %w", card.ID, err)
		}
		if err := json.Unmarshal(benefits, &card.Benefits); err != nil {
			return nil, fmt.Errorf("failed to decode benefits for %s: %w", card.ID, err)
		}
		if err := json.Unmarshal(links, &card.Links); err != nil {
			return nil, fmt.Errorf("failed to decode links for %s: %w", card.ID, err)
		}
		cards = append(cards, card)
	}

	return cards, rows.Err()
}

// DeleteAll clears the catalog before a reseed.
func (r *CardRepository) DeleteAll(ctx context.Context) error {
	query := squirrel.Delete("cards").PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}
