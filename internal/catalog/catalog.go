// Package catalog loads and indexes the static credit card collection.
// The catalog is read-only after load and safe to share across sessions.
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"cardwise/internal/models"

	"go.uber.org/zap"
)

var (
	// ErrDataLoad wraps any failure to produce a valid catalog: missing or
	// malformed source, or a record violating the CardRecord invariants.
	// It is fatal at startup.
	ErrDataLoad = errors.New("catalog data load failed")

	// ErrNotFound is returned by ByID for unknown card ids.
	ErrNotFound = errors.New("card not found")
)

// Catalog is the indexed card collection. All() preserves load order.
type Catalog struct {
	cards []models.CardRecord
	byID  map[string]*models.CardRecord
}

// New validates records and builds a catalog. The load is all-or-nothing:
// a single invalid record fails the whole catalog.
func New(records []models.CardRecord) (*Catalog, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: no card records in source", ErrDataLoad)
	}

	c := &Catalog{
		cards: records,
		byID:  make(map[string]*models.CardRecord, len(records)),
	}

	for i := range c.cards {
		card := &c.cards[i]
		if err := validateRecord(card); err != nil {
			return nil, fmt.Errorf("%w: record %q: %v", ErrDataLoad, card.ID, err)
		}
		if _, dup := c.byID[card.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate card id %q", ErrDataLoad, card.ID)
		}
		c.byID[card.ID] = card
	}

	return c, nil
}

// LoadFile reads a JSON array of card records from path.
func LoadFile(path string, logger *zap.Logger) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrDataLoad, path, err)
	}

	var records []models.CardRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %v", ErrDataLoad, path, err)
	}

	c, err := New(records)
	if err != nil {
		return nil, err
	}

	logger.Info("Card catalog loaded",
		zap.String("path", path),
		zap.Int("cards", len(records)),
	)
	return c, nil
}

// All returns every card in load order. Callers must not mutate the slice.
func (c *Catalog) All() []models.CardRecord {
	return c.cards
}

// ByID looks up a card by id.
func (c *Catalog) ByID(id string) (*models.CardRecord, error) {
	card, ok := c.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return card, nil
}

// Len returns the number of cards.
func (c *Catalog) Len() int {
	return len(c.cards)
}

func validateRecord(card *models.CardRecord) error {
	if card.ID == "" {
		return errors.New("empty id")
	}
	if card.Bank == "" || card.Name == "" {
		return errors.New("empty bank or name")
	}
	for _, tag := range card.Categories {
		if !tag.IsValid() {
			return fmt.Errorf("unknown category tag %q", tag)
		}
	}
	if card.MinIncome < 0 {
		return fmt.Errorf("negative minimum income %d", card.MinIncome)
	}
	if card.MinCreditScore < 0 {
		return fmt.Errorf("negative minimum credit score %d", card.MinCreditScore)
	}
	if card.Tier != models.TierStandard && card.Tier != models.TierPremium {
		return fmt.Errorf("unknown tier %q", card.Tier)
	}
	return nil
}
