package domain

import (
	"encoding/json"
	"fmt"
)

// Food is one food item's nutritional facts for a single serving.
// Values are immutable once built by NewFood and are safe to copy and share.
type Food struct {
	description string
	amount      string
	amountG     int
	kcal        int
	proteinG    int
}

// NewFood validates the fields and builds a Food.
// Both text fields must be non-empty and every numeric field non-negative.
func NewFood(description, amount string, amountG, kcal, proteinG int) (Food, error) {
	switch {
	case description == "":
		return Food{}, fmt.Errorf("%w: empty description", ErrInvalidFood)
	case amount == "":
		return Food{}, fmt.Errorf("%w: empty amount for %q", ErrInvalidFood, description)
	case amountG < 0:
		return Food{}, fmt.Errorf("%w: negative grams (%d) for %q", ErrInvalidFood, amountG, description)
	case kcal < 0:
		return Food{}, fmt.Errorf("%w: negative kcal (%d) for %q", ErrInvalidFood, kcal, description)
	case proteinG < 0:
		return Food{}, fmt.Errorf("%w: negative protein (%d) for %q", ErrInvalidFood, proteinG, description)
	}

	return Food{
		description: description,
		amount:      amount,
		amountG:     amountG,
		kcal:        kcal,
		proteinG:    proteinG,
	}, nil
}

// MustNewFood is like NewFood but panics on invalid input.
func MustNewFood(description, amount string, amountG, kcal, proteinG int) Food {
	food, err := NewFood(description, amount, amountG, kcal, proteinG)
	if err != nil {
		panic(err)
	}
	return food
}

// Description is the human-readable name, e.g. "all-purpose wheat flour".
func (f Food) Description() string { return f.description }

// Amount describes one serving, e.g. "1 cup".
func (f Food) Amount() string { return f.amount }

// AmountG is the serving mass in grams.
func (f Food) AmountG() int { return f.amountG }

// Kcal is the energy in one serving, in kilocalories.
func (f Food) Kcal() int { return f.kcal }

// ProteinG is the protein in one serving, in grams.
func (f Food) ProteinG() int { return f.proteinG }

// foodJSON is the wire representation of Food
type foodJSON struct {
	Description string `json:"description"`
	Amount      string `json:"amount"`
	AmountG     int    `json:"amountG"`
	Kcal        int    `json:"kcal"`
	ProteinG    int    `json:"proteinG"`
}

// MarshalJSON implements json.Marshaler
func (f Food) MarshalJSON() ([]byte, error) {
	return json.Marshal(foodJSON{
		Description: f.description,
		Amount:      f.amount,
		AmountG:     f.amountG,
		Kcal:        f.kcal,
		ProteinG:    f.proteinG,
	})
}

// UnmarshalJSON implements json.Unmarshaler and applies the same validation as NewFood
func (f *Food) UnmarshalJSON(data []byte) error {
	var raw foodJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	food, err := NewFood(raw.Description, raw.Amount, raw.AmountG, raw.Kcal, raw.ProteinG)
	if err != nil {
		return err
	}
	*f = food
	return nil
}
