package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/macrolens/maxprotein/internal/domain"
)

// SQLiteStore persists the food catalog in a SQLite database
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if needed) the database at dbPath
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// SQLite allows a single writer
	db.SetMaxOpenConns(1)

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

// Close releases the database handle
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) initSchema() error {
	schema := `
    CREATE TABLE IF NOT EXISTS foods (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        description TEXT NOT NULL CHECK (description <> ''),
        amount TEXT NOT NULL CHECK (amount <> ''),
        amount_g INTEGER NOT NULL CHECK (amount_g >= 0),
        kcal INTEGER NOT NULL CHECK (kcal >= 0),
        protein_g INTEGER NOT NULL CHECK (protein_g >= 0)
    );

    CREATE INDEX IF NOT EXISTS idx_foods_kcal ON foods(kcal);
    `

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// SaveFoods replaces the stored catalog with foods, keeping their order
func (s *SQLiteStore) SaveFoods(ctx context.Context, foods []domain.Food) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM foods`); err != nil {
		return fmt.Errorf("failed to clear foods: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
        INSERT INTO foods (description, amount, amount_g, kcal, protein_g)
        VALUES (?, ?, ?, ?, ?)
    `)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, food := range foods {
		_, err := stmt.ExecContext(ctx,
			food.Description(), food.Amount(), food.AmountG(), food.Kcal(), food.ProteinG())
		if err != nil {
			return fmt.Errorf("failed to insert food %q: %w", food.Description(), err)
		}
	}

	return tx.Commit()
}

// LoadFoods implements domain.FoodSource, returning foods in insertion order
func (s *SQLiteStore) LoadFoods(ctx context.Context) ([]domain.Food, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT description, amount, amount_g, kcal, protein_g
        FROM foods
        ORDER BY id
    `)
	if err != nil {
		return nil, fmt.Errorf("failed to query foods: %w", err)
	}
	defer rows.Close()

	foods := make([]domain.Food, 0)
	for rows.Next() {
		var (
			description, amount     string
			amountG, kcal, proteinG int
		)
		if err := rows.Scan(&description, &amount, &amountG, &kcal, &proteinG); err != nil {
			return nil, fmt.Errorf("failed to scan food: %w", err)
		}

		food, err := domain.NewFood(description, amount, amountG, kcal, proteinG)
		if err != nil {
			return nil, err
		}
		foods = append(foods, food)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read foods: %w", err)
	}

	return foods, nil
}

// Count returns the number of stored foods
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM foods`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count foods: %w", err)
	}
	return n, nil
}
