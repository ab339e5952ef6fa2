package datastore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/color-studio/api/models"
)

// LibraryRepository stores favorites and saved palettes. It satisfies both
// studio.Loader and studio.Store.
type LibraryRepository interface {
	LoadLibrary(ctx context.Context, userID string) (models.Library, error)
	SaveLibrary(ctx context.Context, userID string, lib models.Library) error
}

type LibraryDatabase struct {
	database *sql.DB
}

func NewLibraryDatabase(db *sql.DB) (LibraryDatabase, error) {
	var libraryDB LibraryDatabase
	libraryDB.database = db
	return libraryDB, nil
}

// LoadLibrary reads a user's favorites in stored order and palettes newest
// first. A user with nothing stored gets an empty library.
func (ldb LibraryDatabase) LoadLibrary(ctx context.Context, userID string) (models.Library, error) {
	db := ldb.database
	lib := models.Library{Favorites: []string{}, SavedPalettes: []models.SavedPalette{}}

	startErr := db.QueryRowContext(ctx, `SELECT start_color FROM users WHERE user_id = $1`, userID).Scan(&lib.StartColor)
	if startErr != nil && startErr != sql.ErrNoRows {
		return models.Library{}, fmt.Errorf("error loading start color %v", startErr)
	}

	favRows, err := db.QueryContext(ctx, `
		SELECT hex
		FROM favorites
		WHERE user_id = $1
		ORDER BY position ASC`, userID)
	if err != nil {
		return models.Library{}, fmt.Errorf("error loading favorites %v", err)
	}
	defer favRows.Close()

	for favRows.Next() {
		var hex string
		if err := favRows.Scan(&hex); err != nil {
			return models.Library{}, err
		}
		lib.Favorites = append(lib.Favorites, hex)
	}
	if err := favRows.Err(); err != nil {
		return models.Library{}, err
	}

	palRows, err := db.QueryContext(ctx, `
		SELECT palette_id, user_id, name, colors, created_at
		FROM palettes
		WHERE user_id = $1
		ORDER BY created_at DESC`, userID)
	if err != nil {
		return models.Library{}, fmt.Errorf("error loading palettes %v", err)
	}
	defer palRows.Close()

	for palRows.Next() {
		p, err := scanPalette(palRows)
		if err != nil {
			return models.Library{}, err
		}
		lib.SavedPalettes = append(lib.SavedPalettes, p)
	}
	if err := palRows.Err(); err != nil {
		return models.Library{}, err
	}

	return lib, nil
}

func scanPalette(row rowScanner) (models.SavedPalette, error) {
	var p models.SavedPalette
	err := row.Scan(&p.ID, &p.UserID, &p.Name, pq.Array(&p.Colors), &p.CreatedAt)
	switch err {
	case sql.ErrNoRows:
		return models.SavedPalette{}, NoRowsError{true, err}
	case nil:
		return p, nil
	default:
		return models.SavedPalette{}, err
	}
}

// SaveLibrary replaces a user's stored favorites and palettes with lib in a
// single transaction.
func (ldb LibraryDatabase) SaveLibrary(ctx context.Context, userID string, lib models.Library) error {
	tx, err := ldb.database.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error starting transaction %v", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM favorites WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("error clearing favorites %v", err)
	}
	for i, hex := range lib.Favorites {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO favorites (user_id, hex, position)
			VALUES ($1, $2, $3)`, userID, hex, i); err != nil {
			return fmt.Errorf("error saving favorite %s %v", hex, err)
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM palettes WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("error clearing palettes %v", err)
	}
	for _, p := range lib.SavedPalettes {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO palettes (palette_id, user_id, name, colors, created_at)
			VALUES ($1, $2, $3, $4, $5)`,
			p.ID, userID, p.Name, pq.Array(p.Colors), p.CreatedAt); err != nil {
			return fmt.Errorf("error saving palette %s %v", p.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing library %v", err)
	}
	return nil
}
