package datastore

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/color-studio/api/models"
)

type DailyColorRepository interface {
	Create(dailyColor models.DailyColor) (models.DailyColor, error)
	GetByDate(date time.Time) (models.DailyColor, error)
	GetToday() (models.DailyColor, error)
	GetAll() ([]models.DailyColor, error)
	Delete(id int) error
}

type DailyColorDatabase struct {
	database *sql.DB
}

func NewDailyColorDatabase(db *sql.DB) (DailyColorDatabase, error) {
	var dailyColorDB DailyColorDatabase
	dailyColorDB.database = db
	return dailyColorDB, nil
}

func scanDailyColor(row rowScanner) (models.DailyColor, error) {
	var dc models.DailyColor
	err := row.Scan(&dc.ID, &dc.Date, &dc.ColorName, &dc.R, &dc.G, &dc.B, &dc.CreatedAt)
	switch err {
	case sql.ErrNoRows:
		return models.DailyColor{}, NoRowsError{true, err}
	case nil:
		return dc, nil
	default:
		return models.DailyColor{}, err
	}
}

// Create stores the color of a day. A second color for the same day
// replaces the first.
func (dcdb DailyColorDatabase) Create(dailyColor models.DailyColor) (models.DailyColor, error) {
	sqlStatement := `
		INSERT INTO daily_color (date, color_name, r, g, b, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (date)
		DO UPDATE SET color_name = $2, r = $3, g = $4, b = $5, created_at = $6
		RETURNING id`

	err := dcdb.database.QueryRow(
		sqlStatement,
		models.NormalizeDay(dailyColor.Date),
		dailyColor.ColorName,
		dailyColor.R,
		dailyColor.G,
		dailyColor.B,
		dailyColor.CreatedAt,
	).Scan(&dailyColor.ID)

	if err != nil {
		return models.DailyColor{}, fmt.Errorf("failed to create daily color: %v", err)
	}

	return dailyColor, nil
}

func (dcdb DailyColorDatabase) GetByDate(date time.Time) (models.DailyColor, error) {
	sqlStatement := `
		SELECT id, date, color_name, r, g, b, created_at
		FROM daily_color
		WHERE date = $1`

	return scanDailyColor(dcdb.database.QueryRow(sqlStatement, models.NormalizeDay(date)))
}

func (dcdb DailyColorDatabase) GetToday() (models.DailyColor, error) {
	return dcdb.GetByDate(time.Now())
}

// GetAll returns every stored color of the day, newest first
func (dcdb DailyColorDatabase) GetAll() ([]models.DailyColor, error) {
	sqlStatement := `
		SELECT id, date, color_name, r, g, b, created_at
		FROM daily_color
		ORDER BY date DESC`

	rows, err := dcdb.database.Query(sqlStatement)
	if err != nil {
		return []models.DailyColor{}, err
	}
	defer rows.Close()

	var dailyColors []models.DailyColor
	for rows.Next() {
		dc, err := scanDailyColor(rows)
		if err != nil {
			return []models.DailyColor{}, err
		}
		dailyColors = append(dailyColors, dc)
	}

	if err = rows.Err(); err != nil {
		return []models.DailyColor{}, err
	}

	return dailyColors, nil
}

func (dcdb DailyColorDatabase) Delete(id int) error {
	_, err := dcdb.database.Exec(`DELETE FROM daily_color WHERE id = $1`, id)
	return err
}
