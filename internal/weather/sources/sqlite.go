package sources

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	_ "modernc.org/sqlite"

	"github.com/i474232898/weather-lookup/internal/weather"
)

// SQLiteScheme prefixes DATA_SOURCE values that point at a SQLite file.
const SQLiteScheme = "sqlite://"

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS cities (
	key         TEXT PRIMARY KEY,
	position    INTEGER NOT NULL,
	name        TEXT,
	icon        TEXT,
	temperature REAL,
	feels_like  REAL,
	description TEXT,
	wind_speed  TEXT,
	humidity    TEXT,
	visibility  TEXT
);`

// SQLiteSource reads the dataset from the cities table of a SQLite file.
// NULL columns load as unset values.
type SQLiteSource struct {
	path string
}

func NewSQLiteSource(path string) *SQLiteSource {
	return &SQLiteSource{path: path}
}

func (s *SQLiteSource) Name() string {
	return SQLiteScheme + s.path
}

func (s *SQLiteSource) Load(ctx context.Context) (*weather.Dataset, error) {
	// Opening a missing file would silently create an empty database.
	if _, err := os.Stat(s.path); err != nil {
		return nil, err
	}

	db, err := openSQLite(s.path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `
		SELECT key, name, icon, temperature, feels_like, description, wind_speed, humidity, visibility
		FROM cities ORDER BY position, rowid`)
	if err != nil {
		return nil, fmt.Errorf("query cities: %w", err)
	}
	defer rows.Close()

	var entries []weather.KeyedRecord
	for rows.Next() {
		var (
			key                        string
			name, icon, description    sql.NullString
			temperature, feelsLike     sql.NullFloat64
			windSpeed, humidity, visib sql.NullString
		)
		if err := rows.Scan(&key, &name, &icon, &temperature, &feelsLike, &description, &windSpeed, &humidity, &visib); err != nil {
			return nil, fmt.Errorf("scan city: %w", err)
		}
		entries = append(entries, weather.KeyedRecord{
			Key: key,
			Record: weather.Record{
				Name:        name.String,
				Icon:        icon.String,
				Temperature: weather.Degrees{Value: temperature.Float64, Valid: temperature.Valid},
				FeelsLike:   weather.Degrees{Value: feelsLike.Float64, Valid: feelsLike.Valid},
				Description: description.String,
				WindSpeed:   weather.Magnitude{Text: windSpeed.String, Valid: windSpeed.Valid},
				Humidity:    weather.Magnitude{Text: humidity.String, Valid: humidity.Valid},
				Visibility:  weather.Magnitude{Text: visib.String, Valid: visib.Valid},
			},
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cities: %w", err)
	}

	return weather.NewDataset(entries), nil
}

// WriteSQLite creates the cities table at path if needed and replaces its
// content with ds, keeping the dataset order.
func WriteSQLite(ctx context.Context, path string, ds *weather.Dataset) error {
	db, err := openSQLite(path)
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM cities`); err != nil {
		return fmt.Errorf("clear cities: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO cities (key, position, name, icon, temperature, feels_like, description, wind_speed, humidity, visibility)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	pos := 0
	for key, rec := range ds.All() {
		_, err := stmt.ExecContext(ctx, key, pos, rec.Name, rec.Icon,
			nullFloat(rec.Temperature), nullFloat(rec.FeelsLike), rec.Description,
			nullString(rec.WindSpeed), nullString(rec.Humidity), nullString(rec.Visibility))
		if err != nil {
			return fmt.Errorf("insert city %q: %w", key, err)
		}
		pos++
	}

	return tx.Commit()
}

func openSQLite(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	return db, nil
}

func nullFloat(d weather.Degrees) sql.NullFloat64 {
	return sql.NullFloat64{Float64: d.Value, Valid: d.Valid}
}

func nullString(m weather.Magnitude) sql.NullString {
	return sql.NullString{String: m.Text, Valid: m.Valid}
}
