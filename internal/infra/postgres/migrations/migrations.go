package migrations

import (
	"context"
	_ "embed"

	"geoquiz-service/internal/catalog"
	"geoquiz-service/internal/domain"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"
)

//go:embed 0001_create_landmarks.sql
var createLandmarksSQL string

//go:embed 0002_create_rounds.sql
var createRoundsSQL string

var Migrations = migrate.NewMigrations()

type landmarkRow struct {
	bun.BaseModel `bun:"table:landmarks"`

	Tier     string  `bun:"tier,pk"`
	Position int     `bun:"position,pk"`
	Name     string  `bun:"name"`
	Country  string  `bun:"country"`
	Lon      float64 `bun:"lon"`
	Lat      float64 `bun:"lat"`
}

// seedRows flattens the built-in catalog into table rows.
func seedRows() []landmarkRow {
	var rows []landmarkRow
	for _, d := range domain.Difficulties {
		for i, lm := range catalog.Landmarks(d) {
			rows = append(rows, landmarkRow{
				Tier:     string(d),
				Position: i,
				Name:     lm.Name,
				Country:  lm.Country,
				Lon:      lm.Point.Lon,
				Lat:      lm.Point.Lat,
			})
		}
	}
	return rows
}

func init() {
	Migrations.Add(migrate.Migration{
		Name:    "20241122010000",
		Comment: "create_landmarks",
		Up: func(ctx context.Context, db *bun.DB) error {
			_, err := db.ExecContext(ctx, createLandmarksSQL)
			return err
		},
		Down: func(ctx context.Context, db *bun.DB) error {
			_, err := db.ExecContext(ctx, `DROP TABLE IF EXISTS landmarks`)
			return err
		},
	})
	Migrations.Add(migrate.Migration{
		Name:    "20241122020000",
		Comment: "seed_landmarks",
		Up: func(ctx context.Context, db *bun.DB) error {
			rows := seedRows()
			_, err := db.NewInsert().Model(&rows).On("CONFLICT (tier, position) DO NOTHING").Exec(ctx)
			return err
		},
		Down: func(ctx context.Context, db *bun.DB) error {
			_, err := db.NewDelete().Model((*landmarkRow)(nil)).Where("tier IN (?)", bun.In([]string{
				string(domain.DifficultyEasy), string(domain.DifficultyNormal),
			})).Exec(ctx)
			return err
		},
	})
	Migrations.Add(migrate.Migration{
		Name:    "20241122030000",
		Comment: "create_rounds",
		Up: func(ctx context.Context, db *bun.DB) error {
			_, err := db.ExecContext(ctx, createRoundsSQL)
			return err
		},
		Down: func(ctx context.Context, db *bun.DB) error {
			_, err := db.ExecContext(ctx, `DROP TABLE IF EXISTS rounds`)
			return err
		},
	})
}
