package catalog

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// PostgresProviderName identifies the database-backed catalog provider.
const PostgresProviderName = "postgres"

// PostgresProvider serves the stop catalog from a read-only database mirror.
// Deployments that ingest the upstream stop data into Postgres use this in
// place of the remote client; the snapshot cache above it is unchanged.
type PostgresProvider struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewPostgresProvider creates a database-backed catalog provider.
func NewPostgresProvider(pool *pgxpool.Pool, logger zerolog.Logger) *PostgresProvider {
	return &PostgresProvider{pool: pool, logger: logger}
}

// Name returns the provider name.
func (p *PostgresProvider) Name() string {
	return PostgresProviderName
}

// FetchAllStops loads every stop row, validating each record at the boundary
// the same way the remote client does.
func (p *PostgresProvider) FetchAllStops(ctx context.Context) ([]Stop, error) {
	query := `
		SELECT
			id, name, category, city_name, state,
			latitude, longitude, description, featured, is_major_stop
		FROM stops
		ORDER BY route_order, id
	`

	rows, err := p.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnavailable, err)
	}
	defer rows.Close()

	var stops []Stop
	rejected := 0
	for rows.Next() {
		var raw RawStop
		err := rows.Scan(
			&raw.ID,
			&raw.Name,
			&raw.Category,
			&raw.CityName,
			&raw.State,
			&raw.Latitude,
			&raw.Longitude,
			&raw.Description,
			&raw.Featured,
			&raw.IsMajorStop,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning stop row: %s", ErrUnavailable, err)
		}

		stop, err := raw.Validate()
		if err != nil {
			rejected++
			p.logger.Debug().
				Str("stop_id", raw.ID).
				Err(err).
				Msg("rejected stop row at boundary")
			continue
		}
		stops = append(stops, stop)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnavailable, err)
	}

	if rejected > 0 {
		p.logger.Warn().
			Int("rejected", rejected).
			Msg("dropped invalid stop rows from catalog")
	}

	return stops, nil
}

// Ensure PostgresProvider implements Provider.
var _ Provider = (*PostgresProvider)(nil)
