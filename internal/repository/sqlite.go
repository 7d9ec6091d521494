package repository

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/relieflabs/claims-analytics/internal/models"
)

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	// Single writer; also keeps :memory: databases on one connection.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("error while pinging database: %w", err)
	}

	s := &SQLiteStore{
		db: db,
	}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("error while migrating database: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS disasters (
			id INTEGER PRIMARY KEY,
			state TEXT NOT NULL,
			declared_date TEXT NOT NULL,
			end_date TEXT NOT NULL,
			radius_miles REAL NOT NULL
		);

		CREATE TABLE IF NOT EXISTS claims (
			id INTEGER PRIMARY KEY,
			disaster_id INTEGER NOT NULL,
			agent_assigned_id INTEGER NOT NULL,
			claim_handler_assigned_id INTEGER NOT NULL,
			status TEXT NOT NULL,
			estimate_cost REAL NOT NULL,
			severity_rating INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS agents (
			id INTEGER PRIMARY KEY,
			state TEXT NOT NULL,
			secondary_language TEXT
		);

		CREATE TABLE IF NOT EXISTS claim_handlers (
			id INTEGER PRIMARY KEY,
			first_name TEXT,
			last_name TEXT
		);

		CREATE INDEX IF NOT EXISTS idx_disasters_state ON disasters(state);
		CREATE INDEX IF NOT EXISTS idx_claims_disaster_id ON claims(disaster_id);
		CREATE INDEX IF NOT EXISTS idx_claims_agent_id ON claims(agent_assigned_id);
  	`

	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) InsertDisaster(ctx context.Context, d models.Disaster) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO disasters (id, state, declared_date, end_date, radius_miles)
		 VALUES (?, ?, ?, ?, ?)`,
		d.ID, d.State, d.DeclaredDate.String(), d.EndDate.String(), d.RadiusMiles)
	if err != nil {
		return fmt.Errorf("error inserting disaster %d: %w", d.ID, err)
	}
	return nil
}

func (s *SQLiteStore) InsertClaim(ctx context.Context, c models.Claim) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO claims
		 (id, disaster_id, agent_assigned_id, claim_handler_assigned_id, status, estimate_cost, severity_rating)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.DisasterID, c.AgentAssignedID, c.ClaimHandlerAssignedID, c.Status, c.EstimateCost, c.SeverityRating)
	if err != nil {
		return fmt.Errorf("error inserting claim %d: %w", c.ID, err)
	}
	return nil
}

func (s *SQLiteStore) InsertAgent(ctx context.Context, a models.Agent) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO agents (id, state, secondary_language) VALUES (?, ?, ?)`,
		a.ID, a.State, a.SecondaryLanguage)
	if err != nil {
		return fmt.Errorf("error inserting agent %d: %w", a.ID, err)
	}
	return nil
}

func (s *SQLiteStore) InsertClaimHandler(ctx context.Context, h models.ClaimHandler) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO claim_handlers (id, first_name, last_name) VALUES (?, ?, ?)`,
		h.ID, h.FirstName, h.LastName)
	if err != nil {
		return fmt.Errorf("error inserting claim handler %d: %w", h.ID, err)
	}
	return nil
}

// LoadDataset reads every table into memory as one snapshot.
func (s *SQLiteStore) LoadDataset(ctx context.Context) (*models.Dataset, error) {
	ds := &models.Dataset{}

	if err := s.loadDisasters(ctx, ds); err != nil {
		return nil, err
	}
	if err := s.loadClaims(ctx, ds); err != nil {
		return nil, err
	}
	if err := s.loadAgents(ctx, ds); err != nil {
		return nil, err
	}
	if err := s.loadClaimHandlers(ctx, ds); err != nil {
		return nil, err
	}

	return ds, nil
}

func (s *SQLiteStore) loadDisasters(ctx context.Context, ds *models.Dataset) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, state, declared_date, end_date, radius_miles FROM disasters ORDER BY id`)
	if err != nil {
		return fmt.Errorf("error querying disasters: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var d models.Disaster
		var declared, end string
		if err := rows.Scan(&d.ID, &d.State, &declared, &end, &d.RadiusMiles); err != nil {
			return fmt.Errorf("error scanning disaster: %w", err)
		}
		if d.DeclaredDate, err = models.ParseDate(declared); err != nil {
			return err
		}
		if d.EndDate, err = models.ParseDate(end); err != nil {
			return err
		}
		ds.Disasters = append(ds.Disasters, d)
	}
	return rows.Err()
}

func (s *SQLiteStore) loadClaims(ctx context.Context, ds *models.Dataset) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, disaster_id, agent_assigned_id, claim_handler_assigned_id, status, estimate_cost, severity_rating
		 FROM claims ORDER BY id`)
	if err != nil {
		return fmt.Errorf("error querying claims: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var c models.Claim
		if err := rows.Scan(&c.ID, &c.DisasterID, &c.AgentAssignedID,
			&c.ClaimHandlerAssignedID, &c.Status, &c.EstimateCost, &c.SeverityRating); err != nil {
			return fmt.Errorf("error scanning claim: %w", err)
		}
		ds.Claims = append(ds.Claims, c)
	}
	return rows.Err()
}

func (s *SQLiteStore) loadAgents(ctx context.Context, ds *models.Dataset) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, state, COALESCE(secondary_language, '') FROM agents ORDER BY id`)
	if err != nil {
		return fmt.Errorf("error querying agents: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var a models.Agent
		if err := rows.Scan(&a.ID, &a.State, &a.SecondaryLanguage); err != nil {
			return fmt.Errorf("error scanning agent: %w", err)
		}
		ds.Agents = append(ds.Agents, a)
	}
	return rows.Err()
}

func (s *SQLiteStore) loadClaimHandlers(ctx context.Context, ds *models.Dataset) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, COALESCE(first_name, ''), COALESCE(last_name, '') FROM claim_handlers ORDER BY id`)
	if err != nil {
		return fmt.Errorf("error querying claim handlers: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var h models.ClaimHandler
		if err := rows.Scan(&h.ID, &h.FirstName, &h.LastName); err != nil {
			return fmt.Errorf("error scanning claim handler: %w", err)
		}
		ds.ClaimHandlers = append(ds.ClaimHandlers, h)
	}
	return rows.Err()
}
