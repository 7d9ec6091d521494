package loader

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/relieflabs/claims-analytics/internal/models"
)

// Source file names inside the data directory.
const (
	DisastersFile     = "disasters.json"
	ClaimsFile        = "claims.json"
	AgentsFile        = "agents.json"
	ClaimHandlersFile = "claim_handlers.json"
)

// Load reads the four JSON collections from dir and returns them as a single
// immutable snapshot. Dates arrive as "2006-01-02" strings and are parsed
// during decoding, so the engine only ever sees comparable date values.
func Load(dir string) (*models.Dataset, error) {
	disasters, err := decodeFile[models.Disaster](filepath.Join(dir, DisastersFile))
	if err != nil {
		return nil, err
	}
	claims, err := decodeFile[models.Claim](filepath.Join(dir, ClaimsFile))
	if err != nil {
		return nil, err
	}
	agents, err := decodeFile[models.Agent](filepath.Join(dir, AgentsFile))
	if err != nil {
		return nil, err
	}
	handlers, err := decodeFile[models.ClaimHandler](filepath.Join(dir, ClaimHandlersFile))
	if err != nil {
		return nil, err
	}

	ds := &models.Dataset{
		Disasters:     disasters,
		Claims:        claims,
		Agents:        agents,
		ClaimHandlers: handlers,
	}

	slog.Info("dataset loaded",
		"dir", dir,
		"disasters", len(ds.Disasters),
		"claims", len(ds.Claims),
		"agents", len(ds.Agents),
		"claim_handlers", len(ds.ClaimHandlers))

	return ds, nil
}

func decodeFile[T any](path string) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening %s: %w", path, err)
	}
	defer f.Close()

	var records []T
	if err := json.NewDecoder(f).Decode(&records); err != nil {
		return nil, fmt.Errorf("error decoding %s: %w", path, err)
	}
	return records, nil
}
