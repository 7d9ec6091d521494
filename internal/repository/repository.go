package repository

import (
	"context"

	"github.com/relieflabs/claims-analytics/internal/models"
)

// DatasetSource is anything that can produce a full snapshot of the four
// collections. The JSON file loader and the SQLite store both serve as one;
// queries never go back to the source afterward.
type DatasetSource interface {
	LoadDataset(ctx context.Context) (*models.Dataset, error)
}

// DatasetWriter is the import-side contract: record-at-a-time inserts used
// when converting JSON source files into a SQLite snapshot.
type DatasetWriter interface {
	InsertDisaster(ctx context.Context, d models.Disaster) error
	InsertClaim(ctx context.Context, c models.Claim) error
	InsertAgent(ctx context.Context, a models.Agent) error
	InsertClaimHandler(ctx context.Context, h models.ClaimHandler) error
}
