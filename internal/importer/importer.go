package importer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/relieflabs/claims-analytics/internal/models"
	"github.com/relieflabs/claims-analytics/internal/repository"
	"github.com/relieflabs/claims-analytics/internal/worker"
)

// Importer fans a loaded dataset out to a worker pool that writes each
// record into a snapshot store. Used by the one-shot JSON -> SQLite
// conversion; the serving path never writes.
type Importer struct {
	store      repository.DatasetWriter
	numWorkers int
	bufferSize int
}

func New(store repository.DatasetWriter, numWorkers, bufferSize int) *Importer {
	return &Importer{
		store:      store,
		numWorkers: numWorkers,
		bufferSize: bufferSize,
	}
}

// Run imports every record of ds and returns the processed/failed counts.
// A non-zero failed count is reported as an error since a partial snapshot
// would silently skew every query computed from it.
func (im *Importer) Run(ctx context.Context, ds *models.Dataset) (processed, failed int64, err error) {
	pool := worker.NewPool(im.numWorkers, im.bufferSize, im.process)
	pool.Start(ctx)

	for _, d := range ds.Disasters {
		pool.Submit(d)
	}
	for _, c := range ds.Claims {
		pool.Submit(c)
	}
	for _, a := range ds.Agents {
		pool.Submit(a)
	}
	for _, h := range ds.ClaimHandlers {
		pool.Submit(h)
	}
	pool.Stop()

	processed, failed = pool.Stats()
	slog.Info("import finished", "processed", processed, "failed", failed)

	if failed > 0 {
		return processed, failed, fmt.Errorf("%d records failed to import", failed)
	}
	return processed, failed, nil
}

func (im *Importer) process(ctx context.Context, job worker.Job) error {
	var err error
	switch r := job.(type) {
	case models.Disaster:
		err = im.store.InsertDisaster(ctx, r)
	case models.Claim:
		err = im.store.InsertClaim(ctx, r)
	case models.Agent:
		err = im.store.InsertAgent(ctx, r)
	case models.ClaimHandler:
		err = im.store.InsertClaimHandler(ctx, r)
	default:
		err = fmt.Errorf("unknown record type %T", job)
	}
	if err != nil {
		slog.Error("error importing record", "error", err)
	}
	return err
}
