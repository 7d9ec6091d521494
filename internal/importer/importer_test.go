package importer

import (
	"context"
	"errors"
	"sync"
	"testing"

	"go.uber.org/goleak"

	"github.com/relieflabs/claims-analytics/internal/models"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// memWriter implements repository.DatasetWriter for testing.
type memWriter struct {
	mu        sync.Mutex
	disasters []models.Disaster
	claims    []models.Claim
	agents    []models.Agent
	handlers  []models.ClaimHandler
	failIDs   map[int]bool
}

func (w *memWriter) InsertDisaster(ctx context.Context, d models.Disaster) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.failIDs[d.ID] {
		return errors.New("forced failure")
	}
	w.disasters = append(w.disasters, d)
	return nil
}

func (w *memWriter) InsertClaim(ctx context.Context, c models.Claim) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.claims = append(w.claims, c)
	return nil
}

func (w *memWriter) InsertAgent(ctx context.Context, a models.Agent) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.agents = append(w.agents, a)
	return nil
}

func (w *memWriter) InsertClaimHandler(ctx context.Context, h models.ClaimHandler) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.handlers = append(w.handlers, h)
	return nil
}

func testDataset() *models.Dataset {
	return &models.Dataset{
		Disasters: []models.Disaster{{ID: 1, State: "Texas"}, {ID: 2, State: "Ohio"}},
		Claims:    []models.Claim{{ID: 10, DisasterID: 1}, {ID: 11, DisasterID: 2}, {ID: 12, DisasterID: 1}},
		Agents:    []models.Agent{{ID: 3, State: "Texas"}},
		ClaimHandlers: []models.ClaimHandler{
			{ID: 4, FirstName: "Dana", LastName: "Whitfield"},
		},
	}
}

func TestImporter_Run(t *testing.T) {
	w := &memWriter{}
	im := New(w, 2, 8)

	processed, failed, err := im.Run(context.Background(), testDataset())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if processed != 7 || failed != 0 {
		t.Errorf("expected 7 processed / 0 failed, got %d / %d", processed, failed)
	}
	if len(w.disasters) != 2 || len(w.claims) != 3 || len(w.agents) != 1 || len(w.handlers) != 1 {
		t.Errorf("unexpected written counts: %d/%d/%d/%d",
			len(w.disasters), len(w.claims), len(w.agents), len(w.handlers))
	}
}

func TestImporter_ReportsFailures(t *testing.T) {
	w := &memWriter{failIDs: map[int]bool{2: true}}
	im := New(w, 2, 8)

	processed, failed, err := im.Run(context.Background(), testDataset())
	if err == nil {
		t.Fatal("expected an error when records fail to import")
	}
	if failed != 1 {
		t.Errorf("expected 1 failed record, got %d", failed)
	}
	if processed != 6 {
		t.Errorf("expected 6 processed records, got %d", processed)
	}
}
