package loader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
}

func writeFixtures(t *testing.T, dir string) {
	t.Helper()
	writeFile(t, dir, DisastersFile, `[
		{"id": 1, "state": "Texas", "declared_date": "2023-06-15", "end_date": "2023-06-20", "radius_miles": 50.5},
		{"id": 2, "state": "Florida", "declared_date": "2023-07-01", "end_date": "2023-06-28", "radius_miles": 12}
	]`)
	writeFile(t, dir, ClaimsFile, `[
		{"id": 10, "disaster_id": 1, "agent_assigned_id": 3, "claim_handler_assigned_id": 4,
		 "status": "Closed", "estimate_cost": 1234.56, "severity_rating": 7}
	]`)
	writeFile(t, dir, AgentsFile, `[
		{"id": 3, "state": "Texas", "secondary_language": "Spanish"}
	]`)
	writeFile(t, dir, ClaimHandlersFile, `[
		{"id": 4, "first_name": "Dana", "last_name": "Whitfield"}
	]`)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeFixtures(t, dir)

	ds, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(ds.Disasters) != 2 || len(ds.Claims) != 1 || len(ds.Agents) != 1 || len(ds.ClaimHandlers) != 1 {
		t.Errorf("unexpected collection sizes: %d/%d/%d/%d",
			len(ds.Disasters), len(ds.Claims), len(ds.Agents), len(ds.ClaimHandlers))
	}

	d := ds.Disasters[0]
	if d.State != "Texas" || d.RadiusMiles != 50.5 {
		t.Errorf("unexpected disaster: %+v", d)
	}
	if d.DeclaredDate.String() != "2023-06-15" {
		t.Errorf("expected parsed declared date 2023-06-15, got %s", d.DeclaredDate)
	}
	if !ds.Disasters[1].DeclaredDate.After(ds.Disasters[1].EndDate.Time) {
		t.Error("expected second disaster declared after its end date")
	}

	c := ds.Claims[0]
	if !c.Closed() || c.EstimateCost != 1234.56 || c.SeverityRating != 7 {
		t.Errorf("unexpected claim: %+v", c)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	dir := t.TempDir()
	writeFixtures(t, dir)
	os.Remove(filepath.Join(dir, AgentsFile))

	if _, err := Load(dir); err == nil {
		t.Fatal("expected an error for a missing source file")
	}
}

func TestLoad_MalformedJSON(t *testing.T) {
	dir := t.TempDir()
	writeFixtures(t, dir)
	writeFile(t, dir, ClaimsFile, `{"not": "an array"`)

	_, err := Load(dir)
	if err == nil {
		t.Fatal("expected an error for malformed JSON")
	}
	if !strings.Contains(err.Error(), ClaimsFile) {
		t.Errorf("error should name the offending file, got: %v", err)
	}
}

func TestLoad_BadDate(t *testing.T) {
	dir := t.TempDir()
	writeFixtures(t, dir)
	writeFile(t, dir, DisastersFile, `[
		{"id": 1, "state": "Texas", "declared_date": "June 15th", "end_date": "2023-06-20", "radius_miles": 5}
	]`)

	if _, err := Load(dir); err == nil {
		t.Fatal("expected an error for an unparseable date")
	}
}
