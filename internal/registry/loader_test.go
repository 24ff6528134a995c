package registry

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestResolveDefaultNames(t *testing.T) {
	dir := t.TempDir()
	l, err := Resolve(dir, Names{})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	want := map[Role]string{
		RoleForecaster: "gold_prophet_model.pkl",
		RoleRegressor:  "property_gbm_model.pkl",
		RoleClassifier: "property_gbm_classifier.pkl",
	}
	for role, name := range want {
		if got := l.Path(role); got != filepath.Join(dir, name) {
			t.Fatalf("role %s: got %q", role, got)
		}
	}
}

func TestResolveOverrides(t *testing.T) {
	dir := t.TempDir()
	l, err := Resolve(dir, Names{Classifier: "tiers.pkl"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if filepath.Base(l.Path(RoleClassifier)) != "tiers.pkl" {
		t.Fatalf("override ignored: %q", l.Path(RoleClassifier))
	}
	if filepath.Base(l.Path(RoleRegressor)) != DefaultRegressorFile {
		t.Fatalf("default lost: %q", l.Path(RoleRegressor))
	}
}

func TestResolveEmptyDir(t *testing.T) {
	if _, err := Resolve("  ", Names{}); err == nil {
		t.Fatalf("expected error for empty dir")
	}
}

func TestScanFiltersArtifacts(t *testing.T) {
	dir := t.TempDir()
	files := []string{
		"b.pkl",
		"A.PKL", // case-insensitive
		"notes.txt",
		"gold_data.csv",
	}
	for _, f := range files {
		if err := os.WriteFile(filepath.Join(dir, f), []byte("x"), 0o644); err != nil {
			t.Fatalf("write temp file: %v", err)
		}
	}
	got, err := Scan(dir)
	if err != nil {
		t.Fatalf("scan error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 artifacts, got %d", len(got))
	}
	if got[0].Name != "A.PKL" || got[1].Name != "b.pkl" {
		t.Fatalf("unexpected order: %+v", got)
	}
	if got[0].Size != 1 {
		t.Fatalf("unexpected size: %d", got[0].Size)
	}
}

func TestScanExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home dir on this platform: %v", err)
	}
	hTmp, err := os.MkdirTemp(home, "finplan-registry-*")
	if err != nil {
		t.Skipf("cannot create temp under home: %v", err)
	}
	defer os.RemoveAll(hTmp)
	if err := os.WriteFile(filepath.Join(hTmp, "x.pkl"), []byte(""), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	var tildePath string
	if runtime.GOOS == "windows" {
		tildePath = filepath.Join("~", filepath.Base(hTmp))
	} else {
		tildePath = "~/" + filepath.Base(hTmp)
	}
	got, err := Scan(tildePath)
	if err != nil {
		t.Fatalf("scan error: %v", err)
	}
	if len(got) != 1 || got[0].Name != "x.pkl" {
		t.Fatalf("unexpected files: %+v", got)
	}
}

func TestDataPaths(t *testing.T) {
	dir := t.TempDir()
	gold, prop, err := DataPaths(dir)
	if err != nil {
		t.Fatalf("data paths: %v", err)
	}
	if gold != filepath.Join(dir, GoldDataFile) || prop != filepath.Join(dir, PropertyDataFile) {
		t.Fatalf("unexpected paths %q %q", gold, prop)
	}
}
