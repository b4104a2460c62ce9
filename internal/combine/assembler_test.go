package combine

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"cvcombine/internal/folds"
	"cvcombine/internal/resultsio"
)

func writeLines(t *testing.T, path string, lines ...string) {
	t.Helper()
	content := ""
	for _, line := range lines {
		content += line + "\n"
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// writeFold lays down one fold's out file (classification-only layout:
// test_auc train_auc train_loss learning_rate) and final prediction files.
func writeFold(t *testing.T, prefix string, fold int, testAUCs, trainAUCs []float64) {
	t.Helper()

	outLines := make([]string, len(testAUCs))
	for i := range testAUCs {
		outLines[i] = fmt.Sprintf("%f %f 1.5 0.001", testAUCs[i], trainAUCs[i])
	}
	writeLines(t, fmt.Sprintf("%s.%d.out", prefix, fold), outLines...)

	writeLines(t, fmt.Sprintf("%s.%d.auc.finaltest", prefix, fold),
		"0 0.1", "0 0.4", "1 0.35", "1 0.8")
	writeLines(t, fmt.Sprintf("%s.%d.auc.finaltrain", prefix, fold),
		"0 0.2", "1 0.9")
}

func TestAssemblerClassification(t *testing.T) {
	cfg := folds.Config{
		Prefix:         filepath.Join(t.TempDir(), "cvmodel"),
		Classification: true,
		TestInterval:   40,
	}

	writeFold(t, cfg.Prefix, 0, []float64{0.5, 0.6, 0.7, 0.8, 0.9}, []float64{0.7, 0.8, 0.9, 0.9, 0.9})
	writeFold(t, cfg.Prefix, 1, []float64{0.6, 0.6, 0.8, 0.8, 1.0}, []float64{0.7, 0.7, 0.8, 0.9, 1.0})

	fileSets, err := folds.Resolve(cfg)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(fileSets) != 2 {
		t.Fatalf("expected 2 folds, got %d", len(fileSets))
	}

	renderer := &fakeRenderer{}
	assembler := Assembler{Config: cfg, Renderer: renderer}
	if err := assembler.Run(fileSets); err != nil {
		t.Fatalf("Run: %v", err)
	}

	columns, err := resultsio.ReadTable(cfg.Prefix + ".auc.test")
	if err != nil {
		t.Fatalf("read combined table: %v", err)
	}
	want := []float64{0.55, 0.6, 0.75, 0.8, 0.95}
	for i, v := range want {
		if diff := columns[0][i] - v; diff > 1e-9 || diff < -1e-9 {
			t.Errorf("mean test auc[%d]: got %v, want %v", i, columns[0][i], v)
		}
	}

	// final predictions pool across both folds: 8 test rows
	finals, err := resultsio.ReadTable(cfg.Prefix + ".auc.finaltest")
	if err != nil {
		t.Fatalf("read final table: %v", err)
	}
	if len(finals[0]) != 8 {
		t.Errorf("pooled test labels: got %d rows, want 8", len(finals[0]))
	}

	if len(renderer.rocs) != 2 {
		t.Errorf("expected test and train roc plots, got %v", renderer.rocs)
	}
}

func TestAssemblerAffinityUsesClassificationLabelsAsFilter(t *testing.T) {
	cfg := folds.Config{
		Prefix:         filepath.Join(t.TempDir(), "cvmodel"),
		Classification: true,
		Affinity:       true,
		TestInterval:   40,
	}

	// layout: test_auc train_auc train_loss learning_rate test_rmsd train_rmsd
	writeLines(t, cfg.Prefix+".0.out",
		"0.5 0.6 1.5 0.001 2.0 1.8",
		"0.7 0.8 1.2 0.001 1.5 1.2")
	writeLines(t, cfg.Prefix+".0.auc.finaltest", "1 0.9", "0 0.2", "1 0.8", "0 0.3")
	writeLines(t, cfg.Prefix+".0.auc.finaltrain", "1 0.9", "0 0.2")
	writeLines(t, cfg.Prefix+".0.rmsd.finaltest", "5 4.5", "6 6.2", "7 7.1", "8 8.4")
	writeLines(t, cfg.Prefix+".0.rmsd.finaltrain", "5 5.1", "6 6.1")

	fileSets, err := folds.Resolve(cfg)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	renderer := &fakeRenderer{}
	assembler := Assembler{Config: cfg, Renderer: renderer}
	if err := assembler.Run(fileSets); err != nil {
		t.Fatalf("Run: %v", err)
	}

	// classification labels [1 0 1 0] filter the affinity pool down to
	// the two active rows
	columns, err := resultsio.ReadTable(cfg.Prefix + ".rmsd.finaltest")
	if err != nil {
		t.Fatalf("read final rmsd table: %v", err)
	}
	if len(columns[0]) != 2 {
		t.Fatalf("expected 2 active rows, got %d", len(columns[0]))
	}
	if columns[0][0] != 4.5 || columns[0][1] != 7.1 {
		t.Errorf("filtered predicted affinities: got %v, want [4.5 7.1]", columns[0])
	}
	if columns[1][0] != 5 || columns[1][1] != 7 {
		t.Errorf("filtered affinities: got %v, want [5 7]", columns[1])
	}

	if len(renderer.corrs) != 2 {
		t.Errorf("expected 2 correlation plots, got %v", renderer.corrs)
	}
	if len(renderer.rocs) != 2 {
		t.Errorf("expected 2 roc plots, got %v", renderer.rocs)
	}
	// one training curve per metric family
	if len(renderer.curves) != 2 {
		t.Errorf("expected 2 training curves, got %v", renderer.curves)
	}
}

func TestAssemblerOutColumnMismatch(t *testing.T) {
	cfg := folds.Config{
		Prefix:         filepath.Join(t.TempDir(), "cvmodel"),
		Classification: true,
		TestInterval:   40,
	}

	// out file carries affinity columns the configuration does not expect
	writeLines(t, cfg.Prefix+".0.out", "0.5 0.6 1.5 0.001 2.0 1.8")
	writeLines(t, cfg.Prefix+".0.auc.finaltest", "0 0.1", "1 0.8")
	writeLines(t, cfg.Prefix+".0.auc.finaltrain", "0 0.2", "1 0.9")

	fileSets, err := folds.Resolve(cfg)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	assembler := Assembler{Config: cfg, Renderer: &fakeRenderer{}}
	if err := assembler.Run(fileSets); err == nil {
		t.Fatal("expected error for unexpected out column count")
	}
}
