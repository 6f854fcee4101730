package dataset

import (
	"os"
	"path/filepath"
	"testing"
)

func writeDataset(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "questions.csv")
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write dataset: %v", err)
	}
	return p
}

func TestLoadParsesRow(t *testing.T) {
	p := writeDataset(t, "Is sky blue?,True,\"The sky is blue.\"\n")
	tasks, skipped, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if skipped != 0 || len(tasks) != 1 {
		t.Fatalf("expected 1 task, 0 skipped; got %d tasks, %d skipped", len(tasks), skipped)
	}
	got := tasks[0]
	if got.Question != "Is sky blue?" || !got.Expected || got.Hint != "The sky is blue." {
		t.Fatalf("unexpected task: %+v", got)
	}
}

func TestLoadRejoinsHintCommas(t *testing.T) {
	p := writeDataset(t, "Is water wet?,true,Water is wet, always, everywhere\n")
	tasks, _, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("expected 1 task, got %d", len(tasks))
	}
	if tasks[0].Hint != "Water is wet, always, everywhere" {
		t.Fatalf("hint not rejoined: %q", tasks[0].Hint)
	}
}

func TestLoadSkipsBadLabel(t *testing.T) {
	p := writeDataset(t, "Q1?,true,h1\nQ2?,maybe,h2\nQ3?,false\nonly-one-field\n")
	tasks, skipped, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(tasks))
	}
	if skipped != 2 {
		t.Fatalf("expected 2 skipped rows, got %d", skipped)
	}
	if tasks[0].Question != "Q1?" || tasks[1].Question != "Q3?" {
		t.Fatalf("unexpected tasks: %+v", tasks)
	}
	if tasks[1].Hint != "" {
		t.Fatalf("expected empty hint, got %q", tasks[1].Hint)
	}
}

func TestLoadSkipsBlankLines(t *testing.T) {
	p := writeDataset(t, "\n\nQ?,T\n\n")
	tasks, skipped, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(tasks) != 1 || skipped != 0 {
		t.Fatalf("expected 1 task 0 skipped, got %d/%d", len(tasks), skipped)
	}
	if !tasks[0].Expected {
		t.Fatalf("expected label to parse true, got %+v", tasks[0])
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, _, err := Load(filepath.Join(t.TempDir(), "nope.csv")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
