package main

import (
	"testing"

	"boolevald/internal/config"
)

func TestMergeConfigFlagWins(t *testing.T) {
	file := config.Config{ModelPath: "/file/model", DatasetPath: "/file/data", Parallel: 2, LogLevel: "warn"}
	flags := config.Config{ModelPath: "/flag/model", Parallel: 8}
	out := mergeConfig(file, flags)
	if out.ModelPath != "/flag/model" {
		t.Fatalf("flag model should win: %q", out.ModelPath)
	}
	if out.Parallel != 8 {
		t.Fatalf("flag parallel should win: %d", out.Parallel)
	}
	if out.DatasetPath != "/file/data" || out.LogLevel != "warn" {
		t.Fatalf("unset flags must keep file values: %+v", out)
	}
}

func TestMergeConfigEmptyFlags(t *testing.T) {
	file := config.Config{ModelPath: "/m", Addr: ":8080", Threads: 3}
	out := mergeConfig(file, config.Config{})
	if out != file {
		t.Fatalf("empty flags must not override file: %+v", out)
	}
}

func TestNewLoggerBadLevelDefaultsInfo(t *testing.T) {
	l := newLogger("not-a-level")
	if l.GetLevel().String() != "info" {
		t.Fatalf("expected info fallback, got %s", l.GetLevel())
	}
}
