package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alecthomas/kong"
	"github.com/lepinkainen/videocatalog/types"
)

func parse(t *testing.T, args []string, configPaths ...string) (*CLI, *kong.Context, error) {
	t.Helper()
	var cli CLI
	parser, err := kong.New(&cli, kongOptions(&types.AppContext{Version: "test"}, configPaths...)...)
	if err != nil {
		t.Fatalf("kong.New() error = %v", err)
	}
	ctx, err := parser.Parse(args)
	return &cli, ctx, err
}

func TestScanCmd_Defaults(t *testing.T) {
	cli, ctx, err := parse(t, []string{"scan", "-i", "videos", "-c", "out.csv"})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if ctx.Command() != "scan" {
		t.Errorf("Command = %q, want scan", ctx.Command())
	}

	scan := cli.Scan
	if scan.Workers != 12 {
		t.Errorf("Workers = %d, want 12", scan.Workers)
	}
	if scan.Mode != "a" {
		t.Errorf("Mode = %q, want a", scan.Mode)
	}
	if scan.FFprobe != "ffprobe" {
		t.Errorf("FFprobe = %q, want ffprobe", scan.FFprobe)
	}
	if scan.ProbeTimeout != 2*time.Minute {
		t.Errorf("ProbeTimeout = %v, want 2m", scan.ProbeTimeout)
	}
	if scan.Log.File != "parse.log" || scan.Log.Level != "info" {
		t.Errorf("Log = %+v, want parse.log at info", scan.Log)
	}
	if scan.Tag != "" || scan.Refresh || scan.TUI {
		t.Errorf("Unexpected optional flags: %+v", scan)
	}
	if !filepath.IsAbs(scan.Input) || !filepath.IsAbs(scan.CSV) {
		t.Errorf("Paths should be resolved: %q, %q", scan.Input, scan.CSV)
	}
}

func TestScanCmd_Flags(t *testing.T) {
	cli, _, err := parse(t, []string{
		"scan", "-i", "/videos", "-c", "/tmp/out.csv",
		"-t", "archive", "-m", "w", "-n", "4",
		"--refresh", "--tui", "--ffprobe", "/opt/ffprobe",
		"--probe-timeout", "30s", "--log-file", "", "--log-level", "debug",
	})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	scan := cli.Scan
	if scan.Input != "/videos" || scan.CSV != "/tmp/out.csv" {
		t.Errorf("Input/CSV = %q/%q", scan.Input, scan.CSV)
	}
	if scan.Tag != "archive" || scan.Mode != "w" || scan.Workers != 4 {
		t.Errorf("Tag/Mode/Workers = %q/%q/%d", scan.Tag, scan.Mode, scan.Workers)
	}
	if !scan.Refresh || !scan.TUI {
		t.Error("Refresh and TUI should be set")
	}
	if scan.FFprobe != "/opt/ffprobe" || scan.ProbeTimeout != 30*time.Second {
		t.Errorf("FFprobe/ProbeTimeout = %q/%v", scan.FFprobe, scan.ProbeTimeout)
	}
	if scan.Log.File != "" || scan.Log.Level != "debug" {
		t.Errorf("Log = %+v", scan.Log)
	}
}

func TestScanCmd_Validation(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"missing input", []string{"scan", "-c", "out.csv"}},
		{"missing csv", []string{"scan", "-i", "videos"}},
		{"invalid mode", []string{"scan", "-i", "videos", "-c", "out.csv", "-m", "x"}},
		{"invalid log level", []string{"scan", "-i", "videos", "-c", "out.csv", "--log-level", "loud"}},
		{"invalid workers", []string{"scan", "-i", "videos", "-c", "out.csv", "-n", "many"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := parse(t, tt.args); err == nil {
				t.Error("Expected parse error")
			}
		})
	}
}

func TestVersionCmd(t *testing.T) {
	_, ctx, err := parse(t, []string{"version"})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if ctx.Command() != "version" {
		t.Errorf("Command = %q, want version", ctx.Command())
	}
}

func TestShowCmd(t *testing.T) {
	csv := filepath.Join(t.TempDir(), "videos.csv")
	if err := os.WriteFile(csv, []byte("name,path\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cli, ctx, err := parse(t, []string{"show", "-c", csv, "--collection", "Studio", "--cast", "jane"})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if ctx.Command() != "show" {
		t.Errorf("Command = %q, want show", ctx.Command())
	}
	if cli.Show.Collection != "Studio" || cli.Show.Cast != "jane" {
		t.Errorf("Filters = %q/%q", cli.Show.Collection, cli.Show.Cast)
	}

	if _, _, err := parse(t, []string{"show", "-c", filepath.Join(t.TempDir(), "missing.csv")}); err == nil {
		t.Error("Expected error for missing catalogue")
	}
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "videocatalog.toml")
	content := `
workers = 3
tag = "nas"
mode = "w"
log_file = "scan.log"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	t.Run("default path", func(t *testing.T) {
		cli, _, err := parse(t, []string{"scan", "-i", "v", "-c", "o.csv"}, path)
		if err != nil {
			t.Fatalf("Parse() error = %v", err)
		}
		if cli.Scan.Workers != 3 || cli.Scan.Tag != "nas" || cli.Scan.Mode != "w" || cli.Scan.Log.File != "scan.log" {
			t.Errorf("Config not applied: %+v", cli.Scan)
		}
	})

	t.Run("config flag", func(t *testing.T) {
		cli, _, err := parse(t, []string{"--config", path, "scan", "-i", "v", "-c", "o.csv", "-n", "8"})
		if err != nil {
			t.Fatalf("Parse() error = %v", err)
		}
		if cli.Scan.Tag != "nas" {
			t.Errorf("Tag = %q, want nas from --config", cli.Scan.Tag)
		}
		if cli.Scan.Workers != 8 {
			t.Errorf("Workers = %d, command line should win over config", cli.Scan.Workers)
		}
	})

	t.Run("missing default path", func(t *testing.T) {
		cli, _, err := parse(t, []string{"scan", "-i", "v", "-c", "o.csv"}, filepath.Join(dir, "absent.toml"))
		if err != nil {
			t.Fatalf("Missing config should be ignored: %v", err)
		}
		if cli.Scan.Workers != 12 {
			t.Errorf("Workers = %d, want default 12", cli.Scan.Workers)
		}
	})
}
