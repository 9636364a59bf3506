package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/lepinkainen/videocatalog/catalog"
	"github.com/lepinkainen/videocatalog/logging"
	"github.com/lepinkainen/videocatalog/scan"
	"github.com/lepinkainen/videocatalog/types"
	"github.com/lepinkainen/videocatalog/ui"
	"github.com/lepinkainen/videocatalog/utils"
	"github.com/lepinkainen/videocatalog/video"
)

type LogFlags struct {
	Level string `help:"Log level (debug, info, warn, error)" enum:"debug,info,warn,error" default:"info"`
	File  string `help:"Log file, empty disables it" default:"parse.log"`
}

type ScanCmd struct {
	Input        string        `short:"i" required:"" help:"Directory (or single video file) to scan" type:"path"`
	CSV          string        `short:"c" name:"csv" required:"" help:"Catalogue CSV to write" type:"path"`
	Tag          string        `short:"t" help:"Tag placed first in every record's tags"`
	Mode         string        `short:"m" help:"Write mode: a appends/updates, w overwrites" enum:"a,w" default:"a"`
	Workers      int           `short:"n" help:"Number of parallel probes" default:"12"`
	Refresh      bool          `help:"Probe files that are already in the catalogue"`
	TUI          bool          `name:"tui" help:"Show the interactive worker status view"`
	FFprobe      string        `name:"ffprobe" help:"ffprobe binary" default:"ffprobe"`
	ProbeTimeout time.Duration `help:"Timeout for a single ffprobe run" default:"2m"`

	Log LogFlags `embed:"" prefix:"log-"`
}

func (cmd *ScanCmd) Run(appCtx *types.AppContext) error {
	mode, err := catalog.ParseMode(cmd.Mode)
	if err != nil {
		return err
	}

	useTUI := cmd.TUI && isTerminal(os.Stdout)
	console := io.Writer(os.Stdout)
	if useTUI {
		// the TUI owns the screen, messages still reach the log file
		console = io.Discard
	}

	log, closer, err := logging.New(logging.Options{
		Level:   cmd.Log.Level,
		Console: console,
		File:    cmd.Log.File,
	})
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	defer closer.Close()

	if cmd.TUI && !useTUI {
		log.Warn("Not a terminal, --tui ignored")
	}

	if err := utils.ValidateProbeDependency(cmd.FFprobe); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	version := appCtx.AppVersion()
	fmt.Println(ui.HeaderStyle.Render(fmt.Sprintf("videocatalog %s", version)))

	scanner := &scan.Scanner{
		Prober: &video.FFprobe{Binary: cmd.FFprobe, Timeout: cmd.ProbeTimeout},
		Log:    log,
	}
	opts := scan.Options{
		Input:   cmd.Input,
		Output:  cmd.CSV,
		Tag:     cmd.Tag,
		Mode:    mode,
		Workers: cmd.Workers,
		Refresh: cmd.Refresh,
	}

	var summary *scan.Summary
	if useTUI {
		summary, err = runWithTUI(ctx, scanner, opts, version)
	} else {
		if isTerminal(os.Stderr) {
			scanner.Observer = scan.NewProgressBar(os.Stderr)
		} else {
			scanner.Observer = &scan.LogObserver{Log: log}
		}
		summary, err = scanner.Run(ctx, opts)
	}
	if err != nil {
		log.WithError(err).Error("Scan failed")
		return err
	}

	fmt.Println(renderSummary(summary))
	switch {
	case summary.Interrupted && !summary.Saved:
		fmt.Println(ui.WarningStyle.Render(fmt.Sprintf("⚠️  Scan interrupted, %s was not overwritten", cmd.CSV)))
	case summary.Interrupted:
		fmt.Println(ui.WarningStyle.Render(fmt.Sprintf("⚠️  Scan interrupted, %d files left for the next run", summary.Unprocessed)))
	case !summary.Saved:
		fmt.Println(ui.InfoStyle.Render("Catalogue already up to date"))
	default:
		fmt.Println(ui.SuccessStyle.Render(fmt.Sprintf("✅ Catalogue written to %s", cmd.CSV)))
	}
	return nil
}

// runWithTUI runs the scan in the background while the worker status view is shown.
// Quitting the view cancels the scan; the collected results are still saved.
func runWithTUI(ctx context.Context, scanner *scan.Scanner, opts scan.Options, version string) (*scan.Summary, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	workers := opts.Workers
	if workers <= 0 {
		workers = scan.DefaultWorkers
	}

	p := tea.NewProgram(ui.NewTUIModel(workers, version, cancel))
	scanner.Observer = ui.NewObserver(p)

	type outcome struct {
		summary *scan.Summary
		err     error
	}
	done := make(chan outcome, 1)
	go func() {
		summary, err := scanner.Run(ctx, opts)
		done <- outcome{summary, err}
		p.Quit()
	}()

	if _, err := p.Run(); err != nil {
		cancel()
		<-done
		return nil, fmt.Errorf("TUI error: %w", err)
	}

	res := <-done
	return res.summary, res.err
}

func renderSummary(s *scan.Summary) string {
	rows := [][]string{
		{"Files found", strconv.Itoa(s.Found)},
		{"Already catalogued", strconv.Itoa(s.Skipped)},
		{"Processed", strconv.Itoa(s.Processed)},
		{"Without metadata", strconv.Itoa(s.ProbeFailures)},
		{"Excluded", strconv.Itoa(s.Excluded)},
	}
	if s.Interrupted {
		rows = append(rows, []string{"Not processed", strconv.Itoa(s.Unprocessed)})
	}
	rows = append(rows,
		[]string{"Added", strconv.Itoa(s.Merge.Added)},
		[]string{"Updated", strconv.Itoa(s.Merge.Updated)},
		[]string{"Kept", strconv.Itoa(s.Merge.Kept)},
		[]string{"Catalogue total", strconv.Itoa(s.Total)},
		[]string{"Elapsed", s.Elapsed.Round(time.Millisecond).String()},
	)
	return renderTable([]string{"Scan", "Count"}, rows, []columnAlignment{alignLeft, alignRight})
}
