package cmd

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/KaramelBytes/edakit/internal/ingest"
	"github.com/KaramelBytes/edakit/internal/render"
	"github.com/KaramelBytes/edakit/internal/run"
	"github.com/KaramelBytes/edakit/internal/table"
)

// ingestOptions builds ingest options from the effective configuration.
func ingestOptions(log *slog.Logger) (ingest.Options, error) {
	c := settings()
	delim, err := c.Delimiter()
	if err != nil {
		return ingest.Options{}, err
	}
	opt := ingest.Options{
		ExtractDir:      c.ExtractDir,
		CleanExtractDir: c.CleanExtractDir,
		Sheet:           c.XLSXSheet,
		Table:           table.Options{NAValues: c.NAValues},
		Logger:          log,
	}
	// a comma leaves room for extension-based sniffing (.tsv)
	if delim != ',' {
		opt.Table.Delimiter = delim
	}
	return opt, nil
}

// loadTable ingests path with the ingestor registered for its extension.
func loadTable(path string, log *slog.Logger) (*table.Table, error) {
	opt, err := ingestOptions(log)
	if err != nil {
		return nil, err
	}
	t, err := ingest.File(path, opt)
	if err != nil {
		return nil, err
	}
	log.Debug("table loaded", "path", path, "rows", t.Nrow(), "cols", t.Ncol())
	return t, nil
}

// session ties one figure-producing command to its renderer and manifest.
type session struct {
	log      *slog.Logger
	renderer *render.FileRenderer
	manifest *run.Manifest
}

func startSession(command, input string) (*session, error) {
	c := settings()
	m := run.New(command, input, c.OutputDir)
	log := logger.With("run_id", m.ID, "command", command)
	r, err := render.NewFileRenderer(c.OutputDir, c.FigureFormat, log)
	if err != nil {
		return nil, err
	}
	log.Debug("run started", "input", input, "output_dir", c.OutputDir)
	return &session{log: log, renderer: r, manifest: m}, nil
}

// finish records written figures in the manifest and reports where they went.
// A failed run keeps a manifest only when it left figures behind; runErr is
// returned unchanged.
func (s *session) finish(out io.Writer, runErr error) error {
	figs := s.renderer.Figures()
	if runErr != nil {
		if len(figs) == 0 {
			return runErr
		}
		s.manifest.AddFigures(figs...)
		s.manifest.Error = runErr.Error()
		if err := s.manifest.Save(); err != nil {
			s.log.Warn("save manifest after failure", "err", err)
		}
		s.log.Warn("run failed", "figures", len(figs), "manifest", s.manifest.Path(), "err", runErr)
		return runErr
	}
	s.manifest.AddFigures(figs...)
	if err := s.manifest.Save(); err != nil {
		return fmt.Errorf("save manifest: %w", err)
	}
	s.log.Info("run finished", "figures", len(figs), "manifest", s.manifest.Path())
	fmt.Fprintf(out, "✓ Wrote %d figure(s) to %s\n", len(figs), s.renderer.Dir())
	return nil
}
