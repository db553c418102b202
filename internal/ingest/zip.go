package ingest

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/KaramelBytes/edakit/internal/table"
)

// ZipIngestor extracts a .zip archive and loads the one CSV at the top level
// of the extraction directory. Previous extraction contents are not isolated:
// a stale CSV left by an earlier run counts toward the match.
type ZipIngestor struct {
	opt Options
}

// NewZipIngestor builds a ZipIngestor directly, bypassing the factory.
func NewZipIngestor(opt Options) *ZipIngestor { return &ZipIngestor{opt: opt} }

func (z *ZipIngestor) extractDir() string {
	if z.opt.ExtractDir != "" {
		return z.opt.ExtractDir
	}
	return DefaultExtractDir
}

func (z *ZipIngestor) Ingest(path string) (*table.Table, error) {
	if !strings.HasSuffix(strings.ToLower(path), ".zip") {
		return nil, fmt.Errorf("%w: %s", ErrNotZipFile, path)
	}
	log := z.opt.logger()
	dir := z.extractDir()

	if z.opt.CleanExtractDir {
		if err := os.RemoveAll(dir); err != nil {
			return nil, fmt.Errorf("clean extract dir: %w", err)
		}
	}
	n, err := extractZip(path, dir)
	if err != nil {
		return nil, err
	}
	log.Debug("archive extracted", "archive", path, "dir", dir, "entries", n)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list extracted data: %w", err)
	}
	var csvFiles []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.HasSuffix(strings.ToLower(e.Name()), ".csv") {
			csvFiles = append(csvFiles, e.Name())
		}
	}
	switch len(csvFiles) {
	case 0:
		return nil, fmt.Errorf("%w (dir %s)", ErrNoCSVFound, dir)
	case 1:
	default:
		return nil, fmt.Errorf("%w: %s", ErrMultipleCSVFound, strings.Join(csvFiles, ", "))
	}

	csvPath := filepath.Join(dir, csvFiles[0])
	log.Debug("loading extracted csv", "path", csvPath)
	return readCSVFile(csvPath, z.opt.Table)
}

// extractZip writes every archive entry below dir and returns the entry count.
func extractZip(path, dir string) (int, error) {
	zr, err := zip.OpenReader(path)
	if errors.Is(err, zip.ErrInsecurePath) {
		zr.Close()
		return 0, fmt.Errorf("%w: %v", ErrUnsafeArchivePath, err)
	}
	if err != nil {
		return 0, fmt.Errorf("open zip: %w", err)
	}
	defer zr.Close()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, fmt.Errorf("mkdir extract dir: %w", err)
	}
	root, err := filepath.Abs(dir)
	if err != nil {
		return 0, fmt.Errorf("resolve extract dir: %w", err)
	}
	for _, f := range zr.File {
		target := filepath.Join(root, filepath.FromSlash(f.Name))
		rel, err := filepath.Rel(root, target)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return 0, fmt.Errorf("%w: %s", ErrUnsafeArchivePath, f.Name)
		}
		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return 0, fmt.Errorf("mkdir %s: %w", f.Name, err)
			}
			continue
		}
		if err := writeZipEntry(f, target); err != nil {
			return 0, err
		}
	}
	return len(zr.File), nil
}

func writeZipEntry(f *zip.File, target string) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("mkdir for %s: %w", f.Name, err)
	}
	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("open entry %s: %w", f.Name, err)
	}
	defer rc.Close()

	out, err := os.OpenFile(target, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("create %s: %w", target, err)
	}
	if _, err := io.Copy(out, rc); err != nil {
		out.Close()
		return fmt.Errorf("extract %s: %w", f.Name, err)
	}
	return out.Close()
}
