package report

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"prestige/internal/attribution"
	"prestige/internal/textutil"
)

// WriteFlaggedCSV writes the enriched catalog: original columns, the title
// key, and every flag column as true/false.
func WriteFlaggedCSV(w io.Writer, flagged *attribution.Flagged) error {
	if flagged == nil {
		return errors.New("write flagged csv: nil catalog")
	}
	writer := csv.NewWriter(w)
	if err := writer.Write(flagged.Header()); err != nil {
		return fmt.Errorf("write flagged header: %w", err)
	}
	if err := writer.WriteAll(flagged.Records()); err != nil {
		return fmt.Errorf("write flagged rows: %w", err)
	}
	return nil
}

// FlaggedFileName returns the file name of a platform's enriched catalog.
func FlaggedFileName(platform string) string {
	return textutil.SanitizeToken(platform) + "_flagged.csv"
}

// WriteFlaggedFiles writes one enriched catalog per platform into dir.
// Platforms whose file names collide are rejected before anything is written.
func WriteFlaggedFiles(dir string, flagged []*attribution.Flagged) ([]string, error) {
	owners := make(map[string]string, len(flagged))
	for _, f := range flagged {
		if f == nil {
			continue
		}
		name := FlaggedFileName(f.Platform)
		if prior, taken := owners[name]; taken {
			return nil, fmt.Errorf("platforms %q and %q both write %s", prior, f.Platform, name)
		}
		owners[name] = f.Platform
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create flagged directory: %w", err)
	}
	paths := make([]string, 0, len(flagged))
	for _, f := range flagged {
		if f == nil {
			continue
		}
		path := filepath.Join(dir, FlaggedFileName(f.Platform))
		if err := writeFlaggedFile(path, f); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeFlaggedFile(path string, f *attribution.Flagged) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if closeErr := file.Close(); err == nil && closeErr != nil {
			err = fmt.Errorf("close %s: %w", path, closeErr)
		}
	}()
	return WriteFlaggedCSV(file, f)
}
