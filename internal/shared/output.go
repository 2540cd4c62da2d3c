package shared

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"

	"hotelpoc/internal/table"
)

// Emit prints the first limit rows to w and, when cfg.ExportCSV is set,
// writes every row to that CSV file.
func Emit[T table.Recorder](w io.Writer, cfg Config, header []string, rows []T, limit int) error {
	if err := table.Print(w, header, rows, limit); err != nil {
		return fmt.Errorf("print table: %w", err)
	}
	if cfg.ExportCSV == "" {
		return nil
	}

	f, err := os.Create(cfg.ExportCSV)
	if err != nil {
		return fmt.Errorf("create %s: %w", cfg.ExportCSV, err)
	}
	if err := table.WriteCSV(f, header, rows); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", cfg.ExportCSV, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	log.Info().Str("path", cfg.ExportCSV).Int("rows", len(rows)).Msg("csv exported")
	return nil
}
