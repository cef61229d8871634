// internal/report/builder.go
package report

import (
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"

	cfg "github.com/tamzrod/zestlink/internal/config"
)

// NewRunID returns a fresh identifier stamped on every record of one run.
func NewRunID() string {
	return uuid.NewString()
}

// New builds a reporter writing format to w. closer may be nil.
func New(format string, w io.Writer, closer io.Closer, runID string) (Reporter, error) {
	switch format {
	case cfg.ReportText, "":
		return &textReporter{w: w, closer: closer, runID: runID}, nil
	case cfg.ReportCBOR:
		return newCBORReporter(w, closer, runID), nil
	default:
		return nil, fmt.Errorf("report: unsupported format %q", format)
	}
}

// Build opens the configured sink. An empty path writes to stdout.
func Build(rc cfg.ReportConfig, runID string) (Reporter, error) {
	if rc.Path == "" {
		return New(rc.Format, os.Stdout, nil, runID)
	}

	f, err := os.Create(rc.Path)
	if err != nil {
		return nil, fmt.Errorf("report: %w", err)
	}

	r, err := New(rc.Format, f, f, runID)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return r, nil
}
