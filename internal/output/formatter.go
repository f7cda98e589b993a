package output

import (
	"fmt"
	"io"

	"github.com/netwatch/posture/pkg/types"
)

// Formatter renders a score result to a writer.
type Formatter interface {
	Format(w io.Writer, result *types.Result) error
}

// GetFormatter returns the appropriate formatter for the given format string.
func GetFormatter(format string) (Formatter, error) {
	switch format {
	case "table":
		return &TableFormatter{}, nil
	case "json":
		return &JSONFormatter{}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q (supported: table, json)", format)
	}
}
