// Package output provides formatters that render About reports in different formats.
package output

import (
	"io"

	"github.com/ancients-collective/hostfacts/internal/types"
)

// Formatter writes an About report to the given writer.
type Formatter interface {
	Write(w io.Writer, report *types.AboutReport) error
}
