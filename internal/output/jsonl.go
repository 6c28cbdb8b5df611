package output

import (
	"encoding/json"
	"io"

	"github.com/ancients-collective/hostfacts/internal/types"
)

// JSONLFormatter writes an About report as newline-delimited JSON.
// The first line is a header with version, family and OS details.
// Subsequent lines carry one fact each.
type JSONLFormatter struct{}

// Write renders the report as JSONL: header line + one line per fact.
func (f *JSONLFormatter) Write(w io.Writer, report *types.AboutReport) error {
	enc := json.NewEncoder(w)

	header := struct {
		Type      string         `json:"type"`
		Version   string         `json:"version"`
		Timestamp string         `json:"timestamp"`
		Family    types.OSFamily `json:"family"`
		OS        types.OSInfo   `json:"os"`
	}{
		Type:      "header",
		Version:   report.Version,
		Timestamp: report.Timestamp.Format("2006-01-02T15:04:05Z07:00"),
		Family:    report.Family,
		OS:        report.OS,
	}
	if err := enc.Encode(header); err != nil {
		return err
	}

	for _, fact := range types.AllFacts {
		line := struct {
			Type  string     `json:"type"`
			Fact  types.Fact `json:"fact"`
			Value string     `json:"value"`
			Known bool       `json:"known"`
		}{
			Type:  "fact",
			Fact:  fact,
			Value: report.Facts.Get(fact),
			Known: report.Facts.Get(fact) != types.Unknown,
		}
		if err := enc.Encode(line); err != nil {
			return err
		}
	}

	return nil
}
