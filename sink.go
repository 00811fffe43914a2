package synthex

import (
	"os"
	"path/filepath"

	"github.com/go-openapi/runtime"
	"go.uber.org/multierr"
)

// csvSink writes batches to one CSV file. Each write replaces the file.
type csvSink struct {
	path     string
	producer runtime.Producer
}

func newCSVSink(path string) *csvSink {
	return &csvSink{path: path, producer: runtime.CSVProducer()}
}

// rows lays batch out as a header row (the first record's keys) followed
// by one row per record. Values are written as received.
func (s *csvSink) rows(batch Batch) [][]string {
	if len(batch) == 0 {
		return nil
	}
	header := batch[0].Keys()
	rows := make([][]string, 0, len(batch)+1)
	rows = append(rows, append([]string(nil), header...))
	for _, rec := range batch {
		row := make([]string, len(header))
		for i, k := range header {
			row[i] = rec.String(k)
		}
		rows = append(rows, row)
	}
	return rows
}

// write creates or truncates the file and writes batch to it, creating
// parent directories first.
func (s *csvSink) write(batch Batch) (err error) {
	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	f, err := os.Create(s.path)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, f.Close()) }()

	rows := s.rows(batch)
	if len(rows) == 0 {
		return nil
	}
	return s.producer.Produce(f, rows)
}
