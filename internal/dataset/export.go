package dataset

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/yourusername/football-edge/internal/models"
)

// WriteJSONLines writes one JSON object per record
func WriteJSONLines[T any](w io.Writer, records []T) error {
	buffered := bufio.NewWriter(w)
	encoder := json.NewEncoder(buffered)
	for i, record := range records {
		if err := encoder.Encode(record); err != nil {
			return fmt.Errorf("failed to encode record %d: %w", i, err)
		}
	}
	return buffered.Flush()
}

// WriteJSONLinesFile writes records to path, creating parent directories
func WriteJSONLinesFile[T any](path string, records []T) (err error) {
	if path == "" {
		return fmt.Errorf("output path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", path, closeErr)
		}
	}()
	return WriteJSONLines(file, records)
}

// ReadEvaluationJSONLines reads records written by WriteJSONLines
func ReadEvaluationJSONLines(r io.Reader) ([]models.EvaluationRecord, error) {
	var records []models.EvaluationRecord
	decoder := json.NewDecoder(bufio.NewReader(r))
	for line := 1; ; line++ {
		var record models.EvaluationRecord
		err := decoder.Decode(&record)
		if err == io.EOF {
			return records, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to decode record %d: %w", line, err)
		}
		records = append(records, record)
	}
}

// ReadEvaluationJSONLinesFile opens path and reads its records
func ReadEvaluationJSONLinesFile(path string) ([]models.EvaluationRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()
	return ReadEvaluationJSONLines(file)
}
