package benchmark

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/miguelAagelcruzvargas/sara-intent/corpus"
)

// MaxDatasetSize caps a dataset when no limit is given
const MaxDatasetSize = 5000

// LoadDataset reads a CSV with a header row and the columns text and intent.
// Extra columns are ignored. Intents are upper-cased.
func LoadDataset(r io.Reader, limit int) ([]Case, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}

	if len(records) < 2 {
		return nil, fmt.Errorf("dataset file must have at least a header and one row")
	}

	// Skip header row (index 0), parse data rows
	dataset := make([]Case, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) < 2 || strings.TrimSpace(record[0]) == "" {
			continue
		}
		dataset = append(dataset, Case{
			Text:     record[0],
			Expected: corpus.Label(strings.ToUpper(strings.TrimSpace(record[1]))),
		})
	}

	return trimDataset(dataset, limit), nil
}

// LoadDatasetFile opens path and calls LoadDataset
func LoadDatasetFile(path string, limit int) ([]Case, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset file: %w", err)
	}
	defer file.Close()

	return LoadDataset(file, limit)
}

// trimDataset trims the dataset to the specified limit
func trimDataset(dataset []Case, limit int) []Case {
	if limit <= 0 {
		limit = MaxDatasetSize
	}
	if len(dataset) > limit {
		return dataset[:limit]
	}
	return dataset
}
