// Package roster reads coach reference data from CSV or YAML files.
package roster

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/iPranay05/OneAthleteOneNation-sub000/internal/domain/model"
)

// ErrInvalidRoster is wrapped by every parse failure.
var ErrInvalidRoster = errors.New("invalid roster")

// listSep separates languages and certifications inside one CSV cell.
const listSep = ";"

// ParseCSV reads a roster with a header row. Only the id column is
// required; name, specialization, experience, rating, languages,
// certifications, phone and email are optional.
func ParseCSV(reader io.Reader) ([]model.Coach, error) {
	csvReader := csv.NewReader(reader)
	csvReader.TrimLeadingSpace = true

	records, err := csvReader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: read csv: %w", ErrInvalidRoster, err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("%w: csv must include a header row and at least one data row", ErrInvalidRoster)
	}

	headers := make(map[string]int, len(records[0]))
	for idx, col := range records[0] {
		headers[strings.ToLower(strings.TrimSpace(col))] = idx
	}
	if _, ok := headers["id"]; !ok {
		return nil, fmt.Errorf("%w: missing required column %q", ErrInvalidRoster, "id")
	}

	column := func(record []string, name string) string {
		idx, ok := headers[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	coaches := make([]model.Coach, 0, len(records)-1)
	seen := make(map[string]int, len(records)-1)
	for i, record := range records[1:] {
		lineNo := i + 2

		id := column(record, "id")
		if id == "" {
			return nil, fmt.Errorf("%w: line %d id: value is required", ErrInvalidRoster, lineNo)
		}
		if prev, dup := seen[id]; dup {
			return nil, fmt.Errorf("%w: line %d id: %q already on line %d", ErrInvalidRoster, lineNo, id, prev)
		}
		seen[id] = lineNo

		var rating float64
		if value := column(record, "rating"); value != "" {
			rating, err = strconv.ParseFloat(value, 64)
			if err != nil || rating < 0 || rating > 5 {
				return nil, fmt.Errorf("%w: line %d rating: want 0-5, got %q", ErrInvalidRoster, lineNo, value)
			}
		}

		coaches = append(coaches, model.Coach{
			ID:             id,
			Name:           column(record, "name"),
			Specialization: column(record, "specialization"),
			Experience:     column(record, "experience"),
			Rating:         rating,
			Languages:      splitList(column(record, "languages")),
			Certifications: splitList(column(record, "certifications")),
			Contact: model.Contact{
				Phone: column(record, "phone"),
				Email: column(record, "email"),
			},
		})
	}
	return coaches, nil
}

// ParseYAML reads a roster shaped as {coaches: [...]}.
func ParseYAML(reader io.Reader) ([]model.Coach, error) {
	var doc struct {
		Coaches []model.Coach `yaml:"coaches"`
	}
	if err := yaml.NewDecoder(reader).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: decode yaml: %w", ErrInvalidRoster, err)
	}
	for i, c := range doc.Coaches {
		if strings.TrimSpace(c.ID) == "" {
			return nil, fmt.Errorf("%w: coach %d: id is required", ErrInvalidRoster, i)
		}
	}
	return doc.Coaches, nil
}

// LoadFile parses path as YAML when it ends in .yaml or .yml, as CSV otherwise.
func LoadFile(path string) ([]model.Coach, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open roster: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(f)
	default:
		return ParseCSV(f)
	}
}

func splitList(value string) []string {
	if value == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(value, listSep) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
