package dataset

import (
	"bufio"
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/username/chinese-calendar/pkg/dateutil"
	"go.uber.org/zap"
)

//go:embed data/china.txt
var defaultData []byte

// Default parses the bundled dataset
func Default(logger *zap.Logger) (*Dataset, error) {
	ds, err := Parse(bytes.NewReader(defaultData), "embedded", logger)
	if err != nil {
		return nil, fmt.Errorf("failed to parse embedded dataset: %w", err)
	}
	return ds, nil
}

// LoadFile loads a dataset from a text file
func LoadFile(path string, logger *zap.Logger) (*Dataset, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset file: %w", err)
	}
	defer file.Close()

	return Parse(file, path, logger)
}

// Parse reads dataset rows from r.
//
// Format: YYYY-MM-DD <holiday|workday> <label>
// Example: 2024-10-01 holiday National Day
//
// Blank lines and lines starting with # are ignored. Malformed lines are
// logged and skipped.
func Parse(r io.Reader, source string, logger *zap.Logger) (*Dataset, error) {
	holidays := make(map[dateutil.Date]string)
	workdays := make(map[dateutil.Date]string)

	scanner := bufio.NewScanner(r)
	lineNo := 0
	skipped := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		entry, err := parseLine(line)
		if err != nil {
			logger.Warn("Skipping invalid dataset line",
				zap.String("source", source),
				zap.Int("line", lineNo),
				zap.Error(err))
			skipped++
			continue
		}

		table := holidays
		if entry.Kind == KindWorkday {
			table = workdays
		}
		if prev, ok := table[entry.Date]; ok {
			logger.Warn("Duplicate dataset entry, keeping the last one",
				zap.String("source", source),
				zap.Int("line", lineNo),
				zap.Stringer("date", entry.Date),
				zap.String("previous", prev))
		}
		table[entry.Date] = entry.Label
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading dataset %s: %w", source, err)
	}

	ds, err := New(holidays, workdays)
	if err != nil {
		return nil, fmt.Errorf("dataset %s: %w", source, err)
	}

	minYear, maxYear := ds.YearRange()
	logger.Debug("Dataset loaded",
		zap.String("source", source),
		zap.Int("holidays", len(holidays)),
		zap.Int("workdays", len(workdays)),
		zap.Int("min_year", minYear),
		zap.Int("max_year", maxYear),
		zap.Int("skipped", skipped))

	if overlaps := ds.Overlaps(); len(overlaps) > 0 {
		logger.Warn("Dates listed as both holiday and workday, workday wins",
			zap.String("source", source),
			zap.Int("count", len(overlaps)),
			zap.Stringer("first", overlaps[0]))
	}

	return ds, nil
}

func parseLine(line string) (Entry, error) {
	parts := strings.Fields(line)
	if len(parts) < 3 {
		return Entry{}, fmt.Errorf("expected '<date> <kind> <label>', got %q", line)
	}

	t, err := time.Parse("2006-01-02", parts[0])
	if err != nil {
		return Entry{}, fmt.Errorf("failed to parse date %q: %w", parts[0], err)
	}

	var kind Kind
	switch parts[1] {
	case "holiday":
		kind = KindHoliday
	case "workday":
		kind = KindWorkday
	default:
		return Entry{}, fmt.Errorf("unknown kind %q", parts[1])
	}

	return Entry{
		Date:  dateutil.FromTime(t),
		Kind:  kind,
		Label: strings.Join(parts[2:], " "),
	}, nil
}
