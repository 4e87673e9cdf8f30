package abbrev

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/macrolens/maxprotein/internal/domain"
)

// Field positions in a USDA SR ABBREV record
const (
	fieldDescription = 1
	fieldKcal        = 3
	fieldProtein     = 4
	fieldAmountG     = 48
	fieldAmount      = 49

	// maxFields is the widest record the format allows
	maxFields = 53

	fieldSeparator = "^"
	textDelimiter  = '~'
)

// maxLineBytes bounds a single record line
const maxLineBytes = 64 * 1024

// FileSource loads foods from an ABBREV file on disk
type FileSource struct {
	path string
}

// NewFileSource creates a FileSource for the file at path
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// LoadFoods implements domain.FoodSource
func (s *FileSource) LoadFoods(ctx context.Context) ([]domain.Food, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", s.path, err)
	}
	defer f.Close()

	foods, err := Parse(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", s.path, err)
	}

	slog.Info("loaded ABBREV catalog", "path", s.path, "foods", len(foods))
	return foods, nil
}

// Parse reads ABBREV records from r. Records with missing or invalid fields
// are skipped. A record with more than 53 fields means r is not in ABBREV
// format, and the whole parse fails with domain.ErrMalformedSource.
func Parse(ctx context.Context, r io.Reader) ([]domain.Food, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), maxLineBytes)

	foods := make([]domain.Food, 0)
	skipped := 0
	for line := 1; scanner.Scan(); line++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		fields := splitRecord(scanner.Text())
		if len(fields) > maxFields {
			return nil, fmt.Errorf("%w: line %d has %d fields, at most %d allowed",
				domain.ErrMalformedSource, line, len(fields), maxFields)
		}

		food, ok := parseRecord(fields)
		if !ok {
			skipped++
			continue
		}
		foods = append(foods, food)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read records: %w", err)
	}

	if skipped > 0 {
		slog.Debug("skipped invalid ABBREV records", "skipped", skipped)
	}
	return foods, nil
}

// splitRecord splits a line on the field separator. A single trailing
// separator terminates the last field rather than opening an empty one.
func splitRecord(line string) []string {
	fields := strings.Split(line, fieldSeparator)
	if n := len(fields); n > 1 && fields[n-1] == "" {
		fields = fields[:n-1]
	}
	return fields
}

// parseRecord converts one split line into a Food, reporting false when any
// field is missing or invalid.
func parseRecord(fields []string) (domain.Food, bool) {
	if len(fields) <= fieldAmount {
		return domain.Food{}, false
	}

	description, ok := unquote(fields[fieldDescription])
	if !ok {
		return domain.Food{}, false
	}
	amount, ok := unquote(fields[fieldAmount])
	if !ok {
		return domain.Food{}, false
	}
	amountG, ok := parseRounded(fields[fieldAmountG])
	if !ok {
		return domain.Food{}, false
	}
	kcal, ok := parseRounded(fields[fieldKcal])
	if !ok {
		return domain.Food{}, false
	}
	proteinG, ok := parseRounded(fields[fieldProtein])
	if !ok {
		return domain.Food{}, false
	}

	food, err := domain.NewFood(description, amount, amountG, kcal, proteinG)
	if err != nil {
		return domain.Food{}, false
	}
	return food, true
}

// unquote strips the tildes around a text field; "~~" and bare text are rejected
func unquote(field string) (string, bool) {
	if len(field) < 3 || field[0] != textDelimiter || field[len(field)-1] != textDelimiter {
		return "", false
	}
	return field[1 : len(field)-1], true
}

// parseRounded parses the leading decimal number of a field, ignoring any
// trailing text ("12abc" is 12), and rounds it to the nearest integer
func parseRounded(field string) (int, bool) {
	number := numericPrefix(strings.TrimLeft(field, " \t\r\n"))
	if number == "" {
		return 0, false
	}
	value, err := strconv.ParseFloat(number, 64)
	if err != nil || math.IsInf(value, 0) {
		return 0, false
	}
	if value > math.MaxInt32 || value < math.MinInt32 {
		return 0, false
	}
	return int(math.Round(value)), true
}

// numericPrefix returns the longest prefix of s shaped like a decimal
// float: optional sign, digits with an optional point, optional exponent.
// It returns "" when s does not start with a number.
func numericPrefix(s string) string {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := 0
	for ; i < len(s) && isDigit(s[i]); i++ {
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for ; i < len(s) && isDigit(s[i]); i++ {
			digits++
		}
	}
	if digits == 0 {
		return ""
	}

	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		if j < len(s) && isDigit(s[j]) {
			for j < len(s) && isDigit(s[j]) {
				j++
			}
			i = j
		}
	}
	return s[:i]
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
