package abbrev

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macrolens/maxprotein/internal/domain"
)

// record builds an ABBREV line with the given fields set and the rest empty
func record(description, kcal, protein, amountG, amount string) string {
	fields := make([]string, maxFields)
	fields[0] = "~01001~"
	fields[fieldDescription] = description
	fields[fieldKcal] = kcal
	fields[fieldProtein] = protein
	fields[fieldAmountG] = amountG
	fields[fieldAmount] = amount
	return strings.Join(fields, fieldSeparator)
}

func TestParse(t *testing.T) {
	ctx := context.Background()

	t.Run("parses valid records in order", func(t *testing.T) {
		input := strings.Join([]string{
			record("~BUTTER,WITH SALT~", "717", "0.85", "5", "~1 pat~"),
			record("~CHEESE,CHEDDAR~", "403", "24.9", "28.35", "~1 oz~"),
		}, "\n")

		foods, err := Parse(ctx, strings.NewReader(input))
		require.NoError(t, err)
		require.Len(t, foods, 2)

		assert.Equal(t, "BUTTER,WITH SALT", foods[0].Description())
		assert.Equal(t, "1 pat", foods[0].Amount())
		assert.Equal(t, 5, foods[0].AmountG())
		assert.Equal(t, 717, foods[0].Kcal())
		assert.Equal(t, 1, foods[0].ProteinG())

		assert.Equal(t, "CHEESE,CHEDDAR", foods[1].Description())
		assert.Equal(t, 28, foods[1].AmountG())
		assert.Equal(t, 25, foods[1].ProteinG())
	})

	t.Run("skips malformed records", func(t *testing.T) {
		input := strings.Join([]string{
			record("~EGG~", "143", "12.6", "50", "~1 large~"),
			record("~NO AMOUNT~", "100", "1", "10", ""),
			record("~EMPTY AMOUNT~", "100", "1", "10", "~~"),
			record("UNQUOTED", "100", "1", "10", "~1 cup~"),
			record("~BAD KCAL~", "abc", "1", "10", "~1 cup~"),
			record("~NEGATIVE~", "-5", "1", "10", "~1 cup~"),
			"~too~^~short~",
			"",
			record("~TOFU~", "76", "8.08", "126", "~0.5 cup~"),
		}, "\n")

		foods, err := Parse(ctx, strings.NewReader(input))
		require.NoError(t, err)
		require.Len(t, foods, 2)
		assert.Equal(t, "EGG", foods[0].Description())
		assert.Equal(t, "TOFU", foods[1].Description())
	})

	t.Run("fails on records wider than the format", func(t *testing.T) {
		input := record("~EGG~", "143", "12.6", "50", "~1 large~") + "^extra"

		foods, err := Parse(ctx, strings.NewReader(input))
		assert.ErrorIs(t, err, domain.ErrMalformedSource)
		assert.Nil(t, foods)
	})

	t.Run("accepts a trailing separator on a full-width record", func(t *testing.T) {
		input := record("~EGG~", "143", "12.6", "50", "~1 large~") + fieldSeparator

		foods, err := Parse(ctx, strings.NewReader(input))
		require.NoError(t, err)
		require.Len(t, foods, 1)
		assert.Equal(t, "EGG", foods[0].Description())
	})

	t.Run("numeric fields keep their leading number", func(t *testing.T) {
		input := record("~EGG~", "143kcal", "12.6 g", "50", "~1 large~")

		foods, err := Parse(ctx, strings.NewReader(input))
		require.NoError(t, err)
		require.Len(t, foods, 1)
		assert.Equal(t, 143, foods[0].Kcal())
		assert.Equal(t, 13, foods[0].ProteinG())
	})

	t.Run("empty input yields empty catalog", func(t *testing.T) {
		foods, err := Parse(ctx, strings.NewReader(""))
		require.NoError(t, err)
		assert.Empty(t, foods)
	})

	t.Run("honours cancellation", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := Parse(cancelled, strings.NewReader(record("~EGG~", "143", "12.6", "50", "~1 large~")))
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestParseRounded(t *testing.T) {
	tests := []struct {
		field string
		want  int
		ok    bool
	}{
		{"12", 12, true},
		{"12.5", 13, true},
		{"12.49", 12, true},
		{" 7.0 ", 7, true},
		{"", 0, false},
		{"n/a", 0, false},
		{"NaN", 0, false},
		{"1e300", 0, false},
		{"12abc", 12, true},
		{"4.6g", 5, true},
		{"2.5e1x", 25, true},
		{"3e", 3, true},
		{".5", 1, true},
		{"abc12", 0, false},
		{"-", 0, false},
		{".", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			got, ok := parseRounded(tt.field)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSplitRecord(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []string
	}{
		{"plain", "a^b^c", []string{"a", "b", "c"}},
		{"trailing separator", "a^b^", []string{"a", "b"}},
		{"only one trailing field dropped", "a^^", []string{"a", ""}},
		{"inner empty fields kept", "a^^c", []string{"a", "", "c"}},
		{"empty line", "", []string{""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, splitRecord(tt.line))
		})
	}
}

func TestFileSource(t *testing.T) {
	ctx := context.Background()

	t.Run("loads foods from disk", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "ABBREV.txt")
		content := record("~EGG~", "143", "12.6", "50", "~1 large~") + "\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		foods, err := NewFileSource(path).LoadFoods(ctx)
		require.NoError(t, err)
		require.Len(t, foods, 1)
		assert.Equal(t, 143, foods[0].Kcal())
	})

	t.Run("missing file is an error", func(t *testing.T) {
		_, err := NewFileSource(filepath.Join(t.TempDir(), "missing.txt")).LoadFoods(ctx)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}
