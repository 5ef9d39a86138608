package export

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/placescout/placescout/pkg/places"
)

func float64Ptr(v float64) *float64 { return &v }
func intPtr(v int) *int             { return &v }

func sampleRecords() []places.Place {
	return []places.Place{
		{
			ID:               "place-1",
			DisplayName:      "Joe's \"Best\" Pizza, Inc.",
			FormattedAddress: "123 Main St, Raleigh, NC 27601",
			PrimaryType:      "pizza_restaurant",
			Rating:           float64Ptr(4.5),
			UserRatingCount:  intPtr(213),
			BusinessStatus:   "OPERATIONAL",
		},
		{
			ID:               "place-2",
			DisplayName:      "New Spot",
			FormattedAddress: "456 Oak Ave, Raleigh, NC 27603",
			PrimaryType:      "restaurant",
			BusinessStatus:   "OPERATIONAL",
		},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleRecords()))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	t.Run("header row", func(t *testing.T) {
		assert.Equal(t, Columns, rows[0])
	})

	t.Run("quoted fields survive the round trip", func(t *testing.T) {
		assert.Equal(t, "Joe's \"Best\" Pizza, Inc.", rows[1][1])
		assert.Equal(t, "123 Main St, Raleigh, NC 27601", rows[1][2])
	})

	t.Run("numeric fields are formatted", func(t *testing.T) {
		assert.Equal(t, "4.5", rows[1][4])
		assert.Equal(t, "213", rows[1][5])
	})

	t.Run("absent optional fields become empty cells", func(t *testing.T) {
		assert.Equal(t, "", rows[2][4])
		assert.Equal(t, "", rows[2][5])
	})
}

func TestWriteCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)

	// Header only
	require.Len(t, rows, 1)
	assert.Equal(t, Columns, rows[0])
}

func TestAppendFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.csv")
	records := sampleRecords()

	t.Run("fresh file gets a header", func(t *testing.T) {
		require.NoError(t, AppendFile(path, records[:1], false))

		rows := readCSVFile(t, path)
		require.Len(t, rows, 2)
		assert.Equal(t, Columns, rows[0])
		assert.Equal(t, "place-1", rows[1][0])
	})

	t.Run("append adds rows without repeating the header", func(t *testing.T) {
		require.NoError(t, AppendFile(path, records[1:], true))

		rows := readCSVFile(t, path)
		require.Len(t, rows, 3)
		assert.Equal(t, Columns, rows[0])
		assert.Equal(t, "place-2", rows[2][0])
	})

	t.Run("overwrite starts the file over", func(t *testing.T) {
		require.NoError(t, AppendFile(path, records[:1], false))

		rows := readCSVFile(t, path)
		require.Len(t, rows, 2)
	})

	t.Run("append to a missing file still writes the header", func(t *testing.T) {
		fresh := filepath.Join(t.TempDir(), "fresh.csv")
		require.NoError(t, AppendFile(fresh, records[:1], true))

		rows := readCSVFile(t, fresh)
		require.Len(t, rows, 2)
		assert.Equal(t, Columns, rows[0])
	})
}

func readCSVFile(t *testing.T, path string) [][]string {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	return rows
}
