// Package export turns accumulated place records into CSV, either streamed
// to an HTTP response or appended to a file on disk.
package export

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"github.com/placescout/placescout/pkg/places"
)

// Columns is the fixed CSV column order. The header names match the JSON
// field names the frontend sees, so a downloaded file lines up with the
// rendered cards.
var Columns = []string{
	"id",
	"displayName",
	"formattedAddress",
	"primaryType",
	"rating",
	"userRatingCount",
	"businessStatus",
}

// WriteCSV writes a header row plus one row per record to w
func WriteCSV(w io.Writer, records []places.Place) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Columns); err != nil {
		return err
	}
	for _, p := range records {
		if err := cw.Write(row(p)); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// AppendFile writes records to the CSV file at path, creating it when
// absent. In append mode the header row is only written when the file is
// empty, so successive pages of one search accumulate under a single header.
func AppendFile(path string, records []places.Place, appendMode bool) error {
	flags := os.O_CREATE | os.O_WRONLY
	if appendMode {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}

	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}

	cw := csv.NewWriter(f)
	if !appendMode || info.Size() == 0 {
		if err := cw.Write(Columns); err != nil {
			return err
		}
	}
	for _, p := range records {
		if err := cw.Write(row(p)); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// row renders one record in column order; absent optional values become
// empty cells
func row(p places.Place) []string {
	rating := ""
	if p.Rating != nil {
		rating = strconv.FormatFloat(*p.Rating, 'f', -1, 64)
	}

	ratingCount := ""
	if p.UserRatingCount != nil {
		ratingCount = strconv.Itoa(*p.UserRatingCount)
	}

	return []string{
		p.ID,
		p.DisplayName,
		p.FormattedAddress,
		p.PrimaryType,
		rating,
		ratingCount,
		p.BusinessStatus,
	}
}
