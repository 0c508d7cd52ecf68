package pricing

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Replay yields prices recorded in a CSV file, one row per tick.
//
// Supported formats:
//
//  1. price
//  2. time,price   (the time column is ignored; cadence comes from the session)
//
// A header row is detected and skipped when the first field is not numeric.
type Replay struct {
	prices []float64
	pos    int
}

// NewReplay loads all rows from csvPath up front. Replay files are small
// (one float per tick), so there is no need to stream.
func NewReplay(csvPath string) (*Replay, error) {
	f, err := os.Open(csvPath)
	if err != nil {
		return nil, fmt.Errorf("open replay file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	var prices []float64
	first := true
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read replay file: %w", err)
		}
		if len(row) == 0 {
			continue
		}
		field := strings.TrimSpace(row[len(row)-1])
		p, err := strconv.ParseFloat(field, 64)
		if err != nil {
			if first {
				// header row
				first = false
				continue
			}
			return nil, fmt.Errorf("bad price %q: %w", field, err)
		}
		if p <= 0 {
			return nil, fmt.Errorf("non-positive price %v in replay file", p)
		}
		prices = append(prices, p)
		first = false
	}

	if len(prices) == 0 {
		return nil, fmt.Errorf("replay file %s has no prices", csvPath)
	}
	return &Replay{prices: prices}, nil
}

// Next returns the next recorded price, or ErrExhausted after the last one.
func (r *Replay) Next(current float64) (float64, error) {
	_ = current
	if r.pos >= len(r.prices) {
		return 0, ErrExhausted
	}
	p := r.prices[r.pos]
	r.pos++
	return p, nil
}

// Remaining reports how many prices are left to play.
func (r *Replay) Remaining() int {
	return len(r.prices) - r.pos
}
