package pricing

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prices.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestReplaySingleColumn(t *testing.T) {
	t.Parallel()

	r, err := NewReplay(writeCSV(t, "50000\n50010.5\n49990\n"))
	require.NoError(t, err)
	assert.Equal(t, 3, r.Remaining())

	p, err := r.Next(0)
	require.NoError(t, err)
	assert.Equal(t, 50000.0, p)

	p, err = r.Next(p)
	require.NoError(t, err)
	assert.Equal(t, 50010.5, p)
}

func TestReplayTimePriceColumnsWithHeader(t *testing.T) {
	t.Parallel()

	r, err := NewReplay(writeCSV(t, "time,price\n2024-01-01T00:00:00Z,100\n2024-01-01T00:00:01Z,110\n"))
	require.NoError(t, err)
	assert.Equal(t, 2, r.Remaining())

	p, err := r.Next(0)
	require.NoError(t, err)
	assert.Equal(t, 100.0, p)
}

func TestReplayExhaustion(t *testing.T) {
	t.Parallel()

	r, err := NewReplay(writeCSV(t, "100\n"))
	require.NoError(t, err)

	_, err = r.Next(0)
	require.NoError(t, err)
	assert.Equal(t, 0, r.Remaining())

	_, err = r.Next(100)
	assert.True(t, errors.Is(err, ErrExhausted))
}

func TestReplayRejectsBadFiles(t *testing.T) {
	t.Parallel()

	_, err := NewReplay(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)

	_, err = NewReplay(writeCSV(t, "price\n"))
	assert.Error(t, err, "header only, no prices")

	_, err = NewReplay(writeCSV(t, "100\nnot-a-number\n"))
	assert.Error(t, err)

	_, err = NewReplay(writeCSV(t, "100\n-5\n"))
	assert.Error(t, err)
}
