package journal

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCSVRoundTrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	tradesPath := filepath.Join(dir, "trades.csv")
	equityPath := filepath.Join(dir, "equity.csv")

	j, err := NewCSV(tradesPath, equityPath)
	assert.NoError(t, err)

	now := time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC)
	assert.NoError(t, j.RecordTrade(TradeRecord{
		TradeID:    "T1",
		Symbol:     "ETHUSD",
		Side:       "SELL",
		Size:       2,
		EntryPrice: 3000,
		ExitPrice:  2990,
		OpenTime:   now,
		CloseTime:  now.Add(time.Minute),
		PnL:        20,
		Reason:     "StopTarget",
	}))
	assert.NoError(t, j.RecordEquity(EquitySnapshot{
		Time:          now.Add(time.Minute),
		Equity:        10020,
		DailyPnL:      20,
		OpenPositions: 0,
		RiskUsedPct:   2,
	}))
	assert.NoError(t, j.Close())

	tf, err := os.Open(tradesPath)
	assert.NoError(t, err)
	defer tf.Close()

	rows, err := csv.NewReader(tf).ReadAll()
	assert.NoError(t, err)
	assert.Len(t, rows, 2)
	assert.Equal(t, "trade_id", rows[0][0])
	assert.Equal(t, "T1", rows[1][0])
	assert.Equal(t, "SELL", rows[1][2])

	ef, err := os.Open(equityPath)
	assert.NoError(t, err)
	defer ef.Close()

	erows, err := csv.NewReader(ef).ReadAll()
	assert.NoError(t, err)
	assert.Len(t, erows, 2)
	assert.Equal(t, "time", erows[0][0])
}
