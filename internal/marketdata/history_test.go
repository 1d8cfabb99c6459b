package marketdata

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCSVSkipsMalformedRows(t *testing.T) {
	csv := `month,price
2023-01,95.20
not-a-month,96.00
2023-02,abc
2023-03,97.85
2023-04,-5
2023-05,99.10
`
	path := filepath.Join(t.TempDir(), "history.csv")
	require.NoError(t, os.WriteFile(path, []byte(csv), 0644))

	history, err := LoadCSV(path)
	require.NoError(t, err)
	require.Len(t, history.Points, 3)
	assert.Equal(t, "95.2", history.Points[0].Price.String())
	assert.Equal(t, "99.1", history.LatestPrice().String())
}

func TestLoadCSVErrors(t *testing.T) {
	_, err := LoadCSV(filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)

	path := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, os.WriteFile(path, []byte("month,price\n"), 0644))
	_, err = LoadCSV(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no valid price points")
}

func TestSaveCSVRoundTrip(t *testing.T) {
	original := GenerateSyntheticHistory(24, 100, 1)
	path := filepath.Join(t.TempDir(), "history.csv")
	require.NoError(t, original.SaveCSV(path))

	loaded, err := LoadCSV(path)
	require.NoError(t, err)
	require.Len(t, loaded.Points, 24)
	for i := range original.Points {
		assert.True(t, loaded.Points[i].Price.Equal(original.Points[i].Price),
			"point %d: %s != %s", i, loaded.Points[i].Price, original.Points[i].Price)
	}
}

func TestDeriveReturnModel(t *testing.T) {
	history := GenerateSyntheticHistory(60, 100, 7)
	model, err := history.DeriveReturnModel()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, model.StdMonthlyReturn, 0.0)
	require.NoError(t, model.Validate())
}
