package workbook

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeWorkbook(t *testing.T) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetSheetName("Sheet1", "Consolidated"))
	require.NoError(t, f.SetSheetRow("Consolidated", "A1", &[]any{"Description", "2024", "2023"}))
	require.NoError(t, f.SetSheetRow("Consolidated", "A2", &[]any{"Total Assets", 1200, 1100}))
	require.NoError(t, f.SetSheetRow("Consolidated", "A3", &[]any{"Total Liabilities", 400, 380}))

	path := filepath.Join(t.TempDir(), "out.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestSummarize(t *testing.T) {
	path := writeWorkbook(t)

	s, err := Summarize(path)
	require.NoError(t, err)

	require.Len(t, s.Sheets, 1)
	assert.Equal(t, "Consolidated", s.Sheets[0].Name)
	assert.Equal(t, 3, s.Sheets[0].Rows)
	assert.Equal(t, 3, s.Sheets[0].Cols)

	assert.Equal(t, "Consolidated: 3 rows x 3 columns", s.String())
}

func TestSummarizeRejectsNonWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "not-a-workbook.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("this is not a zip archive"), 0o644))

	_, err := Summarize(path)
	assert.Error(t, err)
}

func TestSummarizeMissingFile(t *testing.T) {
	_, err := Summarize(filepath.Join(t.TempDir(), "absent.xlsx"))
	assert.Error(t, err)
}
