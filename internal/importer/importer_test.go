package importer

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/bilanco-dev/bilanco/internal/model"
)

func findItem(t *testing.T, items []model.LineItem, code string) model.LineItem {
	t.Helper()
	for _, it := range items {
		if it.Code == code {
			return it
		}
	}
	require.Failf(t, "item not found", "code %s", code)
	return model.LineItem{}
}

func TestCSVParser_Parse(t *testing.T) {
	f, err := os.Open("../../testdata/sheet-2024.csv")
	require.NoError(t, err)
	defer f.Close()

	p := &CSVParser{}
	sheet, err := p.Parse(f)
	require.NoError(t, err)

	assert.Equal(t, []string{"2023", "2024"}, sheet.Periods)
	require.Len(t, sheet.Items, 4)

	kasa := sheet.Items[0]
	assert.Equal(t, "A.1.1.1", kasa.Code)
	assert.Equal(t, "KASA", kasa.DisplayName)
	assert.Equal(t, "125.000,00", kasa.PeriodValues["2024"])
	assert.Equal(t, model.SourceExtracted, kasa.Source)
}

func TestCSVParser_NormalizesAndFillsBlanks(t *testing.T) {
	in := "\ufeffKod,Hesap,2024,2024E\n" +
		"A.1.1.1, - kasa  hesabı ,\"1.000,00\",\n" +
		",,,\n" +
		",Diğer,\"5,00\",\"6,00\"\n"
	sheet, err := (&CSVParser{}).Parse(strings.NewReader(in))
	require.NoError(t, err)

	assert.Equal(t, []string{"2024", "2024E"}, sheet.Periods)
	require.Len(t, sheet.Items, 2, "blank rows are skipped")
	assert.Equal(t, "KASA HESABI", sheet.Items[0].DisplayName)
	assert.Equal(t, model.NoData, sheet.Items[0].PeriodValues["2024E"])
	assert.True(t, sheet.Items[1].Uncoded())
	assert.Equal(t, "DİĞER", sheet.Items[1].DisplayName)
}

func TestCSVParser_BadHeader(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", "missing header"},
		{"too few columns", "code\nA.1\n", "want code,name"},
		{"wrong first column", "account,name,2024\n", "want code"},
		{"blank period", "code,name,,2024\n", "empty period"},
		{"repeated period", "code,name,2024,2024\n", "repeats period"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := (&CSVParser{}).Parse(strings.NewReader(tt.in))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestCSVParser_RaggedRow(t *testing.T) {
	_, err := (&CSVParser{}).Parse(strings.NewReader("code,name,2024\nA.1,X\n"))
	assert.Error(t, err)
}

func TestWindows1254Parser(t *testing.T) {
	utf8 := "code,name,2024\nA.1.3.1,ALICILAR,\"1,00\"\nP.3.1.1,ÖDENMİŞ SERMAYE,\"2,00\"\n"
	encoded, err := charmap.Windows1254.NewEncoder().String(utf8)
	require.NoError(t, err)
	require.NotEqual(t, utf8, encoded)

	sheet, err := (&Windows1254Parser{}).Parse(bytes.NewReader([]byte(encoded)))
	require.NoError(t, err)
	require.Len(t, sheet.Items, 2)
	assert.Equal(t, "ÖDENMİŞ SERMAYE", sheet.Items[1].DisplayName)
	assert.Equal(t, FormatCSV1254, (&Windows1254Parser{}).Format())
}

func TestJSONParser_Parse(t *testing.T) {
	f, err := os.Open("../../testdata/sheet-2024.json")
	require.NoError(t, err)
	defer f.Close()

	sheet, err := (&JSONParser{}).Parse(f)
	require.NoError(t, err)

	assert.Equal(t, "Örnek Ticaret A.Ş.", sheet.Company)
	assert.Equal(t, 2024, sheet.ReportedYear)
	assert.Equal(t, "12/2024", sheet.PeriodLabel)
	assert.Equal(t, []string{"2023", "2024"}, sheet.Periods)

	var codes []string
	for _, it := range sheet.Items {
		codes = append(codes, it.Code)
	}
	assert.Equal(t, []string{"UNMATCHED", "A.1", "A.1.1.1", "A.1.3.1", "P.1.2.1", "P.3.1.1"}, codes)

	kasa := findItem(t, sheet.Items, "A.1.1.1")
	assert.Equal(t, "KASA", kasa.DisplayName)

	alicilar := findItem(t, sheet.Items, "A.1.3.1")
	assert.Equal(t, "600000", alicilar.PeriodValues["2023"], "JSON numbers are kept")
	assert.Equal(t, "ALICILAR", alicilar.DisplayName)

	other := findItem(t, sheet.Items, model.UnmatchedCode)
	assert.Equal(t, model.NoData, other.PeriodValues["2023"])
	assert.Equal(t, "DİĞER ÇEŞİTLİ", other.DisplayName)

	group := findItem(t, sheet.Items, "A.1")
	assert.Empty(t, group.PeriodValues)
}

func TestJSONParser_DecimalNumbers(t *testing.T) {
	in := `{"items":[{"code":"A.1","name":"x","values":{"2024E":1234.5,"2024":-2}}]}`
	sheet, err := (&JSONParser{}).Parse(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, sheet.Items, 1)
	assert.Equal(t, "1234,5", sheet.Items[0].PeriodValues["2024E"])
	assert.Equal(t, "-2", sheet.Items[0].PeriodValues["2024"])
	assert.Equal(t, []string{"2024", "2024E"}, sheet.Periods, "periods collected when not given")
}

func TestJSONParser_Errors(t *testing.T) {
	for _, in := range []string{
		`{"items": [{"code": "A.1", "values": {"2024": true}}]}`,
		`{"unknown": 1}`,
		`not json`,
	} {
		_, err := (&JSONParser{}).Parse(strings.NewReader(in))
		assert.Error(t, err, in)
	}
}

func TestFormatFor(t *testing.T) {
	tests := []struct {
		name, encoding, want string
	}{
		{"sheet.csv", "utf-8", FormatCSV},
		{"SHEET.CSV", "windows-1254", FormatCSV1254},
		{"sheet.json", "windows-1254", FormatJSON},
	}
	for _, tt := range tests {
		got, err := FormatFor(tt.name, tt.encoding)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := FormatFor("sheet.pdf", "utf-8")
	assert.Error(t, err)
}

func TestRegistry_GetUnknown(t *testing.T) {
	r := NewRegistry()
	assert.Nil(t, r.Get("nonexistent"))
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	r := NewRegistry()
	r.Register(&CSVParser{})
	p := r.Get("csv")
	require.NotNil(t, p)
	assert.Equal(t, "csv", p.Format())
}

func TestRegistry_CaseInsensitive(t *testing.T) {
	r := NewRegistry()
	r.Register(&JSONParser{})
	assert.NotNil(t, r.Get("Json"))
	assert.NotNil(t, r.Get("JSON"))
}

func TestRegistry_DuplicatePanics(t *testing.T) {
	r := NewRegistry()
	r.Register(&CSVParser{})
	assert.Panics(t, func() { r.Register(&CSVParser{}) })
}

func TestDefaultRegistry(t *testing.T) {
	r := DefaultRegistry()
	for _, f := range []string{FormatCSV, FormatCSV1254, FormatJSON} {
		assert.NotNil(t, r.Get(f), f)
	}
}

func TestScan_FindsSheets(t *testing.T) {
	dir := t.TempDir()
	importDir := filepath.Join(dir, "import")
	require.NoError(t, os.MkdirAll(importDir, 0o755))

	require.NoError(t, os.WriteFile(filepath.Join(importDir, "a.csv"), []byte("data"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(importDir, "b.json"), []byte("{}"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(importDir, "other.txt"), []byte("data"), 0o644))

	files, err := Scan(dir)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "a.csv", files[0].Name)
	assert.Equal(t, "b.json", files[1].Name)
}

func TestScan_IgnoresProcessedDir(t *testing.T) {
	dir := t.TempDir()
	importDir := filepath.Join(dir, "import")
	processedDir := filepath.Join(importDir, "processed")
	require.NoError(t, os.MkdirAll(processedDir, 0o755))

	require.NoError(t, os.WriteFile(filepath.Join(importDir, "new.csv"), []byte("data"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(processedDir, "old.csv"), []byte("data"), 0o644))

	files, err := Scan(dir)
	require.NoError(t, err)
	assert.Len(t, files, 1)
	assert.Equal(t, "new.csv", files[0].Name)
}

func TestScan_EmptyDir(t *testing.T) {
	files, err := Scan(t.TempDir())
	require.NoError(t, err)
	assert.Nil(t, files)
}

func TestMarkProcessed(t *testing.T) {
	dir := t.TempDir()
	importDir := filepath.Join(dir, "import")
	require.NoError(t, os.MkdirAll(importDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(importDir, "sheet.csv"), []byte("data"), 0o644))

	err := MarkProcessed(dir, "sheet.csv")
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(importDir, "sheet.csv"))
	assert.True(t, os.IsNotExist(err))

	info, err := os.Stat(filepath.Join(dir, "import", "processed", "sheet.csv"))
	require.NoError(t, err)
	assert.False(t, info.IsDir())
}

func TestRegistry_ParseFile(t *testing.T) {
	r := DefaultRegistry()
	assert.Equal(t, []string{"csv", "csv-1254", "json"}, r.Formats())

	sheet, err := r.ParseFile("../../testdata/sheet-2024.json", FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, 2024, sheet.ReportedYear)

	_, err = r.ParseFile("../../testdata/sheet-2024.json", FormatCSV)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing sheet-2024.json as csv")

	_, err = r.ParseFile("../../testdata/sheet-2024.csv", "pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format")

	_, err = r.ParseFile("../../testdata/missing.csv", FormatCSV)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
