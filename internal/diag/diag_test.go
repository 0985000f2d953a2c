package diag

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTime = time.Date(2025, 3, 31, 9, 0, 0, 0, time.UTC)

func sampleList() List {
	var l List
	l.Add(KindInvalidCode, "X.1", "", `unknown side "X"`)
	l.Add(KindParseWarning, "A.1.1.1", "2024", `unparsable amount "abc"`)
	l.Add(KindMissingParent, "A.1.3.1", "", "parent A.1.3 not in sheet")
	return l
}

func TestList_Errors(t *testing.T) {
	l := sampleList()
	errs := l.Errors()
	require.Len(t, errs, 1)
	assert.Equal(t, KindInvalidCode, errs[0].Kind)

	assert.Len(t, l.OfKind(KindParseWarning), 1)
	assert.Equal(t, map[Kind]int{KindInvalidCode: 1, KindParseWarning: 1, KindMissingParent: 1}, l.Count())
}

func TestDiagnostic_String(t *testing.T) {
	d := Diagnostic{Kind: KindDiscrepancy, Code: "A.1", Period: "2024", Detail: "reported 10,00, children 12,00"}
	assert.Equal(t, "discrepancy [A.1] (2024): reported 10,00, children 12,00", d.String())
	assert.Equal(t, "unmatched", Diagnostic{Kind: KindUnmatched}.String())
}

func TestAppend_NewFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Append(dir, Entries("sheet-1", testTime, sampleList())))

	entries, err := Read(dir)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "sheet-1", entries[0].SheetID)
	assert.Equal(t, KindInvalidCode, entries[0].Kind)
	assert.Equal(t, "2024", entries[1].Period)
	assert.True(t, testTime.Equal(entries[2].Timestamp))
}

func TestAppend_ExistingFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Append(dir, Entries("a", testTime, sampleList()[:1])))
	require.NoError(t, Append(dir, Entries("b", testTime, sampleList()[1:2])))

	entries, err := Read(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "a", entries[0].SheetID)
	assert.Equal(t, "b", entries[1].SheetID)

	data, err := os.ReadFile(filepath.Join(dir, "logs", "diagnostics.csv"))
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(data), Header), "header written once")
}

func TestAppend_EmptyIsNoop(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Append(dir, nil))
	_, err := os.Stat(filepath.Join(dir, "logs"))
	assert.True(t, os.IsNotExist(err))
}

func TestRead_Missing(t *testing.T) {
	entries, err := Read(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestUnmarshalEntry_BadTimestamp(t *testing.T) {
	_, err := UnmarshalEntry([]string{"yesterday", "s", "unmatched", "", "", ""})
	require.Error(t, err)

	_, err = UnmarshalEntry([]string{"too", "few"})
	require.Error(t, err)
}
