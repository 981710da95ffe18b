package navfile

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minios-linux/captrans/config"
)

var setup = config.LanguageSetup{BaseLanguageID: 1033, WorkLanguageID: 1031}

const sample = "T18-F2-P8629-A1033-L999:Customer\r\n" +
	"T18-F2-P8629-A1031-L999:Kunde\r\n" +
	"\r\n" +
	"T18-F3-P8629-A1033-L999:Name\r\n" +
	"T18-F5-P8629-A1033-L999:Address\r\n" +
	"T18-F5-P8629-A1031-L999:\r\n"

func writeSample(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tab18.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestExport(t *testing.T) {
	path := writeSample(t, sample)
	f, err := New(setup)
	require.NoError(t, err)

	base, err := f.Export(path, 1033)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"T18-F2-P8629-A1033-L999:Customer",
		"T18-F3-P8629-A1033-L999:Name",
		"T18-F5-P8629-A1033-L999:Address",
	}, base)

	work, err := f.Export(path, 1031)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"T18-F2-P8629-A1031-L999:Kunde",
		"T18-F3-P8629-A1031-L999:",
		"T18-F5-P8629-A1031-L999:",
	}, work)
}

func TestExportMissing(t *testing.T) {
	path := writeSample(t, sample)

	f, err := New(setup)
	require.NoError(t, err)
	missing, err := f.ExportMissing(path, 1031)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"T18-F3-P8629-A1031-L999:",
		"T18-F5-P8629-A1031-L999:",
	}, missing)

	review, err := New(setup, WithReview(true))
	require.NoError(t, err)
	missing, err = review.ExportMissing(path, 1031)
	require.NoError(t, err)
	assert.Len(t, missing, 3)

	require.NoError(t, os.WriteFile(path+MissingSuffix, []byte("T18-F5-P8629-A1031-L999:\r\n"), 0644))
	missing, err = f.ExportMissing(path, 1031)
	require.NoError(t, err)
	assert.Equal(t, []string{"T18-F5-P8629-A1031-L999:"}, missing)
}

func TestImport(t *testing.T) {
	path := writeSample(t, sample)
	f, err := New(setup)
	require.NoError(t, err)

	err = f.Import(path, []string{
		"T18-F2-P8629-A1031-L999:Kunde",
		"T18-F3-P8629-A1031-L999:",
		"T18-F5-P8629-A1031-L999:Adresse",
	}, 1031)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "T18-F2-P8629-A1033-L999:Customer\r\n"+
		"T18-F2-P8629-A1031-L999:Kunde\r\n"+
		"T18-F3-P8629-A1033-L999:Name\r\n"+
		"T18-F5-P8629-A1033-L999:Address\r\n"+
		"T18-F5-P8629-A1031-L999:Adresse\r\n", string(data))

	err = f.Import(path, []string{"T18-F3-P8629-A1031-L999:Name"}, 1031)
	require.NoError(t, err)
	work, err := f.Export(path, 1031)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"T18-F2-P8629-A1031-L999:Kunde",
		"T18-F3-P8629-A1031-L999:Name",
		"T18-F5-P8629-A1031-L999:Adresse",
	}, work)
}

func TestCodePage850(t *testing.T) {
	// 0x9A is "Ü" in code page 850.
	content := []byte("T1-F1-A1033-L999:Overview\r\nT1-F1-A1031-L999:\r\n")
	path := writeSample(t, string(content))

	f, err := New(setup, WithEncoding("IBM850"))
	require.NoError(t, err)
	require.NoError(t, f.Import(path, []string{"T1-F1-A1031-L999:Übersicht"}, 1031))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.Contains(data, []byte{':', 0x9A, 'b'}), "%q", data)

	work, err := f.Export(path, 1031)
	require.NoError(t, err)
	assert.Equal(t, []string{"T1-F1-A1031-L999:Übersicht"}, work)

	err = f.Import(path, []string{"T1-F1-A1031-L999:概要"}, 1031)
	assert.ErrorContains(t, err, "IBM850")
}

func TestUTF8AndUnknownEncoding(t *testing.T) {
	_, err := New(setup, WithEncoding("utf-8"))
	assert.NoError(t, err)

	_, err = New(setup, WithEncoding("no-such-charset"))
	assert.Error(t, err)
}

func TestImportKeepsPermissions(t *testing.T) {
	path := writeSample(t, sample)
	require.NoError(t, os.Chmod(path, 0600))

	f, err := New(setup)
	require.NoError(t, err)
	require.NoError(t, f.Import(path, []string{"T18-F5-P8629-A1031-L999:Adresse"}, 1031))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
