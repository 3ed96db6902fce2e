package artifact

import (
	"os"
	"path/filepath"
	"testing"

	"fwc_backend/internal/models"

	"github.com/stretchr/testify/require"
)

func TestSafeName(t *testing.T) {
	require.Equal(t, "arun_kumar", SafeName("Arun Kumar"))
	require.Equal(t, "m_s_fireworks_co", SafeName("M/S Fireworks & Co."))
	require.Equal(t, "unknown", SafeName(""))
	require.Equal(t, "unknown", SafeName("!!!"))
}

func TestFileName(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	require.Equal(t, "arun_kumar-FWC-1001-quotation.pdf",
		store.FileName("Arun Kumar", "FWC-1001", models.KindQuotation))
	require.Equal(t, "arun_kumar-ORD-7-invoice.pdf",
		store.FileName("Arun Kumar", "ORD-7", models.KindBooking))
}

func TestWriteReadRemove(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)

	data := []byte("%PDF-1.4 test")
	path, err := store.Write("test-quotation.pdf", data)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "test-quotation.pdf"), path)
	require.True(t, store.Exists(path))

	got, err := store.Read(path)
	require.NoError(t, err)
	require.Equal(t, data, got)

	require.NoError(t, store.Remove(path))
	require.False(t, store.Exists(path))
}

func TestWriteOverwrites(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	path, err := store.Write("doc.pdf", []byte("first"))
	require.NoError(t, err)
	_, err = store.Write("doc.pdf", []byte("second"))
	require.NoError(t, err)

	got, err := store.Read(path)
	require.NoError(t, err)
	require.Equal(t, []byte("second"), got)
}

func TestExistsEmptyPath(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	require.False(t, store.Exists(""))
	require.NoError(t, store.Remove(""))
}

func TestNewStoreCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "pdf_data")
	_, err := NewStore(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	require.True(t, info.IsDir())
}
