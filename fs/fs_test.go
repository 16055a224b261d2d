package fs

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/infinivision/tagfs/errmsg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newConfig(t *testing.T) Config {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Path = filepath.Join(t.TempDir(), "tag.fs")
	cfg.LogWriter = io.Discard
	return cfg
}

func TestLifecycle(t *testing.T) {
	cfg := newConfig(t)
	db, err := Open(cfg)
	require.NoError(t, err)

	require.NoError(t, db.Set([]byte("test"), []byte("testvalue")))
	v, err := db.Get([]byte("test"))
	require.NoError(t, err)
	assert.Equal(t, []byte("testvalue"), v)

	require.NoError(t, db.Set([]byte("test"), []byte("something")))
	require.NoError(t, db.Close())

	db, err = Open(cfg)
	require.NoError(t, err)
	defer db.Close()
	require.True(t, db.Has([]byte("test")))
	v, err = db.Get([]byte("test"))
	require.NoError(t, err)
	assert.Equal(t, []byte("something"), v)

	require.NoError(t, db.Del([]byte("test")))
	assert.False(t, db.Has([]byte("test")))
}

func TestFixedWidth(t *testing.T) {
	db, err := Open(newConfig(t))
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, db.Set([]byte("test"), []byte("value")))
	require.NoError(t, db.WriteUint32At([]byte("test"), 0, 0x12653487))

	// Words land little-endian at byte offsets.
	v, err := db.Get([]byte("test"))
	require.NoError(t, err)
	assert.Equal(t, []byte{0x87, 0x34, 0x65, 0x12, 'e'}, v)

	w32, err := db.ReadUint32At([]byte("test"), 0)
	require.NoError(t, err)
	assert.Equal(t, uint32(0x12653487), w32)
	w16, err := db.ReadUint16At([]byte("test"), 1)
	require.NoError(t, err)
	assert.Equal(t, uint16(0x6534), w16)
	w8, err := db.ReadUint8At([]byte("test"), 4)
	require.NoError(t, err)
	assert.Equal(t, uint8('e'), w8)

	require.NoError(t, db.WriteUint16At([]byte("test"), 3, 0x0102))
	w16, err = db.ReadUint16At([]byte("test"), 3)
	require.NoError(t, err)
	assert.Equal(t, uint16(0x0102), w16)
}

func TestFixedWidthBounds(t *testing.T) {
	db, err := Open(newConfig(t))
	require.NoError(t, err)
	defer db.Close()

	_, err = db.ReadUint8At([]byte("nope"), 0)
	assert.Equal(t, errmsg.NotExist, err)

	require.NoError(t, db.Set([]byte("test"), []byte{1, 2, 3}))
	_, err = db.ReadUint8At([]byte("test"), 3)
	assert.Equal(t, errmsg.OutOfBounds, err)
	_, err = db.ReadUint32At([]byte("test"), 0)
	assert.Equal(t, errmsg.OutOfBounds, err)
	assert.Equal(t, errmsg.OutOfBounds, db.WriteUint16At([]byte("test"), 2, 7))

	v, _ := db.Get([]byte("test"))
	assert.Equal(t, []byte{1, 2, 3}, v)
}

func TestWipe(t *testing.T) {
	cfg := newConfig(t)
	db, err := Open(cfg)
	require.NoError(t, err)
	require.NoError(t, db.Set([]byte("secret"), []byte("payload")))
	require.NoError(t, db.Wipe())
	assert.False(t, db.Has([]byte("secret")))
	require.NoError(t, db.Close())

	db, err = Open(cfg)
	require.NoError(t, err)
	defer db.Close()
	assert.False(t, db.Has([]byte("secret")))
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tagfs.yaml")
	data := "path: /data/tag.fs\nsector_size: 512\nsector_count: 16\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "/data/tag.fs", cfg.Path)
	assert.Equal(t, 512, cfg.SectorSize)
	assert.Equal(t, 16, cfg.SectorCount)

	// Unset geometry falls back to the defaults.
	path = filepath.Join(t.TempDir(), "partial.yaml")
	require.NoError(t, os.WriteFile(path, []byte("path: a.fs\n"), 0644))
	cfg, err = LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().SectorSize, cfg.SectorSize)
	assert.Equal(t, DefaultConfig().SectorCount, cfg.SectorCount)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
