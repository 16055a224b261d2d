package flash

import (
	"path/filepath"
	"testing"

	"github.com/infinivision/tagfs/constant"
	"github.com/infinivision/tagfs/errmsg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlash(t *testing.T) (*flash, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tag.fs")
	f, err := New(path, constant.MinSectorSize, 4)
	require.NoError(t, err)
	return f, path
}

func TestNewErased(t *testing.T) {
	f, _ := newFlash(t)
	defer f.Close()
	assert.Equal(t, 4, f.Sectors())
	assert.Equal(t, constant.MinSectorSize, f.SectorSize())
	b, err := f.View(0, 0, f.SectorSize())
	require.NoError(t, err)
	for _, v := range b {
		require.Equal(t, byte(constant.ErasedByte), v)
	}
}

func TestProgramClearsBitsOnly(t *testing.T) {
	f, _ := newFlash(t)
	defer f.Close()
	require.NoError(t, f.Program(1, 8, []byte{0xF0, 0x0F}))
	b, err := f.View(1, 8, 2)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xF0, 0x0F}, b)

	// Further clearing is allowed.
	require.NoError(t, f.Program(1, 8, []byte{0x80, 0x0E}))

	// Setting a cleared bit back is not, and nothing is mutated.
	err = f.Program(1, 8, []byte{0x81, 0xFF})
	require.Equal(t, errmsg.WriteFailed, err)
	b, _ = f.View(1, 8, 2)
	assert.Equal(t, []byte{0x80, 0x0E}, b)
}

func TestEraseVariants(t *testing.T) {
	f, _ := newFlash(t)
	defer f.Close()
	require.NoError(t, f.Program(2, 0, []byte{1, 2, 3}))

	require.NoError(t, f.Erase(2))
	b, _ := f.View(2, 0, 4)
	assert.Equal(t, []byte{0xFF, 0xFF, 0xFF, 0xFF}, b)

	require.NoError(t, f.EraseToZero(2))
	b, _ = f.View(2, 0, 4)
	assert.Equal(t, []byte{0, 0, 0, 0}, b)
}

func TestBounds(t *testing.T) {
	f, _ := newFlash(t)
	defer f.Close()
	_, err := f.View(4, 0, 1)
	assert.Equal(t, errmsg.OutOfBounds, err)
	_, err = f.View(0, f.SectorSize(), 1)
	assert.Equal(t, errmsg.OutOfBounds, err)
	err = f.Program(-1, 0, []byte{0})
	assert.Equal(t, errmsg.OutOfBounds, err)
	err = f.Erase(7)
	assert.Equal(t, errmsg.OutOfBounds, err)
}

func TestReopenKeepsBits(t *testing.T) {
	f, path := newFlash(t)
	require.NoError(t, f.Program(0, 0, []byte{0xA5}))
	require.NoError(t, f.Close())

	f, err := New(path, constant.MinSectorSize, 4)
	require.NoError(t, err)
	defer f.Close()
	b, _ := f.View(0, 0, 1)
	assert.Equal(t, []byte{0xA5}, b)
}

func TestGeometryMismatch(t *testing.T) {
	f, path := newFlash(t)
	require.NoError(t, f.Close())
	_, err := New(path, constant.MinSectorSize, 8)
	assert.Equal(t, errmsg.OpenFailed, err)
	_, err = New(path, 16, 4)
	assert.Equal(t, errmsg.OpenFailed, err)
}
