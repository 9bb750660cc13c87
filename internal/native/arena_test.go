package native

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArenaFree(t *testing.T) {
	var a Arena
	info := New[DeviceQueueCreateInfo](&a)
	info.PQueuePriorities = Slice(&a, []float32{1, 0.5})
	names := a.CStrings([]string{"VK_KHR_swapchain", "VK_KHR_surface"})
	require.NotNil(t, names)

	// one struct, one priority array, one pointer array, two strings
	assert.Equal(t, 5, a.Outstanding())

	a.Free()
	assert.Equal(t, 0, a.Outstanding())
	assert.NotPanics(t, a.Free)
}

func TestArenaEmptyInputs(t *testing.T) {
	var a Arena
	assert.Nil(t, Slice[uint32](&a, nil))
	assert.Nil(t, a.CStrings(nil))
	assert.Nil(t, a.Bytes(nil))
	assert.Nil(t, Make[uint64](&a, 0))
	assert.Equal(t, 0, a.Outstanding())
}

func TestArenaStrings(t *testing.T) {
	var a Arena
	defer a.Free()

	p := a.CString("main")
	assert.Equal(t, "main", CStringAt(p))

	list := a.CStrings([]string{"a", "bc"})
	ptrs := View(list, 2)
	assert.Equal(t, "a", CStringAt(ptrs[0]))
	assert.Equal(t, "bc", CStringAt(ptrs[1]))

	var fixed [8]byte
	copy(fixed[:], "gpu")
	assert.Equal(t, "gpu", GoString(fixed[:]))
}

func TestArenaReuse(t *testing.T) {
	var a Arena
	New[FenceCreateInfo](&a)
	a.Free()

	s := Slice(&a, []uint64{7, 8, 9})
	assert.Equal(t, []uint64{7, 8, 9}, View(s, 3))
	assert.Equal(t, 1, a.Outstanding())
	a.Free()
}
