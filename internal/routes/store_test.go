package routes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreByNumber(t *testing.T) {
	store := NewStore([]Route{
		{Number: "335-E", Origin: "Kempegowda Bus Station", Destination: "Kadugodi"},
		{Number: "500-D", Origin: "Hebbal", Destination: "Silk Board"},
	})

	r, ok := store.ByNumber("335-E")
	require.True(t, ok)
	assert.Equal(t, "Kempegowda Bus Station", r.Origin)

	r, ok = store.ByNumber(" 335-e ")
	require.True(t, ok)
	assert.Equal(t, "335-E", r.Number)

	_, ok = store.ByNumber("600")
	assert.False(t, ok)
}

func TestStoreDuplicateNumberKeepsFirst(t *testing.T) {
	store := NewStore([]Route{
		{Number: "335-E", Origin: "first"},
		{Number: "335-e", Origin: "second"},
	})

	r, ok := store.ByNumber("335-E")
	require.True(t, ok)
	assert.Equal(t, "first", r.Origin)
	assert.Equal(t, 2, store.Len())
}

func TestStoreAllPreservesOrder(t *testing.T) {
	store := NewStore([]Route{
		{Number: "B"},
		{Number: "A"},
		{Number: "C"},
	})

	all := store.All()
	require.Len(t, all, 3)
	assert.Equal(t, "B", all[0].Number)
	assert.Equal(t, "A", all[1].Number)
	assert.Equal(t, "C", all[2].Number)
}

func TestStoreEmpty(t *testing.T) {
	store := NewStore(nil)
	assert.Equal(t, 0, store.Len())
	_, ok := store.ByNumber("335-E")
	assert.False(t, ok)
}
