package cc_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/emcc/cc"
)

func TestVariantTable(t *testing.T) {
	require := require.New(t)

	// variant 0: the classic KKT setting
	p0, err := cc.Variant(0)
	require.NoError(err)
	require.True(p0.ShouldContract(100, 1000, 0, 10))
	require.Equal(uint64(50), p0.ContractCount(100, 1000, 0, 10))
	require.Equal(1, p0.SampleBits(100, 1000, 0, 10))

	// variants 1..5: contract below the top level, k fixed
	for i := 1; i <= 5; i++ {
		p, err := cc.Variant(i)
		require.NoError(err)
		require.False(p.ShouldContract(100, 1000, 0, 10), "variant %d at level 0", i)
		require.True(p.ShouldContract(100, 1000, 1, 10), "variant %d at level 1", i)
		require.Equal(uint64(50), p.ContractCount(100, 1000, 3, 10))
		require.Equal(i, p.SampleBits(100, 1000, 0, 10))
	}

	// variant 6: density threshold 4
	p6, err := cc.Variant(6)
	require.NoError(err)
	require.True(p6.ShouldContract(100, 300, 0, 10), "m/n = 3 < 4")
	require.False(p6.ShouldContract(100, 400, 0, 10), "m/n = 4")
	require.Equal(uint64(100-300/4), p6.ContractCount(100, 300, 0, 10))

	// variant 7: density threshold 8
	p7, err := cc.Variant(7)
	require.NoError(err)
	require.True(p7.ShouldContract(100, 700, 0, 10))
	require.False(p7.ShouldContract(100, 800, 0, 10))

	// adaptive sampling bits: max(1, floor(log2(m/n)))
	require.Equal(1, p6.SampleBits(100, 100, 0, 10))
	require.Equal(1, p6.SampleBits(100, 300, 0, 10))
	require.Equal(2, p6.SampleBits(100, 400, 0, 10))
	require.Equal(3, p6.SampleBits(100, 1000, 0, 10))

	// variants 8 and 9 scale the threshold with the memory ratio
	p8, err := cc.Variant(8)
	require.NoError(err)
	// n = 2M: threshold capped at 4
	require.True(p8.ShouldContract(200, 500, 0, 100), "m/n = 2 under threshold 4")
	// huge n relative to M drives the threshold toward 2
	require.False(p8.ShouldContract(1_000_000, 3_000_000, 0, 100))

	p9, err := cc.Variant(9)
	require.NoError(err)
	require.True(p9.ShouldContract(200, 1000, 0, 100), "threshold 8 at n = 2M")

	_, err = cc.Variant(10)
	require.ErrorIs(err, cc.ErrUnknownVariant)
	_, err = cc.Variant(-1)
	require.ErrorIs(err, cc.ErrUnknownVariant)
}
