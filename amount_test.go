package discard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmountToBase(t *testing.T) {
	assert := assert.New(t)

	value, err := AmountToBase("1.5", 9)
	require.Nil(t, err)
	assert.Equal(uint64(1500000000), value)

	value, err = AmountToBase("0.000000001", 9)
	require.Nil(t, err)
	assert.Equal(uint64(1), value)

	value, err = AmountToBase("0", 9)
	require.Nil(t, err)
	assert.Equal(uint64(0), value)

	_, err = AmountToBase("0.0000000001", 9)
	assert.NotNil(err, "sub-base precision must be rejected")

	_, err = AmountToBase("-1", 9)
	assert.NotNil(err)
}

func TestAmountFromBase(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("1.5", AmountFromBase(1500000000, 9))
	assert.Equal("0.000000001", AmountFromBase(1, 9))
	assert.Equal("0", AmountFromBase(0, 9))
	assert.Equal("255", AmountFromBase(255, 0))
}

func TestAmountRoundTrip(t *testing.T) {
	assert := assert.New(t)

	for _, amount := range []string{"0.25", "1000000", "0.000000123"} {
		value, err := AmountToBase(amount, 9)
		require.Nil(t, err)
		assert.Equal(amount, AmountFromBase(value, 9))
	}
}
