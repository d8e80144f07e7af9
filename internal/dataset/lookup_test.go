package dataset

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rowOf(name, price string) Row {
	var v [ColumnCount]string
	v[ColName] = name
	v[ColPriceUSD] = price
	return NewRow(v)
}

func TestFindReturnsFirstDuplicate(t *testing.T) {
	table := NewTable([]Row{rowOf("Alpha", "1"), rowOf("Beta", "2"), rowOf("Beta", "3")})

	row, err := Find(table, "Beta")
	require.NoError(t, err)
	assert.Equal(t, Num(2), row.PriceUSD)

	idx, err := FindIndex(table, "Beta")
	require.NoError(t, err)
	assert.Equal(t, 1, idx)
}

func TestFindIsCaseSensitive(t *testing.T) {
	table := NewTable([]Row{rowOf("Bitcoin", "1")})

	_, err := Find(table, "bitcoin")
	require.ErrorIs(t, err, ErrAssetNotFound)

	var nf *NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "Error: Coin 'bitcoin' not found", nf.Error())
}
