package sheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "areacode", Normalize("area_code"))
	assert.Equal(t, "areacode", Normalize("Area Code"))
	assert.Equal(t, "areacode", Normalize("AREA-CODE"))
	assert.Equal(t, "linkedinurl", Normalize("LinkedIn URL"))
	assert.Equal(t, "linkedinurl", Normalize("linkedin_url"))
	assert.Equal(t, "id", Normalize(" ID "))
}

func TestHeaderIndexResolve(t *testing.T) {
	idx := NewHeaderIndex([]string{"ID", "Name", "Area Code", "Is Whatsapp", "Created At"})

	col, ok := idx.Resolve("area_code")
	require.True(t, ok)
	assert.Equal(t, 2, col)

	col, ok = idx.Resolve("is_whatsapp")
	require.True(t, ok)
	assert.Equal(t, 3, col)

	_, ok = idx.Resolve("password")
	assert.False(t, ok)
}

func TestHeaderIndexDuplicateHeaderFirstWins(t *testing.T) {
	idx := NewHeaderIndex([]string{"id", "ID", "name"})

	col, ok := idx.Resolve("id")
	require.True(t, ok)
	assert.Equal(t, 0, col)
}

func TestHeaderIndexMissing(t *testing.T) {
	idx := NewHeaderIndex([]string{"id", "name", "email"})

	assert.Empty(t, idx.Missing("id", "name"))
	assert.Equal(t, []string{"password", "created_at"}, idx.Missing("password", "email", "created_at"))
}

func TestColumnName(t *testing.T) {
	assert.Equal(t, "A", columnName(1))
	assert.Equal(t, "O", columnName(15))
	assert.Equal(t, "Z", columnName(26))
	assert.Equal(t, "AA", columnName(27))
	assert.Equal(t, "AZ", columnName(52))
}
