package pgadapter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlaceholder(t *testing.T) {
	assert.Equal(t, "$1", dialect.Placeholder(1))
	assert.Equal(t, "$12", dialect.Placeholder(12))
}

func TestNew(t *testing.T) {
	// sql.Open does not connect, so no server is needed.
	a, err := New("postgres://user@localhost/dtree?sslmode=disable")
	assert.NoError(t, err)
	assert.NotNil(t, a)
	_, err = a.ColumnName("id")
	assert.Error(t, err)
	assert.NoError(t, a.Close())
}
