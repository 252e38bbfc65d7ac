package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pageFor(t *testing.T, query string) (CursorPage, error) {
	t.Helper()
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/api/messages"+query, nil)
	return NewCursorPage(c)
}

func TestNewCursorPage(t *testing.T) {
	page, err := pageFor(t, "")
	require.NoError(t, err)
	assert.False(t, page.Paged())
	assert.Zero(t, page.Before)

	page, err = pageFor(t, "?limit=10&before=42")
	require.NoError(t, err)
	assert.True(t, page.Paged())
	assert.Equal(t, CursorPage{Before: 42, Limit: 10}, page)

	page, err = pageFor(t, "?limit=5000")
	require.NoError(t, err)
	assert.Equal(t, MaxPageLimit, page.Limit)

	for _, q := range []string{"?limit=0", "?limit=abc", "?before=-1", "?before=0"} {
		_, err := pageFor(t, q)
		assert.True(t, IsKind(err, KindValidation), q)
	}
}
