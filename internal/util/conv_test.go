package util

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContext(target string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", target, nil)
	return c
}

func TestQueryInt(t *testing.T) {
	v, err := QueryInt(newContext("/map"), "score", 0)
	require.NoError(t, err)
	assert.Equal(t, 0, v)

	v, err = QueryInt(newContext("/map?score=42"), "score", 0)
	require.NoError(t, err)
	assert.Equal(t, 42, v)

	v, err = QueryInt(newContext("/get_questions?num=-3"), "num", 5)
	require.NoError(t, err)
	assert.Equal(t, -3, v)

	_, err = QueryInt(newContext("/map?score=abc"), "score", 0)
	assert.ErrorIs(t, err, ErrInvalidQueryInt)

	_, err = QueryInt(newContext("/map?score="), "score", 0)
	assert.ErrorIs(t, err, ErrInvalidQueryInt)
}

func TestOptionalQueryInt(t *testing.T) {
	_, ok, err := OptionalQueryInt(newContext("/map"), "num")
	require.NoError(t, err)
	assert.False(t, ok)

	v, ok, err := OptionalQueryInt(newContext("/map?num=3"), "num")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 3, v)

	_, ok, err = OptionalQueryInt(newContext("/map?num=x"), "num")
	assert.True(t, ok)
	assert.ErrorIs(t, err, ErrInvalidQueryInt)
}

func TestClampCount(t *testing.T) {
	assert.Equal(t, 3, ClampCount(3, 50))
	assert.Equal(t, 50, ClampCount(2000000, 50))
	assert.Equal(t, 10, ClampCount(10, 10))
	assert.Equal(t, -1, ClampCount(-1, 50))
	assert.Equal(t, MaxQuestionCount, ClampCount(1<<30, 0))
}
