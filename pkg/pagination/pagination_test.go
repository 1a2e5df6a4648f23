package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func paramsFor(query string) Params {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+query, nil)
	return ParseParams(c)
}

func TestParseParamsDefaults(t *testing.T) {
	p := paramsFor("")
	assert.Equal(t, DefaultLimit, p.Limit)
	assert.Equal(t, 0, p.Offset)
}

func TestParseParamsCapsLimit(t *testing.T) {
	p := paramsFor("limit=5000&offset=10")
	assert.Equal(t, MaxLimit, p.Limit)
	assert.Equal(t, 10, p.Offset)
}

func TestParseParamsRejectsNegative(t *testing.T) {
	p := paramsFor("limit=-1&offset=-5")
	assert.Equal(t, DefaultLimit, p.Limit)
	assert.Equal(t, 0, p.Offset)
}

func TestBuildMeta(t *testing.T) {
	meta := BuildMeta(20, 40, 101)
	assert.Equal(t, int64(101), meta.Total)
	assert.Equal(t, 3, meta.CurrentPage)
	assert.Equal(t, 6, meta.TotalPages)
	assert.True(t, meta.HasMore)

	last := BuildMeta(20, 100, 101)
	assert.False(t, last.HasMore)
}
