package logging

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	charm "github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, charm.DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, charm.WarnLevel, ParseLevel("warning"))
	assert.Equal(t, charm.ErrorLevel, ParseLevel("error"))
	assert.Equal(t, charm.InfoLevel, ParseLevel("nonsense"))
}

func TestParseFormatter(t *testing.T) {
	assert.Equal(t, charm.JSONFormatter, ParseFormatter("json"))
	assert.Equal(t, charm.LogfmtFormatter, ParseFormatter(" logfmt "))
	assert.Equal(t, charm.TextFormatter, ParseFormatter(""))
}

func TestNew_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "warn", "logfmt")

	logger.Info("hidden")
	logger.Warn("shown", "k", "v")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "k=v")
}

func TestRequestLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var buf bytes.Buffer
	r := gin.New()
	r.Use(RequestLogger(New(&buf, "debug", "logfmt")))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ok", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing", nil))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if assert.Len(t, lines, 2) {
		assert.Contains(t, lines[0], "path=/ok")
		assert.Contains(t, lines[0], "status=200")
		assert.Contains(t, lines[1], "level=warn")
		assert.Contains(t, lines[1], "status=404")
	}
}
