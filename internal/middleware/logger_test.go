package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte("hello"))
	})

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/products?q=sumo", nil)
	Logger(zap.New(core))(next).ServeHTTP(w, r)

	entries := logs.FilterMessage("http request").All()
	require.Len(t, entries, 1)

	fields := entries[0].ContextMap()
	assert.Equal(t, http.MethodPost, fields["method"])
	assert.Equal(t, "/api/products", fields["path"])
	assert.Equal(t, "q=sumo", fields["query"])
	assert.EqualValues(t, http.StatusCreated, fields["status"])
	assert.EqualValues(t, 5, fields["size"])
}
