package main

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnwrapEnvelope(t *testing.T) {
	assert.JSONEq(t, `[{"id":1}]`, string(unwrapEnvelope([]byte(`{"data":[{"id":1}],"meta":{"cache_hit":true}}`))))
	assert.Equal(t, `[{"id":1}]`, string(unwrapEnvelope([]byte(`[{"id":1}]`))))
}

func TestBodiesEqualFoldsNumbers(t *testing.T) {
	assert.True(t, bodiesEqual([]byte(`{"grade":82.0}`), []byte(`{"grade":82}`)))
	assert.False(t, bodiesEqual([]byte(`{"grade":82}`), []byte(`{"grade":"82"}`)))
}

func TestCompareTargetAgainstEnvelopeAndRaw(t *testing.T) {
	goSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":[{"id":1,"class_name":"X"}]}`))
	}))
	defer goSrv.Close()
	legacySrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id":1,"class_name":"X"}]`))
	}))
	defer legacySrv.Close()

	goSide, err := newSide("go", goSrv.URL, time.Second)
	require.NoError(t, err)
	legacySide, err := newSide("legacy", legacySrv.URL, time.Second)
	require.NoError(t, err)

	comp := compareTarget(goSide, legacySide, target{Method: http.MethodGet, Path: "/api/classes"})
	require.NoError(t, comp.Error)
	assert.True(t, comp.StatusMatch)
	assert.True(t, comp.BodyMatch)

	comp = compareTarget(goSide, legacySide, target{Method: http.MethodDelete, Path: "/api/classes/1"})
	assert.Error(t, comp.Error)
}
