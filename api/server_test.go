package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GeorgeHahn/vector/api/middlewares"
	"github.com/GeorgeHahn/vector/catalog"
	"github.com/GeorgeHahn/vector/components"
)

const sinkDoc = `
kind: sink
name: pulsar
title: Apache Pulsar
classes:
  commonly_used: false
  delivery: at_least_once
  development: beta
  egress_method: stream
  stateful: false
features:
  acknowledgements: true
  healthcheck:
    enabled: true
support:
  requirements: []
  warnings: []
  notices: []
configuration:
  endpoint:
    common: true
    description: Endpoint to which the sink connects.
    required: true
    type:
      string:
        default: null
        examples: ["pulsar://127.0.0.1:6650"]
input:
  logs: true
  metrics: null
  traces: false
`

const registryDoc = `
services:
  pulsar:
    name: Apache Pulsar
urls:
  pulsar: https://pulsar.apache.org
`

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	logger, _ := test.NewNullLogger()
	cat, parseErrors := catalog.LoadDocuments(logger, []catalog.Document{
		{Name: "sinks/pulsar.yml", Format: catalog.YAMLFormat, Data: []byte(sinkDoc)},
		{Name: "registry.yml", Format: catalog.YAMLFormat, Data: []byte(registryDoc)},
	})
	require.Empty(t, parseErrors)
	return cat
}

func TestListComponents(t *testing.T) {
	si := MakeServerImplementation(testCatalog(t))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v2/components", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, si.ListComponents(e.NewContext(req, rec)))
	require.Equal(t, http.StatusOK, rec.Code)

	var summaries []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summaries))
	require.Len(t, summaries, 1)
	assert.Equal(t, "sinks.pulsar", summaries[0]["id"])
	assert.Equal(t, "Apache Pulsar", summaries[0]["title"])
}

func TestGetComponent(t *testing.T) {
	si := MakeServerImplementation(testCatalog(t))
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)
	ctx.SetParamNames("kind", "name")
	ctx.SetParamValues("sink", "pulsar")
	require.NoError(t, si.GetComponent(ctx))
	require.Equal(t, http.StatusOK, rec.Code)

	var meta components.Metadata
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &meta))
	assert.Equal(t, "Apache Pulsar", meta.Title)
	// Null input capability survives the JSON projection.
	assert.Equal(t, components.NotApplicable, meta.Input.Metrics)

	ctx = e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	ctx.SetParamNames("kind", "name")
	ctx.SetParamValues("sink", "kafka")
	err := si.GetComponent(ctx)
	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusNotFound, httpErr.Code)

	ctx = e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	ctx.SetParamNames("kind", "name")
	ctx.SetParamValues("drain", "pulsar")
	err = si.GetComponent(ctx)
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}

func TestResolvePath(t *testing.T) {
	si := MakeServerImplementation(testCatalog(t))
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/v2/resolve?path=services.pulsar", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, si.ResolvePath(e.NewContext(req, rec)))
	require.Equal(t, http.StatusOK, rec.Code)

	var result map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "services.pulsar", result["path"])
	assert.Equal(t, "Apache Pulsar", result["value"])

	req = httptest.NewRequest(http.MethodGet, "/v2/resolve?path=services.kafka", nil)
	err := si.ResolvePath(e.NewContext(req, httptest.NewRecorder()))
	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusNotFound, httpErr.Code)

	req = httptest.NewRequest(http.MethodGet, "/v2/resolve", nil)
	err = si.ResolvePath(e.NewContext(req, httptest.NewRecorder()))
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}

func TestTokenAuth(t *testing.T) {
	e := echo.New()
	auth := middlewares.MakeAuth(TokenHeader, []string{"secret"})
	RegisterHandlers(e, MakeServerImplementation(testCatalog(t)), auth)

	// No token.
	req := httptest.NewRequest(http.MethodGet, "/v2/components", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Wrong token.
	req = httptest.NewRequest(http.MethodGet, "/v2/components", nil)
	req.Header.Set(TokenHeader, "guess")
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Correct token.
	req = httptest.NewRequest(http.MethodGet, "/v2/components", nil)
	req.Header.Set(TokenHeader, "secret")
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Health stays open for load balancer probes.
	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
