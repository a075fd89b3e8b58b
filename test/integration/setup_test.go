// Package integration provides end-to-end tests for the evidence registry and custody ledger.
// Tests run against both PostgreSQL and MySQL databases.
package integration

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/allisson/custody/internal/app"
	"github.com/allisson/custody/internal/config"
	"github.com/allisson/custody/internal/testutil"
)

var drivers = []struct {
	name     string
	dbDriver string
}{
	{"PostgreSQL", "postgres"},
	{"MySQL", "mysql"},
}

// integrationTestContext holds all dependencies and state for integration testing.
type integrationTestContext struct {
	container *app.Container
	db        *sql.DB
	server    *httptest.Server
	dbDriver  string
}

// makeRequest performs an HTTP request and returns the response and body.
func (ctx *integrationTestContext) makeRequest(
	t *testing.T,
	method, path string,
	body interface{},
) (*http.Response, []byte) {
	t.Helper()

	var bodyReader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		require.NoError(t, err, "failed to marshal request body")
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequest(method, ctx.server.URL+path, bodyReader)
	require.NoError(t, err, "failed to create request")

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	client := &http.Client{Timeout: 10 * time.Second}
	//nolint:gosec // controlled test environment with localhost URLs
	resp, err := client.Do(req)
	require.NoError(t, err, "failed to perform request")

	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "failed to read response body")
	if closeErr := resp.Body.Close(); closeErr != nil {
		t.Logf("Warning: failed to close response body: %v", closeErr)
	}

	return resp, respBody
}

// decode unmarshals a JSON response body into a generic map.
func decode(t *testing.T, body []byte) map[string]interface{} {
	t.Helper()

	var result map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &result), string(body))
	return result
}

// setupIntegrationTest migrates a clean database and serves the API through httptest.
func setupIntegrationTest(t *testing.T, dbDriver string) *integrationTestContext {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	gin.SetMode(gin.TestMode)

	var db *sql.DB
	var dsn string
	if dbDriver == "postgres" {
		testutil.SkipIfNoPostgres(t)
		db = testutil.SetupPostgresDB(t)
		dsn = testutil.GetPostgresTestDSN()
	} else {
		testutil.SkipIfNoMySQL(t)
		db = testutil.SetupMySQLDB(t)
		dsn = testutil.GetMySQLTestDSN()
	}

	cfg := &config.Config{
		DBDriver:                 dbDriver,
		DBConnectionString:       dsn,
		DBMaxOpenConnections:     10,
		DBMaxIdleConnections:     5,
		DBConnMaxLifetime:        time.Hour,
		ServerHost:               "localhost",
		ServerPort:               8080,
		LogLevel:                 "error",
		CustodyVerifyConcurrency: 4,
	}

	container := app.NewContainer(cfg)

	httpSrv, err := container.HTTPServer()
	require.NoError(t, err, "failed to get HTTP server")

	handler := httpSrv.GetHandler()
	require.NotNil(t, handler, "handler should not be nil after SetupRouter")

	return &integrationTestContext{
		container: container,
		db:        db,
		server:    httptest.NewServer(handler),
		dbDriver:  dbDriver,
	}
}

// teardownIntegrationTest cleans up all resources.
func teardownIntegrationTest(t *testing.T, ctx *integrationTestContext) {
	t.Helper()

	if ctx.server != nil {
		ctx.server.Close()
	}

	if ctx.container != nil {
		if err := ctx.container.Shutdown(context.Background()); err != nil {
			t.Logf("Warning: container shutdown error: %v", err)
		}
	}

	if ctx.db != nil {
		testutil.TeardownDB(t, ctx.db)
	}
}
