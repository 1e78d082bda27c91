package http_test

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	adapter "dispatch/internal/adapters/in/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestServerMatchesOpenAPIContract loads the published API contract and checks
// that every registered API route is covered by it, and the other way round.
func TestServerMatchesOpenAPIContract(t *testing.T) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromFile(filepath.Join("..", "..", "..", "..", "api", "openapi.yml"))
	require.NoError(t, err)
	require.NoError(t, doc.Validate(context.Background()))

	e := echo.New()
	server := &adapter.Server{}
	server.RegisterRoutes(e)

	registered := make(map[string]map[string]bool)
	for _, route := range e.Routes() {
		if !strings.HasPrefix(route.Path, "/api/v1/") {
			continue
		}
		path := strings.TrimPrefix(route.Path, "/api/v1")
		path = echoPathToOpenAPI(path)
		if registered[path] == nil {
			registered[path] = make(map[string]bool)
		}
		registered[path][route.Method] = true
	}

	t.Run("should document every registered route", func(t *testing.T) {
		for path, methods := range registered {
			item := doc.Paths.Find(path)
			require.NotNil(t, item, "path %s is not documented", path)
			for method := range methods {
				assert.NotNil(t, item.GetOperation(method),
					"operation %s %s is not documented", method, path)
			}
		}
	})

	t.Run("should register every documented route", func(t *testing.T) {
		for path, item := range doc.Paths.Map() {
			methods, ok := registered[path]
			require.True(t, ok, "documented path %s is not registered", path)
			for method := range item.Operations() {
				assert.True(t, methods[method],
					"documented operation %s %s is not registered", method, path)
			}
		}
	})
}

// echoPathToOpenAPI rewrites echo's :param segments into {param} form.
func echoPathToOpenAPI(path string) string {
	segments := strings.Split(path, "/")
	for i, segment := range segments {
		if strings.HasPrefix(segment, ":") {
			segments[i] = "{" + strings.TrimPrefix(segment, ":") + "}"
		}
	}
	return strings.Join(segments, "/")
}
