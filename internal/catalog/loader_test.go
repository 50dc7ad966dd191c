package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"storefront-service/internal/models"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func TestLoadFromRemote(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"products":[{"id":"p1","title":"Widget","category":"Tools","price":9.5}]}`))
	}))
	defer server.Close()

	loader := NewLoader(server.URL, testLogger())
	loader.Load(context.Background())

	require.Equal(t, 1, loader.Len())
	p, ok := loader.Get("p1")
	require.True(t, ok)
	assert.Equal(t, "Widget", p.Title)
	assert.Equal(t, 9.5, p.Price)
	assert.Equal(t, []string{"Tools"}, loader.Categories())
}

func TestLoadFallsBackToEmbedded(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	loader := NewLoader(server.URL, testLogger())
	loader.Load(context.Background())

	assert.Greater(t, loader.Len(), 0, "embedded payload should back a failing remote")
}

func TestLoadWithoutURLUsesEmbedded(t *testing.T) {
	loader := NewLoader("", testLogger())
	loader.Load(context.Background())

	assert.Greater(t, loader.Len(), 0)
	assert.NotEmpty(t, loader.Categories())
}

func TestLoadMalformedRemoteFallsBack(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"not-products": true}`))
	}))
	defer server.Close()

	loader := NewLoader(server.URL, testLogger())
	loader.Load(context.Background())

	assert.Greater(t, loader.Len(), 0)
}

func TestParseDocumentRejectsMissingProducts(t *testing.T) {
	_, err := parseDocument([]byte(`{}`))
	assert.Error(t, err)

	_, err = parseDocument([]byte(`not json`))
	assert.Error(t, err)
}

func TestParseDocumentToleratesDuckTypedFields(t *testing.T) {
	doc := []byte(`{"products":[
		{"id":"s1","name":"Named Product","price":"19.99","rating":"4.5","reviews":"12"},
		{"id":"s2","title":"Broken Numbers","price":"oops","rating":null}
	]}`)
	products, err := parseDocument(doc)
	require.NoError(t, err)
	require.Len(t, products, 2)

	assert.Equal(t, "Named Product", products[0].Title, "name backfills a missing title")
	assert.Equal(t, 19.99, products[0].Price)
	assert.Equal(t, 4.5, products[0].Rating)
	assert.Equal(t, 12, products[0].Reviews)

	assert.Equal(t, 0.0, products[1].Price, "unparseable numbers degrade to zero")
	assert.Equal(t, 0.0, products[1].Rating)
	assert.False(t, products[1].CreatedAt.IsZero(), "missing createdAt defaults to load time")
}

func TestNormalizedIsIdempotent(t *testing.T) {
	now := time.Now()
	p := models.Product{ID: "x", Title: "X", Price: -3, Rating: 9}

	once := p.Normalized(now)
	assert.Equal(t, 0.0, once.Price)
	assert.Equal(t, 5.0, once.Rating)
	assert.Equal(t, now, once.CreatedAt)

	twice := once.Normalized(now.Add(time.Hour))
	assert.Equal(t, once, twice)
}

func TestReplaceAllRecomputesCategories(t *testing.T) {
	loader := NewLoader("", testLogger())
	loader.ReplaceAll([]models.Product{
		{ID: "n1", Title: "N1", Category: "Garden"},
		{ID: "n2", Title: "N2", Category: "Audio"},
	})

	assert.Equal(t, 2, loader.Len())
	assert.Equal(t, []string{"Audio", "Garden"}, loader.Categories())
}
