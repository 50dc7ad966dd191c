package catalog

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"storefront-service/internal/models"
)

// Embedded fallback catalog, the Go analog of the web client's inline
// products-data script tag.
//
//go:embed products.json
var embeddedCatalog []byte

const fetchTimeout = 10 * time.Second

// Loader owns the in-memory product catalog. Load walks the source chain
// (remote URL, embedded payload, empty) and every product that comes out of
// it has been normalized exactly once. Reads and the import-driven swap are
// guarded by an RWMutex.
type Loader struct {
	url        string
	httpClient *http.Client
	logger     *logrus.Entry

	mu         sync.RWMutex
	products   []models.Product
	categories []string
}

func NewLoader(catalogURL string, logger *logrus.Logger) *Loader {
	return &Loader{
		url: catalogURL,
		httpClient: &http.Client{
			Timeout: fetchTimeout,
		},
		logger: logger.WithField("component", "catalog"),
	}
}

// Load populates the catalog, trying the remote URL first, then the
// embedded payload, finally settling on an empty catalog. No source failure
// is fatal; each one is logged and the next source is tried.
func (l *Loader) Load(ctx context.Context) {
	if l.url != "" {
		products, err := l.fetchRemote(ctx)
		if err == nil {
			l.replace(products)
			l.logger.WithField("count", len(products)).Info("Catalog loaded from remote source")
			return
		}
		l.logger.WithError(err).Warn("Remote catalog unavailable, falling back to embedded payload")
	}

	products, err := parseDocument(embeddedCatalog)
	if err == nil {
		l.replace(products)
		l.logger.WithField("count", len(products)).Info("Catalog loaded from embedded payload")
		return
	}
	l.logger.WithError(err).Error("Embedded catalog unusable, starting with an empty catalog")
	l.replace(nil)
}

func (l *Loader) fetchRemote(ctx context.Context) ([]models.Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create catalog request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("catalog fetch returned HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog body: %w", err)
	}
	return parseDocument(body)
}

func (l *Loader) replace(products []models.Product) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.products = products
	l.categories = models.DistinctCategories(products)
}

// ReplaceAll swaps the full catalog, normalizing every product and
// recomputing the category set. Used by the import path.
func (l *Loader) ReplaceAll(products []models.Product) {
	now := time.Now()
	normalized := make([]models.Product, 0, len(products))
	for _, p := range products {
		normalized = append(normalized, p.Normalized(now))
	}
	l.replace(normalized)
}

// Products returns a copy of the full catalog in load order.
func (l *Loader) Products() []models.Product {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]models.Product, len(l.products))
	copy(out, l.products)
	return out
}

// Get returns the product with the given id.
func (l *Loader) Get(id string) (models.Product, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, p := range l.products {
		if p.ID == id {
			return p, true
		}
	}
	return models.Product{}, false
}

// Categories returns the sorted set of distinct non-empty categories of the
// full catalog. Recomputed once per (re)load, not per filter.
func (l *Loader) Categories() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]string, len(l.categories))
	copy(out, l.categories)
	return out
}

// Len returns the catalog size.
func (l *Loader) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.products)
}

// catalogDocument mirrors the wire shape {"products":[...]}.
type catalogDocument struct {
	Products []wireProduct `json:"products"`
}

// wireProduct tolerates the duck-typed source data: title or name, numbers
// that may arrive as strings, and missing fields of any kind.
type wireProduct struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Brand       string     `json:"brand"`
	Category    string     `json:"category"`
	Price       flexNumber `json:"price"`
	Rating      flexNumber `json:"rating"`
	Reviews     flexNumber `json:"reviews"`
	Featured    bool       `json:"featured"`
	New         bool       `json:"new"`
	Image       string     `json:"image"`
	CreatedAt   string     `json:"createdAt"`
}

func parseDocument(data []byte) ([]models.Product, error) {
	var doc catalogDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid catalog document: %w", err)
	}
	if doc.Products == nil {
		return nil, fmt.Errorf("invalid catalog document: missing products field")
	}

	now := time.Now()
	products := make([]models.Product, 0, len(doc.Products))
	for _, w := range doc.Products {
		title := w.Title
		if title == "" {
			title = w.Name
		}
		p := models.Product{
			ID:          w.ID,
			Title:       title,
			Description: w.Description,
			Brand:       w.Brand,
			Category:    w.Category,
			Price:       float64(w.Price),
			Rating:      float64(w.Rating),
			Reviews:     int(w.Reviews),
			Featured:    w.Featured,
			New:         w.New,
			Image:       w.Image,
		}
		if w.CreatedAt != "" {
			if t, err := time.Parse(time.RFC3339, w.CreatedAt); err == nil {
				p.CreatedAt = t
			}
		}
		products = append(products, p.Normalized(now))
	}
	return products, nil
}
