package models

// ImportTemplateColumn defines a column in the catalog import template.
type ImportTemplateColumn struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Required    bool   `json:"required"`
	Type        string `json:"type"` // string, number, boolean
	Example     string `json:"example"`
}

// ImportRowError represents an error for a specific spreadsheet row.
type ImportRowError struct {
	Row     int    `json:"row"`
	Column  string `json:"column,omitempty"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ImportResult represents the outcome of a catalog import.
type ImportResult struct {
	Success      bool             `json:"success"`
	TotalRows    int              `json:"totalRows"`
	SuccessCount int              `json:"successCount"`
	FailedCount  int              `json:"failedCount"`
	SkippedCount int              `json:"skippedCount"`
	Errors       []ImportRowError `json:"errors,omitempty"`
	ImportedIDs  []string         `json:"importedIds,omitempty"`
}

// CatalogImportColumns returns the column definitions for the catalog
// import spreadsheet, in sheet order.
func CatalogImportColumns() []ImportTemplateColumn {
	return []ImportTemplateColumn{
		{Name: "id", Description: "Unique product id", Required: true, Type: "string", Example: "sku-1001"},
		{Name: "title", Description: "Product title", Required: true, Type: "string", Example: "Trailblazer Daypack"},
		{Name: "description", Description: "Product description", Required: false, Type: "string", Example: "22L everyday hiking pack"},
		{Name: "brand", Description: "Brand name", Required: false, Type: "string", Example: "Northway"},
		{Name: "category", Description: "Category name", Required: false, Type: "string", Example: "Outdoors"},
		{Name: "price", Description: "Unit price", Required: true, Type: "number", Example: "59.00"},
		{Name: "rating", Description: "Rating 0-5", Required: false, Type: "number", Example: "4.6"},
		{Name: "reviews", Description: "Review count", Required: false, Type: "number", Example: "128"},
		{Name: "featured", Description: "Featured flag", Required: false, Type: "boolean", Example: "true"},
		{Name: "new", Description: "New arrival flag", Required: false, Type: "boolean", Example: "false"},
		{Name: "image", Description: "Image URL", Required: false, Type: "string", Example: ""},
	}
}
