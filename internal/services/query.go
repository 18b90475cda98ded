package services

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"katalog/internal/models"
)

// Listing defaults.
const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Sort fields and orders understood by the query pipeline.
const (
	SortByName     = "name"
	SortByPrice    = "price"
	SortByCategory = "category"

	SortAsc  = "asc"
	SortDesc = "desc"
)

// Query describes one listing request after normalisation.
type Query struct {
	Page      int
	PageSize  int
	Search    string
	SortBy    string
	SortOrder string
}

// ParseQuery builds a Query from raw request parameters. Malformed or
// out-of-range numbers fall back to the defaults, unknown sort fields disable
// sorting and any order other than "desc" is ascending.
func ParseQuery(page, limit, search, sortBy, sortOrder string) Query {
	q := Query{
		Page:      DefaultPage,
		PageSize:  DefaultPageSize,
		Search:    search,
		SortOrder: SortAsc,
	}

	if p, err := strconv.Atoi(strings.TrimSpace(page)); err == nil && p >= 1 {
		q.Page = p
	}
	if l, err := strconv.Atoi(strings.TrimSpace(limit)); err == nil && l >= 1 {
		if l > MaxPageSize {
			l = MaxPageSize
		}
		q.PageSize = l
	}

	switch sortBy {
	case SortByName, SortByPrice, SortByCategory:
		q.SortBy = sortBy
	}
	if strings.EqualFold(sortOrder, SortDesc) {
		q.SortOrder = SortDesc
	}
	return q
}

// CacheKey returns the composite key a listing result is cached under.
func (q Query) CacheKey() string {
	return fmt.Sprintf("products:list:page=%d:limit=%d:search=%s:sortBy=%s:sortOrder=%s",
		q.Page, q.PageSize, q.Search, q.SortBy, q.SortOrder)
}

// ApplyQuery filters, sorts and paginates products. The input slice is not modified.
func ApplyQuery(products []models.Product, q Query) models.ProductPage {
	if q.Page < 1 {
		q.Page = DefaultPage
	}
	if q.PageSize < 1 {
		q.PageSize = DefaultPageSize
	}
	if q.PageSize > MaxPageSize {
		q.PageSize = MaxPageSize
	}

	matched := filterProducts(products, q.Search)
	sortProducts(matched, q.SortBy, q.SortOrder)

	total := len(matched)
	totalPages := (total + q.PageSize - 1) / q.PageSize

	page := models.ProductPage{
		Products:      []models.Product{},
		TotalPages:    totalPages,
		CurrentPage:   q.Page,
		TotalProducts: total,
		HasNextPage:   q.Page < totalPages,
		HasPrevPage:   q.Page > 1,
	}

	// Compare pages rather than offsets so a huge page number cannot overflow.
	if q.Page > totalPages {
		return page
	}
	start := (q.Page - 1) * q.PageSize
	end := start + q.PageSize
	if end > total {
		end = total
	}
	page.Products = append(page.Products, matched[start:end]...)
	return page
}

func filterProducts(products []models.Product, search string) []models.Product {
	matched := make([]models.Product, 0, len(products))
	if search == "" {
		return append(matched, products...)
	}

	term := strings.ToLower(search)
	for _, p := range products {
		if matches(p, term, search) {
			matched = append(matched, p)
		}
	}
	return matched
}

// matches reports whether the lower-cased term occurs in one of the text
// fields, or the raw term occurs in the price's decimal representation.
func matches(p models.Product, term, raw string) bool {
	for _, field := range []string{p.Name, p.Description, p.Category, p.Brand, p.Model, p.Color} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return strings.Contains(priceString(p.Price), raw)
}

// priceString renders a price the shortest way: 150 -> "150", 19.90 -> "19.9".
func priceString(price float64) string {
	return decimal.NewFromFloat(price).String()
}

func sortProducts(products []models.Product, sortBy, sortOrder string) {
	var less func(a, b models.Product) bool
	switch sortBy {
	case SortByName:
		less = func(a, b models.Product) bool { return strings.ToLower(a.Name) < strings.ToLower(b.Name) }
	case SortByPrice:
		less = func(a, b models.Product) bool { return a.Price < b.Price }
	case SortByCategory:
		less = func(a, b models.Product) bool { return strings.ToLower(a.Category) < strings.ToLower(b.Category) }
	default:
		return
	}

	if sortOrder == SortDesc {
		asc := less
		less = func(a, b models.Product) bool { return asc(b, a) }
	}
	sort.SliceStable(products, func(i, j int) bool {
		return less(products[i], products[j])
	})
}
