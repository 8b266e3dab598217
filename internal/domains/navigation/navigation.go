// Package navigation builds the navigation targets of the storefront shell:
// search submission, the filter sidebar and the navbar.
package navigation

import (
	"net/url"
	"strings"

	authModel "bookstore-storefront/internal/domains/auth/model"
	bookModel "bookstore-storefront/internal/domains/book/model"
)

const (
	SearchPath   = "/books/search"
	LoginPath    = "/auth/login"
	RegisterPath = "/auth/register"
	BrandName    = "BookNest"
)

// Navigation is a target the client should move to.
type Navigation struct {
	Path string `json:"path"`
}

// SubmitSearch trims raw and returns the search results target. ok is false
// when nothing is left after trimming; the caller must then do nothing.
func SubmitSearch(raw string) (Navigation, bool) {
	term := strings.TrimSpace(raw)
	if term == "" {
		return Navigation{}, false
	}
	return Navigation{Path: SearchPath + "?q=" + escapeComponent(term)}, true
}

// componentUnescaper undoes the QueryEscape choices that differ from a
// browser's encodeURIComponent: space is %20 and !'()* stay literal.
var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

func escapeComponent(s string) string {
	return componentUnescaper.Replace(url.QueryEscape(s))
}

// ApplyFilters builds the listing target for the sidebar selection. "all"
// and an empty term are left out of the query string.
func ApplyFilters(bracket bookModel.PriceBracket, q string) Navigation {
	params := url.Values{}
	if b := bookModel.ParseBracket(string(bracket)); b != bookModel.BracketAll {
		params.Set("price", string(b))
	}
	if term := strings.TrimSpace(q); term != "" {
		params.Set("q", term)
	}
	return Navigation{Path: withQuery(bookModel.BooksPath, params)}
}

// ResetFilters drops the price filter but keeps the search term.
func ResetFilters(q string) Navigation {
	return ApplyFilters(bookModel.BracketAll, q)
}

func withQuery(path string, params url.Values) string {
	if len(params) == 0 {
		return path
	}
	return path + "?" + params.Encode()
}

// Link is one navbar entry.
type Link struct {
	Label string `json:"label"`
	Path  string `json:"path"`
}

// Shell is the navbar model. It owns no data; everything is read from the
// auth session and the cart.
type Shell struct {
	Brand         string `json:"brand"`
	Links         []Link `json:"links"`
	Authenticated bool   `json:"authenticated"`
	DisplayName   string `json:"display_name,omitempty"`
	UserLinks     []Link `json:"user_links"`
	CartCount     int    `json:"cart_count"`
	ShowCartBadge bool   `json:"show_cart_badge"`
	CartPath      string `json:"cart_path"`
}

// BuildShell composes the navbar from the auth state and the cart count.
func BuildShell(auth authModel.Session, cartCount int) Shell {
	s := Shell{
		Brand: BrandName,
		Links: []Link{
			{Label: "Books", Path: bookModel.BooksPath},
			{Label: "Categories", Path: "/categories"},
		},
		CartCount:     cartCount,
		ShowCartBadge: cartCount > 0,
		CartPath:      bookModel.CartPath,
	}

	if auth.IsAuthenticated() {
		s.Authenticated = true
		s.DisplayName = auth.FirstName()
		s.UserLinks = []Link{
			{Label: "Profile", Path: "/profile"},
			{Label: "Orders", Path: "/orders"},
		}
		return s
	}

	s.UserLinks = []Link{
		{Label: "Login", Path: LoginPath},
		{Label: "Register", Path: RegisterPath},
	}
	return s
}
