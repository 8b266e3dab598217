package cart

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	bookModel "bookstore-storefront/internal/domains/book/model"
	"bookstore-storefront/internal/domains/cart/model"
	"bookstore-storefront/internal/domains/cart/repository"
	"bookstore-storefront/internal/domains/cart/service"
	"bookstore-storefront/internal/infrastructure/cache"
	"bookstore-storefront/internal/shared/middleware"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code string `json:"code"`
	} `json:"error"`
}

type stubCatalog struct {
	books map[string]bookModel.Book
}

func (s stubCatalog) ListBooks(context.Context) ([]bookModel.Book, error) { return nil, nil }

func (s stubCatalog) SearchBooks(context.Context, string) ([]bookModel.Book, error) {
	return nil, nil
}

func (s stubCatalog) GetBook(_ context.Context, id string) (*bookModel.Book, error) {
	b, ok := s.books[id]
	if !ok {
		return nil, bookModel.ErrBookNotFound
	}
	return &b, nil
}

var catalogBooks = stubCatalog{books: map[string]bookModel.Book{
	"1": {ID: "1", Title: "Dune", Price: 24.999, Stock: 10, Thumbnail: "https://img.example/dune.jpg"},
	"2": {ID: "2", Title: "Sold Out", Price: 12, Stock: 0},
}}

func setupRouter(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)

	mr := miniredis.RunT(t)
	rc := cache.NewRedisCacheFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	h := NewHandler(service.NewCartService(repository.NewCacheRepository(rc, time.Hour), nil), catalogBooks)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.ContextKeySessionID, "9b2e4f6a-1c3d-4e5f-8a7b-0c1d2e3f4a5b")
		c.Next()
	})
	r.GET("/cart", h.GetCart)
	r.POST("/cart/items", h.AddItem)
	r.PUT("/cart/items/:book_id", h.UpdateQuantity)
	r.DELETE("/cart/items/:book_id", h.RemoveBook)
	r.DELETE("/cart/lines/:line_id", h.RemoveLine)
	r.DELETE("/cart", h.Clear)
	return r
}

func call(t *testing.T, r http.Handler, method, path, body string) (int, envelope) {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w.Code, env
}

func TestCartHandler_AddUpdateRemoveClear(t *testing.T) {
	r := setupRouter(t)

	code, env := call(t, r, http.MethodPost, "/cart/items", `{"book_id":"1"}`)
	require.Equal(t, http.StatusCreated, code)
	var cart model.CartResponse
	require.NoError(t, json.Unmarshal(env.Data, &cart))
	assert.Equal(t, 1, cart.TotalItems)
	assert.Equal(t, 25.0, cart.TotalPrice)

	code, env = call(t, r, http.MethodPut, "/cart/items/1", `{"quantity":3}`)
	require.Equal(t, http.StatusOK, code)
	require.NoError(t, json.Unmarshal(env.Data, &cart))
	assert.Equal(t, 3, cart.TotalItems)
	require.Len(t, cart.Groups, 1)
	assert.Equal(t, 3, cart.Groups[0].Quantity)

	code, env = call(t, r, http.MethodDelete, "/cart/items/1", "")
	require.Equal(t, http.StatusOK, code)
	var removed model.RemoveResponse
	require.NoError(t, json.Unmarshal(env.Data, &removed))
	assert.True(t, removed.Removed)
	assert.Equal(t, 2, removed.Cart.TotalItems)

	lineID := removed.Cart.Items[0].LineID.String()
	code, env = call(t, r, http.MethodDelete, "/cart/lines/"+lineID, "")
	require.Equal(t, http.StatusOK, code)
	require.NoError(t, json.Unmarshal(env.Data, &removed))
	assert.True(t, removed.Removed)
	assert.Equal(t, 1, removed.Cart.TotalItems)

	code, env = call(t, r, http.MethodDelete, "/cart", "")
	require.Equal(t, http.StatusOK, code)
	require.NoError(t, json.Unmarshal(env.Data, &cart))
	assert.True(t, cart.Empty)
}

func TestCartHandler_RemoveMissingIsNotAnError(t *testing.T) {
	r := setupRouter(t)

	for _, path := range []string{"/cart/items/nope", "/cart/lines/not-a-uuid", "/cart/lines/00000000-0000-0000-0000-000000000001"} {
		code, env := call(t, r, http.MethodDelete, path, "")
		require.Equal(t, http.StatusOK, code, path)
		var removed model.RemoveResponse
		require.NoError(t, json.Unmarshal(env.Data, &removed))
		assert.False(t, removed.Removed, path)
		assert.True(t, removed.Cart.Empty, path)
	}
}

func TestCartHandler_Validation(t *testing.T) {
	r := setupRouter(t)

	code, env := call(t, r, http.MethodPost, "/cart/items", `{"book_id":""}`)
	assert.Equal(t, http.StatusBadRequest, code)
	require.NotNil(t, env.Error)

	code, _ = call(t, r, http.MethodPut, "/cart/items/1", `{"quantity":-2}`)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestCartHandler_AddItemCopiesCatalogFields(t *testing.T) {
	r := setupRouter(t)

	code, env := call(t, r, http.MethodPost, "/cart/items", `{"book_id":"1","title":"Free Book","price":0,"thumbnail":"https://evil.example/x.png"}`)
	require.Equal(t, http.StatusCreated, code)
	var cart model.CartResponse
	require.NoError(t, json.Unmarshal(env.Data, &cart))
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "Dune", cart.Items[0].Title)
	assert.Equal(t, 25.0, cart.Items[0].Price)
	assert.Equal(t, "https://img.example/dune.jpg", cart.Items[0].Thumbnail)

	code, env = call(t, r, http.MethodPost, "/cart/items", `{"book_id":"404"}`)
	assert.Equal(t, http.StatusNotFound, code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "BOOK_NOT_FOUND", env.Error.Code)

	code, env = call(t, r, http.MethodPost, "/cart/items", `{"book_id":"2"}`)
	assert.Equal(t, http.StatusConflict, code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "OUT_OF_STOCK", env.Error.Code)
}
