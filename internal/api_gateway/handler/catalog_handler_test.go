package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/backoffice-ledger/internal/api_gateway/service"
	"github.com/backoffice-ledger/internal/domain/catalog"
	"github.com/backoffice-ledger/internal/domain/user"
)

type catalogFixture struct {
	catalog *MockCatalogService
	users   *MockUserService
	handler *CatalogHandler
}

func newCatalogFixture() catalogFixture {
	f := catalogFixture{catalog: new(MockCatalogService), users: new(MockUserService)}
	f.handler = NewCatalogHandler(newTestLogger(), f.catalog, f.users)
	return f
}

func TestCatalogHandler_CreateProduct(t *testing.T) {
	body := map[string]interface{}{
		"title":       "Kopi Arabika",
		"description": "Gayo 250g",
		"images":      []string{"kopi.jpg"},
		"category":    "c-1",
		"stock":       10,
		"price":       85000,
	}

	t.Run("Success", func(t *testing.T) {
		f := newCatalogFixture()
		draft := catalog.ProductDraft{
			Title:       "Kopi Arabika",
			Description: "Gayo 250g",
			Images:      []string{"kopi.jpg"},
			CategoryID:  "c-1",
			Stock:       10,
			Price:       85000,
		}
		f.catalog.On("CreateProduct", mock.Anything, draft).Return(&catalog.Product{ID: "p-1", Title: "Kopi Arabika", Stock: 10, Price: 85000}, nil)

		r := newTestRouter(adminClaims())
		r.POST("/products", f.handler.CreateProduct)

		rr := doJSON(t, r, http.MethodPost, "/products", body)
		require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

		var got catalog.Product
		decodeData(t, rr, &got)
		assert.Equal(t, "p-1", got.ID)
		f.catalog.AssertExpectations(t)
	})

	t.Run("Title too short", func(t *testing.T) {
		f := newCatalogFixture()
		r := newTestRouter(adminClaims())
		r.POST("/products", f.handler.CreateProduct)

		short := map[string]interface{}{"title": "Kopi", "category": "c-1"}
		rr := doJSON(t, r, http.MethodPost, "/products", short)
		require.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "title", decode(t, rr).Error.Details[0].Field)
	})

	t.Run("Unknown category", func(t *testing.T) {
		f := newCatalogFixture()
		f.catalog.On("CreateProduct", mock.Anything, mock.Anything).Return(nil, catalog.ErrCategoryNotFound{CategoryID: "c-1"})

		r := newTestRouter(adminClaims())
		r.POST("/products", f.handler.CreateProduct)

		rr := doJSON(t, r, http.MethodPost, "/products", body)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestCatalogHandler_GetProduct(t *testing.T) {
	f := newCatalogFixture()
	f.catalog.On("GetProduct", mock.Anything, "p-1").Return(&service.ProductView{
		Product:  &catalog.Product{ID: "p-1", Title: "Kopi Arabika", CategoryID: "c-1"},
		Category: &catalog.Category{ID: "c-1", Name: "Minuman"},
		Comments: []*catalog.Comment{{ID: "cm-1", Name: "budi", Message: "mantap"}},
	}, nil)
	f.catalog.On("GetProduct", mock.Anything, "p-9").Return(nil, catalog.ErrProductNotFound{ProductID: "p-9"})

	r := newTestRouter(nil)
	r.GET("/products/:id", f.handler.GetProduct)

	rr := doJSON(t, r, http.MethodGet, "/products/p-1", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var got map[string]interface{}
	decodeData(t, rr, &got)
	assert.Equal(t, "Kopi Arabika", got["title"])
	assert.Equal(t, "Minuman", got["category"].(map[string]interface{})["name"])
	assert.Len(t, got["comment"], 1)

	assert.Equal(t, http.StatusNotFound, doJSON(t, r, http.MethodGet, "/products/p-9", nil).Code)
}

func TestCatalogHandler_DeleteProduct(t *testing.T) {
	f := newCatalogFixture()
	f.catalog.On("DeleteProduct", mock.Anything, "p-1").Return(catalog.ErrProductInUse{ProductID: "p-1", References: 3})

	r := newTestRouter(adminClaims())
	r.DELETE("/products/:id", f.handler.DeleteProduct)

	rr := doJSON(t, r, http.MethodDelete, "/products/p-1", nil)
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, decode(t, rr).Error.Message, "3 transaction")
}

func TestCatalogHandler_Categories(t *testing.T) {
	f := newCatalogFixture()
	f.catalog.On("CreateCategory", mock.Anything, "Minuman", "").Return(&catalog.Category{ID: "c-1", Name: "Minuman"}, nil)
	f.catalog.On("ListCategories", mock.Anything).Return([]*catalog.Category{{ID: "c-1", Name: "Minuman"}}, nil)
	f.catalog.On("DeleteCategory", mock.Anything, "c-1").Return(catalog.ErrCategoryInUse{CategoryID: "c-1", References: 1})

	r := newTestRouter(adminClaims())
	r.POST("/categories", f.handler.CreateCategory)
	r.GET("/categories/list", f.handler.ListCategories)
	r.DELETE("/categories/:id", f.handler.DeleteCategory)

	assert.Equal(t, http.StatusCreated, doJSON(t, r, http.MethodPost, "/categories", map[string]string{"name": "Minuman"}).Code)
	assert.Equal(t, http.StatusBadRequest, doJSON(t, r, http.MethodPost, "/categories", map[string]string{"name": "ab"}).Code)

	rr := doJSON(t, r, http.MethodGet, "/categories/list", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var got []catalog.Category
	decodeData(t, rr, &got)
	assert.Len(t, got, 1)

	assert.Equal(t, http.StatusConflict, doJSON(t, r, http.MethodDelete, "/categories/c-1", nil).Code)
}

func TestCatalogHandler_AddComment(t *testing.T) {
	t.Run("Author from caller", func(t *testing.T) {
		f := newCatalogFixture()
		f.users.On("GetUser", mock.Anything, "u-1").Return(&user.User{ID: "u-1", Username: "budi"}, nil)
		f.catalog.On("AddComment", mock.Anything, "p-1", "budi", "mantap").
			Return(&catalog.Comment{ID: "cm-1", ProductID: "p-1", Name: "budi", Message: "mantap"}, nil)

		r := newTestRouter(userClaims())
		r.POST("/comments", f.handler.AddComment)

		rr := doJSON(t, r, http.MethodPost, "/comments", map[string]string{
			"product_id": "p-1",
			"message":    "mantap",
			"name":       "someone-else",
		})
		require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

		var got catalog.Comment
		decodeData(t, rr, &got)
		assert.Equal(t, "budi", got.Name)
		f.catalog.AssertExpectations(t)
	})

	t.Run("Requires authentication", func(t *testing.T) {
		f := newCatalogFixture()
		r := newTestRouter(nil)
		r.POST("/comments", f.handler.AddComment)

		rr := doJSON(t, r, http.MethodPost, "/comments", map[string]string{"product_id": "p-1", "message": "hi"})
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		f.catalog.AssertNotCalled(t, "AddComment")
	})

	t.Run("Unknown product", func(t *testing.T) {
		f := newCatalogFixture()
		f.users.On("GetUser", mock.Anything, "u-1").Return(&user.User{ID: "u-1", Username: "budi"}, nil)
		f.catalog.On("AddComment", mock.Anything, "p-9", "budi", "hi").Return(nil, catalog.ErrProductNotFound{ProductID: "p-9"})

		r := newTestRouter(userClaims())
		r.POST("/comments", f.handler.AddComment)

		rr := doJSON(t, r, http.MethodPost, "/comments", map[string]string{"product_id": "p-9", "message": "hi"})
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}
