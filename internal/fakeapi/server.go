// Package fakeapi serves a fixed catalog and stock over HTTP for local development.
package fakeapi

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

type server struct {
	products map[int64]CatalogProduct
	stock    map[int64]StockEntry
	ordered  []CatalogProduct
}

func NewRouter(f Fixture, log *slog.Logger) *gin.Engine {
	s := &server{
		products: make(map[int64]CatalogProduct, len(f.Products)),
		stock:    make(map[int64]StockEntry, len(f.Stock)),
		ordered:  f.Products,
	}
	for _, p := range f.Products {
		s.products[p.ID] = p
	}
	for _, e := range f.Stock {
		s.stock[e.ID] = e
	}

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(log))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "rocketcart-fakeapi"})
	})
	r.GET("/products", s.listProducts)
	r.GET("/products/:id", s.getProduct)
	r.GET("/stock/:id", s.getStock)

	return r
}

func (s *server) listProducts(c *gin.Context) {
	c.JSON(http.StatusOK, s.ordered)
}

func (s *server) getProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	p, found := s.products[id]
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}

	c.JSON(http.StatusOK, p)
}

func (s *server) getStock(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	e, found := s.stock[id]
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "stock not found"})
		return
	}

	c.JSON(http.StatusOK, e)
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id", "details": err.Error()})
		return 0, false
	}
	return id, true
}

func requestLogger(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.InfoContext(c.Request.Context(), "request",
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("duration", time.Since(start)))
	}
}
