package mockapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dnminh/vshop/internal/app/model"
	apierrors "github.com/dnminh/vshop/internal/errors"
)

// ListProducts returns the catalog, optionally filtered by category
func (s *Server) ListProducts(c *gin.Context) {
	query := s.db.Model(&model.Product{})
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	var products []model.Product
	if err := query.Find(&products).Error; err != nil {
		apierrors.InternalError(c, "failed to list products")
		return
	}
	c.JSON(http.StatusOK, products)
}

// FeaturedProducts returns the home page strip
func (s *Server) FeaturedProducts(c *gin.Context) {
	var products []model.Product
	if err := s.db.Where("featured = ?", true).Find(&products).Error; err != nil {
		apierrors.InternalError(c, "failed to list featured products")
		return
	}
	c.JSON(http.StatusOK, products)
}

// GetProduct returns one product
func (s *Server) GetProduct(c *gin.Context) {
	product, ok := s.findProduct(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, product)
}

// CreateProduct adds a product to the catalog
func (s *Server) CreateProduct(c *gin.Context) {
	var product model.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		apierrors.BadRequest(c, apierrors.ValidationInvalidInput, "invalid product payload")
		return
	}
	product.ID = 0

	if err := s.db.Create(&product).Error; err != nil {
		apierrors.InternalError(c, "failed to create product")
		return
	}
	c.JSON(http.StatusCreated, product)
}

// UpdateProduct overwrites a product
func (s *Server) UpdateProduct(c *gin.Context) {
	product, ok := s.findProduct(c)
	if !ok {
		return
	}

	var incoming model.Product
	if err := c.ShouldBindJSON(&incoming); err != nil {
		apierrors.BadRequest(c, apierrors.ValidationInvalidInput, "invalid product payload")
		return
	}
	incoming.ID = product.ID
	incoming.CreatedAt = product.CreatedAt

	if err := s.db.Save(&incoming).Error; err != nil {
		apierrors.InternalError(c, "failed to update product")
		return
	}
	c.JSON(http.StatusOK, incoming)
}

// DeleteProduct removes a product
func (s *Server) DeleteProduct(c *gin.Context) {
	product, ok := s.findProduct(c)
	if !ok {
		return
	}

	if err := s.db.Delete(product).Error; err != nil {
		apierrors.InternalError(c, "failed to delete product")
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) findProduct(c *gin.Context) (*model.Product, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, apierrors.ValidationInvalidID, "invalid product id")
		return nil, false
	}

	var product model.Product
	if err := s.db.First(&product, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apierrors.NotFound(c, apierrors.ProductNotFound, "product not found")
		} else {
			apierrors.InternalError(c, "failed to fetch product")
		}
		return nil, false
	}
	return &product, true
}
