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

// ListUsers returns the users collection, optionally filtered by the email
// or username query parameters the storefront uses for lookups.
func (s *Server) ListUsers(c *gin.Context) {
	query := s.db.Model(&model.User{})
	if email := c.Query("email"); email != "" {
		query = query.Where("email = ?", email)
	}
	if username := c.Query("username"); username != "" {
		query = query.Where("username = ?", username)
	}

	var users []model.User
	if err := query.Find(&users).Error; err != nil {
		apierrors.InternalError(c, "failed to list users")
		return
	}
	c.JSON(http.StatusOK, users)
}

// CreateUser registers a user record
func (s *Server) CreateUser(c *gin.Context) {
	var user model.User
	if err := c.ShouldBindJSON(&user); err != nil {
		apierrors.BadRequest(c, apierrors.ValidationInvalidInput, "invalid user payload")
		return
	}
	user.ID = 0

	var count int64
	s.db.Model(&model.User{}).
		Where("email = ? OR username = ?", user.Email, user.Username).
		Count(&count)
	if count > 0 {
		apierrors.Conflict(c, apierrors.UserEmailExists, "email or username already registered")
		return
	}

	if err := s.db.Create(&user).Error; err != nil {
		apierrors.InternalError(c, "failed to create user")
		return
	}
	c.JSON(http.StatusCreated, user)
}

// GetUser returns one user record
func (s *Server) GetUser(c *gin.Context) {
	user, ok := s.findUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateUser overwrites the whole user record
func (s *Server) UpdateUser(c *gin.Context) {
	user, ok := s.findUser(c)
	if !ok {
		return
	}

	var incoming model.User
	if err := c.ShouldBindJSON(&incoming); err != nil {
		apierrors.BadRequest(c, apierrors.ValidationInvalidInput, "invalid user payload")
		return
	}
	incoming.ID = user.ID
	incoming.CreatedAt = user.CreatedAt

	if err := s.db.Save(&incoming).Error; err != nil {
		apierrors.InternalError(c, "failed to update user")
		return
	}
	c.JSON(http.StatusOK, incoming)
}

// PatchUser applies a partial update: only the fields present in the body
// are replaced, document fields (cart, wishlist, addresses, orders) are
// replaced wholesale.
func (s *Server) PatchUser(c *gin.Context) {
	user, ok := s.findUser(c)
	if !ok {
		return
	}

	// Decoding into the existing struct merges provided keys over it.
	if err := c.ShouldBindJSON(user); err != nil {
		apierrors.BadRequest(c, apierrors.ValidationInvalidInput, "invalid patch payload")
		return
	}

	if err := s.db.Save(user).Error; err != nil {
		apierrors.InternalError(c, "failed to update user")
		return
	}
	c.JSON(http.StatusOK, user)
}

func (s *Server) findUser(c *gin.Context) (*model.User, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, apierrors.ValidationInvalidID, "invalid user id")
		return nil, false
	}

	var user model.User
	if err := s.db.First(&user, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apierrors.NotFound(c, apierrors.UserNotFound, "user not found")
		} else {
			apierrors.InternalError(c, "failed to fetch user")
		}
		return nil, false
	}
	return &user, true
}
