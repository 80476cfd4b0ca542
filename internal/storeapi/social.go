package storeapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/kashkoool/nizargold-sub000/internal/domain"
	"github.com/kashkoool/nizargold-sub000/internal/webserver"
	"github.com/kashkoool/nizargold-sub000/pkg/common"
)

type commentPayload struct {
	Body string `json:"body" validate:"required,min=1,max=1024"`
}

// registerSocialRoutes registers like/favorite/comment endpoints. All of
// them require a signed-in account of either level.
func registerSocialRoutes() {
	webserver.StorePOST("/products/:id/like", toggleLike)
	webserver.StorePOST("/products/:id/favorite", toggleFavorite)
	webserver.StoreGET("/favorites", listFavorites)
	webserver.StorePOST("/products/:id/comments", createComment)
	webserver.StoreDELETE("/comments/:id", deleteComment)
}

func requireProduct(c echo.Context) (int64, error) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return 0, fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID")
	}
	var count int64
	if err := GetDB(c).Model(&domain.Product{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return 0, fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query product")
	}
	if count == 0 {
		return 0, fail(c, http.StatusNotFound, "PRODUCT_NOT_FOUND", "Product not found")
	}
	return id, nil
}

func toggleLike(c echo.Context) error {
	claims, err := webserver.TokenClaims(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid token")
	}
	productID, errResp := requireProduct(c)
	if errResp != nil {
		return errResp
	}

	var like domain.ProductLike
	err = GetDB(c).Where("product_id = ? and user_id = ?", productID, claims.UserID).First(&like).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		like = domain.ProductLike{
			ID:        common.UUIDint64(),
			ProductID: productID,
			UserID:    claims.UserID,
			CreatedAt: time.Now(),
		}
		if err := GetDB(c).Create(&like).Error; err != nil {
			return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to like product")
		}
		return ok(c, map[string]interface{}{"liked": true})
	case err != nil:
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query likes")
	}

	if err := GetDB(c).Delete(&like).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to unlike product")
	}
	return ok(c, map[string]interface{}{"liked": false})
}

func toggleFavorite(c echo.Context) error {
	claims, err := webserver.TokenClaims(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid token")
	}
	productID, errResp := requireProduct(c)
	if errResp != nil {
		return errResp
	}

	var fav domain.ProductFavorite
	err = GetDB(c).Where("product_id = ? and user_id = ?", productID, claims.UserID).First(&fav).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		fav = domain.ProductFavorite{
			ID:        common.UUIDint64(),
			ProductID: productID,
			UserID:    claims.UserID,
			CreatedAt: time.Now(),
		}
		if err := GetDB(c).Create(&fav).Error; err != nil {
			return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to add favorite")
		}
		return ok(c, map[string]interface{}{"favorite": true})
	case err != nil:
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query favorites")
	}

	if err := GetDB(c).Delete(&fav).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to remove favorite")
	}
	return ok(c, map[string]interface{}{"favorite": false})
}

func listFavorites(c echo.Context) error {
	claims, err := webserver.TokenClaims(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid token")
	}
	page, pageSize := parsePagination(c)

	base := GetDB(c).Model(&domain.Product{}).
		Joins("JOIN product_favorite ON product_favorite.product_id = product.id").
		Where("product_favorite.user_id = ?", claims.UserID)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query favorites")
	}

	var rows []domain.Product
	if err := base.Order("product_favorite.created_at DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).Find(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query favorites")
	}

	views := make([]productView, 0, len(rows))
	for _, p := range rows {
		views = append(views, toView(p))
	}
	return paged(c, views, total, page, pageSize)
}

func createComment(c echo.Context) error {
	claims, err := webserver.TokenClaims(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid token")
	}
	productID, errResp := requireProduct(c)
	if errResp != nil {
		return errResp
	}

	var payload commentPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse comment")
	}
	if err := c.Validate(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Comment body is required")
	}

	comment := domain.ProductComment{
		ID:        common.UUIDint64(),
		ProductID: productID,
		UserID:    claims.UserID,
		Username:  claims.Username,
		Body:      strings.TrimSpace(payload.Body),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := GetDB(c).Create(&comment).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create comment")
	}
	return ok(c, comment)
}

// deleteComment removes a comment: customers may delete their own, the owner
// may delete any.
func deleteComment(c echo.Context) error {
	claims, err := webserver.TokenClaims(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid token")
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid comment ID")
	}

	var comment domain.ProductComment
	if err := GetDB(c).Where("id = ?", id).First(&comment).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "COMMENT_NOT_FOUND", "Comment not found")
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query comment")
	}

	if comment.UserID != claims.UserID && claims.Level != domain.LevelOwner {
		return fail(c, http.StatusForbidden, "FORBIDDEN", "Cannot delete another user's comment")
	}

	if err := GetDB(c).Delete(&comment).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete comment")
	}
	return ok(c, map[string]interface{}{"id": id})
}
