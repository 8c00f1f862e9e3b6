package api

import (
	"errors"
	"log"
	"net/http"

	"fitsync/backend/internal/service"
	"fitsync/backend/internal/storage"

	"github.com/gin-gonic/gin"
)

// respondError maps service errors onto HTTP status codes and aborts the request.
func respondError(c *gin.Context, err error) {
	var entitlementErr *service.EntitlementError
	switch {
	case errors.As(err, &entitlementErr):
		abortWithError(c, http.StatusForbidden, entitlementErr.Error())
	case errors.Is(err, service.ErrPermissionDenied):
		abortWithError(c, http.StatusForbidden, "Premium subscription required.")
	case errors.Is(err, service.ErrUserNotFound):
		abortWithError(c, http.StatusNotFound, "User not found")
	case errors.Is(err, service.ErrPlanNotFound):
		abortWithError(c, http.StatusNotFound, "Plan not found")
	case errors.Is(err, service.ErrPlanItemNotFound):
		abortWithError(c, http.StatusNotFound, "Plan item not found")
	case errors.Is(err, service.ErrPlanConflict):
		abortWithError(c, http.StatusConflict, "Plan was modified by another request, reload and try again")
	case errors.Is(err, service.ErrInvalidInput):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrGenerationFailed):
		log.Printf("ERROR: [%s] %s %s: %v", getRequestID(c), c.Request.Method, c.FullPath(), err)
		abortWithError(c, http.StatusBadGateway, "The AI provider returned an unusable response")
	case errors.Is(err, storage.ErrNotConfigured):
		abortWithError(c, http.StatusServiceUnavailable, "Plan export is not available")
	default:
		log.Printf("ERROR: [%s] %s %s: %v", getRequestID(c), c.Request.Method, c.FullPath(), err)
		abortWithError(c, http.StatusInternalServerError, err.Error())
	}
}

// bindJSON binds the request body and writes a 400 on failure.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	return true
}

// requireUserID reads the authenticated user id or aborts with 401.
func requireUserID(c *gin.Context) (string, bool) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user.")
		return "", false
	}
	return userID, true
}
