package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ekarpova/resumecraft/internal/common"
	"github.com/ekarpova/resumecraft/internal/resume"
)

// respondError maps a service error onto the HTTP taxonomy. Validation
// failures carry their field-scoped messages; everything unexpected
// collapses to a bare 500 so internals never leak.
func respondError(c *gin.Context, err error) {
	var verr *resume.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Validation failed", "errors": verr.Fields})
	case errors.Is(err, common.ErrorValidation):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	case errors.Is(err, common.ErrorNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Resume not found"})
	case errors.Is(err, common.ErrorEmailTaken):
		c.JSON(http.StatusConflict, gin.H{"message": "Email already registered"})
	case errors.Is(err, common.ErrRefreshTokenExpired):
		c.JSON(http.StatusUnauthorized, gin.H{"message": "refresh token expired"})
	case errors.Is(err, common.ErrorUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"message": "unauthorized"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
	}
}

func respondBadBody(c *gin.Context) {
	c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
}
