package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jobtrail/jobtrail/internal/apperr"
)

func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// respondError maps the error taxonomy onto HTTP responses. The
// `retriable` flag tells the operator whether nothing happened and a
// retry may succeed, or their data needs manual review first.
func respondError(c *gin.Context, err error) {
	var ae *apperr.Error
	if !errors.As(err, &ae) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "retriable": false})
		return
	}

	status := http.StatusInternalServerError
	switch ae.Code {
	case apperr.CodeParseFailed, apperr.CodeBadShape, apperr.CodeNoRecords:
		status = http.StatusBadRequest
	case apperr.CodeConfigMissing:
		status = http.StatusServiceUnavailable
	case apperr.CodeServiceFailed:
		status = http.StatusBadGateway
	case apperr.CodeNotFound:
		status = http.StatusNotFound
	}

	c.JSON(status, gin.H{
		"error":     ae.Message,
		"code":      string(ae.Code),
		"retriable": ae.Retriable(),
	})
}
