package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/validators"
)

// bindJSON binds and validates the body, answering 400 itself on failure.
func bindJSON(c *gin.Context, dst any) bool {
	return bind(c, dst, c.ShouldBindJSON)
}

func bindQuery(c *gin.Context, dst any) bool {
	return bind(c, dst, c.ShouldBindQuery)
}

func bind(c *gin.Context, dst any, fn func(any) error) bool {
	err := fn(dst)
	if err == nil {
		return true
	}

	if fields := validators.Describe(err); len(fields) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error_code": "invalid_request",
			"message":    fields[0].Message,
			"details":    fields,
		})
		return false
	}

	httperr.BadRequest(c, "invalid_request", "Invalid request.")
	return false
}

// splitIDs accepts both ?ids=a&ids=b and ?ids=a,b.
func splitIDs(values []string) []string {
	var out []string
	for _, v := range values {
		for _, id := range strings.Split(v, ",") {
			if id = strings.TrimSpace(id); id != "" {
				out = append(out, id)
			}
		}
	}
	return out
}
