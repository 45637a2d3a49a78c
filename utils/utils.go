package utils

import (
	"fmt"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// SendJSONError sends a standardized JSON error response and logs the internal error.
// The publicMsg is what the client sees; internalError (if provided) is only logged,
// so infrastructure detail never leaks on 5xx responses.
func SendJSONError(c *gin.Context, statusCode int, publicMsg string, internalError error) {
	if internalError != nil {
		log.Printf("ERROR: Handler error: status_code=%d, public_message='%s', internal_error='%v', path='%s'",
			statusCode, publicMsg, internalError, c.Request.URL.Path)
	} else {
		log.Printf("INFO: Handler response: status_code=%d, public_message='%s', path='%s'",
			statusCode, publicMsg, c.Request.URL.Path)
	}
	c.AbortWithStatusJSON(statusCode, gin.H{"message": publicMsg})
}

// FormatBillDate renders a date as D/M/YYYY with no zero-padding, the format
// printed on purchase bills.
func FormatBillDate(t time.Time) string {
	return fmt.Sprintf("%d/%d/%d", t.Day(), int(t.Month()), t.Year())
}

// HashPassword produces a bcrypt digest for storage on a user record.
func HashPassword(password string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(digest), nil
}
