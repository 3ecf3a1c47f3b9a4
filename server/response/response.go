package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// JSON writes the uniform response envelope. err may be nil on success.
func JSON(c *gin.Context, message string, status int, data interface{}, err error) {
	responsedata := gin.H{
		"message": message,
		"data":    data,
		"errors":  errorMessage(err),
		"status":  http.StatusText(status),
	}
	c.JSON(status, responsedata)
}

func errorMessage(err error) interface{} {
	if err == nil {
		return nil
	}
	return err.Error()
}
