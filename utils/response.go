package utils

import "github.com/gin-gonic/gin"

func JSONSuccess(c *gin.Context, code int, data interface{}) {
	c.JSON(code, gin.H{"success": true, "data": data})
}

func JSONError(c *gin.Context, code int, errCode, message string) {
	c.JSON(code, gin.H{"success": false, "error": gin.H{"code": errCode, "message": message}})
}

// JSONAPIError writes an *APIError using its own status and code. Anything
// that is not an *APIError is treated as an internal error.
func JSONAPIError(c *gin.Context, err error) {
	apiErr := AsAPIError(err)
	body := gin.H{"code": apiErr.Code, "message": apiErr.Message}
	if len(apiErr.Meta) > 0 {
		body["meta"] = apiErr.Meta
	}
	c.JSON(apiErr.Status, gin.H{"success": false, "error": body})
}
