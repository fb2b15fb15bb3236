package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CallerIDHeader 執行環境提供的呼叫者身份；core 不驗證，只做相等比較
const CallerIDHeader = "X-Caller-ID"

const callerContextKey = "caller_id"

// RequireCaller 從 header 取出呼叫者身份，缺少時拒絕請求
func RequireCaller() gin.HandlerFunc {
	return func(c *gin.Context) {
		caller := c.GetHeader(CallerIDHeader)
		if caller == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Missing " + CallerIDHeader + " header",
			})
			return
		}
		c.Set(callerContextKey, caller)
		c.Next()
	}
}

func CallerID(c *gin.Context) string {
	return c.GetString(callerContextKey)
}

func BindJson(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindJSON(obj); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return err
	}
	return nil
}

func BindQuery(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindQuery(obj); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return err
	}
	return nil
}

func BindUri(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindUri(obj); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return err
	}
	return nil
}
