package response

import (
	"encoding/hex"
	"net/http"

	"github.com/gin-gonic/gin"

	"wallet-keycore/pkg/errno"
	"wallet-keycore/pkg/validator"
)

// Response defines the standard JSON structure
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"msg"`
	Data    interface{} `json:"data"`
}

// Success returns a success response with data
func Success(c *gin.Context, data interface{}) {
	if data == nil {
		data = gin.H{} // Return empty object instead of null
	}
	c.JSON(http.StatusOK, Response{
		Code:    errno.OK.Code,
		Message: errno.OK.Message,
		Data:    data,
	})
}

// Error returns an error response.
// 业务错误统一 HTTP 200，通过 code 区分。
func Error(c *gin.Context, err error) {
	code, msg := errno.Decode(err)
	c.JSON(http.StatusOK, Response{
		Code:    code,
		Message: msg,
		Data:    gin.H{},
	})
}

// BindError 把参数绑定/校验错误翻译成 ErrBind
func BindError(c *gin.Context, err error) {
	Error(c, errno.ErrBind.WithMessage(validator.GetErrorMsg(err)))
}

// Hex 字节统一以小写十六进制返回
func Hex(b []byte) string {
	return hex.EncodeToString(b)
}
