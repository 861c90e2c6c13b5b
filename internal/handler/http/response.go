package http

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// 所有响应统一包在 {success, msg, data?} 信封里。

// CommonResult 是命令型接口的响应信封。
type CommonResult struct {
	Success bool   `json:"success"`
	Msg     string `json:"msg"`
}

// DataResult 是带载荷的响应信封。
type DataResult struct {
	Success bool        `json:"success"`
	Msg     string      `json:"msg"`
	Data    interface{} `json:"data"`
}

// ListData 是列表载荷，带总数供分页使用。
type ListData struct {
	List  interface{} `json:"list"`
	Count int64       `json:"count"`
}

func SuccessResponse(c *gin.Context, code int, msg string) {
	c.JSON(code, CommonResult{Success: true, Msg: msg})
}

func SuccessDataResponse(c *gin.Context, code int, msg string, data interface{}) {
	c.JSON(code, DataResult{Success: true, Msg: msg, Data: data})
}

func ErrorResponse(c *gin.Context, code int, msg string) {
	c.JSON(code, CommonResult{Success: false, Msg: msg})
}

// bindingMsg 把 gin 绑定错误聚合成一条 msg。
// 字段级校验错误逐个列出，其他绑定错误给统一描述。
func bindingMsg(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		parts := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			parts = append(parts, fe.Field()+" failed on '"+fe.Tag()+"'")
		}
		return "validation failed: " + strings.Join(parts, ", ")
	}
	return "invalid request body"
}
