package http

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// parseUintParam 解析路径参数为 uint，失败返回 ok=false。
func parseUintParam(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(v), true
}

// parseIntParam 解析路径参数为 int (板块类别)。
func parseIntParam(c *gin.Context, name string) (int, bool) {
	v, err := strconv.Atoi(c.Param(name))
	if err != nil {
		return 0, false
	}
	return v, true
}

// pageQuery 读取 page/size 查询参数，缺省 1/20。
func pageQuery(c *gin.Context) (page, size int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ = strconv.Atoi(c.DefaultQuery("size", "20"))
	return page, size
}
