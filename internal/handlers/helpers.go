package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

func bindIntParam(c *gin.Context, name string, out *int) error {
	v, err := strconv.Atoi(c.Param(name))
	if err != nil {
		return err
	}
	*out = v
	return nil
}
