package handler

import (
	"Bastion/internal/api/middleware"
	"Bastion/internal/pkg/response"
	"Bastion/internal/pkg/util"
	"Bastion/internal/service"
	"errors"
	"io"
	"strconv"

	"github.com/gin-gonic/gin"
)

func currentUser(c *gin.Context) uint64 {
	return c.GetUint64(middleware.CtxUserID)
}

// pathID parses a positive id path parameter; on failure it writes a 400 and returns false
func pathID(c *gin.Context, name string) (uint64, bool) {
	id := util.ParseID(c.Param(name))
	if id == 0 {
		response.Error(c, service.ErrParamInvalid)
		return 0, false
	}
	return id, true
}

// bindJSON decodes and validates the body; on failure it writes a 400 and returns false
func bindJSON(c *gin.Context, req any, optional bool) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		if !(optional && errors.Is(err, io.EOF)) {
			response.Fail(c, response.BadRequest, service.ErrParamInvalid.Error())
			return false
		}
	}
	if err := util.ValidateDTO(req); err != nil {
		response.Fail(c, response.BadRequest, err.Error())
		return false
	}
	return true
}

func queryInt(c *gin.Context, name string, def int) int {
	v, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return def
	}
	return v
}
