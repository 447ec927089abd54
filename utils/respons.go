package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type JSONResponse struct {
	Status  bool        `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func RespondJSON(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, JSONResponse{
		Status:  code >= 200 && code < 300,
		Message: message,
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, err error) {
	c.JSON(code, JSONResponse{
		Status:  false,
		Message: err.Error(),
		Data:    nil,
	})
}

// StatusFromDBError memetakan error dari storage layer ke kode HTTP:
// not found -> 404, duplicate unique key -> 409, FK violation -> 400,
// sisanya dianggap storage failure (500).
func StatusFromDBError(err error) int {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return http.StatusConflict
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// RespondDBError -> shortcut untuk error hasil query/tx
func RespondDBError(c *gin.Context, err error) {
	RespondError(c, StatusFromDBError(err), err)
}
