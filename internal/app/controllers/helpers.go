// Package controllers handles HTTP request handling
package controllers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	appAuth "github.com/edutrack/schoolms/internal/app/auth"
	"github.com/edutrack/schoolms/internal/app/models/dto"
	"github.com/edutrack/schoolms/internal/middleware"
	"github.com/edutrack/schoolms/internal/pkg/helpers"
)

func respond(ctx *gin.Context, status int, data interface{}, message string) {
	ctx.JSON(status, dto.NewSuccessResponse(data, message))
}

// respondPage wraps one page of items together with its pagination info
func respondPage(ctx *gin.Context, items interface{}, total int64, params dto.ListParams) {
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.PaginatedResponse{
		Items:      items,
		Pagination: helpers.NewPaginationInfo(total, params.Page, params.Size),
	}, ""))
}

// bindList binds and normalises the list query of a request
func bindList(ctx *gin.Context, filter interface{}, params *dto.ListParams) bool {
	if !middleware.BindQuery(ctx, filter) {
		return false
	}
	helpers.NormalizeListParams(params)
	return true
}

// principal returns the authenticated caller; routes using it sit behind JWTAuth
func principal(ctx *gin.Context) (appAuth.Principal, bool) {
	p, ok := middleware.GetPrincipal(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
	}
	return p, ok
}

// sendCSV streams a rendered CSV as a download named <prefix>-<date>.csv
func sendCSV(ctx *gin.Context, prefix string, body *bytes.Buffer) {
	filename := fmt.Sprintf("%s-%s.csv", prefix, time.Now().Format("20060102"))
	ctx.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	ctx.Data(http.StatusOK, "text/csv; charset=utf-8", body.Bytes())
}
