package controllers

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edutrack/schoolms/internal/app/models/dto"
	"github.com/edutrack/schoolms/internal/app/services"
	"github.com/edutrack/schoolms/internal/middleware"
)

// VoucherController handles registration vouchers
type VoucherController struct {
	voucherService *services.VoucherService
}

// NewVoucherController creates a new VoucherController
func NewVoucherController(voucherService *services.VoucherService) *VoucherController {
	return &VoucherController{voucherService: voucherService}
}

// GenerateVouchers creates a batch of vouchers
// @Summary Generate vouchers
// @Description Serial numbers look like SABC-1A2B3C4D, PINs are 12 random digits. Student vouchers may target a class.
// @Tags vouchers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param X-School-ID header int false "School to act on (superusers only)"
// @Param request body dto.GenerateVouchersRequest true "Batch"
// @Success 201 {object} dto.APIResponse{data=dto.GenerateVouchersResponse} "Vouchers generated"
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 404 {object} dto.ErrorResponse "Class not found"
// @Router /vouchers [post]
func (c *VoucherController) GenerateVouchers(ctx *gin.Context) {
	p, ok := principal(ctx)
	if !ok {
		return
	}
	var req dto.GenerateVouchersRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	resp, err := c.voucherService.Generate(ctx.Request.Context(), middleware.SchoolID(ctx), p.UserID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusCreated, resp, "Vouchers generated")
}

// ListVouchers returns a page of vouchers
// @Summary List vouchers
// @Tags vouchers
// @Produce json
// @Security BearerAuth
// @Param X-School-ID header int false "School to act on (superusers only)"
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Param search query string false "Search in serial number"
// @Param kind query string false "student or teacher"
// @Param isUsed query bool false "Used or unused"
// @Param classId query int false "Target class"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse{items=[]models.Voucher}} "Vouchers"
// @Router /vouchers [get]
func (c *VoucherController) ListVouchers(ctx *gin.Context) {
	var filter dto.VoucherFilter
	if !bindList(ctx, &filter, &filter.ListParams) {
		return
	}

	vouchers, total, err := c.voucherService.List(ctx.Request.Context(), middleware.SchoolID(ctx), filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondPage(ctx, vouchers, total, filter.ListParams)
}

// GetVoucher returns one voucher
// @Summary Get a voucher
// @Tags vouchers
// @Produce json
// @Security BearerAuth
// @Param X-School-ID header int false "School to act on (superusers only)"
// @Param id path int true "Voucher ID"
// @Success 200 {object} dto.APIResponse{data=models.Voucher} "Voucher"
// @Failure 404 {object} dto.ErrorResponse "Voucher not found"
// @Router /vouchers/{id} [get]
func (c *VoucherController) GetVoucher(ctx *gin.Context) {
	id, ok := middleware.ParamID(ctx, "id")
	if !ok {
		return
	}

	voucher, err := c.voucherService.Get(ctx.Request.Context(), middleware.SchoolID(ctx), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, voucher, "")
}

// VoucherStats counts the vouchers of the school
// @Summary Voucher statistics
// @Tags vouchers
// @Produce json
// @Security BearerAuth
// @Param X-School-ID header int false "School to act on (superusers only)"
// @Success 200 {object} dto.APIResponse{data=models.VoucherStats} "Statistics"
// @Router /vouchers/stats [get]
func (c *VoucherController) VoucherStats(ctx *gin.Context) {
	stats, err := c.voucherService.Stats(ctx.Request.Context(), middleware.SchoolID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, stats, "")
}

// ExportVouchers downloads the filtered vouchers as CSV for printing
// @Summary Export vouchers
// @Tags vouchers
// @Produce text/csv
// @Security BearerAuth
// @Param X-School-ID header int false "School to act on (superusers only)"
// @Param kind query string false "student or teacher"
// @Param isUsed query bool false "Used or unused"
// @Param classId query int false "Target class"
// @Success 200 {file} file "vouchers CSV"
// @Router /vouchers/export [get]
func (c *VoucherController) ExportVouchers(ctx *gin.Context) {
	var filter dto.VoucherFilter
	if !bindList(ctx, &filter, &filter.ListParams) {
		return
	}

	var buf bytes.Buffer
	if _, err := c.voucherService.ExportCSV(ctx.Request.Context(), middleware.SchoolID(ctx), filter, &buf); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	sendCSV(ctx, "vouchers", &buf)
}
