package controllers

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/vibhu2208/hrms-backend-sub007/database"
	"github.com/vibhu2208/hrms-backend-sub007/internal/cursor"
	"github.com/vibhu2208/hrms-backend-sub007/internal/middleware"
	"github.com/vibhu2208/hrms-backend-sub007/internal/services"
)

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

// Reports is satisfied by services.ReportService.
type Reports interface {
	Tenants(ctx context.Context) ([]services.TenantInfo, error)
	Structure(ctx context.Context, tenantID string, sampleSize int64) (services.TenantStructure, error)
	Quality(ctx context.Context, tenantID string) (services.QualityReport, error)
	Reconcile(ctx context.Context, tenantID string) (services.ReconcilePlan, error)
	Jobs(ctx context.Context, tenantID string, limit int64, after string) (services.JobPage, error)
}

type ReportController struct {
	reports Reports
	timeout time.Duration
	log     *zap.Logger
}

func NewReportController(reports Reports, timeout time.Duration, log *zap.Logger) *ReportController {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &ReportController{reports: reports, timeout: timeout, log: log}
}

func (h *ReportController) fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, database.ErrTenantNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, database.ErrInvalidTenantID), errors.Is(err, cursor.ErrInvalid):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	uid, _ := middleware.UIDFromLocals(c)
	h.log.Error("report failed", zap.String("path", c.Path()), zap.String("uid", uid), zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}

// intQuery reads an optional integer query parameter. A present but
// malformed value is an error, not the default.
func intQuery(c *fiber.Ctx, key string, def int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", key)
	}
	return n, nil
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
}

func (h *ReportController) ctx(c *fiber.Ctx) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.UserContext(), h.timeout)
}

// ListTenants godoc
// @Summary List tenants
// @Description Registered tenants and tenant databases with the naming each uses
// @Tags tenants
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Router /tenants [get]
func (h *ReportController) ListTenants(c *fiber.Ctx) error {
	ctx, cancel := h.ctx(c)
	defer cancel()

	tenants, err := h.reports.Tenants(ctx)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": tenants})
}

// TenantStructure godoc
// @Summary Describe a tenant database
// @Tags tenants
// @Produce json
// @Security BearerAuth
// @Param id path string true "Tenant ID"
// @Param sample query int false "Documents sampled per collection" default(3)
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /tenants/{id}/structure [get]
func (h *ReportController) TenantStructure(c *fiber.Ctx) error {
	sample, err := intQuery(c, "sample", 3)
	if err != nil {
		return badRequest(c, err.Error())
	}
	if sample < 1 || sample > 100 {
		return badRequest(c, "sample must be between 1 and 100")
	}
	ctx, cancel := h.ctx(c)
	defer cancel()

	st, err := h.reports.Structure(ctx, c.Params("id"), int64(sample))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": st})
}

// TenantQuality godoc
// @Summary Employee data-quality report
// @Tags tenants
// @Produce json
// @Security BearerAuth
// @Param id path string true "Tenant ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /tenants/{id}/quality [get]
func (h *ReportController) TenantQuality(c *fiber.Ctx) error {
	ctx, cancel := h.ctx(c)
	defer cancel()

	report, err := h.reports.Quality(ctx, c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": report})
}

// TenantReconcile godoc
// @Summary Reconcile plan for users, employees and offboardings
// @Description Computes the plan only; fixes are applied from the CLI
// @Tags tenants
// @Produce json
// @Security BearerAuth
// @Param id path string true "Tenant ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /tenants/{id}/reconcile [get]
func (h *ReportController) TenantReconcile(c *fiber.Ctx) error {
	ctx, cancel := h.ctx(c)
	defer cancel()

	plan, err := h.reports.Reconcile(ctx, c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    plan,
		"fixes":   len(plan.Fixes()),
	})
}

// TenantJobs godoc
// @Summary Job postings of a tenant
// @Tags tenants
// @Produce json
// @Security BearerAuth
// @Param id path string true "Tenant ID"
// @Param limit query int false "Page size" default(50)
// @Param cursor query string false "Next cursor of the previous page"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /tenants/{id}/jobs [get]
func (h *ReportController) TenantJobs(c *fiber.Ctx) error {
	limit, err := intQuery(c, "limit", defaultPageSize)
	if err != nil {
		return badRequest(c, err.Error())
	}
	if limit < 1 || limit > maxPageSize {
		return badRequest(c, fmt.Sprintf("limit must be between 1 and %d", maxPageSize))
	}
	ctx, cancel := h.ctx(c)
	defer cancel()

	page, err := h.reports.Jobs(ctx, c.Params("id"), int64(limit), c.Query("cursor"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{
		"success":    true,
		"count":      len(page.Jobs),
		"data":       page.Jobs,
		"nextCursor": page.Next,
	})
}
