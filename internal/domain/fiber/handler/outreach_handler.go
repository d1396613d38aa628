package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rizalfahlevi/intern-outreach/internal/dto"
	"github.com/rizalfahlevi/intern-outreach/internal/middleware"
	"github.com/rizalfahlevi/intern-outreach/internal/usecase"
	"github.com/rizalfahlevi/intern-outreach/internal/util"
)

type OutreachHandler struct {
	outreach *usecase.OutreachUsecase
	followUp *usecase.FollowUpUsecase
}

func NewOutreachHandler(outreach *usecase.OutreachUsecase, followUp *usecase.FollowUpUsecase) *OutreachHandler {
	return &OutreachHandler{outreach: outreach, followUp: followUp}
}

func (h *OutreachHandler) RegisterRoutes(app *fiber.App) {
	// Batch runs are expensive; keep trigger-happy cron glue in check.
	batchLimiter := middleware.RateLimiter(2, 1*time.Minute)
	app.Post("/api/outreach/run", batchLimiter, h.RunBatch)
	app.Post("/api/outreach/run-urgent", batchLimiter, h.RunUrgentBatch)
	app.Post("/api/followups/process", batchLimiter, h.ProcessFollowUps)
	app.Post("/api/outreach/:logId/response", h.MarkResponse)
}

func (h *OutreachHandler) RunBatch(c *fiber.Ctx) error {
	maxRoles := c.QueryInt("max_roles", 0)
	dryRun := c.QueryBool("dry_run", false)

	summary, err := h.outreach.RunBatch(c.Context(), maxRoles, dryRun)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to run outreach batch",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Outreach batch finished",
		Data:    summary,
	})
}

func (h *OutreachHandler) RunUrgentBatch(c *fiber.Ctx) error {
	maxRoles := c.QueryInt("max_roles", 0)

	summary, err := h.outreach.RunUrgentBatch(c.Context(), maxRoles)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to run urgent outreach batch",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Urgent outreach batch finished",
		Data:    summary,
	})
}

func (h *OutreachHandler) ProcessFollowUps(c *fiber.Ctx) error {
	summary, err := h.followUp.ProcessPending(c.Context())
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to process follow-ups",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Follow-up sweep finished",
		Data:    summary,
	})
}

func (h *OutreachHandler) MarkResponse(c *fiber.Ctx) error {
	logID, err := uuid.Parse(c.Params("logId"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid outreach log id",
		}, err)
	}

	var req dto.MarkResponseRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid request body",
		}, err)
	}
	if req.ResponseType == "" {
		req.ResponseType = "replied"
	}

	if err := h.followUp.MarkResponseReceived(logID, req.ResponseType); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to mark response",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Response recorded",
		Data:    fiber.Map{"log_id": logID, "response_type": req.ResponseType},
	})
}
