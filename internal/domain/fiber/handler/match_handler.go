package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rizalfahlevi/intern-outreach/internal/dto"
	"github.com/rizalfahlevi/intern-outreach/internal/response"
	"github.com/rizalfahlevi/intern-outreach/internal/usecase"
	"github.com/rizalfahlevi/intern-outreach/internal/util"
)

type MatchHandler struct {
	uc *usecase.MatchingUsecase
}

func NewMatchHandler(uc *usecase.MatchingUsecase) *MatchHandler {
	return &MatchHandler{uc: uc}
}

func (h *MatchHandler) RegisterRoutes(app *fiber.App) {
	app.Post("/api/matches/recompute/:candidateId", h.RecomputeForCandidate)
	app.Post("/api/matches/recompute", h.RecomputeAll)
	app.Get("/api/matches/:candidateId", h.TopMatches)
	app.Post("/api/candidates/:id/extract-skills", h.ExtractSkills)
}

func (h *MatchHandler) RecomputeForCandidate(c *fiber.Ctx) error {
	candidateID, err := uuid.Parse(c.Params("candidateId"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid candidate id",
		}, err)
	}

	created, err := h.uc.RecomputeForCandidate(c.Context(), candidateID)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to recompute matches",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Matches recomputed",
		Data:    fiber.Map{"candidate_id": candidateID, "matches_created": created},
	})
}

func (h *MatchHandler) RecomputeAll(c *fiber.Ctx) error {
	summary, err := h.uc.RecomputeAll(c.Context())
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to recompute matches",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Batch recompute finished",
		Data:    summary,
	})
}

func (h *MatchHandler) TopMatches(c *fiber.Ctx) error {
	candidateID, err := uuid.Parse(c.Params("candidateId"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid candidate id",
		}, err)
	}
	limit := c.QueryInt("limit", 10)

	matches, err := h.uc.TopMatches(candidateID, limit)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to load matches",
		}, err)
	}

	data := make([]dto.MatchDTO, 0, len(matches))
	for _, m := range matches {
		data = append(data, dto.NewMatchDTO(m))
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message:    "Success get top matches",
		Data:       data,
		Pagination: response.NewPagination(limit, len(data)),
	})
}

func (h *MatchHandler) ExtractSkills(c *fiber.Ctx) error {
	candidateID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid candidate id",
		}, err)
	}

	skills, err := h.uc.ExtractCandidateSkills(c.Context(), candidateID)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to extract skills",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success extract skills",
		Data:    skills,
	})
}
