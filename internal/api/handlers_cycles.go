package api

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/lunarialabs/lunaria/internal/cycle"
)

type logPeriodInput struct {
	Date string `json:"date"`
	Flow string `json:"flow"`
}

type toggleInput struct {
	Date string `json:"date"`
	Name string `json:"name"`
}

type endPeriodInput struct {
	Date string `json:"date"`
}

func (handler *Handler) GetCycles(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	overview, err := handler.cycleService.Overview(user.ID, handler.now())
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load cycles")
	}

	views := make([]cycleView, 0, len(overview.Cycles))
	for _, record := range overview.Cycles {
		views = append(views, viewFromRecord(record))
	}

	payload := fiber.Map{"cycles": views}
	if overview.Current != nil {
		payload["current"] = viewFromRecord(*overview.Current)
	}
	return c.JSON(payload)
}

func (handler *Handler) GetCurrentCycle(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	overview, err := handler.cycleService.Overview(user.ID, handler.now())
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load cycles")
	}
	if overview.Current == nil {
		return apiError(c, fiber.StatusNotFound, "no active cycle")
	}
	return c.JSON(viewFromRecord(*overview.Current))
}

func (handler *Handler) LogPeriod(c *fiber.Ctx) error {
	user, _ := currentUser(c)

	input := logPeriodInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	day, err := cycle.ParseDay(input.Date)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}
	flow, err := cycle.ParseFlow(input.Flow)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid flow")
	}

	record, err := handler.cycleService.LogPeriod(user.ID, day, flow)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to log period")
	}
	return c.JSON(fiber.Map{"outcome": cycle.OutcomeApplied.String(), "cycle": viewFromRecord(record)})
}

func (handler *Handler) LogSymptom(c *fiber.Ctx) error {
	return handler.toggleEntry(c, handler.cycleService.LogSymptom)
}

func (handler *Handler) LogMood(c *fiber.Ctx) error {
	return handler.toggleEntry(c, handler.cycleService.LogMood)
}

func (handler *Handler) toggleEntry(c *fiber.Ctx, apply func(uint, time.Time, string) (cycle.Record, cycle.Outcome, error)) error {
	user, _ := currentUser(c)

	input := toggleInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	if input.Name == "" {
		return apiError(c, fiber.StatusBadRequest, "name is required")
	}
	day, err := cycle.ParseDay(input.Date)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}

	record, outcome, err := apply(user.ID, day, input.Name)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to save log")
	}
	if outcome == cycle.OutcomeNoOpenCycle {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"outcome": outcome.String(), "error": "no active cycle"})
	}
	return c.JSON(fiber.Map{"outcome": outcome.String(), "cycle": viewFromRecord(record)})
}

func (handler *Handler) EndPeriod(c *fiber.Ctx) error {
	user, _ := currentUser(c)

	input := endPeriodInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	day, err := cycle.ParseDay(input.Date)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}

	record, outcome, err := handler.cycleService.EndPeriod(user.ID, day)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to end period")
	}
	switch outcome {
	case cycle.OutcomeNoOpenCycle:
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"outcome": outcome.String(), "error": "no active cycle"})
	case cycle.OutcomeDateBeforeStart:
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"outcome": outcome.String(), "error": "end date before cycle start"})
	}
	return c.JSON(fiber.Map{"outcome": outcome.String(), "cycle": viewFromRecord(record)})
}

func (handler *Handler) GetDayLog(c *fiber.Ctx) error {
	user, _ := currentUser(c)

	day, err := cycle.ParseDay(c.Params("date"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}

	entry, found, err := handler.cycleService.DayLog(user.ID, day)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load day log")
	}
	if !found {
		return apiError(c, fiber.StatusNotFound, "no log for this date")
	}
	return c.JSON(viewFromDayLog(entry))
}
