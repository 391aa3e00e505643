package api

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/lunarialabs/lunaria/internal/services"
)

func (handler *Handler) GetPredictions(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	overview, err := handler.cycleService.Overview(user.ID, handler.now())
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load predictions")
	}
	return c.JSON(viewFromOverview(overview.Predictions, overview.CycleDay, overview.Phase))
}

func (handler *Handler) GetCalendar(c *fiber.Ctx) error {
	user, _ := currentUser(c)

	monthStart, err := parseMonth(c.Query("month"), handler.now())
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid month")
	}

	tracker, err := handler.cycleService.TrackerForUser(user.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load calendar")
	}

	days := services.BuildMonthGrid(monthStart, tracker, handler.now())
	return c.JSON(fiber.Map{
		"month": monthStart.Format("2006-01"),
		"days":  days,
	})
}

func parseMonth(value string, now time.Time) (time.Time, error) {
	if value == "" {
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()), nil
	}
	parsed, err := time.Parse("2006-01", value)
	if err != nil {
		return time.Time{}, err
	}
	return parsed, nil
}

func (handler *Handler) GetWeather(c *fiber.Ctx) error {
	if handler.weather == nil {
		return apiError(c, fiber.StatusServiceUnavailable, "weather unavailable")
	}
	report, err := handler.weather.Current(c.Context())
	if err != nil && report.FetchedAt.IsZero() {
		return apiError(c, fiber.StatusServiceUnavailable, "weather unavailable")
	}
	return c.JSON(report)
}

func (handler *Handler) exportEntries(c *fiber.Ctx) ([]services.ExportEntry, error) {
	user, _ := currentUser(c)
	tracker, err := handler.cycleService.TrackerForUser(user.ID)
	if err != nil {
		return nil, err
	}
	return handler.exports.BuildEntries(tracker.Records()), nil
}

func (handler *Handler) ExportSummary(c *fiber.Ctx) error {
	entries, err := handler.exportEntries(c)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to build export")
	}
	return c.JSON(handler.exports.Summarize(entries))
}

func (handler *Handler) ExportJSON(c *fiber.Ctx) error {
	entries, err := handler.exportEntries(c)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to build export")
	}
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="lunaria-export.json"`)
	return c.JSON(fiber.Map{"entries": entries})
}

func (handler *Handler) ExportCSV(c *fiber.Ctx) error {
	entries, err := handler.exportEntries(c)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to build export")
	}

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="lunaria-export.csv"`)

	buffer := c.Response().BodyWriter()
	if err := handler.exports.WriteCSV(buffer, entries); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to write csv")
	}
	return nil
}
