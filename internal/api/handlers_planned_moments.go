package api

import (
	"sort"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/moments/internal/models"
	"github.com/terraincognita07/moments/internal/services"
)

func (handler *Handler) ListPlannedMoments(c *fiber.Ctx) error {
	var moments []models.PlannedMoment
	if c.Query("order") == "recent" {
		moments = handler.plannedMoments.LoadAllMostRecentFirst()
	} else {
		moments = handler.plannedMoments.LoadAll()
	}
	return c.JSON(fiber.Map{"plannedMoments": moments})
}

func (handler *Handler) CreatePlannedMoment(c *fiber.Ctx) error {
	input := models.PlannedMomentInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, services.FailureInvalidInput)
	}

	moment, err := handler.plannedMoments.Save(input)
	if err != nil {
		return handler.storeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(moment)
}

func (handler *Handler) DeletePlannedMoment(c *fiber.Ctx) error {
	deleted, err := handler.plannedMoments.Delete(c.Params("id"))
	if err != nil {
		return handler.storeError(c, err)
	}
	return c.JSON(fiber.Map{"deleted": deleted})
}

func (handler *Handler) PlannedMomentDates(c *fiber.Ctx) error {
	dateSet := handler.plannedMoments.GetDatesWithMoments()
	dates := make([]string, 0, len(dateSet))
	for date := range dateSet {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	return c.JSON(fiber.Map{
		"dates":  dates,
		"colors": handler.plannedMoments.GetColorMap(),
	})
}

func (handler *Handler) PlannedMomentsOnDate(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"plannedMoments": handler.plannedMoments.GetForDate(c.Params("date"))})
}

func (handler *Handler) SharePlannedMoment(c *fiber.Ctx) error {
	moment, ok := handler.plannedMoments.GetByID(c.Params("id"))
	if !ok {
		return apiError(c, fiber.StatusNotFound, services.FailureNotFound)
	}

	displayName := ""
	if profile, err := handler.profiles.Load(); err == nil {
		displayName = profile.DisplayName
	}
	return c.JSON(fiber.Map{"text": services.PlannedMomentShareText(moment, displayName)})
}

// PlannedMomentCalendar returns the month grid for ?month=YYYY-MM, defaulting
// to the current month.
func (handler *Handler) PlannedMomentCalendar(c *fiber.Ctx) error {
	now := time.Now().In(handler.location)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, handler.location)
	if raw := strings.TrimSpace(c.Query("month")); raw != "" {
		parsed, err := services.ParseMonth(raw, handler.location)
		if err != nil {
			return handler.storeError(c, err)
		}
		monthStart = parsed
	}

	days := services.BuildCalendarDayStates(monthStart, handler.plannedMoments.GetDatesWithMoments(), now)
	return c.JSON(fiber.Map{"month": monthStart.Format("2006-01"), "days": days})
}

// PlannedMomentWeek returns the Sunday-first week containing ?date=YYYY-MM-DD,
// defaulting to today.
func (handler *Handler) PlannedMomentWeek(c *fiber.Ctx) error {
	now := time.Now().In(handler.location)
	day := now
	if raw := strings.TrimSpace(c.Query("date")); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, handler.location)
		if err != nil {
			return apiError(c, fiber.StatusBadRequest, services.FailureInvalidInput)
		}
		day = parsed
	}

	days := services.BuildWeekDayStates(day, handler.plannedMoments.GetDatesWithMoments(), now)
	return c.JSON(fiber.Map{"days": days})
}
