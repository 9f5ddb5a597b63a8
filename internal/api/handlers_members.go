package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terramonte/ridgeline/internal/models"
	"github.com/terramonte/ridgeline/internal/services"
)

func (handler *Handler) ListMembers(c *fiber.Ctx) error {
	members, err := handler.membership.List()
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(members)
}

func (handler *Handler) RegisterMember(c *fiber.Ctx) error {
	var input services.NewMemberInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	member, err := handler.membership.Register(input)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(member)
}

func (handler *Handler) GetMember(c *fiber.Ctx) error {
	memberID, err := parseIDParam(c, "id")
	if err != nil {
		return serviceError(c, err)
	}

	snapshot, err := handler.membership.Snapshot(memberID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(snapshot)
}

func (handler *Handler) GetMemberPeriods(c *fiber.Ctx) error {
	memberID, err := parseIDParam(c, "id")
	if err != nil {
		return serviceError(c, err)
	}

	periods, err := handler.periods.Periods(memberID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(periods)
}

type periodInput struct {
	StartDate string  `json:"start_date"`
	EndDate   *string `json:"end_date"`
	EndReason *string `json:"end_reason"`
}

type replacePeriodsInput struct {
	Periods []periodInput `json:"periods"`
}

func (handler *Handler) ReplaceMemberPeriods(c *fiber.Ctx) error {
	memberID, err := parseIDParam(c, "id")
	if err != nil {
		return serviceError(c, err)
	}

	var input replacePeriodsInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	periods := make([]models.MembershipPeriod, 0, len(input.Periods))
	for _, raw := range input.Periods {
		period, err := buildPeriod(raw)
		if err != nil {
			return serviceError(c, err)
		}
		periods = append(periods, period)
	}

	replaced, err := handler.periods.ReplaceAll(memberID, periods)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(replaced)
}

func buildPeriod(raw periodInput) (models.MembershipPeriod, error) {
	start, err := services.ParseStoredDate(raw.StartDate, nil)
	if err != nil {
		return models.MembershipPeriod{}, err
	}

	period := models.MembershipPeriod{StartDate: start, EndReason: raw.EndReason}
	if raw.EndDate != nil {
		end, err := services.ParseStoredDate(*raw.EndDate, nil)
		if err != nil {
			return models.MembershipPeriod{}, err
		}
		period.EndDate = &end
	}
	return period, nil
}

type openPeriodInput struct {
	StartDate string `json:"start_date"`
}

func (handler *Handler) OpenMemberPeriod(c *fiber.Ctx) error {
	memberID, err := parseIDParam(c, "id")
	if err != nil {
		return serviceError(c, err)
	}

	var input openPeriodInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	start, err := services.ParseStoredDate(input.StartDate, nil)
	if err != nil {
		return serviceError(c, err)
	}

	period, err := handler.periods.Create(memberID, start)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(period)
}

type closePeriodInput struct {
	EndDate   string `json:"end_date"`
	EndReason string `json:"end_reason"`
}

func (handler *Handler) ClosePeriod(c *fiber.Ctx) error {
	periodID, err := parseIDParam(c, "id")
	if err != nil {
		return serviceError(c, err)
	}

	var input closePeriodInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	end, err := services.ParseStoredDate(input.EndDate, nil)
	if err != nil {
		return serviceError(c, err)
	}

	period, err := handler.periods.Close(periodID, end, input.EndReason)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(period)
}

type feePaymentInput struct {
	PaymentDate  string `json:"payment_date"`
	CreditedYear int    `json:"credited_year"`
}

func (handler *Handler) RecordFeePayment(c *fiber.Ctx) error {
	memberID, err := parseIDParam(c, "id")
	if err != nil {
		return serviceError(c, err)
	}

	var input feePaymentInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	receipt, err := handler.fees.RecordPayment(memberID, input.PaymentDate, input.CreditedYear)
	if err != nil {
		return serviceError(c, err)
	}

	snapshot, err := handler.membership.Snapshot(memberID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"receipt": receipt, "member": snapshot})
}

type assignCardInput struct {
	CardNumber string `json:"card_number"`
}

func (handler *Handler) AssignCard(c *fiber.Ctx) error {
	memberID, err := parseIDParam(c, "id")
	if err != nil {
		return serviceError(c, err)
	}

	var input assignCardInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	details, err := handler.fees.AssignCard(memberID, input.CardNumber)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(details)
}

type stampsInput struct {
	CardStampIssued     bool `json:"card_stamp_issued"`
	NextYearStampIssued bool `json:"next_year_stamp_issued"`
}

func (handler *Handler) SetStamps(c *fiber.Ctx) error {
	memberID, err := parseIDParam(c, "id")
	if err != nil {
		return serviceError(c, err)
	}

	var input stampsInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	details, err := handler.fees.SetStamps(memberID, input.CardStampIssued, input.NextYearStampIssued)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(details)
}

func (handler *Handler) GetMemberHours(c *fiber.Ctx) error {
	memberID, err := parseIDParam(c, "id")
	if err != nil {
		return serviceError(c, err)
	}

	var year *int
	if raw := c.Query("year"); raw != "" {
		value := c.QueryInt("year")
		if value <= 0 {
			return apiError(c, fiber.StatusBadRequest, "invalid year")
		}
		year = &value
	}

	summary, err := handler.activities.MemberHours(memberID, year)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(summary)
}
