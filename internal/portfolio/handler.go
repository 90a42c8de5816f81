package portfolio

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/financia-ai/financia/internal/apperr"
	"github.com/financia-ai/financia/internal/middleware"
	"github.com/financia-ai/financia/internal/money"
)

// Handler exposes asset and debt HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler builds a portfolio HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type assetRequest struct {
	Name             string  `json:"name"`
	Type             string  `json:"type"`
	Status           string  `json:"status"`
	Value            float64 `json:"value"`
	AcquisitionValue float64 `json:"acquisition_value"`
	CurrentValue     float64 `json:"current_value"`
	Currency         string  `json:"currency"`
	Institution      string  `json:"institution"`
	Notes            string  `json:"notes"`
	AcquisitionDate  string  `json:"acquisition_date"`
}

type assetResponse struct {
	ID               string    `json:"id"`
	UserID           string    `json:"user_id"`
	Name             string    `json:"name"`
	Type             string    `json:"type"`
	Status           string    `json:"status"`
	Value            float64   `json:"value"`
	AcquisitionValue float64   `json:"acquisition_value"`
	CurrentValue     float64   `json:"current_value"`
	CurrentWorth     float64   `json:"current_worth"`
	Currency         string    `json:"currency,omitempty"`
	Institution      string    `json:"institution,omitempty"`
	Notes            string    `json:"notes,omitempty"`
	AcquisitionDate  *string   `json:"acquisition_date"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type debtRequest struct {
	Name             string  `json:"name"`
	Type             string  `json:"type"`
	Status           string  `json:"status"`
	OriginalAmount   float64 `json:"original_amount"`
	CurrentBalance   float64 `json:"current_balance"`
	MinimumPayment   float64 `json:"minimum_payment"`
	InterestRate     float64 `json:"interest_rate"`
	PaymentFrequency string  `json:"payment_frequency"`
	Lender           string  `json:"lender"`
	Notes            string  `json:"notes"`
}

type debtResponse struct {
	ID               string    `json:"id"`
	UserID           string    `json:"user_id"`
	Name             string    `json:"name"`
	Type             string    `json:"type"`
	Status           string    `json:"status"`
	OriginalAmount   float64   `json:"original_amount"`
	CurrentBalance   float64   `json:"current_balance"`
	MinimumPayment   float64   `json:"minimum_payment"`
	InterestRate     float64   `json:"interest_rate"`
	PaymentFrequency string    `json:"payment_frequency"`
	Lender           string    `json:"lender,omitempty"`
	Notes            string    `json:"notes,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func toAssetResponse(asset Asset) assetResponse {
	var acquired *string
	if asset.AcquisitionDate != nil {
		formatted := asset.AcquisitionDate.Format(dateLayout)
		acquired = &formatted
	}
	return assetResponse{
		ID:               asset.ID,
		UserID:           asset.UserID,
		Name:             asset.Name,
		Type:             asset.Type,
		Status:           asset.Status,
		Value:            money.FromCents(asset.ValueCents),
		AcquisitionValue: money.FromCents(asset.AcquisitionValueCents),
		CurrentValue:     money.FromCents(asset.CurrentValueCents),
		CurrentWorth:     money.FromCents(asset.CurrentWorth()),
		Currency:         asset.Currency,
		Institution:      asset.Institution,
		Notes:            asset.Notes,
		AcquisitionDate:  acquired,
		CreatedAt:        asset.CreatedAt,
		UpdatedAt:        asset.UpdatedAt,
	}
}

func toDebtResponse(debt Debt) debtResponse {
	return debtResponse{
		ID:               debt.ID,
		UserID:           debt.UserID,
		Name:             debt.Name,
		Type:             debt.Type,
		Status:           debt.Status,
		OriginalAmount:   money.FromCents(debt.OriginalAmountCents),
		CurrentBalance:   money.FromCents(debt.CurrentBalanceCents),
		MinimumPayment:   money.FromCents(debt.MinimumPaymentCents),
		InterestRate:     debt.InterestRate,
		PaymentFrequency: debt.PaymentFrequency,
		Lender:           debt.Lender,
		Notes:            debt.Notes,
		CreatedAt:        debt.CreatedAt,
		UpdatedAt:        debt.UpdatedAt,
	}
}

func (r assetRequest) input() AssetInput {
	return AssetInput{
		Name:             r.Name,
		Type:             r.Type,
		Status:           r.Status,
		Value:            r.Value,
		AcquisitionValue: r.AcquisitionValue,
		CurrentValue:     r.CurrentValue,
		Currency:         r.Currency,
		Institution:      r.Institution,
		Notes:            r.Notes,
		AcquisitionDate:  r.AcquisitionDate,
	}
}

func (r debtRequest) input() DebtInput {
	return DebtInput{
		Name:             r.Name,
		Type:             r.Type,
		Status:           r.Status,
		OriginalAmount:   r.OriginalAmount,
		CurrentBalance:   r.CurrentBalance,
		MinimumPayment:   r.MinimumPayment,
		InterestRate:     r.InterestRate,
		PaymentFrequency: r.PaymentFrequency,
		Lender:           r.Lender,
		Notes:            r.Notes,
	}
}

type netWorthResponse struct {
	TotalAssets float64 `json:"total_assets"`
	TotalDebts  float64 `json:"total_debts"`
	NetWorth    float64 `json:"net_worth"`
}

type debtOverviewResponse struct {
	TotalDebt           float64            `json:"total_debt"`
	MonthlyPayments     float64            `json:"monthly_payments"`
	AverageInterestRate float64            `json:"average_interest_rate"`
	DebtTypes           map[string]float64 `json:"debt_types"`
}

// NetWorth reports the caller's total assets, total debts and their difference.
func (h *Handler) NetWorth(c *fiber.Ctx) error {
	user, ok := middleware.UserFromCtx(c)
	if !ok {
		return apperr.Unauthorizedf("missing identity")
	}
	nw, err := h.service.ComputeNetWorth(c.UserContext(), user.ID)
	if err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(netWorthResponse{
		TotalAssets: money.FromCents(nw.TotalAssetsCents),
		TotalDebts:  money.FromCents(nw.TotalDebtsCents),
		NetWorth:    money.FromCents(nw.NetWorthCents),
	})
}

// DebtOverview reports the caller's outstanding debt summary.
func (h *Handler) DebtOverview(c *fiber.Ctx) error {
	user, ok := middleware.UserFromCtx(c)
	if !ok {
		return apperr.Unauthorizedf("missing identity")
	}
	overview, err := h.service.ComputeDebtOverview(c.UserContext(), user.ID)
	if err != nil {
		return err
	}
	types := make(map[string]float64, len(overview.DebtTypeCents))
	for debtType, cents := range overview.DebtTypeCents {
		types[debtType] = money.FromCents(cents)
	}
	return c.Status(http.StatusOK).JSON(debtOverviewResponse{
		TotalDebt:           money.FromCents(overview.TotalDebtCents),
		MonthlyPayments:     money.FromCents(overview.MonthlyPaymentsCents),
		AverageInterestRate: overview.AverageInterestRate,
		DebtTypes:           types,
	})
}

// ListAssets returns the caller's assets.
func (h *Handler) ListAssets(c *fiber.Ctx) error {
	user, ok := middleware.UserFromCtx(c)
	if !ok {
		return apperr.Unauthorizedf("missing identity")
	}
	assets, err := h.service.ListAssets(c.UserContext(), user.ID, c.Query("type"), c.Query("status"))
	if err != nil {
		return err
	}
	out := make([]assetResponse, 0, len(assets))
	for _, asset := range assets {
		out = append(out, toAssetResponse(asset))
	}
	return c.Status(http.StatusOK).JSON(out)
}

// GetAsset returns one asset the caller owns.
func (h *Handler) GetAsset(c *fiber.Ctx) error {
	user, ok := middleware.UserFromCtx(c)
	if !ok {
		return apperr.Unauthorizedf("missing identity")
	}
	asset, err := h.service.GetAsset(c.UserContext(), user.ID, c.Params("assetId"))
	if err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(toAssetResponse(asset))
}

// CreateAsset stores an asset owned by the caller.
func (h *Handler) CreateAsset(c *fiber.Ctx) error {
	user, ok := middleware.UserFromCtx(c)
	if !ok {
		return apperr.Unauthorizedf("missing identity")
	}
	var req assetRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Validationf("invalid request body")
	}
	asset, err := h.service.CreateAsset(c.UserContext(), user.ID, req.input())
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(toAssetResponse(asset))
}

// UpdateAsset rewrites an asset the caller owns.
func (h *Handler) UpdateAsset(c *fiber.Ctx) error {
	user, ok := middleware.UserFromCtx(c)
	if !ok {
		return apperr.Unauthorizedf("missing identity")
	}
	var req assetRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Validationf("invalid request body")
	}
	asset, err := h.service.UpdateAsset(c.UserContext(), user.ID, c.Params("assetId"), req.input())
	if err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(toAssetResponse(asset))
}

// DeleteAsset removes an asset the caller owns.
func (h *Handler) DeleteAsset(c *fiber.Ctx) error {
	user, ok := middleware.UserFromCtx(c)
	if !ok {
		return apperr.Unauthorizedf("missing identity")
	}
	if err := h.service.DeleteAsset(c.UserContext(), user.ID, c.Params("assetId")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// ListDebts returns the caller's debts.
func (h *Handler) ListDebts(c *fiber.Ctx) error {
	user, ok := middleware.UserFromCtx(c)
	if !ok {
		return apperr.Unauthorizedf("missing identity")
	}
	debts, err := h.service.ListDebts(c.UserContext(), user.ID, c.Query("type"), c.Query("status"))
	if err != nil {
		return err
	}
	out := make([]debtResponse, 0, len(debts))
	for _, debt := range debts {
		out = append(out, toDebtResponse(debt))
	}
	return c.Status(http.StatusOK).JSON(out)
}

// GetDebt returns one debt the caller owns.
func (h *Handler) GetDebt(c *fiber.Ctx) error {
	user, ok := middleware.UserFromCtx(c)
	if !ok {
		return apperr.Unauthorizedf("missing identity")
	}
	debt, err := h.service.GetDebt(c.UserContext(), user.ID, c.Params("debtId"))
	if err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(toDebtResponse(debt))
}

// CreateDebt stores a debt owned by the caller.
func (h *Handler) CreateDebt(c *fiber.Ctx) error {
	user, ok := middleware.UserFromCtx(c)
	if !ok {
		return apperr.Unauthorizedf("missing identity")
	}
	var req debtRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Validationf("invalid request body")
	}
	debt, err := h.service.CreateDebt(c.UserContext(), user.ID, req.input())
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(toDebtResponse(debt))
}

// UpdateDebt rewrites a debt the caller owns.
func (h *Handler) UpdateDebt(c *fiber.Ctx) error {
	user, ok := middleware.UserFromCtx(c)
	if !ok {
		return apperr.Unauthorizedf("missing identity")
	}
	var req debtRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Validationf("invalid request body")
	}
	debt, err := h.service.UpdateDebt(c.UserContext(), user.ID, c.Params("debtId"), req.input())
	if err != nil {
		return err
	}
	return c.Status(http.StatusOK).JSON(toDebtResponse(debt))
}

// DeleteDebt removes a debt the caller owns.
func (h *Handler) DeleteDebt(c *fiber.Ctx) error {
	user, ok := middleware.UserFromCtx(c)
	if !ok {
		return apperr.Unauthorizedf("missing identity")
	}
	if err := h.service.DeleteDebt(c.UserContext(), user.ID, c.Params("debtId")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
