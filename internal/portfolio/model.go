package portfolio

import "time"

// Asset types.
const (
	AssetCash           = "cash"
	AssetBankAccount    = "bank_account"
	AssetInvestment     = "investment"
	AssetRealEstate     = "real_estate"
	AssetVehicle        = "vehicle"
	AssetCryptocurrency = "cryptocurrency"
	AssetStock          = "stock"
	AssetBond           = "bond"
	AssetMutualFund     = "mutual_fund"
	AssetETF            = "etf"
	AssetRetirement     = "retirement"
	AssetOther          = "other"
)

// Asset statuses.
const (
	AssetStatusActive   = "active"
	AssetStatusInactive = "inactive"
	AssetStatusPending  = "pending"
	AssetStatusSold     = "sold"
)

// Debt types.
const (
	DebtCreditCard   = "credit_card"
	DebtStudentLoan  = "student_loan"
	DebtMortgage     = "mortgage"
	DebtAutoLoan     = "auto_loan"
	DebtPersonalLoan = "personal_loan"
	DebtBusinessLoan = "business_loan"
	DebtLineOfCredit = "line_of_credit"
	DebtMedicalDebt  = "medical_debt"
	DebtOther        = "other"
)

// Debt statuses.
const (
	DebtStatusCurrent = "current"
	DebtStatusPastDue = "past_due"
	DebtStatusDefault = "default"
	DebtStatusPaidOff = "paid_off"
	DebtStatusSettled = "settled"
)

// Payment frequencies.
const (
	FrequencyWeekly    = "weekly"
	FrequencyBiWeekly  = "bi_weekly"
	FrequencyMonthly   = "monthly"
	FrequencyQuarterly = "quarterly"
	FrequencyAnnually  = "annually"
)

// Asset is a holding in a user's net-worth portfolio. Monetary values are
// minor units (cents).
type Asset struct {
	ID                    string
	UserID                string
	Name                  string
	Type                  string
	Status                string
	ValueCents            int64
	AcquisitionValueCents int64
	CurrentValueCents     int64
	Currency              string
	Institution           string
	Notes                 string
	AcquisitionDate       *time.Time
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// CurrentWorth returns the most recent valuation, falling back to the
// recorded value when no revaluation happened.
func (a Asset) CurrentWorth() int64 {
	if a.CurrentValueCents != 0 {
		return a.CurrentValueCents
	}
	return a.ValueCents
}

// Debt is an outstanding liability.
type Debt struct {
	ID                  string
	UserID              string
	Name                string
	Type                string
	Status              string
	OriginalAmountCents int64
	CurrentBalanceCents int64
	MinimumPaymentCents int64
	InterestRate        float64
	PaymentFrequency    string
	Lender              string
	Notes               string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// AssetInput carries client-settable asset fields.
type AssetInput struct {
	Name             string
	Type             string
	Status           string
	Value            float64
	AcquisitionValue float64
	CurrentValue     float64
	Currency         string
	Institution      string
	Notes            string
	AcquisitionDate  string
}

// DebtInput carries client-settable debt fields.
type DebtInput struct {
	Name             string
	Type             string
	Status           string
	OriginalAmount   float64
	CurrentBalance   float64
	MinimumPayment   float64
	InterestRate     float64
	PaymentFrequency string
	Lender           string
	Notes            string
}

func validAssetType(value string) bool {
	switch value {
	case AssetCash, AssetBankAccount, AssetInvestment, AssetRealEstate, AssetVehicle,
		AssetCryptocurrency, AssetStock, AssetBond, AssetMutualFund, AssetETF,
		AssetRetirement, AssetOther:
		return true
	default:
		return false
	}
}

func validAssetStatus(value string) bool {
	switch value {
	case AssetStatusActive, AssetStatusInactive, AssetStatusPending, AssetStatusSold:
		return true
	default:
		return false
	}
}

func validDebtType(value string) bool {
	switch value {
	case DebtCreditCard, DebtStudentLoan, DebtMortgage, DebtAutoLoan, DebtPersonalLoan,
		DebtBusinessLoan, DebtLineOfCredit, DebtMedicalDebt, DebtOther:
		return true
	default:
		return false
	}
}

func validDebtStatus(value string) bool {
	switch value {
	case DebtStatusCurrent, DebtStatusPastDue, DebtStatusDefault, DebtStatusPaidOff, DebtStatusSettled:
		return true
	default:
		return false
	}
}

func validFrequency(value string) bool {
	switch value {
	case FrequencyWeekly, FrequencyBiWeekly, FrequencyMonthly, FrequencyQuarterly, FrequencyAnnually:
		return true
	default:
		return false
	}
}
