package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BalanceFilter scopes a balance query. Empty slices mean "no filter". An
// explicit filter object replaces the session-stored report filters of older
// designs; there is no ambient state.
type BalanceFilter struct {
	BranchIDs    []string
	CompanyIDs   []string
	CurrencyCode *string // When set, aggregate native debit/credit of that currency only
}

// EntrySums holds raw aggregation results for one account: native and
// primary-currency totals computed in a single pass.
type EntrySums struct {
	AccountID     string
	Debit         decimal.Decimal // Native (transaction-currency) totals
	Credit        decimal.Decimal
	PrimaryDebit  decimal.Decimal // Stored converted totals
	PrimaryCredit decimal.Decimal
}

// PeriodSums holds the batch balance result for one account: totals up to the
// day before the period plus movement inside the period, from one query.
// Opening/Movement pairs carry native (transaction-currency) totals; the
// Primary pairs carry the stored converted totals over the same entry sets.
type PeriodSums struct {
	AccountID             string
	OpeningDebit          decimal.Decimal
	OpeningCredit         decimal.Decimal
	MovementDebit         decimal.Decimal
	MovementCredit        decimal.Decimal
	OpeningPrimaryDebit   decimal.Decimal
	OpeningPrimaryCredit  decimal.Decimal
	MovementPrimaryDebit  decimal.Decimal
	MovementPrimaryCredit decimal.Decimal
}

// CurrencyEntrySums holds aggregation results for one transaction currency
// over an entry set: native totals in that currency plus the stored converted
// totals of the same entries.
type CurrencyEntrySums struct {
	CurrencyCode  string
	Debit         decimal.Decimal
	Credit        decimal.Decimal
	PrimaryDebit  decimal.Decimal
	PrimaryCredit decimal.Decimal
}

// CurrencyPeriodSums holds opening and movement totals for one transaction
// currency over an entry set, native and converted, from one query.
type CurrencyPeriodSums struct {
	CurrencyCode          string
	OpeningDebit          decimal.Decimal
	OpeningCredit         decimal.Decimal
	MovementDebit         decimal.Decimal
	MovementCredit        decimal.Decimal
	OpeningPrimaryDebit   decimal.Decimal
	OpeningPrimaryCredit  decimal.Decimal
	MovementPrimaryDebit  decimal.Decimal
	MovementPrimaryCredit decimal.Decimal
}

// CurrencyBalance pairs an account's native balance in one currency with its
// primary-currency equivalent, both as of the same date.
type CurrencyBalance struct {
	CurrencyCode string          `json:"currencyCode"`
	Native       decimal.Decimal `json:"native"`
	Primary      decimal.Decimal `json:"primary"`
}

// AccountPeriodBalance is the batch balance result for one account: opening
// balance, signed period movement, and the ending balance implied by the two.
type AccountPeriodBalance struct {
	AccountID string          `json:"accountID"`
	Opening   decimal.Decimal `json:"opening"`
	Movement  decimal.Decimal `json:"movement"`
	Ending    decimal.Decimal `json:"ending"`
}

// GeneralLedgerRow is one dated entry line in a general ledger report.
type GeneralLedgerRow struct {
	JournalID      string          `json:"journalID"`
	JournalNumber  string          `json:"journalNumber"`
	JournalDate    time.Time       `json:"journalDate"`
	Description    string          `json:"description"`
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
	RunningBalance decimal.Decimal `json:"runningBalance"`
}

// GeneralLedgerAccount is the per-account section of a general ledger report.
type GeneralLedgerAccount struct {
	AccountID      string             `json:"accountID"`
	AccountCode    string             `json:"accountCode"`
	AccountName    string             `json:"accountName"`
	OpeningBalance decimal.Decimal    `json:"openingBalance"`
	Rows           []GeneralLedgerRow `json:"rows"`
	EndingBalance  decimal.Decimal    `json:"endingBalance"`
}

// CashBankBookCurrency shows one currency's native balances side by side with
// their primary-currency equivalents for a kas_bank account.
type CashBankBookCurrency struct {
	CurrencyCode   string          `json:"currencyCode"`
	Opening        decimal.Decimal `json:"opening"`
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
	Ending         decimal.Decimal `json:"ending"`
	PrimaryOpening decimal.Decimal `json:"primaryOpening"`
	PrimaryDebit   decimal.Decimal `json:"primaryDebit"`
	PrimaryCredit  decimal.Decimal `json:"primaryCredit"`
	PrimaryEnding  decimal.Decimal `json:"primaryEnding"`
}

// CashBankBookAccount is the per-account section of a cash/bank book report.
type CashBankBookAccount struct {
	AccountID   string                 `json:"accountID"`
	AccountCode string                 `json:"accountCode"`
	AccountName string                 `json:"accountName"`
	Currencies  []CashBankBookCurrency `json:"currencies"`
}

// TrialBalanceRow represents a single account row in a trial balance report.
type TrialBalanceRow struct {
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	IsParent    bool            `json:"isParent"`
	Opening     decimal.Decimal `json:"opening"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Closing     decimal.Decimal `json:"closing"`
}

// AgingBucket identifies how far past due an outstanding document is.
type AgingBucket string

const (
	BucketNotYetDue AgingBucket = "NOT_YET_DUE"
	Bucket1To30     AgingBucket = "1_30"
	Bucket31To60    AgingBucket = "31_60"
	Bucket61To90    AgingBucket = "61_90"
	BucketOver90    AgingBucket = "91_PLUS"
)

// AgingRow is one outstanding debt document in an aging report. Fully paid
// documents do not appear.
type AgingRow struct {
	DebtID      string          `json:"debtID"`
	Number      string          `json:"number"`
	ContactName string          `json:"contactName"`
	IssueDate   time.Time       `json:"issueDate"`
	DueDate     time.Time       `json:"dueDate"`
	Outstanding decimal.Decimal `json:"outstanding"`
	Bucket      AgingBucket     `json:"bucket"`
}

// AgingReport groups outstanding documents with per-bucket totals.
type AgingReport struct {
	AsOf    time.Time                       `json:"asOf"`
	Rows    []AgingRow                      `json:"rows"`
	Totals  map[AgingBucket]decimal.Decimal `json:"totals"`
	Overall decimal.Decimal                 `json:"overall"`
}

// DebtMutationRow is the opening/movement/closing line for one debt document
// over a reporting period.
type DebtMutationRow struct {
	DebtID      string          `json:"debtID"`
	Number      string          `json:"number"`
	ContactName string          `json:"contactName"`
	Opening     decimal.Decimal `json:"opening"`
	Issued      decimal.Decimal `json:"issued"`
	Paid        decimal.Decimal `json:"paid"`
	Closing     decimal.Decimal `json:"closing"`
}

// DebtMutationReport summarises debt movement over a period.
type DebtMutationReport struct {
	From    time.Time         `json:"from"`
	To      time.Time         `json:"to"`
	Rows    []DebtMutationRow `json:"rows"`
	Opening decimal.Decimal   `json:"opening"`
	Issued  decimal.Decimal   `json:"issued"`
	Paid    decimal.Decimal   `json:"paid"`
	Closing decimal.Decimal   `json:"closing"`
}
