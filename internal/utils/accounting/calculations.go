package accounting

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/reflyh2/accounting-sub001/internal/apperrors"
	"github.com/reflyh2/accounting-sub001/internal/core/domain"
)

// ToPrimary converts a transaction-currency amount to the primary currency
// using the exchange rate captured at posting time.
func ToPrimary(amount, exchangeRate decimal.Decimal) decimal.Decimal {
	return amount.Mul(exchangeRate)
}

// SignedNet applies the account's sign convention to aggregated totals.
// Debit-normal accounts grow with debits, credit-normal with credits. Every
// report goes through this one function; the convention is never re-derived
// per report.
func SignedNet(balanceType domain.BalanceType, debitTotal, creditTotal decimal.Decimal) decimal.Decimal {
	if balanceType == domain.CreditNormal {
		return creditTotal.Sub(debitTotal)
	}
	return debitTotal.Sub(creditTotal)
}

// SignedAmount returns the signed effect of a single entry on its account's
// balance, in primary currency.
func SignedAmount(balanceType domain.BalanceType, entry domain.JournalEntry) decimal.Decimal {
	return SignedNet(balanceType, entry.PrimaryCurrencyDebit, entry.PrimaryCurrencyCredit)
}

// ValidateEntries enforces the posting preconditions on a set of journal
// entries: at least two lines, exactly one positive side per line, consistent
// stored conversions, and exact primary-currency balance. No tolerance: the
// equality is exact decimal comparison.
func ValidateEntries(entries []domain.JournalEntry) error {
	if len(entries) < 2 {
		return fmt.Errorf("%w: journal must have at least two entries", apperrors.ErrValidation)
	}

	debitSum := decimal.Zero
	creditSum := decimal.Zero

	for _, e := range entries {
		hasDebit := e.Debit.IsPositive()
		hasCredit := e.Credit.IsPositive()
		if hasDebit == hasCredit {
			return fmt.Errorf("%w: entry for account %s must have exactly one of debit or credit, positive", apperrors.ErrValidation, e.AccountID)
		}
		if e.Debit.IsNegative() || e.Credit.IsNegative() {
			return fmt.Errorf("%w: entry amounts must not be negative for account %s", apperrors.ErrValidation, e.AccountID)
		}
		if e.ExchangeRate.LessThanOrEqual(decimal.Zero) {
			return fmt.Errorf("%w: exchange rate must be positive for account %s", apperrors.ErrValidation, e.AccountID)
		}
		if !e.PrimaryCurrencyDebit.Equal(ToPrimary(e.Debit, e.ExchangeRate)) ||
			!e.PrimaryCurrencyCredit.Equal(ToPrimary(e.Credit, e.ExchangeRate)) {
			return fmt.Errorf("%w: stored primary amounts inconsistent with rate for account %s", apperrors.ErrValidation, e.AccountID)
		}
		debitSum = debitSum.Add(e.PrimaryCurrencyDebit)
		creditSum = creditSum.Add(e.PrimaryCurrencyCredit)
	}

	if !debitSum.Equal(creditSum) {
		return fmt.Errorf("%w: debit total %s, credit total %s", apperrors.ErrUnbalancedJournal, debitSum.String(), creditSum.String())
	}
	return nil
}

// EffectivePaymentDate returns the date a debt payment actually cleared.
// Cheque and giro instruments clear on their withdrawal date; cash and
// transfer payments clear on the recorded payment date.
func EffectivePaymentDate(p domain.DebtPayment) time.Time {
	if (p.Method == domain.PaymentCheque || p.Method == domain.PaymentGiro) && p.WithdrawalDate != nil {
		return *p.WithdrawalDate
	}
	return p.PaymentDate
}

// AgeBucket classifies an outstanding document by days past due as of a date.
func AgeBucket(dueDate, asOf time.Time) domain.AgingBucket {
	days := daysBetween(dueDate, asOf)
	switch {
	case days <= 0:
		return domain.BucketNotYetDue
	case days <= 30:
		return domain.Bucket1To30
	case days <= 60:
		return domain.Bucket31To60
	case days <= 90:
		return domain.Bucket61To90
	default:
		return domain.BucketOver90
	}
}

// daysBetween counts whole calendar days from a to b, ignoring time of day.
func daysBetween(a, b time.Time) int {
	a = time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	b = time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}
