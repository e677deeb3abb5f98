package accounting

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/reflyh2/accounting-sub001/internal/apperrors"
	"github.com/reflyh2/accounting-sub001/internal/core/domain"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func TestToPrimary(t *testing.T) {
	rate, _ := decimal.NewFromString("15234.5")
	got := ToPrimary(d(2), rate)
	assert.True(t, got.Equal(decimal.RequireFromString("30469")), "got %s", got)

	assert.True(t, ToPrimary(decimal.Zero, rate).IsZero())
}

func TestSignedNet(t *testing.T) {
	tests := []struct {
		name        string
		balanceType domain.BalanceType
		debit       int64
		credit      int64
		want        int64
	}{
		{"debit normal grows with debits", domain.DebitNormal, 700, 200, 500},
		{"debit normal negative when credits exceed", domain.DebitNormal, 100, 300, -200},
		{"credit normal grows with credits", domain.CreditNormal, 200, 700, 500},
		{"credit normal negative when debits exceed", domain.CreditNormal, 300, 100, -200},
		{"zero on both sides", domain.DebitNormal, 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SignedNet(tt.balanceType, d(tt.debit), d(tt.credit))
			assert.True(t, got.Equal(d(tt.want)), "got %s, want %d", got, tt.want)
		})
	}
}

func TestSignedAmount(t *testing.T) {
	entry := domain.JournalEntry{
		PrimaryCurrencyDebit:  d(500),
		PrimaryCurrencyCredit: decimal.Zero,
	}
	assert.True(t, SignedAmount(domain.DebitNormal, entry).Equal(d(500)))
	assert.True(t, SignedAmount(domain.CreditNormal, entry).Equal(d(-500)))
}

func balancedPair() []domain.JournalEntry {
	one := d(1)
	return []domain.JournalEntry{
		{AccountID: "a", Debit: d(500), CurrencyCode: "IDR", ExchangeRate: one, PrimaryCurrencyDebit: d(500)},
		{AccountID: "b", Credit: d(500), CurrencyCode: "IDR", ExchangeRate: one, PrimaryCurrencyCredit: d(500)},
	}
}

func TestValidateEntries_Valid(t *testing.T) {
	assert.NoError(t, ValidateEntries(balancedPair()))
}

func TestValidateEntries_MultiCurrencyBalancedInPrimary(t *testing.T) {
	one := d(1)
	rate := d(15000)
	entries := []domain.JournalEntry{
		{AccountID: "a", Debit: d(2), CurrencyCode: "USD", ExchangeRate: rate, PrimaryCurrencyDebit: d(30000)},
		{AccountID: "b", Credit: d(30000), CurrencyCode: "IDR", ExchangeRate: one, PrimaryCurrencyCredit: d(30000)},
	}
	assert.NoError(t, ValidateEntries(entries))
}

func TestValidateEntries_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func([]domain.JournalEntry) []domain.JournalEntry
		wantErr error
	}{
		{
			"single entry",
			func(e []domain.JournalEntry) []domain.JournalEntry { return e[:1] },
			apperrors.ErrValidation,
		},
		{
			"both sides positive on one line",
			func(e []domain.JournalEntry) []domain.JournalEntry {
				e[0].Credit = d(100)
				return e
			},
			apperrors.ErrValidation,
		},
		{
			"neither side positive",
			func(e []domain.JournalEntry) []domain.JournalEntry {
				e[0].Debit = decimal.Zero
				e[0].PrimaryCurrencyDebit = decimal.Zero
				return e
			},
			apperrors.ErrValidation,
		},
		{
			"zero exchange rate",
			func(e []domain.JournalEntry) []domain.JournalEntry {
				e[0].ExchangeRate = decimal.Zero
				return e
			},
			apperrors.ErrValidation,
		},
		{
			"stored primary amount inconsistent with rate",
			func(e []domain.JournalEntry) []domain.JournalEntry {
				e[0].PrimaryCurrencyDebit = d(499)
				return e
			},
			apperrors.ErrValidation,
		},
		{
			"unbalanced totals",
			func(e []domain.JournalEntry) []domain.JournalEntry {
				e[1].Credit = d(400)
				e[1].PrimaryCurrencyCredit = d(400)
				return e
			},
			apperrors.ErrUnbalancedJournal,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEntries(tt.mutate(balancedPair()))
			assert.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestEffectivePaymentDate(t *testing.T) {
	paymentDate := time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC)
	withdrawal := time.Date(2025, 5, 25, 0, 0, 0, 0, time.UTC)

	cash := domain.DebtPayment{Method: domain.PaymentCash, PaymentDate: paymentDate}
	assert.Equal(t, paymentDate, EffectivePaymentDate(cash))

	cheque := domain.DebtPayment{Method: domain.PaymentCheque, PaymentDate: paymentDate, WithdrawalDate: &withdrawal}
	assert.Equal(t, withdrawal, EffectivePaymentDate(cheque))

	giro := domain.DebtPayment{Method: domain.PaymentGiro, PaymentDate: paymentDate, WithdrawalDate: &withdrawal}
	assert.Equal(t, withdrawal, EffectivePaymentDate(giro))

	transfer := domain.DebtPayment{Method: domain.PaymentTransfer, PaymentDate: paymentDate, WithdrawalDate: &withdrawal}
	assert.Equal(t, paymentDate, EffectivePaymentDate(transfer))
}

func TestAgeBucket(t *testing.T) {
	asOf := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		daysPastDue int
		want        domain.AgingBucket
	}{
		{-10, domain.BucketNotYetDue},
		{0, domain.BucketNotYetDue},
		{1, domain.Bucket1To30},
		{30, domain.Bucket1To30},
		{31, domain.Bucket31To60},
		{60, domain.Bucket31To60},
		{61, domain.Bucket61To90},
		{90, domain.Bucket61To90},
		{91, domain.BucketOver90},
		{365, domain.BucketOver90},
	}
	for _, tt := range tests {
		dueDate := asOf.AddDate(0, 0, -tt.daysPastDue)
		assert.Equal(t, tt.want, AgeBucket(dueDate, asOf), "days past due: %d", tt.daysPastDue)
	}
}

func TestAgeBucket_IgnoresTimeOfDay(t *testing.T) {
	dueDate := time.Date(2025, 6, 29, 23, 0, 0, 0, time.UTC)
	asOf := time.Date(2025, 6, 30, 1, 0, 0, 0, time.UTC)
	assert.Equal(t, domain.Bucket1To30, AgeBucket(dueDate, asOf))
}
