package schedule

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leaseflow/billing-engine/internal/domain"
)

func TestReconcile_RecordedPaymentOverridesSlot(t *testing.T) {
	rent := decimal.NewFromInt(5000)
	today := date(2024, time.February, 1)
	dueDates := []time.Time{
		date(2024, time.January, 15),
		date(2024, time.February, 15),
		date(2024, time.March, 15),
	}

	method := "bank_transfer"
	txID := "TX-8841"
	paidDate := date(2024, time.January, 14)
	payment := &domain.Payment{
		ID:            uuid.New(),
		LeaseID:       uuid.New(),
		DueDate:       date(2024, time.January, 15),
		Amount:        decimal.NewFromInt(4800), // differs from nominal rent
		PaidDate:      &paidDate,
		Status:        domain.PaymentStatusPaid,
		Method:        &method,
		TransactionID: &txID,
	}

	slots := Reconcile(dueDates, rent, []*domain.Payment{payment}, today)
	require.Len(t, slots, 3)

	recorded := slots[0]
	assert.True(t, recorded.IsExisting)
	require.NotNil(t, recorded.PaymentID)
	assert.Equal(t, payment.ID, *recorded.PaymentID)
	assert.True(t, recorded.Amount.Equal(payment.Amount), "recorded amount wins over nominal rent")
	assert.Equal(t, domain.PaymentStatusPaid, recorded.Status)
	assert.Equal(t, &paidDate, recorded.PaidDate)
	assert.Equal(t, &method, recorded.Method)
	assert.Equal(t, &txID, recorded.TransactionID)

	for _, slot := range slots[1:] {
		assert.False(t, slot.IsExisting)
		assert.Nil(t, slot.PaymentID)
		assert.True(t, slot.Amount.Equal(rent))
	}
}

func TestReconcile_EmptyPaymentSetIsAllSynthetic(t *testing.T) {
	rent := decimal.NewFromInt(1200)
	today := date(2024, time.February, 20)
	dueDates := []time.Time{
		date(2024, time.January, 1),
		date(2024, time.February, 1),
		date(2024, time.March, 1),
	}

	slots := Reconcile(dueDates, rent, nil, today)
	require.Len(t, slots, 3)

	assert.Equal(t, domain.PaymentStatusOverdue, slots[0].Status)
	assert.Equal(t, domain.PaymentStatusOverdue, slots[1].Status)
	assert.Equal(t, domain.PaymentStatusPending, slots[2].Status)
	for _, slot := range slots {
		assert.False(t, slot.IsExisting)
	}
}

func TestReconcile_OffCyclePaymentIsNotRepresented(t *testing.T) {
	rent := decimal.NewFromInt(900)
	today := date(2024, time.January, 1)
	dueDates := []time.Time{date(2024, time.January, 15)}

	offCycle := &domain.Payment{
		ID:      uuid.New(),
		DueDate: date(2024, time.January, 20), // no canonical slot
		Amount:  decimal.NewFromInt(900),
		Status:  domain.PaymentStatusPaid,
	}

	slots := Reconcile(dueDates, rent, []*domain.Payment{offCycle}, today)
	require.Len(t, slots, 1, "one slot per canonical due date, off-cycle rows excluded")
	assert.False(t, slots[0].IsExisting)
}

func TestReconcile_MatchesOnCalendarDayIgnoringTime(t *testing.T) {
	rent := decimal.NewFromInt(700)
	today := date(2024, time.January, 1)
	dueDates := []time.Time{date(2024, time.January, 15)}

	payment := &domain.Payment{
		ID:      uuid.New(),
		DueDate: time.Date(2024, time.January, 15, 18, 30, 0, 0, time.UTC),
		Amount:  decimal.NewFromInt(700),
		Status:  domain.PaymentStatusPending,
	}

	slots := Reconcile(dueDates, rent, []*domain.Payment{payment}, today)
	require.Len(t, slots, 1)
	assert.True(t, slots[0].IsExisting)
}

func TestReconcile_PreservesCanonicalOrder(t *testing.T) {
	rent := decimal.NewFromInt(300)
	today := date(2024, time.January, 1)
	dueDates, err := DueDates(date(2024, time.January, 1), date(2024, time.December, 31), 5)
	require.NoError(t, err)

	slots := Reconcile(dueDates, rent, nil, today)
	require.Len(t, slots, len(dueDates))
	for i, slot := range slots {
		assert.Equal(t, dueDates[i], slot.DueDate)
	}
}
