package schedule

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/leaseflow/billing-engine/internal/domain"
	"github.com/leaseflow/billing-engine/pkg/words"
)

// BuildTable produces the numbered due-date table embedded in the rendered
// lease agreement. It walks the same due-date sequence as DueDates and fails
// under the same conditions; each row pairs the 1-based payment number with
// its due date and the rent amount spelled out in words.
func BuildTable(start, end time.Time, paymentDay int, amount decimal.Decimal, currency string) ([]*domain.AmortizationRow, error) {
	dates, err := DueDates(start, end, paymentDay)
	if err != nil {
		return nil, err
	}

	inWords := words.Amount(amount, currency)

	rows := make([]*domain.AmortizationRow, 0, len(dates))
	for i, due := range dates {
		rows = append(rows, &domain.AmortizationRow{
			Number:        i + 1,
			DueDate:       due.Format(dateLayout),
			AmountInWords: inWords,
		})
	}

	return rows, nil
}
