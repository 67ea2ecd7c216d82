// Package words renders monetary amounts as the long-form wording embedded
// in lease agreements.
package words

import (
	"fmt"
	"strings"

	"github.com/divan/num2words"
	"github.com/shopspring/decimal"
)

// Amount renders amount as uppercase words with a cents fraction and the
// given currency suffix, e.g. 5000 -> "FIVE THOUSAND AND 00/100 DOLLARS".
func Amount(amount decimal.Decimal, currency string) string {
	units := amount.IntPart()
	cents := amount.Sub(decimal.NewFromInt(units)).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
	if cents < 0 {
		cents = -cents
	}

	text := strings.ToUpper(num2words.Convert(int(units)))
	return fmt.Sprintf("%s AND %02d/100 %s", text, cents, currency)
}
