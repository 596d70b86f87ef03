package discard

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/MixinNetwork/go-number"
)

// AmountToBase converts a decimal amount string to base units. The amount
// must be exactly representable at the given number of decimals.
func AmountToBase(amount string, decimals int) (uint64, error) {
	d := number.FromString(amount)
	if d.IsNegative() {
		return 0, fmt.Errorf("negative amount %s", amount)
	}
	scale := number.FromString("1" + strings.Repeat("0", decimals))
	scaled := d.Mul(scale)
	floored := scaled.RoundFloor(0)
	if scaled.Cmp(floored) != 0 {
		return 0, fmt.Errorf("amount %s has more than %d decimals", amount, decimals)
	}
	return strconv.ParseUint(floored.Persist(), 10, 64)
}

// AmountFromBase renders base units as a decimal string.
func AmountFromBase(value uint64, decimals int) string {
	scale := number.FromString("1" + strings.Repeat("0", decimals))
	return number.FromString(strconv.FormatUint(value, 10)).Div(scale).Persist()
}
