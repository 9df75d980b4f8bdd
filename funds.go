package payments

import "github.com/shopspring/decimal"

// Precision is the number of decimal places kept for every amount.
const Precision = 4

// D is a convenient factory for decimal.Decimal amounts.
func D[T float64 | int | int32 | int64 | uint | uint32 | uint64 | string | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt32(v)
	case int64:
		return decimal.NewFromInt(v)
	case uint:
		return decimal.NewFromUint64(uint64(v))
	case uint32:
		return decimal.NewFromUint64(uint64(v))
	case uint64:
		return decimal.NewFromUint64(v)
	case string:
		return decimal.RequireFromString(v)
	default:
		panic("unsupported type")
	}
}

// Round rounds d to Precision decimal places, half to even.
//
// Amounts are rounded once on input so that repeated operations do not
// accumulate errors: 1.00003 + 1.00003 is 2.0000, not 2.0001.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.RoundBank(Precision)
}
