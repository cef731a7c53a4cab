package leave

import (
	"time"

	"github.com/shopspring/decimal"

	"go-leavehub/internal/leavetype"
)

// Balance is the computed opening/used/remaining triple for one
// employee, leave type and calendar year. Values carry two internal
// decimal places; the API boundary formats them to one.
type Balance struct {
	Opening   decimal.Decimal
	Used      decimal.Decimal
	Remaining decimal.Decimal
}

func zeroBalance() Balance {
	return Balance{Opening: decimal.Zero, Used: decimal.Zero, Remaining: decimal.Zero}
}

// ComputeBalance derives the balance for the target year by sweeping
// forward from the hire year, carrying each year's remaining into the
// next year's opening. The forward sweep keeps the cost linear in
// tenure where the naive per-year recursion recomputes every ancestor
// year on each step.
//
// approved must hold only APPROVED requests of the given leave type;
// other statuses never contribute to usage. Remaining is deliberately
// not floored at zero: over-approval shows up as a negative balance.
func ComputeBalance(lt leavetype.LeaveType, hireYear, year int, approved []LeaveRequest) Balance {
	if year < hireYear {
		return zeroBalance()
	}

	opening := decimal.Zero
	var used, remaining decimal.Decimal

	for y := hireYear; y <= year; y++ {
		used = UsedInYear(approved, y)
		remaining = opening.Add(lt.AnnualQuota).Sub(used).Round(2)
		if y == year {
			break
		}
		opening = carryOver(lt, remaining)
	}

	return Balance{Opening: opening, Used: used, Remaining: remaining}
}

// carryOver applies the leave type's carry-over policy to one year's
// remaining balance: zero without carry-over, min(remaining, cap) with
// a cap, remaining unclamped otherwise.
func carryOver(lt leavetype.LeaveType, remaining decimal.Decimal) decimal.Decimal {
	if !lt.AllowCarryOver {
		return decimal.Zero
	}
	if lt.MaxCarryOver != nil {
		return decimal.Min(remaining, *lt.MaxCarryOver)
	}
	return remaining
}

// UsedInYear sums the inclusive day counts of the given requests
// clipped to the calendar year.
func UsedInYear(requests []LeaveRequest, year int) decimal.Decimal {
	yearStart := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	yearEnd := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)

	total := 0
	for _, req := range requests {
		if !Overlaps(req.StartDate, req.EndDate, yearStart, yearEnd) {
			continue
		}
		start := req.StartDate
		if start.Before(yearStart) {
			start = yearStart
		}
		end := req.EndDate
		if end.After(yearEnd) {
			end = yearEnd
		}
		total += inclusiveDays(start, end)
	}

	return decimal.NewFromInt(int64(total))
}
