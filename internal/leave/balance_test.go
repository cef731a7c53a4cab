package leave

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"go-leavehub/internal/leavetype"
)

func annualLeave(quota string, allowCarryOver bool, maxCarryOver *string) leavetype.LeaveType {
	lt := leavetype.LeaveType{
		Code:           "AL",
		Name:           "Annual Leave",
		IsActive:       true,
		AnnualQuota:    decimal.RequireFromString(quota),
		AllowCarryOver: allowCarryOver,
	}
	if maxCarryOver != nil {
		cap := decimal.RequireFromString(*maxCarryOver)
		lt.MaxCarryOver = &cap
	}
	return lt
}

func approved(start, end string) LeaveRequest {
	return LeaveRequest{StartDate: day(start), EndDate: day(end), Status: StatusApproved}
}

func TestComputeBalance_FirstYearNoUsage(t *testing.T) {
	lt := annualLeave("21", false, nil)

	b := ComputeBalance(lt, 2023, 2023, nil)

	assert.Equal(t, "0.0", b.Opening.StringFixed(1))
	assert.Equal(t, "0.0", b.Used.StringFixed(1))
	assert.Equal(t, "21.0", b.Remaining.StringFixed(1))
}

func TestComputeBalance_CappedCarryOver(t *testing.T) {
	cap := "5"
	lt := annualLeave("21", true, &cap)

	b := ComputeBalance(lt, 2023, 2024, nil)

	assert.Equal(t, "5.0", b.Opening.StringFixed(1))
	assert.Equal(t, "26.0", b.Remaining.StringFixed(1))
}

func TestComputeBalance_UsageCountsInclusiveDays(t *testing.T) {
	lt := annualLeave("21", false, nil)
	reqs := []LeaveRequest{approved("2024-03-10", "2024-03-14")}

	b := ComputeBalance(lt, 2023, 2024, reqs)

	assert.Equal(t, "5.0", b.Used.StringFixed(1))
	assert.Equal(t, "16.0", b.Remaining.StringFixed(1))
}

func TestComputeBalance_UnlimitedCarryOver(t *testing.T) {
	lt := annualLeave("21", true, nil)
	reqs := []LeaveRequest{approved("2023-02-01", "2023-02-07")} // 7 days

	b := ComputeBalance(lt, 2023, 2024, reqs)

	assert.Equal(t, "14.0", b.Opening.StringFixed(1))
	assert.Equal(t, "0.0", b.Used.StringFixed(1))
	assert.Equal(t, "35.0", b.Remaining.StringFixed(1))
}

func TestComputeBalance_NoCarryOverResetsOpening(t *testing.T) {
	lt := annualLeave("21", false, nil)
	reqs := []LeaveRequest{approved("2023-02-01", "2023-02-07")}

	b := ComputeBalance(lt, 2023, 2024, reqs)

	assert.Equal(t, "0.0", b.Opening.StringFixed(1))
	assert.Equal(t, "21.0", b.Remaining.StringFixed(1))
}

func TestComputeBalance_RangeSpanningYearBoundary(t *testing.T) {
	lt := annualLeave("21", true, nil)
	// Dec 30 - Jan 2: two days land in each year
	reqs := []LeaveRequest{approved("2023-12-30", "2024-01-02")}

	b2023 := ComputeBalance(lt, 2023, 2023, reqs)
	assert.Equal(t, "2.0", b2023.Used.StringFixed(1))
	assert.Equal(t, "19.0", b2023.Remaining.StringFixed(1))

	b2024 := ComputeBalance(lt, 2023, 2024, reqs)
	assert.Equal(t, "19.0", b2024.Opening.StringFixed(1))
	assert.Equal(t, "2.0", b2024.Used.StringFixed(1))
	assert.Equal(t, "38.0", b2024.Remaining.StringFixed(1))
}

func TestComputeBalance_NegativeRemainingNotFloored(t *testing.T) {
	lt := annualLeave("5", false, nil)
	reqs := []LeaveRequest{approved("2024-03-01", "2024-03-10")} // 10 days against quota 5

	b := ComputeBalance(lt, 2023, 2024, reqs)

	assert.Equal(t, "-5.0", b.Remaining.StringFixed(1))
}

func TestComputeBalance_FractionalQuota(t *testing.T) {
	cap := "2.5"
	lt := annualLeave("12.5", true, &cap)

	b := ComputeBalance(lt, 2023, 2024, nil)

	assert.Equal(t, "2.5", b.Opening.StringFixed(1))
	assert.Equal(t, "15.0", b.Remaining.StringFixed(1))
}

func TestComputeBalance_YearBeforeHire(t *testing.T) {
	lt := annualLeave("21", true, nil)

	b := ComputeBalance(lt, 2023, 2022, nil)

	assert.True(t, b.Opening.IsZero())
	assert.True(t, b.Used.IsZero())
	assert.True(t, b.Remaining.IsZero())
}

func TestComputeBalance_LongTenureSweep(t *testing.T) {
	cap := "5"
	lt := annualLeave("21", true, &cap)

	// ten untouched years: opening settles at the cap
	b := ComputeBalance(lt, 2010, 2020, nil)

	assert.Equal(t, "5.0", b.Opening.StringFixed(1))
	assert.Equal(t, "26.0", b.Remaining.StringFixed(1))
}

func TestUsedInYear_ClipsToCalendarYear(t *testing.T) {
	reqs := []LeaveRequest{
		approved("2023-12-30", "2024-01-02"),
		approved("2024-03-10", "2024-03-14"),
		approved("2025-01-01", "2025-01-03"),
	}

	assert.Equal(t, "2", UsedInYear(reqs, 2023).String())
	assert.Equal(t, "7", UsedInYear(reqs, 2024).String())
	assert.Equal(t, "3", UsedInYear(reqs, 2025).String())
	assert.Equal(t, "0", UsedInYear(reqs, 2022).String())
}
