package wage

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestMonthKeyOf(t *testing.T) {
	key := MonthKeyOf(time.Date(2024, time.August, 17, 13, 45, 0, 0, time.UTC))

	assert.Equal(t, MonthKey{Year: 2024, Month: time.August}, key)
	assert.Equal(t, "2024-08", key.String())
	assert.Equal(t, time.Date(2024, time.August, 1, 0, 0, 0, 0, time.UTC), key.FirstDay())
}

func TestMonthKeyBefore(t *testing.T) {
	december := MonthKey{Year: 2023, Month: time.December}
	january := MonthKey{Year: 2024, Month: time.January}
	february := MonthKey{Year: 2024, Month: time.February}

	assert.True(t, december.Before(january))
	assert.True(t, january.Before(february))
	assert.False(t, february.Before(january))
	assert.False(t, january.Before(january))
}

func TestDetailedWageAdd(t *testing.T) {
	total := zeroDetailedWage()

	total.Add(DetailedWage{
		WorkedHours:             8,
		TaxBase:                 decimal.NewFromInt(800),
		NetWage:                 decimal.NewFromInt(712),
		EmployeeHealthInsurance: decimal.NewFromInt(36),
		EmployeeSocialInsurance: decimal.NewFromInt(52),
	})
	total.Add(DetailedWage{
		WorkedHours: 4,
		TaxBase:     decimal.NewFromInt(400),
		NetWage:     decimal.NewFromInt(400),
	})

	assert.Equal(t, 12.0, total.WorkedHours)
	assert.True(t, total.TaxBase.Equal(decimal.NewFromInt(1200)))
	assert.True(t, total.NetWage.Equal(decimal.NewFromInt(1112)))
	assert.True(t, total.EmployeeHealthInsurance.Equal(decimal.NewFromInt(36)))
	assert.True(t, total.EmployeeSocialInsurance.Equal(decimal.NewFromInt(52)))
	assert.True(t, total.EmployerHealthInsurance.IsZero())
}
