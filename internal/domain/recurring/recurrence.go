package recurring

import (
	"fmt"
	"time"

	"FinControl/internal/domain/transaction"

	"cloud.google.com/go/civil"
)

// NextOccurrence avança uma data pela cadência informada. Mensal e anual preservam
// o dia quando possível e caem no último dia do mês quando ele não existe.
func NextOccurrence(current civil.Date, cadence transaction.RecurrenceType) civil.Date {
	switch cadence {
	case transaction.RecurrenceDaily:
		return current.AddDays(1)
	case transaction.RecurrenceWeekly:
		return current.AddDays(7)
	case transaction.RecurrenceMonthly:
		return addMonthsClamped(current, 1)
	case transaction.RecurrenceYearly:
		return addMonthsClamped(current, 12)
	default:
		panic(fmt.Sprintf("recurring: unknown recurrence type %q", cadence))
	}
}

func addMonthsClamped(d civil.Date, months int) civil.Date {
	total := int(d.Month) - 1 + months
	year := d.Year + total/12
	month := time.Month(total%12 + 1)

	day := d.Day
	if last := daysIn(year, month); day > last {
		day = last
	}

	return civil.Date{Year: year, Month: month, Day: day}
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
