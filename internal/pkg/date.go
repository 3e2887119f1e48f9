package pkg

import (
	"time"

	"cloud.google.com/go/civil"
)

// Datas de transação são datas de calendário puras; a conversão para time.Time
// acontece apenas na fronteira com o banco, sempre à meia-noite UTC.

func DateToTime(d civil.Date) time.Time {
	return d.In(time.UTC)
}

func TimeToDate(t time.Time) civil.Date {
	return civil.DateOf(t)
}

func DatePtrToTime(d *civil.Date) *time.Time {
	if d == nil {
		return nil
	}
	t := DateToTime(*d)
	return &t
}

func TimePtrToDate(t *time.Time) *civil.Date {
	if t == nil {
		return nil
	}
	d := TimeToDate(*t)
	return &d
}

func DatePtr(d civil.Date) *civil.Date {
	return &d
}

// Today devolve a data de calendário corrente no fuso informado.
func Today(now time.Time, loc *time.Location) civil.Date {
	if loc == nil {
		loc = time.UTC
	}
	return civil.DateOf(now.In(loc))
}
