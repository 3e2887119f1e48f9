package scheduler

import (
	"fmt"
	"time"
)

// ScheduleTime é o horário do dia em que o lote diário roda.
type ScheduleTime struct {
	Hour   int
	Minute int
}

func (st ScheduleTime) String() string {
	return fmt.Sprintf("%02d:%02d", st.Hour, st.Minute)
}

// On devolve o instante agendado no mesmo dia de t, no fuso de t.
func (st ScheduleTime) On(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), st.Hour, st.Minute, 0, 0, t.Location())
}

// ParseScheduleTime interpreta um horário no formato HH:MM.
func ParseScheduleTime(s string) (ScheduleTime, error) {
	var hour, minute int
	if _, err := fmt.Sscanf(s, "%d:%d", &hour, &minute); err != nil {
		return ScheduleTime{}, fmt.Errorf("invalid time format (expected HH:MM): %w", err)
	}

	if hour < 0 || hour > 23 {
		return ScheduleTime{}, fmt.Errorf("invalid hour: %d (must be 0-23)", hour)
	}
	if minute < 0 || minute > 59 {
		return ScheduleTime{}, fmt.Errorf("invalid minute: %d (must be 0-59)", minute)
	}

	return ScheduleTime{Hour: hour, Minute: minute}, nil
}
