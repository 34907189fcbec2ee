package billing

import "time"

// SchedulePeriod — один цикл сопровождения [From, To)
type SchedulePeriod struct {
	From time.Time
	To   time.Time
}

// AMCSchedule разбивает срок договора на циклы сопровождения длиной
// frequencyMonths. Последний цикл обрезается по дате окончания договора.
// При некорректных входных данных возвращается пустой список
func AMCSchedule(start, end time.Time, frequencyMonths int) []SchedulePeriod {
	if frequencyMonths <= 0 || !end.After(start) {
		return nil
	}

	var periods []SchedulePeriod
	from := start
	for from.Before(end) {
		to := from.AddDate(0, frequencyMonths, 0)
		if to.After(end) {
			to = end
		}
		periods = append(periods, SchedulePeriod{From: from, To: to})
		from = to
	}
	return periods
}
