package reports

import (
	"fmt"
	"time"
)

// Пакет reports переводит выбор периода отчета (всё время / месяц /
// квартал / год) в нормализованный диапазон дат, одинаково используемый
// всеми отчетными запросами.

// Granularity — гранулярность периода отчета
type Granularity string

const (
	GranularityAll       Granularity = "all"
	GranularityMonthly   Granularity = "monthly"
	GranularityQuarterly Granularity = "quarterly"
	GranularityYearly    Granularity = "yearly"
)

// Selection — выбранный период плюс независимые фильтры отчета
type Selection struct {
	Granularity Granularity
	Year        int
	Quarter     string // формат "Q<1-4> <год>"
	Month       int    // 1-12
	// Фильтр по продукту не относится к периоду и переживает смену гранулярности
	ProductID uint
}

// CurrentQuarter возвращает текущий квартал в формате "Q3 2026"
func CurrentQuarter(now time.Time) string {
	q := (int(now.Month())-1)/3 + 1
	return fmt.Sprintf("Q%d %d", q, now.Year())
}

// ParseQuarter разбирает строку вида "Q2 2026"
func ParseQuarter(s string) (quarter, year int, err error) {
	if _, err = fmt.Sscanf(s, "Q%d %d", &quarter, &year); err != nil {
		return 0, 0, fmt.Errorf("неверный формат квартала %q", s)
	}
	if quarter < 1 || quarter > 4 {
		return 0, 0, fmt.Errorf("неверный номер квартала %d", quarter)
	}
	return quarter, year, nil
}

// WithGranularity переключает гранулярность: ненужные параметры периода
// сбрасываются, недостающие заполняются от текущей даты, несвязанные
// фильтры (продукт) сохраняются
func (s Selection) WithGranularity(g Granularity, now time.Time) Selection {
	next := Selection{Granularity: g, ProductID: s.ProductID}

	switch g {
	case GranularityYearly:
		next.Year = now.Year()
	case GranularityQuarterly:
		next.Year = now.Year()
		next.Quarter = CurrentQuarter(now)
	case GranularityMonthly:
		next.Year = now.Year()
		next.Month = int(now.Month())
	}
	return next
}

// Range возвращает полуинтервал [start, end) для выбранного периода.
// Для "all" диапазон не ограничен — ok == false
func (s Selection) Range() (start, end time.Time, ok bool, err error) {
	switch s.Granularity {
	case GranularityYearly:
		if s.Year == 0 {
			return start, end, false, fmt.Errorf("не указан год")
		}
		start = time.Date(s.Year, time.January, 1, 0, 0, 0, 0, time.UTC)
		return start, start.AddDate(1, 0, 0), true, nil

	case GranularityQuarterly:
		quarter, year, perr := ParseQuarter(s.Quarter)
		if perr != nil {
			return start, end, false, perr
		}
		start = time.Date(year, time.Month((quarter-1)*3+1), 1, 0, 0, 0, 0, time.UTC)
		return start, start.AddDate(0, 3, 0), true, nil

	case GranularityMonthly:
		if s.Month < 1 || s.Month > 12 {
			return start, end, false, fmt.Errorf("неверный месяц %d", s.Month)
		}
		year := s.Year
		if year == 0 {
			year = time.Now().Year()
		}
		start = time.Date(year, time.Month(s.Month), 1, 0, 0, 0, 0, time.UTC)
		return start, start.AddDate(0, 1, 0), true, nil

	default:
		return start, end, false, nil
	}
}
