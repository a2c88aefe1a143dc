package timeago

import (
	"fmt"
	"time"
)

// interval - единица времени для форматирования возраста
type interval struct {
	label        string
	labelCompact string
	seconds      int64
}

// intervals перечислены от большей единицы к меньшей: выбирается первая,
// в которую возраст укладывается хотя бы один раз
var intervals = []interval{
	{label: "year", labelCompact: "y", seconds: 31536000},
	{label: "month", labelCompact: "mo", seconds: 2592000},
	{label: "day", labelCompact: "d", seconds: 86400},
	{label: "hour", labelCompact: "h", seconds: 3600},
	{label: "minute", labelCompact: "m", seconds: 60},
}

// Format превращает отметку времени в человекочитаемый возраст относительно now.
// Возраст меньше 10 секунд дает "Just now" независимо от compact. Количество
// всегда усекается вниз, округления вверх нет.
func Format(ts, now time.Time, compact bool) string {
	seconds := int64(now.Sub(ts).Seconds())

	if seconds < 10 {
		return "Just now"
	}

	for _, iv := range intervals {
		count := seconds / iv.seconds
		if count < 1 {
			continue
		}
		if compact {
			return fmt.Sprintf("%d%s ago", count, iv.labelCompact)
		}
		if count > 1 {
			return fmt.Sprintf("%d %ss ago", count, iv.label)
		}
		return fmt.Sprintf("%d %s ago", count, iv.label)
	}

	if compact {
		return fmt.Sprintf("%ds ago", seconds)
	}
	return fmt.Sprintf("%d seconds ago", seconds)
}

// Since форматирует возраст относительно текущего времени
func Since(ts time.Time, compact bool) string {
	return Format(ts, time.Now(), compact)
}
