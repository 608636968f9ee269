package utils

import "time"

// MonthLayout é o formato yyyy-mm usado em InsightMonth
const MonthLayout = "2006-01"

func ParseMonth(monthStr string) (*time.Time, error) {
	month, err := time.Parse(MonthLayout, monthStr)
	if err != nil {
		return nil, err
	}

	return &month, nil
}
