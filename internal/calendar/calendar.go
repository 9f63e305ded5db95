// Package calendar holds the static season and festival tables and the
// date lookups the simulation engine uses to scale daily demand.
package calendar

import "time"

// Season describes the retail season a calendar month falls in.
type Season struct {
	Name    string `json:"season_name"`
	Quarter string `json:"quarter"`
	Type    string `json:"season_type"`
}

// Festival describes a demand-boosting festival window within one month.
type Festival struct {
	ID         string  `json:"festival_id"`
	Name       string  `json:"name"`
	Month      int     `json:"month"`
	Days       []int   `json:"days"`
	Multiplier float64 `json:"demand_multiplier"`
}

// unknownSeason is returned for months outside 1-12. It cannot happen for a
// real time.Time but the lookup keeps a defined answer anyway.
var unknownSeason = Season{Name: "Unknown", Quarter: "Unknown", Type: "Medium Season"}

// SeasonFor returns the season descriptor for the date's calendar month.
func SeasonFor(date time.Time) Season {
	if s, ok := seasonByMonth[int(date.Month())]; ok {
		return s
	}
	return unknownSeason
}

// FestivalFor returns the festival covering the date, if any. The festival
// table is scanned in declaration order and the first match wins; valid
// tables never define overlapping month+day windows.
func FestivalFor(date time.Time) (Festival, bool) {
	month, day := int(date.Month()), date.Day()
	for _, f := range festivals {
		if f.Month != month {
			continue
		}
		for _, d := range f.Days {
			if d == day {
				return f, true
			}
		}
	}
	return Festival{}, false
}

// SeasonInfo is the month-keyed season row exposed on the meta endpoint.
type SeasonInfo struct {
	Month      int    `json:"month"`
	SeasonName string `json:"season_name"`
	Quarter    string `json:"quarter"`
	SeasonType string `json:"season_type"`
}

// Seasons returns all twelve season rows in month order.
func Seasons() []SeasonInfo {
	out := make([]SeasonInfo, 0, 12)
	for m := 1; m <= 12; m++ {
		s := seasonByMonth[m]
		out = append(out, SeasonInfo{
			Month:      m,
			SeasonName: s.Name,
			Quarter:    s.Quarter,
			SeasonType: s.Type,
		})
	}
	return out
}

// Festivals returns the full festival table in declaration order.
func Festivals() []Festival {
	out := make([]Festival, len(festivals))
	copy(out, festivals)
	return out
}
