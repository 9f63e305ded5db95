package calendar

var seasonByMonth = map[int]Season{
	1:  {Name: "Q1 - Winter/New Year", Quarter: "Q1", Type: "High Season"},
	2:  {Name: "Q1 - Valentine", Quarter: "Q1", Type: "High Season"},
	3:  {Name: "Q1 - Spring", Quarter: "Q1", Type: "Medium Season"},
	4:  {Name: "Q2 - Summer Start", Quarter: "Q2", Type: "Medium Season"},
	5:  {Name: "Q2 - Mid Year", Quarter: "Q2", Type: "Low Season"},
	6:  {Name: "Q2 - Mid Year Sale", Quarter: "Q2", Type: "Medium Season"},
	7:  {Name: "Q3 - Summer Peak", Quarter: "Q3", Type: "Low Season"},
	8:  {Name: "Q3 - Back to School", Quarter: "Q3", Type: "High Season"},
	9:  {Name: "Q3 - Fall Start", Quarter: "Q3", Type: "Medium Season"},
	10: {Name: "Q4 - Fall", Quarter: "Q4", Type: "Medium Season"},
	11: {Name: "Q4 - Black Friday", Quarter: "Q4", Type: "Peak Season"},
	12: {Name: "Q4 - Christmas/Year End", Quarter: "Q4", Type: "Peak Season"},
}

// Kept as an ordered slice so FestivalFor has a deterministic tie-break.
var festivals = []Festival{
	{ID: "new_year", Name: "New Year Sale", Month: 1, Days: []int{1, 2, 3}, Multiplier: 1.8},
	{ID: "valentine", Name: "Valentine's Day", Month: 2, Days: []int{13, 14, 15}, Multiplier: 1.5},
	{ID: "womens_day", Name: "Women's Day", Month: 3, Days: []int{8}, Multiplier: 1.3},
	{ID: "songkran", Name: "Songkran Festival", Month: 4, Days: []int{13, 14, 15}, Multiplier: 1.4},
	{ID: "mothers_day", Name: "Mother's Day", Month: 5, Days: []int{10, 11, 12}, Multiplier: 1.4},
	{ID: "mid_year_sale", Name: "Mid Year Sale", Month: 6, Days: dayRange(15, 21), Multiplier: 1.6},
	{ID: "fathers_day", Name: "Father's Day", Month: 6, Days: []int{16, 17, 18}, Multiplier: 1.3},
	{ID: "back_to_school", Name: "Back to School", Month: 8, Days: dayRange(1, 14), Multiplier: 1.7},
	{ID: "halloween", Name: "Halloween", Month: 10, Days: []int{30, 31}, Multiplier: 1.2},
	{ID: "singles_day", Name: "11.11 Sale", Month: 11, Days: []int{11}, Multiplier: 2.0},
	{ID: "black_friday", Name: "Black Friday", Month: 11, Days: dayRange(24, 27), Multiplier: 2.2},
	{ID: "cyber_monday", Name: "Cyber Monday", Month: 11, Days: []int{28, 29}, Multiplier: 1.9},
	{ID: "christmas", Name: "Christmas Sale", Month: 12, Days: dayRange(20, 25), Multiplier: 2.0},
	{ID: "year_end", Name: "Year End Sale", Month: 12, Days: dayRange(26, 31), Multiplier: 1.8},
}

func dayRange(from, to int) []int {
	days := make([]int, 0, to-from+1)
	for d := from; d <= to; d++ {
		days = append(days, d)
	}
	return days
}
