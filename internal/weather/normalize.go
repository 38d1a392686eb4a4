package weather

import (
	"strings"
	"time"
)

// EntriesPerDay is the number of 3-hour forecast entries in one day.
// Requesting days*EntriesPerDay entries yields whole days.
const EntriesPerDay = 8

const dateLayout = "2006-01-02"

// ToSnapshot reshapes a raw current-weather payload into a Snapshot.
// The timestamp is always `now` rather than anything the provider reports.
func ToSnapshot(raw Conditions, now time.Time) (Snapshot, error) {
	if len(raw.Weather) == 0 {
		return Snapshot{}, ErrMalformedPayload
	}
	return Snapshot{
		Temperature: raw.Main.Temp,
		Conditions:  raw.Weather[0].Description,
		Humidity:    raw.Main.Humidity,
		WindSpeed:   raw.Wind.Speed,
		Timestamp:   now.Format(time.RFC3339),
	}, nil
}

// ToForecastDays collapses the 3-hour entry list into one ForecastEntry per
// day by sampling the first entry of each 8-entry stride, preserving stride
// order. The date comes from the entry's dt_txt (portion before the first
// space) when present, else `today`.
func ToForecastDays(entries []Conditions, today time.Time) ([]ForecastEntry, error) {
	days := make([]ForecastEntry, 0, (len(entries)+EntriesPerDay-1)/EntriesPerDay)
	for i := 0; i < len(entries); i += EntriesPerDay {
		e := entries[i]
		if len(e.Weather) == 0 {
			return nil, ErrMalformedPayload
		}
		date := today.Format(dateLayout)
		if e.DtTxt != "" {
			date = strings.SplitN(e.DtTxt, " ", 2)[0]
		}
		days = append(days, ForecastEntry{
			Date:        date,
			Temperature: e.Main.Temp,
			Conditions:  e.Weather[0].Description,
		})
	}
	return days, nil
}
