package weather

// Conditions is the raw OpenWeatherMap payload shape shared by the current
// weather endpoint and each 3-hour forecast entry. It is decoded per call
// and never persisted.
type Conditions struct {
	Main    MainMetrics `json:"main"`
	Weather []Condition `json:"weather"`
	Wind    WindMetrics `json:"wind"`
	DtTxt   string      `json:"dt_txt,omitempty"`
}

// MainMetrics carries the numeric readings. Temperature is already in
// Celsius because every request passes units=metric.
type MainMetrics struct {
	Temp     float64 `json:"temp"`
	Humidity float64 `json:"humidity"`
}

// Condition is one entry of the provider's condition list; only the first
// entry's description is used.
type Condition struct {
	Description string `json:"description"`
}

type WindMetrics struct {
	Speed float64 `json:"speed"`
}

// ForecastResponse is the raw forecast payload: an ordered list of
// Conditions at 3-hour granularity.
type ForecastResponse struct {
	List []Conditions `json:"list"`
}

// Snapshot is the normalized current-weather view returned to the
// orchestrator.
type Snapshot struct {
	Temperature float64 `json:"temperature"`
	Conditions  string  `json:"conditions"`
	Humidity    float64 `json:"humidity"`
	WindSpeed   float64 `json:"wind_speed"`
	Timestamp   string  `json:"timestamp"`
}

// ForecastEntry is one normalized day of forecast.
type ForecastEntry struct {
	Date        string  `json:"date"`
	Temperature float64 `json:"temperature"`
	Conditions  string  `json:"conditions"`
}

// ForecastRequest is a validated get_forecast invocation.
type ForecastRequest struct {
	City string
	Days int
}
