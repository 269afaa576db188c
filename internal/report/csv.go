package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/lox/skyra/internal/models"
)

// Metric is one named, unit-tagged value of a Statistics Result.
type Metric struct {
	Name  string
	Value float64
	Unit  string
}

// Metrics flattens the present blocks of stats in report order.
func Metrics(stats *models.Stats) []Metric {
	var out []Metric
	add := func(name string, v float64, unit string) {
		out = append(out, Metric{Name: name, Value: v, Unit: unit})
	}
	if t := stats.Temperature; t != nil {
		add("Avg Temperature", t.AvgCelsius, "°C")
		add("Avg Temperature", t.AvgFahrenheit, "°F")
		add("Min Temperature", t.MinFahrenheit, "°F")
		add("Max Temperature", t.MaxFahrenheit, "°F")
		add("Temperature Std Dev", t.StdFahrenheit, "°F")
		add("Very Hot Probability", t.VeryHotProb, "%")
		add("Very Cold Probability", t.VeryColdProb, "%")
	}
	if r := stats.Rain; r != nil {
		add("Avg Rainfall", r.AvgMM, "mm")
		add("Max Rainfall", r.MaxMM, "mm")
		add("Rainy Day Probability", r.RainyDayProb, "%")
		add("Heavy Rain Probability", r.HeavyRainProb, "%")
	}
	if h := stats.SpecificHumidity; h != nil {
		add("Avg Specific Humidity", h.AvgGKg, "g/kg")
		add("Min Specific Humidity", h.MinGKg, "g/kg")
		add("Max Specific Humidity", h.MaxGKg, "g/kg")
		add("High Humidity Probability", h.HighHumidityProb, "%")
	}
	if w := stats.Wind; w != nil {
		add("Avg Wind Speed", w.AvgMS, "m/s")
		add("Avg Wind Speed", w.AvgMPH, "mph")
		add("Max Wind Speed", w.MaxMPH, "mph")
		add("Very Windy Probability", w.VeryWindyProb, "%")
		add("Extreme Wind Probability", w.ExtremeWindProb, "%")
	}
	if p := stats.Pressure; p != nil {
		add("Avg Surface Pressure", p.AvgKPa, "kPa")
		add("Avg Surface Pressure", p.AvgMB, "mb")
		add("Min Surface Pressure", p.MinMB, "mb")
		add("Max Surface Pressure", p.MaxMB, "mb")
		add("Low Pressure Probability", p.LowPressureProb, "%")
	}
	if c := stats.Comfort; c != nil {
		add("Very Uncomfortable Probability", c.VeryUncomfortableProb, "%")
	}
	return out
}

// CSV writes the analysis as Metric,Value,Unit rows.
func CSV(w io.Writer, loc models.Location, target time.Time, stats *models.Stats) error {
	records := [][]string{
		{"Metric", "Value", "Unit"},
		{"Latitude", num(loc.Latitude), "degrees"},
		{"Longitude", num(loc.Longitude), "degrees"},
		{"Target Date", target.Format("2006-01-02"), ""},
		{"Sample Size", strconv.Itoa(stats.SampleSize), "observations"},
	}
	for _, m := range Metrics(stats) {
		records = append(records, []string{m.Name, num(m.Value), m.Unit})
	}

	// Keep every column as text so values are written exactly as formatted.
	df := dataframe.LoadRecords(records,
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	if df.Err != nil {
		return fmt.Errorf("build csv frame: %w", df.Err)
	}
	if err := df.WriteCSV(w); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

// CSVWithSummary writes CSV preceded by summary as "# " comment lines. An
// empty summary writes plain CSV.
func CSVWithSummary(w io.Writer, loc models.Location, target time.Time, stats *models.Stats, summary string) error {
	if summary != "" {
		var b strings.Builder
		b.WriteString("# Activity Analysis\n")
		for _, line := range strings.Split(summary, "\n") {
			b.WriteString("# " + line + "\n")
		}
		if _, err := io.WriteString(w, b.String()); err != nil {
			return fmt.Errorf("write summary: %w", err)
		}
	}
	return CSV(w, loc, target, stats)
}
