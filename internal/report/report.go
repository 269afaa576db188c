package report

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/lox/skyra/internal/models"
)

const rule = "======================================================================"
const thinRule = "----------------------------------------------------------------------"

// DataSource names the upstream climate service in exports.
const DataSource = "NASA POWER API"

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Text renders the human-readable probability report.
func Text(loc models.Location, target time.Time, stats *models.Stats) string {
	var b strings.Builder
	line := func(format string, args ...any) {
		fmt.Fprintf(&b, format+"\n", args...)
	}

	line(rule)
	line("WEATHER PROBABILITY REPORT")
	line(rule)
	line("")
	line("Location: Latitude %s°, Longitude %s°", num(loc.Latitude), num(loc.Longitude))
	line("Target Date: %s", target.Format("January 02, 2006"))
	line("Analysis based on %d historical observations", stats.SampleSize)
	line("")
	line(thinRule)

	if t := stats.Temperature; t != nil {
		line("")
		line("TEMPERATURE:")
		line("  • Average: %s°F (%s°C)", num(t.AvgFahrenheit), num(t.AvgCelsius))
		line("  • Historical Range: %s°F to %s°F", num(t.MinFahrenheit), num(t.MaxFahrenheit))
		line("  • Standard Deviation: %s°F", num(t.StdFahrenheit))
		line("  • Probability of VERY HOT (>90°F): %s%%", num(t.VeryHotProb))
		line("  • Probability of VERY COLD (<32°F): %s%%", num(t.VeryColdProb))
	}

	if r := stats.Rain; r != nil {
		line("")
		line("RAIN:")
		line("  • Avg rainfall: %s mm", num(r.AvgMM))
		line("  • Max rainfall: %s mm", num(r.MaxMM))
		line("  • Probability of rain (>0.1mm): %s%%", num(r.RainyDayProb))
		line("  • Probability of heavy rain (>10mm): %s%%", num(r.HeavyRainProb))
	}

	if h := stats.SpecificHumidity; h != nil {
		line("")
		line("SPECIFIC HUMIDITY:")
		line("  • Average: %s g/kg", num(h.AvgGKg))
		line("  • Historical Range: %s - %s g/kg", num(h.MinGKg), num(h.MaxGKg))
		line("  • Probability of high humidity (>15 g/kg): %s%%", num(h.HighHumidityProb))
	}

	if w := stats.Wind; w != nil {
		line("")
		line("WIND (at 10m height):")
		line("  • Average Speed: %s mph (%s m/s)", num(w.AvgMPH), num(w.AvgMS))
		line("  • Maximum recorded: %s mph", num(w.MaxMPH))
		line("  • Probability of VERY WINDY (>10mph): %s%%", num(w.VeryWindyProb))
		line("  • Probability of EXTREME WIND (>15mph): %s%%", num(w.ExtremeWindProb))
	}

	if p := stats.Pressure; p != nil {
		line("")
		line("SURFACE PRESSURE:")
		line("  • Average: %s mb (%s kPa)", num(p.AvgMB), num(p.AvgKPa))
		line("  • Historical Range: %s - %s mb", num(p.MinMB), num(p.MaxMB))
		line("  • Probability of low pressure (<1010mb): %s%%", num(p.LowPressureProb))
	}

	if c := stats.Comfort; c != nil {
		line("")
		line("COMFORT LEVEL:")
		line("  • Probability of VERY UNCOMFORTABLE conditions: %s%%", num(c.VeryUncomfortableProb))
	}

	line("")
	line(rule)
	line("")
	line("NOTE: Probabilities are based on historical data, not forecasts.")
	b.WriteString(rule)
	return b.String()
}

// Metadata describes the request an export was produced for.
type Metadata struct {
	Location     models.Location `json:"location"`
	TargetDate   string          `json:"target_date"`
	AnalysisDate string          `json:"analysis_date"`
	DataSource   string          `json:"data_source"`
	SampleSize   int             `json:"sample_size"`
}

// Document is the structured export of one analysis.
type Document struct {
	Metadata   Metadata      `json:"metadata"`
	Statistics *models.Stats `json:"statistics"`
	LLMSummary string        `json:"llm_summary,omitempty"`
}

// Export builds the structured export document.
func Export(loc models.Location, target time.Time, stats *models.Stats, now time.Time) Document {
	return Document{
		Metadata: Metadata{
			Location:     loc,
			TargetDate:   target.Format("2006-01-02"),
			AnalysisDate: now.Format("2006-01-02"),
			DataSource:   DataSource,
			SampleSize:   stats.SampleSize,
		},
		Statistics: stats,
	}
}
