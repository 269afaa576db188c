package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/lox/skyra/internal/climate"
	"github.com/lox/skyra/internal/models"
	"github.com/lox/skyra/internal/power"
	"github.com/lox/skyra/internal/report"
)

type AnalyzeCmd struct {
	Lat       float64 `required:"" help:"Latitude in degrees, -90 to 90."`
	Lon       float64 `required:"" help:"Longitude in degrees, -180 to 180."`
	Date      string  `required:"" help:"Target date (YYYY-MM-DD)."`
	Activity  string  `help:"Activity to judge the odds against."`
	StartYear int     `name:"start-year" help:"First year of history. Defaults to ten years back."`
	EndYear   int     `name:"end-year" help:"Last year of history. Defaults to last year."`
	Export    string  `enum:"none,json,csv" default:"none" help:"Output format (none, json, csv)."`
}

func (c *AnalyzeCmd) Run(g *Globals) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	target, err := time.Parse("2006-01-02", c.Date)
	if err != nil {
		return fmt.Errorf("parse date: %w", err)
	}
	loc := models.Location{Latitude: c.Lat, Longitude: c.Lon}

	service := climate.NewService(power.NewClient(g.PowerURL, nil))
	stats, err := service.AnalyzeDate(ctx, climate.Query{
		Location:  loc,
		Date:      target,
		StartYear: c.StartYear,
		EndYear:   c.EndYear,
	})
	if err != nil {
		return err
	}

	var summary string
	if adv := g.advisor(); adv.Enabled() {
		summary, err = adv.Summarize(ctx, c.Activity, report.Means(stats))
		if err != nil {
			log.Printf("summary unavailable: %v", err)
		}
	}

	switch c.Export {
	case "json":
		doc := report.Export(loc, target, stats, time.Now())
		doc.LLMSummary = summary
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case "csv":
		return report.CSVWithSummary(os.Stdout, loc, target, stats, summary)
	default:
		fmt.Println(report.Text(loc, target, stats))
		if summary != "" {
			fmt.Printf("\nActivity Recommendation:\n%s\n", summary)
		}
		return nil
	}
}
