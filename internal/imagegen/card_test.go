package imagegen

import (
	"bytes"
	"image/png"
	"testing"
	"time"

	"github.com/lox/skyra/internal/models"
)

func TestRenderCard(t *testing.T) {
	stats := &models.Stats{
		Temperature: &models.TemperatureStats{AvgFahrenheit: 77.5, VeryHotProb: 20},
		Rain:        &models.RainStats{RainyDayProb: 60},
		Wind:        &models.WindStats{VeryWindyProb: 100},
		SampleSize:  10,
	}
	data, err := RenderCard(models.Location{Latitude: 40.7128, Longitude: -74.006},
		time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC), stats)
	if err != nil {
		t.Fatalf("RenderCard: %v", err)
	}

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	if b := img.Bounds(); b.Dx() != CardWidth || b.Dy() != CardHeight {
		t.Errorf("size = %dx%d, want %dx%d", b.Dx(), b.Dy(), CardWidth, CardHeight)
	}

	// The full "Very windy" bar is filled to its right edge.
	r, g, b, _ := img.At(400+619, 320+3*56+6+10).RGBA()
	if uint8(r>>8) != barWind.R || uint8(g>>8) != barWind.G || uint8(b>>8) != barWind.B {
		t.Errorf("expected wind bar colour at end of full bar, got %d,%d,%d", r>>8, g>>8, b>>8)
	}
}

func TestRenderCard_EmptyStats(t *testing.T) {
	if _, err := RenderCard(models.Location{}, time.Now(), &models.Stats{SampleSize: 1}); err != nil {
		t.Fatalf("RenderCard: %v", err)
	}
}

func TestCardBars(t *testing.T) {
	bars := cardBars(&models.Stats{
		Temperature: &models.TemperatureStats{},
		Comfort:     &models.ComfortStats{VeryUncomfortableProb: 5},
	})
	if len(bars) != 3 {
		t.Fatalf("got %d bars, want 3", len(bars))
	}
	if bars[2].label != "Uncomfortable" || bars[2].pct != 5 {
		t.Errorf("unexpected last bar: %+v", bars[2])
	}
}

func TestCardCache(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewCardCache(time.Minute)
	c.now = func() time.Time { return now }

	if _, ok := c.Get("k"); ok {
		t.Fatal("empty cache should miss")
	}
	c.Set("k", []byte("png"))
	if data, ok := c.Get("k"); !ok || string(data) != "png" {
		t.Fatalf("Get = %q, %v", data, ok)
	}

	now = now.Add(2 * time.Minute)
	if _, ok := c.Get("k"); ok {
		t.Error("entry should expire")
	}

	c.Set("other", []byte("x"))
	if len(c.entries) != 1 {
		t.Errorf("expired entries should be dropped on Set, have %d", len(c.entries))
	}
}
