package imagegen

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"strconv"
	"time"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/lox/skyra/internal/models"
)

// CardWidth and CardHeight are the standard Open Graph image dimensions.
const (
	CardWidth  = 1200
	CardHeight = 630
)

var (
	white     = color.RGBA{255, 255, 255, 255}
	lightGray = color.RGBA{200, 200, 200, 255}
	barTrack  = color.RGBA{60, 66, 90, 255}
	barHot    = color.RGBA{235, 110, 70, 255}
	barCold   = color.RGBA{110, 170, 240, 255}
	barRain   = color.RGBA{80, 140, 220, 255}
	barWind   = color.RGBA{150, 210, 190, 255}
	barHumid  = color.RGBA{200, 160, 230, 255}
)

type bar struct {
	label string
	pct   float64
	col   color.RGBA
}

func cardBars(stats *models.Stats) []bar {
	var bars []bar
	if t := stats.Temperature; t != nil {
		bars = append(bars,
			bar{"Very hot", t.VeryHotProb, barHot},
			bar{"Very cold", t.VeryColdProb, barCold},
		)
	}
	if r := stats.Rain; r != nil {
		bars = append(bars, bar{"Rain", r.RainyDayProb, barRain})
	}
	if w := stats.Wind; w != nil {
		bars = append(bars, bar{"Very windy", w.VeryWindyProb, barWind})
	}
	if c := stats.Comfort; c != nil {
		bars = append(bars, bar{"Uncomfortable", c.VeryUncomfortableProb, barHumid})
	}
	return bars
}

// RenderCard draws a PNG summary of the odds for one location and date.
func RenderCard(loc models.Location, target time.Time, stats *models.Stats) ([]byte, error) {
	img := image.NewRGBA(image.Rect(0, 0, CardWidth, CardHeight))
	drawBackground(img)

	drawText(img, target.Format("January 2"), 60, 60, 6, white)
	drawText(img, fmt.Sprintf("%s  |  %d observations", loc, stats.SampleSize), 60, 150, 3, lightGray)

	if t := stats.Temperature; t != nil {
		headline := fmt.Sprintf("%s F avg", strconv.FormatFloat(t.AvgFahrenheit, 'f', 1, 64))
		drawText(img, headline, 60, 210, 5, white)
	}

	y := 320
	for _, b := range cardBars(stats) {
		drawText(img, b.label, 60, y, 3, lightGray)
		drawBar(img, 400, y+6, 620, 28, b.pct, b.col)
		drawText(img, strconv.FormatFloat(b.pct, 'f', -1, 64)+"%", 1040, y, 3, white)
		y += 56
	}

	drawText(img, "Historical odds, not a forecast", 60, CardHeight-50, 2, lightGray)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode card: %w", err)
	}
	return buf.Bytes(), nil
}

func drawBackground(img *image.RGBA) {
	for y := 0; y < CardHeight; y++ {
		progress := float64(y) / float64(CardHeight)
		r := uint8(20 + progress*10)
		g := uint8(20 + progress*15)
		b := uint8(40 + progress*20)
		for x := 0; x < CardWidth; x++ {
			img.SetRGBA(x, y, color.RGBA{r, g, b, 255})
		}
	}
}

func drawBar(img *image.RGBA, x, y, width, height int, pct float64, col color.RGBA) {
	track := image.Rect(x, y, x+width, y+height)
	draw.Draw(img, track, image.NewUniform(barTrack), image.Point{}, draw.Src)

	filled := int(float64(width) * min(max(pct, 0), 100) / 100)
	if filled > 0 {
		draw.Draw(img, image.Rect(x, y, x+filled, y+height), image.NewUniform(col), image.Point{}, draw.Src)
	}
}

// drawText renders text with the fixed 7x13 face and scales it up, with
// (x, y) as the top-left corner of the scaled text.
func drawText(img *image.RGBA, text string, x, y, scale int, col color.Color) {
	face := basicfont.Face7x13
	width := font.MeasureString(face, text).Ceil()
	if width == 0 {
		return
	}
	height := face.Height

	small := image.NewRGBA(image.Rect(0, 0, width, height))
	d := &font.Drawer{
		Dst:  small,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.Point26_6{X: 0, Y: fixed.I(face.Ascent)},
	}
	d.DrawString(text)

	dst := image.Rect(x, y, x+width*scale, y+height*scale)
	draw.NearestNeighbor.Scale(img, dst, small, small.Bounds(), draw.Over, nil)
}
