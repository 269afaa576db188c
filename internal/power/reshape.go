package power

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/lox/skyra/internal/metrics"
	"github.com/lox/skyra/internal/models"
)

const dateKeyLayout = "20060102"

// ToTable reshapes per-variable series into a date-ordered table. Dates
// missing from one series are left absent for that variable only, and
// fill-value or implausible readings become absent at this boundary.
func ToTable(raw *Raw) (models.Table, error) {
	if raw == nil {
		return models.Table{}, &RetrievalError{Op: "reshape", Err: errors.New("no data")}
	}

	var table models.Table
	byKey := make(map[string]*models.Observation)
	rejected := 0

	for code, series := range raw.Parameter {
		v, ok := codeVariables[code]
		if !ok {
			return models.Table{}, &RetrievalError{Op: "reshape", Err: fmt.Errorf("unknown variable %q", code)}
		}
		for key, value := range series {
			obs, ok := byKey[key]
			if !ok {
				date, err := ParseDateKey(key)
				if err != nil {
					return models.Table{}, err
				}
				o := models.NewObservation(date)
				obs = &o
				byKey[key] = obs
			}
			if value == nil || *value == raw.FillValue {
				continue
			}
			if !Plausible(v, *value) {
				metrics.ReadingsRejected.WithLabelValues(string(v)).Inc()
				rejected++
				continue
			}
			obs.Set(v, *value)
		}
	}

	table.Rows = make([]models.Observation, 0, len(byKey))
	for _, obs := range byKey {
		table.Rows = append(table.Rows, *obs)
	}
	sort.Slice(table.Rows, func(i, j int) bool {
		return table.Rows[i].Date.Before(table.Rows[j].Date)
	})

	if rejected > 0 {
		log.Printf("power: dropped %d implausible readings", rejected)
	}
	metrics.RowsIngested.Add(float64(len(table.Rows)))
	return table, nil
}

// ParseDateKey parses an 8-digit YYYYMMDD key into a UTC date.
func ParseDateKey(key string) (time.Time, error) {
	if len(key) != 8 {
		return time.Time{}, &MalformedDateError{Key: key}
	}
	for _, r := range key {
		if r < '0' || r > '9' {
			return time.Time{}, &MalformedDateError{Key: key}
		}
	}
	t, err := time.Parse(dateKeyLayout, key)
	if err != nil {
		return time.Time{}, &MalformedDateError{Key: key, Err: err}
	}
	return t, nil
}
