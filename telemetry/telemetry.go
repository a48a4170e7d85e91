// Package telemetry supplies the readings printed on the weather screen.
//
// Unknown values are NaN and are printed as "--".
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/load"
	"github.com/shirou/gopsutil/v3/mem"
)

// Readings is one sample.
type Readings struct {
	Temperature float64 // Degrees Fahrenheit
	Humidity    float64 // Relative humidity in percent
	Pressure    float64 // Millibar
	Load        float64 // One minute load average
	Memory      float64 // Used memory in percent
}

// Unknown has every value unknown.
var Unknown = Readings{
	Temperature: math.NaN(),
	Humidity:    math.NaN(),
	Pressure:    math.NaN(),
	Load:        math.NaN(),
	Memory:      math.NaN(),
}

// Sample is the reading shown when nothing better is configured.
var Sample = Readings{
	Temperature: 55,
	Humidity:    45,
	Pressure:    5,
	Load:        math.NaN(),
	Memory:      math.NaN(),
}

const unknown = "--"

// FormatTemperature returns e.g. "55 F".
func FormatTemperature(v float64) string {
	if math.IsNaN(v) {
		return unknown + " F"
	}
	return fmt.Sprintf("%.0f F", v)
}

// FormatHumidity returns e.g. "Humidity: 45%".
func FormatHumidity(v float64) string {
	return "Humidity: " + percent(v)
}

// FormatPressure returns e.g. "Pressure: 5 mb".
func FormatPressure(v float64) string {
	if math.IsNaN(v) {
		return "Pressure: " + unknown
	}
	return fmt.Sprintf("Pressure: %.0f mb", v)
}

// FormatLoad returns e.g. "Load: 0.42".
func FormatLoad(v float64) string {
	if math.IsNaN(v) {
		return "Load: " + unknown
	}
	return fmt.Sprintf("Load: %.2f", v)
}

// FormatMemory returns e.g. "Memory: 37%".
func FormatMemory(v float64) string {
	return "Memory: " + percent(v)
}

func percent(v float64) string {
	if math.IsNaN(v) {
		return unknown
	}
	return fmt.Sprintf("%.0f%%", v)
}

// Lines returns the formatted secondary readings, skipping unknown host
// statistics.
func (r Readings) Lines() []string {
	out := []string{FormatHumidity(r.Humidity), FormatPressure(r.Pressure)}
	if !math.IsNaN(r.Load) {
		out = append(out, FormatLoad(r.Load))
	}
	if !math.IsNaN(r.Memory) {
		out = append(out, FormatMemory(r.Memory))
	}
	return out
}

func (r Readings) String() string {
	return FormatTemperature(r.Temperature) + ", " + strings.Join(r.Lines(), ", ")
}

// Source produces readings.
type Source interface {
	Read(ctx context.Context) (Readings, error)
}

// Static always returns the same readings.
type Static Readings

// Read implements Source.
func (s Static) Read(context.Context) (Readings, error) {
	return Readings(s), nil
}

// Host reads the board temperature, load average and memory usage with
// gopsutil. Humidity and pressure are unknown.
type Host struct {
	// Sensor selects the temperature sensor by key substring
	// (default: "cpu").
	Sensor string

	temperatures func(context.Context) ([]host.TemperatureStat, error)
	avg          func(context.Context) (*load.AvgStat, error)
	memory       func(context.Context) (*mem.VirtualMemoryStat, error)
}

// NewHost returns a Host reading the local machine.
func NewHost() *Host {
	return &Host{
		Sensor:       "cpu",
		temperatures: host.SensorsTemperaturesWithContext,
		avg:          load.AvgWithContext,
		memory:       mem.VirtualMemoryWithContext,
	}
}

// Read implements Source. Statistics that cannot be read are left unknown
// and their errors are returned joined together with the readings.
func (h *Host) Read(ctx context.Context) (Readings, error) {
	r := Unknown
	var errs []error

	temps, err := h.temperatures(ctx)
	if len(temps) == 0 && err != nil {
		errs = append(errs, fmt.Errorf("telemetry: temperature: %w", err))
	}
	if c, ok := pickSensor(temps, h.Sensor); ok {
		r.Temperature = c*9/5 + 32
	}

	if a, err := h.avg(ctx); err != nil {
		errs = append(errs, fmt.Errorf("telemetry: load: %w", err))
	} else {
		r.Load = a.Load1
	}

	if m, err := h.memory(ctx); err != nil {
		errs = append(errs, fmt.Errorf("telemetry: memory: %w", err))
	} else {
		r.Memory = m.UsedPercent
	}
	return r, errors.Join(errs...)
}

// pickSensor returns the temperature in Celsius of the first sensor whose
// key contains key, falling back to the first sensor reporting a value.
func pickSensor(temps []host.TemperatureStat, key string) (float64, bool) {
	for _, t := range temps {
		if key != "" && strings.Contains(strings.ToLower(t.SensorKey), strings.ToLower(key)) {
			return t.Temperature, true
		}
	}
	for _, t := range temps {
		if t.Temperature != 0 {
			return t.Temperature, true
		}
	}
	return 0, false
}
