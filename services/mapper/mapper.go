// Package mapper converts raw joystick samples into LED duties and a marker
// position. It is pure: no shared state is read or written.
package mapper

import (
	"joypanel-go/types"
	"joypanel-go/x/mathx"
)

const dutyMax = 65535

// Point is the top-left corner of the marker in display coordinates.
type Point struct {
	X, Y int16
}

// Output is the result of one mapping.
type Output struct {
	Red    uint16 // driven by the Y axis
	Blue   uint16 // driven by the X axis
	Marker Point
}

// Mapper maps joystick samples for one MappingConfig. It is safe for
// concurrent use; Map only reads its fields.
type Mapper struct {
	cfg        types.MappingConfig
	maxX, maxY int16
}

// New precomputes the marker travel limits for cfg.
func New(cfg types.MappingConfig) *Mapper {
	return &Mapper{
		cfg:  cfg,
		maxX: max(cfg.Width-cfg.MarkerSize, 0),
		maxY: max(cfg.Height-cfg.MarkerSize, 0),
	}
}

// Map converts one pair of samples. Readings above ADCMax are clamped.
//
// The joystick is mounted rotated relative to the display: the Y axis moves
// the marker horizontally and the X axis moves it vertically (inverted).
func (m *Mapper) Map(xRaw, yRaw uint16) Output {
	c := m.cfg
	xRaw = min(xRaw, c.ADCMax)
	yRaw = min(yRaw, c.ADCMax)

	dx := mathx.Offset(xRaw, c.Center)
	dy := mathx.Offset(yRaw, c.Center)

	x := int32(c.BaseX) + mathx.Scale(dy, int32(c.RangeX), int32(c.ADCMax))
	y := int32(c.BaseY) - mathx.Scale(dx, int32(c.RangeY), int32(c.ADCMax))

	return Output{
		Red:  m.duty(dy),
		Blue: m.duty(dx),
		Marker: Point{
			X: int16(mathx.Clamp(x, 0, int32(m.maxX))),
			Y: int16(mathx.Clamp(y, 0, int32(m.maxY))),
		},
	}
}

// duty applies the dead zone and gain to one axis deflection.
func (m *Mapper) duty(delta int32) uint16 {
	d := uint32(mathx.Abs(delta))
	if d <= uint32(m.cfg.DeadZone) {
		return 0
	}
	return uint16(min(d*uint32(m.cfg.DutyGain), dutyMax))
}
