package types

// ---- Logical inputs/outputs ----

// Axis identifies one joystick analogue channel.
type Axis uint8

const (
	AxisX Axis = iota
	AxisY
)

// LED identifies a PWM-driven LED channel.
type LED uint8

const (
	LEDRed LED = iota
	LEDBlue
)

// Line identifies a monitored digital input.
type Line uint8

const (
	LineJoystick Line = iota // joystick push button
	LineButtonA              // secondary button
	lineCount
)

// LineCount is the number of monitored lines.
const LineCount = int(lineCount)

func (l Line) String() string {
	switch l {
	case LineJoystick:
		return "joystick"
	case LineButtonA:
		return "button_a"
	default:
		return "unknown"
	}
}

// ---- Border styles ----

const (
	BorderSingle  uint8 = iota // one outline
	BorderDouble               // two concentric outlines, inner inset by 2
	BorderCorners              // four L-shaped corner marks
	BorderStyles               // number of styles
)

// ---- Telemetry payloads (published on the bus) ----

// ControlValue mirrors the shared control state (retained on joy/state).
type ControlValue struct {
	PWMEnabled  bool  `json:"pwm_enabled"`
	GreenLEDOn  bool  `json:"green_led_on"`
	BorderStyle uint8 `json:"border_style"`
}

// StatsValue is the periodic loop summary (joy/stats).
type StatsValue struct {
	Frames   uint32 `json:"frames"`
	Accepted uint32 `json:"accepted"`
	Rejected uint32 `json:"rejected"`
	Red      uint16 `json:"red"`
	Blue     uint16 `json:"blue"`
	MarkerX  int16  `json:"x"`
	MarkerY  int16  `json:"y"`
}

// FaultValue reports the error that stopped the loop (joy/fault).
type FaultValue struct {
	Code string `json:"code"`
	Op   string `json:"op,omitempty"`
}

// HeartbeatValue is the periodic liveness tick (joy/heartbeat).
type HeartbeatValue struct {
	Seq     uint32 `json:"seq"`
	UptimeS uint32 `json:"uptime_s"`
}
