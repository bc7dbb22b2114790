package render

import (
	"joypanel-go/services/hal/core"
	"joypanel-go/types"
)

// cornerLen is the reach of each corner mark from its corner pixel.
const cornerLen = 10

// DrawBorder draws border style onto a w x h canvas. Unknown styles draw nothing.
func DrawBorder(c core.Canvas, style uint8, w, h int16) {
	switch style {
	case types.BorderSingle:
		c.Rect(0, 0, w, h)
	case types.BorderDouble:
		c.Rect(0, 0, w, h)
		c.Rect(2, 2, w-4, h-4)
	case types.BorderCorners:
		c.HLine(0, cornerLen, 0)
		c.HLine(w-cornerLen, w-1, 0)
		c.HLine(0, cornerLen, h-1)
		c.HLine(w-cornerLen, w-1, h-1)
		c.VLine(0, 0, cornerLen)
		c.VLine(0, h-cornerLen, h-1)
		c.VLine(w-1, 0, cornerLen)
		c.VLine(w-1, h-cornerLen, h-1)
	}
}
