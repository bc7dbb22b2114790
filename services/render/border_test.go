package render

import (
	"fmt"
	"testing"
)

type recCanvas struct{ ops []string }

func (c *recCanvas) Clear() { c.ops = append(c.ops, "clear") }
func (c *recCanvas) FillRect(x, y, w, h int16) {
	c.ops = append(c.ops, fmt.Sprintf("fill %d %d %d %d", x, y, w, h))
}
func (c *recCanvas) Rect(x, y, w, h int16) {
	c.ops = append(c.ops, fmt.Sprintf("rect %d %d %d %d", x, y, w, h))
}
func (c *recCanvas) HLine(x0, x1, y int16) {
	c.ops = append(c.ops, fmt.Sprintf("h %d %d %d", x0, x1, y))
}
func (c *recCanvas) VLine(x, y0, y1 int16) {
	c.ops = append(c.ops, fmt.Sprintf("v %d %d %d", x, y0, y1))
}
func (c *recCanvas) Flush() error { c.ops = append(c.ops, "flush"); return nil }

func TestDrawBorderStyles(t *testing.T) {
	cases := []struct {
		style uint8
		want  []string
	}{
		{0, []string{"rect 0 0 128 64"}},
		{1, []string{"rect 0 0 128 64", "rect 2 2 124 60"}},
		{2, []string{
			"h 0 10 0", "h 118 127 0", "h 0 10 63", "h 118 127 63",
			"v 0 0 10", "v 0 54 63", "v 127 0 10", "v 127 54 63",
		}},
		{3, nil},
		{255, nil},
	}
	for _, tc := range cases {
		c := &recCanvas{}
		DrawBorder(c, tc.style, 128, 64)
		if fmt.Sprint(c.ops) != fmt.Sprint(tc.want) {
			t.Fatalf("style %d: got %v want %v", tc.style, c.ops, tc.want)
		}
	}
}
