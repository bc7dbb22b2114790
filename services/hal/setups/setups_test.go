package setups

import (
	"testing"

	"joypanel-go/errcode"
	"joypanel-go/types"
)

func TestShippedSetupsValidate(t *testing.T) {
	for _, c := range []types.Config{BitDogLab, Compact, Selected} {
		if err := c.Validate(); err != nil {
			t.Fatalf("%s: %v", c.Name, err)
		}
	}
	if Compact.Mapping.RangeX != 52 || Compact.Mapping.RangeY != 24 {
		t.Fatalf("compact ranges: %+v", Compact.Mapping)
	}
	if BitDogLab.Mapping.RangeX != 114 || BitDogLab.Mapping.RangeY != 50 {
		t.Fatal("withRanges must not mutate the source setup")
	}
}

func TestValidateRejects(t *testing.T) {
	cases := map[string]func(c *types.Config){
		"zero width":       func(c *types.Config) { c.Display.Width = 0 },
		"bounds mismatch":  func(c *types.Config) { c.Mapping.Height = 32 },
		"marker too big":   func(c *types.Config) { c.Mapping.MarkerSize = 65 },
		"center at max":    func(c *types.Config) { c.Mapping.Center = 4095 },
		"dead zone":        func(c *types.Config) { c.Mapping.DeadZone = 2048 },
		"no debounce":      func(c *types.Config) { c.Debounce.Window = 0 },
		"no frame period":  func(c *types.Config) { c.Timing.FramePeriod = 0 },
		"x range too wide": func(c *types.Config) { c.Mapping.RangeX = 200 },
		"y range too wide": func(c *types.Config) { c.Mapping.RangeY = 80 },
		"rest off-screen":  func(c *types.Config) { c.Mapping.BaseY = 60 },
	}
	for name, mutate := range cases {
		c := BitDogLab
		mutate(&c)
		err := c.Validate()
		if errcode.Of(err) != errcode.InvalidConfig {
			t.Fatalf("%s: want invalid_config, got %v", name, err)
		}
	}
}
