// Command joymon reads the firmware's status console from a serial port and
// prints decoded state, stats and fault records.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"slices"
	"strings"

	"joypanel-go/services/console"

	"go.bug.st/serial"
)

func main() {
	port := flag.String("port", "", "serial device of the board (e.g. /dev/ttyACM0)")
	baud := flag.Int("baud", 115200, "baud rate")
	flag.Parse()

	if *port == "" {
		log.Fatal("joymon: -port is required")
	}
	p, err := serial.Open(*port, &serial.Mode{BaudRate: *baud})
	if err != nil {
		log.Fatalf("joymon: open %s: %v", *port, err)
	}
	defer p.Close()
	log.Printf("joymon: listening on %s at %d baud", *port, *baud)

	if err := monitor(p, os.Stdout); err != nil {
		log.Fatalf("joymon: %v", err)
	}
}

// monitor prints one decoded record per console line until r is exhausted.
// Lines that do not parse (boot chatter, println logs) are echoed as-is.
func monitor(r io.Reader, w io.Writer) error {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if line == "" {
			continue
		}
		rec, err := console.ParseLine(line)
		if err != nil {
			fmt.Fprintln(w, line)
			continue
		}
		fmt.Fprintln(w, describe(rec))
	}
	return sc.Err()
}

var borderNames = map[string]string{"0": "single", "1": "double", "2": "corners"}

func describe(r console.Record) string {
	f := r.Fields
	switch r.Kind {
	case console.KindState:
		border := borderNames[f["border"]]
		if border == "" {
			border = f["border"]
		}
		return fmt.Sprintf("state: pwm=%s green=%s border=%s", onOff(f["pwm"]), onOff(f["green"]), border)
	case console.KindStats:
		return fmt.Sprintf("stats: frames=%s edges=%s/%s red=%s blue=%s marker=(%s,%s)",
			f["frames"], f["accepted"], f["rejected"], f["red"], f["blue"], f["x"], f["y"])
	case console.KindHeartbeat:
		return fmt.Sprintf("alive: seq=%s uptime=%ss", f["seq"], f["uptime"])
	case console.KindFault:
		if op := f["op"]; op != "" {
			return fmt.Sprintf("FAULT: %s (%s)", f["code"], op)
		}
		return "FAULT: " + f["code"]
	}
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	var b strings.Builder
	b.WriteString(r.Kind + ":")
	for _, k := range keys {
		b.WriteString(" " + k + "=" + f[k])
	}
	return b.String()
}

func onOff(v string) string {
	if v == "1" {
		return "on"
	}
	return "off"
}
