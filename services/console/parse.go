package console

import (
	"strings"

	"joypanel-go/errcode"
	"joypanel-go/x/conv"
)

// Record is one decoded console line.
type Record struct {
	Prefix string
	Kind   string
	Fields map[string]string
}

// Int returns field k as an integer.
func (r Record) Int(k string) (int64, bool) {
	v, ok := r.Fields[k]
	if !ok {
		return 0, false
	}
	return conv.ParseInt(v)
}

// ParseLine decodes "<prefix> <kind> k=v ...". Surrounding whitespace and a
// trailing CR are ignored.
func ParseLine(s string) (Record, error) {
	tok := strings.Fields(s)
	if len(tok) < 2 || !strings.HasPrefix(tok[0], "[") || !strings.HasSuffix(tok[0], "]") {
		return Record{}, &errcode.E{C: errcode.Malformed, Op: "console.parse", Msg: "missing prefix or kind"}
	}
	r := Record{Prefix: tok[0], Kind: tok[1], Fields: make(map[string]string, len(tok)-2)}
	for _, kv := range tok[2:] {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			return Record{}, &errcode.E{C: errcode.Malformed, Op: "console.parse", Msg: "bad field " + kv}
		}
		r.Fields[k] = v
	}
	return r, nil
}
