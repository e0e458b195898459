package encoder

import (
	"strconv"
	"strings"

	"bencode.lol/hex"
	"bencode.lol/textenc"
	"bencode.lol/value"
)

// Display renders v as an indented, human readable tree. Byte strings that
// are valid text in enc (nil meaning UTF-8) are shown quoted, anything else
// as hex with its length. Dictionary entries are shown in encoding order.
//
// Display never changes the bytes Encode produces.
func Display(v value.V, enc *textenc.T) string {
	if enc == nil {
		enc = textenc.UTF8
	}
	var sb strings.Builder
	display(&sb, v, enc, 0)
	return sb.String()
}

func indent(sb *strings.Builder, depth int) {
	for range depth {
		sb.WriteString("  ")
	}
}

func text(sb *strings.Builder, b []byte, enc *textenc.T) {
	if s, err := enc.Decode(b); err == nil {
		sb.WriteString(strconv.Quote(s))
		return
	}
	sb.WriteString("<")
	sb.WriteString(strconv.Itoa(len(b)))
	sb.WriteString(" bytes 0x")
	sb.Write(hex.EncAppend(nil, b))
	sb.WriteString(">")
}

func display(sb *strings.Builder, v value.V, enc *textenc.T, depth int) {
	switch t := v.(type) {
	case *value.Int:
		sb.WriteString(t.String())
	case *value.Bytes:
		text(sb, t.B, enc)
	case *value.List:
		if t.Len() == 0 {
			sb.WriteString("[]")
			return
		}
		sb.WriteString("[\n")
		for _, e := range t.Values() {
			indent(sb, depth+1)
			display(sb, e, enc, depth+1)
			sb.WriteString("\n")
		}
		indent(sb, depth)
		sb.WriteString("]")
	case *value.Dict:
		if t.Len() == 0 {
			sb.WriteString("{}")
			return
		}
		sb.WriteString("{\n")
		for _, e := range t.Sorted() {
			indent(sb, depth+1)
			text(sb, e.Key, enc)
			sb.WriteString(": ")
			display(sb, e.Value, enc, depth+1)
			sb.WriteString("\n")
		}
		indent(sb, depth)
		sb.WriteString("}")
	}
}
