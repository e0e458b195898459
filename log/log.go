// Package log exposes the lol.Logger level printers under short names.
package log

import (
	"bencode.lol/lol"
)

var F, E, W, I, D, T lol.LevelPrinter

func init() {
	l := lol.Main.Log
	F, E, W, I, D, T = l.F, l.E, l.W, l.I, l.D, l.T
}
