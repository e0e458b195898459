// Package chk exposes the lol.Logger check functions under short names, so
// error handling reads as `if err = f(); chk.E(err) { return }`.
package chk

import (
	"bencode.lol/lol"
)

var F, E, W, I, D, T lol.Chk

func init() {
	c := lol.Main.Check
	F, E, W, I, D, T = c.F, c.E, c.W, c.I, c.D, c.T
}
