// Package errorf exposes the lol.Logger error constructors under short names.
// Each one builds the error with fmt.Errorf and logs it at its level.
package errorf

import (
	"bencode.lol/lol"
)

var F, E, W, I, D, T lol.Err

func init() {
	e := lol.Main.Errorf
	F, E, W, I, D, T = e.F, e.E, e.W, e.I, e.D, e.T
}
