// Command pregen writes the base 10000 digit table embedded by package ints.
package main

import (
	"fmt"
	"os"

	"bencode.lol/chk"
)

func main() {
	fh, err := os.Create("base10k.txt")
	if chk.E(err) {
		os.Exit(1)
	}
	defer fh.Close()
	for i := range 10000 {
		if _, err = fmt.Fprintf(fh, "%04d", i); chk.E(err) {
			os.Exit(1)
		}
	}
}
