// Package banner prints the ASCII-art startup banner shared by the
// fsort and fgen command-line front ends.
package banner

import (
	"fmt"

	"github.com/common-nighthawk/go-figure"
)

// Print renders title as ASCII art, framed by blank lines, the way the
// teacher's distributed-filesystem CLI announces which app it started.
func Print(title string) {
	fmt.Println()
	figure.NewFigure(title, "small", true).Print()
	fmt.Println()
}
