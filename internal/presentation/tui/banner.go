package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"
)

var bannerLines = []string{
	"  ┌─┐┌─┐┌┬┐┌┬┐┌─┐┌┐┌┌┬┐┌┐ ┌─┐┬─┐",
	"  │  │ │││││││├─┤│││ ││├┴┐├─┤├┬┘",
	"  └─┘└─┘┴ ┴┴ ┴┴ ┴┘└┘─┴┘└─┘┴ ┴┴└─",
}

var bannerColors = []string{"#818cf8", "#c084fc", "#f472b6"}

// PrintBanner writes the ASCII banner followed by the version to w.
// Colors degrade with the profile of the output (none when w is not a terminal).
func PrintBanner(w io.Writer, version string) {
	out := termenv.NewOutput(w)
	fmt.Fprintln(w)
	for i, line := range bannerLines {
		fmt.Fprintln(w, out.String(line).Foreground(out.Color(bannerColors[i%len(bannerColors)])))
	}
	fmt.Fprintln(w, out.String("  v"+strings.TrimSpace(version)).Faint())
	fmt.Fprintln(w)
}
