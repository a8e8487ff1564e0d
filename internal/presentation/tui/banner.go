package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the strata banner, shaded from deep to shallow layers.
func PrintBanner(w io.Writer) {
	p := termenv.EnvColorProfile()
	lines := []struct {
		text, color string
	}{
		{"   _____ _             _        ", "#7c2d12"},
		{"  / ____| |           | |       ", "#9a3412"},
		{" | (___ | |_ _ __ __ _| |_ __ _ ", "#c2410c"},
		{"  \\___ \\| __| '__/ _` | __/ _` |", "#ea580c"},
		{"  ____) | |_| | | (_| | || (_| |", "#f97316"},
		{" |_____/ \\__|_|  \\__,_|\\__\\__,_|", "#fdba74"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}
