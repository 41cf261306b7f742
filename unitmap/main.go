// Command unitmap previews how the sampler uniforms of a set of GLSL
// shaders land on texture units when every shader is live at once. It
// runs the same allocation the graphics package performs at runtime,
// so a layout that exhausts the units here will also fail there.
//
//	unitmap -units 8 effect.frag blur.frag composite.frag
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/pterm/pterm"

	"github.com/mcanthony/love-nacl/graphics"
)

var samplerRe = regexp.MustCompile(`(?m)^\s*uniform\s+(?:lowp\s+|mediump\s+|highp\s+)?sampler(?:2D|Cube|ExternalOES)\s+([A-Za-z_]\w*)`)

func main() {
	units := flag.Int("units", 8, "Hardware texture units to simulate")
	verbose := flag.Bool("v", false, "Also print per-unit program counts")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: unitmap [flags] shader.frag ...")
		fmt.Fprintln(os.Stderr)
		flag.PrintDefaults()
	}
	flag.Parse()

	initDisplay()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}
	if *units < 2 {
		pterm.Error.Println("need at least 2 texture units: unit 0 is reserved for uploads")
		os.Exit(2)
	}

	usable := *units - 1
	pool := graphics.NewTextureUnitPool()
	pool.EnsureCapacity(usable)

	data := [][]string{{"Shader", "Sampler", "Unit"}}
	var exhausted int
	for _, path := range flag.Args() {
		source, err := os.ReadFile(path)
		if err != nil {
			pterm.Error.Println(err)
			os.Exit(1)
		}

		names := samplerNames(string(source))
		if len(names) == 0 {
			data = append(data, []string{filepath.Base(path), "(no samplers)", ""})
			continue
		}

		// Each shader is one program with every sampler bound.
		bound := make([]uint32, usable)
		for _, name := range names {
			unit, err := pool.Assign(bound)
			if err != nil {
				data = append(data, []string{filepath.Base(path), name, "-"})
				exhausted++
				continue
			}
			pool.Retain(unit)
			bound[unit-1] = 1
			data = append(data, []string{filepath.Base(path), name, fmt.Sprintf("%d", unit)})
		}
	}

	pterm.DefaultTable.WithHasHeader().WithData(data).Render()

	if *verbose {
		usage := [][]string{{"Unit", "Programs"}}
		for i, n := range pool.Counts() {
			usage = append(usage, []string{fmt.Sprintf("%d", i+1), fmt.Sprintf("%d", n)})
		}
		pterm.DefaultTable.WithHasHeader().WithData(usage).Render()
	}

	if exhausted > 0 {
		pterm.Error.Printf("%d sampler(s) do not fit in %d texture units\n", exhausted, *units)
		os.Exit(1)
	}
	pterm.Info.Println("all samplers fit; unit 0 stays reserved for uploads")
}

// samplerNames extracts the distinct sampler uniform names in
// declaration order.
func samplerNames(source string) []string {
	var names []string
	seen := make(map[string]bool)
	for _, m := range samplerRe.FindAllStringSubmatch(source, -1) {
		if seen[m[1]] {
			continue
		}
		seen[m[1]] = true
		names = append(names, m[1])
	}
	return names
}

func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " unitmap ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
}
