package sheet_test

import (
	"fmt"

	"github.com/porticus-lab/tagsheet/sheet"
)

func ExamplePlace() {
	g := sheet.DECAdryDLW1736
	zone := sheet.ComputeZone(g, sheet.Printers["ideal"])

	// A 1000x500 pixel tag printed at 1200 dpi, in the second label of the
	// first row.
	r, err := sheet.Place(zone, g, sheet.Cell{Column: 1, Row: 0}, sheet.ImageSize{Width: 1000, Height: 500})
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("%.1fmm x %.1fmm at (%.1fmm, %.1fmm)\n",
		sheet.ToMM(r.Width), sheet.ToMM(r.Height), sheet.ToMM(r.X), sheet.ToMM(r.Y))
	// Output: 21.2mm x 10.6mm at (70.3mm, 260.4mm)
}

func ExampleAssign() {
	cells, _ := sheet.Assign([]string{"a.png", "b.png"}, 2, sheet.Cell{Column: 3}, sheet.DECAdryDLW1736, sheet.OverflowNewPage)
	for _, a := range cells {
		fmt.Println(a.Path, a.Cell.Column, a.Cell.Row)
	}
	// Output:
	// a.png 3 0
	// a.png 0 1
	// b.png 1 1
	// b.png 2 1
}
