package sheet

import (
	"fmt"
	"sort"
)

// Offset compensates the registration error of a physical printer. A
// positive DX (DY) means the printed dot lands further along the positive x
// (y) axis than requested; every computed corner is shifted by (-DX, -DY).
type Offset struct {
	DX, DY float64
}

// Printers holds the built-in printer presets. Measure a new printer by
// printing the outline guide on the ideal preset and comparing it with the
// physical sheet.
var Printers = map[string]Offset{
	"ideal":      {},
	"hp-psc2355": {DX: MM(0.6), DY: MM(-1)},
}

// LookupPrinter returns the offset registered under name in presets.
func LookupPrinter(presets map[string]Offset, name string) (Offset, error) {
	off, ok := presets[name]
	if !ok {
		return Offset{}, fmt.Errorf("%w: %q (known: %v)", ErrUnknownPrinter, name, PrinterNames(presets))
	}
	return off, nil
}

// PrinterNames returns the sorted preset names.
func PrinterNames(presets map[string]Offset) []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
