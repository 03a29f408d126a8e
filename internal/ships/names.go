// Package ships maps the game's internal ship type identifiers to the names
// players know them by.
package ships

import "strings"

// Table is an immutable ship type to display name lookup
type Table struct {
	names map[string]string
}

// coriolisNames follows the naming used by the Coriolis shipyard.
var coriolisNames = map[string]string{
	"adder":                    "Adder",
	"anaconda":                 "Anaconda",
	"asp":                      "Asp Explorer",
	"asp_scout":                "Asp Scout",
	"belugaliner":              "Beluga Liner",
	"cobramkiii":               "Cobra Mk III",
	"cobramkiv":                "Cobra Mk IV",
	"cobramkv":                 "Cobra Mk V",
	"clipper":                  "Panther Clipper",
	"corsair":                  "Corsair",
	"cutter":                   "Imperial Cutter",
	"diamondback":              "Diamondback Scout",
	"diamondbackxl":            "Diamondback Explorer",
	"dolphin":                  "Dolphin",
	"eagle":                    "Eagle",
	"empire_courier":           "Imperial Courier",
	"empire_eagle":             "Imperial Eagle",
	"empire_fighter":           "Imperial Fighter",
	"empire_trader":            "Imperial Clipper",
	"federation_corvette":      "Federal Corvette",
	"federation_dropship":      "Federal Dropship",
	"federation_dropship_mkii": "Federal Assault Ship",
	"federation_gunship":       "Federal Gunship",
	"federation_fighter":       "F63 Condor",
	"ferdelance":               "Fer-de-Lance",
	"hauler":                   "Hauler",
	"independant_trader":       "Keelback",
	"independent_fighter":      "Taipan Fighter",
	"krait_mkii":               "Krait Mk II",
	"krait_light":              "Krait Phantom",
	"mamba":                    "Mamba",
	"mandalay":                 "Mandalay",
	"orca":                     "Orca",
	"python":                   "Python",
	"python_nx":                "Python Mk II",
	"sidewinder":               "Sidewinder",
	"testbuggy":                "Scarab",
	"type6":                    "Type-6 Transporter",
	"type7":                    "Type-7 Transporter",
	"type8":                    "Type-8 Transporter",
	"type9":                    "Type-9 Heavy",
	"type9_military":           "Type-10 Defender",
	"typex":                    "Alliance Chieftain",
	"typex_2":                  "Alliance Crusader",
	"typex_3":                  "Alliance Challenger",
	"viper":                    "Viper Mk III",
	"viper_mkiv":               "Viper Mk IV",
	"vulture":                  "Vulture",
}

// NewTable returns the built-in ship name table.
func NewTable() *Table {
	return NewTableFrom(coriolisNames)
}

// NewTableFrom copies names into a new table. Keys are matched case-insensitively.
func NewTableFrom(names map[string]string) *Table {
	t := &Table{names: make(map[string]string, len(names))}
	for k, v := range names {
		t.names[strings.ToLower(k)] = v
	}
	return t
}

// DisplayName returns the display name for shipType, or shipType unchanged
// when the table has no entry for it.
func (t *Table) DisplayName(shipType string) string {
	if name, ok := t.names[strings.ToLower(shipType)]; ok {
		return name
	}
	return shipType
}

// Len returns the number of known ship types
func (t *Table) Len() int {
	return len(t.names)
}
