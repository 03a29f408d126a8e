package status

// PluginName is returned to the host from Start
const PluginName = "EDMC-StreamSource"

// SettingOutputDir is the settings key holding the output directory
const SettingOutputDir = "outdir"

// Output file names, one per tracked value
const (
	FileSystem                = "EDMC System.txt"
	FileStarPos               = "EDMC StarPos.txt"
	FileStation               = "EDMC Station.txt"
	FileBody                  = "EDMC Body.txt"
	FileLatLon                = "EDMC LatLon.txt"
	FileStationOrBody         = "EDMC Station or Body.txt"
	FileStationOrBodyOrSystem = "EDMC Station or Body or System.txt"
	FileShipType              = "EDMC ShipType.txt"
	FileShipName              = "EDMC ShipName.txt"
)

// AllFiles lists every output file in the order Start writes them
var AllFiles = []string{
	FileSystem,
	FileStarPos,
	FileStation,
	FileBody,
	FileLatLon,
	FileStationOrBody,
	FileStationOrBodyOrSystem,
	FileShipType,
	FileShipName,
}

// LatLon is a planetary surface position in degrees
type LatLon struct {
	Latitude  float64
	Longitude float64
}

// Snapshot is the last known value of every tracked field.
//
// An empty Body, Station or ShipName means the value is absent. LatLon is nil
// when the commander is not near a planetary surface.
type Snapshot struct {
	System                string
	StarPos               [3]float64
	Station               string
	Body                  string
	LatLon                *LatLon
	StationOrBody         string
	StationOrBodyOrSystem string
	ShipType              string
	ShipName              string
	OutputDir             string
}

// NewSnapshot returns a snapshot holding placeholder values, so that the
// output files show the field names until real data arrives.
func NewSnapshot(outputDir string) *Snapshot {
	return &Snapshot{
		System:                "System",
		Station:               "Station",
		Body:                  "Body",
		LatLon:                &LatLon{},
		StationOrBody:         "Station or Body",
		StationOrBodyOrSystem: "Station or Body or System",
		ShipType:              "Ship type",
		ShipName:              "Ship name",
		OutputDir:             outputDir,
	}
}

// clone returns a deep copy
func (s *Snapshot) clone() Snapshot {
	c := *s
	if s.LatLon != nil {
		ll := *s.LatLon
		c.LatLon = &ll
	}
	return c
}

// firstNonEmpty returns the first non-empty value
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
