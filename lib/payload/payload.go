// Package payload defines the typed model for the JSON well payload.
//
// Objects in this package are a straight mapping of the camelCase wire
// schema; field-name translation to EDM attribute names happens in the
// edm package's rename tables, not here.
package payload

import (
	"encoding/json"
	"io"
	"os"

	"github.com/pkg/errors"
)

type Payload struct {
	ProjectInfo      *ProjectInfo      `json:"projectInfo"`
	FormationInputs  *FormationInputs  `json:"formationInputs"`
	CasingSchematics *CasingSchematics `json:"casingSchematics"`
	Datum            *Datum            `json:"datum"`
}

type ProjectInfo struct {
	Site     *Site     `json:"site"`
	Well     *Well     `json:"well"`
	Wellbore *Wellbore `json:"wellbore"`
}

type Site struct {
	SiteID       string   `json:"siteId"`
	ProjectID    string   `json:"projectId"`
	SiteName     string   `json:"siteName"`
	LocCountry   string   `json:"locCountry"`
	GeoLatitude  *float64 `json:"geoLatitude"`
	GeoLongitude *float64 `json:"geoLongitude"`
}

type Well struct {
	WellID         string   `json:"wellId"`
	SiteID         string   `json:"siteId"`
	WellCommonName string   `json:"wellCommonName"`
	IsOffshore     string   `json:"isOffshore"`
	WellheadDepth  *float64 `json:"wellheadDepth"`
	WaterDepth     *float64 `json:"waterDepth"`
}

type Wellbore struct {
	WellboreID   string `json:"wellboreId"`
	WellID       string `json:"wellId"`
	WellboreName string `json:"wellboreName"`
	IsActive     string `json:"isActive"`
	WellboreType string `json:"wellboreType"`
}

type FormationInputs struct {
	TemperatureProfiles []TemperaturePoint `json:"temperatureProfiles"`
	PressureProfiles    []PressurePoint    `json:"pressureProfiles"`
	DLSOverrideGroup    *DLSOverrideGroup  `json:"dlsOverrideGroup"`
	SurveyHeader        *SurveyHeader      `json:"surveyHeader"`
}

type TemperaturePoint struct {
	Depth       float64 `json:"depth"`
	Temperature float64 `json:"temperature"`
	Units       string  `json:"units"`
}

// PressureType discriminator values accepted on the wire
const (
	PressureTypePore        = "Pore"
	PressureTypeFrac        = "Frac"
	PressureTypeHydrostatic = "Hydrostatic"
)

type PressurePoint struct {
	Depth        float64  `json:"depth"`
	Pressure     float64  `json:"pressure"`
	PressureType string   `json:"pressureType"`
	EMW          *float64 `json:"emw"`
	Units        string   `json:"units"`
}

type DLSOverrideGroup struct {
	GroupID    string        `json:"groupId"`
	WellboreID string        `json:"wellboreId"`
	Overrides  []DLSOverride `json:"overrides"`
}

type DLSOverride struct {
	OverrideID     string  `json:"overrideId"`
	TopDepth       float64 `json:"topDepth"`
	BaseDepth      float64 `json:"baseDepth"`
	DoglegSeverity float64 `json:"doglegSeverity"`
}

type SurveyHeader struct {
	HeaderID   string          `json:"headerId"`
	WellboreID string          `json:"wellboreId"`
	Name       string          `json:"name"`
	Stations   []SurveyStation `json:"stations"`
}

type SurveyStation struct {
	StationID      string   `json:"stationId"`
	Name           string   `json:"name"`
	MD             float64  `json:"md"`
	Azimuth        float64  `json:"azimuth"`
	Inclination    float64  `json:"inclination"`
	TVD            *float64 `json:"tvd"`
	DoglegSeverity *float64 `json:"doglegSeverity"`
	DataEntryMode  string   `json:"dataEntryMode"`
}

type CasingSchematics struct {
	Materials  []Material `json:"materials"`
	Assemblies []Assembly `json:"assemblies"`
}

type Material struct {
	MaterialID              string   `json:"materialId"`
	MaterialName            string   `json:"materialName"`
	Grade                   string   `json:"grade"`
	ThermalExpansionCoef    *float64 `json:"thermalExpansionCoef"`
	PoissonsRatio           *float64 `json:"poissonsRatio"`
	UltimateTensileStrength *float64 `json:"ultimateTensileStrength"`
	MinYieldStress          *float64 `json:"minYieldStress"`
	YoungsModulus           *float64 `json:"youngsModulus"`
	Density                 *float64 `json:"density"`
}

type Assembly struct {
	AssemblyID     string      `json:"assemblyId"`
	WellboreID     string      `json:"wellboreId"`
	AssemblyName   string      `json:"assemblyName"`
	StringType     string      `json:"stringType"`
	StringClass    string      `json:"stringClass"`
	AssemblySize   *float64    `json:"assemblySize"`
	HoleSize       *float64    `json:"holeSize"`
	TopDepth       float64     `json:"topDepth"`
	BaseDepth      float64     `json:"baseDepth"`
	TOCDepth       *float64    `json:"tocDepth"`
	MudDensityShoe *float64    `json:"mudDensityShoe"`
	IsTopDown      string      `json:"isTopDown"`
	Components     []Component `json:"components"`
}

type Component struct {
	ComponentID   string `json:"componentId"`
	ComponentType string `json:"componentType"`

	// material resolution inputs, in precedence order
	MaterialID   string `json:"materialId"`
	MaterialName string `json:"materialName"`
	Grade        string `json:"grade"`

	OuterDiameter    float64  `json:"outerDiameter"`
	InnerDiameter    float64  `json:"innerDiameter"`
	Length           *float64 `json:"length"`
	TopDepth         float64  `json:"topDepth"`
	BottomDepth      float64  `json:"bottomDepth"`
	Weight           *float64 `json:"weight"`
	PressureBurst    *float64 `json:"pressureBurst"`
	PressureCollapse *float64 `json:"pressureCollapse"`
	AxialStrength    *float64 `json:"axialStrength"`

	ConnectionType  string `json:"connectionType"`
	ConnectionName  string `json:"connectionName"`
	ConnectionGrade string `json:"connectionGrade"`
	PipeType        string `json:"pipeType"`

	JointStrength           *float64 `json:"jointStrength"`
	PoissonsRatio           *float64 `json:"poissonsRatio"`
	MinYieldStress          *float64 `json:"minYieldStress"`
	UltimateTensileStrength *float64 `json:"ultimateTensileStrength"`
	ThermalExpansionCoef    *float64 `json:"thermalExpansionCoef"`
	YoungsModulus           *float64 `json:"youngsModulus"`
	WallThicknessPercent    *float64 `json:"wallThicknessPercent"`

	// packer-only fields
	PackerName  string   `json:"packerName"`
	PackerDepth *float64 `json:"packerDepth"`
	PlugDepth   *float64 `json:"plugDepth"`
}

type Datum struct {
	DatumID        string   `json:"datumId"`
	WellID         string   `json:"wellId"`
	DatumName      string   `json:"datumName"`
	DatumElevation *float64 `json:"datumElevation"`
}

func LoadFile(file string) (*Payload, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, errors.Wrapf(err, "could not read payload file %s", file)
	}
	defer f.Close()

	p, err := Read(f)
	if err != nil {
		return nil, errors.Wrapf(err, "could not parse payload file %s", file)
	}
	return p, nil
}

func Read(r io.Reader) (*Payload, error) {
	p := &Payload{}
	err := json.NewDecoder(r).Decode(p)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// PressurePointsOfType returns the pressure rows carrying the given
// discriminator, preserving payload order.
func (f *FormationInputs) PressurePointsOfType(pressureType string) []PressurePoint {
	if f == nil {
		return nil
	}
	out := []PressurePoint{}
	for _, p := range f.PressureProfiles {
		if p.PressureType == pressureType {
			out = append(out, p)
		}
	}
	return out
}

// SurfaceTemperature returns the temperature of the depth==0 row, if any.
// The surface row never becomes its own gradient element; it folds into the
// group's SURFACE_AMBIENT_TEMP attribute.
func (f *FormationInputs) SurfaceTemperature() *float64 {
	if f == nil {
		return nil
	}
	for _, p := range f.TemperatureProfiles {
		if p.Depth == 0 {
			t := p.Temperature
			return &t
		}
	}
	return nil
}
