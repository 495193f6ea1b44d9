package edm

import (
	"strings"
	"testing"

	multierror "github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edmgen/edmgen/lib/payload"
	"github.com/edmgen/edmgen/lib/util"
)

func testGenerator() *Generator {
	g := NewGenerator(testLogger(), "edm_template.xml")
	g.Clock = testClock
	return g
}

func basicProjectInfo() *payload.ProjectInfo {
	return &payload.ProjectInfo{
		Site:     &payload.Site{SiteName: "Groningen Field"},
		Well:     &payload.Well{WellCommonName: "GRO-7"},
		Wellbore: &payload.Wellbore{WellboreName: "GRO-7 Main"},
	}
}

func TestGenerator_Generate_FullMerge(t *testing.T) {
	p := &payload.Payload{
		ProjectInfo: basicProjectInfo(),
		FormationInputs: &payload.FormationInputs{
			TemperatureProfiles: []payload.TemperaturePoint{
				{Depth: 0, Temperature: 70},
				{Depth: 5000, Temperature: 150},
			},
			PressureProfiles: []payload.PressurePoint{
				{Depth: 5000, Pressure: 2600, PressureType: payload.PressureTypePore},
			},
		},
	}

	out, err := testGenerator().GenerateFromString(`<export/>`, p)
	require.NoError(t, err)

	lines := strings.Split(out, "\n")
	require.True(t, len(lines) > 2)
	assert.Equal(t, XMLDeclaration, lines[0])
	assert.Equal(t, DataServicesPI, lines[1])

	doc, err := ParseDocument(out)
	require.NoError(t, err)
	export := doc.Export()

	site := findFirst(export, TagSite)
	require.NotNil(t, site)
	assert.Equal(t, "Groningen Field", attrValue(site, "SITE_NAME"))
	assert.Len(t, attrValue(site, "SITE_ID"), 5)

	well := findFirst(export, TagWell)
	require.NotNil(t, well)
	assert.Equal(t, "GRO-7", attrValue(well, "WELL_COMMON_NAME"))
	assert.Equal(t, attrValue(site, "SITE_ID"), attrValue(well, "SITE_ID"))

	wellbore := findFirst(export, TagWellbore)
	require.NotNil(t, wellbore)
	assert.Equal(t, "GRO-7 Main", attrValue(wellbore, "WELLBORE_NAME"))
	assert.Equal(t, attrValue(well, "WELL_ID"), attrValue(wellbore, "WELL_ID"))

	// the surface row folds into the group; only the deep row becomes a point
	tempGroup := findFirst(export, TagTempGroup)
	require.NotNil(t, tempGroup)
	assert.Equal(t, "70", attrValue(tempGroup, "SURFACE_AMBIENT_TEMP"))
	assert.Equal(t, testStamp, attrValue(tempGroup, "CREATE_DATE"))

	points := findAll(export, TagTempGradient)
	require.Len(t, points, 1)
	assert.Equal(t, "5000", attrValue(points[0], "TVD"))
	assert.Equal(t, "150", attrValue(points[0], "TEMPERATURE"))
	assert.Equal(t, attrValue(tempGroup, "TEMP_GRADIENT_GROUP_ID"), attrValue(points[0], "TEMP_GRADIENT_GROUP_ID"))

	pores := findAll(export, TagPorePressure)
	require.Len(t, pores, 1)
	assert.Equal(t, "2600", attrValue(pores[0], "PORE_PRESSURE"))
	assert.Equal(t, "10", attrValue(pores[0], "PORE_PRESSURE_EMW"))
	assert.Equal(t, "Y", attrValue(pores[0], "IS_PERMEABLE_ZONE"))

	scenario := findFirst(export, TagScenario)
	require.NotNil(t, scenario)
	assert.Equal(t, "GRO-7", attrValue(scenario, "NAME"))
	assert.Equal(t, attrValue(well, "WELL_ID"), attrValue(scenario, "WELL_ID"))
	assert.Equal(t, attrValue(wellbore, "WELLBORE_ID"), attrValue(scenario, "WELLBORE_ID"))
	assert.Equal(t, attrValue(tempGroup, "TEMP_GRADIENT_GROUP_ID"), attrValue(scenario, "TEMP_GRADIENT_GROUP_ID"))
	assert.Equal(t, attrValue(pores[0], "PORE_PRESSURE_GROUP_ID"), attrValue(scenario, "PORE_PRESSURE_GROUP_ID"))

	// no frac rows in the payload: no frac section and no dangling reference
	assert.Empty(t, findAll(export, TagFracGradient))
	assert.Empty(t, findAll(export, TagFracGroup))
	assert.Nil(t, scenario.SelectAttr("FRAC_GRADIENT_GROUP_ID"))
}

func TestGenerator_Generate_SuppliedIDsAbsorbed(t *testing.T) {
	p := &payload.Payload{
		ProjectInfo: &payload.ProjectInfo{
			Site:     &payload.Site{SiteID: "Sabc1", SiteName: "Site"},
			Well:     &payload.Well{WellID: "Wabc1", WellCommonName: "W-1"},
			Wellbore: &payload.Wellbore{WellboreID: "Babc1", WellboreName: "W-1 OH"},
		},
	}

	out, err := testGenerator().GenerateFromString(`<export/>`, p)
	require.NoError(t, err)

	doc, err := ParseDocument(out)
	require.NoError(t, err)
	assert.Equal(t, "Sabc1", attrValue(findFirst(doc.Export(), TagSite), "SITE_ID"))
	assert.Equal(t, "Wabc1", attrValue(findFirst(doc.Export(), TagWell), "WELL_ID"))
	assert.Equal(t, "Babc1", attrValue(findFirst(doc.Export(), TagWellbore), "WELLBORE_ID"))
}

func TestGenerator_Generate_DeepestFirstStableOrder(t *testing.T) {
	p := &payload.Payload{
		ProjectInfo: basicProjectInfo(),
		FormationInputs: &payload.FormationInputs{
			TemperatureProfiles: []payload.TemperaturePoint{
				{Depth: 1000, Temperature: 90},
				{Depth: 3000, Temperature: 120},
				{Depth: 3000, Temperature: 121},
				{Depth: 2000, Temperature: 100},
			},
		},
	}

	out, err := testGenerator().GenerateFromString(`<export/>`, p)
	require.NoError(t, err)

	doc, err := ParseDocument(out)
	require.NoError(t, err)

	points := findAll(doc.Export(), TagTempGradient)
	require.Len(t, points, 4)
	assert.Equal(t, "120", attrValue(points[0], "TEMPERATURE"))
	assert.Equal(t, "121", attrValue(points[1], "TEMPERATURE"))
	assert.Equal(t, "100", attrValue(points[2], "TEMPERATURE"))
	assert.Equal(t, "90", attrValue(points[3], "TEMPERATURE"))
}

func TestGenerator_Generate_PurgesReplacedSections(t *testing.T) {
	template := `<export>
<CD_SITE SITE_ID="Sold1" SITE_NAME="Stale"/>
<CD_SCENARIO SCENARIO_ID="Zold1"/>
<CD_TEMP_GRADIENT_GROUP TEMP_GRADIENT_GROUP_ID="Gold1"/>
<CD_TEMP_GRADIENT TEMP_GRADIENT_GROUP_ID="Gold1" TVD="9999"/>
</export>`
	p := &payload.Payload{
		ProjectInfo: basicProjectInfo(),
		FormationInputs: &payload.FormationInputs{
			TemperatureProfiles: []payload.TemperaturePoint{
				{Depth: 500, Temperature: 80},
			},
		},
	}

	out, err := testGenerator().GenerateFromString(template, p)
	require.NoError(t, err)

	doc, err := ParseDocument(out)
	require.NoError(t, err)
	export := doc.Export()

	assert.Len(t, findAll(export, TagSite), 1)
	assert.Len(t, findAll(export, TagScenario), 1)
	assert.Len(t, findAll(export, TagTempGroup), 1)
	points := findAll(export, TagTempGradient)
	require.Len(t, points, 1)
	assert.Equal(t, "500", attrValue(points[0], "TVD"))
	assert.NotContains(t, out, "Stale")
}

func TestGenerator_Generate_CasingSchematics(t *testing.T) {
	p := &payload.Payload{
		ProjectInfo: basicProjectInfo(),
		CasingSchematics: &payload.CasingSchematics{
			Materials: []payload.Material{
				{MaterialName: "L-80 Carbon", Grade: "L-80", MinYieldStress: util.Ptr(80000.0)},
				{MaterialName: "P-110 Carbon", Grade: "P-110"},
			},
			Assemblies: []payload.Assembly{
				{
					AssemblyName: "9 5/8in Production Casing",
					StringType:   "Casing",
					TopDepth:     0,
					BaseDepth:    8200,
					Components: []payload.Component{
						{ComponentType: "CASING", MaterialName: "L-80 Carbon", OuterDiameter: 9.625, InnerDiameter: 8.681, TopDepth: 0, BottomDepth: 8200},
						{ComponentType: "PKR", PackerName: "Prod Packer", PackerDepth: util.Ptr(8100.0), InnerDiameter: 4.0, TopDepth: 8100, BottomDepth: 8102},
					},
				},
			},
		},
	}

	out, err := testGenerator().GenerateFromString(`<export/>`, p)
	require.NoError(t, err)

	doc, err := ParseDocument(out)
	require.NoError(t, err)
	export := doc.Export()

	materials := findAll(export, TagMaterial)
	require.Len(t, materials, 2)
	assert.Equal(t, "80000", attrValue(materials[0], "MIN_YIELD_STRESS"))

	assemblies := findAll(export, TagAssembly)
	require.Len(t, assemblies, 1)
	assert.Equal(t, "9 5/8in Production Casing", attrValue(assemblies[0], "ASSEMBLY_NAME"))
	assert.Equal(t, "0", attrValue(assemblies[0], "MD_ASSEMBLY_TOP"))
	assert.Equal(t, "8200", attrValue(assemblies[0], "MD_ASSEMBLY_BASE"))
	assert.Equal(t, "Y", attrValue(assemblies[0], "IS_TOP_DOWN"))

	comps := findAll(export, TagAssemblyComp)
	require.Len(t, comps, 2)
	assert.Equal(t, "CAS", attrValue(comps[0], "SECT_TYPE_CODE"))
	assert.Equal(t, "0.0", attrValue(comps[0], "SEQUENCE_NO"))
	assert.Equal(t, attrValue(materials[0], "MATERIAL_ID"), attrValue(comps[0], "MATERIAL_ID"))
	assert.Equal(t, "PKR", attrValue(comps[1], "COMP_TYPE_CODE"))
	assert.Equal(t, "1.0", attrValue(comps[1], "SEQUENCE_NO"))
	// packers carry no pipe body attributes
	assert.Nil(t, comps[1].SelectAttr("OD_BODY"))

	packers := findAll(export, TagPacker)
	require.Len(t, packers, 1)
	assert.Equal(t, "Prod Packer", attrValue(packers[0], "PACKER_NAME"))
	assert.Equal(t, "8100", attrValue(packers[0], "PACKER_DEPTH"))
	assert.Equal(t, "8099", attrValue(packers[0], "EXPANSION_JOINT_DEPTH"))
	assert.Equal(t, attrValue(comps[1], "ASSEMBLY_COMP_ID"), attrValue(packers[0], "ASSEMBLY_COMP_ID"))

	// one design case per assembly, linked both ways
	cases := findAll(export, TagCase)
	require.Len(t, cases, 1)
	assert.Equal(t, "9 5/8in Production Casing", attrValue(cases[0], "CASE_NAME"))
	assert.Equal(t, attrValue(assemblies[0], "ASSEMBLY_ID"), attrValue(cases[0], "ASSEMBLY_ID"))
	scenario := findFirst(export, TagScenario)
	require.NotNil(t, scenario)
	assert.Equal(t, attrValue(scenario, "SCENARIO_ID"), attrValue(cases[0], "SCENARIO_ID"))
	assert.Equal(t, "Y", attrValue(cases[0], "IS_LINKED"))
}

func TestGenerator_Generate_MaterialResolutionPrecedence(t *testing.T) {
	p := &payload.Payload{
		ProjectInfo: basicProjectInfo(),
		CasingSchematics: &payload.CasingSchematics{
			Materials: []payload.Material{
				{MaterialID: "Mfir1", MaterialName: "First", Grade: "J-55"},
				{MaterialID: "Mnam1", MaterialName: "Named", Grade: "L-80"},
				{MaterialID: "Mgra1", MaterialName: "Graded", Grade: "P-110"},
			},
			Assemblies: []payload.Assembly{
				{
					AssemblyName: "Test String",
					BaseDepth:    1000,
					Components: []payload.Component{
						{ComponentType: "CASING", MaterialID: "Mgra1"},
						{ComponentType: "CASING", MaterialName: "Named"},
						{ComponentType: "CASING", Grade: "P-110"},
						{ComponentType: "CASING"},
					},
				},
			},
		},
	}

	out, err := testGenerator().GenerateFromString(`<export/>`, p)
	require.NoError(t, err)

	doc, err := ParseDocument(out)
	require.NoError(t, err)

	comps := findAll(doc.Export(), TagAssemblyComp)
	require.Len(t, comps, 4)
	assert.Equal(t, "Mgra1", attrValue(comps[0], "MATERIAL_ID"))
	assert.Equal(t, "Mnam1", attrValue(comps[1], "MATERIAL_ID"))
	assert.Equal(t, "Mgra1", attrValue(comps[2], "MATERIAL_ID"))
	assert.Equal(t, "Mfir1", attrValue(comps[3], "MATERIAL_ID"))
}

func TestGenerator_Generate_UnknownComponentTypeFails(t *testing.T) {
	p := &payload.Payload{
		ProjectInfo: basicProjectInfo(),
		CasingSchematics: &payload.CasingSchematics{
			Assemblies: []payload.Assembly{
				{
					AssemblyID: "Aerr1",
					Components: []payload.Component{
						{ComponentType: "DRILLPIPE"},
					},
				},
			},
		},
	}

	_, err := testGenerator().GenerateFromString(`<export/>`, p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown component type "DRILLPIPE"`)
	assert.Contains(t, err.Error(), "Aerr1")
}

func TestGenerator_Generate_ReferentialConflictFails(t *testing.T) {
	p := &payload.Payload{
		ProjectInfo: &payload.ProjectInfo{
			Site:     &payload.Site{SiteID: "Xdup1", SiteName: "Site"},
			Well:     &payload.Well{WellID: "Xdup1", WellCommonName: "W-1"},
			Wellbore: &payload.Wellbore{WellboreName: "W-1 OH"},
		},
	}

	_, err := testGenerator().GenerateFromString(`<export/>`, p)
	require.Error(t, err)
	merr, ok := err.(*multierror.Error)
	require.True(t, ok)
	assert.NotEmpty(t, merr.Errors)
}

func TestGenerator_Generate_HydrostaticRowsSkipped(t *testing.T) {
	p := &payload.Payload{
		ProjectInfo: basicProjectInfo(),
		FormationInputs: &payload.FormationInputs{
			PressureProfiles: []payload.PressurePoint{
				{Depth: 2000, Pressure: 900, PressureType: payload.PressureTypeHydrostatic},
			},
		},
	}

	out, err := testGenerator().GenerateFromString(`<export/>`, p)
	require.NoError(t, err)

	doc, err := ParseDocument(out)
	require.NoError(t, err)
	assert.Empty(t, findAll(doc.Export(), TagPorePressure))
	assert.Empty(t, findAll(doc.Export(), TagPoreGroup))
	assert.Empty(t, findAll(doc.Export(), TagFracGroup))
}

func TestGenerator_Generate_SurveyAndDLS(t *testing.T) {
	p := &payload.Payload{
		ProjectInfo: basicProjectInfo(),
		FormationInputs: &payload.FormationInputs{
			SurveyHeader: &payload.SurveyHeader{
				Name: "Planned Trajectory",
				Stations: []payload.SurveyStation{
					{MD: 0, Azimuth: 0, Inclination: 0},
					{MD: 4200, Azimuth: 182.5, Inclination: 45.0, TVD: util.Ptr(3900.0)},
				},
			},
			DLSOverrideGroup: &payload.DLSOverrideGroup{
				Overrides: []payload.DLSOverride{
					{TopDepth: 1000, BaseDepth: 2000, DoglegSeverity: 3.5},
					{TopDepth: 2000, BaseDepth: 3000, DoglegSeverity: 5.0},
				},
			},
		},
		Datum: &payload.Datum{DatumName: "Rotary Table", DatumElevation: util.Ptr(25.5)},
	}

	out, err := testGenerator().GenerateFromString(`<export/>`, p)
	require.NoError(t, err)

	doc, err := ParseDocument(out)
	require.NoError(t, err)
	export := doc.Export()

	header := findFirst(export, TagSurveyHeader)
	require.NotNil(t, header)
	assert.Equal(t, "Planned Trajectory", attrValue(header, "NAME"))

	stations := findAll(export, TagSurveyStation)
	require.Len(t, stations, 2)
	// stations sort deepest first
	assert.Equal(t, "4200", attrValue(stations[0], "MD"))
	assert.Equal(t, "3900", attrValue(stations[0], "TVD"))
	assert.Equal(t, "0.0", attrValue(stations[0], "SEQUENCE_NO"))
	assert.Equal(t, "0", attrValue(stations[1], "MD"))

	dlsGroup := findFirst(export, TagDLSGroup)
	require.NotNil(t, dlsGroup)
	scenario := findFirst(export, TagScenario)
	require.NotNil(t, scenario)
	assert.Equal(t, attrValue(scenario, "SCENARIO_ID"), attrValue(dlsGroup, "SCENARIO_ID"))
	assert.Equal(t, attrValue(header, "DEF_SURVEY_HEADER_ID"), attrValue(scenario, "DEF_SURVEY_HEADER_ID"))

	overrides := findAll(export, TagDLSOverride)
	require.Len(t, overrides, 2)
	assert.Equal(t, "2000", attrValue(overrides[0], "MD_TOP"))
	assert.Equal(t, "1000", attrValue(overrides[1], "MD_TOP"))

	datum := findFirst(export, TagDatum)
	require.NotNil(t, datum)
	assert.Equal(t, "Rotary Table", attrValue(datum, "DATUM_NAME"))
	assert.Equal(t, "25.5", attrValue(datum, "DATUM_ELEVATION"))
	assert.Equal(t, attrValue(scenario, "DATUM_ID"), attrValue(datum, "DATUM_ID"))
}

func TestGenerator_Generate_UnnamedAssembliesGetPositionalCaseNames(t *testing.T) {
	p := &payload.Payload{
		ProjectInfo: basicProjectInfo(),
		CasingSchematics: &payload.CasingSchematics{
			Assemblies: []payload.Assembly{
				{TopDepth: 0, BaseDepth: 1200},
				{TopDepth: 0, BaseDepth: 3500},
			},
		},
	}

	out, err := testGenerator().GenerateFromString(`<export/>`, p)
	require.NoError(t, err)

	doc, err := ParseDocument(out)
	require.NoError(t, err)

	cases := findAll(doc.Export(), TagCase)
	require.Len(t, cases, 2)
	assert.Equal(t, "Case 1", attrValue(cases[0], "CASE_NAME"))
	assert.Equal(t, "Case 2", attrValue(cases[1], "CASE_NAME"))
}

func TestGenerator_Generate_Idempotent(t *testing.T) {
	p := &payload.Payload{
		ProjectInfo: basicProjectInfo(),
		FormationInputs: &payload.FormationInputs{
			TemperatureProfiles: []payload.TemperaturePoint{
				{Depth: 0, Temperature: 70},
				{Depth: 5000, Temperature: 150},
			},
			PressureProfiles: []payload.PressurePoint{
				{Depth: 5000, Pressure: 2600, PressureType: payload.PressureTypePore},
				{Depth: 5000, Pressure: 3900, PressureType: payload.PressureTypeFrac},
			},
			SurveyHeader: &payload.SurveyHeader{
				Name: "Planned Trajectory",
				Stations: []payload.SurveyStation{
					{MD: 0}, {MD: 4200, Azimuth: 180, Inclination: 40},
				},
			},
			DLSOverrideGroup: &payload.DLSOverrideGroup{
				Overrides: []payload.DLSOverride{
					{TopDepth: 1000, BaseDepth: 2000, DoglegSeverity: 3.5},
				},
			},
		},
		CasingSchematics: &payload.CasingSchematics{
			Materials: []payload.Material{{MaterialName: "L-80 Carbon", Grade: "L-80"}},
			Assemblies: []payload.Assembly{
				{
					AssemblyName: "Production Casing",
					TopDepth:     0,
					BaseDepth:    8200,
					Components: []payload.Component{
						{ComponentType: "CASING", OuterDiameter: 9.625, InnerDiameter: 8.681, BottomDepth: 8200},
						{ComponentType: "PKR", TopDepth: 8100, BottomDepth: 8102, InnerDiameter: 4.0},
					},
				},
			},
		},
		Datum: &payload.Datum{DatumName: "Rotary Table"},
	}

	gen := testGenerator()
	first, err := gen.GenerateFromString(`<export/>`, p)
	require.NoError(t, err)

	// feeding a generated document back as the template with the same
	// payload must replace sections, never accumulate them
	second, err := gen.GenerateFromString(first, p)
	require.NoError(t, err)

	firstDoc, err := ParseDocument(first)
	require.NoError(t, err)
	secondDoc, err := ParseDocument(second)
	require.NoError(t, err)

	for _, tag := range []string{
		TagTopLevel, TagTightGroup, TagPolicy,
		TagSite, TagWell, TagWellbore, TagScenario,
		TagTempGroup, TagTempGradient,
		TagPoreGroup, TagPorePressure, TagFracGroup, TagFracGradient,
		TagDLSGroup, TagDLSOverride, TagSurveyHeader, TagSurveyStation,
		TagDatum, TagMaterial, TagAssembly, TagAssemblyComp, TagPacker, TagCase,
	} {
		assert.Equal(t,
			len(findAll(firstDoc.Export(), tag)),
			len(findAll(secondDoc.Export(), tag)),
			"element count for %s changed on regeneration", tag)
	}

	// identity rows keep the IDs the first run assigned
	assert.Equal(t,
		attrValue(findFirst(firstDoc.Export(), TagWell), "WELL_ID"),
		attrValue(findFirst(secondDoc.Export(), TagWell), "WELL_ID"))
	assert.Equal(t,
		attrValue(findFirst(firstDoc.Export(), TagWellbore), "WELLBORE_ID"),
		attrValue(findFirst(secondDoc.Export(), TagWellbore), "WELLBORE_ID"))
}

func TestGenerator_Generate_SurveyHeaderNameFromFirstPayloadStation(t *testing.T) {
	p := &payload.Payload{
		ProjectInfo: basicProjectInfo(),
		FormationInputs: &payload.FormationInputs{
			SurveyHeader: &payload.SurveyHeader{
				Stations: []payload.SurveyStation{
					{Name: "Tie-in", MD: 0},
					{Name: "TD", MD: 4200},
				},
			},
		},
	}

	out, err := testGenerator().GenerateFromString(`<export/>`, p)
	require.NoError(t, err)

	doc, err := ParseDocument(out)
	require.NoError(t, err)

	header := findFirst(doc.Export(), TagSurveyHeader)
	require.NotNil(t, header)
	// payload order decides the fallback, not the deepest-first sort
	assert.Equal(t, "Tie-in", attrValue(header, "NAME"))
}
