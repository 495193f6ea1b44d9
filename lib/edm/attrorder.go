package edm

import "golang.org/x/exp/slices"

// attrPrecedence is the canonical on-disk attribute order: identity and
// foreign keys first, then names and flags, then measured values, with
// the audit stamp closing every element. Attributes outside this list
// are emitted after it, sorted by name.
var attrPrecedence = []string{
	// primary and foreign keys
	"SITE_ID",
	"PROJECT_ID",
	"WELL_ID",
	"WELLBORE_ID",
	"SCENARIO_ID",
	"DATUM_ID",
	"ORIGINAL_TUBULAR_DATUM_ID",
	"TEMP_GRADIENT_GROUP_ID",
	"TEMP_GRADIENT_ID",
	"PORE_PRESSURE_GROUP_ID",
	"PORE_PRESSURE_ID",
	"FRAC_GRADIENT_GROUP_ID",
	"FRAC_GRADIENT_ID",
	"DLS_OVERRIDE_GROUP_ID",
	"DLS_OVERRIDE_ID",
	"DEF_SURVEY_HEADER_ID",
	"DEFINITIVE_SURVEY_ID",
	"MATERIAL_ID",
	"ASSEMBLY_ID",
	"ASSEMBLY_COMP_ID",
	"CASE_ID",
	"ATTACHMENT_ID",
	"ATTACHMENT_JOURNAL_ID",
	"TIGHT_GROUP_ID",
	"POLICY_ID",
	// names and descriptors
	"NAME",
	"SITE_NAME",
	"WELL_COMMON_NAME",
	"WELLBORE_NAME",
	"DATUM_NAME",
	"MATERIAL_NAME",
	"ASSEMBLY_NAME",
	"CASE_NAME",
	"GRADE",
	"PHASE",
	"LOC_COUNTRY",
	"STRING_TYPE",
	"STRING_CLASS",
	"SECT_TYPE_CODE",
	"COMP_TYPE_CODE",
	"PIPE_TYPE",
	"CONNECTION_NAME",
	"CONNECTION_TYPE",
	"DATA_ENTRY_MODE",
	// flags and ordering
	"IS_OFFSHORE",
	"IS_ACTIVE",
	"IS_LINKED",
	"IS_TOP_DOWN",
	"IS_PERMEABLE_ZONE",
	"IS_DEFAULT",
	"IS_READONLY",
	"WELLBORE_TYPE",
	"SEQUENCE_NO",
	// measured values
	"GEO_LATITUDE",
	"GEO_LONGITUDE",
	"WELLHEAD_DEPTH",
	"WATER_DEPTH",
	"DATUM_ELEVATION",
	"TEMPERATURE",
	"SURFACE_AMBIENT_TEMP",
	"PORE_PRESSURE",
	"PORE_PRESSURE_EMW",
	"FRAC_GRADIENT_PRESSURE",
	"FRAC_GRADIENT_EMW",
	"PRESSURE",
	"EMW",
	"TVD",
	"MD",
	"DEPTH",
	"TOP_DEPTH",
	"BASE_DEPTH",
	"MD_TOP",
	"MD_BASE",
	"MD_ASSEMBLY_TOP",
	"MD_ASSEMBLY_BASE",
	"MD_TOC",
	"PACKER_DEPTH",
	"PLUG_DEPTH",
	"AZIMUTH",
	"INCLINATION",
	"DOGLEG_SEVERITY",
	"ASSEMBLY_SIZE",
	"HOLE_SIZE",
	"OD_BODY",
	"ID_BODY",
	"LENGTH",
	"APPROXIMATE_WEIGHT",
	"PRESSURE_BURST",
	"PRESSURE_COLLAPSE",
	"AXIAL_RATING",
	"JOINT_STRENGTH",
	"COLLAPSE_RESISTANCE",
	"INTERNAL_YIELD_PRESSURE",
	"WALL_THICKNESS_PERCENT",
	"MUD_DENSITY_SHOE",
	"GRADE_YIELD_STRESS",
	"GRADE_MIN_YIELD_STRESS",
	"ULTIMATE_TENSILE_STRENGTH",
	"YOUNGS_MODULUS",
	"DENSITY",
	"THERMAL_EXPANSION_COEF",
	"POISSONS_RATIO",
	"MIN_YIELD_STRESS",
	// audit stamp
	"CREATE_DATE",
	"CREATE_USER_ID",
	"CREATE_APP_ID",
	"UPDATE_DATE",
	"UPDATE_USER_ID",
	"UPDATE_APP_ID",
}

var attrRank = func() map[string]int {
	m := make(map[string]int, len(attrPrecedence))
	for i, k := range attrPrecedence {
		m[k] = i
	}
	return m
}()

// orderAttrKeys returns the keys of attrs in canonical emission order.
func orderAttrKeys(attrs map[string]string) []string {
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	slices.SortStableFunc(keys, func(a, b string) bool {
		ra, aok := attrRank[a]
		rb, bok := attrRank[b]
		switch {
		case aok && bok:
			return ra < rb
		case aok:
			return true
		case bok:
			return false
		default:
			return a < b
		}
	})
	return keys
}
