package edm

// Registry entity types. IDs are globally unique across all of these.
const (
	TypeSite              = "SITE"
	TypeWell              = "WELL"
	TypeWellbore          = "WELLBORE"
	TypeScenario          = "SCENARIO"
	TypeTempGradientGroup = "TEMP_GRADIENT_GROUP"
	TypeTempGradient      = "TEMP_GRADIENT"
	TypePorePressureGroup = "PORE_PRESSURE_GROUP"
	TypePorePressure      = "PORE_PRESSURE"
	TypeFracGradientGroup = "FRAC_GRADIENT_GROUP"
	TypeFracGradient      = "FRAC_GRADIENT"
	TypeDLSOverrideGroup  = "DLS_OVERRIDE_GROUP"
	TypeDLSOverride       = "DLS_OVERRIDE"
	TypeSurveyHeader      = "SURVEY_HEADER"
	TypeSurveyStation     = "SURVEY_STATION"
	TypeDatum             = "DATUM"
	TypeMaterial          = "MATERIAL"
	TypeAssembly          = "ASSEMBLY"
	TypeAssemblyComp      = "ASSEMBLY_COMP"
	TypeCase              = "CASE"
	TypeAttachment        = "ATTACHMENT"
	TypeAttachmentJournal = "ATTACHMENT_JOURNAL"
)

// EDM element tags. The document is a flat list of these under <export>;
// "parent" and "child" are purely relational, via *_ID attributes.
const (
	TagExport          = "export"
	TagRootWrapper     = "root"
	TagTopLevel        = "TOPLEVEL"
	TagGeoSystem       = "CD_GEO_SYSTEM"
	TagGeoZone         = "CD_GEO_ZONE"
	TagGeoDatum        = "CD_GEO_DATUM"
	TagGeoEllipsoid    = "CD_GEO_ELLIPSOID"
	TagTightGroup      = "MD_SITE_TIGHT_GROUP"
	TagPolicy          = "CD_POLICY"
	TagSite            = "CD_SITE"
	TagWell            = "CD_WELL"
	TagWellbore        = "CD_WELLBORE"
	TagScenario        = "CD_SCENARIO"
	TagTempGroup       = "CD_TEMP_GRADIENT_GROUP"
	TagTempGradient    = "CD_TEMP_GRADIENT"
	TagPoreGroup       = "CD_PORE_PRESSURE_GROUP"
	TagPorePressure    = "CD_PORE_PRESSURE"
	TagFracGroup       = "CD_FRAC_GRADIENT_GROUP"
	TagFracGradient    = "CD_FRAC_GRADIENT"
	TagDLSGroup        = "TU_DLS_OVERRIDE_GROUP"
	TagDLSOverride     = "TU_DLS_OVERRIDE"
	TagSurveyHeader    = "CD_DEFINITIVE_SURVEY_HEADER"
	TagSurveyStation   = "CD_DEFINITIVE_SURVEY_STATION"
	TagDatum           = "CD_DATUM"
	TagMaterial        = "CD_MATERIAL"
	TagAssembly        = "CD_ASSEMBLY"
	TagAssemblyComp    = "CD_ASSEMBLY_COMP"
	TagPacker          = "CD_WEQP_PACKER"
	TagCase            = "CD_CASE"
	TagBinaryData      = "BINARY_DATA"
	TagAttachJournal   = "CD_ATTACHMENT_JOURNAL"
	TagAttachment      = "CD_ATTACHMENT"
	TagTempGradientOld = "CD_TEMPERATURE"
	TagFracPressureOld = "CD_FRAC_PRESSURE"
	TagHydrostaticOld  = "CD_HYDROSTATIC_PRESSURE"
)

// Audit attributes stamped on every constructed element.
const (
	AuditUserID = "API_USER"
	AuditAppID  = "XML_API"

	// the vendor's JDBC-style timestamp literal body
	tsLayout = "2006-01-02 15:04:05"
)

// Fixed identifiers the format requires for cross-references into the
// boilerplate sections.
const (
	DefaultTightGroupID = "T0001"
	PolicyID            = "Pzrgw9f4JC"
	PhasePrototype      = "PROTOTYPE"
)

// The consuming parser requires this exact two-line preamble.
const (
	XMLDeclaration = `<?xml version="1.0" standalone="no"?>`
	DataServicesPI = `<?DataServices DB_Major_Version=14;DB_Minor_Version=00;DB_Build_Version=000;DB_Version=EDM 5000.14.0 (14.00.00.000);expandPoint=CD_SCENARIO;?>`
)

// BinaryDataLibraryName is the BLOB library expected next to the template.
const BinaryDataLibraryName = "binary_data_library.xml"

// emwGradientFactor converts a pressure gradient to an equivalent mud
// weight: EMW = pressure / (emwGradientFactor * depth)
const emwGradientFactor = 0.052
