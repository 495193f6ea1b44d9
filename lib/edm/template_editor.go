package edm

import (
	"path/filepath"
	"time"

	"github.com/beevik/etree"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/edmgen/edmgen/lib/payload"
	"github.com/edmgen/edmgen/lib/registry"
	"github.com/edmgen/edmgen/lib/util"
)

// TemplateEditor patches an existing fully-formed export in place.
// Unlike the Generator it never rebuilds the scenario graph: existing
// entities are located by scanning, only supplied fields are mutated,
// and list sections are respliced under the group IDs the document
// already carries. Nothing new is linked; a document missing a group
// simply does not get rows for it.
type TemplateEditor struct {
	logger       zerolog.Logger
	doc          *etree.Document
	templateFile string
	reg          *registry.Registry

	// Clock is the audit-stamp time source, overridable in tests.
	Clock func() time.Time
}

func NewTemplateEditor(logger zerolog.Logger, templateFile string) (*TemplateEditor, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromFile(templateFile); err != nil {
		return nil, errors.Wrapf(err, "failed to load template %s", templateFile)
	}
	if doc.Root() == nil {
		return nil, errors.Errorf("template %s has no root element", templateFile)
	}
	return &TemplateEditor{
		logger:       logger,
		doc:          doc,
		templateFile: templateFile,
		reg:          registry.NewRegistry(),
		Clock:        time.Now,
	}, nil
}

// NewTemplateEditorFromString parses the document from a string.
func NewTemplateEditorFromString(logger zerolog.Logger, xml string) (*TemplateEditor, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(xml); err != nil {
		return nil, errors.Wrap(err, "failed to parse template")
	}
	if doc.Root() == nil {
		return nil, errors.New("template has no root element")
	}
	return &TemplateEditor{
		logger: logger,
		doc:    doc,
		reg:    registry.NewRegistry(),
		Clock:  time.Now,
	}, nil
}

func (e *TemplateEditor) root() *etree.Element {
	return e.doc.Root()
}

// entityIDs holds the identifiers discovered by scanning the document.
// Empty fields mean the document does not carry that entity.
type entityIDs struct {
	SiteID         string
	WellID         string
	WellboreID     string
	ScenarioID     string
	TempGroupID    string
	PoreGroupID    string
	FracGroupID    string
	DLSGroupID     string
	SurveyHeaderID string
	DatumID        string
}

// extractEntityIDs scans for the first element of each entity kind.
// Group references come off the scenario, the same place the
// consuming software reads them.
func (e *TemplateEditor) extractEntityIDs() entityIDs {
	var ids entityIDs
	if el := findFirst(e.root(), TagSite); el != nil {
		ids.SiteID = attrValue(el, "SITE_ID")
	}
	if el := findFirst(e.root(), TagWell); el != nil {
		ids.WellID = attrValue(el, "WELL_ID")
	}
	if el := findFirst(e.root(), TagWellbore); el != nil {
		ids.WellboreID = attrValue(el, "WELLBORE_ID")
	}
	if el := findFirst(e.root(), TagScenario); el != nil {
		ids.ScenarioID = attrValue(el, "SCENARIO_ID")
		ids.TempGroupID = attrValue(el, "TEMP_GRADIENT_GROUP_ID")
		ids.PoreGroupID = attrValue(el, "PORE_PRESSURE_GROUP_ID")
		ids.FracGroupID = attrValue(el, "FRAC_GRADIENT_GROUP_ID")
		ids.SurveyHeaderID = attrValue(el, "DEF_SURVEY_HEADER_ID")
		ids.DatumID = attrValue(el, "DATUM_ID")
	}
	if el := findFirst(e.root(), TagDLSGroup); el != nil {
		ids.DLSGroupID = attrValue(el, "DLS_OVERRIDE_GROUP_ID")
	}
	return ids
}

// UpdateElementAttribute sets one attribute on every element matching
// tag and ID, refreshing the update stamp.
func (e *TemplateEditor) UpdateElementAttribute(tag, idAttr, idValue, attrName, attrValue string) bool {
	matched := findByAttr(e.root(), tag, idAttr, idValue)
	if len(matched) == 0 {
		e.logger.Warn().Str("tag", tag).Str(idAttr, idValue).Msg("No elements found to update")
		return false
	}
	for _, el := range matched {
		el.CreateAttr(attrName, attrValue)
		if attrName != "CREATE_DATE" && attrName != "UPDATE_DATE" {
			stampUpdate(el, e.Clock())
		}
	}
	return true
}

// elementNameAttrs maps tags to their display-name attribute.
var elementNameAttrs = map[string]string{
	TagSite:     "SITE_NAME",
	TagWell:     "WELL_COMMON_NAME",
	TagWellbore: "WELLBORE_NAME",
	TagDatum:    "DATUM_NAME",
	TagAssembly: "ASSEMBLY_NAME",
	TagCase:     "CASE_NAME",
}

// UpdateElementName sets the display name of the matched element using
// the name attribute conventional for its tag.
func (e *TemplateEditor) UpdateElementName(tag, idAttr, idValue, name string) bool {
	nameAttr, ok := elementNameAttrs[tag]
	if !ok {
		nameAttr = "NAME"
	}
	return e.UpdateElementAttribute(tag, idAttr, idValue, nameAttr, name)
}

// UpdateFromPayload applies every supplied payload section to the
// document in place.
func (e *TemplateEditor) UpdateFromPayload(p *payload.Payload, injectBinary bool) error {
	ids := e.extractEntityIDs()

	e.updateProjectNames(p.ProjectInfo, ids)

	if f := p.FormationInputs; f != nil {
		if f.TemperatureProfiles != nil && ids.WellID != "" && ids.WellboreID != "" && ids.TempGroupID != "" {
			e.updateTemperatureProfiles(ids, f.TemperatureProfiles)
		}
		if f.PressureProfiles != nil && ids.WellID != "" && ids.WellboreID != "" &&
			ids.PoreGroupID != "" && ids.FracGroupID != "" {
			e.updatePressureProfiles(ids, f.PressureProfiles)
		}
		if f.DLSOverrideGroup != nil && ids.WellID != "" && ids.WellboreID != "" &&
			ids.ScenarioID != "" && ids.DLSGroupID != "" {
			e.updateDLSOverrides(ids, f.DLSOverrideGroup.Overrides)
		}
		if f.SurveyHeader != nil && ids.WellID != "" && ids.WellboreID != "" && ids.SurveyHeaderID != "" {
			e.updateSurveyStations(ids, f.SurveyHeader.Stations)
		}
	}

	e.updateDatumFields(p.Datum, ids)

	if cs := p.CasingSchematics; cs != nil && cs.Assemblies != nil && ids.WellID != "" && ids.WellboreID != "" {
		if err := e.updateCasingAssemblies(ids, cs); err != nil {
			return err
		}
	}

	if injectBinary {
		libFile := filepath.Join(filepath.Dir(e.templateFile), BinaryDataLibraryName)
		if err := e.injectBinaryData(libFile, ids); err != nil {
			e.logger.Warn().Err(err).Msg("Binary data injection skipped")
		}
	}
	return nil
}

// updateProjectNames patches only the display names of existing
// identity rows; the scenario keeps tracking the well's common name.
func (e *TemplateEditor) updateProjectNames(pi *payload.ProjectInfo, ids entityIDs) {
	if pi == nil {
		return
	}
	if pi.Site != nil && pi.Site.SiteName != "" && ids.SiteID != "" {
		e.UpdateElementName(TagSite, "SITE_ID", ids.SiteID, pi.Site.SiteName)
	}
	if pi.Well != nil && pi.Well.WellCommonName != "" && ids.WellID != "" {
		e.UpdateElementName(TagWell, "WELL_ID", ids.WellID, pi.Well.WellCommonName)
		if ids.ScenarioID != "" {
			e.UpdateElementName(TagScenario, "SCENARIO_ID", ids.ScenarioID, pi.Well.WellCommonName)
		}
	}
	if pi.Wellbore != nil && pi.Wellbore.WellboreName != "" && ids.WellboreID != "" {
		e.UpdateElementName(TagWellbore, "WELLBORE_ID", ids.WellboreID, pi.Wellbore.WellboreName)
	}
}

func (e *TemplateEditor) updateDatumFields(d *payload.Datum, ids entityIDs) {
	if d == nil || ids.DatumID == "" {
		return
	}
	if d.DatumName != "" {
		e.UpdateElementName(TagDatum, "DATUM_ID", ids.DatumID, d.DatumName)
	}
	if d.DatumElevation != nil {
		e.UpdateElementAttribute(TagDatum, "DATUM_ID", ids.DatumID, "DATUM_ELEVATION", fstr(*d.DatumElevation))
	}
}

// removeByAttr detaches descendants of root with the tag whose attr
// equals value.
func (e *TemplateEditor) removeByAttr(tag, attr, value string) {
	for _, el := range findByAttr(e.root(), tag, attr, value) {
		detach(el)
	}
}

// findGroupAnchor locates the splice anchor for a group.
func (e *TemplateEditor) findGroupAnchor(tag, idAttr, groupID string) *etree.Element {
	matched := findByAttr(e.root(), tag, idAttr, groupID)
	if len(matched) == 0 {
		e.logger.Warn().Str("tag", tag).Str(idAttr, groupID).Msg("Group anchor not found")
		return nil
	}
	return matched[0]
}

// updateTemperatureProfiles resplices the gradient rows under the
// document's existing group, refreshing the group's surface ambient
// temperature from a depth-zero row when present.
func (e *TemplateEditor) updateTemperatureProfiles(ids entityIDs, profiles []payload.TemperaturePoint) {
	e.removeByAttr(TagTempGradient, "TEMP_GRADIENT_GROUP_ID", ids.TempGroupID)

	for _, p := range profiles {
		if p.Depth == 0 {
			e.UpdateElementAttribute(TagTempGroup, "TEMP_GRADIENT_GROUP_ID", ids.TempGroupID,
				"SURFACE_AMBIENT_TEMP", fstr(p.Temperature))
			break
		}
	}

	anchor := e.findGroupAnchor(TagTempGroup, "TEMP_GRADIENT_GROUP_ID", ids.TempGroupID)
	if anchor == nil {
		return
	}

	points := make([]payload.TemperaturePoint, 0, len(profiles))
	for _, p := range profiles {
		if p.Depth > 0 {
			points = append(points, p)
		}
	}
	sortDeepestFirst(points, func(p payload.TemperaturePoint) float64 { return p.Depth })

	els := make([]*etree.Element, 0, len(points))
	for _, p := range points {
		els = append(els, newElement(TagTempGradient, map[string]string{
			"WELL_ID":                ids.WellID,
			"WELLBORE_ID":            ids.WellboreID,
			"TEMP_GRADIENT_GROUP_ID": ids.TempGroupID,
			"TEMP_GRADIENT_ID":       e.reg.GenerateID(TypeTempGradient),
			"TEMPERATURE":            fstr(p.Temperature),
			"TVD":                    fstr(p.Depth),
		}))
	}
	insertAfter(anchor, els)
}

func (e *TemplateEditor) updatePressureProfiles(ids entityIDs, profiles []payload.PressurePoint) {
	removeAll(e.root(), TagPorePressure)
	removeAll(e.root(), TagFracGradient)

	var pore, frac []payload.PressurePoint
	for _, p := range profiles {
		switch p.PressureType {
		case payload.PressureTypePore:
			pore = append(pore, p)
		case payload.PressureTypeFrac:
			frac = append(frac, p)
		}
	}
	sortDeepestFirst(pore, func(p payload.PressurePoint) float64 { return p.Depth })
	sortDeepestFirst(frac, func(p payload.PressurePoint) float64 { return p.Depth })

	if len(pore) > 0 {
		if anchor := e.findGroupAnchor(TagPoreGroup, "PORE_PRESSURE_GROUP_ID", ids.PoreGroupID); anchor != nil {
			els := make([]*etree.Element, 0, len(pore))
			for _, p := range pore {
				els = append(els, newElement(TagPorePressure, map[string]string{
					"WELL_ID":                ids.WellID,
					"WELLBORE_ID":            ids.WellboreID,
					"PORE_PRESSURE_GROUP_ID": ids.PoreGroupID,
					"PORE_PRESSURE_ID":       e.reg.GenerateID(TypePorePressure),
					"PORE_PRESSURE":          fstr(p.Pressure),
					"PORE_PRESSURE_EMW":      fstr(pointEMW(p)),
					"TVD":                    fstr(p.Depth),
					"IS_PERMEABLE_ZONE":      "Y",
				}))
			}
			insertAfter(anchor, els)
		}
	}

	if len(frac) > 0 {
		if anchor := e.findGroupAnchor(TagFracGroup, "FRAC_GRADIENT_GROUP_ID", ids.FracGroupID); anchor != nil {
			els := make([]*etree.Element, 0, len(frac))
			for _, p := range frac {
				els = append(els, newElement(TagFracGradient, map[string]string{
					"WELL_ID":                ids.WellID,
					"WELLBORE_ID":            ids.WellboreID,
					"FRAC_GRADIENT_GROUP_ID": ids.FracGroupID,
					"FRAC_GRADIENT_ID":       e.reg.GenerateID(TypeFracGradient),
					"FRAC_GRADIENT_PRESSURE": fstr(p.Pressure),
					"FRAC_GRADIENT_EMW":      fstr(pointEMW(p)),
					"TVD":                    fstr(p.Depth),
				}))
			}
			insertAfter(anchor, els)
		}
	}
}

func (e *TemplateEditor) updateDLSOverrides(ids entityIDs, overrides []payload.DLSOverride) {
	e.removeByAttr(TagDLSOverride, "DLS_OVERRIDE_GROUP_ID", ids.DLSGroupID)

	anchor := e.findGroupAnchor(TagDLSGroup, "DLS_OVERRIDE_GROUP_ID", ids.DLSGroupID)
	if anchor == nil {
		return
	}

	sorted := append([]payload.DLSOverride(nil), overrides...)
	sortDeepestFirst(sorted, func(o payload.DLSOverride) float64 { return o.TopDepth })

	now := e.Clock()
	els := make([]*etree.Element, 0, len(sorted))
	for _, o := range sorted {
		els = append(els, newElement(TagDLSOverride, mergeAudit(map[string]string{
			"WELL_ID":               ids.WellID,
			"WELLBORE_ID":           ids.WellboreID,
			"SCENARIO_ID":           ids.ScenarioID,
			"DLS_OVERRIDE_GROUP_ID": ids.DLSGroupID,
			"DLS_OVERRIDE_ID":       e.reg.GenerateID(TypeDLSOverride),
			"MD_TOP":                fstr(o.TopDepth),
			"MD_BASE":               fstr(o.BaseDepth),
			"DOGLEG_SEVERITY":       fstr(o.DoglegSeverity),
		}, now)))
	}
	insertAfter(anchor, els)
}

func (e *TemplateEditor) updateSurveyStations(ids entityIDs, stations []payload.SurveyStation) {
	e.removeByAttr(TagSurveyStation, "DEF_SURVEY_HEADER_ID", ids.SurveyHeaderID)

	anchor := e.findGroupAnchor(TagSurveyHeader, "DEF_SURVEY_HEADER_ID", ids.SurveyHeaderID)
	if anchor == nil {
		return
	}

	if len(stations) > 0 && stations[0].Name != "" {
		anchor.CreateAttr("NAME", stations[0].Name)
	}

	sorted := append([]payload.SurveyStation(nil), stations...)
	sortDeepestFirst(sorted, func(s payload.SurveyStation) float64 { return s.MD })

	els := make([]*etree.Element, 0, len(sorted))
	for i, s := range sorted {
		attrs := map[string]string{
			"WELL_ID":              ids.WellID,
			"WELLBORE_ID":          ids.WellboreID,
			"DEF_SURVEY_HEADER_ID": ids.SurveyHeaderID,
			"DEFINITIVE_SURVEY_ID": e.reg.GenerateID(TypeSurveyStation),
			"AZIMUTH":              fstr(s.Azimuth),
			"INCLINATION":          fstr(s.Inclination),
			"MD":                   fstr(s.MD),
			"SEQUENCE_NO":          seqNo(i),
		}
		mode := s.DataEntryMode
		if mode == "" {
			mode = "0"
		}
		attrs["DATA_ENTRY_MODE"] = mode
		fattr(attrs, "TVD", s.TVD)
		fattr(attrs, "DOGLEG_SEVERITY", s.DoglegSeverity)
		els = append(els, newElement(TagSurveyStation, attrs))
	}
	insertAfter(anchor, els)
}

// updateCasingAssemblies replaces assemblies wholesale. Assembly IDs
// are reused positionally from the document so cross-references held
// by untouched sections stay valid; rows beyond the existing count get
// fresh IDs.
func (e *TemplateEditor) updateCasingAssemblies(ids entityIDs, cs *payload.CasingSchematics) error {
	existing := findAll(e.root(), TagAssembly)
	existingIDs := make([]string, 0, len(existing))
	for _, el := range existing {
		existingIDs = append(existingIDs, attrValue(el, "ASSEMBLY_ID"))
	}

	lookup := e.buildMaterialLookup(cs)

	m := &merger{reg: e.reg, logger: e.logger, now: e.Clock()}

	type createdAssembly struct{ id, name string }
	created := make([]createdAssembly, 0, len(cs.Assemblies))

	for i := range cs.Assemblies {
		a := &cs.Assemblies[i]
		if a.AssemblyID == "" {
			if i < len(existingIDs) && existingIDs[i] != "" {
				a.AssemblyID = existingIDs[i]
			} else {
				a.AssemblyID = e.reg.GenerateID(TypeAssembly)
			}
		}
		a.WellboreID = ids.WellboreID

		e.removeByAttr(TagAssembly, "ASSEMBLY_ID", a.AssemblyID)
		e.removeByAttr(TagAssemblyComp, "ASSEMBLY_ID", a.AssemblyID)
		e.removeByAttr(TagPacker, "ASSEMBLY_ID", a.AssemblyID)

		el := e.buildTemplateAssembly(a, ids, m.now)
		e.root().AddChild(el)
		created = append(created, createdAssembly{id: a.AssemblyID, name: a.AssemblyName})

		for j := range a.Components {
			c := &a.Components[j]
			if c.ComponentID == "" {
				c.ComponentID = e.reg.GenerateID(TypeAssemblyComp)
			}
			comp, packer, err := e.buildTemplateComponent(a, c, j, ids, lookup, m)
			if err != nil {
				return err
			}
			e.root().AddChild(comp)
			if packer != nil {
				e.root().AddChild(packer)
			}
		}
	}

	// re-link cases for the replaced assemblies
	if ids.ScenarioID == "" {
		e.logger.Warn().Msg("No scenario element found; cases not relinked")
		return nil
	}
	for i, ca := range created {
		e.removeByAttr(TagCase, "ASSEMBLY_ID", ca.id)
		e.root().AddChild(newElement(TagCase, mergeAudit(map[string]string{
			"WELL_ID":     ids.WellID,
			"WELLBORE_ID": ids.WellboreID,
			"SCENARIO_ID": ids.ScenarioID,
			"CASE_ID":     e.reg.GenerateID(TypeCase),
			"CASE_NAME":   ca.name,
			"ASSEMBLY_ID": ca.id,
			"IS_LINKED":   "Y",
			"SEQUENCE_NO": seqNo(i),
		}, m.now)))
	}
	return nil
}

func (e *TemplateEditor) buildMaterialLookup(cs *payload.CasingSchematics) materialLookup {
	lookup := materialLookup{byName: map[string]string{}, byGrade: map[string]string{}}
	for i := range cs.Materials {
		mat := &cs.Materials[i]
		if mat.MaterialID == "" {
			mat.MaterialID = e.reg.GenerateID(TypeMaterial)
		}
		if lookup.first == "" {
			lookup.first = mat.MaterialID
		}
		if mat.MaterialName != "" {
			if _, dup := lookup.byName[mat.MaterialName]; !dup {
				lookup.byName[mat.MaterialName] = mat.MaterialID
			}
		}
		if mat.Grade != "" {
			if _, dup := lookup.byGrade[mat.Grade]; !dup {
				lookup.byGrade[mat.Grade] = mat.MaterialID
			}
		}
	}
	return lookup
}

func (e *TemplateEditor) buildTemplateAssembly(a *payload.Assembly, ids entityIDs, now time.Time) *etree.Element {
	attrs := map[string]string{
		"WELL_ID":          ids.WellID,
		"WELLBORE_ID":      ids.WellboreID,
		"ASSEMBLY_ID":      a.AssemblyID,
		"MD_ASSEMBLY_TOP":  fstr(a.TopDepth),
		"MD_ASSEMBLY_BASE": fstr(a.BaseDepth),
		"MD_TOC":           fstr(a.TopDepth),
		"IS_TOP_DOWN":      "Y",
	}
	if a.TOCDepth != nil {
		attrs["MD_TOC"] = fstr(*a.TOCDepth)
	}
	if a.IsTopDown != "" {
		ynAttr(attrs, "IS_TOP_DOWN", a.IsTopDown)
	}
	sattr(attrs, "ASSEMBLY_NAME", a.AssemblyName)
	sattr(attrs, "STRING_TYPE", a.StringType)
	attrs["STRING_CLASS"] = a.StringClass
	fattr(attrs, "ASSEMBLY_SIZE", a.AssemblySize)
	fattr(attrs, "HOLE_SIZE", a.HoleSize)
	fattr(attrs, "MUD_DENSITY_SHOE", a.MudDensityShoe)
	return newElement(TagAssembly, mergeAudit(attrs, now))
}

func (e *TemplateEditor) buildTemplateComponent(a *payload.Assembly, c *payload.Component, seq int,
	ids entityIDs, lookup materialLookup, m *merger) (comp, packer *etree.Element, err error) {
	typeCode, ok := componentTypeCodes[c.ComponentType]
	if !ok {
		return nil, nil, errors.Errorf("unknown component type %q in assembly %s", c.ComponentType, a.AssemblyID)
	}

	attrs := map[string]string{
		"WELL_ID":          ids.WellID,
		"WELLBORE_ID":      ids.WellboreID,
		"ASSEMBLY_ID":      a.AssemblyID,
		"ASSEMBLY_COMP_ID": c.ComponentID,
		"SECT_TYPE_CODE":   typeCode,
		"COMP_TYPE_CODE":   typeCode,
		"SEQUENCE_NO":      seqNo(seq),
	}

	if typeCode != "PKR" {
		if id := lookup.resolve(c); id != "" {
			attrs["MATERIAL_ID"] = id
		}
		attrs["OD_BODY"] = fstr(c.OuterDiameter)
		attrs["ID_BODY"] = fstr(c.InnerDiameter)
		attrs["MD_TOP"] = fstr(c.TopDepth)
		attrs["MD_BASE"] = fstr(c.BottomDepth)
		fattr(attrs, "LENGTH", c.Length)
		fattr(attrs, "APPROXIMATE_WEIGHT", c.Weight)
		fattr(attrs, "PRESSURE_BURST", c.PressureBurst)
		fattr(attrs, "PRESSURE_COLLAPSE", c.PressureCollapse)
		fattr(attrs, "AXIAL_RATING", c.AxialStrength)
		fattr(attrs, "JOINT_STRENGTH", c.JointStrength)
		fattr(attrs, "POISSONS_RATIO", c.PoissonsRatio)
		fattr(attrs, "MIN_YIELD_STRESS", c.MinYieldStress)
		fattr(attrs, "ULTIMATE_TENSILE_STRENGTH", c.UltimateTensileStrength)
		fattr(attrs, "THERMAL_EXPANSION_COEF", c.ThermalExpansionCoef)
		fattr(attrs, "YOUNGS_MODULUS", c.YoungsModulus)
		fattr(attrs, "WALL_THICKNESS_PERCENT", c.WallThicknessPercent)
		sattr(attrs, "GRADE", c.Grade)
		sattr(attrs, "PIPE_TYPE", c.PipeType)
		sattr(attrs, "CONNECTION_NAME", c.ConnectionName)
		sattr(attrs, "CONNECTION_TYPE", c.ConnectionType)
		sattr(attrs, "CONNECTION_GRADE", c.ConnectionGrade)
	}
	comp = newElement(TagAssemblyComp, mergeAudit(attrs, m.now))

	if typeCode == "PKR" {
		packer = m.buildPackerDetails(a, c)
		packer.CreateAttr("WELL_ID", ids.WellID)
		packer.CreateAttr("WELLBORE_ID", ids.WellboreID)
	}
	return comp, packer, nil
}

// injectBinaryData delegates to the merge-side implementation with a
// registry seeded only with this document's IDs.
func (e *TemplateEditor) injectBinaryData(libFile string, ids entityIDs) error {
	reg := e.reg
	if ids.WellID != "" {
		reg.RegisterEntity(TypeWell, ids.WellID, nil)
	}
	if ids.WellboreID != "" {
		reg.RegisterEntity(TypeWellbore, ids.WellboreID, nil)
	}
	if ids.ScenarioID != "" {
		reg.RegisterEntity(TypeScenario, ids.ScenarioID, nil)
	}
	m := &merger{doc: &Document{doc: e.doc, export: e.root()}, reg: reg, logger: e.logger, now: e.Clock()}
	removeAll(e.root(), TagBinaryData)
	return m.injectBinaryData(libFile)
}

// SaveToFile writes the repaired document to disk.
func (e *TemplateEditor) SaveToFile(path string) error {
	s, err := e.XMLString()
	if err != nil {
		return err
	}
	return errors.Wrapf(util.WriteFile(s, path), "failed to save XML to %s", path)
}

// XMLString renders the patched document with the canonical preamble.
func (e *TemplateEditor) XMLString() (string, error) {
	s, err := e.doc.WriteToString()
	if err != nil {
		return "", errors.Wrap(err, "failed to serialize document")
	}
	return RepairXML(s), nil
}
