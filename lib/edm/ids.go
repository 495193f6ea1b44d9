package edm

import (
	"github.com/edmgen/edmgen/lib/payload"
	"github.com/edmgen/edmgen/lib/registry"
	"github.com/edmgen/edmgen/lib/util"
)

// prepareIDs walks the payload before any XML is touched, absorbing
// caller-supplied identifiers into the registry and generating fresh
// ones where absent. Generated IDs are written back into the payload
// so the section handlers read a single source of truth. Every
// parent/child pairing is registered here so referential closure can
// be checked after the merge.
func prepareIDs(reg *registry.Registry, p *payload.Payload) {
	var site *payload.Site
	var well *payload.Well
	var wellbore *payload.Wellbore
	if p.ProjectInfo != nil {
		site = p.ProjectInfo.Site
		well = p.ProjectInfo.Well
		wellbore = p.ProjectInfo.Wellbore
	}

	if site != nil {
		if site.SiteID == "" {
			site.SiteID = reg.GenerateID(TypeSite)
		}
		reg.RegisterEntity(TypeSite, site.SiteID, site)
	}
	if well != nil {
		if well.WellID == "" {
			well.WellID = reg.GenerateID(TypeWell)
		}
		reg.RegisterEntity(TypeWell, well.WellID, well)
	}
	if site != nil && well != nil {
		well.SiteID = site.SiteID
		reg.RegisterRelationship(TypeSite, site.SiteID, TypeWell, well.WellID)
	}
	if wellbore != nil {
		if wellbore.WellboreID == "" {
			wellbore.WellboreID = reg.GenerateID(TypeWellbore)
		}
		reg.RegisterEntity(TypeWellbore, wellbore.WellboreID, wellbore)
	}
	if well != nil && wellbore != nil {
		wellbore.WellID = well.WellID
		reg.RegisterRelationship(TypeWell, well.WellID, TypeWellbore, wellbore.WellboreID)
	}

	// One scenario per export, named after the well.
	if well != nil && wellbore != nil {
		scenarioID := reg.GenerateID(TypeScenario)
		name := util.CoalesceStr(well.WellCommonName, "Scenario")
		reg.RegisterEntity(TypeScenario, scenarioID, name)
		reg.RegisterRelationship(TypeWell, well.WellID, TypeScenario, scenarioID)
		reg.RegisterRelationship(TypeWellbore, wellbore.WellboreID, TypeScenario, scenarioID)
	}

	if p.FormationInputs != nil {
		prepareFormationIDs(reg, p.FormationInputs, wellbore)
	}

	if p.Datum != nil {
		d := p.Datum
		if d.DatumID == "" {
			d.DatumID = reg.GenerateID(TypeDatum)
		}
		reg.RegisterEntity(TypeDatum, d.DatumID, d)
		if well != nil {
			d.WellID = well.WellID
			reg.RegisterRelationship(TypeWell, well.WellID, TypeDatum, d.DatumID)
		}
	}

	if p.CasingSchematics != nil {
		prepareCasingIDs(reg, p.CasingSchematics, wellbore)
	}
}

func prepareFormationIDs(reg *registry.Registry, f *payload.FormationInputs, wellbore *payload.Wellbore) {
	if g := f.DLSOverrideGroup; g != nil {
		if g.GroupID == "" {
			g.GroupID = reg.GenerateID(TypeDLSOverrideGroup)
		}
		reg.RegisterEntity(TypeDLSOverrideGroup, g.GroupID, g)
		if wellbore != nil {
			g.WellboreID = wellbore.WellboreID
			reg.RegisterRelationship(TypeWellbore, wellbore.WellboreID, TypeDLSOverrideGroup, g.GroupID)
			if sid := reg.FirstID(TypeScenario); sid != "" {
				reg.RegisterRelationship(TypeScenario, sid, TypeDLSOverrideGroup, g.GroupID)
			}
		}
		for i := range g.Overrides {
			o := &g.Overrides[i]
			if o.OverrideID == "" {
				o.OverrideID = reg.GenerateID(TypeDLSOverride)
			}
			reg.RegisterEntity(TypeDLSOverride, o.OverrideID, o)
			reg.RegisterRelationship(TypeDLSOverrideGroup, g.GroupID, TypeDLSOverride, o.OverrideID)
		}
	}

	if h := f.SurveyHeader; h != nil {
		if h.HeaderID == "" {
			h.HeaderID = reg.GenerateID(TypeSurveyHeader)
		}
		reg.RegisterEntity(TypeSurveyHeader, h.HeaderID, h)
		if wellbore != nil {
			h.WellboreID = wellbore.WellboreID
			reg.RegisterRelationship(TypeWellbore, wellbore.WellboreID, TypeSurveyHeader, h.HeaderID)
		}
		for i := range h.Stations {
			s := &h.Stations[i]
			if s.StationID == "" {
				s.StationID = reg.GenerateID(TypeSurveyStation)
			}
			reg.RegisterEntity(TypeSurveyStation, s.StationID, s)
			reg.RegisterRelationship(TypeSurveyHeader, h.HeaderID, TypeSurveyStation, s.StationID)
		}
	}

	if len(f.TemperatureProfiles) > 0 {
		tempGroupID := reg.GenerateID(TypeTempGradientGroup)
		reg.RegisterEntity(TypeTempGradientGroup, tempGroupID, "Geothermal Gradient")
		if wellbore != nil {
			reg.RegisterRelationship(TypeWellbore, wellbore.WellboreID, TypeTempGradientGroup, tempGroupID)
		}
	}

	// A pressure group is only worth an ID when it will hold rows;
	// an empty group would still be referenced from the scenario.
	if len(f.PressurePointsOfType(payload.PressureTypePore)) > 0 {
		poreGroupID := reg.GenerateID(TypePorePressureGroup)
		reg.RegisterEntity(TypePorePressureGroup, poreGroupID, "Pore Pressure")
		if wellbore != nil {
			reg.RegisterRelationship(TypeWellbore, wellbore.WellboreID, TypePorePressureGroup, poreGroupID)
		}
	}
	if len(f.PressurePointsOfType(payload.PressureTypeFrac)) > 0 {
		fracGroupID := reg.GenerateID(TypeFracGradientGroup)
		reg.RegisterEntity(TypeFracGradientGroup, fracGroupID, "Frac Gradient")
		if wellbore != nil {
			reg.RegisterRelationship(TypeWellbore, wellbore.WellboreID, TypeFracGradientGroup, fracGroupID)
		}
	}
}

func prepareCasingIDs(reg *registry.Registry, cs *payload.CasingSchematics, wellbore *payload.Wellbore) {
	for i := range cs.Materials {
		m := &cs.Materials[i]
		if m.MaterialID == "" {
			m.MaterialID = reg.GenerateID(TypeMaterial)
		}
		reg.RegisterEntity(TypeMaterial, m.MaterialID, m)
	}

	for i := range cs.Assemblies {
		a := &cs.Assemblies[i]
		if a.AssemblyID == "" {
			a.AssemblyID = reg.GenerateID(TypeAssembly)
		}
		reg.RegisterEntity(TypeAssembly, a.AssemblyID, a)
		if wellbore != nil {
			a.WellboreID = wellbore.WellboreID
			reg.RegisterRelationship(TypeWellbore, wellbore.WellboreID, TypeAssembly, a.AssemblyID)
		}

		for j := range a.Components {
			c := &a.Components[j]
			if c.ComponentID == "" {
				c.ComponentID = reg.GenerateID(TypeAssemblyComp)
			}
			reg.RegisterEntity(TypeAssemblyComp, c.ComponentID, c)
			reg.RegisterRelationship(TypeAssembly, a.AssemblyID, TypeAssemblyComp, c.ComponentID)
			if c.MaterialID != "" {
				reg.RegisterRelationship(TypeMaterial, c.MaterialID, TypeAssemblyComp, c.ComponentID)
			}
		}

		// One design case per assembly, linked under the scenario.
		// the raw name is registered as-is; an unnamed assembly's case
		// gets its positional "Case N" name when the element is built
		caseID := reg.GenerateID(TypeCase)
		reg.RegisterEntity(TypeCase, caseID, a.AssemblyName)
		if sid := reg.FirstID(TypeScenario); sid != "" {
			reg.RegisterRelationship(TypeScenario, sid, TypeCase, caseID)
		}
		reg.RegisterRelationship(TypeAssembly, a.AssemblyID, TypeCase, caseID)
	}
}
