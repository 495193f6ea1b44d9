package edm

import (
	"github.com/beevik/etree"

	"github.com/edmgen/edmgen/lib/payload"
)

// purgeSections removes template placeholder elements for every
// section the payload is about to rebuild. Sections absent from the
// payload keep whatever the template carried. Scenarios, cases,
// packers and binary blobs are purged unconditionally since the merge
// always regenerates them.
func purgeSections(export *etree.Element, p *payload.Payload) {
	remove := func(tags ...string) {
		for _, tag := range tags {
			removeAll(export, tag)
		}
	}

	if pi := p.ProjectInfo; pi != nil {
		if pi.Site != nil {
			remove(TagSite)
		}
		if pi.Well != nil {
			remove(TagWell)
		}
		if pi.Wellbore != nil {
			remove(TagWellbore)
		}
	}

	if f := p.FormationInputs; f != nil {
		if f.TemperatureProfiles != nil {
			remove(TagTempGradientOld, TagTempGradient, TagTempGroup)
		}
		if f.PressureProfiles != nil {
			remove(TagPorePressure, TagFracPressureOld, TagHydrostaticOld,
				TagPoreGroup, TagFracGroup, TagFracGradient)
		}
		if f.DLSOverrideGroup != nil {
			remove(TagDLSGroup, TagDLSOverride)
		}
		if f.SurveyHeader != nil {
			remove(TagSurveyHeader, TagSurveyStation)
		}
	}

	if cs := p.CasingSchematics; cs != nil {
		if cs.Materials != nil {
			remove(TagMaterial)
		}
		if cs.Assemblies != nil {
			remove(TagAssembly, TagAssemblyComp)
		}
	}

	if p.Datum != nil {
		remove(TagDatum)
	}

	remove(TagCase, TagScenario, TagPacker, TagBinaryData)
}
