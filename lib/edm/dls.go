package edm

import (
	"github.com/beevik/etree"

	"github.com/edmgen/edmgen/lib/payload"
)

// updateDLSOverrides emits the dogleg-severity override group and its
// overrides, sorted deepest first by top depth.
func (m *merger) updateDLSOverrides(g *payload.DLSOverrideGroup) {
	if g == nil {
		return
	}

	attrs := map[string]string{
		"DLS_OVERRIDE_GROUP_ID": g.GroupID,
	}
	m.linkWellIDs(attrs)
	if sid := m.reg.FirstID(TypeScenario); sid != "" {
		attrs["SCENARIO_ID"] = sid
	}
	group := newElement(TagDLSGroup, mergeAudit(attrs, m.now))
	m.export().AddChild(group)

	overrides := append([]payload.DLSOverride(nil), g.Overrides...)
	sortDeepestFirst(overrides, func(o payload.DLSOverride) float64 { return o.TopDepth })

	els := make([]*etree.Element, 0, len(overrides))
	for _, o := range overrides {
		oa := map[string]string{
			"DLS_OVERRIDE_ID":       o.OverrideID,
			"DLS_OVERRIDE_GROUP_ID": g.GroupID,
			"MD_TOP":                fstr(o.TopDepth),
			"MD_BASE":               fstr(o.BaseDepth),
			"DOGLEG_SEVERITY":       fstr(o.DoglegSeverity),
		}
		m.linkWellIDs(oa)
		if sid := m.reg.FirstID(TypeScenario); sid != "" {
			oa["SCENARIO_ID"] = sid
		}
		els = append(els, newElement(TagDLSOverride, mergeAudit(oa, m.now)))
	}
	insertAfter(group, els)
}
