package edm

import (
	"github.com/beevik/etree"
	"golang.org/x/exp/slices"

	"github.com/edmgen/edmgen/lib/payload"
)

// updateFormationInputs appends temperature and pressure sections.
// DLS overrides and surveys run earlier in the merge sequence and are
// handled separately.
func (m *merger) updateFormationInputs(f *payload.FormationInputs) {
	if f == nil {
		return
	}
	if f.TemperatureProfiles != nil {
		m.updateTemperatureProfiles(f)
	}
	if f.PressureProfiles != nil {
		m.updatePressureProfiles(f)
	}
}

// updateTemperatureProfiles emits the gradient group followed by its
// points, deepest first. A point at depth zero is folded into the
// group's SURFACE_AMBIENT_TEMP rather than emitted as a row.
func (m *merger) updateTemperatureProfiles(f *payload.FormationInputs) {
	groupID := m.reg.FirstID(TypeTempGradientGroup)
	if groupID == "" {
		groupID = m.reg.GenerateID(TypeTempGradientGroup)
	}

	attrs := map[string]string{
		"TEMP_GRADIENT_GROUP_ID": groupID,
		"NAME":                   "Geothermal Gradient",
		"PHASE":                  PhasePrototype,
	}
	m.linkWellIDs(attrs)
	if t := f.SurfaceTemperature(); t != nil {
		attrs["SURFACE_AMBIENT_TEMP"] = fstr(*t)
	}
	group := newElement(TagTempGroup, mergeAudit(attrs, m.now))
	m.export().AddChild(group)

	points := make([]payload.TemperaturePoint, 0, len(f.TemperatureProfiles))
	for _, p := range f.TemperatureProfiles {
		if p.Depth > 0 {
			points = append(points, p)
		}
	}
	sortDeepestFirst(points, func(p payload.TemperaturePoint) float64 { return p.Depth })

	els := make([]*etree.Element, 0, len(points))
	for _, p := range points {
		pa := map[string]string{
			"TEMP_GRADIENT_GROUP_ID": groupID,
			"TEMP_GRADIENT_ID":       m.reg.GenerateID(TypeTempGradient),
			"TEMPERATURE":            fstr(p.Temperature),
			"TVD":                    fstr(p.Depth),
		}
		m.linkWellIDs(pa)
		els = append(els, newElement(TagTempGradient, pa))
	}
	insertAfter(group, els)
}

// updatePressureProfiles partitions the rows by type and emits one
// group per type that has rows. Hydrostatic rows have no home in the
// export and are skipped with a warning.
func (m *merger) updatePressureProfiles(f *payload.FormationInputs) {
	pore := f.PressurePointsOfType(payload.PressureTypePore)
	frac := f.PressurePointsOfType(payload.PressureTypeFrac)
	if n := len(f.PressurePointsOfType(payload.PressureTypeHydrostatic)); n > 0 {
		m.logger.Warn().Int("count", n).Msg("Skipping hydrostatic pressure rows; the export format has no section for them")
	}

	if len(pore) > 0 {
		groupID := m.reg.FirstID(TypePorePressureGroup)
		if groupID == "" {
			groupID = m.reg.GenerateID(TypePorePressureGroup)
		}
		attrs := map[string]string{
			"PORE_PRESSURE_GROUP_ID": groupID,
			"NAME":                   "Pore Pressure",
			"PHASE":                  PhasePrototype,
		}
		m.linkWellIDs(attrs)
		group := newElement(TagPoreGroup, mergeAudit(attrs, m.now))
		m.export().AddChild(group)

		sortDeepestFirst(pore, func(p payload.PressurePoint) float64 { return p.Depth })
		els := make([]*etree.Element, 0, len(pore))
		for _, p := range pore {
			pa := map[string]string{
				"PORE_PRESSURE_GROUP_ID": groupID,
				"PORE_PRESSURE_ID":       m.reg.GenerateID(TypePorePressure),
				"PORE_PRESSURE":          fstr(p.Pressure),
				"PORE_PRESSURE_EMW":      fstr(pointEMW(p)),
				"TVD":                    fstr(p.Depth),
				"IS_PERMEABLE_ZONE":      "Y",
			}
			m.linkWellIDs(pa)
			els = append(els, newElement(TagPorePressure, pa))
		}
		insertAfter(group, els)
	}

	if len(frac) > 0 {
		groupID := m.reg.FirstID(TypeFracGradientGroup)
		if groupID == "" {
			groupID = m.reg.GenerateID(TypeFracGradientGroup)
		}
		attrs := map[string]string{
			"FRAC_GRADIENT_GROUP_ID": groupID,
			"NAME":                   "Frac Gradient",
			"PHASE":                  PhasePrototype,
		}
		m.linkWellIDs(attrs)
		group := newElement(TagFracGroup, mergeAudit(attrs, m.now))
		m.export().AddChild(group)

		sortDeepestFirst(frac, func(p payload.PressurePoint) float64 { return p.Depth })
		els := make([]*etree.Element, 0, len(frac))
		for _, p := range frac {
			pa := map[string]string{
				"FRAC_GRADIENT_GROUP_ID": groupID,
				"FRAC_GRADIENT_ID":       m.reg.GenerateID(TypeFracGradient),
				"FRAC_GRADIENT_PRESSURE": fstr(p.Pressure),
				"FRAC_GRADIENT_EMW":      fstr(pointEMW(p)),
				"TVD":                    fstr(p.Depth),
			}
			m.linkWellIDs(pa)
			els = append(els, newElement(TagFracGradient, pa))
		}
		insertAfter(group, els)
	}
}

// pointEMW prefers a caller-supplied EMW over the derived one.
func pointEMW(p payload.PressurePoint) float64 {
	if p.EMW != nil {
		return *p.EMW
	}
	return calculateEMW(p.Pressure, p.Depth)
}

// sortDeepestFirst orders rows by descending depth. The sort is
// stable: equal depths keep payload input order.
func sortDeepestFirst[T any](rows []T, depth func(T) float64) {
	slices.SortStableFunc(rows, func(a, b T) bool {
		return depth(a) > depth(b)
	})
}
