package edm

import (
	"github.com/beevik/etree"

	"github.com/edmgen/edmgen/lib/payload"
)

// updateSurveyHeader emits the definitive survey header followed by
// its stations, deepest first by measured depth. The header's display
// name falls back to the first station's name when the payload does
// not set one.
func (m *merger) updateSurveyHeader(h *payload.SurveyHeader) {
	if h == nil {
		return
	}

	name := h.Name
	if name == "" && len(h.Stations) > 0 {
		name = h.Stations[0].Name
	}

	stations := append([]payload.SurveyStation(nil), h.Stations...)
	sortDeepestFirst(stations, func(s payload.SurveyStation) float64 { return s.MD })

	attrs := map[string]string{
		"DEF_SURVEY_HEADER_ID": h.HeaderID,
		"PHASE":                PhasePrototype,
	}
	sattr(attrs, "NAME", name)
	m.linkWellIDs(attrs)
	header := newElement(TagSurveyHeader, mergeAudit(attrs, m.now))
	m.export().AddChild(header)

	els := make([]*etree.Element, 0, len(stations))
	for i, s := range stations {
		sa := map[string]string{
			"DEFINITIVE_SURVEY_ID": s.StationID,
			"DEF_SURVEY_HEADER_ID": h.HeaderID,
			"AZIMUTH":              fstr(s.Azimuth),
			"INCLINATION":          fstr(s.Inclination),
			"MD":                   fstr(s.MD),
			"SEQUENCE_NO":          seqNo(i),
		}
		m.linkWellIDs(sa)
		sattr(sa, "NAME", s.Name)
		fattr(sa, "TVD", s.TVD)
		fattr(sa, "DOGLEG_SEVERITY", s.DoglegSeverity)
		mode := s.DataEntryMode
		if mode == "" {
			mode = "0"
		}
		sa["DATA_ENTRY_MODE"] = mode
		els = append(els, newElement(TagSurveyStation, sa))
	}
	insertAfter(header, els)
}
