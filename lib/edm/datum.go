package edm

import "github.com/edmgen/edmgen/lib/payload"

// updateDatum appends the reference datum row for the well.
func (m *merger) updateDatum(d *payload.Datum) {
	if d == nil {
		return
	}
	attrs := map[string]string{
		"DATUM_ID": d.DatumID,
	}
	wellID := m.reg.FirstID(TypeWell)
	if wellID == "" {
		wellID = d.WellID
	}
	sattr(attrs, "WELL_ID", wellID)
	sattr(attrs, "DATUM_NAME", d.DatumName)
	fattr(attrs, "DATUM_ELEVATION", d.DatumElevation)
	m.export().AddChild(newElement(TagDatum, mergeAudit(attrs, m.now)))
}
