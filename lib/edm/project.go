package edm

import (
	"github.com/beevik/etree"

	"github.com/edmgen/edmgen/lib/payload"
)

// updateProjectInfo appends the site, well and wellbore rows. Each is
// built fresh; the matching template rows were purged beforehand.
func (m *merger) updateProjectInfo(pi *payload.ProjectInfo) {
	if pi == nil {
		return
	}
	if pi.Site != nil {
		m.export().AddChild(m.buildSite(pi.Site))
	}
	if pi.Well != nil {
		m.export().AddChild(m.buildWell(pi.Well))
	}
	if pi.Wellbore != nil {
		m.export().AddChild(m.buildWellbore(pi.Wellbore))
	}
}

func (m *merger) buildSite(s *payload.Site) *etree.Element {
	attrs := map[string]string{
		"SITE_ID":        s.SiteID,
		"TIGHT_GROUP_ID": DefaultTightGroupID,
	}
	sattr(attrs, "PROJECT_ID", s.ProjectID)
	sattr(attrs, "SITE_NAME", s.SiteName)
	sattr(attrs, "LOC_COUNTRY", s.LocCountry)
	fattr(attrs, "GEO_LATITUDE", s.GeoLatitude)
	fattr(attrs, "GEO_LONGITUDE", s.GeoLongitude)
	return newElement(TagSite, mergeAudit(attrs, m.now))
}

func (m *merger) buildWell(w *payload.Well) *etree.Element {
	attrs := map[string]string{
		"WELL_ID":        w.WellID,
		"TIGHT_GROUP_ID": DefaultTightGroupID,
	}
	sattr(attrs, "SITE_ID", w.SiteID)
	sattr(attrs, "WELL_COMMON_NAME", w.WellCommonName)
	ynAttr(attrs, "IS_OFFSHORE", w.IsOffshore)
	fattr(attrs, "WELLHEAD_DEPTH", w.WellheadDepth)
	fattr(attrs, "WATER_DEPTH", w.WaterDepth)
	return newElement(TagWell, mergeAudit(attrs, m.now))
}

func (m *merger) buildWellbore(wb *payload.Wellbore) *etree.Element {
	attrs := map[string]string{
		"WELLBORE_ID": wb.WellboreID,
	}
	sattr(attrs, "WELL_ID", wb.WellID)
	sattr(attrs, "WELLBORE_NAME", wb.WellboreName)
	ynAttr(attrs, "IS_ACTIVE", wb.IsActive)
	sattr(attrs, "WELLBORE_TYPE", wb.WellboreType)
	return newElement(TagWellbore, mergeAudit(attrs, m.now))
}
