package edm

import (
	"github.com/beevik/etree"
	"github.com/pkg/errors"
)

// Document is a parsed template. All real content lives as a flat list
// of elements under the <export> root; nesting carries no meaning.
type Document struct {
	doc    *etree.Document
	export *etree.Element
}

// LoadTemplate reads and normalizes a template file.
func LoadTemplate(path string) (*Document, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromFile(path); err != nil {
		return nil, errors.Wrapf(err, "failed to load template %s", path)
	}
	return normalize(doc)
}

// ParseDocument parses template XML from a string.
func ParseDocument(xml string) (*Document, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(xml); err != nil {
		return nil, errors.Wrap(err, "failed to parse template")
	}
	return normalize(doc)
}

// normalize repairs the root structure tampered templates exhibit:
// a synthetic <root> wrapper is unwrapped, and a missing <export>
// element is created so handlers always have a stable anchor.
func normalize(doc *etree.Document) (*Document, error) {
	root := doc.Root()
	if root == nil {
		return nil, errors.New("template has no root element")
	}
	if root.Tag == TagRootWrapper {
		export := etree.NewElement(TagExport)
		for _, c := range root.ChildElements() {
			if c.Tag == TagExport {
				for _, gc := range c.ChildElements() {
					c.RemoveChild(gc)
					export.AddChild(gc)
				}
				continue
			}
			root.RemoveChild(c)
			export.AddChild(c)
		}
		doc.SetRoot(export)
		root = export
	}
	export := root
	if root.Tag != TagExport {
		export = findFirst(root, TagExport)
		if export == nil {
			export = root.CreateElement(TagExport)
		}
	}
	return &Document{doc: doc, export: export}, nil
}

// Export returns the element all sections hang off.
func (d *Document) Export() *etree.Element {
	return d.export
}

// EnsureBoilerplate appends the fixed sections every export needs when
// the template lacks them: the geodetic TOPLEVEL block, the open tight
// group, and the policy record.
func (d *Document) EnsureBoilerplate() {
	if findFirst(d.export, TagTopLevel) == nil {
		d.export.AddChild(buildTopLevel())
	}
	if findFirst(d.export, TagTightGroup) == nil {
		d.export.AddChild(newElement(TagTightGroup, map[string]string{
			"TIGHT_GROUP_ID":   DefaultTightGroupID,
			"TIGHT_GROUP_NAME": "UNRESTRICTED",
			"DESCRIPTION":      "Unrestricted",
		}))
	}
	if findFirst(d.export, TagPolicy) == nil {
		d.export.AddChild(newElement(TagPolicy, map[string]string{
			"POLICY_ID":               PolicyID,
			"CUSTOMER_NAME":           "CONCEPT WELL PLANNING - NL",
			"CUSTOMER_REPRESENTATIVE": "Application Support",
			"CUSTOMER_TELEPHONE":      "SSW-Support-UI-E@shell.com",
			"IS_READONLY":             "Y",
			"REPORTING_TIME":          "{ts '1970-01-01 00:00:00'}",
			"CREATE_DATE":             "{ts '2008-09-28 18:23:05'}",
			"CREATE_USER_ID":          AuditUserID,
			"CREATE_APP_ID":           AuditAppID,
			"UPDATE_DATE":             "{ts '2025-04-02 16:36:52'}",
			"UPDATE_USER_ID":          AuditUserID,
			"UPDATE_APP_ID":           AuditAppID,
			"BA_CODE":                 "GL",
		}))
	}
}

// buildTopLevel emits the geodetic reference block: the RD New /
// Amersfoort datum the consuming system is configured for.
func buildTopLevel() *etree.Element {
	top := etree.NewElement(TagTopLevel)
	sys := top.CreateElement(TagGeoSystem)
	setAttrs(sys, map[string]string{
		"GEO_SYSTEM_ID":   "EPE Onshore NL",
		"GEO_DATUM_ID":    "AMERSFOORT",
		"MEASURE_ID":      "121.0",
		"GEO_SYSTEM_NAME": "EPE Onshore NL",
	})
	zone := top.CreateElement(TagGeoZone)
	setAttrs(zone, map[string]string{
		"GEO_SYSTEM_ID":  "EPE Onshore NL",
		"GEO_ZONE_ID":    "RD New",
		"ZONE_NAME":      "Amersfoort / RD New [1672_28992]",
		"LAT_ORIGIN":     "52.1561605",
		"LON_ORIGIN":     "5.3876388",
		"SCALE_FACTOR":   "0.9999079",
		"FALSE_EASTING":  "155000.0",
		"FALSE_NORTHING": "463000.0",
		"PROJ_TYPE":      "29.0",
	})
	datum := top.CreateElement(TagGeoDatum)
	setAttrs(datum, map[string]string{
		"GEO_DATUM_ID":     "AMERSFOORT",
		"DATUM_NAME":       "Amersfoort [1672_4289]",
		"GEO_ELLIPSOID_ID": "BESSEL 1841",
		"PMSHIFT":          "0.0",
		"X_SHIFT":          "565.04",
		"Y_SHIFT":          "49.91",
		"Z_SHIFT":          "465.84",
		"X_ROTATE":         "-0.4094",
		"Y_ROTATE":         "0.3597",
		"Z_ROTATE":         "-1.8685",
		"SCALE_FACTOR":     "4.0772",
	})
	ellipsoid := top.CreateElement(TagGeoEllipsoid)
	setAttrs(ellipsoid, map[string]string{
		"GEO_ELLIPSOID_ID":   "BESSEL 1841",
		"NAME":               "Bessel 1841",
		"SEMI_MAJOR":         "6377397.155",
		"FIRST_ECCENTRICITY": "0.0816968312204014",
	})
	return top
}

// Serialize renders the document and repairs its framing for the
// consuming parser.
func (d *Document) Serialize() (string, error) {
	s, err := d.doc.WriteToString()
	if err != nil {
		return "", errors.Wrap(err, "failed to serialize document")
	}
	return RepairXML(s), nil
}
