package edm

import (
	"github.com/beevik/etree"
	"github.com/pkg/errors"

	"github.com/edmgen/edmgen/lib/payload"
)

// componentTypeCodes maps payload component types to the export's
// section/component type codes. PKR is carried through as-is and
// additionally gets a packer detail element.
var componentTypeCodes = map[string]string{
	"CASING": "CAS",
	"TUBING": "TUB",
	"LINER":  "LIN",
	"PKR":    "PKR",
}

// updateCasingSchematics emits materials, then assemblies with their
// components. Materials go first so components can resolve material
// references by name or grade.
func (m *merger) updateCasingSchematics(cs *payload.CasingSchematics) error {
	if cs == nil {
		return nil
	}

	byName := map[string]string{}
	byGrade := map[string]string{}
	firstMaterial := ""
	for i := range cs.Materials {
		mat := &cs.Materials[i]
		m.export().AddChild(m.buildMaterial(mat))
		if firstMaterial == "" {
			firstMaterial = mat.MaterialID
		}
		if mat.MaterialName != "" {
			if _, dup := byName[mat.MaterialName]; !dup {
				byName[mat.MaterialName] = mat.MaterialID
			}
		}
		if mat.Grade != "" {
			if _, dup := byGrade[mat.Grade]; !dup {
				byGrade[mat.Grade] = mat.MaterialID
			}
		}
	}
	lookup := materialLookup{byName: byName, byGrade: byGrade, first: firstMaterial}

	for i := range cs.Assemblies {
		a := &cs.Assemblies[i]
		m.export().AddChild(m.buildAssembly(a))
		for j := range a.Components {
			c := &a.Components[j]
			comp, packer, err := m.buildComponent(a, c, j, lookup)
			if err != nil {
				return err
			}
			m.export().AddChild(comp)
			if packer != nil {
				m.export().AddChild(packer)
			}
		}
	}
	return nil
}

func (m *merger) buildMaterial(mat *payload.Material) *etree.Element {
	attrs := map[string]string{
		"MATERIAL_ID": mat.MaterialID,
	}
	sattr(attrs, "MATERIAL_NAME", mat.MaterialName)
	sattr(attrs, "GRADE", mat.Grade)
	fattr(attrs, "THERMAL_EXPANSION_COEF", mat.ThermalExpansionCoef)
	fattr(attrs, "POISSONS_RATIO", mat.PoissonsRatio)
	fattr(attrs, "ULTIMATE_TENSILE_STRENGTH", mat.UltimateTensileStrength)
	fattr(attrs, "MIN_YIELD_STRESS", mat.MinYieldStress)
	fattr(attrs, "YOUNGS_MODULUS", mat.YoungsModulus)
	fattr(attrs, "DENSITY", mat.Density)
	return newElement(TagMaterial, mergeAudit(attrs, m.now))
}

func (m *merger) buildAssembly(a *payload.Assembly) *etree.Element {
	attrs := map[string]string{
		"ASSEMBLY_ID": a.AssemblyID,
		"IS_TOP_DOWN": "Y",
	}
	m.linkWellIDs(attrs)
	sattr(attrs, "ASSEMBLY_NAME", a.AssemblyName)
	sattr(attrs, "STRING_TYPE", a.StringType)
	sattr(attrs, "STRING_CLASS", a.StringClass)
	fattr(attrs, "ASSEMBLY_SIZE", a.AssemblySize)
	fattr(attrs, "HOLE_SIZE", a.HoleSize)
	if a.IsTopDown != "" {
		ynAttr(attrs, "IS_TOP_DOWN", a.IsTopDown)
	}
	// the consumer reads both the legacy and the preferred depth names
	attrs["TOP_DEPTH"] = fstr(a.TopDepth)
	attrs["MD_ASSEMBLY_TOP"] = fstr(a.TopDepth)
	attrs["MD_TOC"] = fstr(a.TopDepth)
	if a.TOCDepth != nil {
		attrs["MD_TOC"] = fstr(*a.TOCDepth)
	}
	attrs["BASE_DEPTH"] = fstr(a.BaseDepth)
	attrs["MD_ASSEMBLY_BASE"] = fstr(a.BaseDepth)
	fattr(attrs, "MUD_DENSITY_SHOE", a.MudDensityShoe)
	return newElement(TagAssembly, mergeAudit(attrs, m.now))
}

type materialLookup struct {
	byName  map[string]string
	byGrade map[string]string
	first   string
}

// resolve applies the material reference precedence: explicit ID, then
// name match, then grade match, then the first defined material.
func (l materialLookup) resolve(c *payload.Component) string {
	if c.MaterialID != "" {
		return c.MaterialID
	}
	if c.MaterialName != "" {
		if id, ok := l.byName[c.MaterialName]; ok {
			return id
		}
	}
	if c.Grade != "" {
		if id, ok := l.byGrade[c.Grade]; ok {
			return id
		}
	}
	return l.first
}

func (m *merger) buildComponent(a *payload.Assembly, c *payload.Component, seq int, lookup materialLookup) (comp, packer *etree.Element, err error) {
	typeCode, ok := componentTypeCodes[c.ComponentType]
	if !ok {
		return nil, nil, errors.Errorf("unknown component type %q in assembly %s", c.ComponentType, a.AssemblyID)
	}

	attrs := map[string]string{
		"ASSEMBLY_COMP_ID": c.ComponentID,
		"ASSEMBLY_ID":      a.AssemblyID,
		"SECT_TYPE_CODE":   typeCode,
		"COMP_TYPE_CODE":   typeCode,
		"SEQUENCE_NO":      seqNo(seq),
	}
	m.linkWellIDs(attrs)

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
	}
	return comp, packer, nil
}

// buildPackerDetails emits the mechanical detail row packers require.
// Most of these values are the consumer's defaults for a set packer.
func (m *merger) buildPackerDetails(a *payload.Assembly, c *payload.Component) *etree.Element {
	packerDepth := c.TopDepth
	if c.PackerDepth != nil {
		packerDepth = *c.PackerDepth
	}
	plugDepth := c.BottomDepth
	if c.PlugDepth != nil {
		plugDepth = *c.PlugDepth
	}
	name := c.PackerName
	if name == "" {
		name = "TOC"
	}

	attrs := map[string]string{
		"ASSEMBLY_ID":                 a.AssemblyID,
		"ASSEMBLY_COMP_ID":            c.ComponentID,
		"PACKER_NAME":                 name,
		"PACKER_DEPTH":                fstr(packerDepth),
		"PLUG_DEPTH":                  fstr(plugDepth),
		"BORE_INNER_DIAMETER":         fstr(c.InnerDiameter),
		"HYDRAULIC_SET_PRESSURE":      "0.0",
		"SLIP_TYPE":                   "0",
		"AXIAL_LOAD_CHANGE":           "0.0",
		"AXIAL_LOAD_CHANGE_DIRECTION": "0",
		"IS_SEAL_BORE_PRESENT":        "N",
		"SEAL_ASSEMBLY_TYPE":          "0",
		"IS_SEAL_MOVEMENT_ALLOWED":    "N",
		"UPWARD_MOVEMENT_LEN":         "30.0",
		"DOWNWARD_MOVEMENT_LEN":       "0.0",
		"IS_UPWARD_NOGO_PRESENT":      "N",
		"IS_DOWNWARD_NOGO_PRESENT":    "N",
		"UPWARD_MOVEMENT_LENGTH":      "0.0",
		"DOWNWARD_MOVEMENT_LENGTH":    "0.0",
		"PACKER_TYPE_FLAG":            "8.0",
		"RUNNING_STRING_FLAG":         "0.0",
		"SET_TYPE":                    "0.0",
		"HYDROSTATIC_SET_PRESSURE":    "0.0",
		"IS_ANNULAR_VALVE_SEAL_OPEN":  "N",
		"EXPANSION_JOINT_DEPTH":       fstr(packerDepth - 1.0),
		"IS_SHEARED":                  "N",
		"SHEAR_PIN_RATING":            "10000.0",
		"PBR_TOTAL_STROKE":            "30.0",
		"IS_SPACED_OUT":               "N",
		"IS_EXP_JOINT_NOGO_PRESENT":   "N",
	}
	m.linkWellIDs(attrs)
	return newElement(TagPacker, attrs)
}
