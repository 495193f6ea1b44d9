package edm

import "strconv"

// addScenarioElement emits the single scenario row that ties the
// export together: it references the well, wellbore, datum and every
// profile group by ID. Groups that were never registered are omitted
// entirely rather than referenced empty.
func (m *merger) addScenarioElement() {
	scenarioID := m.reg.FirstID(TypeScenario)
	wellID := m.reg.FirstID(TypeWell)
	wellboreID := m.reg.FirstID(TypeWellbore)
	if scenarioID == "" || wellID == "" || wellboreID == "" {
		return
	}

	attrs := map[string]string{
		"SCENARIO_ID": scenarioID,
		"WELLBORE_ID": wellboreID,
		"WELL_ID":     wellID,
		"PHASE":       PhasePrototype,
	}
	if id := m.reg.FirstID(TypeDatum); id != "" {
		attrs["DATUM_ID"] = id
		attrs["ORIGINAL_TUBULAR_DATUM_ID"] = id
	}
	if id := m.reg.FirstID(TypeTempGradientGroup); id != "" {
		attrs["TEMP_GRADIENT_GROUP_ID"] = id
	}
	if id := m.reg.FirstID(TypePorePressureGroup); id != "" {
		attrs["PORE_PRESSURE_GROUP_ID"] = id
	}
	if id := m.reg.FirstID(TypeFracGradientGroup); id != "" {
		attrs["FRAC_GRADIENT_GROUP_ID"] = id
	}
	if id := m.reg.FirstID(TypeSurveyHeader); id != "" {
		attrs["DEF_SURVEY_HEADER_ID"] = id
	}

	name := "Scenario"
	if data := m.reg.EntityData(TypeScenario, scenarioID); data != nil {
		if s, ok := data.(string); ok && s != "" {
			name = s
		}
	}
	attrs["NAME"] = name

	m.export().AddChild(newElement(TagScenario, mergeAudit(attrs, m.now)))
}

// addCaseElements emits one design case per assembly, linked to the
// scenario. The merge sequence can reach this twice; the guard keeps
// cases from doubling up.
func (m *merger) addCaseElements() {
	if len(findAll(m.export(), TagCase)) > 0 {
		return
	}
	scenarioID := m.reg.FirstID(TypeScenario)
	caseIDs := m.reg.IDs(TypeCase)
	if scenarioID == "" || len(caseIDs) == 0 {
		return
	}
	wellID := m.reg.FirstID(TypeWell)
	wellboreID := m.reg.FirstID(TypeWellbore)

	for i, caseID := range caseIDs {
		assemblyID := m.reg.ParentID(TypeAssembly, TypeCase, caseID)
		if assemblyID == "" {
			continue
		}

		attrs := map[string]string{
			"CASE_ID":     caseID,
			"SCENARIO_ID": scenarioID,
			"ASSEMBLY_ID": assemblyID,
			"IS_LINKED":   "Y",
			"SEQUENCE_NO": seqNo(i),
		}
		sattr(attrs, "WELL_ID", wellID)
		sattr(attrs, "WELLBORE_ID", wellboreID)

		name := ""
		if data := m.reg.EntityData(TypeCase, caseID); data != nil {
			if s, ok := data.(string); ok {
				name = s
			}
		}
		if name == "" {
			name = "Case " + strconv.Itoa(i+1)
		}
		attrs["CASE_NAME"] = name

		m.export().AddChild(newElement(TagCase, mergeAudit(attrs, m.now)))
	}
}
