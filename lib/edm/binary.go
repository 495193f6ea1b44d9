package edm

import (
	"strings"

	"github.com/beevik/etree"
	"github.com/pkg/errors"
)

// injectBinaryData copies the BINARY_DATA fragment out of the BLOB
// library into the export. Attachment IDs are regenerated so repeated
// exports never collide, and the composite locator string is rewired
// to the well/wellbore/scenario IDs of this generation. The policy_id
// component is left alone; it references the fixed policy row.
func (m *merger) injectBinaryData(libFile string) error {
	lib := etree.NewDocument()
	if err := lib.ReadFromFile(libFile); err != nil {
		return errors.Wrapf(err, "failed to load binary data library %s", libFile)
	}
	root := lib.Root()
	if root == nil {
		return errors.Errorf("binary data library %s is empty", libFile)
	}
	src := root
	if src.Tag != TagBinaryData {
		src = findFirst(root, TagBinaryData)
		if src == nil {
			return errors.Errorf("no %s element in %s", TagBinaryData, libFile)
		}
	}

	binary := src.Copy()
	for _, journal := range findAll(binary, TagAttachJournal) {
		attachmentID := m.reg.GenerateID(TypeAttachment)
		journalID := m.reg.GenerateID(TypeAttachmentJournal)

		for _, a := range journal.Attr {
			switch a.Key {
			case "attachment_id":
				journal.CreateAttr(a.Key, attachmentID)
			case "attachment_journal_id":
				journal.CreateAttr(a.Key, journalID)
			case "attachment_locator":
				journal.CreateAttr(a.Key, m.rewriteLocator(a.Value))
			}
		}

		for _, att := range findAll(journal, TagAttachment) {
			if att.SelectAttr("attachment_id") != nil {
				att.CreateAttr("attachment_id", attachmentID)
			}
		}
	}

	m.export().AddChild(binary)
	return nil
}

// rewriteLocator replaces the well_id/wellbore_id/scenario_id
// components of a composite locator string with this generation's IDs.
func (m *merger) rewriteLocator(locator string) string {
	if id := m.reg.FirstID(TypeWell); id != "" {
		locator = replaceLocatorID(locator, "well_id=", id)
	}
	if id := m.reg.FirstID(TypeWellbore); id != "" {
		locator = replaceLocatorID(locator, "wellbore_id=", id)
	}
	if id := m.reg.FirstID(TypeScenario); id != "" {
		locator = replaceLocatorID(locator, "scenario_id=", id)
	}
	return locator
}

// replaceLocatorID swaps the parenthesized value following prefix,
// e.g. "well_id=(ABCDE)". The scan is positional, not regex:
// "wellbore_id=" must not match inside "well_id=" and vice versa, so
// matches are anchored at a component boundary.
func replaceLocatorID(locator, prefix, newID string) string {
	start := locatorComponentIndex(locator, prefix)
	if start < 0 {
		return locator
	}
	open := strings.Index(locator[start:], "(")
	if open < 0 {
		return locator
	}
	open += start
	close := strings.Index(locator[open:], ")")
	if close < 0 {
		return locator
	}
	close += open
	return locator[:open+1] + newID + locator[close:]
}

// locatorComponentIndex finds prefix at a component boundary: the
// start of the string or right after a non-identifier byte.
func locatorComponentIndex(locator, prefix string) int {
	for i := 0; ; {
		j := strings.Index(locator[i:], prefix)
		if j < 0 {
			return -1
		}
		j += i
		if j == 0 || !isLocatorWordByte(locator[j-1]) {
			return j + len(prefix)
		}
		i = j + 1
	}
}

func isLocatorWordByte(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}
