package edm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderAttrKeys_CanonicalPrecedence(t *testing.T) {
	keys := orderAttrKeys(map[string]string{
		"UPDATE_DATE":      "x",
		"WELL_COMMON_NAME": "x",
		"CREATE_DATE":      "x",
		"SITE_ID":          "x",
		"WELL_ID":          "x",
		"IS_OFFSHORE":      "x",
	})
	assert.Equal(t, []string{
		"SITE_ID", "WELL_ID", "WELL_COMMON_NAME", "IS_OFFSHORE", "CREATE_DATE", "UPDATE_DATE",
	}, keys)
}

func TestOrderAttrKeys_UnknownKeysSortedAfterKnown(t *testing.T) {
	keys := orderAttrKeys(map[string]string{
		"ZEBRA_ATTR":  "x",
		"ALPHA_ATTR":  "x",
		"WELL_ID":     "x",
		"UPDATE_DATE": "x",
	})
	assert.Equal(t, []string{"WELL_ID", "UPDATE_DATE", "ALPHA_ATTR", "ZEBRA_ATTR"}, keys)
}

func TestSetAttrs_OrderSurvivesSerialization(t *testing.T) {
	el := newElement(TagWell, map[string]string{
		"WELL_COMMON_NAME": "A-1",
		"WELL_ID":          "WXYZ1",
		"SITE_ID":          "SXYZ1",
	})
	doc := wrapInDoc(el)
	s, err := doc.WriteToString()
	assert.NoError(t, err)
	assert.Contains(t, s, `<CD_WELL SITE_ID="SXYZ1" WELL_ID="WXYZ1" WELL_COMMON_NAME="A-1"/>`)
}
