package edm

import (
	"fmt"
	"strconv"
	"time"

	"github.com/beevik/etree"

	"github.com/edmgen/edmgen/lib/util"
)

// setAttrs writes attrs onto el in canonical order. etree preserves
// attribute insertion order on output, so order here is order on disk.
func setAttrs(el *etree.Element, attrs map[string]string) {
	for _, k := range orderAttrKeys(attrs) {
		el.CreateAttr(k, attrs[k])
	}
}

// tsLiteral renders t as the vendor's JDBC-style timestamp literal.
func tsLiteral(t time.Time) string {
	return fmt.Sprintf("{ts '%s'}", t.Format(tsLayout))
}

// auditAttrs returns the six-attribute audit stamp added to every
// constructed element.
func auditAttrs(now time.Time) map[string]string {
	ts := tsLiteral(now)
	return map[string]string{
		"CREATE_DATE":    ts,
		"CREATE_USER_ID": AuditUserID,
		"CREATE_APP_ID":  AuditAppID,
		"UPDATE_DATE":    ts,
		"UPDATE_USER_ID": AuditUserID,
		"UPDATE_APP_ID":  AuditAppID,
	}
}

// stampUpdate refreshes only the UPDATE_* half of the audit stamp,
// used when editing elements in place.
func stampUpdate(el *etree.Element, now time.Time) {
	el.CreateAttr("UPDATE_DATE", tsLiteral(now))
	el.CreateAttr("UPDATE_USER_ID", AuditUserID)
	el.CreateAttr("UPDATE_APP_ID", AuditAppID)
}

// fstr formats a float the way the consuming parser expects: shortest
// round-trip decimal form, never scientific notation for these ranges.
func fstr(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// seqNo renders a zero-based ordinal as the "0.0", "1.0", ... form the
// vendor database emits for SEQUENCE_NO.
func seqNo(i int) string {
	return strconv.FormatFloat(float64(i), 'f', 1, 64)
}

// fattr adds key=fstr(*v) to attrs when v is non-nil.
func fattr(attrs map[string]string, key string, v *float64) {
	if v != nil {
		attrs[key] = fstr(*v)
	}
}

// sattr adds key=*v to attrs when v is non-nil and non-empty.
func sattr(attrs map[string]string, key string, v string) {
	if v != "" {
		attrs[key] = v
	}
}

// ynAttr adds key=Y/N from a loosely-typed boolean string.
func ynAttr(attrs map[string]string, key, raw string) {
	if raw == "" {
		return
	}
	switch raw {
	case "Y", "N":
		attrs[key] = raw
	default:
		attrs[key] = util.ChooseStr(util.IsTruthy(raw), "Y", "N")
	}
}

// findAll walks all descendants of el and returns every element with
// the given tag, in document order.
func findAll(el *etree.Element, tag string) []*etree.Element {
	var out []*etree.Element
	var walk func(e *etree.Element)
	walk = func(e *etree.Element) {
		for _, c := range e.ChildElements() {
			if c.Tag == tag {
				out = append(out, c)
			}
			walk(c)
		}
	}
	walk(el)
	return out
}

// findFirst returns the first descendant of el with the given tag.
func findFirst(el *etree.Element, tag string) *etree.Element {
	all := findAll(el, tag)
	if len(all) == 0 {
		return nil
	}
	return all[0]
}

// findByAttr returns descendants of el with the given tag whose attr
// equals value.
func findByAttr(el *etree.Element, tag, attr, value string) []*etree.Element {
	var out []*etree.Element
	for _, e := range findAll(el, tag) {
		if a := e.SelectAttr(attr); a != nil && a.Value == value {
			out = append(out, e)
		}
	}
	return out
}

// attrValue returns the value of the named attribute, or "".
func attrValue(el *etree.Element, attr string) string {
	if a := el.SelectAttr(attr); a != nil {
		return a.Value
	}
	return ""
}

// detach removes el from its parent. Returns false when el has none.
func detach(el *etree.Element) bool {
	p := el.Parent()
	if p == nil {
		return false
	}
	p.RemoveChild(el)
	return true
}

// removeAll detaches every descendant of root with the given tag and
// returns how many were removed.
func removeAll(root *etree.Element, tag string) int {
	n := 0
	for _, e := range findAll(root, tag) {
		if detach(e) {
			n++
		}
	}
	return n
}

// tokenIndex returns the child-token index of el within parent, or -1.
func tokenIndex(parent, el *etree.Element) int {
	for i, t := range parent.Child {
		if c, ok := t.(*etree.Element); ok && c == el {
			return i
		}
	}
	return -1
}

// insertAfter splices els immediately after anchor, preserving order.
func insertAfter(anchor *etree.Element, els []*etree.Element) {
	parent := anchor.Parent()
	if parent == nil {
		return
	}
	idx := tokenIndex(parent, anchor)
	if idx < 0 {
		for _, e := range els {
			parent.AddChild(e)
		}
		return
	}
	for i, e := range els {
		parent.InsertChildAt(idx+1+i, e)
	}
}

// newElement builds a free-standing element with ordered attributes.
func newElement(tag string, attrs map[string]string) *etree.Element {
	el := etree.NewElement(tag)
	setAttrs(el, attrs)
	return el
}

// mergeAudit folds the audit stamp into attrs.
func mergeAudit(attrs map[string]string, now time.Time) map[string]string {
	for k, v := range auditAttrs(now) {
		attrs[k] = v
	}
	return attrs
}

// calculateEMW converts a pressure at a vertical depth to equivalent
// mud weight. Zero or negative depth yields 0.0 rather than dividing.
func calculateEMW(pressure, depth float64) float64 {
	if depth <= 0 {
		return 0.0
	}
	return pressure / (emwGradientFactor * depth)
}
