package edm

import (
	"time"

	"github.com/beevik/etree"
	"github.com/rs/zerolog"
)

func wrapInDoc(el *etree.Element) *etree.Document {
	doc := etree.NewDocument()
	doc.SetRoot(el)
	return doc
}

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

// fixed clock so audit stamps are byte-stable in assertions
func testClock() time.Time {
	return time.Date(2025, 4, 2, 16, 36, 52, 0, time.UTC)
}

const testStamp = "{ts '2025-04-02 16:36:52'}"
