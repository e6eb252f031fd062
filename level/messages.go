package level

import (
	"errors"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// conversionFailed is both the catalog key and the English text.
const conversionFailed = "Conversion failed\nFloor #%d: %s°"

// Languages lists the tags Message has translations for; the first is the fallback.
var Languages = []language.Tag{language.English, language.Korean}

var (
	messages = func() *catalog.Builder {
		b := catalog.NewBuilder(catalog.Fallback(language.English))
		_ = b.SetString(language.English, conversionFailed, conversionFailed)
		_ = b.SetString(language.Korean, conversionFailed, "변환 실패\n타일 #%d: %s°")
		return b
	}()
	matcher = language.NewMatcher(Languages)
)

// Message renders err for the user in the language closest to tag.
// A *ConversionError becomes the two-line "conversion failed" notice
// naming the floor; any other error is returned as err.Error().
func Message(err error, tag language.Tag) string {
	if err == nil {
		return ""
	}
	var ce *ConversionError
	if !errors.As(err, &ce) {
		return err.Error()
	}

	_, idx, _ := matcher.Match(tag)
	p := message.NewPrinter(Languages[idx], message.Catalog(messages))
	return p.Sprintf(conversionFailed, ce.Floor, strconv.FormatFloat(ce.Angle, 'f', -1, 64))
}
