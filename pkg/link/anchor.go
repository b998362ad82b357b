package link

import (
	"github.com/beevik/etree"
)

// AnchorHTML renders an <a> element with escaped href, text and optional class
func AnchorHTML(href, text, class string) string {
	doc := etree.NewDocument()
	a := doc.CreateElement("a")
	if class != "" {
		a.CreateAttr("class", class)
	}
	a.CreateAttr("href", href)
	a.SetText(text)

	out, err := doc.WriteToString()
	if err != nil {
		return ""
	}
	return out
}

// HTML renders the reference as a link relative to currentLanguage's page
func (r Reference) HTML(currentLanguage string) string {
	return AnchorHTML(r.Href(currentLanguage), r.Label(), "dictus-link")
}
