package printer

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"errors"
	"io"
	"net/url"
	"strings"

	"github.com/oshokin/plinter/pkg/body"
)

const prettyIndent = "   "

// prettify re-indents structured text. Text that fails to parse is returned unchanged.
func prettify(text string, format body.Format) string {
	switch format {
	case body.FormatJSON:
		return prettyJSON(text)
	case body.FormatXML:
		return prettyXML(text)
	case body.FormatForm:
		return prettyForm(text)
	default:
		return text
	}
}

func prettyJSON(text string) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(strings.TrimSpace(text)), "", prettyIndent); err != nil {
		return text
	}

	return buf.String()
}

func prettyXML(text string) string {
	var (
		buf     bytes.Buffer
		decoder = xml.NewDecoder(strings.NewReader(text))
		encoder = xml.NewEncoder(&buf)
	)

	encoder.Indent("", prettyIndent)

	for {
		token, err := decoder.RawToken()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return text
		}

		token, keep := normalizeXMLToken(token)
		if !keep {
			continue
		}

		if err = encoder.EncodeToken(token); err != nil {
			return text
		}
	}

	if err := encoder.Flush(); err != nil {
		return text
	}

	return buf.String()
}

// normalizeXMLToken folds namespace prefixes back into local names so that the
// encoder writes them as they appeared, and drops whitespace-only character data.
func normalizeXMLToken(token xml.Token) (xml.Token, bool) {
	switch t := token.(type) {
	case xml.StartElement:
		t = t.Copy()
		t.Name = rawName(t.Name)

		for i := range t.Attr {
			t.Attr[i].Name = rawName(t.Attr[i].Name)
		}

		return t, true
	case xml.EndElement:
		return xml.EndElement{Name: rawName(t.Name)}, true
	case xml.CharData:
		trimmed := bytes.TrimSpace(t)
		if len(trimmed) == 0 {
			return nil, false
		}

		return xml.CharData(bytes.Clone(trimmed)), true
	default:
		return xml.CopyToken(token), true
	}
}

func rawName(name xml.Name) xml.Name {
	if name.Space == "" {
		return name
	}

	return xml.Name{Local: name.Space + ":" + name.Local}
}

// prettyForm puts every key=value pair of a URL-encoded form on its own line.
func prettyForm(text string) string {
	var pairs []string

	for pair := range strings.SplitSeq(strings.TrimSpace(text), "&") {
		if pair == "" {
			continue
		}

		if unescaped, err := url.QueryUnescape(pair); err == nil {
			pair = unescaped
		}

		pairs = append(pairs, pair)
	}

	return strings.Join(pairs, "\n")
}
