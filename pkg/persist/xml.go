package persist

import (
	"encoding/xml"
	"fmt"
	"io"
	"time"

	"github.com/decker502/textkit/internal/textedit"
)

// xmlTextInput XML 存档格式：
//
//	<textInput version="1" maxLength="20" savedAt="...">
//	  <filters letters="true" numbers="true" ... newline="false"/>
//	  <text>...</text>
//	</textInput>
type xmlTextInput struct {
	XMLName   xml.Name   `xml:"textInput"`
	Version   int        `xml:"version,attr"`
	MaxLength int        `xml:"maxLength,attr"`
	SavedAt   time.Time  `xml:"savedAt,attr"`
	Filters   xmlFilters `xml:"filters"`
	Text      string     `xml:"text"`
}

type xmlFilters struct {
	Letters     bool `xml:"letters,attr"`
	Numbers     bool `xml:"numbers,attr"`
	Symbols     bool `xml:"symbols,attr"`
	Punctuation bool `xml:"punctuation,attr"`
	Space       bool `xml:"space,attr"`
	Newline     bool `xml:"newline,attr"`
}

// SaveXML 以 XML 格式写出存档
// 文本中的 CR 和 LF 以字符引用写出，读回时原样保留
func SaveXML(w io.Writer, data *TextInputData) error {
	if data == nil {
		return fmt.Errorf("text input data is nil")
	}
	f := data.Filters.Filters()
	doc := xmlTextInput{
		Version:   data.Version,
		MaxLength: data.MaxLength,
		SavedAt:   data.SavedAt,
		Filters: xmlFilters{
			Letters:     f.Letters,
			Numbers:     f.Numbers,
			Symbols:     f.Symbols,
			Punctuation: f.Punctuation,
			Space:       f.Space,
			Newline:     f.Newline,
		},
		Text: data.Text,
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode text input XML: %w", err)
	}
	return enc.Close()
}

// LoadXML 读取 XML 格式存档并检查版本
func LoadXML(r io.Reader) (*TextInputData, error) {
	var doc xmlTextInput
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode text input XML: %w", err)
	}

	f := textedit.Filters{
		Letters:     doc.Filters.Letters,
		Numbers:     doc.Filters.Numbers,
		Symbols:     doc.Filters.Symbols,
		Punctuation: doc.Filters.Punctuation,
		Space:       doc.Filters.Space,
		Newline:     doc.Filters.Newline,
	}
	data := &TextInputData{
		Version:   doc.Version,
		Text:      doc.Text,
		MaxLength: doc.MaxLength,
		Filters:   f.Flags(),
		SavedAt:   doc.SavedAt,
	}
	if err := data.CheckVersion(); err != nil {
		return nil, err
	}
	return data, nil
}
