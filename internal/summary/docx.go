package summary

import (
	"strings"

	"github.com/gomutex/godocx"
)

const (
	docxFont     = "Times New Roman"
	docxFontSize = 13
	titleSize    = 16
)

// ExportDocx writes the summary as a simple Word document next to the
// transcript, for clinics that file summaries in their document system.
func ExportDocx(title, summaryText, outputPath string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return err
	}

	doc.AddParagraph("").AddText(title).Font(docxFont).Size(titleSize).Color("000000").Bold(true)
	doc.AddParagraph("")

	for _, para := range strings.Split(summaryText, "\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		doc.AddParagraph("").AddText(para).Font(docxFont).Size(docxFontSize).Color("000000")
	}

	return doc.SaveTo(outputPath)
}
