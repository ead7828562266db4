package viewmodel

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"jobsheet-service/internal/model"
)

var amountPrinter = message.NewPrinter(language.English)

// FormatCurrency renders a rand amount with two decimals and grouped thousands.
func FormatCurrency(n float64) string {
	if n < 0 {
		return "-R " + amountPrinter.Sprintf("%.2f", -n)
	}
	return "R " + amountPrinter.Sprintf("%.2f", n)
}

func FormatJobNumber(n int) string {
	return fmt.Sprintf("J-%04d", n)
}

func FormatQuoteNumber(n int, documentType model.DocumentType) string {
	return fmt.Sprintf("%s%04d", quotePrefix(documentType), n)
}

func quotePrefix(documentType model.DocumentType) string {
	switch documentType {
	case model.DocumentTypeReport:
		return "R-"
	case model.DocumentTypeReportAndQuotation:
		return "RQ-"
	default:
		return "Q-"
	}
}
