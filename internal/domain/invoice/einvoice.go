package invoice

import (
	"crypto/sha512"
	"encoding/hex"
	"encoding/xml"
	"fmt"

	"github.com/Alejoxd70/sactpaper-stationery/internal/core/types"
)

// ElectronicInvoice is a simplified UBL-like rendition of an invoice for
// DIAN electronic invoicing.
//
// The CUFE here is a placeholder digest over number, date and total. The
// real CUFE algorithm additionally covers tax breakdowns, the NIT of the
// issuer and a DIAN-issued technical key, and requires a signing
// certificate. Wire a certified e-invoicing provider before using this
// output for anything official.
type ElectronicInvoice struct {
	XMLName       xml.Name      `xml:"Invoice"`
	Number        string        `xml:"ID"`
	IssueDate     string        `xml:"IssueDate"`
	CUFE          string        `xml:"UUID"`
	CustomerName  string        `xml:"AccountingCustomerParty>Party>PartyName>Name,omitempty"`
	Lines         []InvoiceLine `xml:"InvoiceLines>InvoiceLine"`
	Subtotal      string        `xml:"LegalMonetaryTotal>LineExtensionAmount"`
	TaxAmount     string        `xml:"TaxTotal>TaxAmount"`
	PayableAmount string        `xml:"LegalMonetaryTotal>PayableAmount"`
}

// InvoiceLine is one UBL invoice line.
type InvoiceLine struct {
	ID          int    `xml:"ID"`
	Description string `xml:"Item>Description"`
	Quantity    int    `xml:"InvoicedQuantity"`
	UnitPrice   string `xml:"Price>PriceAmount"`
	LineTotal   string `xml:"LineExtensionAmount"`
}

// PseudoCUFE computes the placeholder invoice digest:
// sha384 over number, date (YYYY-MM-DD) and total with two decimals.
func PseudoCUFE(number string, date string, total types.Money) string {
	payload := fmt.Sprintf("%s%s%s", number, date, total.StringFixed(2))
	sum := sha512.Sum384([]byte(payload))
	return hex.EncodeToString(sum[:])
}

// ToElectronic converts an invoice to its electronic representation.
// customerName may be empty for walk-in sales.
func (inv *Invoice) ToElectronic(customerName string) *ElectronicInvoice {
	issueDate := inv.Date.Format("2006-01-02")

	e := &ElectronicInvoice{
		Number:        inv.Number,
		IssueDate:     issueDate,
		CUFE:          PseudoCUFE(inv.Number, issueDate, inv.Total),
		CustomerName:  customerName,
		Subtotal:      inv.Subtotal.StringFixed(2),
		TaxAmount:     inv.Tax.StringFixed(2),
		PayableAmount: inv.Total.StringFixed(2),
	}

	for i := range inv.Items {
		item := &inv.Items[i]
		e.Lines = append(e.Lines, InvoiceLine{
			ID:          i + 1,
			Description: item.Name,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice.StringFixed(2),
			LineTotal:   item.LineTotal.StringFixed(2),
		})
	}

	return e
}

// Render serializes the electronic invoice document with the XML header.
func (e *ElectronicInvoice) Render() ([]byte, error) {
	body, err := xml.MarshalIndent(e, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal electronic invoice: %w", err)
	}
	return append([]byte(xml.Header), body...), nil
}
