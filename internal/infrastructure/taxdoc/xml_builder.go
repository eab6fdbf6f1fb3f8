// Package taxdoc exporta la factura de impuestos como documento XML con su huella SHA-256.
package taxdoc

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/xml"
	"fmt"
	"strconv"

	"github.com/beevik/etree"
	"github.com/ucarion/c14n"

	"github.com/jhoicas/facturas-api/internal/application/billing"
	"github.com/jhoicas/facturas-api/internal/domain/entity"
)

// Namespace del documento exportado.
const NsTaxInvoice = "urn:facturas-api:tax-invoice:1"

var _ billing.InvoiceXMLBuilder = (*XMLBuilder)(nil)

// XMLBuilder construye el XML de la factura. Sin estado.
type XMLBuilder struct{}

// NewXMLBuilder crea el servicio.
func NewXMLBuilder() *XMLBuilder { return &XMLBuilder{} }

// BuildInvoiceXML genera el documento indentado y el digest (hex) de su forma canónica C14N.
func (b *XMLBuilder) BuildInvoiceXML(inv *entity.Invoice, company *entity.Company, issuer billing.Issuer) ([]byte, string, error) {
	if inv == nil || company == nil {
		return nil, "", fmt.Errorf("taxdoc: faltan invoice o company")
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("TaxInvoice")
	root.CreateAttr("xmlns", NsTaxInvoice)
	root.CreateAttr("Id", inv.ID)

	root.CreateElement("Number").SetText(inv.InvoiceNumber)
	root.CreateElement("IssueDate").SetText(inv.IssueDate.Format("2006-01-02"))
	root.CreateElement("Status").SetText(string(inv.Status))
	if inv.Memo != "" {
		root.CreateElement("Memo").SetText(inv.Memo)
	}

	sup := root.CreateElement("Supplier")
	sup.CreateElement("Name").SetText(issuer.Name)
	sup.CreateElement("BusinessNumber").SetText(issuer.BusinessNumber)

	buyer := root.CreateElement("Buyer")
	buyer.CreateAttr("Id", company.ID)
	buyer.CreateElement("Name").SetText(company.Name)
	if company.BusinessNumber != "" {
		buyer.CreateElement("BusinessNumber").SetText(company.BusinessNumber)
	}

	lines := root.CreateElement("Lines")
	for i, it := range inv.Items {
		l := lines.CreateElement("Line")
		l.CreateAttr("No", strconv.Itoa(i+1))
		l.CreateAttr("TaxType", string(it.TaxType))
		if it.ProductID != "" {
			l.CreateElement("ProductID").SetText(it.ProductID)
		}
		l.CreateElement("Name").SetText(it.ProductName)
		l.CreateElement("Category").SetText(string(it.Category))
		l.CreateElement("Quantity").SetText(strconv.FormatInt(it.Quantity, 10))
		l.CreateElement("UnitPrice").SetText(strconv.FormatInt(it.UnitPrice, 10))
		l.CreateElement("SupplyAmount").SetText(strconv.FormatInt(it.SupplyAmount, 10))
		l.CreateElement("TaxAmount").SetText(strconv.FormatInt(it.TaxAmount, 10))
		l.CreateElement("LineTotal").SetText(strconv.FormatInt(it.LineTotal, 10))
	}

	totals := root.CreateElement("Totals")
	totals.CreateAttr("Currency", "KRW")
	totals.CreateElement("SupplyAmount").SetText(strconv.FormatInt(inv.TotalSupplyAmount, 10))
	totals.CreateElement("TaxAmount").SetText(strconv.FormatInt(inv.TotalTaxAmount, 10))
	totals.CreateElement("TotalAmount").SetText(strconv.FormatInt(inv.TotalAmount, 10))

	doc.Indent(2)
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, "", fmt.Errorf("taxdoc: serializar XML: %w", err)
	}
	digest, err := Digest(out)
	if err != nil {
		return nil, "", err
	}
	return out, digest, nil
}

// Digest SHA-256 (hex) de la forma canónica C14N del documento.
// La declaración XML y la indentación entre elementos no alteran el resultado.
func Digest(xmlBytes []byte) (string, error) {
	canonical, err := Canonicalize(xmlBytes)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:]), nil
}

// Canonicalize aplica C14N al elemento raíz (sin espacios de indentación).
func Canonicalize(xmlBytes []byte) ([]byte, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.PreserveCData = true
	if err := doc.ReadFromBytes(xmlBytes); err != nil {
		return nil, fmt.Errorf("taxdoc: parsear XML: %w", err)
	}
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("taxdoc: documento sin elemento raíz")
	}
	bare := etree.NewDocument()
	bare.SetRoot(root.Copy())
	bare.Unindent()
	raw, err := bare.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("taxdoc: serializar raíz: %w", err)
	}

	dec := xml.NewDecoder(bytes.NewReader(raw))
	dec.Entity = map[string]string{}
	out, err := c14n.Canonicalize(dec)
	if err != nil {
		return nil, fmt.Errorf("taxdoc: canonicalizar: %w", err)
	}
	return out, nil
}
