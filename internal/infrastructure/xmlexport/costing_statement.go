// Package xmlexport genera el estado de costos de una orden en XML con un digest SHA-256
// sobre su forma canónica (C14N), para que contabilidad verifique que el archivo no cambió.
package xmlexport

import (
	"bytes"
	"crypto/sha256"
	"encoding/base64"
	"encoding/xml"
	"fmt"
	"strconv"
	"time"

	"github.com/beevik/etree"
	"github.com/ucarion/c14n"

	"github.com/jhoicas/Importaciones-api/internal/application/procurement"
)

// Namespace del documento.
const Namespace = "urn:importaciones:costing-statement:1"

var _ procurement.CostingXMLGenerator = (*CostingStatementGenerator)(nil)

// CostingStatementGenerator implementa procurement.CostingXMLGenerator con etree.
type CostingStatementGenerator struct{}

// NewCostingStatementGenerator construye el generador.
func NewCostingStatementGenerator() *CostingStatementGenerator { return &CostingStatementGenerator{} }

// Generate arma el XML y devuelve (xml, digest base64, error).
func (g *CostingStatementGenerator) Generate(doc procurement.CostingDocument) ([]byte, string, error) {
	if doc.Order == nil {
		return nil, "", fmt.Errorf("xmlexport: orden vacía")
	}
	o := doc.Order
	b := doc.Breakdown

	x := etree.NewDocument()
	root := x.CreateElement("CostingStatement")
	root.CreateAttr("xmlns", Namespace)
	root.CreateAttr("generatedAt", doc.GeneratedAt.UTC().Format(time.RFC3339))
	root.CreateAttr("generatedBy", doc.GeneratedBy)

	ord := root.CreateElement("Order")
	ord.CreateAttr("id", o.ID)
	ord.CreateAttr("version", strconv.Itoa(o.Version))
	text(ord, "OrderNumber", o.OrderNumber)
	text(ord, "SupplierID", o.SupplierID)
	text(ord, "Status", string(o.Status))
	text(ord, "ExchangeRate", o.ExchangeRate.String())
	text(ord, "ShippingMethod", string(o.ShippingMethod))
	text(ord, "TrackingNumber", o.TrackingNumber)

	costs := root.CreateElement("Costs")
	costs.CreateAttr("basis", string(b.Basis))
	text(costs, "ProductCostLocal", b.ProductCostLocal.StringFixed(2))
	text(costs, "ShippingCostIntl", o.ShippingCostIntl.StringFixed(2))
	text(costs, "ShippingCostLocal", o.ShippingCostLocal.StringFixed(2))
	text(costs, "MiscCost", o.MiscCost.StringFixed(2))
	text(costs, "ExtraCostGlobal", o.ExtraCostGlobal.StringFixed(2))
	text(costs, "LostItemTotalValue", b.LostItemTotalValue.StringFixed(2))
	text(costs, "TotalLandedCost", b.TotalLandedCost.StringFixed(2))
	text(costs, "TotalWeight", b.TotalWeight.StringFixed(2))

	items := root.CreateElement("Items")
	for _, it := range o.Items {
		el := items.CreateElement("Item")
		el.CreateAttr("id", it.ID)
		el.CreateAttr("productId", it.ProductID)
		text(el, "UnitPriceForeign", it.UnitPriceForeign.String())
		text(el, "OrderedQty", strconv.Itoa(it.OrderedQty))
		if it.ReceivedKnown {
			text(el, "ReceivedQty", strconv.Itoa(it.ReceivedQty))
		}
		text(el, "StockedQty", strconv.Itoa(it.StockedQty))
		text(el, "LostQty", strconv.Itoa(it.LostQty))
		text(el, "AllocatedCost", it.AllocatedCost.StringFixed(2))
		text(el, "FinalUnitCost", it.FinalUnitCost.StringFixed(4))
	}

	history := root.CreateElement("History")
	for _, e := range doc.Events {
		el := history.CreateElement("Event")
		if e.From != "" {
			el.CreateAttr("from", string(e.From))
		}
		el.CreateAttr("to", string(e.To))
		el.CreateAttr("actor", e.Actor)
		el.CreateAttr("at", e.At.UTC().Format(time.RFC3339))
	}

	x.Indent(2)
	body, err := x.WriteToBytes()
	if err != nil {
		return nil, "", fmt.Errorf("xmlexport: serializar: %w", err)
	}
	digest, err := Digest(body)
	if err != nil {
		return nil, "", err
	}
	return append([]byte(xmlDeclaration), body...), digest, nil
}

const xmlDeclaration = `<?xml version="1.0" encoding="UTF-8"?>` + "\n"

// Digest SHA-256 (base64) de la forma canónica C14N del documento.
// La declaración XML inicial no forma parte de la forma canónica.
func Digest(data []byte) (string, error) {
	data = bytes.TrimSpace(data)
	if bytes.HasPrefix(data, []byte("<?xml")) {
		if end := bytes.Index(data, []byte("?>")); end >= 0 {
			data = bytes.TrimSpace(data[end+2:])
		}
	}
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Entity = map[string]string{}
	canonical, err := c14n.Canonicalize(dec)
	if err != nil {
		return "", fmt.Errorf("xmlexport: canonicalizar: %w", err)
	}
	sum := sha256.Sum256(canonical)
	return base64.StdEncoding.EncodeToString(sum[:]), nil
}

func text(parent *etree.Element, tag, value string) {
	parent.CreateElement(tag).SetText(value)
}
