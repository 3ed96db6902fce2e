package pdf

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"fwc_backend/internal/models"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
)

// Company is the seller identity printed in the document header.
type Company struct {
	Name    string
	City    string
	Mobile  string
	Email   string
	Website string
}

func DefaultCompany() Company {
	return Company{
		Name:    "Phoenix Crackers",
		City:    "Sivakasi",
		Mobile:  "+91 63836 59214",
		Email:   "phoenixcrackersfwc@gmail.com",
		Website: "www.funwithcrackers.com",
	}
}

// Input is everything Render needs. Rendering is a pure function of
// this struct; callers wanting reproducible bytes must pass the order's
// own creation time as GeneratedAt instead of the wall clock.
type Input struct {
	Kind               models.OrderKind
	RefID              string
	Party              models.PartySnapshot
	Items              []models.LineItem
	NetRate            float64
	YouSave            float64
	PromoDiscount      float64
	AdditionalDiscount float64
	Total              float64
	GeneratedAt        time.Time
	Company            Company
}

const (
	pageBottom = 282.0 // A4 height minus bottom margin, mm
	rowHeight  = 8.0
)

var colWidths = [7]float64{12, 58, 14, 26, 26, 18, 32}

var colTitles = [7]string{"Sl.No", "Product", "Qty", "Rate", "Disc Rate", "Per", "Total"}

var colAligns = [7]string{"C", "L", "C", "L", "L", "C", "L"}

// Totals computes the document totals block: subtotal = netRate -
// youSave; a positive additional discount takes a further percentage
// off the subtotal.
func Totals(netRate, youSave, additionalDiscount float64) (subtotal, extraDiscount, grandTotal decimal.Decimal) {
	subtotal = decimal.NewFromFloat(netRate).Sub(decimal.NewFromFloat(youSave))
	extraDiscount = subtotal.Mul(decimal.NewFromFloat(additionalDiscount)).Div(decimal.NewFromInt(100))
	grandTotal = subtotal.Sub(extraDiscount)
	return subtotal.Round(2), extraDiscount.Round(2), grandTotal.Round(2)
}

// LineTotal is the discounted per-line total: qty * (price - price*discount/100).
func LineTotal(price, discount float64, quantity int) decimal.Decimal {
	p := decimal.NewFromFloat(price)
	discRate := p.Sub(p.Mul(decimal.NewFromFloat(discount)).Div(decimal.NewFromInt(100)))
	return discRate.Mul(decimal.NewFromInt(int64(quantity))).Round(2)
}

func rs(d decimal.Decimal) string {
	return "Rs." + d.StringFixed(2)
}

func truncateName(name string) string {
	runes := []rune(name)
	if len(runes) > 30 {
		return string(runes[:27]) + "..."
	}
	return name
}

// splitAddress breaks a long address at the last space before 30
// characters so it fits the header column.
func splitAddress(address string) (string, string) {
	if len(address) <= 30 {
		return address, ""
	}
	idx := strings.LastIndex(address[:31], " ")
	if idx <= 0 {
		return address[:30], address[30:]
	}
	return address[:idx], address[idx+1:]
}

func orEmpty(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

// Render produces the document bytes. It performs no file-system or
// database access.
func Render(in Input) ([]byte, error) {
	if in.Company == (Company{}) {
		in.Company = DefaultCompany()
	}

	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetCreationDate(in.GeneratedAt)
	doc.SetModificationDate(in.GeneratedAt)
	doc.SetMargins(12, 12, 12)
	doc.SetAutoPageBreak(false, 12)
	doc.AddPage()

	title := "Estimate Bill"
	idLabel := "Order ID"
	if in.Kind == models.KindQuotation {
		title = "Quotation"
		idLabel = "Quotation ID"
	}

	doc.SetFont("Helvetica", "B", 20)
	doc.CellFormat(186, 10, title, "", 1, "C", false, 0, "")

	// Seller block, left
	doc.SetFont("Helvetica", "", 11)
	sellerTop := doc.GetY() + 2
	doc.SetY(sellerTop)
	for _, line := range []string{
		in.Company.Name,
		in.Company.City,
		"Mobile: " + in.Company.Mobile,
		"Email: " + in.Company.Email,
		"Website: " + in.Company.Website,
	} {
		doc.CellFormat(90, 6, line, "", 1, "L", false, 0, "")
	}

	// Party block, right
	customerType := in.Party.CustomerType
	if customerType == string(models.TypeCustomerAgent) {
		customerType = "Customer - Agent"
	}
	if customerType == "" {
		customerType = string(models.TypeUser)
	}
	addr1, addr2 := splitAddress(orEmpty(in.Party.Address))

	partyLines := []string{
		fmt.Sprintf("%s: %s", idLabel, in.RefID),
		"Date: " + in.GeneratedAt.Format("02/01/2006"),
		"Customer: " + orEmpty(in.Party.CustomerName),
		"Contact: " + orEmpty(in.Party.MobileNumber),
		"Address: " + addr1,
	}
	if addr2 != "" {
		partyLines = append(partyLines, addr2)
	}
	partyLines = append(partyLines,
		"District: "+orEmpty(in.Party.District),
		"State: "+orEmpty(in.Party.State),
		"Customer Type: "+customerType,
	)
	if in.Party.AgentName != "" {
		partyLines = append(partyLines, "Agent: "+in.Party.AgentName)
	}

	doc.SetY(sellerTop)
	for _, line := range partyLines {
		doc.SetX(108)
		doc.CellFormat(90, 6, line, "", 1, "R", false, 0, "")
	}

	doc.SetY(maxY(sellerTop+34, doc.GetY()) + 8)

	// Discounted items first, then net-rate items, each as its own
	// bordered table.
	discounted := make([]models.LineItem, 0, len(in.Items))
	netRate := make([]models.LineItem, 0, len(in.Items))
	for _, item := range in.Items {
		if item.Discount > 0 {
			discounted = append(discounted, item)
		} else {
			netRate = append(netRate, item)
		}
	}

	serial := 1
	serial = renderTable(doc, "Discounted Items", discounted, serial)
	renderTable(doc, "Net Rate Items", netRate, serial)

	// Totals block
	subtotal, extraDiscount, grandTotal := Totals(in.NetRate, in.YouSave, in.AdditionalDiscount)
	if doc.GetY()+40 > pageBottom {
		doc.AddPage()
	}
	doc.Ln(4)
	doc.SetFont("Helvetica", "B", 10)
	doc.SetX(130)
	doc.CellFormat(68, 7, "Total: "+rs(subtotal), "", 1, "R", false, 0, "")
	if in.AdditionalDiscount > 0 {
		doc.SetX(130)
		doc.CellFormat(68, 7, "Discount: "+rs(extraDiscount), "", 1, "R", false, 0, "")
		doc.SetX(130)
		doc.CellFormat(68, 7, "Grand Total: "+rs(grandTotal), "", 1, "R", false, 0, "")
	}

	if doc.GetY()+20 > pageBottom {
		doc.AddPage()
	}
	doc.Ln(8)
	doc.SetFont("Helvetica", "", 10)
	doc.CellFormat(186, 5, "Thank you for your business!", "", 1, "C", false, 0, "")
	doc.CellFormat(186, 5, "For any queries, contact us at "+in.Company.Mobile, "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrRender, err)
	}
	return buf.Bytes(), nil
}

func renderTable(doc *gofpdf.Fpdf, caption string, items []models.LineItem, serial int) int {
	if len(items) == 0 {
		return serial
	}

	if doc.GetY()+rowHeight*3 > pageBottom {
		doc.AddPage()
	}
	doc.SetFont("Helvetica", "B", 11)
	doc.CellFormat(186, 8, caption, "", 1, "L", false, 0, "")
	tableHeader(doc)

	doc.SetFont("Helvetica", "", 10)
	for _, item := range items {
		if doc.GetY()+rowHeight > pageBottom {
			doc.AddPage()
			tableHeader(doc)
			doc.SetFont("Helvetica", "", 10)
		}

		price := decimal.NewFromFloat(item.Price)
		discRate := price.Sub(price.Mul(decimal.NewFromFloat(item.Discount)).Div(decimal.NewFromInt(100)))
		total := LineTotal(item.Price, item.Discount, item.Quantity)

		cells := [7]string{
			fmt.Sprintf("%d", serial),
			truncateName(orEmpty(item.ProductName)),
			fmt.Sprintf("%d", item.Quantity),
			rs(price.Round(2)),
			rs(discRate.Round(2)),
			orEmpty(item.Per),
			rs(total),
		}
		for i, cell := range cells {
			ln := 0
			if i == len(cells)-1 {
				ln = 1
			}
			doc.CellFormat(colWidths[i], rowHeight, cell, "1", ln, colAligns[i], false, 0, "")
		}
		serial++
	}
	doc.Ln(2)
	return serial
}

func tableHeader(doc *gofpdf.Fpdf) {
	doc.SetFont("Helvetica", "B", 10)
	for i, title := range colTitles {
		ln := 0
		if i == len(colTitles)-1 {
			ln = 1
		}
		doc.CellFormat(colWidths[i], rowHeight, title, "1", ln, "C", false, 0, "")
	}
}

func maxY(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
