// internal/pkg/pdf/receipt.go
package pdf

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/SebastiaanKlippert/go-wkhtmltopdf"
	"github.com/your-org/bookverse-storefront/internal/config"
	"github.com/your-org/bookverse-storefront/internal/domain/checkout"
)

// Service handles receipt PDF generation
type Service struct {
	config *config.Config
}

// NewService creates a new PDF service
func NewService(cfg *config.Config) *Service {
	return &Service{
		config: cfg,
	}
}

// GenerateReceipt renders an order receipt as a PDF
func (s *Service) GenerateReceipt(order *checkout.Order) (*bytes.Buffer, error) {
	data := receiptData{
		ReceiptNumber: fmt.Sprintf("RCP-%s", order.ID),
		ReceiptDate:   order.PlacedAt.Format("January 2, 2006"),
		Order:         order,
		Store: storeInfo{
			Name:    s.config.Receipt.StoreName,
			Address: s.config.Receipt.StoreAddress,
			Email:   s.config.Receipt.StoreEmail,
		},
	}

	htmlContent, err := s.generateHTML(data)
	if err != nil {
		return nil, fmt.Errorf("failed to generate HTML: %w", err)
	}

	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("failed to create PDF generator: %w", err)
	}

	pdfg.Dpi.Set(300)
	pdfg.Orientation.Set(wkhtmltopdf.OrientationPortrait)
	pdfg.Grayscale.Set(false)

	page := wkhtmltopdf.NewPageReader(bytes.NewReader([]byte(htmlContent)))
	page.FooterRight.Set("[page]")
	page.FooterFontSize.Set(9)
	page.Zoom.Set(0.95)

	pdfg.AddPage(page)

	if err := pdfg.Create(); err != nil {
		return nil, fmt.Errorf("failed to create PDF: %w", err)
	}

	return bytes.NewBuffer(pdfg.Bytes()), nil
}

// generateHTML generates HTML content from template
func (s *Service) generateHTML(data receiptData) (string, error) {
	tmpl := template.Must(template.New("receipt").Parse(receiptTemplate))

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}

// receiptData is the data passed to the receipt template
type receiptData struct {
	ReceiptNumber string
	ReceiptDate   string
	Order         *checkout.Order
	Store         storeInfo
}

// storeInfo identifies the storefront on the receipt
type storeInfo struct {
	Name    string
	Address string
	Email   string
}

// Receipt HTML template
const receiptTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Receipt {{.ReceiptNumber}}</title>
    <style>
        body {
            font-family: Arial, sans-serif;
            margin: 0;
            padding: 20px;
            color: #333;
        }
        .header {
            display: flex;
            justify-content: space-between;
            margin-bottom: 30px;
            border-bottom: 2px solid #eee;
            padding-bottom: 20px;
        }
        .receipt-title {
            font-size: 28px;
            font-weight: bold;
            color: #2563eb;
            margin-bottom: 10px;
        }
        .section-title {
            font-size: 16px;
            font-weight: bold;
            margin-bottom: 10px;
            color: #374151;
        }
        .items-table {
            width: 100%;
            border-collapse: collapse;
            margin-bottom: 30px;
        }
        .items-table th,
        .items-table td {
            border: 1px solid #ddd;
            padding: 12px 8px;
            text-align: left;
        }
        .items-table th {
            background-color: #f8f9fa;
            font-weight: bold;
        }
        .items-table .qty-col,
        .items-table .price-col {
            text-align: right;
            width: 80px;
        }
        .totals {
            float: right;
            width: 300px;
        }
        .totals table {
            width: 100%;
            border-collapse: collapse;
        }
        .totals td {
            padding: 6px 8px;
        }
        .totals .grand {
            font-weight: bold;
            border-top: 2px solid #333;
        }
    </style>
</head>
<body>
    <div class="header">
        <div>
            <div class="receipt-title">{{.Store.Name}}</div>
            <div>{{.Store.Address}}</div>
            <div>{{.Store.Email}}</div>
        </div>
        <div style="text-align: right">
            <div class="section-title">Receipt {{.ReceiptNumber}}</div>
            <div>{{.ReceiptDate}}</div>
            <div>Payment: {{.Order.Payment}}</div>
        </div>
    </div>

    <div class="section-title">Shipped To</div>
    <p>
        {{.Order.Shipping.Name}}<br>
        {{.Order.Shipping.Address}}, {{.Order.Shipping.City}} {{.Order.Shipping.Zip}}<br>
        {{.Order.Shipping.Email}}
    </p>

    <table class="items-table">
        <thead>
            <tr>
                <th>Book</th>
                <th class="qty-col">Qty</th>
                <th class="price-col">Price</th>
            </tr>
        </thead>
        <tbody>
            {{range .Order.Items}}
            <tr>
                <td>{{.Title}}</td>
                <td class="qty-col">{{.Quantity}}</td>
                <td class="price-col">{{.UnitPrice}}</td>
            </tr>
            {{end}}
        </tbody>
    </table>

    <div class="totals">
        <table>
            <tr><td>Subtotal</td><td>{{.Order.Totals.Subtotal}}</td></tr>
            <tr><td>Discount</td><td>-{{.Order.Totals.Discount}}</td></tr>
            {{if not .Order.Totals.CouponRate.IsZero}}
            <tr><td>Coupon</td><td>{{.Order.Totals.CouponRate}}</td></tr>
            {{end}}
            <tr class="grand"><td>Total Paid</td><td>{{.Order.Totals.FinalTotal}}</td></tr>
        </table>
    </div>
</body>
</html>
`
