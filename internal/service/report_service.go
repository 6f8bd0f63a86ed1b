package service

import (
	"context"
	"fmt"

	"comercio/internal/domain"

	"github.com/google/uuid"
	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// ReportService renders posted documents to PDF
type ReportService interface {
	RenderInvoicePDF(ctx context.Context, invoiceID uuid.UUID) ([]byte, error)
}

type reportService struct {
	documents DocumentService
}

// NewReportService creates a new instance of ReportService
func NewReportService(documents DocumentService) ReportService {
	return &reportService{documents: documents}
}

// RenderInvoicePDF renders one invoice with its line items as a PDF document
func (s *reportService) RenderInvoicePDF(ctx context.Context, invoiceID uuid.UUID) ([]byte, error) {
	doc, err := s.documents.GetInvoice(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	m := s.buildInvoice(doc)

	pdf, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate invoice PDF: %w", err)
	}

	return pdf.GetBytes(), nil
}

func (s *reportService) buildInvoice(doc *domain.Document) core.Maroto {
	cfg := config.NewBuilder().Build()
	m := maroto.New(cfg)

	m.AddRow(14,
		text.NewCol(12, "Invoice", props.Text{
			Size:  16,
			Style: fontstyle.Bold,
			Align: align.Center,
		}),
	)

	m.AddRow(8,
		text.NewCol(6, fmt.Sprintf("No. %s", doc.ID), props.Text{Size: 9}),
		text.NewCol(6, doc.CreatedAt.Format("2006-01-02 15:04"), props.Text{Size: 9, Align: align.Right}),
	)
	m.AddRow(8,
		text.NewCol(12, fmt.Sprintf("Client: %s", doc.PartyName), props.Text{Size: 10}),
	)

	m.AddRow(8,
		text.NewCol(6, "Product", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(2, "Qty", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Unit Price", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Subtotal", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)

	for _, line := range doc.Lines {
		m.AddRow(6,
			text.NewCol(6, line.ProductName, props.Text{Size: 9}),
			text.NewCol(2, fmt.Sprintf("%d", line.Quantity), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, line.UnitPrice.StringFixed(2), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, line.Subtotal.StringFixed(2), props.Text{Size: 9, Align: align.Right}),
		)
	}

	m.AddRow(10,
		text.NewCol(10, "Total", props.Text{Style: fontstyle.Bold, Size: 11, Align: align.Right}),
		text.NewCol(2, doc.Total.StringFixed(2), props.Text{Style: fontstyle.Bold, Size: 11, Align: align.Right}),
	)

	return m
}
