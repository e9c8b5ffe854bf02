package procurement_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Importaciones-api/internal/application/procurement"
	"github.com/jhoicas/Importaciones-api/internal/domain"
	"github.com/jhoicas/Importaciones-api/internal/domain/entity"
)

type pdfMock struct{ mock.Mock }

func (m *pdfMock) Generate(doc procurement.CostingDocument) ([]byte, error) {
	args := m.Called(doc)
	b, _ := args.Get(0).([]byte)
	return b, args.Error(1)
}

type xmlMock struct{ mock.Mock }

func (m *xmlMock) Generate(doc procurement.CostingDocument) ([]byte, string, error) {
	args := m.Called(doc)
	b, _ := args.Get(0).([]byte)
	return b, args.String(1), args.Error(2)
}

func TestCostingPDF_ArmaDocumentoConHistorial(t *testing.T) {
	f := newFixture(t, "0")
	order := f.createScenarioOrder(t)
	f.advance(t, order.ID, entity.OrderStatusPaymentConfirmed)
	pdf := &pdfMock{}
	pdf.On("Generate", mock.MatchedBy(func(doc procurement.CostingDocument) bool {
		return doc.Order.ID == order.ID && len(doc.Events) == 2 && doc.GeneratedBy == "user-1" &&
			dec("78750").Equal(doc.Breakdown.ProductCostLocal)
	})).Return([]byte("%PDF-1.4"), nil).Once()
	uc := procurement.NewDocumentsUseCase(f.store.orderRepo(), pdf, &xmlMock{})

	b, name, err := uc.CostingPDF(ctx, actor, order.ID, now)

	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4"), b)
	assert.Equal(t, "costeo-PO-202610-0001.pdf", name)
	pdf.AssertExpectations(t)
}

func TestCostingXML_DevuelveDigest(t *testing.T) {
	f := newFixture(t, "0")
	order := f.createScenarioOrder(t)
	xml := &xmlMock{}
	xml.On("Generate", mock.Anything).Return([]byte("<CostingStatement/>"), "abc=", nil).Once()
	uc := procurement.NewDocumentsUseCase(f.store.orderRepo(), &pdfMock{}, xml)

	b, digest, name, err := uc.CostingXML(ctx, actor, order.ID, now)

	require.NoError(t, err)
	assert.Equal(t, "<CostingStatement/>", string(b))
	assert.Equal(t, "abc=", digest)
	assert.Equal(t, "costeo-"+order.ID+".xml", name, "sin número de orden se usa el ID")
}

func TestCostingDocuments_Errores(t *testing.T) {
	f := newFixture(t, "0")
	order := f.createScenarioOrder(t)
	uc := procurement.NewDocumentsUseCase(f.store.orderRepo(), &pdfMock{}, &xmlMock{})

	_, _, err := uc.CostingPDF(ctx, actor, "no-existe", now)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, _, _, err = uc.CostingXML(ctx, entity.Actor{UserID: "u", CompanyID: "co-2"}, order.ID, now)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
