package transaction_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/cucumber/godog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/bookkeeping-api/internal/application/transaction"
	"github.com/jhoicas/bookkeeping-api/internal/domain"
	"github.com/jhoicas/bookkeeping-api/internal/domain/entity"
	"github.com/jhoicas/bookkeeping-api/internal/domain/repository"
)

// scenarioState estado de un escenario: ids por nombre y el resultado del último submit.
type scenarioState struct {
	f          *fixture
	businesses map[string]string
	business   string
	products   map[string]string
	contacts   map[string]string
	last       *entity.Transaction
	lastErr    error
}

func (s *scenarioState) aBusiness(name string) error {
	s.business = "biz-" + name
	s.businesses[name] = s.business
	return nil
}

func (s *scenarioState) productWithStock(name string, stock int) error {
	id := "prod-" + name
	err := s.f.products.Create(context.Background(), &entity.Product{
		ID: id, BusinessID: s.business, Name: name, Stock: stock, Price: decimal.NewFromInt(1),
	})
	s.products[name] = id
	return err
}

func (s *scenarioState) vendor(name string) error {
	id := "contact-" + name
	s.contacts[name] = id
	return s.f.contacts.Create(context.Background(), &entity.Contact{
		ID: id, BusinessID: s.business, Name: name, Type: entity.ContactTypeVendor,
	})
}

func (s *scenarioState) submit(business string, in transaction.SubmitInput) {
	s.last, s.lastErr = s.f.processor.Submit(context.Background(), s.businesses[business], in)
}

func (s *scenarioState) sells(business string, qty int, product string, price int) error {
	s.submit(business, transaction.SubmitInput{
		Type:  entity.TransactionTypeSale,
		Lines: []entity.TransactionLine{s.line(product, qty, price)},
	})
	return nil
}

func (s *scenarioState) sellsTwo(business string, qtyA int, productA string, qtyB int, productB string, price int) error {
	s.submit(business, transaction.SubmitInput{
		Type:  entity.TransactionTypeSale,
		Lines: []entity.TransactionLine{s.line(productA, qtyA, price), s.line(productB, qtyB, price)},
	})
	return nil
}

func (s *scenarioState) buysFrom(business string, qty int, product string, price int, vendor string) error {
	s.submit(business, transaction.SubmitInput{
		Type:     entity.TransactionTypePurchase,
		VendorID: s.contacts[vendor],
		Lines:    []entity.TransactionLine{s.line(product, qty, price)},
	})
	return nil
}

func (s *scenarioState) line(product string, qty, price int) entity.TransactionLine {
	return entity.TransactionLine{ProductID: s.products[product], Quantity: qty, Price: decimal.NewFromInt(int64(price))}
}

func (s *scenarioState) succeedsWithTotal(total int) error {
	if s.lastErr != nil {
		return fmt.Errorf("se esperaba éxito, error: %w", s.lastErr)
	}
	if !s.last.TotalAmount.Equal(decimal.NewFromInt(int64(total))) {
		return fmt.Errorf("total esperado %d, obtenido %s", total, s.last.TotalAmount)
	}
	return nil
}

func (s *scenarioState) failsInsufficient(product string) error {
	var stockErr *domain.InsufficientStockError
	if !errors.As(s.lastErr, &stockErr) {
		return fmt.Errorf("se esperaba stock insuficiente, error: %v", s.lastErr)
	}
	if stockErr.ProductName != product {
		return fmt.Errorf("producto esperado %q, obtenido %q", product, stockErr.ProductName)
	}
	return nil
}

func (s *scenarioState) stockIs(product string, want int) error {
	p, err := s.f.inventory.Get(context.Background(), s.products[product], s.business)
	if err != nil {
		return err
	}
	if p == nil {
		return fmt.Errorf("producto %q no existe", product)
	}
	if p.Stock != want {
		return fmt.Errorf("stock de %q: esperado %d, obtenido %d", product, want, p.Stock)
	}
	return nil
}

func (s *scenarioState) ledgerHas(business string, want int) error {
	list, err := s.f.ledger.List(context.Background(), repository.TransactionFilter{BusinessID: s.businesses[business]})
	if err != nil {
		return err
	}
	if len(list) != want {
		return fmt.Errorf("ledger: esperadas %d transacciones, hay %d", want, len(list))
	}
	return nil
}

func (s *scenarioState) vendorRecorded(vendor string) error {
	if s.last == nil {
		return fmt.Errorf("no hay transacción registrada")
	}
	if s.last.VendorID() != s.contacts[vendor] {
		return fmt.Errorf("proveedor esperado %q, obtenido %q", s.contacts[vendor], s.last.VendorID())
	}
	if s.last.CustomerID() != "" {
		return fmt.Errorf("no se esperaba cliente, obtenido %q", s.last.CustomerID())
	}
	return nil
}

func initializeScenario(ctx *godog.ScenarioContext) {
	s := &scenarioState{}
	ctx.Before(func(c context.Context, _ *godog.Scenario) (context.Context, error) {
		*s = scenarioState{
			f:          newFixture(),
			businesses: map[string]string{},
			products:   map[string]string{},
			contacts:   map[string]string{},
		}
		return c, nil
	})

	ctx.Step(`^a business "([^"]*)"$`, s.aBusiness)
	ctx.Step(`^product "([^"]*)" with stock (\d+)$`, s.productWithStock)
	ctx.Step(`^vendor "([^"]*)"$`, s.vendor)
	ctx.Step(`^"([^"]*)" sells (\d+) "([^"]*)" at (\d+)$`, s.sells)
	ctx.Step(`^"([^"]*)" sells (\d+) "([^"]*)" and (\d+) "([^"]*)" at (\d+)$`, s.sellsTwo)
	ctx.Step(`^"([^"]*)" buys (\d+) "([^"]*)" at (\d+) from "([^"]*)"$`, s.buysFrom)
	ctx.Step(`^the transaction succeeds with total (\d+)$`, s.succeedsWithTotal)
	ctx.Step(`^the transaction fails with insufficient stock for "([^"]*)"$`, s.failsInsufficient)
	ctx.Step(`^the stock of "([^"]*)" is (\d+)$`, s.stockIs)
	ctx.Step(`^the ledger of "([^"]*)" has (\d+) transactions$`, s.ledgerHas)
	ctx.Step(`^the transaction vendor is "([^"]*)" and has no customer$`, s.vendorRecorded)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: initializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features"},
			TestingT: t,
		},
	}
	if suite.Run() != 0 {
		t.Fatal("los escenarios de features fallaron")
	}
}
