package order

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/pastelneto/pdv-backend/internal/cart"
	"github.com/pastelneto/pdv-backend/internal/checkout"
	"github.com/pastelneto/pdv-backend/internal/notify"
)

// TableOccupier marks a table as taken when a table order is submitted.
// Implemented by the table store.
type TableOccupier interface {
	SetOccupied(ctx context.Context, tableID string) error
}

// SaleRecorder appends a sale movement to the cash ledger.
type SaleRecorder interface {
	RecordSale(ctx context.Context, orderID, orderNumber, amount string) error
}

type Service struct {
	repo   Repository
	tables TableOccupier
	ledger SaleRecorder
	feed   notify.Feed
	now    func() time.Time
}

func NewService(repo Repository, tables TableOccupier, ledger SaleRecorder, feed notify.Feed) *Service {
	return &Service{repo: repo, tables: tables, ledger: ledger, feed: feed, now: time.Now}
}

func ValidType(t Type) bool { return t == TypeTable || t == TypeTakeaway }

func (s *Service) linesFrom(c *cart.Cart) []Line {
	cartLines := c.Lines()
	lines := make([]Line, 0, len(cartLines))
	for _, cl := range cartLines {
		lines = append(lines, Line{
			ID:         uuid.NewString(),
			ProductID:  cl.ProductID,
			Name:       cl.Name,
			Quantity:   cl.Quantity,
			UnitPrice:  cl.Price.StringFixed(2),
			TotalPrice: cl.Subtotal().StringFixed(2),
		})
	}
	return lines
}

// SendToKitchen submits the cart as a new order in status received. The
// caller clears the cart only when this returns nil: on any failure the cart
// must stay intact so the operator can retry.
func (s *Service) SendToKitchen(ctx context.Context, c *cart.Cart, tableID *string, orderType Type) (*Order, []Line, error) {
	if orderType == "" {
		orderType = TypeTable
	}
	if !ValidType(orderType) {
		return nil, nil, ErrInvalidOrderType
	}
	if c.Empty() {
		return nil, nil, ErrEmptyCart
	}

	o := &Order{
		ID:          uuid.NewString(),
		OrderNumber: NewNumber(PrefixKitchen, s.now()),
		Total:       c.Total().StringFixed(2),
		Status:      StatusReceived,
		TableID:     tableID,
		OrderType:   orderType,
	}
	lines := s.linesFrom(c)
	if err := s.repo.Create(ctx, o, lines); err != nil {
		return nil, nil, fmt.Errorf("create order: %w", err)
	}

	// Independent follow-up: a failure here leaves the table state stale but
	// never rolls the order back.
	if tableID != nil && orderType == TypeTable {
		if err := s.tables.SetOccupied(ctx, *tableID); err != nil {
			zap.S().Errorw("table_occupy_failed", "order", o.OrderNumber, "table_id", *tableID, "err", err)
		} else {
			s.feed.Publish(notify.TopicTables)
		}
	}

	s.feed.Publish(notify.TopicOrders)
	return o, lines, nil
}

// FinalizeSale settles the cart immediately: the order is created already
// delivered, with the payment fields filled in from the settlement.
func (s *Service) FinalizeSale(ctx context.Context, c *cart.Cart, method checkout.Method, tendered decimal.Decimal) (*Order, []Line, checkout.Settlement, error) {
	if c.Empty() {
		return nil, nil, checkout.Settlement{}, ErrEmptyCart
	}
	total := c.Total()
	st, err := checkout.Settle(total, method, tendered)
	if err != nil {
		return nil, nil, checkout.Settlement{}, err
	}

	pm := string(st.Method)
	paid := st.AmountPaid.StringFixed(2)
	change := st.ChangeDue.StringFixed(2)
	o := &Order{
		ID:            uuid.NewString(),
		OrderNumber:   NewNumber(PrefixSale, s.now()),
		Total:         total.StringFixed(2),
		Status:        StatusDelivered,
		PaymentMethod: &pm,
		AmountPaid:    &paid,
		ChangeAmount:  &change,
		OrderType:     TypeTakeaway,
	}
	lines := s.linesFrom(c)
	if err := s.repo.Create(ctx, o, lines); err != nil {
		return nil, nil, checkout.Settlement{}, fmt.Errorf("create sale: %w", err)
	}

	// Follow-up write, same contract as the table update: the sale stands
	// even if the ledger entry fails.
	if method == checkout.MethodCash {
		if err := s.ledger.RecordSale(ctx, o.ID, o.OrderNumber, o.Total); err != nil {
			zap.S().Errorw("cash_movement_failed", "order", o.OrderNumber, "err", err)
		} else {
			s.feed.Publish(notify.TopicCash)
		}
	}

	s.feed.Publish(notify.TopicOrders)
	return o, lines, st, nil
}

// Advance moves the order to its single legal successor status.
func (s *Service) Advance(ctx context.Context, id string) (*Order, error) {
	o, _, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	next, ok := Next(o.Status)
	if !ok {
		return nil, ErrIllegalTransition
	}
	if err := s.repo.UpdateStatus(ctx, id, o.Status, next); err != nil {
		return nil, err
	}
	o.Status = next
	s.feed.Publish(notify.TopicOrders)
	return o, nil
}

// Cancel is only legal while the kitchen has not finished the order.
func (s *Service) Cancel(ctx context.Context, id string) (*Order, error) {
	o, _, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanCancel(o.Status) {
		return nil, ErrNotCancellable
	}
	if err := s.repo.UpdateStatus(ctx, id, o.Status, StatusCancelled); err != nil {
		return nil, err
	}
	o.Status = StatusCancelled
	s.feed.Publish(notify.TopicOrders)
	return o, nil
}
