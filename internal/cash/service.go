package cash

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pastelneto/pdv-backend/internal/notify"
)

type Service struct {
	repo Repository
	feed notify.Feed
}

func NewService(repo Repository, feed notify.Feed) *Service {
	return &Service{repo: repo, feed: feed}
}

func (s *Service) Today(ctx context.Context) (Summary, error) {
	movements, err := s.repo.ListToday(ctx)
	if err != nil {
		return Summary{}, err
	}
	return Summarize(movements), nil
}

// Open starts the day's register. Opening an already open register is a
// conflict, not a second opening.
func (s *Service) Open(ctx context.Context) (*Movement, error) {
	summary, err := s.Today(ctx)
	if err != nil {
		return nil, err
	}
	if summary.Open {
		return nil, ErrAlreadyOpen
	}
	desc := "Abertura do caixa"
	m := &Movement{ID: uuid.NewString(), Type: TypeOpen, Amount: "0.00", Description: &desc}
	if err := s.repo.Insert(ctx, m); err != nil {
		return nil, err
	}
	s.feed.Publish(notify.TopicCash)
	return m, nil
}

// Close records the derived balance and closes the register. The summary
// returned reflects the state right before closing, for the printed report.
func (s *Service) Close(ctx context.Context) (*Movement, Summary, error) {
	summary, err := s.Today(ctx)
	if err != nil {
		return nil, Summary{}, err
	}
	if !summary.Open {
		return nil, Summary{}, ErrNotOpen
	}
	desc := fmt.Sprintf("Fechamento do caixa - Total: R$ %s", summary.Balance)
	m := &Movement{ID: uuid.NewString(), Type: TypeClose, Amount: summary.Balance, Description: &desc}
	if err := s.repo.Insert(ctx, m); err != nil {
		return nil, Summary{}, err
	}
	s.feed.Publish(notify.TopicCash)
	return m, summary, nil
}

func (s *Service) Withdraw(ctx context.Context, amount decimal.Decimal, description string) (*Movement, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidAmount
	}
	summary, err := s.Today(ctx)
	if err != nil {
		return nil, err
	}
	if !summary.Open {
		return nil, ErrNotOpen
	}
	m := &Movement{ID: uuid.NewString(), Type: TypeWithdrawal, Amount: amount.StringFixed(2)}
	if description != "" {
		m.Description = &description
	}
	if err := s.repo.Insert(ctx, m); err != nil {
		return nil, err
	}
	s.feed.Publish(notify.TopicCash)
	return m, nil
}

// RecordSale appends the sale movement for a cash payment. Called by the
// order service as a follow-up write after the sale order is created.
func (s *Service) RecordSale(ctx context.Context, orderID, orderNumber, amount string) error {
	desc := fmt.Sprintf("Venda %s", orderNumber)
	m := &Movement{ID: uuid.NewString(), Type: TypeSale, Amount: amount, Description: &desc, OrderID: &orderID}
	return s.repo.Insert(ctx, m)
}
