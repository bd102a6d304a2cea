package services

import (
	"context"
	"log"

	"swapcycle/internal/models"
	"swapcycle/internal/repositories"
)

// TradeNotifier pushes trade events to the two parties. Implementations
// deliver over FCM and open websocket connections; delivery failures
// never fail the trade operation.
type TradeNotifier interface {
	NotifyTrade(ctx context.Context, userID int, trade models.Trade, event string)
}

type TradeService struct {
	TradeRepo   *repositories.TradeRepository
	ProductRepo *repositories.ProductRepository
	ServiceRepo *repositories.ServiceRepository
	UserRepo    *repositories.UserRepository
	Notifier    TradeNotifier
}

func (s *TradeService) CreateTrade(ctx context.Context, t models.Trade) (models.Trade, error) {
	if err := t.ValidateItems(); err != nil {
		return models.Trade{}, err
	}

	offeredOwner, err := s.itemOwner(ctx, t.OfferedProductID, t.OfferedServiceID)
	if err != nil {
		return models.Trade{}, err
	}
	if offeredOwner != t.ProposerID {
		return models.Trade{}, models.ErrNotOwner
	}

	requestedOwner, err := s.itemOwner(ctx, t.RequestedProductID, t.RequestedServiceID)
	if err != nil {
		return models.Trade{}, err
	}
	t.ReceiverID = requestedOwner

	trade, err := s.TradeRepo.CreateTrade(ctx, t)
	if err != nil {
		return models.Trade{}, err
	}

	s.notify(ctx, trade.ReceiverID, trade, "trade_proposed")
	return trade, nil
}

func (s *TradeService) GetTradeByID(ctx context.Context, userID, id int) (models.Trade, error) {
	trade, err := s.TradeRepo.GetTradeByID(ctx, id)
	if err != nil {
		return models.Trade{}, err
	}
	if trade.ProposerID != userID && trade.ReceiverID != userID {
		return models.Trade{}, models.ErrTradeNotFound
	}
	return trade, nil
}

func (s *TradeService) ListTradesByUser(ctx context.Context, userID int) ([]models.Trade, error) {
	trades, err := s.TradeRepo.ListTradesByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if trades == nil {
		trades = []models.Trade{}
	}
	return trades, nil
}

// AcceptTrade moves a pending trade to accepted and takes both items off
// the market. Only the receiver can accept.
func (s *TradeService) AcceptTrade(ctx context.Context, userID, id int, responseMessage *string) (models.Trade, error) {
	trade, err := s.TradeRepo.GetTradeByID(ctx, id)
	if err != nil {
		return models.Trade{}, err
	}
	if trade.ReceiverID != userID {
		return models.Trade{}, models.ErrNotOwner
	}
	if !trade.CanBeAnswered() {
		return models.Trade{}, models.ErrTradeNotPending
	}

	trade, err = s.TradeRepo.UpdateTradeStatus(ctx, id, models.TradeStatusAccepted, responseMessage)
	if err != nil {
		return models.Trade{}, err
	}

	if err := s.markItemsUnavailable(ctx, trade); err != nil {
		log.Printf("ERROR\ttrade %d accepted but items not released: %v", trade.ID, err)
	}

	s.notify(ctx, trade.ProposerID, trade, "trade_accepted")
	return trade, nil
}

func (s *TradeService) DeclineTrade(ctx context.Context, userID, id int, responseMessage *string) (models.Trade, error) {
	trade, err := s.TradeRepo.GetTradeByID(ctx, id)
	if err != nil {
		return models.Trade{}, err
	}
	if trade.ReceiverID != userID {
		return models.Trade{}, models.ErrNotOwner
	}
	if !trade.CanBeAnswered() {
		return models.Trade{}, models.ErrTradeNotPending
	}

	trade, err = s.TradeRepo.UpdateTradeStatus(ctx, id, models.TradeStatusDeclined, responseMessage)
	if err != nil {
		return models.Trade{}, err
	}

	s.notify(ctx, trade.ProposerID, trade, "trade_declined")
	return trade, nil
}

func (s *TradeService) CancelTrade(ctx context.Context, userID, id int) (models.Trade, error) {
	trade, err := s.TradeRepo.GetTradeByID(ctx, id)
	if err != nil {
		return models.Trade{}, err
	}
	if trade.ProposerID != userID {
		return models.Trade{}, models.ErrNotOwner
	}
	if !trade.CanBeCancelled() {
		return models.Trade{}, models.ErrTradeNotPending
	}

	trade, err = s.TradeRepo.UpdateTradeStatus(ctx, id, models.TradeStatusCancelled, nil)
	if err != nil {
		return models.Trade{}, err
	}

	s.notify(ctx, trade.ReceiverID, trade, "trade_cancelled")
	return trade, nil
}

func (s *TradeService) itemOwner(ctx context.Context, productID, serviceID *int) (int, error) {
	if productID != nil {
		p, err := s.ProductRepo.GetProductByID(ctx, *productID)
		if err != nil {
			return 0, err
		}
		if p.AvailabilityStatus != models.StatusAvailable {
			return 0, models.ErrProductNotFound
		}
		return p.UserID, nil
	}
	svc, err := s.ServiceRepo.GetServiceByID(ctx, *serviceID)
	if err != nil {
		return 0, err
	}
	if svc.AvailabilityStatus != models.StatusAvailable {
		return 0, models.ErrServiceNotFound
	}
	return svc.UserID, nil
}

func (s *TradeService) markItemsUnavailable(ctx context.Context, t models.Trade) error {
	for _, id := range []*int{t.OfferedProductID, t.RequestedProductID} {
		if id == nil {
			continue
		}
		if err := s.ProductRepo.MarkUnavailable(ctx, *id); err != nil {
			return err
		}
	}
	for _, id := range []*int{t.OfferedServiceID, t.RequestedServiceID} {
		if id == nil {
			continue
		}
		if err := s.ServiceRepo.MarkUnavailable(ctx, *id); err != nil {
			return err
		}
	}
	return nil
}

func (s *TradeService) notify(ctx context.Context, userID int, trade models.Trade, event string) {
	if s.Notifier == nil {
		return
	}
	s.Notifier.NotifyTrade(ctx, userID, trade, event)
}
