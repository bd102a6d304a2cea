package services

import (
	"context"
	"fmt"
	"log"
	"strconv"

	"firebase.google.com/go/messaging"

	"swapcycle/internal/models"
	"swapcycle/internal/repositories"
)

// TradePusher delivers a trade event to a user's open websocket
// connections, if any.
type TradePusher interface {
	PushTradeUpdate(userID int, trade models.Trade, event string)
}

// NotificationService fans trade events out over FCM and websockets.
// A nil FCM client or pusher disables that channel.
type NotificationService struct {
	FCM      *messaging.Client
	Pusher   TradePusher
	UserRepo *repositories.UserRepository
}

var tradeEventTitles = map[string]string{
	"trade_proposed":  "New trade proposal",
	"trade_accepted":  "Trade accepted",
	"trade_declined":  "Trade declined",
	"trade_cancelled": "Trade cancelled",
}

func (s *NotificationService) NotifyTrade(ctx context.Context, userID int, trade models.Trade, event string) {
	if s.Pusher != nil {
		s.Pusher.PushTradeUpdate(userID, trade, event)
	}

	if s.FCM == nil {
		return
	}

	user, err := s.UserRepo.GetUserByID(ctx, userID)
	if err != nil {
		log.Printf("ERROR\ttrade notification: load user %d: %v", userID, err)
		return
	}
	if user.FCMToken == nil || *user.FCMToken == "" {
		return
	}

	title, ok := tradeEventTitles[event]
	if !ok {
		title = "Trade update"
	}

	message := &messaging.Message{
		Token: *user.FCMToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  tradeEventBody(trade, event),
		},
		Data: map[string]string{
			"trade_id": strconv.Itoa(trade.ID),
			"event":    event,
			"status":   trade.Status,
		},
		Android: &messaging.AndroidConfig{
			Priority: "high",
		},
	}

	if _, err := s.FCM.Send(ctx, message); err != nil {
		log.Printf("ERROR\ttrade notification: fcm send to user %d: %v", userID, err)
	}
}

func tradeEventBody(trade models.Trade, event string) string {
	if event == "trade_proposed" && trade.ProposalMessage != "" {
		return trade.ProposalMessage
	}
	if trade.ResponseMessage != nil && *trade.ResponseMessage != "" {
		return *trade.ResponseMessage
	}
	return fmt.Sprintf("Trade #%d is now %s", trade.ID, trade.Status)
}
