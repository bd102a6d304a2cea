package models

import (
	"time"
)

const (
	TradeStatusPending   = "pending"
	TradeStatusAccepted  = "accepted"
	TradeStatusDeclined  = "declined"
	TradeStatusCancelled = "cancelled"
)

type Trade struct {
	ID                 int        `json:"id"`
	ProposerID         int        `json:"proposer_id"`
	ReceiverID         int        `json:"receiver_id"`
	OfferedProductID   *int       `json:"offered_product_id,omitempty"`
	OfferedServiceID   *int       `json:"offered_service_id,omitempty"`
	RequestedProductID *int       `json:"requested_product_id,omitempty"`
	RequestedServiceID *int       `json:"requested_service_id,omitempty"`
	Status             string     `json:"status"`
	ProposalMessage    string     `json:"proposal_message"`
	ResponseMessage    *string    `json:"response_message,omitempty"`
	OfferedItem        *TradeItem `json:"offered_item,omitempty"`
	RequestedItem      *TradeItem `json:"requested_item,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          *time.Time `json:"updated_at,omitempty"`
}

// TradeItem is the listing summary embedded in trade payloads.
type TradeItem struct {
	Type  string  `json:"type"` // product or service
	ID    int     `json:"id"`
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// ValidateItems checks that the trade references exactly one offered
// and exactly one requested item.
func (t *Trade) ValidateItems() error {
	offered := 0
	if t.OfferedProductID != nil {
		offered++
	}
	if t.OfferedServiceID != nil {
		offered++
	}
	requested := 0
	if t.RequestedProductID != nil {
		requested++
	}
	if t.RequestedServiceID != nil {
		requested++
	}
	if offered != 1 || requested != 1 {
		return ErrInvalidTradeItems
	}
	return nil
}

func (t *Trade) CanBeAnswered() bool {
	return t.Status == TradeStatusPending
}

func (t *Trade) CanBeCancelled() bool {
	return t.Status == TradeStatusPending
}
