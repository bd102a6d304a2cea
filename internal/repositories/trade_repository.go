package repositories

import (
	"context"
	"database/sql"
	"time"

	"swapcycle/internal/models"
)

var ErrTradeNotFound = models.ErrTradeNotFound

type TradeRepository struct {
	DB *sql.DB
}

func (r *TradeRepository) CreateTrade(ctx context.Context, t models.Trade) (models.Trade, error) {
	t.Status = models.TradeStatusPending
	t.CreatedAt = time.Now().UTC()

	query := `
		INSERT INTO trades
			(proposer_id, receiver_id, offered_product_id, offered_service_id,
			 requested_product_id, requested_service_id, status, proposal_message, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	result, err := r.DB.ExecContext(ctx, query,
		t.ProposerID, t.ReceiverID, t.OfferedProductID, t.OfferedServiceID,
		t.RequestedProductID, t.RequestedServiceID, t.Status, t.ProposalMessage, t.CreatedAt,
	)
	if err != nil {
		return models.Trade{}, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return models.Trade{}, err
	}
	t.ID = int(id)
	return t, nil
}

const tradeColumns = `
	id, proposer_id, receiver_id, offered_product_id, offered_service_id,
	requested_product_id, requested_service_id, status, proposal_message,
	response_message, created_at, updated_at
`

func scanTrade(row interface{ Scan(...interface{}) error }) (models.Trade, error) {
	var t models.Trade
	err := row.Scan(
		&t.ID, &t.ProposerID, &t.ReceiverID, &t.OfferedProductID, &t.OfferedServiceID,
		&t.RequestedProductID, &t.RequestedServiceID, &t.Status, &t.ProposalMessage,
		&t.ResponseMessage, &t.CreatedAt, &t.UpdatedAt,
	)
	return t, err
}

func (r *TradeRepository) GetTradeByID(ctx context.Context, id int) (models.Trade, error) {
	t, err := scanTrade(r.DB.QueryRowContext(ctx, `SELECT`+tradeColumns+`FROM trades WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return models.Trade{}, ErrTradeNotFound
	}
	if err != nil {
		return models.Trade{}, err
	}
	return t, nil
}

// ListTradesByUser returns trades where the user is proposer or
// receiver, newest first.
func (r *TradeRepository) ListTradesByUser(ctx context.Context, userID int) ([]models.Trade, error) {
	query := `SELECT` + tradeColumns + `
		FROM trades
		WHERE proposer_id = ? OR receiver_id = ?
		ORDER BY created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, userID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trades []models.Trade
	for rows.Next() {
		t, err := scanTrade(rows)
		if err != nil {
			return nil, err
		}
		trades = append(trades, t)
	}
	return trades, rows.Err()
}

func (r *TradeRepository) UpdateTradeStatus(ctx context.Context, id int, status string, responseMessage *string) (models.Trade, error) {
	query := `
		UPDATE trades
		SET status = ?, response_message = COALESCE(?, response_message), updated_at = ?
		WHERE id = ?
	`
	result, err := r.DB.ExecContext(ctx, query, status, responseMessage, time.Now().UTC(), id)
	if err != nil {
		return models.Trade{}, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return models.Trade{}, err
	}
	if rowsAffected == 0 {
		return models.Trade{}, ErrTradeNotFound
	}
	return r.GetTradeByID(ctx, id)
}
