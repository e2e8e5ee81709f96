package domain

import (
	"context"
	"time"
)

// ReturnShipBackDays is how long a customer has to ship items back once a
// return request is accepted, counted from request creation.
const ReturnShipBackDays = 7

type ReturnRequest struct {
	ID             string       `json:"id"`
	OrderID        string       `json:"orderId"`
	Order          *Order       `json:"order,omitempty"`
	UserID         string       `json:"userId"`
	Items          []ReturnItem `json:"items"`
	Reason         string       `json:"reason"`
	Status         string       `json:"status"` // pending, approved, rejected, processing, completed
	RefundAmount   float64      `json:"refundAmount"`
	AdminNotes     string       `json:"adminNotes,omitempty"`
	Images         []string     `json:"images"`
	ReturnDeadline time.Time    `json:"returnDeadline"`
	CreatedAt      time.Time    `json:"createdAt"`
	UpdatedAt      time.Time    `json:"updatedAt"`
}

type ReturnItem struct {
	ID        string  `json:"id"`
	ReturnID  string  `json:"returnId"`
	ProductID string  `json:"productId"`
	Product   Product `json:"product"`
	Quantity  int     `json:"quantity"`
	Size      string  `json:"size,omitempty"`
	Reason    string  `json:"reason,omitempty"`
}

type ReturnRepository interface {
	Create(ctx context.Context, ret *ReturnRequest) error
	GetByID(ctx context.Context, id string) (*ReturnRequest, error)
	GetByUserID(ctx context.Context, userID string) ([]ReturnRequest, error)
	GetAll(ctx context.Context) ([]ReturnRequest, error)
	UpdateStatus(ctx context.Context, id, status, adminNotes string) error
}
