package domain

// Roles
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Order Statuses
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// Return Statuses
const (
	ReturnStatusPending    = "pending"
	ReturnStatusApproved   = "approved"
	ReturnStatusRejected   = "rejected"
	ReturnStatusProcessing = "processing"
	ReturnStatusCompleted  = "completed"
)

// Payment Methods
const (
	PaymentMethodCOD    = "cod"
	PaymentMethodCard   = "card"
	PaymentMethodPaypal = "paypal"
)

// List Exports for API
var OrderStatuses = []string{
	OrderStatusPending,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

var ReturnStatuses = []string{
	ReturnStatusPending,
	ReturnStatusApproved,
	ReturnStatusRejected,
	ReturnStatusProcessing,
	ReturnStatusCompleted,
}

// orderTransitions enumerates the legal forward moves of the order state
// machine. Cancellation is allowed from any non-terminal state; delivered
// and cancelled are terminal.
var orderTransitions = map[string][]string{
	OrderStatusPending:    {OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled},
	OrderStatusProcessing: {OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled},
	OrderStatusShipped:    {OrderStatusDelivered, OrderStatusCancelled},
	OrderStatusDelivered:  {},
	OrderStatusCancelled:  {},
}

var returnTransitions = map[string][]string{
	ReturnStatusPending:    {ReturnStatusApproved, ReturnStatusRejected},
	ReturnStatusApproved:   {ReturnStatusProcessing, ReturnStatusCompleted},
	ReturnStatusProcessing: {ReturnStatusCompleted},
	ReturnStatusRejected:   {},
	ReturnStatusCompleted:  {},
}

var paymentMethods = []string{PaymentMethodCOD, PaymentMethodCard, PaymentMethodPaypal}

// ValidPaymentMethod reports whether m is a supported payment method.
func ValidPaymentMethod(m string) bool {
	for _, pm := range paymentMethods {
		if pm == m {
			return true
		}
	}
	return false
}

// ValidOrderStatus reports whether s is a known order status.
func ValidOrderStatus(s string) bool {
	_, ok := orderTransitions[s]
	return ok
}

// ValidReturnStatus reports whether s is a known return status.
func ValidReturnStatus(s string) bool {
	_, ok := returnTransitions[s]
	return ok
}

// CanTransitionOrder reports whether an order may move from one status to
// another. Unknown statuses are never legal.
func CanTransitionOrder(from, to string) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// CanTransitionReturn reports whether a return request may move from one
// status to another.
func CanTransitionReturn(from, to string) bool {
	for _, next := range returnTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
