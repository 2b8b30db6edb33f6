package domain

// Status is a lifecycle state. Each record kind has its own closed set of
// values; identical strings across kinds are coincidental, never shared.
type Status string

// Order statuses.
const (
	OrderPaymentPending Status = "payment_pending"
	OrderReceived       Status = "order_received"
	OrderProcessing     Status = "processing"
	OrderInTransit      Status = "in_transit"
	OrderDelivered      Status = "delivered"
	OrderCancelled      Status = "cancelled"
)

// SellRequest statuses.
const (
	SellReviewing Status = "reviewing"
	SellOfferSent Status = "offer_sent"
	SellAccepted  Status = "accepted"
	SellCompleted Status = "completed"
	SellRejected  Status = "rejected"
	SellCancelled Status = "cancelled"
)

// ServiceRequest statuses.
const (
	ServicePending      Status = "pending"
	ServicePriceOffered Status = "price_offered"
	ServiceConfirmed    Status = "confirmed"
	ServiceInProgress   Status = "in_progress"
	ServiceCompleted    Status = "completed"
	ServiceCancelled    Status = "cancelled"
)

// MovingRequest statuses.
const (
	MovingReviewing Status = "reviewing"
	MovingOfferSent Status = "offer_sent"
	MovingAccepted  Status = "accepted"
	MovingCompleted Status = "completed"
	MovingRejected  Status = "rejected"
)

// statusSets enumerates every status per kind in display order.
var statusSets = map[RecordKind][]Status{
	KindOrder:          {OrderPaymentPending, OrderReceived, OrderProcessing, OrderInTransit, OrderDelivered, OrderCancelled},
	KindSellRequest:    {SellReviewing, SellOfferSent, SellAccepted, SellCompleted, SellRejected, SellCancelled},
	KindServiceRequest: {ServicePending, ServicePriceOffered, ServiceConfirmed, ServiceInProgress, ServiceCompleted, ServiceCancelled},
	KindMovingRequest:  {MovingReviewing, MovingOfferSent, MovingAccepted, MovingCompleted, MovingRejected},
}

// initialStatuses is the state every freshly submitted record starts in.
var initialStatuses = map[RecordKind]Status{
	KindOrder:          OrderPaymentPending,
	KindSellRequest:    SellReviewing,
	KindServiceRequest: ServicePending,
	KindMovingRequest:  MovingReviewing,
}

// terminalStatuses are states with no outgoing edges. Terminal is terminal:
// no kind allows re-opening.
var terminalStatuses = map[RecordKind]map[Status]bool{
	KindOrder:          {OrderDelivered: true, OrderCancelled: true},
	KindSellRequest:    {SellCompleted: true, SellRejected: true, SellCancelled: true},
	KindServiceRequest: {ServiceCompleted: true, ServiceCancelled: true},
	KindMovingRequest:  {MovingCompleted: true, MovingRejected: true},
}

// transitionTable maps (kind, current) to the legal next statuses. Only
// listed edges are legal; an order cannot be cancelled once in transit.
var transitionTable = map[RecordKind]map[Status][]Status{
	KindOrder: {
		OrderPaymentPending: {OrderReceived, OrderCancelled},
		OrderReceived:       {OrderProcessing, OrderCancelled},
		OrderProcessing:     {OrderInTransit, OrderCancelled},
		OrderInTransit:      {OrderDelivered},
		OrderDelivered:      {},
		OrderCancelled:      {},
	},
	KindSellRequest: {
		SellReviewing: {SellOfferSent, SellRejected, SellCancelled},
		SellOfferSent: {SellAccepted, SellRejected, SellCancelled},
		SellAccepted:  {SellCompleted},
		SellCompleted: {},
		SellRejected:  {},
		SellCancelled: {},
	},
	KindServiceRequest: {
		ServicePending:      {ServicePriceOffered, ServiceCancelled},
		ServicePriceOffered: {ServiceConfirmed, ServiceCancelled},
		ServiceConfirmed:    {ServiceInProgress, ServiceCancelled},
		ServiceInProgress:   {ServiceCompleted, ServiceCancelled},
		ServiceCompleted:    {},
		ServiceCancelled:    {},
	},
	KindMovingRequest: {
		MovingReviewing: {MovingOfferSent, MovingRejected},
		MovingOfferSent: {MovingAccepted, MovingRejected},
		MovingAccepted:  {MovingCompleted},
		MovingCompleted: {},
		MovingRejected:  {},
	},
}

// orderStages is the ordered non-terminal progression rendered as the
// customer-facing progress timeline.
var orderStages = []Status{OrderPaymentPending, OrderReceived, OrderProcessing, OrderInTransit, OrderDelivered}

// StatusesFor returns the closed status set of a kind.
func StatusesFor(kind RecordKind) []Status {
	return statusSets[kind]
}

// InitialStatus returns the state a new record of the kind starts in.
func InitialStatus(kind RecordKind) Status {
	return initialStatuses[kind]
}

// ValidStatus reports whether status belongs to the kind's enum.
func ValidStatus(kind RecordKind, status Status) bool {
	for _, s := range statusSets[kind] {
		if s == status {
			return true
		}
	}
	return false
}

// IsTerminal reports whether status is terminal for the kind.
func IsTerminal(kind RecordKind, status Status) bool {
	return terminalStatuses[kind][status]
}

// LegalNext returns the statuses reachable from current in one step.
func LegalNext(kind RecordKind, current Status) []Status {
	return transitionTable[kind][current]
}

// OrderStages returns the ordered order progression used for timelines.
func OrderStages() []Status {
	return orderStages
}
