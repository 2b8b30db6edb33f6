package domain

// RecordKind identifies which business document a record is.
type RecordKind string

const (
	KindOrder          RecordKind = "order"
	KindSellRequest    RecordKind = "sell_request"
	KindServiceRequest RecordKind = "service_request"
	KindMovingRequest  RecordKind = "moving_request"
)

// Kinds lists every record kind in a stable order.
func Kinds() []RecordKind {
	return []RecordKind{KindOrder, KindSellRequest, KindServiceRequest, KindMovingRequest}
}

// Valid reports whether the kind is one of the known record kinds.
func (k RecordKind) Valid() bool {
	switch k {
	case KindOrder, KindSellRequest, KindServiceRequest, KindMovingRequest:
		return true
	}
	return false
}

// DisplayPrefix returns the business-number prefix used for the kind.
func (k RecordKind) DisplayPrefix() string {
	switch k {
	case KindOrder:
		return "URN"
	case KindSellRequest:
		return "SAT"
	case KindServiceRequest:
		return "TS"
	case KindMovingRequest:
		return "NAK"
	}
	return "REC"
}
