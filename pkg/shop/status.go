package shop

type OrderStatus string

const (
	StatusReceived   OrderStatus = "Đã nhận"
	StatusInProgress OrderStatus = "Đang làm"
	StatusCompleted  OrderStatus = "Hoàn thành"
	StatusCancelled  OrderStatus = "Đã hủy"
)

var AllStatuses = []OrderStatus{StatusReceived, StatusInProgress, StatusCompleted, StatusCancelled}

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusReceived, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition is allowed.
func (s OrderStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Priority orders the staff board: new orders first, cancelled last.
func (s OrderStatus) Priority() int {
	switch s {
	case StatusReceived:
		return 1
	case StatusInProgress:
		return 2
	case StatusCompleted:
		return 3
	case StatusCancelled:
		return 4
	}
	return 99
}

var transitions = map[OrderStatus][]OrderStatus{
	StatusReceived:   {StatusInProgress, StatusCompleted, StatusCancelled},
	StatusInProgress: {StatusCompleted, StatusCancelled},
}

// CanTransition reports whether an order may move from one status to another.
// Same-status moves and anything out of a terminal status are rejected.
func CanTransition(from, to OrderStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
