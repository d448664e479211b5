package order

import (
	"fmt"
	"time"
)

// Next returns the single legal successor of s. ok is false when s is
// terminal (delivered, cancelled) or unknown.
func Next(s Status) (Status, bool) {
	switch s {
	case StatusReceived:
		return StatusPreparing, true
	case StatusPreparing:
		return StatusReady, true
	case StatusReady:
		return StatusDelivered, true
	default:
		return "", false
	}
}

// CanCancel reports whether an order in status s may still be cancelled.
// Once the kitchen marked it ready the order goes out either way.
func CanCancel(s Status) bool {
	return s == StatusReceived || s == StatusPreparing
}

func ValidStatus(s Status) bool {
	switch s {
	case StatusReceived, StatusPreparing, StatusReady, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// Label is the operator-facing name shown on the kitchen terminal.
func Label(s Status) string {
	switch s {
	case StatusReceived:
		return "Recebido"
	case StatusPreparing:
		return "Preparando"
	case StatusReady:
		return "Pronto"
	case StatusDelivered:
		return "Entregue"
	case StatusCancelled:
		return "Cancelado"
	}
	return "Desconhecido"
}

// NextActionLabel is the caption of the single advance button the kitchen
// terminal offers for an order in status s. Empty when there is no action.
func NextActionLabel(s Status) string {
	switch s {
	case StatusReceived:
		return "Iniciar Preparo"
	case StatusPreparing:
		return "Marcar como Pronto"
	case StatusReady:
		return "Marcar como Entregue"
	}
	return ""
}

// Urgency is the kitchen sort weight: the further from done, the higher.
func Urgency(s Status) int {
	switch s {
	case StatusReceived:
		return 3
	case StatusPreparing:
		return 2
	case StatusReady:
		return 1
	}
	return 0
}

// Elapsed formats the time since createdAt for the kitchen display.
func Elapsed(createdAt, now time.Time) string {
	mins := int(now.Sub(createdAt).Minutes())
	if mins < 1 {
		return "Agora"
	}
	if mins < 60 {
		return fmt.Sprintf("%dmin", mins)
	}
	return fmt.Sprintf("%dh %dmin", mins/60, mins%60)
}
