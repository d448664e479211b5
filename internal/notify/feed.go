// Package notify is the change-feed boundary between writers and terminals.
// Notifications carry no payload beyond the topic name: a subscriber must
// re-query the store, which makes duplicate or out-of-order deliveries
// harmless.
package notify

// Topics correspond to the stored collections terminals render from.
const (
	TopicOrders   = "orders"
	TopicTables   = "tables"
	TopicProducts = "products"
	TopicCash     = "cash_movements"
)

type Unsubscribe func()

type Feed interface {
	// Publish signals that something under topic changed. Best effort;
	// a lost notification only delays the next re-render.
	Publish(topic string)
	// Subscribe registers onChange for a topic. onChange receives no
	// payload on purpose.
	Subscribe(topic string, onChange func()) Unsubscribe
	Close()
}
