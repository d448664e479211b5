package notify

import (
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const changesExchange = "pdv.changes"

// AMQPFeed fans change notifications out through a durable fanout exchange,
// so terminals behind different server instances all see the same hints.
// The message body is just the topic name.
type AMQPFeed struct {
	conn *amqp.Connection
	ch   *amqp.Channel

	mu     sync.Mutex
	closed bool
}

func DialAMQP(url string) (*AMQPFeed, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}
	if err := ch.ExchangeDeclare(changesExchange, "fanout", true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}
	return &AMQPFeed{conn: conn, ch: ch}, nil
}

func (f *AMQPFeed) Publish(topic string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	err := f.ch.Publish(changesExchange, "", false, false, amqp.Publishing{
		ContentType: "text/plain",
		Body:        []byte(topic),
	})
	if err != nil {
		zap.S().Errorw("feed_publish_failed", "topic", topic, "err", err)
	}
}

// Subscribe consumes from a private queue bound to the fanout exchange and
// invokes onChange for deliveries matching the topic. The delivery body is
// only used for that match, never handed to the subscriber.
func (f *AMQPFeed) Subscribe(topic string, onChange func()) Unsubscribe {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return func() {}
	}

	q, err := f.ch.QueueDeclare("", false, true, true, false, nil)
	if err != nil {
		zap.S().Errorw("feed_subscribe_failed", "topic", topic, "err", err)
		return func() {}
	}
	if err := f.ch.QueueBind(q.Name, "", changesExchange, false, nil); err != nil {
		zap.S().Errorw("feed_bind_failed", "topic", topic, "err", err)
		return func() {}
	}
	deliveries, err := f.ch.Consume(q.Name, "", true, true, false, false, nil)
	if err != nil {
		zap.S().Errorw("feed_consume_failed", "topic", topic, "err", err)
		return func() {}
	}
	done := make(chan struct{})
	go func() {
		for {
			select {
			case d, ok := <-deliveries:
				if !ok {
					return
				}
				if string(d.Body) == topic {
					onChange()
				}
			case <-done:
				return
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			close(done)
			f.mu.Lock()
			defer f.mu.Unlock()
			if !f.closed {
				_, _ = f.ch.QueueDelete(q.Name, false, false, false)
			}
		})
	}
}

func (f *AMQPFeed) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	f.closed = true
	_ = f.ch.Close()
	_ = f.conn.Close()
}
