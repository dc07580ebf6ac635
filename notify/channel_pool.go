package notify

import (
	"errors"
	"fmt"
	"log"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
)

// ChannelPool hands out a fixed number of channel slots. A slot whose channel
// was closed by the broker holds nil until the next GetChannel reopens it.
type ChannelPool struct {
	conn      *amqp.Connection
	channels  chan *amqp.Channel
	open      func() (*amqp.Channel, error)
	mu        sync.Mutex
	closed    bool
	queueName string
}

// NewChannelPool dials RabbitMQ and pre-opens size channels with the queue declared.
func NewChannelPool(rabbitmqURL, queueName string, size int) (*ChannelPool, error) {
	if size <= 0 {
		size = 1
	}
	conn, err := amqp.Dial(rabbitmqURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	pool := &ChannelPool{
		conn:      conn,
		channels:  make(chan *amqp.Channel, size),
		queueName: queueName,
	}
	pool.open = pool.createChannel

	for i := 0; i < size; i++ {
		ch, err := pool.createChannel()
		if err != nil {
			pool.Close()
			return nil, fmt.Errorf("failed to create channel %d: %w", i, err)
		}
		pool.channels <- ch
	}

	log.Printf("🐇 Created RabbitMQ channel pool with %d channels", size)
	return pool, nil
}

func (p *ChannelPool) createChannel() (*amqp.Channel, error) {
	ch, err := p.conn.Channel()
	if err != nil {
		return nil, err
	}

	_, err = ch.QueueDeclare(
		p.queueName, // name
		true,        // durable
		false,       // delete when unused
		false,       // exclusive
		false,       // no-wait
		nil,         // arguments
	)
	if err != nil {
		ch.Close()
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}
	return ch, nil
}

// GetChannel takes a channel from the pool, reopening it if the broker closed it.
func (p *ChannelPool) GetChannel() (*amqp.Channel, error) {
	select {
	case ch, ok := <-p.channels:
		if !ok {
			return nil, errors.New("channel pool closed")
		}
		if ch != nil && !ch.IsClosed() {
			return ch, nil
		}
		fresh, err := p.open()
		if err != nil {
			p.release(nil)
			return nil, fmt.Errorf("failed to reopen channel: %w", err)
		}
		return fresh, nil
	default:
		return nil, errors.New("no channels available in pool")
	}
}

// ReturnChannel gives the slot back. Closed channels come back as an empty slot.
func (p *ChannelPool) ReturnChannel(ch *amqp.Channel) {
	if ch != nil && ch.IsClosed() {
		ch = nil
	}
	p.release(ch)
}

func (p *ChannelPool) release(ch *amqp.Channel) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		if ch != nil {
			ch.Close()
		}
		return
	}
	select {
	case p.channels <- ch:
	default:
		if ch != nil {
			ch.Close()
		}
	}
}

func (p *ChannelPool) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.closed = true

	close(p.channels)
	for ch := range p.channels {
		if ch != nil {
			ch.Close()
		}
	}
	if p.conn != nil {
		p.conn.Close()
	}
	log.Println("🐇 Closed RabbitMQ channel pool")
}
