package events

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmitDataChanged_DeliversToHandlers(t *testing.T) {
	got := make(chan DataChangeEvent, 2)
	unsubscribe := OnDataChanged(func(ctx context.Context, e DataChangeEvent) {
		got <- e
	})
	defer unsubscribe()

	ctx, cancel := context.WithCancel(context.Background())
	EmitDataChanged(ctx, DataChangeEvent{CollectionName: "account", Operation: OpInsert})
	cancel()

	select {
	case e := <-got:
		assert.Equal(t, "account", e.CollectionName)
		assert.Equal(t, OpInsert, e.Operation)
	case <-time.After(2 * time.Second):
		t.Fatal("handler không nhận được event")
	}
}

func TestEmitDataChanged_PanicDoesNotStopOthers(t *testing.T) {
	got := make(chan struct{}, 1)
	u1 := OnDataChanged(func(ctx context.Context, e DataChangeEvent) { panic("boom") })
	u2 := OnDataChanged(func(ctx context.Context, e DataChangeEvent) { got <- struct{}{} })
	defer u1()
	defer u2()

	EmitDataChanged(context.Background(), DataChangeEvent{CollectionName: "account", Operation: OpUpdate})

	select {
	case <-got:
	case <-time.After(2 * time.Second):
		t.Fatal("handler thứ hai không chạy")
	}
}

func TestOnDataChanged_Unsubscribe(t *testing.T) {
	handlersMu.RLock()
	before := len(handlers)
	handlersMu.RUnlock()

	unsubscribe := OnDataChanged(func(ctx context.Context, e DataChangeEvent) {})
	unsubscribe()

	handlersMu.RLock()
	defer handlersMu.RUnlock()
	assert.Equal(t, before, len(handlers))
}

type fakeChannel struct {
	mu       sync.Mutex
	exchange string
	key      string
	msg      amqp.Publishing
	err      error
}

func (f *fakeChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.exchange, f.key, f.msg = exchange, key, msg
	return f.err
}

func (f *fakeChannel) Close() error { return nil }

func TestAMQPPublisher_Publish(t *testing.T) {
	ch := &fakeChannel{}
	p := &AMQPPublisher{ch: ch, exchange: "accounts.events"}

	err := p.Publish(context.Background(), DataChangeEvent{
		CollectionName: "account",
		Operation:      OpInsert,
		Document:       map[string]string{"accountName": "Acme"},
	})
	require.NoError(t, err)

	assert.Equal(t, "accounts.events", ch.exchange)
	assert.Equal(t, "account.insert", ch.key)
	assert.Equal(t, "application/json", ch.msg.ContentType)
	assert.Equal(t, amqp.Persistent, ch.msg.DeliveryMode)
	assert.NotEmpty(t, ch.msg.MessageId)

	var body ChangeMessage
	require.NoError(t, json.Unmarshal(ch.msg.Body, &body))
	assert.Equal(t, "account", body.Collection)
	assert.Equal(t, OpInsert, body.Operation)
	assert.Equal(t, map[string]interface{}{"accountName": "Acme"}, body.Document)
	assert.NoError(t, p.Close())
}

func TestAMQPPublisher_HandleSwallowsError(t *testing.T) {
	ch := &fakeChannel{err: errors.New("channel closed")}
	p := &AMQPPublisher{ch: ch, exchange: "accounts.events"}

	assert.NotPanics(t, func() {
		p.Handle(context.Background(), DataChangeEvent{CollectionName: "account", Operation: OpUpdate})
	})
	assert.Equal(t, "account.update", ch.key)
}
