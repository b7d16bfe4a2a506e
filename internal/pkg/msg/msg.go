// Package msg is the in-process message fabric linking the analysis
// surfaces to their consumers: the webservice publishes analysis
// reports, the instrument gateway publishes measurements, and handlers
// such as the MongoDB recorder subscribe by topic.
package msg

import (
	"errors"
	"sync"

	"github.com/google/uuid"
)

// Topic partitions the message stream.
type Topic int

// Topics carried by the fabric.
const (
	Report Topic = iota
	Measurement
)

// Msg is an immutable message from an identified sender.
type Msg struct {
	sender  uuid.UUID
	topic   Topic
	payload interface{}
}

// New is the Msg factory function.
func New(sender uuid.UUID, topic Topic, payload interface{}) Msg {
	return Msg{sender, topic, payload}
}

// PID returns the sender's PID.
func (m Msg) PID() uuid.UUID {
	return m.sender
}

// Topic returns the message topic.
func (m Msg) Topic() Topic {
	return m.topic
}

// Payload returns the message data.
func (m Msg) Payload() interface{} {
	return m.payload
}

// Publisher is an interface for objects that allow subscription to
// their events by topic.
type Publisher interface {
	Subscribe(pid uuid.UUID, topic Topic) (<-chan Msg, error)
	Unsubscribe(pid uuid.UUID)
}

// ErrStopped reports a subscription attempt on a stopped publisher.
var ErrStopped = errors.New("msg: publisher stopped")

// PubSub fans messages out to per-subscriber buffered channels. Sends
// never block: a subscriber that falls behind loses messages rather
// than stalling the publisher.
type PubSub struct {
	mux     *sync.Mutex
	pid     uuid.UUID
	subs    map[Topic]map[uuid.UUID]chan Msg
	stopped bool
}

// NewPublisher returns a PubSub owned by the given PID.
func NewPublisher(pid uuid.UUID) *PubSub {
	return &PubSub{
		mux:  &sync.Mutex{},
		pid:  pid,
		subs: make(map[Topic]map[uuid.UUID]chan Msg),
	}
}

// PID returns the publisher's PID.
func (p *PubSub) PID() uuid.UUID {
	return p.pid
}

// Subscribe returns a read-only channel carrying the topic's messages.
func (p *PubSub) Subscribe(pid uuid.UUID, topic Topic) (<-chan Msg, error) {
	p.mux.Lock()
	defer p.mux.Unlock()
	if p.stopped {
		return nil, ErrStopped
	}
	if _, ok := p.subs[topic]; !ok {
		p.subs[topic] = make(map[uuid.UUID]chan Msg)
	}
	ch := make(chan Msg, 50)
	p.subs[topic][pid] = ch
	return ch, nil
}

// Unsubscribe closes and removes the pid's channels on all topics.
func (p *PubSub) Unsubscribe(pid uuid.UUID) {
	p.mux.Lock()
	defer p.mux.Unlock()
	for _, byPID := range p.subs {
		if ch, ok := byPID[pid]; ok {
			delete(byPID, pid)
			close(ch)
		}
	}
}

// Publish fans a payload out to the topic's subscribers.
func (p *PubSub) Publish(topic Topic, payload interface{}) {
	p.mux.Lock()
	defer p.mux.Unlock()
	if p.stopped {
		return
	}
	m := New(p.pid, topic, payload)
	for _, ch := range p.subs[topic] {
		select {
		case ch <- m:
		default:
		}
	}
}

// Stop closes all subscriber channels and rejects further use.
func (p *PubSub) Stop() {
	p.mux.Lock()
	defer p.mux.Unlock()
	if p.stopped {
		return
	}
	p.stopped = true
	for topic, byPID := range p.subs {
		for pid, ch := range byPID {
			delete(byPID, pid)
			close(ch)
		}
		delete(p.subs, topic)
	}
}
