package service

import (
	"sync"
)

// Event is a fire-and-forget notification emitted by the ledger and the
// settlement state machine.
type Event struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

type Pubsub struct {
	mu      sync.RWMutex
	nextSub int
	subs    map[string]map[int]chan Event
}

func NewPubsub() *Pubsub {
	ps := &Pubsub{}
	ps.subs = make(map[string]map[int]chan Event)
	return ps
}

func (ps *Pubsub) Subscribe(topic string, ch chan Event) (subId int) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	if ps.subs[topic] == nil {
		ps.subs[topic] = make(map[int]chan Event)
	}
	ps.nextSub++
	ps.subs[topic][ps.nextSub] = ch
	return ps.nextSub
}

func (ps *Pubsub) Unsubscribe(id int, topic string) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	if ps.subs[topic] == nil {
		return
	}
	if ps.subs[topic][id] == nil {
		return
	}
	close(ps.subs[topic][id])
	delete(ps.subs[topic], id)
}

func (ps *Pubsub) Publish(topic string, msg Event) {
	ps.mu.RLock()
	defer ps.mu.RUnlock()

	if ps.subs[topic] == nil {
		return
	}

	for _, ch := range ps.subs[topic] {
		ch <- msg
	}
}
