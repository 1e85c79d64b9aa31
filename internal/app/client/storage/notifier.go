package storage

import "sync"

// Change - уведомление об изменении ключа пользователя
type Change struct {
	Key    string
	UserID string
}

// Notifier рассылает уведомления подписчикам. Доставка неблокирующая:
// если подписчик не успел прочитать прошлое уведомление, новое отбрасывается
type Notifier struct {
	mu   sync.Mutex
	subs map[int]chan Change
	next int
}

func NewNotifier() *Notifier {
	return &Notifier{subs: make(map[int]chan Change)}
}

// Subscribe возвращает канал уведомлений и функцию отписки
func (n *Notifier) Subscribe() (<-chan Change, func()) {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.next
	n.next++
	ch := make(chan Change, 1)
	n.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			n.mu.Lock()
			defer n.mu.Unlock()
			delete(n.subs, id)
			close(ch)
		})
	}
}

func (n *Notifier) Publish(c Change) {
	n.mu.Lock()
	defer n.mu.Unlock()

	for _, ch := range n.subs {
		select {
		case ch <- c:
		default:
		}
	}
}
