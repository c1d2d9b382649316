package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Pool - пул воркеров для fire-and-forget доставки вебхуков.
// Очередь ограничена: при переполнении сообщение теряется с записью в лог,
// доставка best-effort и at-most-once.
type Pool struct {
	client *http.Client
	logger *zap.Logger
	count  int
	queue  chan notification
	wg     sync.WaitGroup
}

type notification struct {
	url     string
	message string
}

func NewPool(logger *zap.Logger, workers, queueSize int, timeout time.Duration) *Pool {
	return &Pool{
		client: &http.Client{Timeout: timeout},
		logger: logger,
		count:  workers,
		queue:  make(chan notification, queueSize),
	}
}

func (p *Pool) Start(ctx context.Context) {
	p.logger.Info("Starting notifier pool", zap.Int("workers", p.count))

	for i := 0; i < p.count; i++ {
		p.wg.Add(1)
		go p.worker(ctx, i)
	}
}

// Stop дожидается, пока воркеры дольют то, что уже в очереди
func (p *Pool) Stop() {
	p.logger.Info("Stopping notifier pool...")
	close(p.queue)
	p.wg.Wait()
	p.logger.Info("Notifier pool stopped")
}

// Send не блокирует вызывающего ни при каких условиях
func (p *Pool) Send(webhookURL, message string) {
	select {
	case p.queue <- notification{url: webhookURL, message: message}:
	default:
		p.logger.Warn("notification queue full, dropping message",
			zap.String("url", webhookURL))
	}
}

func (p *Pool) worker(ctx context.Context, id int) {
	defer p.wg.Done()

	for n := range p.queue {
		p.deliver(ctx, id, n)
	}
}

func (p *Pool) deliver(ctx context.Context, workerID int, n notification) {
	payload, err := json.Marshal(map[string]string{"text": n.message})
	if err != nil {
		p.logger.Error("failed to marshal webhook payload", zap.Error(err))
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(payload))
	if err != nil {
		p.logger.Error("failed to build webhook request",
			zap.String("url", n.url), zap.Error(err))
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		// Ошибки доставки глотаем: ретраев нет, наверх ничего не уходит
		p.logger.Error("webhook delivery failed",
			zap.Int("worker", workerID),
			zap.String("url", n.url),
			zap.Error(err),
		)
		return
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		p.logger.Error("webhook returned non-2xx",
			zap.Int("worker", workerID),
			zap.String("url", n.url),
			zap.Int("status", resp.StatusCode),
		)
	}
}
