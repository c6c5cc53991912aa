package service

import (
	"context"

	"lunai-users/internal/worker"
)

// Hasher 把 bcrypt 運算排進固定大小的 worker pool，限制同時佔用的 CPU。
// nil Hasher 或沒有 pool 時直接在呼叫端 goroutine 執行。
type Hasher struct {
	pool worker.Pool
}

func NewHasher(pool worker.Pool) *Hasher {
	return &Hasher{pool: pool}
}

// Hash 回傳 password 的 bcrypt 哈希
func (h *Hasher) Hash(ctx context.Context, password string) (string, error) {
	var (
		hash string
		err  error
	)
	if runErr := h.run(ctx, func() { hash, err = HashPassword(password) }); runErr != nil {
		return "", runErr
	}
	return hash, err
}

// Compare 比對 hash 與 password，不符時回傳 bcrypt 的錯誤
func (h *Hasher) Compare(ctx context.Context, hash, password string) error {
	var err error
	if runErr := h.run(ctx, func() { err = ComparePassword(hash, password) }); runErr != nil {
		return runErr
	}
	return err
}

func (h *Hasher) run(ctx context.Context, fn func()) error {
	if h == nil || h.pool == nil {
		fn()
		return nil
	}
	done := make(chan struct{})
	if err := h.pool.SubmitContext(ctx, func() {
		defer close(done)
		fn()
	}); err != nil {
		return err
	}
	<-done
	return nil
}
