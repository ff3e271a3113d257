package infrastructure

import (
	"context"

	"github.com/pkg/errors"
)

// LocalLock 是单实例部署时替代 ZooKeeper 的进程内锁
type LocalLock struct {
	ch chan struct{}
}

func NewLocalLock() *LocalLock {
	return &LocalLock{ch: make(chan struct{}, 1)}
}

func (l *LocalLock) Lock(ctx context.Context) error {
	select {
	case l.ch <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (l *LocalLock) Unlock() error {
	select {
	case <-l.ch:
		return nil
	default:
		return errors.New("no lock to unlock")
	}
}
