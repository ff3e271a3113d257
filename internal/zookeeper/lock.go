// internal/zookeeper/lock.go
package zookeeper

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-zookeeper/zk"
	"github.com/pkg/errors"
	zlog "github.com/rs/zerolog/log"
)

const (
	lockRoot  = "/distributed_locks" // 所有分布式锁的根节点
	seqDigits = 10                   // 顺序节点后缀固定 10 位
)

// Conn 包装 ZooKeeper 连接
type Conn struct {
	*zk.Conn
}

type zkLogger struct{}

func (zkLogger) Printf(format string, args ...any) {
	zlog.Debug().Msgf("zookeeper: "+format, args...)
}

// Connect 建立 ZooKeeper 会话，客户端日志接入 zerolog
func Connect(servers []string, sessionTimeout time.Duration) (*Conn, error) {
	if len(servers) == 0 {
		return nil, errors.New("zookeeper: no server configured")
	}
	conn, _, err := zk.Connect(servers, sessionTimeout, zk.WithLogger(zkLogger{}))
	if err != nil {
		return nil, errors.Wrapf(err, "connect zookeeper %v", servers)
	}
	return &Conn{Conn: conn}, nil
}

// DistributedLock 基于临时顺序节点的公平锁
type DistributedLock struct {
	conn        *Conn
	path        string // 锁路径，例如 /distributed_locks/catalog-seed
	lockNode    string // 获取锁时创建的节点
	waitTimeout time.Duration
}

// NewDistributedLock 创建锁实例，并确保锁的父路径存在
func NewDistributedLock(conn *Conn, resourceID string) (*DistributedLock, error) {
	lockPath := lockRoot + "/" + resourceID
	for _, p := range []string{lockRoot, lockPath} {
		if err := ensureNode(conn, p); err != nil {
			return nil, err
		}
	}
	return &DistributedLock{
		conn:        conn,
		path:        lockPath,
		waitTimeout: 30 * time.Second,
	}, nil
}

func ensureNode(conn *Conn, path string) error {
	ok, _, err := conn.Exists(path)
	if err != nil {
		return errors.Wrapf(err, "check node %s", path)
	}
	if ok {
		return nil
	}
	_, err = conn.Create(path, []byte{}, 0, zk.WorldACL(zk.PermAll))
	if err != nil && !errors.Is(err, zk.ErrNodeExists) {
		return errors.Wrapf(err, "create node %s", path)
	}
	return nil
}

// Lock 获取锁，拿不到时监听前一个节点并阻塞等待，直到 ctx 结束或超时
func (l *DistributedLock) Lock(ctx context.Context) error {
	// 1. 创建临时顺序节点
	nodePath, err := l.conn.CreateProtectedEphemeralSequential(l.path+"/lock-", []byte{}, zk.WorldACL(zk.PermAll))
	if err != nil {
		return errors.Wrap(err, "create sequential node")
	}
	l.lockNode = nodePath
	myNodeName := strings.TrimPrefix(nodePath, l.path+"/")

	timeout := time.NewTimer(l.waitTimeout)
	defer timeout.Stop()

	for {
		// 2. 按序号排序所有子节点
		children, _, err := l.conn.Children(l.path)
		if err != nil {
			l.abandon()
			return errors.Wrap(err, "list lock children")
		}
		sortBySequence(children)

		// 3. 自己是最小节点则获得锁
		idx := indexOf(children, myNodeName)
		if idx < 0 {
			l.abandon()
			return errors.New("lock node disappeared, session may have expired")
		}
		if idx == 0 {
			return nil
		}

		// 4. 否则监听前一个节点
		ok, _, events, err := l.conn.ExistsW(l.path + "/" + children[idx-1])
		if err != nil {
			l.abandon()
			return errors.Wrap(err, "watch previous node")
		}
		if !ok {
			continue
		}

		select {
		case <-events:
		case <-ctx.Done():
			l.abandon()
			return ctx.Err()
		case <-timeout.C:
			l.abandon()
			return errors.New("timeout waiting for lock")
		}
	}
}

// Unlock 释放锁
func (l *DistributedLock) Unlock() error {
	if l.lockNode == "" {
		return errors.New("no lock to unlock")
	}
	err := l.conn.Delete(l.lockNode, -1)
	if err != nil && !errors.Is(err, zk.ErrNoNode) {
		return errors.Wrap(err, "delete lock node")
	}
	l.lockNode = ""
	return nil
}

func (l *DistributedLock) abandon() {
	if err := l.Unlock(); err != nil {
		zlog.Warn().Err(err).Str("path", l.path).Msg("failed to clean up lock node")
	}
}

// sortBySequence 按顺序节点的数字后缀排序。受保护节点带有 _c_<guid>- 前缀，不能按字符串排序
func sortBySequence(children []string) {
	sort.SliceStable(children, func(i, j int) bool {
		return sequenceOf(children[i]) < sequenceOf(children[j])
	})
}

func sequenceOf(name string) int64 {
	if len(name) < seqDigits {
		return -1
	}
	seq, err := strconv.ParseInt(name[len(name)-seqDigits:], 10, 64)
	if err != nil {
		return -1
	}
	return seq
}

func indexOf(children []string, name string) int {
	for i, c := range children {
		if c == name {
			return i
		}
	}
	return -1
}
