package session

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// Cleaner 定期清理早已失效的会话记录
//
// retention 应不小于会话 Cookie 的最长有效期（session.MaxAge）。
// 仅超过空闲超时的会话需要保留，Validate 才能识别为 ErrExpired 并带上超时提示。
type Cleaner struct {
	cron      *cron.Cron
	store     Store
	retention time.Duration
	now       func() time.Time
}

// NewCleaner 创建会话清理任务
func NewCleaner(store Store, retention time.Duration) *Cleaner {
	return &Cleaner{
		cron:      cron.New(),
		store:     store,
		retention: retention,
		now:       time.Now,
	}
}

// RunOnce 执行一次清理，删除空闲超过 retention 的会话
func (cl *Cleaner) RunOnce(ctx context.Context) (int64, error) {
	return cl.store.DeleteIdle(ctx, cl.now().Add(-cl.retention))
}

// Start 按 cron 表达式（或 @every 形式）启动定时清理
func (cl *Cleaner) Start(expr string) error {
	_, err := cl.cron.AddFunc(expr, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		n, err := cl.RunOnce(ctx)
		if err != nil {
			log.Printf("[session] 清理过期会话失败: %v", err)
			return
		}
		if n > 0 {
			log.Printf("[session] 已清理 %d 个过期会话", n)
		}
	})
	if err != nil {
		return err
	}
	cl.cron.Start()
	log.Printf("[session] 过期会话清理任务已启动: %s", expr)
	return nil
}

// Stop 停止定时任务并等待正在执行的清理完成
func (cl *Cleaner) Stop() {
	<-cl.cron.Stop().Done()
}
