package services

import (
	"fmt"
	"sync"
	"time"

	"wiretrack-http-service/config"
	"wiretrack-http-service/models"

	"gorm.io/gorm"
)

// DefaultNoteSaveDelay 连续输入停止后多久落库一次
const DefaultNoteSaveDelay = 500 * time.Millisecond

// InterfaceNoteSaver 定义防抖写入服务接口
type InterfaceNoteSaver interface {
	QueueWireDropNotes(wireDropID uint, notes string)
	QueueShadeNotes(shadeID uint, notes string)
	Flush()
}

// NoteSaver 自由文本的防抖写入器。快速连续的编辑只产生一次写库，
// 每次编辑重置计时窗口；Flush在退出或切页时无条件把挂起的写入落库。
type NoteSaver struct {
	DB    *gorm.DB
	delay time.Duration

	mu      sync.Mutex
	pending map[string]*pendingWrite
}

type pendingWrite struct {
	timer *time.Timer
	write func() error
}

// NewNoteSaver 创建一个新的防抖写入器
func NewNoteSaver(db *gorm.DB, delay time.Duration) *NoteSaver {
	if delay <= 0 {
		delay = DefaultNoteSaveDelay
	}
	return &NoteSaver{
		DB:      db,
		delay:   delay,
		pending: make(map[string]*pendingWrite),
	}
}

// QueueWireDropNotes 排队写入线缆备注
func (s *NoteSaver) QueueWireDropNotes(wireDropID uint, notes string) {
	key := fmt.Sprintf("wire_drop:%d", wireDropID)
	db := s.DB
	s.queue(key, func() error {
		return db.Model(&models.WireDrop{}).Where("id = ?", wireDropID).
			Update("notes", notes).Error
	})
}

// QueueShadeNotes 排队写入窗帘备注
func (s *NoteSaver) QueueShadeNotes(shadeID uint, notes string) {
	key := fmt.Sprintf("shade:%d", shadeID)
	db := s.DB
	s.queue(key, func() error {
		return db.Model(&models.ProjectShade{}).Where("id = ?", shadeID).
			Update("notes", notes).Error
	})
}

// queue 登记一次待写入。同一key的旧计时器被取消，窗口重新开始。
func (s *NoteSaver) queue(key string, write func() error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p, ok := s.pending[key]; ok {
		p.timer.Stop()
	}

	p := &pendingWrite{write: write}
	p.timer = time.AfterFunc(s.delay, func() {
		s.fire(key, p)
	})
	s.pending[key] = p
}

// fire 计时器到期后执行写入
func (s *NoteSaver) fire(key string, p *pendingWrite) {
	s.mu.Lock()
	// 到期前又有新的编辑进来，本次作废
	if current, ok := s.pending[key]; !ok || current != p {
		s.mu.Unlock()
		return
	}
	delete(s.pending, key)
	s.mu.Unlock()

	if err := p.write(); err != nil {
		config.Error("防抖写入失败 key=%s: %v", key, err)
	}
}

// Flush 立即执行全部挂起的写入，用于进程退出或离开页面
func (s *NoteSaver) Flush() {
	s.mu.Lock()
	writes := make([]*pendingWrite, 0, len(s.pending))
	for key, p := range s.pending {
		p.timer.Stop()
		writes = append(writes, p)
		delete(s.pending, key)
	}
	s.mu.Unlock()

	for _, p := range writes {
		if err := p.write(); err != nil {
			config.Error("防抖写入失败: %v", err)
		}
	}
}
