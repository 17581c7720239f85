package services

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"wiretrack-http-service/config"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// 主题常量
const (
	// TopicUploadPending 服务器发布的待上传任务
	TopicUploadPending = "wiretrack/uploads/pending"

	// TopicUploadComplete 现场端上传完成后发布的回执
	TopicUploadComplete = "wiretrack/uploads/complete"
)

// PhotoUploadTask 离线排队的照片上传任务
type PhotoUploadTask struct {
	WireDropID uint   `json:"wire_drop_id"`
	StageType  string `json:"stage_type"`
	PhotoKey   string `json:"photo_key"`
	QueuedBy   string `json:"queued_by"`
	Timestamp  int64  `json:"timestamp"`
}

// PhotoUploadReceipt 上传完成回执
type PhotoUploadReceipt struct {
	WireDropID uint   `json:"wire_drop_id"`
	StageType  string `json:"stage_type"`
	PhotoKey   string `json:"photo_key"`
	PhotoURL   string `json:"photo_url"`
	Timestamp  int64  `json:"timestamp"`
}

// UploadCompleteHandler 上传完成回执的处理函数
type UploadCompleteHandler func(receipt PhotoUploadReceipt)

// InterfaceUploadQueueService 定义离线上传队列服务接口（外部排队协作方）
type InterfaceUploadQueueService interface {
	Connect() error
	Disconnect()
	EnqueuePhotoUpload(task PhotoUploadTask) error
	OnUploadComplete(handler UploadCompleteHandler)
}

// UploadQueueService 基于MQTT的离线照片上传队列。
// 设备离线时照片不做同步上传，由现场端排队重试，服务器只记录pending状态。
type UploadQueueService struct {
	Config         *config.Config
	Client         mqtt.Client
	IsConnected    bool
	connectedMutex sync.RWMutex // 保护IsConnected字段的读写
	PublishMutex   sync.Mutex   // 用于保护MQTT消息发布

	completeHandler UploadCompleteHandler
	handlerMutex    sync.RWMutex
}

// NewUploadQueueService 创建一个新的离线上传队列服务
func NewUploadQueueService(cfg *config.Config) InterfaceUploadQueueService {
	return &UploadQueueService{
		Config: cfg,
	}
}

// Connect 连接MQTT服务器并订阅回执主题
func (s *UploadQueueService) Connect() error {
	opts := mqtt.NewClientOptions().
		AddBroker(s.Config.MQTTBrokerURL).
		SetClientID(s.Config.MQTTClientID).
		SetUsername(s.Config.MQTTUsername).
		SetPassword(s.Config.MQTTPassword).
		SetAutoReconnect(true).
		SetConnectTimeout(10 * time.Second)

	opts.OnConnect = func(client mqtt.Client) {
		config.Info("MQTT连接成功: %s", s.Config.MQTTBrokerURL)
		s.setConnected(true)

		// 重连后需要重新订阅
		if err := s.subscribeReceipts(); err != nil {
			config.Error("订阅上传回执主题失败: %v", err)
		}
	}

	opts.OnConnectionLost = func(client mqtt.Client, err error) {
		config.Warning("MQTT连接断开: %v", err)
		s.setConnected(false)
	}

	s.Client = mqtt.NewClient(opts)
	token := s.Client.Connect()
	if token.Wait() && token.Error() != nil {
		return fmt.Errorf("连接MQTT服务器失败: %v", token.Error())
	}

	return nil
}

// Disconnect 断开MQTT连接
func (s *UploadQueueService) Disconnect() {
	if s.Client != nil && s.Client.IsConnected() {
		s.Client.Disconnect(250)
	}
	s.setConnected(false)
}

// EnqueuePhotoUpload 发布待上传任务到队列
func (s *UploadQueueService) EnqueuePhotoUpload(task PhotoUploadTask) error {
	if task.Timestamp == 0 {
		task.Timestamp = time.Now().UnixMilli()
	}

	payload, err := json.Marshal(task)
	if err != nil {
		return err
	}

	s.PublishMutex.Lock()
	defer s.PublishMutex.Unlock()

	if s.Client == nil || !s.Client.IsConnected() {
		return fmt.Errorf("MQTT未连接，无法发布上传任务")
	}

	token := s.Client.Publish(TopicUploadPending, 1, false, payload)
	if token.Wait() && token.Error() != nil {
		return fmt.Errorf("发布上传任务失败: %v", token.Error())
	}

	config.Info("已发布照片上传任务: wire_drop=%d stage=%s", task.WireDropID, task.StageType)
	return nil
}

// OnUploadComplete 注册上传完成回执的处理函数
func (s *UploadQueueService) OnUploadComplete(handler UploadCompleteHandler) {
	s.handlerMutex.Lock()
	defer s.handlerMutex.Unlock()
	s.completeHandler = handler
}

// subscribeReceipts 订阅上传完成回执主题
func (s *UploadQueueService) subscribeReceipts() error {
	token := s.Client.Subscribe(TopicUploadComplete, 1, func(client mqtt.Client, msg mqtt.Message) {
		var receipt PhotoUploadReceipt
		if err := json.Unmarshal(msg.Payload(), &receipt); err != nil {
			config.Error("解析上传回执失败: %v", err)
			return
		}

		s.handlerMutex.RLock()
		handler := s.completeHandler
		s.handlerMutex.RUnlock()

		if handler != nil {
			handler(receipt)
		}
	})

	if token.Wait() && token.Error() != nil {
		return token.Error()
	}
	return nil
}

func (s *UploadQueueService) setConnected(v bool) {
	s.connectedMutex.Lock()
	defer s.connectedMutex.Unlock()
	s.IsConnected = v
}
