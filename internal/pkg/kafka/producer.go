package kafka

import (
	"Skylark/internal/api/config"
	"Skylark/internal/service"
	log "log/slog"
	"strconv"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
)

// NotificationProducer 把通知事件异步投递到 Kafka
// 投递失败只记录日志，关注动作的主流程不受影响
type NotificationProducer struct {
	producer sarama.AsyncProducer
	topic    string
}

func NewNotificationProducer(cfg *config.Config) (*NotificationProducer, error) {
	saramaCfg := newSaramaConfig(cfg.Kafka)

	producer, err := sarama.NewAsyncProducer(cfg.Kafka.Brokers, saramaCfg)
	if err != nil {
		return nil, err
	}

	p := &NotificationProducer{
		producer: producer,
		topic:    cfg.KafkaNotification.Topic,
	}
	go p.drainErrors()
	return p, nil
}

func (p *NotificationProducer) Notify(event *service.NotificationEvent) {
	if event == nil {
		return
	}
	payload, err := json.Marshal(event)
	if err != nil {
		log.Error("marshal notification event failed", "err", err)
		return
	}

	p.producer.Input() <- &sarama.ProducerMessage{
		Topic: p.topic,
		// 按接收者分区，同一用户的通知保持顺序
		Key:   sarama.StringEncoder(strconv.FormatUint(event.ReceiverID, 10)),
		Value: sarama.ByteEncoder(payload),
	}
}

func (p *NotificationProducer) drainErrors() {
	for err := range p.producer.Errors() {
		log.Error("deliver notification event failed", "err", err)
	}
}

func (p *NotificationProducer) Close() error {
	return p.producer.Close()
}
