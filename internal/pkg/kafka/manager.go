package kafka

import (
	"Community/internal/api/config"
	"Community/internal/service"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
)

// ConsumerManager 管理所有 Kafka 消费者
type ConsumerManager struct {
	statusConsumer sarama.ConsumerGroup
	statusHandler  sarama.ConsumerGroupHandler
	statusTopic    string
}

// NewConsumerManager 构造函数
func NewConsumerManager(cfg *config.Config, statusSvc service.PostStatusService) (*ConsumerManager, error) {
	saramaCfg := newSaramaConfig(cfg.Kafka)

	statusConsumer, err := sarama.NewConsumerGroup(cfg.Kafka.Brokers, cfg.KafkaStatusConsumer.GroupID, saramaCfg)
	if err != nil {
		return nil, err
	}

	return &ConsumerManager{
		statusConsumer: statusConsumer,
		statusHandler:  NewPostStatusHandler(statusSvc),
		statusTopic:    cfg.KafkaStatusConsumer.Topic,
	}, nil
}

// Start 启动所有消费者，阻塞直到 ctx 结束
func (m *ConsumerManager) Start(ctx context.Context) error {
	go func() {
		for err := range m.statusConsumer.Errors() {
			log.Error("Error from post status consumer group", "err", err)
		}
	}()

	go func() {
		log.Info("Post status consumer started", "topic", m.statusTopic)
		for {
			if err := m.statusConsumer.Consume(ctx, []string{m.statusTopic}, m.statusHandler); err != nil {
				log.Error("Error from consumer", "err", err)
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()

	<-ctx.Done()
	log.Info("Kafka Manager shutting down...")

	if err := m.statusConsumer.Close(); err != nil {
		log.Error("Failed to close post status consumer", "err", err)
	}

	return nil
}
