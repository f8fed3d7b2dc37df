package kafka

import (
	"Community/internal/service"
	"context"
	"errors"
	"fmt"
	log "log/slog"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
)

// StatusEvent 帖子计数变更事件，counter 取值 view / like / comment
type StatusEvent struct {
	PostID  uint64 `json:"post_id"`
	Counter string `json:"counter"`
	Delta   int64  `json:"delta"`
}

type PostStatusHandler struct {
	statusSvc service.PostStatusService
}

func NewPostStatusHandler(statusSvc service.PostStatusService) *PostStatusHandler {
	return &PostStatusHandler{statusSvc: statusSvc}
}

func (s *PostStatusHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("post status consumer setup")
	return nil
}

func (s *PostStatusHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("post status consumer cleanup")
	return nil
}

func (s *PostStatusHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	log.Info("post status consume claim", "topic", claim.Topic(), "partition", claim.Partition())
	err := pullMessageBatch(session, claim, s.logic)
	if err != nil {
		log.Error("post status process batch error", "err", err)
		return err
	}
	return nil
}

func (s *PostStatusHandler) logic(ctx context.Context, msg *sarama.ConsumerMessage) error {
	var event StatusEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		return fmt.Errorf("%w: %v", ErrDropMessage, err)
	}

	err := s.statusSvc.ApplyCounterDelta(ctx, event.PostID, event.Counter, event.Delta)
	if errors.Is(err, service.ErrParamInvalid) {
		return fmt.Errorf("%w: unknown counter %q", ErrDropMessage, event.Counter)
	}
	return err
}
