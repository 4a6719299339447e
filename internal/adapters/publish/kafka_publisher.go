package publish

import (
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"github.com/google/uuid"

	"github.com/G0rocks/aishub-data-collector/internal/domain"
	"github.com/G0rocks/aishub-data-collector/internal/ports"
)

// Config holds the Kafka mirror settings. The mirror is enabled when Brokers
// is non-empty.
type Config struct {
	Brokers string `yaml:"brokers"`
	Topic   string `yaml:"topic"`
}

// KafkaPublisher mirrors each decoded observation to a Kafka topic as JSON.
// Messages are keyed by series identity so per-vessel ordering is preserved
// across partitions.
type KafkaPublisher struct {
	producer     *kafka.Producer
	topic        string
	deliveryChan chan kafka.Event

	acked  atomic.Int64
	failed atomic.Int64

	wg   sync.WaitGroup
	done chan struct{}

	flushTimeout time.Duration
}

func NewKafkaPublisher(cfg Config) (*KafkaPublisher, error) {
	p, err := kafka.NewProducer(&kafka.ConfigMap{
		"bootstrap.servers":  cfg.Brokers,
		"compression.type":   "snappy",
		"acks":               "all",
		"enable.idempotence": true,
		"request.timeout.ms": 30000,
	})
	if err != nil {
		return nil, fmt.Errorf("create kafka producer: %w", err)
	}

	kp := &KafkaPublisher{
		producer:     p,
		topic:        cfg.Topic,
		deliveryChan: make(chan kafka.Event, 1000),
		done:         make(chan struct{}),
		flushTimeout: 30 * time.Second,
	}
	kp.wg.Add(1)
	go kp.handleDeliveryReports()
	return kp, nil
}

func (kp *KafkaPublisher) Name() string { return "kafka" }

func (kp *KafkaPublisher) handleDeliveryReports() {
	defer kp.wg.Done()
	for {
		select {
		case <-kp.done:
			return
		case e := <-kp.deliveryChan:
			m, ok := e.(*kafka.Message)
			if !ok {
				continue
			}
			if m.TopicPartition.Error != nil {
				kp.failed.Add(1)
				log.Printf("ERROR: kafka delivery failed: %v", m.TopicPartition.Error)
			} else {
				kp.acked.Add(1)
			}
		}
	}
}

// WriteBatch queues the batch and waits for delivery. One poll cycle's worth
// of observations is small, so a synchronous flush per batch keeps the
// mirror's lag bounded to a single cycle.
func (kp *KafkaPublisher) WriteBatch(records []*domain.VesselRecord) error {
	for _, rec := range records {
		msg, err := buildMessage(kp.topic, rec)
		if err != nil {
			return fmt.Errorf("serialize observation: %w", err)
		}
		if err := kp.producer.Produce(msg, kp.deliveryChan); err != nil {
			return fmt.Errorf("produce observation: %w", err)
		}
	}

	if remaining := kp.producer.Flush(int(kp.flushTimeout.Milliseconds())); remaining > 0 {
		return fmt.Errorf("%d observations still pending after flush", remaining)
	}
	return nil
}

// Close flushes outstanding messages and shuts the producer down.
func (kp *KafkaPublisher) Close() {
	kp.producer.Flush(int(kp.flushTimeout.Milliseconds()))
	close(kp.done)
	kp.wg.Wait()
	kp.producer.Close()
	log.Printf("INFO: kafka publisher closed: acked=%d failed=%d", kp.acked.Load(), kp.failed.Load())
}

func buildMessage(topic string, rec *domain.VesselRecord) (*kafka.Message, error) {
	payload, err := json.Marshal(rec)
	if err != nil {
		return nil, err
	}

	return &kafka.Message{
		TopicPartition: kafka.TopicPartition{
			Topic:     &topic,
			Partition: kafka.PartitionAny,
		},
		Key:   []byte(seriesKey(rec)),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "report_id", Value: []byte(uuid.New().String())},
			{Key: "name", Value: []byte(rec.Name)},
			{Key: "imo", Value: []byte(strconv.FormatUint(rec.IMO, 10))},
			{Key: "mmsi", Value: []byte(strconv.FormatUint(rec.MMSI, 10))},
		},
	}, nil
}

func seriesKey(rec *domain.VesselRecord) string {
	if rec.IMO != 0 {
		return "imo:" + strconv.FormatUint(rec.IMO, 10)
	}
	if rec.MMSI != 0 {
		return "mmsi:" + strconv.FormatUint(rec.MMSI, 10)
	}
	return "unidentified"
}

var _ ports.Sink = (*KafkaPublisher)(nil)
