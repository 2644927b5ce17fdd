package kafkabackend

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/confluentinc/confluent-kafka-go/kafka"
)

// FlushTimeout is the timeout in milliseconds we give to our kafka producer
// to flush pending messages on Stop.
const FlushTimeout = 5000

// Backend delivers a job record by producing to a Kafka topic.
type Backend struct {
	producer *kafka.Producer
	eventsWg *sync.WaitGroup
}

// ID returns "kafka".
func (b *Backend) ID() string {
	return "kafka"
}

// Start starts the backend by creating a producer, given a set of options
// provided by the configuration. The options are passed through to
// librdkafka verbatim.
func (b *Backend) Start(ctx context.Context, options map[string]interface{}) error {
	var err error

	kafkaCfg := make(kafka.ConfigMap)
	for k, v := range options {
		err := kafkaCfg.SetKey(k, v)
		if err != nil {
			return err
		}
	}

	b.producer, err = kafka.NewProducer(&kafkaCfg)
	if err != nil {
		return err
	}

	b.eventsWg = new(sync.WaitGroup)

	// Drain the producer's Events channel so the delivery queue does not
	// fill up. Failed deliveries are only logged; there is no retry.
	b.eventsWg.Add(1)
	go func() {
		defer b.eventsWg.Done()
		b.drainEvents()
	}()

	return nil
}

// Notify produces a Kafka message to topic.
func (b *Backend) Notify(topic string, payload []byte) error {
	message := &kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &topic, Partition: kafka.PartitionAny},
		Value:          payload,
	}

	return b.producer.Produce(message, nil)
}

// Stop gracefully terminates b after flushing any outstanding messages to Kafka.
// An error is returned if (and only if) not all messages were flushed.
func (b *Backend) Stop() error {
	var err error

	unflushed := b.producer.Flush(FlushTimeout)
	if unflushed > 0 {
		err = fmt.Errorf("After %d ms there were still %d unflushed messages", FlushTimeout, unflushed)
	}

	b.producer.Close()
	b.eventsWg.Wait()

	return err
}

func (b *Backend) drainEvents() {
	for e := range b.producer.Events() {
		switch ev := e.(type) {
		case *kafka.Message:
			if ev.TopicPartition.Error != nil {
				log.Printf("[kafka] Delivery failed: %v", ev.TopicPartition.Error)
			}
		case kafka.Error:
			log.Printf("[kafka] Producer error: %v", ev)
		}
	}
}
