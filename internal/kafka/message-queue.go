package kafka

import (
	"github.com/Shopify/sarama"
)

// Publisher of kafka messages.
type Publisher struct {
	client   sarama.Client
	producer sarama.SyncProducer
}

// NewPublisher ...
func NewPublisher(
	addrs []string,
) (p *Publisher, err error) {
	p = &Publisher{}

	cfg := sarama.NewConfig()
	cfg.Producer.Return.Successes = true
	cfg.Producer.RequiredAcks = sarama.WaitForLocal
	if p.client, err = sarama.NewClient(addrs, cfg); err != nil {
		return
	}
	p.producer, err = sarama.NewSyncProducerFromClient(p.client)
	return
}

// NewPublish returns publish func.
func (p *Publisher) NewPublish(topic string) Publish {
	return NewPublish(p.producer, topic)
}

// Close producer and client.
func (p *Publisher) Close() error {
	if err := p.producer.Close(); err != nil {
		return err
	}
	return p.client.Close()
}

// NewPublish returns func sending messages to topic by producer.
func NewPublish(producer sarama.SyncProducer, topic string) Publish {
	return func(message []byte) (err error) {
		msg := &sarama.ProducerMessage{
			Topic: topic,
			Value: sarama.ByteEncoder(message),
		}
		_, _, err = producer.SendMessage(msg)
		return
	}
}
