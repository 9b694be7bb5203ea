package kafka

// Publish message to mq.
type Publish func(message []byte) error
