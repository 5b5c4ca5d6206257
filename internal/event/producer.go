package event

import (
	"encoding/json"
	"log"
	"time"

	"github.com/IBM/sarama"
)

const (
	TypeGameOver            = "GAME_OVER"
	TypeSimulationCompleted = "SIMULATION_COMPLETED"
)

type Producer struct {
	producer sarama.SyncProducer
	topic    string
}

type GameAnalyticsEvent struct {
	Event      string    `json:"event"`
	GameID     string    `json:"gameId"`
	Winner     string    `json:"winner"`
	Reason     string    `json:"reason"`
	Difficulty int       `json:"difficulty"`
	Moves      int       `json:"moves"`
	Duration   float64   `json:"duration_seconds"`
	At         time.Time `json:"at"`
}

type SimulationEvent struct {
	Event    string    `json:"event"`
	ReportID string    `json:"reportId"`
	Matches  int       `json:"matches"`
	Duration float64   `json:"duration_seconds"`
	At       time.Time `json:"at"`
}

func NewProducer(brokers []string, topic string) (*Producer, error) {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 5

	p, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, err
	}

	return NewProducerWith(p, topic), nil
}

// NewProducerWith wraps an existing sync producer.
func NewProducerWith(p sarama.SyncProducer, topic string) *Producer {
	return &Producer{producer: p, topic: topic}
}

func (p *Producer) EmitGameOver(gameID, winner, reason string, difficulty, moves int, duration float64) {
	p.send(gameID, GameAnalyticsEvent{
		Event:      TypeGameOver,
		GameID:     gameID,
		Winner:     winner,
		Reason:     reason,
		Difficulty: difficulty,
		Moves:      moves,
		Duration:   duration,
		At:         time.Now().UTC(),
	})
}

func (p *Producer) EmitSimulationCompleted(reportID string, matches int, duration float64) {
	p.send(reportID, SimulationEvent{
		Event:    TypeSimulationCompleted,
		ReportID: reportID,
		Matches:  matches,
		Duration: duration,
		At:       time.Now().UTC(),
	})
}

func (p *Producer) send(key string, event any) {
	val, err := json.Marshal(event)
	if err != nil {
		log.Printf("[KAFKA] Failed to encode event %s: %v", key, err)
		return
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(key),
		Value: sarama.ByteEncoder(val),
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		log.Printf("[KAFKA] Failed to send event %s: %v", key, err)
		return
	}
	log.Printf("[KAFKA] Event %s sent to partition %d at offset %d", key, partition, offset)
}

func (p *Producer) Close() error {
	return p.producer.Close()
}
