//go:build integration

package testutil

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

const (
	topicReadyTimeout = 5 * time.Second
	topicPollInterval = 200 * time.Millisecond
)

// UniqueTopicAndGroup: топик и consumer group с общим случайным суффиксом,
// чтобы тесты не делили оффсеты между собой.
func UniqueTopicAndGroup(base string) (topic, group string) {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	return base + "-" + suffix, base + "-group-" + suffix
}

// EnsureTopic создаёт топик с одной партицией через контроллер и ждёт его в метаданных.
// broker: "host:port", "PLAINTEXT://host:port" или список через запятую (берётся первый).
func EnsureTopic(ctx context.Context, broker, topic string) error {
	addr := bootstrapAddr(broker)

	if err := createTopic(ctx, addr, topic); err != nil {
		return err
	}
	return waitTopic(ctx, addr, topic)
}

func createTopic(ctx context.Context, addr, topic string) error {
	dialer := kafka.DefaultDialer

	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("dial %s: %w", addr, err)
	}
	defer conn.Close()

	controller, err := conn.Controller()
	if err != nil {
		return fmt.Errorf("find controller: %w", err)
	}

	admin, err := dialer.DialContext(ctx, "tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	if err != nil {
		return fmt.Errorf("dial controller: %w", err)
	}
	defer admin.Close()

	err = admin.CreateTopics(kafka.TopicConfig{Topic: topic, NumPartitions: 1, ReplicationFactor: 1})
	if err != nil && !errors.Is(err, kafka.TopicAlreadyExists) {
		return fmt.Errorf("create topic %q: %w", topic, err)
	}
	return nil
}

func waitTopic(ctx context.Context, addr, topic string) error {
	ctx, cancel := context.WithTimeout(ctx, topicReadyTimeout)
	defer cancel()

	ticker := time.NewTicker(topicPollInterval)
	defer ticker.Stop()

	var lastErr error
	for {
		if lastErr = hasPartitions(ctx, addr, topic); lastErr == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("topic %q not ready: %w", topic, errors.Join(ctx.Err(), lastErr))
		case <-ticker.C:
		}
	}
}

func hasPartitions(ctx context.Context, addr, topic string) error {
	conn, err := kafka.DialContext(ctx, "tcp", addr)
	if err != nil {
		return err
	}
	defer conn.Close()

	parts, err := conn.ReadPartitions(topic)
	if err != nil {
		return err
	}
	if len(parts) == 0 {
		return errors.New("no partitions yet")
	}
	return nil
}

func bootstrapAddr(raw string) string {
	first := strings.TrimSpace(strings.Split(raw, ",")[0])
	if u, err := url.Parse(first); err == nil && u.Scheme != "" && u.Host != "" {
		return u.Host
	}
	return first
}
