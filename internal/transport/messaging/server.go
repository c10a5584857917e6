// Package messaging exposes the catalog over NATS request/reply. One subject
// per intent; every request is answered either with the result payload or the
// standardized failure shape.
package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/mkostin/catalog_service/internal/catalog/cqrs"
	"github.com/mkostin/catalog_service/pkg/config"
	"github.com/mkostin/catalog_service/pkg/telemetry"
	"github.com/nats-io/nats.go"
)

// Server subscribes to the intent subjects and bridges messages to the
// dispatcher. Each inbound request is handled on its own goroutine.
type Server struct {
	nc         *nats.Conn
	dispatcher *cqrs.Dispatcher
	validate   *validator.Validate
	metrics    *telemetry.Metrics
	cfg        config.MessagingConfig
	logger     *slog.Logger
	subs       []*nats.Subscription
}

// NewServer creates the transport server. Start must be called to subscribe.
func NewServer(nc *nats.Conn, dispatcher *cqrs.Dispatcher, metrics *telemetry.Metrics, cfg config.MessagingConfig, logger *slog.Logger) *Server {
	return &Server{
		nc:         nc,
		dispatcher: dispatcher,
		validate:   validator.New(),
		metrics:    metrics,
		cfg:        cfg,
		logger:     logger.With("component", "messaging"),
	}
}

// Start subscribes to all intent subjects under the configured prefix as one
// queue group, so replicas share the load.
func (s *Server) Start() error {
	for op, decode := range s.decoders() {
		subject := s.cfg.SubjectPrefix + "." + op
		sub, err := s.nc.QueueSubscribe(subject, s.cfg.Queue, s.msgHandler(subject, decode))
		if err != nil {
			return fmt.Errorf("failed to subscribe to %s: %w", subject, err)
		}
		s.subs = append(s.subs, sub)
		s.logger.Info("Subscribed", "subject", subject, "queue", s.cfg.Queue)
	}
	return s.nc.Flush()
}

// msgHandler spawns an independent handling task per message and sends the
// reply.
func (s *Server) msgHandler(subject string, decode decodeFunc) nats.MsgHandler {
	return func(msg *nats.Msg) {
		go func() {
			reply := s.process(subject, decode, msg.Data)
			if msg.Reply == "" {
				s.logger.Warn("Dropping reply for request without reply subject", "subject", subject)
				return
			}
			if err := msg.Respond(reply); err != nil {
				s.logger.Error("Failed to send reply", "subject", subject, "error", err)
			}
		}()
	}
}

// process decodes the payload, dispatches the intent and encodes the outcome.
// It always returns a reply payload; failures become the wire failure shape.
func (s *Server) process(subject string, decode decodeFunc, data []byte) []byte {
	s.metrics.RequestsInFlight.Inc()
	defer s.metrics.RequestsInFlight.Dec()

	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.RequestTimeout)
	defer cancel()

	intent, err := decode(data)
	if err != nil {
		return s.failure(subject, err)
	}

	s.logger.DebugContext(ctx, "Dispatching intent", "subject", subject, "intent", intent.IntentName())
	result, err := s.dispatcher.Execute(ctx, intent)
	if err != nil {
		return s.failure(subject, err)
	}

	payload, err := json.Marshal(result)
	if err != nil {
		s.logger.Error("Failed to encode reply", "subject", subject, "error", err)
		s.metrics.RequestsTotal.WithLabelValues(subject, "internal").Inc()
		return failurePayload(http.StatusInternalServerError, genericFailureMessage)
	}
	s.metrics.RequestsTotal.WithLabelValues(subject, "ok").Inc()
	return payload
}

// failure logs the error at a level matching its class and encodes the wire
// failure.
func (s *Server) failure(subject string, err error) []byte {
	status, message, outcome := classify(err)
	s.metrics.RequestsTotal.WithLabelValues(subject, outcome).Inc()

	switch outcome {
	case "validation", "not_found":
		s.logger.Warn("Request rejected", "subject", subject, "status", status, "error", err)
	default:
		// full detail stays in the logs; the wire carries a generic message
		s.logger.Error("Request failed", "subject", subject, "status", status, "error", err)
	}
	return failurePayload(status, message)
}

// Drain unsubscribes from all subjects and flushes pending replies. In-flight
// handlers finish on their own goroutines.
func (s *Server) Drain() error {
	for _, sub := range s.subs {
		if err := sub.Drain(); err != nil {
			return fmt.Errorf("failed to drain subscription %s: %w", sub.Subject, err)
		}
	}
	return s.nc.Flush()
}
