package service

import (
	"context"
	"encoding/json"
	"log"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"bandoxanh-be/internal/pkg/mailer"
)

type WelcomeMailMessage struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
}

// IMailPublisher queues outbound mail so request handlers never block on SMTP.
type IMailPublisher interface {
	PublishWelcome(ctx context.Context, email, fullName string) error
}

type mailPublisher struct {
	pubSub    *gochannel.GoChannel
	topicName string
}

func NewMailPublisher(pubSub *gochannel.GoChannel, topicName string) IMailPublisher {
	return &mailPublisher{
		pubSub:    pubSub,
		topicName: topicName,
	}
}

func (p *mailPublisher) PublishWelcome(ctx context.Context, email, fullName string) error {
	payload, err := json.Marshal(WelcomeMailMessage{Email: email, FullName: fullName})
	if err != nil {
		return err
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	return p.pubSub.Publish(p.topicName, msg)
}

type IMailConsumerService interface {
	Consume(ctx context.Context) error
}

type mailConsumerService struct {
	pubSub       *gochannel.GoChannel
	topicName    string
	emailService mailer.IEmailService
}

func NewMailConsumerService(pubSub *gochannel.GoChannel, topicName string, emailService mailer.IEmailService) IMailConsumerService {
	return &mailConsumerService{
		pubSub:       pubSub,
		topicName:    topicName,
		emailService: emailService,
	}
}

func (cs *mailConsumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(msg)
		}
	}()

	return nil
}

func (cs *mailConsumerService) processMessage(msg *message.Message) {
	var payload WelcomeMailMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal mail message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	if err := cs.emailService.SendWelcome(payload.Email, payload.FullName); err != nil {
		log.Printf("[ERROR] Failed to send welcome mail to %s: %v", payload.Email, err)
		msg.Nack()
		return
	}

	msg.Ack()
}
