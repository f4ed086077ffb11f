package handler

import (
	"context"
	"encoding/json"
	"time"

	"github.com/medisync-dev/hospital-manager/backend/internal/domain"
	amqp "github.com/rabbitmq/amqp091-go"
)

// sendMailMessage 将邮件消息序列化后投递到消息队列，由 mail worker 消费发送。
func (h *Handler) sendMailMessage(mailMessage domain.MailMessage) error {
	mailData, err := json.Marshal(mailMessage)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()

	return h.mailChannel.PublishWithContext(
		ctx,
		"",
		"email_queue",
		true,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        mailData,
		},
	)
}
