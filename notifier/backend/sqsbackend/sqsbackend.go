package sqsbackend

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/sqs"
)

// Backend delivers a job record by sending a message to an SQS queue.
type Backend struct {
	svc *sqs.SQS
}

// ID returns "sqs".
func (b *Backend) ID() string {
	return "sqs"
}

// Start starts the backend by creating an SQS client, given a set of
// options provided by the configuration.
func (b *Backend) Start(ctx context.Context, options map[string]interface{}) error {
	region, ok := options["region"].(string)
	if !ok {
		return errors.New("region must be a string")
	}

	// Create a session that gets credential values from ~/.aws/credentials
	// and the default region from ~/.aws/config
	sqsSession, err := session.NewSession(&aws.Config{
		Region: aws.String(region),
	})
	if err != nil {
		return err
	}

	b.svc = sqs.New(sqsSession)

	return nil
}

// Notify produces an SQS message to the queue at url.
func (b *Backend) Notify(url string, payload []byte) error {
	_, err := b.svc.SendMessage(&sqs.SendMessageInput{
		MessageBody: aws.String(string(payload)),
		QueueUrl:    aws.String(url),
	})
	if err != nil {
		return fmt.Errorf("Got an error sending the message: %s", err.Error())
	}

	return nil
}

// Stop shuts down the backend
func (b *Backend) Stop() error {
	return nil
}
