package service

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"time"

	"blog-cms-be/internal/repository/specification"
	"blog-cms-be/internal/repository/unitofwork"
	"blog-cms-be/pkg/document"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IIndexerService interface {
	Consume(ctx context.Context) error
}

// indexerService keeps the search columns (plaintext, word_count) in
// sync with post content. Re-extraction runs off the request path so a
// slow document never slows a save.
type indexerService struct {
	pubSub     *gochannel.GoChannel
	topicName  string
	uowFactory unitofwork.RepositoryFactory
}

func NewIndexerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
) IIndexerService {
	return &indexerService{
		pubSub:     pubSub,
		topicName:  topicName,
		uowFactory: uowFactory,
	}
}

func (is *indexerService) Consume(ctx context.Context) error {
	messages, err := is.pubSub.Subscribe(ctx, is.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			is.processMessage(ctx, msg)
		}
	}()

	return nil
}

type contentChangedEnvelope struct {
	Type string `json:"type"`
	Data struct {
		PostId uuid.UUID `json:"post_id"`
	} `json:"data"`
}

func (is *indexerService) processMessage(ctx context.Context, msg *message.Message) {
	var envelope contentChangedEnvelope
	if err := json.Unmarshal(msg.Payload, &envelope); err != nil {
		log.Printf("[ERROR] Failed to unmarshal index message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}
	if envelope.Data.PostId == uuid.Nil {
		log.Printf("[ERROR] Index message %q carries no post id", envelope.Type)
		msg.Ack()
		return
	}

	log.Printf("[INFO] Reindexing post %s", envelope.Data.PostId)

	uow := is.uowFactory.NewUnitOfWork(ctx)

	post, err := uow.PostRepository().FindOne(ctx, specification.ByID{ID: envelope.Data.PostId})
	if err != nil {
		log.Printf("[ERROR] Failed to load post %s: %v", envelope.Data.PostId, err)
		msg.Nack() // Nack for retriable errors
		return
	}
	if post == nil {
		log.Printf("[WARN] Post %s deleted before indexing", envelope.Data.PostId)
		msg.Ack()
		return
	}

	plaintext := ""
	wordCount := 0
	if strings.TrimSpace(post.Content) != "" {
		doc, err := document.Parse(post.Content)
		if err != nil {
			// Stored content should always parse; flag it and move on.
			log.Printf("[ERROR] Post %s content unparseable: %v", post.Id, err)
			msg.Ack()
			return
		}
		if text, ok := document.Plaintext(doc); ok {
			plaintext = text
			wordCount = document.WordCount(text)
		}
	}

	if post.Plaintext == plaintext && post.WordCount == wordCount {
		msg.Ack() // already in sync
		return
	}

	now := time.Now()
	post.Plaintext = plaintext
	post.WordCount = wordCount
	post.UpdatedAt = &now

	if err := uow.PostRepository().Update(ctx, post); err != nil {
		log.Printf("[ERROR] Failed to update search columns for post %s: %v", post.Id, err)
		msg.Nack()
		return
	}

	log.Printf("[SUCCESS] Post %s reindexed (%d words)", post.Id, wordCount)
	msg.Ack()
}
