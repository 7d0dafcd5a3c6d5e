package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"ai-studymate-be/internal/dto"
	"ai-studymate-be/internal/entity"
	"ai-studymate-be/internal/pkg/logger"
	"ai-studymate-be/internal/pkg/pdftext"
	"ai-studymate-be/internal/pkg/webtext"
	"ai-studymate-be/internal/repository/specification"
	"ai-studymate-be/internal/repository/unitofwork"
	"ai-studymate-be/pkg/chunker"
	"ai-studymate-be/pkg/embedding"
	"ai-studymate-be/pkg/rag/index"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService runs the document ingest pipeline off the request path:
// extract text, chunk it, embed the chunks, publish the index, flip the
// document status and notify the owner.
type consumerService struct {
	pubSub            *gochannel.GoChannel
	topicName         string
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.Provider
	indexStore        index.Store
	chunker           *chunker.Chunker
	fetcher           *webtext.Fetcher
	logger            logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.Provider,
	indexStore index.Store,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:            pubSub,
		topicName:         topicName,
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
		indexStore:        indexStore,
		chunker:           chunker.New(),
		fetcher:           webtext.NewFetcher(),
		logger:            log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishIngestDocumentMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("ingest", "malformed ingest message", map[string]interface{}{
			"error": err.Error(),
		})
		// Ack invalid messages to prevent infinite retry.
		msg.Ack()
		return
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	doc, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: payload.DocumentId})
	if err != nil {
		cs.logger.Error("ingest", "failed to load document", map[string]interface{}{
			"document_id": payload.DocumentId,
			"error":       err.Error(),
		})
		msg.Nack()
		return
	}
	if doc == nil {
		// Deleted between enqueue and processing.
		msg.Ack()
		return
	}

	if err := cs.ingest(ctx, uow, doc); err != nil {
		cs.logger.Error("ingest", "document ingest failed", map[string]interface{}{
			"document_id": doc.Id,
			"error":       err.Error(),
		})
		_ = uow.DocumentRepository().UpdateStatus(ctx, doc.Id, entity.DocumentStatusFailed, err.Error())
		cs.notify(ctx, uow, doc, entity.NotificationDocumentFailed,
			"Document processing failed",
			fmt.Sprintf("%q could not be processed: %v", doc.DisplayName, err))
		msg.Ack()
		return
	}

	cs.notify(ctx, uow, doc, entity.NotificationDocumentReady,
		"Document ready",
		fmt.Sprintf("%q is ready for questions.", doc.DisplayName))
	msg.Ack()
}

func (cs *consumerService) ingest(ctx context.Context, uow unitofwork.UnitOfWork, doc *entity.Document) error {
	if err := uow.DocumentRepository().UpdateStatus(ctx, doc.Id, entity.DocumentStatusProcessing, ""); err != nil {
		return err
	}

	chunks, err := cs.extract(ctx, uow, doc)
	if err != nil {
		return err
	}
	if len(chunks) == 0 {
		return fmt.Errorf("document %s produced no text", doc.Id)
	}

	if _, err := cs.indexStore.Build(ctx, doc.Id, chunks, cs.embeddingProvider); err != nil {
		return err
	}

	return uow.DocumentRepository().UpdateStatus(ctx, doc.Id, entity.DocumentStatusReady, "")
}

// extract pulls the raw text for the document's source type, persists it on
// the row and returns the chunks. PDF pages keep their numbering; url and
// transcript sources are unpaginated.
func (cs *consumerService) extract(ctx context.Context, uow unitofwork.UnitOfWork, doc *entity.Document) ([]chunker.Chunk, error) {
	switch doc.SourceType {
	case entity.DocumentSourcePDF:
		pages, err := pdftext.ExtractPages(doc.SourceRef)
		if err != nil {
			return nil, err
		}
		doc.RawText = pdftext.JoinPages(pages)
		doc.PageCount = len(pages)
		if err := uow.DocumentRepository().Update(ctx, doc); err != nil {
			return nil, err
		}
		return cs.chunker.SplitPages(pages), nil

	case entity.DocumentSourceURL:
		html, err := cs.fetcher.Fetch(ctx, doc.SourceRef)
		if err != nil {
			return nil, err
		}
		doc.RawText = webtext.StripHTML(html)
		if err := uow.DocumentRepository().Update(ctx, doc); err != nil {
			return nil, err
		}
		return cs.chunker.Split(doc.RawText), nil

	case entity.DocumentSourceTranscript:
		if strings.Contains(doc.RawText, chunker.PageBreak) {
			return cs.chunker.SplitPaginated(doc.RawText), nil
		}
		return cs.chunker.Split(doc.RawText), nil

	default:
		return nil, fmt.Errorf("unknown source type %q", doc.SourceType)
	}
}

func (cs *consumerService) notify(ctx context.Context, uow unitofwork.UnitOfWork, doc *entity.Document, kind entity.NotificationType, title, body string) {
	notification := entity.NewNotification(doc.UserId, kind, title, body)
	if err := uow.NotificationRepository().Create(ctx, notification); err != nil {
		cs.logger.Warn("ingest", "failed to create notification", map[string]interface{}{
			"document_id": doc.Id,
			"error":       err.Error(),
		})
	}
}
