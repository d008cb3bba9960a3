package services

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"time"

	"github.com/ketvision/telegram-bot/pkg/domain"
	"github.com/ketvision/telegram-bot/pkg/logger"
	"github.com/ketvision/telegram-bot/pkg/metrics"
)

const descriptionPrompt = "Describe this image."

type FileDownloader interface {
	DownloadFile(ctx context.Context, fileID string) ([]byte, error)
}

type ImageStore interface {
	Save(data []byte) (string, error)
	Remove(path string) error
}

type ImageResizer interface {
	Resize(path string) (image.Image, error)
}

type VisionModel interface {
	Model() string
	Encode(img image.Image) (string, error)
	Answer(representation, prompt string) (string, error)
}

type InferencePool interface {
	Submit(ctx context.Context, run func() (string, error)) (string, error)
}

type ModeReader interface {
	Enabled(chatID int64) bool
}

type DescriptionSaver interface {
	Save(ctx context.Context, d domain.Description) error
}

// visionService drives one photo through download, resize, inference and
// reply. It holds no per-run state; everything a run needs lives on its
// stack, and the materialized file is removed on every exit path.
type visionService struct {
	downloader       FileDownloader
	store            ImageStore
	resizer          ImageResizer
	model            VisionModel
	pool             InferencePool
	modes            ModeReader
	descriptions     DescriptionSaver
	inferenceTimeout time.Duration
	responseCh       chan<- domain.Response
}

func NewVisionService(
	downloader FileDownloader,
	store ImageStore,
	resizer ImageResizer,
	model VisionModel,
	pool InferencePool,
	modes ModeReader,
	descriptions DescriptionSaver,
	inferenceTimeout time.Duration,
	responseCh chan<- domain.Response,
) *visionService {
	return &visionService{
		downloader:       downloader,
		store:            store,
		resizer:          resizer,
		model:            model,
		pool:             pool,
		modes:            modes,
		descriptions:     descriptions,
		inferenceTimeout: inferenceTimeout,
		responseCh:       responseCh,
	}
}

// DescribePhoto runs the pipeline for one photo. Automatic runs are dropped
// silently when the chat's AutoVision gate is off; explicit /vision runs
// bypass the gate. A failed run produces exactly one error reply.
func (s *visionService) DescribePhoto(ctx context.Context, chatID int64, messageID int, fileID string, automatic bool) {
	if automatic && !s.modes.Enabled(chatID) {
		slog.DebugContext(ctx, "AutoVision disabled, skipping photo", "chatID", chatID)
		metrics.PipelineRuns.WithLabelValues("skipped").Inc()
		return
	}

	slog.InfoContext(ctx, "Starting description run", "chatID", chatID, "fileID", fileID, "automatic", automatic)

	if err := s.describe(ctx, chatID, messageID, fileID); err != nil {
		metrics.PipelineRuns.WithLabelValues(resultLabel(err)).Inc()
		s.responseCh <- domain.Response{ChatID: chatID, ReplyToMessageID: messageID, Err: err}
		return
	}

	metrics.PipelineRuns.WithLabelValues("success").Inc()
}

func (s *visionService) describe(ctx context.Context, chatID int64, messageID int, fileID string) error {
	data, err := s.downloader.DownloadFile(ctx, fileID)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrImageDownload, err)
	}
	if len(data) == 0 {
		return fmt.Errorf("%w: empty download for file ID %q", domain.ErrImageDownload, fileID)
	}

	path, err := s.store.Save(data)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrImageDownload, err)
	}
	defer func() {
		if removeErr := s.store.Remove(path); removeErr != nil {
			slog.ErrorContext(ctx, "cleaning up image file", "path", path, logger.Err(removeErr))
		}
	}()

	s.responseCh <- domain.Response{ChatID: chatID, ReplyToMessageID: messageID, Text: "Processing image..."}

	img, err := s.resizer.Resize(path)
	if err != nil {
		if errors.Is(err, domain.ErrImageDecode) {
			return err
		}
		return fmt.Errorf("%w: %v", domain.ErrImageDecode, err)
	}

	inferCtx, cancel := context.WithTimeout(ctx, s.inferenceTimeout)
	defer cancel()

	started := time.Now()
	answer, err := s.pool.Submit(inferCtx, func() (string, error) {
		representation, encodeErr := s.model.Encode(img)
		if encodeErr != nil {
			return "", fmt.Errorf("encoding image: %w", encodeErr)
		}
		return s.model.Answer(representation, descriptionPrompt)
	})
	metrics.InferenceDuration.Observe(time.Since(started).Seconds())
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInference, err)
	}

	slog.InfoContext(ctx, "Image described", "chatID", chatID, "chars", len(answer))

	// History is best-effort; a storage hiccup must not fail the run.
	if saveErr := s.descriptions.Save(ctx, domain.Description{
		ChatID: chatID,
		FileID: fileID,
		Model:  s.model.Model(),
		Text:   answer,
	}); saveErr != nil {
		slog.ErrorContext(ctx, "saving description", logger.Err(saveErr))
	}

	for _, chunk := range domain.SplitText(answer, domain.TelegramMaxMessageLength) {
		s.responseCh <- domain.Response{ChatID: chatID, ReplyToMessageID: messageID, Text: chunk}
	}

	return nil
}

func resultLabel(err error) string {
	switch {
	case errors.Is(err, domain.ErrImageDownload):
		return "download_error"
	case errors.Is(err, domain.ErrImageDecode):
		return "decode_error"
	case errors.Is(err, domain.ErrInference):
		return "inference_error"
	default:
		return "error"
	}
}
