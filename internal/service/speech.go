package service

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/windoze95/aiplayground-api/internal/ai"
	"github.com/windoze95/aiplayground-api/internal/content"
	"github.com/windoze95/aiplayground-api/internal/logger"
	"go.uber.org/zap"
)

// SpeechService converts markdown to spoken audio and audio back to text.
type SpeechService struct {
	SpeechProvider ai.SpeechProvider
}

// NewSpeechService creates a new SpeechService.
func NewSpeechService(speechProvider ai.SpeechProvider) *SpeechService {
	return &SpeechService{SpeechProvider: speechProvider}
}

// TextToSpeech strips markdown formatting and synthesizes the remaining text.
func (s *SpeechService) TextToSpeech(ctx context.Context, markdown string) ([]byte, error) {
	if s.SpeechProvider == nil {
		return nil, ErrProviderUnavailable
	}
	text := ai.MarkdownToText(markdown)
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyInput
	}
	return s.SpeechProvider.Synthesize(ctx, text)
}

// SpeechToText transcribes a WAV clip.
func (s *SpeechService) SpeechToText(ctx context.Context, wavAudio []byte) (string, error) {
	if s.SpeechProvider == nil {
		return "", ErrProviderUnavailable
	}
	if len(wavAudio) == 0 {
		return "", ErrEmptyInput
	}
	return s.SpeechProvider.Recognize(ctx, wavAudio)
}

// TextToSpeechFile reads markdown from mdPath and writes MP3 audio to mp3Path.
func (s *SpeechService) TextToSpeechFile(ctx context.Context, mdPath, mp3Path string) error {
	markdown, err := content.ReadFileContent(mdPath)
	if err != nil {
		return err
	}

	audio, err := s.TextToSpeech(ctx, markdown)
	if err != nil {
		return err
	}

	if err := os.WriteFile(mp3Path, audio, 0o644); err != nil {
		return fmt.Errorf("write audio file %s: %w", mp3Path, err)
	}
	logger.Get().Info("audio file written", zap.String("path", mp3Path), zap.Int("bytes", len(audio)))
	return nil
}

// SpeechToTextFile transcribes the WAV file at wavPath into txtPath.
func (s *SpeechService) SpeechToTextFile(ctx context.Context, wavPath, txtPath string) error {
	audio, err := os.ReadFile(wavPath)
	if err != nil {
		return fmt.Errorf("read audio file %s: %w", wavPath, err)
	}

	text, err := s.SpeechToText(ctx, audio)
	if err != nil {
		return err
	}

	if err := os.WriteFile(txtPath, []byte(text), 0o644); err != nil {
		return fmt.Errorf("write transcript %s: %w", txtPath, err)
	}
	logger.Get().Info("transcript written", zap.String("path", txtPath), zap.Int("length", len(text)))
	return nil
}
