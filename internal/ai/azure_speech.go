package ai

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/windoze95/aiplayground-api/internal/logger"
	"github.com/windoze95/aiplayground-api/internal/metrics"
	"github.com/windoze95/aiplayground-api/internal/retry"
	"github.com/windoze95/aiplayground-api/internal/util"
	"go.uber.org/zap"
)

const (
	// speechOutputFormat matches Audio24Khz160KBitRateMonoMp3.
	speechOutputFormat = "audio-24khz-160kbitrate-mono-mp3"
	speechUserAgent    = "aiplayground-api"
	maxSpeechAudio     = 50 * 1024 * 1024
)

// AzureSpeechConfig holds the Azure Speech resource settings.
type AzureSpeechConfig struct {
	Key      string
	Region   string
	Voice    string
	Language string
}

// AzureSpeechProvider implements SpeechProvider with the Azure Speech
// REST endpoints for neural text-to-speech and short-audio recognition.
type AzureSpeechProvider struct {
	cfg        AzureSpeechConfig
	TTSURL     string
	STTURL     string
	httpClient *http.Client
	Retrier    *retry.Retrier
	Observer   UpstreamObserver
}

// NewAzureSpeechProvider creates a speech provider for the region in cfg.
func NewAzureSpeechProvider(cfg AzureSpeechConfig, m *metrics.Metrics) *AzureSpeechProvider {
	if cfg.Voice == "" {
		cfg.Voice = "en-US-JennyNeural"
	}
	if cfg.Language == "" {
		cfg.Language = "en-US"
	}
	return &AzureSpeechProvider{
		cfg:    cfg,
		TTSURL: fmt.Sprintf("https://%s.tts.speech.microsoft.com/cognitiveservices/v1", cfg.Region),
		STTURL: fmt.Sprintf("https://%s.stt.speech.microsoft.com/speech/recognition/conversation/cognitiveservices/v1", cfg.Region),
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		Retrier:  retry.New("azure_speech", retry.DefaultPolicy(), retry.WithObserver(m)),
		Observer: m,
	}
}

// recognitionResponse is the "simple" response format of the recognizer.
type recognitionResponse struct {
	RecognitionStatus string `json:"RecognitionStatus"`
	DisplayText       string `json:"DisplayText"`
	Offset            int64  `json:"Offset"`
	Duration          int64  `json:"Duration"`
}

// Synthesize renders text to MP3 audio with the configured voice.
func (p *AzureSpeechProvider) Synthesize(ctx context.Context, text string) ([]byte, error) {
	if text == "" {
		return nil, errors.New("speech synthesis: text is empty")
	}
	ssml, err := buildSSML(p.cfg.Language, p.cfg.Voice, text)
	if err != nil {
		return nil, err
	}

	audio, err := retry.Do(ctx, p.Retrier, func(ctx context.Context) ([]byte, error) {
		start := time.Now()
		audio, err := p.post(ctx, p.TTSURL, "application/ssml+xml", ssml, map[string]string{
			"X-Microsoft-OutputFormat": speechOutputFormat,
		})
		observe(p.Observer, "azure_speech_tts", start, err)
		return audio, err
	})
	if err != nil {
		return nil, fmt.Errorf("speech synthesis failed: %w", err)
	}
	if len(audio) == 0 {
		return nil, errors.New("speech synthesis returned no audio")
	}

	logger.Get().Info("speech synthesized", zap.Int("text_length", len(text)), zap.Int("audio_bytes", len(audio)))
	return audio, nil
}

// Recognize transcribes a 16kHz mono PCM WAV clip.
func (p *AzureSpeechProvider) Recognize(ctx context.Context, wavAudio []byte) (string, error) {
	if len(wavAudio) == 0 {
		return "", errors.New("speech recognition: audio is empty")
	}

	endpoint, err := url.Parse(p.STTURL)
	if err != nil {
		return "", fmt.Errorf("speech recognition: bad endpoint: %w", err)
	}
	q := endpoint.Query()
	q.Set("language", p.cfg.Language)
	q.Set("format", "simple")
	endpoint.RawQuery = q.Encode()

	body, err := retry.Do(ctx, p.Retrier, func(ctx context.Context) ([]byte, error) {
		start := time.Now()
		body, err := p.post(ctx, endpoint.String(), "audio/wav; codecs=audio/pcm; samplerate=16000", wavAudio, map[string]string{
			"Accept": "application/json",
		})
		observe(p.Observer, "azure_speech_stt", start, err)
		return body, err
	})
	if err != nil {
		return "", fmt.Errorf("speech recognition failed: %w", err)
	}

	var result recognitionResponse
	if err := util.DeserializeFromJSONBytes(body, &result); err != nil {
		return "", fmt.Errorf("speech recognition: parse response: %w", err)
	}
	if result.RecognitionStatus != "Success" {
		return "", fmt.Errorf("speech recognition failed: status %s", result.RecognitionStatus)
	}

	logger.Get().Info("speech recognized", zap.Int("text_length", len(result.DisplayText)))
	return result.DisplayText, nil
}

func (p *AzureSpeechProvider) post(ctx context.Context, endpoint, contentType string, payload []byte, headers map[string]string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Ocp-Apim-Subscription-Key", p.cfg.Key)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("User-Agent", speechUserAgent)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxSpeechAudio))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newAPIError("azure_speech", resp, body)
	}
	return body, nil
}

// buildSSML wraps text in a single-voice SSML document.
func buildSSML(lang, voice, text string) ([]byte, error) {
	var escaped bytes.Buffer
	if err := xml.EscapeText(&escaped, []byte(text)); err != nil {
		return nil, fmt.Errorf("escape SSML text: %w", err)
	}
	doc := fmt.Sprintf(
		`<speak version="1.0" xmlns="http://www.w3.org/2001/10/synthesis" xml:lang="%s"><voice name="%s">%s</voice></speak>`,
		lang, voice, escaped.String(),
	)
	return []byte(doc), nil
}
