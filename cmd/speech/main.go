// Command speech converts a markdown file to MP3 audio or transcribes a WAV
// file with Azure Speech.
//
//	speech tts <markdownPath> <outputMp3Path>
//	speech stt <inputAudioPath> <outputTextPath>
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/windoze95/aiplayground-api/internal/ai"
	"github.com/windoze95/aiplayground-api/internal/config"
	"github.com/windoze95/aiplayground-api/internal/logger"
	"github.com/windoze95/aiplayground-api/internal/service"
	"go.uber.org/zap"
)

func usage() {
	fmt.Println("Usage:")
	fmt.Println("  speech tts <markdownPath> <outputMp3Path>")
	fmt.Println("  speech stt <inputAudioPath> <outputTextPath>")
}

// argOr returns args[i], or def when it is missing.
func argOr(args []string, i int, def string) string {
	if i < len(args) && args[i] != "" {
		return args[i]
	}
	return def
}

func main() {
	logger.Init(os.Getenv("GIN_MODE") != "release")
	defer logger.Sync()
	log := logger.Get()

	args := os.Args[1:]
	if len(args) == 0 {
		usage()
		return
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("failed to load config", zap.Error(err))
	}
	if !cfg.SpeechConfigured() {
		log.Fatal("AZURE_SPEECH_KEY and AZURE_SPEECH_REGION must be set")
	}

	svc := service.NewSpeechService(ai.NewAzureSpeechProvider(ai.AzureSpeechConfig{
		Key:      cfg.EnvVars.AzureSpeechKey,
		Region:   cfg.EnvVars.AzureSpeechRegion,
		Voice:    cfg.EnvVars.AzureSpeechVoice,
		Language: cfg.EnvVars.AzureSpeechLanguage,
	}, nil))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch args[0] {
	case "tts":
		mdPath := argOr(args, 1, "example.md")
		mp3Path := argOr(args, 2, "output.mp3")
		if err := svc.TextToSpeechFile(ctx, mdPath, mp3Path); err != nil {
			log.Fatal("text to speech failed", zap.Error(err))
		}
		fmt.Println("MP3 file created at:", mp3Path)
	case "stt":
		wavPath := argOr(args, 1, "input.wav")
		txtPath := argOr(args, 2, "output.txt")
		if err := svc.SpeechToTextFile(ctx, wavPath, txtPath); err != nil {
			log.Fatal("speech to text failed", zap.Error(err))
		}
		fmt.Println("Text file created at:", txtPath)
	default:
		fmt.Println("Unknown mode. Use 'tts' for text-to-speech or 'stt' for speech-to-text.")
		os.Exit(2)
	}
}
