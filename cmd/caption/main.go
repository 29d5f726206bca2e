// Command caption prints a Hugging Face image-to-text caption for an image URL.
//
//	caption [imageURL] [model]
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/windoze95/aiplayground-api/internal/ai"
	"github.com/windoze95/aiplayground-api/internal/config"
	"github.com/windoze95/aiplayground-api/internal/content"
	"github.com/windoze95/aiplayground-api/internal/logger"
	"github.com/windoze95/aiplayground-api/internal/service"
	"github.com/windoze95/aiplayground-api/internal/util"
	"go.uber.org/zap"
)

const defaultImageURL = "https://wallpaperaccess.com/full/4723250.jpg"

func main() {
	logger.Init(os.Getenv("GIN_MODE") != "release")
	defer logger.Sync()
	log := logger.Get()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("failed to load config", zap.Error(err))
	}
	if cfg.EnvVars.HuggingFaceToken == "" {
		log.Warn("HUGGING_FACE_ACCESS_TOKEN is not set, sending anonymous request")
	}

	imageURL := defaultImageURL
	if len(os.Args) > 1 {
		imageURL = os.Args[1]
	}
	model := ai.DefaultCaptionModel
	if len(os.Args) > 2 {
		model = os.Args[2]
	}

	fetchTimeout := cfg.EnvVars.FetchTimeout
	if fetchTimeout <= 0 {
		fetchTimeout = 15 * time.Second
	}
	svc := service.NewCaptionService(
		ai.NewHuggingFaceProvider(cfg.EnvVars.HuggingFaceToken, nil),
		content.NewHTTPFetcher(fetchTimeout),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	caption, err := svc.CaptionURL(ctx, imageURL, model)
	if err != nil {
		log.Fatal("caption failed", zap.String("image_url", imageURL), zap.Error(err))
	}
	out, err := util.SerializeToJSONString([]map[string]string{{"generated_text": caption}})
	if err != nil {
		log.Fatal("encode caption", zap.Error(err))
	}
	fmt.Println(out)
}
