package main

import (
	"context"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/awslabs/aws-lambda-go-api-proxy/httpadapter"
	"github.com/rs/zerolog/log"

	"github.com/MikhailRaia/link-shortener/internal/app"
	"github.com/MikhailRaia/link-shortener/internal/config"
	"github.com/MikhailRaia/link-shortener/internal/logger"
)

func main() {
	ctx := context.Background()

	cfg := config.NewConfig()
	logger.InitLogger(cfg.LogLevel)

	application, err := app.NewApp(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Error building redirector")
	}

	switch cfg.LambdaMode {
	case config.LambdaModeHTTP:
		lambda.StartWithOptions(httpadapter.NewV2(application.Handler()).ProxyWithContext, lambda.WithContext(ctx))
	default:
		lambda.StartWithOptions(application.EdgeHandler().Handle, lambda.WithContext(ctx))
	}
}
