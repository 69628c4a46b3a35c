package handler

import (
	"context"

	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/rs/zerolog/log"

	"github.com/MikhailRaia/link-shortener/internal/model"
)

// EdgeHandler serves CloudFront origin-response events.
type EdgeHandler struct {
	resolver Resolver
}

func NewEdgeHandler(resolver Resolver) *EdgeHandler {
	return &EdgeHandler{
		resolver: resolver,
	}
}

// Handle resolves the URI of the first record. It never returns an error so
// CloudFront always receives a well-formed response.
func (h *EdgeHandler) Handle(ctx context.Context, event model.EdgeEvent) (model.Response, error) {
	uri := event.RequestURI()

	resp := h.resolver.Resolve(ctx, uri)

	entry := log.Info().
		Str("uri", uri).
		Int("status", resp.Status).
		Int("records", len(event.Records))

	if len(event.Records) > 0 {
		cfg := event.Records[0].CF.Config
		entry = entry.Str("cf_request_id", cfg.RequestID).
			Str("distribution_id", cfg.DistributionID).
			Str("event_type", cfg.EventType)
	}

	if lc, ok := lambdacontext.FromContext(ctx); ok {
		entry = entry.Str("aws_request_id", lc.AwsRequestID)
	}

	entry.Msg("Edge event processed")

	return resp, nil
}
