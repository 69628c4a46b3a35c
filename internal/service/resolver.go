package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog/log"

	"github.com/MikhailRaia/link-shortener/internal/model"
	"github.com/MikhailRaia/link-shortener/internal/storage"
)

// NotFoundMessage is the fixed message of every 404 body.
const NotFoundMessage = "link unavailable or not found"

// Resolver turns request paths into redirect or not-found responses using
// a single read-only store.
type Resolver struct {
	store storage.LinkStore
}

// NewResolver constructs a Resolver reading from store.
func NewResolver(store storage.LinkStore) *Resolver {
	return &Resolver{
		store: store,
	}
}

// LookupKey strips the leading separator from a request path.
func LookupKey(requestPath string) string {
	return strings.TrimPrefix(requestPath, "/")
}

// Lookup fetches and decodes the destination URL stored under key. Errors
// are always *ResolveError.
func (r *Resolver) Lookup(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", &ResolveError{Kind: KindNotFound, Key: key, Err: ErrEmptyKey}
	}

	content, err := r.store.Get(ctx, key)
	if err != nil {
		kind := KindFetch
		if errors.Is(err, storage.ErrLinkNotFound) {
			kind = KindNotFound
		}
		return "", &ResolveError{Kind: kind, Key: key, Err: err}
	}

	if !utf8.ValidString(content) {
		return "", &ResolveError{Kind: KindDecode, Key: key, Err: ErrInvalidUTF8}
	}

	url := strings.TrimSpace(content)
	if url == "" {
		return "", &ResolveError{Kind: KindDecode, Key: key, Err: ErrEmptyURL}
	}

	return url, nil
}

// Resolve answers one request. It never fails: every lookup error becomes a
// 404 response.
func (r *Resolver) Resolve(ctx context.Context, requestPath string) (resp model.Response) {
	key := LookupKey(requestPath)

	defer func() {
		if p := recover(); p != nil {
			err := &ResolveError{Kind: KindFetch, Key: key, Err: fmt.Errorf("store panicked: %v", p)}
			log.Error().Str("key", key).Interface("panic", p).Msg("Link lookup panicked")
			resp = NotFoundResponse(key, err)
		}
	}()

	url, err := r.Lookup(ctx, key)
	if err != nil {
		logLookupFailure(key, err)
		return NotFoundResponse(key, err)
	}

	log.Debug().Str("key", key).Str("location", url).Msg("Link resolved")
	return RedirectResponse(url)
}

// RedirectResponse builds the 307 response pointing at url.
func RedirectResponse(url string) model.Response {
	return model.Response{
		Status:            http.StatusTemporaryRedirect,
		StatusDescription: http.StatusText(http.StatusTemporaryRedirect),
		Headers: map[string][]model.HeaderValue{
			"location": {{Key: "Location", Value: url}},
		},
		Body: fmt.Sprintf("Redirecting to %s", url),
	}
}

// NotFoundResponse builds the 404 response for key, embedding the
// description of err.
func NotFoundResponse(key string, err error) model.Response {
	exc := ""
	if err != nil {
		exc = err.Error()
	}

	body, marshalErr := json.Marshal(model.NotFoundBody{
		Message: NotFoundMessage,
		Exc:     exc,
		Key:     key,
	})
	if marshalErr != nil {
		body = []byte(`{"message":"` + NotFoundMessage + `"}`)
	}

	return model.Response{
		Status:            http.StatusNotFound,
		StatusDescription: http.StatusText(http.StatusNotFound),
		Headers: map[string][]model.HeaderValue{
			"content-type": {{Key: "Content-Type", Value: "application/json"}},
		},
		Body: string(body),
	}
}

func logLookupFailure(key string, err error) {
	kind := KindOf(err)

	event := log.Warn()
	if kind == KindNotFound {
		event = log.Info()
	}

	event.Str("key", key).
		Str("kind", kind.String()).
		Err(err).
		Msg("Link not resolved")
}
