package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/MikhailRaia/link-shortener/internal/storage"
)

func TestStorage_Put(t *testing.T) {
	s := NewStorage()
	ctx := context.Background()

	if err := s.Put(ctx, "promo", "https://example.com/promo-page"); err != nil {
		t.Errorf("Storage.Put() error = %v", err)
		return
	}

	got, err := s.Get(ctx, "promo")
	if err != nil {
		t.Errorf("Storage.Get() error = %v", err)
	}

	if got != "https://example.com/promo-page" {
		t.Errorf("Storage.Get() = %v, want %v", got, "https://example.com/promo-page")
	}

	if s.Len() != 1 {
		t.Errorf("Storage.Len() = %v, want 1", s.Len())
	}
}

func TestStorage_Get(t *testing.T) {
	s := NewStorage()
	ctx := context.Background()
	_ = s.Put(ctx, "abc123", " https://example.com \n")

	tests := []struct {
		name    string
		key     string
		want    string
		wantErr error
	}{
		{
			name: "Get existing link keeps raw content",
			key:  "abc123",
			want: " https://example.com \n",
		},
		{
			name:    "Get non-existing link",
			key:     "missing",
			wantErr: storage.ErrLinkNotFound,
		},
		{
			name:    "Get empty key",
			key:     "",
			wantErr: storage.ErrLinkNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.Get(ctx, tt.key)

			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Storage.Get() error = %v, want %v", err, tt.wantErr)
			}

			if got != tt.want {
				t.Errorf("Storage.Get() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStorage_Delete(t *testing.T) {
	s := NewStorage()
	ctx := context.Background()
	_ = s.Put(ctx, "gone", "https://example.com")

	if err := s.Delete(ctx, "gone"); err != nil {
		t.Fatalf("Storage.Delete() error = %v", err)
	}

	if _, err := s.Get(ctx, "gone"); !errors.Is(err, storage.ErrLinkNotFound) {
		t.Errorf("Storage.Get() after delete error = %v, want %v", err, storage.ErrLinkNotFound)
	}

	if err := s.Delete(ctx, "never-existed"); err != nil {
		t.Errorf("Storage.Delete() on missing key error = %v", err)
	}
}
