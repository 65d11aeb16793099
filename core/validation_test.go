package core

import (
	"errors"
	"testing"
	"time"
)

func TestValidateDocument(t *testing.T) {
	validTime := time.Now().Add(-1 * time.Hour)
	futureTime := time.Now().Add(1 * time.Hour)

	tests := []struct {
		name    string
		doc     *Document
		wantErr error
	}{
		{
			name: "valid document",
			doc: &Document{
				Id:        1,
				Title:     "Cats",
				Text:      "Cats are mammals.",
				FetchedAt: validTime,
			},
			wantErr: nil,
		},
		{
			name: "valid document with zero timestamp",
			doc: &Document{
				Id:    1,
				Title: "Cats",
				Text:  "Cats are mammals.",
			},
			wantErr: nil,
		},
		{
			name: "valid document with ID 0",
			doc: &Document{
				Id:        0,
				Title:     "Cats",
				Text:      "Cats are mammals.",
				FetchedAt: validTime,
			},
			wantErr: nil,
		},
		{
			name: "valid document without source",
			doc: &Document{
				Id:        1,
				Title:     "Cats",
				Source:    "",
				Text:      "Cats are mammals.",
				FetchedAt: validTime,
			},
			wantErr: nil,
		},
		{
			name:    "nil document",
			doc:     nil,
			wantErr: ErrInvalidDocument,
		},
		{
			name: "empty title",
			doc: &Document{
				Id:        1,
				Title:     "",
				Text:      "Cats are mammals.",
				FetchedAt: validTime,
			},
			wantErr: ErrEmptyTitle,
		},
		{
			name: "empty text",
			doc: &Document{
				Id:        1,
				Title:     "Cats",
				Text:      "",
				FetchedAt: validTime,
			},
			wantErr: ErrEmptyText,
		},
		{
			name: "future timestamp",
			doc: &Document{
				Id:        1,
				Title:     "Cats",
				Text:      "Cats are mammals.",
				FetchedAt: futureTime,
			},
			wantErr: ErrInvalidTimestamp,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDocument(tt.doc)

			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateDocument() error = %v, want nil", err)
				}
				return
			}

			if err == nil {
				t.Errorf("ValidateDocument() error = nil, want %v", tt.wantErr)
				return
			}

			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateDocument() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateChunk(t *testing.T) {
	tests := []struct {
		name    string
		chunk   *Chunk
		wantErr error
	}{
		{
			name: "valid chunk",
			chunk: &Chunk{
				DocumentId: 1,
				Seq:        0,
				Text:       "Cats are mammals.",
			},
			wantErr: nil,
		},
		{
			name: "valid chunk with high sequence",
			chunk: &Chunk{
				DocumentId: 1,
				Seq:        4096,
				Text:       "Dogs are mammals too.",
			},
			wantErr: nil,
		},
		{
			name:    "nil chunk",
			chunk:   nil,
			wantErr: ErrInvalidChunk,
		},
		{
			name: "empty text",
			chunk: &Chunk{
				DocumentId: 1,
				Seq:        0,
				Text:       "",
			},
			wantErr: ErrEmptyText,
		},
		{
			name: "negative sequence",
			chunk: &Chunk{
				DocumentId: 1,
				Seq:        -1,
				Text:       "Fish live in water.",
			},
			wantErr: ErrNegativeSequence,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateChunk(tt.chunk)

			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateChunk() error = %v, want nil", err)
				}
				return
			}

			if err == nil {
				t.Errorf("ValidateChunk() error = nil, want %v", tt.wantErr)
				return
			}

			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateChunk() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestIsValidTimestamp(t *testing.T) {
	tests := []struct {
		name string
		ts   time.Time
		want bool
	}{
		{
			name: "past timestamp",
			ts:   time.Now().Add(-1 * time.Minute),
			want: true,
		},
		{
			name: "zero timestamp",
			ts:   time.Time{},
			want: true,
		},
		{
			name: "future timestamp",
			ts:   time.Now().Add(1 * time.Minute),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidTimestamp(tt.ts); got != tt.want {
				t.Errorf("IsValidTimestamp() = %v, want %v", got, tt.want)
			}
		})
	}
}
