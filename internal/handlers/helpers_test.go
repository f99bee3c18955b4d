package handlers_test

import (
	"errors"
	"io"
	"log/slog"
)

var errSecret = errors.New("connection refused to 10.0.0.5:5432")

func slogDiscard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
