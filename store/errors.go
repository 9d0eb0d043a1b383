package store

import (
	"net/http"

	"github.com/goliatone/go-auth-client/core"
	goerrors "github.com/goliatone/go-errors"
)

func storageError(message string, metadata map[string]any) error {
	err := goerrors.New(message, goerrors.CategoryOperation).
		WithCode(http.StatusInternalServerError).
		WithTextCode(core.ErrorStorageFailed)
	if len(metadata) > 0 {
		err.WithMetadata(metadata)
	}
	return err
}

func storageWrapError(source error, message string, metadata map[string]any) error {
	if source == nil {
		return storageError(message, metadata)
	}
	err := goerrors.Wrap(source, goerrors.CategoryOperation, message).
		WithCode(http.StatusInternalServerError).
		WithTextCode(core.ErrorStorageFailed)
	if len(metadata) > 0 {
		err.WithMetadata(metadata)
	}
	return err
}
