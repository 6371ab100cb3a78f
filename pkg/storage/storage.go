package storage

import (
	"github.com/glcage/glcage/pkg/config"
	"github.com/glcage/glcage/pkg/logger"
)

// Storage is a place to publish rendered frames.
type Storage interface {
	Save(name string, localPath string) (err error)
	Load(name string) (data []byte, err error)
	// IsNoop shows whether a storage is no-op stub
	IsNoop() bool
}

// New returns a storage client for the configured provider, falling
// back to the no-op stub when the client can't be initialized.
func New(conf config.Storage, log *logger.Logger) Storage {
	var st Storage
	var err error
	switch conf.Provider {
	case "oracle":
		st, err = NewOracleDataStorageClient(conf.AccessURL)
	case "google":
		st, err = NewGoogleCloudClient(conf.Bucket, log)
	default:
		st = NewNoop()
	}
	if err != nil {
		log.Error().Err(err).Msgf("%v storage fail, using the no-op stub", conf.Provider)
		st = NewNoop()
	}
	return st
}
