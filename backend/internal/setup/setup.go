package setup

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/itchan-dev/msgboard/backend/internal/handler"
	"github.com/itchan-dev/msgboard/backend/internal/service"
	"github.com/itchan-dev/msgboard/backend/internal/service/password"
	"github.com/itchan-dev/msgboard/backend/internal/service/sanitize"
	"github.com/itchan-dev/msgboard/backend/internal/storage"
	"github.com/itchan-dev/msgboard/backend/internal/storage/memory"
	"github.com/itchan-dev/msgboard/backend/internal/storage/mongo"
	"github.com/itchan-dev/msgboard/backend/internal/storage/pg"
	"github.com/itchan-dev/msgboard/backend/internal/utils"
	"github.com/itchan-dev/msgboard/shared/config"
	"github.com/itchan-dev/msgboard/shared/domain"
	"github.com/itchan-dev/msgboard/shared/logger"
)

// Dependencies struct to hold all initialized dependencies.
type Dependencies struct {
	Storage storage.Store
	Board   *service.Board
	Handler *handler.Handler
	Config  *config.Config
}

// OpenStorage connects the store selected in config and instruments it. The
// returned generator makes ids in the format the store prefers.
func OpenStorage(ctx context.Context, cfg *config.Config) (storage.Store, domain.IdGenerator, error) {
	switch cfg.Public.Storage {
	case "mongo":
		s, err := mongo.New(ctx, cfg.Private.MongoURI, cfg.Public.MongoDatabase)
		if err != nil {
			return nil, nil, err
		}
		return storage.Instrument("mongo", s), mongo.NewObjectId, nil
	case "pg":
		s, err := pg.New(ctx, *cfg.Private.Pg)
		if err != nil {
			return nil, nil, err
		}
		return storage.Instrument("pg", s), uuid.NewString, nil
	case "memory":
		logger.Log.Warn("using in-memory storage, boards are lost on restart")
		return storage.Instrument("memory", memory.New()), uuid.NewString, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage %q", cfg.Public.Storage)
	}
}

// SetupDependencies initializes all dependencies required for the application.
func SetupDependencies(ctx context.Context, cfg *config.Config) (*Dependencies, error) {
	passwords, err := password.New(cfg.Public.PasswordScheme)
	if err != nil {
		return nil, err
	}

	store, newId, err := OpenStorage(ctx, cfg)
	if err != nil {
		return nil, err
	}

	limits := service.Limits{
		ThreadsPerBoard:   cfg.Public.ThreadsPerBoard,
		RepliesPerPreview: cfg.Public.RepliesPerPreview,
		DeletedReplyText:  cfg.Public.DeletedReplyText,
	}
	board := service.NewBoard(store, utils.New(cfg.Public.MaxTextLength), limits, service.Deps{
		NewId:     newId,
		Passwords: passwords,
		Sanitizer: sanitize.New(),
	})

	return &Dependencies{
		Storage: store,
		Board:   board,
		Handler: handler.New(board, store),
		Config:  cfg,
	}, nil
}
